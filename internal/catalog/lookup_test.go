package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestValidateRoute(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want error
	}{
		{name: "Known distinct airports", from: "JFK", to: "LAX", want: nil},
		{name: "Same airport", from: "JFK", to: "JFK", want: ErrSameAirport},
		{name: "Unknown departure", from: "XXX", to: "LAX", want: ErrUnknownAirport},
		{name: "Unknown arrival", from: "JFK", to: "jfk", want: ErrUnknownAirport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ValidateRoute(tt.from, tt.to))
		})
	}
}

func TestMockLookup_Search(t *testing.T) {
	got, err := NewMockLookup().Search("JFK", "LAX")
	require.NoError(t, err)

	want := []FlightOffer{
		{FlightNumber: "JFK-LAX-01", DepartureTime: "08:00 AM", ArrivalTime: "10:00 AM", Gate: "A1", Seat: "5A"},
		{FlightNumber: "JFK-LAX-02", DepartureTime: "12:00 PM", ArrivalTime: "02:00 PM", Gate: "B2", Seat: "6B"},
		{FlightNumber: "JFK-LAX-03", DepartureTime: "06:00 PM", ArrivalTime: "08:00 PM", Gate: "C3", Seat: "7C"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Differences: (-want,+got)\n%s", diff)
	}
}

func TestMockLookup_SearchRejectsSameAirport(t *testing.T) {
	got, err := NewMockLookup().Search("BOS", "BOS")
	require.Equal(t, ErrSameAirport, err)
	require.Empty(t, got)
}

func TestMockLookup_Find(t *testing.T) {
	l := NewMockLookup()

	offer, err := l.Find("SFO", "SEA", "SFO-SEA-02")
	require.NoError(t, err)
	require.Equal(t, "B2", offer.Gate)
	require.Equal(t, "6B", offer.Seat)

	_, err = l.Find("SFO", "SEA", "SFO-DEN-02")
	require.Equal(t, ErrNoFlightsFound, err)
}
