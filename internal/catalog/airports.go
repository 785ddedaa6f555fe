package catalog

import "errors"

var (
	ErrUnknownAirport = errors.New("unknown_airport")
	ErrSameAirport    = errors.New("departure_and_arrival_airports_must_differ")
)

type Airport struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Airports is the fixed list the booking screen offers.
var Airports = []Airport{
	{Code: "JFK", Name: "John F. Kennedy Intl (JFK)"},
	{Code: "LAX", Name: "Los Angeles Intl (LAX)"},
	{Code: "ORD", Name: "Chicago O'Hare (ORD)"},
	{Code: "DFW", Name: "Dallas/Fort Worth (DFW)"},
	{Code: "DEN", Name: "Denver Intl (DEN)"},
	{Code: "SFO", Name: "San Francisco Intl (SFO)"},
	{Code: "SEA", Name: "Seattle-Tacoma (SEA)"},
	{Code: "MIA", Name: "Miami Intl (MIA)"},
	{Code: "ATL", Name: "Atlanta Intl (ATL)"},
	{Code: "BOS", Name: "Boston Logan (BOS)"},
}

func IsKnownAirport(code string) bool {
	for _, a := range Airports {
		if a.Code == code {
			return true
		}
	}
	return false
}

// ValidateRoute rejects unknown codes first, then a route that starts and
// ends at the same airport.
func ValidateRoute(from string, to string) error {
	if !IsKnownAirport(from) || !IsKnownAirport(to) {
		return ErrUnknownAirport
	}
	if from == to {
		return ErrSameAirport
	}
	return nil
}
