package catalog

import (
	"errors"
	"fmt"
)

var ErrNoFlightsFound = errors.New("no_flights_found")

// FlightOffer is one bookable flight on a route. It is only valid for the
// duration of a booking.
type FlightOffer struct {
	FlightNumber  string `json:"flightNumber"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
	Gate          string `json:"gate"`
	Seat          string `json:"seat"`
}

type schedule struct {
	suffix        string
	departureTime string
	arrivalTime   string
	gate          string
	seat          string
}

var dailySchedule = []schedule{
	{suffix: "01", departureTime: "08:00 AM", arrivalTime: "10:00 AM", gate: "A1", seat: "5A"},
	{suffix: "02", departureTime: "12:00 PM", arrivalTime: "02:00 PM", gate: "B2", seat: "6B"},
	{suffix: "03", departureTime: "06:00 PM", arrivalTime: "08:00 PM", gate: "C3", seat: "7C"},
}

// MockLookup returns the same three flights for every route.
type MockLookup struct{}

func NewMockLookup() *MockLookup {
	return &MockLookup{}
}

func (l *MockLookup) Search(from string, to string) ([]FlightOffer, error) {
	if err := ValidateRoute(from, to); err != nil {
		return nil, err
	}

	offers := make([]FlightOffer, len(dailySchedule))
	for i, s := range dailySchedule {
		offers[i] = FlightOffer{
			FlightNumber:  fmt.Sprintf("%s-%s-%s", from, to, s.suffix),
			DepartureTime: s.departureTime,
			ArrivalTime:   s.arrivalTime,
			Gate:          s.gate,
			Seat:          s.seat,
		}
	}
	return offers, nil
}

func (l *MockLookup) Find(from string, to string, flightNumber string) (FlightOffer, error) {
	offers, err := l.Search(from, to)
	if err != nil {
		return FlightOffer{}, err
	}
	for _, o := range offers {
		if o.FlightNumber == flightNumber {
			return o, nil
		}
	}
	return FlightOffer{}, ErrNoFlightsFound
}
