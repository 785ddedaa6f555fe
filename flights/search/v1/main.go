package main

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/meetupaws/smartfly_boarding/internal"
	"github.com/meetupaws/smartfly_boarding/internal/catalog"
)

type Handler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

type Response struct {
	From    string           `json:"from"`
	To      string           `json:"to"`
	Flights []ResponseFlight `json:"flights"`
}

type ResponseFlight struct {
	FlightNumber  string `json:"flight_number"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
	Gate          string `json:"gate"`
	Seat          string `json:"seat"`
}

type FlightsLookup interface {
	Search(from string, to string) ([]catalog.FlightOffer, error)
}

func Adapter(lookup FlightsLookup) Handler {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		// Get request parameters
		from := req.PathParameters["from"]
		to := req.PathParameters["to"]

		// Validate the route before asking for flights
		if err := catalog.ValidateRoute(from, to); err != nil {
			return internal.Error(http.StatusBadRequest, err), nil
		}

		// Look for flights
		offers, err := lookup.Search(from, to)
		if err == catalog.ErrNoFlightsFound {
			return internal.Error(http.StatusNotFound, err), nil
		}
		if err != nil {
			return internal.Error(http.StatusInternalServerError, err), nil
		}

		// Prepare response
		response := Response{
			From:    from,
			To:      to,
			Flights: make([]ResponseFlight, len(offers)),
		}
		for i, o := range offers {
			rFlight := ResponseFlight{}
			rFlight.FlightNumber = o.FlightNumber
			rFlight.DepartureTime = o.DepartureTime
			rFlight.ArrivalTime = o.ArrivalTime
			rFlight.Gate = o.Gate
			rFlight.Seat = o.Seat
			response.Flights[i] = rFlight
		}

		// Respond
		return internal.JSON(http.StatusOK, response), nil
	}
}

func main() {
	lambda.Start(Adapter(catalog.NewMockLookup()))
}
