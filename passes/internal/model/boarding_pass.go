package model

// BoardingPass field order is the canonical QR payload order.
type BoardingPass struct {
	ID            string `json:"id"`
	FlightNumber  string `json:"flightNumber"`
	Name          string `json:"name"`
	Seat          string `json:"seat"`
	Departure     string `json:"departure"`
	Arrival       string `json:"arrival"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
	Gate          string `json:"gate"`
	PhotoRef      string `json:"photoRef,omitempty"`
}
