package issuer

import (
	"github.com/google/uuid"
	"github.com/meetupaws/smartfly_boarding/internal/catalog"
	"github.com/meetupaws/smartfly_boarding/passes/internal/model"
)

// PassAppender is the part of a session the issuer writes to.
type PassAppender interface {
	AddBoardingPass(pass model.BoardingPass) error
}

type Issuer struct {
	passes PassAppender
	newID  func() string
}

type Option func(*Issuer)

// WithIDGenerator replaces the random UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(i *Issuer) {
		i.newID = gen
	}
}

func New(passes PassAppender, opts ...Option) *Issuer {
	i := &Issuer{
		passes: passes,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue builds a boarding pass for identity on the selected offer and
// appends it to the session. The route is expected to be validated by the
// caller already.
func (i *Issuer) Issue(
	identity model.Identity,
	fromAirport string,
	toAirport string,
	departureDate string,
	returnDate string,
	offer catalog.FlightOffer,
) (model.BoardingPass, error) {
	pass := model.BoardingPass{
		ID:            i.newID(),
		FlightNumber:  offer.FlightNumber,
		Name:          identity.Name,
		Seat:          offer.Seat,
		Departure:     fromAirport,
		Arrival:       toAirport,
		DepartureDate: departureDate,
		ReturnDate:    returnDate,
		DepartureTime: offer.DepartureTime,
		ArrivalTime:   offer.ArrivalTime,
		Gate:          offer.Gate,
		PhotoRef:      identity.PhotoRef,
	}

	if err := i.passes.AddBoardingPass(pass); err != nil {
		return model.BoardingPass{}, err
	}
	return pass, nil
}
