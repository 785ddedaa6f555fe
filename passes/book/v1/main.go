package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/meetupaws/smartfly_boarding/internal"
	"github.com/meetupaws/smartfly_boarding/internal/catalog"
	"github.com/meetupaws/smartfly_boarding/passes/internal/issuer"
	"github.com/meetupaws/smartfly_boarding/passes/internal/model"
	"github.com/meetupaws/smartfly_boarding/passes/internal/qrpayload"
	"github.com/meetupaws/smartfly_boarding/passes/internal/repository"
	passsession "github.com/meetupaws/smartfly_boarding/passes/internal/session"
	"github.com/sirupsen/logrus"
)

var ErrSignupRequired = errors.New("signup_required")

type Handler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

type SessionsRepository interface {
	Find(id string) (*passsession.Session, int64, error)
	Save(s *passsession.Session, expectedVersion int64) error
}

type FlightsLookup interface {
	Find(from string, to string, flightNumber string) (catalog.FlightOffer, error)
}

type Enqueuer interface {
	SendMsg(msg interface{}, queue string) error
}

type Request struct {
	SessionID     string `json:"session_id"`
	From          string `json:"from"`
	To            string `json:"to"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date"`
	FlightNumber  string `json:"flight_number"`
	NotifyEmail   string `json:"notify_email"`
}

type Response struct {
	BoardingPass model.BoardingPass `json:"boarding_pass"`
	Payload      string             `json:"payload"`
}

var requestSchema = internal.MustSchema(`{
	"type": "object",
	"required": ["session_id", "from", "to", "departure_date", "return_date", "flight_number"],
	"properties": {
		"session_id":     {"type": "string", "minLength": 1},
		"from":           {"type": "string"},
		"to":             {"type": "string"},
		"departure_date": {"type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
		"return_date":    {"type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
		"flight_number":  {"type": "string", "minLength": 1},
		"notify_email":   {"type": "string", "format": "email"}
	}
}`)

func Adapter(
	sessionsRepo SessionsRepository,
	lookup FlightsLookup,
	enqueuer Enqueuer,
	queue string,
	logger logrus.FieldLogger,
	issuerOpts ...issuer.Option,
) Handler {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		schemaErrors, err := internal.ValidateBody(requestSchema, req.Body)
		if err != nil {
			return internal.Error(http.StatusBadRequest, err), nil
		}
		if len(schemaErrors) > 0 {
			return internal.SchemaErrors(http.StatusBadRequest, schemaErrors), nil
		}
		request := Request{}
		if err := json.Unmarshal([]byte(req.Body), &request); err != nil {
			return internal.Error(http.StatusBadRequest, err), nil
		}
		log := logger.WithField("session_id", request.SessionID)

		// Validations
		if err := catalog.ValidateRoute(request.From, request.To); err != nil {
			return internal.Error(http.StatusBadRequest, err), nil
		}

		// Find the selected flight
		offer, err := lookup.Find(request.From, request.To, request.FlightNumber)
		if err == catalog.ErrNoFlightsFound {
			return internal.Error(http.StatusNotFound, err), nil
		}
		if err != nil {
			return internal.Error(http.StatusInternalServerError, err), nil
		}

		// Load the session
		s, version, err := sessionsRepo.Find(request.SessionID)
		if err == repository.ErrSessionNotFound {
			return internal.Error(http.StatusNotFound, err), nil
		}
		if err != nil {
			log.WithError(err).Error("unable to load session")
			return internal.Error(http.StatusInternalServerError, err), nil
		}
		identity, ok := s.Identity()
		if !ok {
			return internal.Error(http.StatusUnprocessableEntity, ErrSignupRequired), nil
		}

		// Issue the boarding pass
		pass, err := issuer.New(s, issuerOpts...).Issue(
			identity,
			request.From,
			request.To,
			request.DepartureDate,
			request.ReturnDate,
			offer,
		)
		if err != nil {
			log.WithError(err).Error("unable to issue boarding pass")
			return internal.Error(http.StatusInternalServerError, err), nil
		}
		log = log.WithField("pass_id", pass.ID)

		err = sessionsRepo.Save(s, version)
		if err == repository.ErrConcurrentUpdate {
			return internal.Error(http.StatusConflict, err), nil
		}
		if err != nil {
			log.WithError(err).Error("unable to save session")
			return internal.Error(http.StatusInternalServerError, err), nil
		}

		payload, err := qrpayload.Encode(pass)
		if err != nil {
			return internal.Error(http.StatusInternalServerError, err), nil
		}

		// The booking stands even if the email cannot be queued
		if !internal.IsBlank(request.NotifyEmail) && queue != "" {
			err = enqueuer.SendMsg(model.QueueMsgBoardingPassIssued{
				SessionID:    s.ID(),
				Email:        request.NotifyEmail,
				BoardingPass: pass,
				Payload:      payload,
			}, queue)
			if err != nil {
				log.WithError(err).Warn("unable to enqueue boarding pass email")
			}
		}

		log.WithField("flight_number", pass.FlightNumber).Info("boarding pass issued")
		return internal.JSON(http.StatusOK, Response{
			BoardingPass: pass,
			Payload:      payload,
		}), nil
	}
}

func main() {
	sessionsTable := internal.RequireEnv("DYNAMODB_SESSIONS")
	ttl := internal.EnvHours("SESSION_TTL_HOURS", repository.DefaultSessionTTL)
	queue := internal.EnvOr("BOARDING_PASS_QUEUE", "")

	awsSession := session.Must(session.NewSession())
	sessionsRepo := repository.NewSessionsRepository(dynamodb.New(awsSession), sessionsTable, ttl)
	enqueuer := internal.NewEnqueuer(sqs.New(awsSession), 0)

	lambda.Start(Adapter(sessionsRepo, catalog.NewMockLookup(), enqueuer, queue, internal.NewLogger()))
}
