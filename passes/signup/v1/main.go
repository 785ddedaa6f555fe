package main

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/google/uuid"
	"github.com/meetupaws/smartfly_boarding/internal"
	"github.com/meetupaws/smartfly_boarding/passes/internal/model"
	"github.com/meetupaws/smartfly_boarding/passes/internal/repository"
	passsession "github.com/meetupaws/smartfly_boarding/passes/internal/session"
	"github.com/sirupsen/logrus"
)

type Handler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

type SessionsRepository interface {
	Find(id string) (*passsession.Session, int64, error)
	Save(s *passsession.Session, expectedVersion int64) error
}

type Request struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
	PhotoRef  string `json:"photo_ref"`
}

type Response struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
}

var requestSchema = internal.MustSchema(`{
	"type": "object",
	"properties": {
		"session_id": {"type": "string"},
		"name":       {"type": "string"},
		"photo_ref":  {"type": "string"}
	}
}`)

func Adapter(sessionsRepo SessionsRepository, newID func() string, logger logrus.FieldLogger) Handler {
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

		// Validations
		identity := model.Identity{Name: request.Name, PhotoRef: request.PhotoRef}
		if err := identity.Validate(); err != nil {
			return internal.Error(http.StatusBadRequest, err), nil
		}

		// Load the session, or start one
		var s *passsession.Session
		var version int64
		if internal.IsBlank(request.SessionID) {
			s = passsession.New(newID())
		} else {
			s, version, err = sessionsRepo.Find(request.SessionID)
			if err == repository.ErrSessionNotFound {
				return internal.Error(http.StatusNotFound, err), nil
			}
			if err != nil {
				logger.WithError(err).WithField("session_id", request.SessionID).Error("unable to load session")
				return internal.Error(http.StatusInternalServerError, err), nil
			}
		}
		log := logger.WithField("session_id", s.ID())

		if previous, ok := s.Identity(); ok && s.Len() > 0 {
			// Repeated signup keeps the passes issued under the previous identity.
			log.WithFields(logrus.Fields{
				"previous_name": previous.Name,
				"passes":        s.Len(),
			}).Warn("identity replaced on a session holding boarding passes")
		}
		s.SetIdentity(identity)

		err = sessionsRepo.Save(s, version)
		if err == repository.ErrConcurrentUpdate {
			return internal.Error(http.StatusConflict, err), nil
		}
		if err != nil {
			log.WithError(err).Error("unable to save session")
			return internal.Error(http.StatusInternalServerError, err), nil
		}

		log.Info("identity signed up")
		return internal.JSON(http.StatusOK, Response{
			SessionID: s.ID(),
			Name:      identity.Name,
		}), nil
	}
}

func main() {
	sessionsTable := internal.RequireEnv("DYNAMODB_SESSIONS")
	ttl := internal.EnvHours("SESSION_TTL_HOURS", repository.DefaultSessionTTL)
	awsSession := session.Must(session.NewSession())
	dynamodbClient := dynamodb.New(awsSession)
	sessionsRepo := repository.NewSessionsRepository(dynamodbClient, sessionsTable, ttl)
	lambda.Start(Adapter(sessionsRepo, uuid.NewString, internal.NewLogger()))
}
