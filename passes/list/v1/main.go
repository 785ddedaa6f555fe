package main

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/meetupaws/smartfly_boarding/internal"
	"github.com/meetupaws/smartfly_boarding/passes/internal/model"
	"github.com/meetupaws/smartfly_boarding/passes/internal/qrpayload"
	"github.com/meetupaws/smartfly_boarding/passes/internal/repository"
	passsession "github.com/meetupaws/smartfly_boarding/passes/internal/session"
	"github.com/sirupsen/logrus"
)

const maxQRSize = 1024

var (
	errMissingSessionID = errors.New("missing_session_id")
	errInvalidQRSize    = errors.New("invalid_qr_size")
)

type Handler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

type SessionsRepository interface {
	Find(id string) (*passsession.Session, int64, error)
}

type Response struct {
	SessionID      string                 `json:"session_id"`
	BoardingPasses []ResponseBoardingPass `json:"boarding_passes"`
}

type ResponseBoardingPass struct {
	BoardingPass model.BoardingPass `json:"boarding_pass"`
	Payload      string             `json:"payload"`
	QRPNG        string             `json:"qr_png,omitempty"`
}

func Adapter(sessionsRepo SessionsRepository, logger logrus.FieldLogger) Handler {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		// Get request parameters
		sessionID := req.PathParameters["session_id"]
		if internal.IsBlank(sessionID) {
			return internal.Error(http.StatusBadRequest, errMissingSessionID), nil
		}
		withQR := req.QueryStringParameters["qr"] != "false"
		qrSize := qrpayload.DefaultPNGSize
		if v, ok := req.QueryStringParameters["qr_size"]; ok {
			size, err := strconv.Atoi(v)
			if err != nil || size <= 0 || size > maxQRSize {
				return internal.Error(http.StatusBadRequest, errInvalidQRSize), nil
			}
			qrSize = size
		}

		// Load the session
		s, _, err := sessionsRepo.Find(sessionID)
		if err == repository.ErrSessionNotFound {
			return internal.Error(http.StatusNotFound, err), nil
		}
		if err != nil {
			logger.WithError(err).WithField("session_id", sessionID).Error("unable to load session")
			return internal.Error(http.StatusInternalServerError, err), nil
		}

		// Prepare response, in issuance order
		passes := s.ListBoardingPasses()
		response := Response{
			SessionID:      s.ID(),
			BoardingPasses: make([]ResponseBoardingPass, len(passes)),
		}
		for i, p := range passes {
			payload, err := qrpayload.Encode(p)
			if err != nil {
				return internal.Error(http.StatusInternalServerError, err), nil
			}
			rPass := ResponseBoardingPass{}
			rPass.BoardingPass = p
			rPass.Payload = payload
			if withQR {
				png, err := qrpayload.PNG(payload, qrSize)
				if err != nil {
					logger.WithError(err).WithField("pass_id", p.ID).Error("unable to render qr code")
					return internal.Error(http.StatusInternalServerError, err), nil
				}
				rPass.QRPNG = base64.StdEncoding.EncodeToString(png)
			}
			response.BoardingPasses[i] = rPass
		}

		// Respond
		return internal.JSON(http.StatusOK, response), nil
	}
}

func main() {
	sessionsTable := internal.RequireEnv("DYNAMODB_SESSIONS")
	awsSession := session.Must(session.NewSession())
	sessionsRepo := repository.NewSessionsRepository(dynamodb.New(awsSession), sessionsTable, 0)
	lambda.Start(Adapter(sessionsRepo, internal.NewLogger()))
}
