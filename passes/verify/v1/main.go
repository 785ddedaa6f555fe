package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/meetupaws/smartfly_boarding/internal"
	"github.com/meetupaws/smartfly_boarding/passes/internal/model"
	"github.com/meetupaws/smartfly_boarding/passes/internal/qrpayload"
	"github.com/meetupaws/smartfly_boarding/passes/internal/verifier"
)

type Handler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

type AdmissionVerifier interface {
	Verify(payload string, capturedPhoto string) model.AdmissionDecision
}

type Request struct {
	Payload          string `json:"payload"`
	CapturedPhotoRef string `json:"captured_photo_ref"`
}

type Response struct {
	Outcome      model.AdmissionOutcome `json:"outcome"`
	Reason       model.DenialReason     `json:"reason,omitempty"`
	BoardingPass *model.BoardingPass    `json:"boarding_pass,omitempty"`
}

var requestSchema = internal.MustSchema(`{
	"type": "object",
	"properties": {
		"payload":            {"type": "string"},
		"captured_photo_ref": {"type": "string"}
	}
}`)

// Adapter always answers 200 with a decision once the request itself is
// readable; a bad payload is a denial, not a client error.
func Adapter(v AdmissionVerifier) Handler {
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

		decision := v.Verify(request.Payload, request.CapturedPhotoRef)

		response := Response{
			Outcome: decision.Outcome,
			Reason:  decision.Reason,
		}
		if decision.Reason != model.ReasonMalformedPayload {
			if pass, err := qrpayload.Decode(request.Payload); err == nil {
				response.BoardingPass = &pass
			}
		}
		return internal.JSON(http.StatusOK, response), nil
	}
}

func main() {
	logger := internal.NewLogger()
	loc, err := internal.EnvLocation("ADMISSION_TIMEZONE")
	if err != nil {
		panic(fmt.Sprintf("ADMISSION_TIMEZONE is invalid: %v", err))
	}
	v := verifier.New(
		verifier.EqualityMatcher{},
		verifier.WithLocation(loc),
		verifier.WithLogger(logger),
	)
	lambda.Start(Adapter(v))
}
