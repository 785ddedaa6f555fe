package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/meetupaws/smartfly_boarding/internal"
	"github.com/meetupaws/smartfly_boarding/passes/internal/model"
	"github.com/sirupsen/logrus"
)

type Handler func(ctx context.Context, event events.SQSEvent) error

type Mailer interface {
	SendEmail(subject string, body string, from string, to []string, cc []string) error
}

const emailSubject = "Your SmartFly boarding pass"

var emailTemplate = `Hello %v!
Your boarding pass for flight %v is ready.

From %v to %v on %v, departing %v from gate %v, seat %v.
Return date: %v.

Show this code at the gate:
%v
`

func emailBody(msg model.QueueMsgBoardingPassIssued) string {
	pass := msg.BoardingPass
	return fmt.Sprintf(
		emailTemplate,
		pass.Name,
		pass.FlightNumber,
		pass.Departure,
		pass.Arrival,
		pass.DepartureDate,
		pass.DepartureTime,
		pass.Gate,
		pass.Seat,
		pass.ReturnDate,
		msg.Payload,
	)
}

// Adapter tries every record in the batch and returns the first failure so
// SQS redelivers the batch.
func Adapter(mailer Mailer, senderEmail string, logger logrus.FieldLogger) Handler {
	return func(ctx context.Context, event events.SQSEvent) error {
		var firstErr error
		fail := func(err error) {
			if firstErr == nil {
				firstErr = err
			}
		}

		for _, record := range event.Records {
			msg := model.QueueMsgBoardingPassIssued{}
			if err := json.Unmarshal([]byte(record.Body), &msg); err != nil {
				logger.WithError(err).WithField("message_id", record.MessageId).Error("unreadable message")
				fail(err)
				continue
			}

			err := mailer.SendEmail(
				emailSubject,
				emailBody(msg),
				senderEmail,
				[]string{msg.Email},
				nil,
			)
			if err != nil {
				logger.WithError(err).WithField("session_id", msg.SessionID).Error("sending boarding pass email")
				fail(err)
				continue
			}
			logger.WithFields(logrus.Fields{
				"session_id":       msg.SessionID,
				"boarding_pass_id": msg.BoardingPass.ID,
			}).Info("boarding pass email sent")
		}
		return firstErr
	}
}

func main() {
	senderEmail := internal.RequireEnv("SENDER_EMAIL")
	awsSession := session.Must(session.NewSession())
	mailer := internal.NewMailer(ses.New(awsSession))
	lambda.Start(Adapter(mailer, senderEmail, internal.NewLogger()))
}
