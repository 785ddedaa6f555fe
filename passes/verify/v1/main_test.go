package main

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/go-cmp/cmp"
	"github.com/meetupaws/smartfly_boarding/internal"
	"github.com/meetupaws/smartfly_boarding/passes/internal/model"
	"github.com/meetupaws/smartfly_boarding/passes/internal/qrpayload"
	"github.com/meetupaws/smartfly_boarding/passes/internal/verifier"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type AdmissionVerifierMock struct {
	mock.Mock
}

func (m *AdmissionVerifierMock) Verify(payload string, capturedPhoto string) model.AdmissionDecision {
	ret := m.Called(payload, capturedPhoto)
	return ret.Get(0).(model.AdmissionDecision)
}

var pass = model.BoardingPass{
	ID:            "p1",
	FlightNumber:  "JFK-LAX-01",
	Name:          "Jane Doe",
	Seat:          "5A",
	Departure:     "JFK",
	Arrival:       "LAX",
	DepartureDate: "2025-05-15",
	ReturnDate:    "2025-05-22",
	DepartureTime: "08:00 AM",
	ArrivalTime:   "10:00 AM",
	Gate:          "A1",
	PhotoRef:      "imgA",
}

func requestBody(t *testing.T, payload string, captured string) string {
	return fmt.Sprintf(`{"payload": %s, "captured_photo_ref": %q}`, strconv.Quote(payload), captured)
}

func TestAdapter(t *testing.T) {
	payload, err := qrpayload.Encode(pass)
	require.NoError(t, err)

	type mocks struct {
		verifier *AdmissionVerifierMock
	}

	tests := []struct {
		name   string
		req    events.APIGatewayProxyRequest
		want   events.APIGatewayProxyResponse
		mocks  mocks
		mocker func(m mocks)
	}{
		{
			name:  "Get a 200 status code with an admitted decision",
			req:   events.APIGatewayProxyRequest{Body: requestBody(t, payload, "imgA")},
			want:  internal.JSON(http.StatusOK, Response{Outcome: model.OutcomeAdmitted, BoardingPass: &pass}),
			mocks: mocks{verifier: &AdmissionVerifierMock{}},
			mocker: func(m mocks) {
				m.verifier.On("Verify", payload, "imgA").Return(model.Admitted()).Once()
			},
		},
		{
			name: "Get a 200 status code with a face mismatch",
			req:  events.APIGatewayProxyRequest{Body: requestBody(t, payload, "imgB")},
			want: internal.JSON(http.StatusOK, Response{
				Outcome:      model.OutcomeDenied,
				Reason:       model.ReasonFaceMismatch,
				BoardingPass: &pass,
			}),
			mocks: mocks{verifier: &AdmissionVerifierMock{}},
			mocker: func(m mocks) {
				m.verifier.On("Verify", payload, "imgB").Return(model.Denied(model.ReasonFaceMismatch)).Once()
			},
		},
		{
			name: "Get a 200 status code with a malformed payload denial",
			req:  events.APIGatewayProxyRequest{Body: `{"payload": "not a boarding pass"}`},
			want: events.APIGatewayProxyResponse{
				StatusCode: http.StatusOK,
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
				Body: internal.TrimLines(`{"outcome":"denied","reason":"malformed_payload"}`),
			},
			mocks: mocks{verifier: &AdmissionVerifierMock{}},
			mocker: func(m mocks) {
				m.verifier.On("Verify", "not a boarding pass", "").Return(model.Denied(model.ReasonMalformedPayload)).Once()
			},
		},
		{
			name: "Get a 400 status because request body is malformed",
			req: events.APIGatewayProxyRequest{
				Body: `{
							"payload": "x",
						}`,
			},
			want: events.APIGatewayProxyResponse{
				StatusCode: http.StatusBadRequest,
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
				Body: internal.TrimLines(`{"errors":["invalid character '}' looking for beginning of object key string"]}`),
			},
			mocks:  mocks{verifier: &AdmissionVerifierMock{}},
			mocker: func(m mocks) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			tt.mocker(tt.mocks)

			// Act
			handler := Adapter(tt.mocks.verifier)
			got, err := handler(context.Background(), tt.req)

			// Assert
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Differences found: (-want,+got)\n%s", diff)
			}
			tt.mocks.verifier.AssertExpectations(t)
		})
	}
}

func TestAdapterWithVerifier(t *testing.T) {
	now := time.Date(2025, 5, 15, 7, 0, 0, 0, time.UTC)
	v := verifier.New(
		verifier.EqualityMatcher{},
		verifier.WithClock(func() time.Time { return now }),
		verifier.WithLocation(time.UTC),
	)
	handler := Adapter(v)

	payload, err := qrpayload.Encode(pass)
	require.NoError(t, err)

	tests := []struct {
		name     string
		captured string
		want     string
	}{
		{name: "Same photo", captured: "imgA", want: `"outcome":"admitted"`},
		{name: "Other photo", captured: "imgB", want: `"reason":"face_mismatch"`},
		{name: "No photo", captured: "", want: `"reason":"no_photo_captured"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := handler(context.Background(), events.APIGatewayProxyRequest{
				Body: requestBody(t, payload, tt.captured),
			})
			require.NoError(t, err)
			require.Equal(t, http.StatusOK, got.StatusCode)
			require.Contains(t, got.Body, tt.want)
		})
	}
}
