// Package verifier decides whether a presented boarding pass is admitted.
//
// Checks run in a fixed order and the first failure is final:
//
//	payload parses  -> malformed_payload
//	within window   -> outside_window
//	photo captured  -> no_photo_captured
//	photo matches   -> face_mismatch
package verifier

import (
	"time"

	"github.com/meetupaws/smartfly_boarding/internal"
	"github.com/meetupaws/smartfly_boarding/passes/internal/model"
	"github.com/meetupaws/smartfly_boarding/passes/internal/qrpayload"
	"github.com/sirupsen/logrus"
)

const (
	DefaultWindow    = 12 * time.Hour
	DefaultThreshold = 1.0
)

type Verifier struct {
	matcher   FaceMatcher
	now       func() time.Time
	location  *time.Location
	window    time.Duration
	threshold float64
	logger    logrus.FieldLogger
}

type Option func(*Verifier)

func WithClock(now func() time.Time) Option {
	return func(v *Verifier) {
		v.now = now
	}
}

// WithLocation sets the zone departure dates and times are read in.
func WithLocation(loc *time.Location) Option {
	return func(v *Verifier) {
		v.location = loc
	}
}

func WithWindow(window time.Duration) Option {
	return func(v *Verifier) {
		v.window = window
	}
}

func WithThreshold(threshold float64) Option {
	return func(v *Verifier) {
		v.threshold = threshold
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(v *Verifier) {
		v.logger = logger
	}
}

// New returns a verifier using matcher, or EqualityMatcher when nil.
func New(matcher FaceMatcher, opts ...Option) *Verifier {
	if matcher == nil {
		matcher = EqualityMatcher{}
	}
	v := &Verifier{
		matcher:   matcher,
		now:       time.Now,
		location:  time.Local,
		window:    DefaultWindow,
		threshold: DefaultThreshold,
		logger:    internal.DiscardLogger(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify decodes payload and runs every admission check against it.
func (v *Verifier) Verify(payload string, capturedPhoto string) model.AdmissionDecision {
	pass, err := qrpayload.Decode(payload)
	if err != nil {
		v.logger.WithError(err).Info("boarding pass payload rejected")
		return model.Denied(model.ReasonMalformedPayload)
	}
	return v.VerifyPass(pass, capturedPhoto)
}

// VerifyPass runs the admission checks against an already decoded pass.
func (v *Verifier) VerifyPass(pass model.BoardingPass, capturedPhoto string) model.AdmissionDecision {
	log := v.logger.WithField("pass_id", pass.ID)

	if pass.PhotoRef == "" {
		return v.deny(log, model.ReasonMalformedPayload)
	}
	departure, err := DepartureInstant(pass.DepartureDate, pass.DepartureTime, v.location)
	if err != nil {
		return v.deny(log, model.ReasonMalformedPayload)
	}

	diff := departure.Sub(v.now())
	if diff <= 0 || diff > v.window {
		return v.deny(log.WithField("until_departure", diff.String()), model.ReasonOutsideWindow)
	}

	if capturedPhoto == "" {
		return v.deny(log, model.ReasonNoPhotoCaptured)
	}

	score, err := v.matcher.Match(capturedPhoto, pass.PhotoRef)
	if err != nil {
		log.WithError(err).Warn("face matcher failed")
		return v.deny(log, model.ReasonFaceMismatch)
	}
	if score < v.threshold {
		return v.deny(log.WithField("score", score), model.ReasonFaceMismatch)
	}

	log.Info("boarding pass admitted")
	return model.Admitted()
}

func (v *Verifier) deny(log logrus.FieldLogger, reason model.DenialReason) model.AdmissionDecision {
	log.WithField("reason", reason).Info("boarding pass denied")
	return model.Denied(reason)
}
