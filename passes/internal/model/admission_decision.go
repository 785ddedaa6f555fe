package model

type AdmissionOutcome string

const (
	OutcomeAdmitted AdmissionOutcome = "admitted"
	OutcomeDenied   AdmissionOutcome = "denied"
)

type DenialReason string

const (
	ReasonOutsideWindow    DenialReason = "outside_window"
	ReasonNoPhotoCaptured  DenialReason = "no_photo_captured"
	ReasonFaceMismatch     DenialReason = "face_mismatch"
	ReasonMalformedPayload DenialReason = "malformed_payload"
)

// AdmissionDecision is never stored. A denial always carries a reason.
type AdmissionDecision struct {
	Outcome AdmissionOutcome `json:"outcome"`
	Reason  DenialReason     `json:"reason,omitempty"`
}

func Admitted() AdmissionDecision {
	return AdmissionDecision{Outcome: OutcomeAdmitted}
}

func Denied(reason DenialReason) AdmissionDecision {
	return AdmissionDecision{Outcome: OutcomeDenied, Reason: reason}
}

func (d AdmissionDecision) IsAdmitted() bool {
	return d.Outcome == OutcomeAdmitted
}
