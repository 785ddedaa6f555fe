// Package qrpayload converts boarding passes to and from the JSON text
// carried in their QR code.
package qrpayload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/meetupaws/smartfly_boarding/passes/internal/model"
	"github.com/xeipuuv/gojsonschema"
)

var ErrMalformedPayload = errors.New("malformed_payload")

// ParseError lists why a payload was rejected. It matches
// ErrMalformedPayload under errors.Is.
type ParseError struct {
	Details []string
}

func (e *ParseError) Error() string {
	if len(e.Details) == 0 {
		return ErrMalformedPayload.Error()
	}
	return fmt.Sprintf("%s: %s", ErrMalformedPayload, strings.Join(e.Details, "; "))
}

func (e *ParseError) Unwrap() error {
	return ErrMalformedPayload
}

// Encode returns the canonical payload: compact JSON, fields in
// declaration order, no HTML escaping.
func Encode(pass model.BoardingPass) (string, error) {
	buf := bytes.Buffer{}
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(pass); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Decode validates payload against the boarding pass schema before
// unmarshalling it, so a pass is either complete or not returned at all.
func Decode(payload string) (model.BoardingPass, error) {
	if strings.TrimSpace(payload) == "" {
		return model.BoardingPass{}, &ParseError{Details: []string{"empty payload"}}
	}

	result, err := payloadSchema.Validate(gojsonschema.NewStringLoader(payload))
	if err != nil {
		return model.BoardingPass{}, &ParseError{Details: []string{err.Error()}}
	}
	if !result.Valid() {
		return model.BoardingPass{}, &ParseError{Details: resultDetails(result.Errors())}
	}

	pass := model.BoardingPass{}
	if err := json.Unmarshal([]byte(payload), &pass); err != nil {
		return model.BoardingPass{}, &ParseError{Details: []string{err.Error()}}
	}
	return pass, nil
}

func resultDetails(errs []gojsonschema.ResultError) []string {
	details := make([]string, len(errs))
	for i, e := range errs {
		details[i] = e.String()
	}
	return details
}
