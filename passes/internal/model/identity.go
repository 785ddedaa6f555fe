package model

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName    = errors.New("empty_name")
	ErrMissingPhoto = errors.New("missing_photo")
)

// Identity is the signed-up traveller. PhotoRef is an opaque handle to the
// signup capture (a URI on the device).
type Identity struct {
	Name     string `json:"name"`
	PhotoRef string `json:"photo_ref"`
}

// Validate is run by the signup flow; the session store accepts any value.
func (i Identity) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(i.PhotoRef) == "" {
		return ErrMissingPhoto
	}
	return nil
}
