// Package session holds the signed-up identity and the boarding passes
// issued to it.
//
// A Session is owned by a single caller at a time and is not safe for
// concurrent use. Writers that share one session across processes go
// through the repository, which serializes them with a version check.
package session

import (
	"errors"
	"fmt"

	"github.com/meetupaws/smartfly_boarding/passes/internal/model"
)

var ErrDuplicateBoardingPassID = errors.New("duplicate_boarding_pass_id")

type Session struct {
	id       string
	identity *model.Identity
	passes   []model.BoardingPass
	passIDs  map[string]struct{}
}

func New(id string) *Session {
	return &Session{
		id:      id,
		passIDs: map[string]struct{}{},
	}
}

// Restore rebuilds a session from a stored snapshot, replaying the passes
// in their stored order.
func Restore(id string, identity *model.Identity, passes []model.BoardingPass) (*Session, error) {
	s := New(id)
	if identity != nil {
		s.SetIdentity(*identity)
	}
	for _, p := range passes {
		if err := s.AddBoardingPass(p); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Session) ID() string {
	return s.id
}

// SetIdentity replaces the identity unconditionally. Passes issued under a
// previous identity are kept as they are.
func (s *Session) SetIdentity(identity model.Identity) {
	s.identity = &identity
}

func (s *Session) Identity() (model.Identity, bool) {
	if s.identity == nil {
		return model.Identity{}, false
	}
	return *s.identity, true
}

func (s *Session) AddBoardingPass(pass model.BoardingPass) error {
	if _, ok := s.passIDs[pass.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateBoardingPassID, pass.ID)
	}
	s.passIDs[pass.ID] = struct{}{}
	s.passes = append(s.passes, pass)
	return nil
}

// ListBoardingPasses returns the passes in issuance order.
func (s *Session) ListBoardingPasses() []model.BoardingPass {
	out := make([]model.BoardingPass, len(s.passes))
	copy(out, s.passes)
	return out
}

func (s *Session) Len() int {
	return len(s.passes)
}
