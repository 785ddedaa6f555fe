package verifier

// FaceMatcher scores how likely captured and reference show the same person,
// from 0 (different) to 1 (same).
type FaceMatcher interface {
	Match(captured string, reference string) (float64, error)
}

// EqualityMatcher treats two photos as the same person only when the
// references are identical. It performs no image analysis.
type EqualityMatcher struct{}

func (EqualityMatcher) Match(captured string, reference string) (float64, error) {
	if captured == reference {
		return 1, nil
	}
	return 0, nil
}
