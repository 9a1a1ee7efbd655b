package domain

import "time"

type trialKind int

const (
	trialNone trialKind = iota
	trialUntil
	trialSkip
)

// TrialPolicy is a closed variant: no trial, trial until a timestamp, or
// skip. Skip is sticky: once chosen, later trial-value updates are
// ignored, so precedence is carried by the variant itself instead of a
// flag-ordering rule.
type TrialPolicy struct {
	kind  trialKind
	until time.Time
}

func NoTrial() TrialPolicy { return TrialPolicy{kind: trialNone} }

func TrialUntil(t time.Time) TrialPolicy {
	return TrialPolicy{kind: trialUntil, until: t.UTC()}
}

func SkipTrial() TrialPolicy { return TrialPolicy{kind: trialSkip} }

// WithUntil replaces the trial end unless the policy is already Skip.
func (p TrialPolicy) WithUntil(t time.Time) TrialPolicy {
	if p.kind == trialSkip {
		return p
	}
	return TrialUntil(t)
}

func (p TrialPolicy) Skip() TrialPolicy { return SkipTrial() }

func (p TrialPolicy) IsSkip() bool { return p.kind == trialSkip }

// Resolve produces the trial-end directive for the creation request:
// "now" for Skip, the absolute timestamp when a trial end is set, or nil
// when no trial applies.
func (p TrialPolicy) Resolve() *TrialEnd {
	switch p.kind {
	case trialSkip:
		return &TrialEnd{Now: true}
	case trialUntil:
		return &TrialEnd{At: p.until}
	default:
		return nil
	}
}

// TrialEnd is the resolved trial directive. Now takes precedence over
// At; the two are never both set.
type TrialEnd struct {
	Now bool
	At  time.Time
}
