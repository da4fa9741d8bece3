package safety

import (
	"strings"

	"mindmate-be/internal/constant"
)

// Severity is the crisis classification of a single message.
type Severity string

const (
	SeverityNone    Severity = "none"
	SeverityConcern Severity = "concern"
	SeveritySevere  Severity = "severe"
)

// Verdict is the gate's output for one message. Computed fresh per message,
// never cached.
type Verdict struct {
	Severity Severity
	// Matched is the first keyword that triggered the verdict (audit logs).
	Matched string
}

// Classify scans the message against the two keyword tiers. Pure function:
// no I/O, no failure mode, always returns a verdict.
//
// Matching is deliberately naive case-insensitive substring matching, with no
// stemming or negation handling ("I don't want to kill myself" still trips
// the severe tier). Changing detection sensitivity is a safety-relevant
// behavior change and must not happen as a side effect of refactoring.
func Classify(message string) Verdict {
	lowered := strings.ToLower(message)

	for _, kw := range constant.SevereCrisisKeywords {
		if strings.Contains(lowered, kw) {
			return Verdict{Severity: SeveritySevere, Matched: kw}
		}
	}

	for _, kw := range constant.ConcernCrisisKeywords {
		if strings.Contains(lowered, kw) {
			return Verdict{Severity: SeverityConcern, Matched: kw}
		}
	}

	return Verdict{Severity: SeverityNone}
}
