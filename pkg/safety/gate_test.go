package safety

import (
	"strings"
	"testing"

	"mindmate-be/internal/constant"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		message      string
		wantSeverity Severity
	}{
		{
			name:         "benign greeting",
			message:      "hi, how are you?",
			wantSeverity: SeverityNone,
		},
		{
			name:         "educational question",
			message:      "What is CBT?",
			wantSeverity: SeverityNone,
		},
		{
			name:         "severe intent",
			message:      "I want to kill myself",
			wantSeverity: SeveritySevere,
		},
		{
			name:         "severe uppercase",
			message:      "I WANT TO DIE",
			wantSeverity: SeveritySevere,
		},
		{
			name:         "concern without severe",
			message:      "everything feels hopeless lately",
			wantSeverity: SeverityConcern,
		},
		{
			name:         "concern self harm",
			message:      "I've been thinking about self harm",
			wantSeverity: SeverityConcern,
		},
		{
			// Known limitation: no negation handling.
			name:         "negated phrase still matches",
			message:      "I don't want to kill myself anymore",
			wantSeverity: SeveritySevere,
		},
		{
			name:         "empty message",
			message:      "",
			wantSeverity: SeverityNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.message)
			if got.Severity != tt.wantSeverity {
				t.Errorf("Classify(%q).Severity = %q, want %q", tt.message, got.Severity, tt.wantSeverity)
			}
		})
	}
}

// The gate is a pure function: same input, same verdict.
func TestClassifyIdempotent(t *testing.T) {
	messages := []string{
		"I want to kill myself",
		"feeling hopeless",
		"hello there",
	}
	for _, msg := range messages {
		first := Classify(msg)
		second := Classify(msg)
		if first != second {
			t.Errorf("Classify(%q) not idempotent: %+v vs %+v", msg, first, second)
		}
	}
}

// Every severe keyword must independently trip the concern tier: severe is a
// strict superset trigger of concern.
func TestSevereImpliesConcern(t *testing.T) {
	concernSet := make(map[string]bool, len(constant.ConcernCrisisKeywords))
	for _, kw := range constant.ConcernCrisisKeywords {
		concernSet[kw] = true
	}

	for _, severe := range constant.SevereCrisisKeywords {
		covered := concernSet[severe]
		if !covered {
			// A concern keyword that is a substring of the severe phrase
			// also covers it.
			for _, concern := range constant.ConcernCrisisKeywords {
				if strings.Contains(severe, concern) {
					covered = true
					break
				}
			}
		}
		if !covered {
			t.Errorf("severe keyword %q is not covered by the concern tier", severe)
		}
	}
}

func TestSevereResponseContainsHotlines(t *testing.T) {
	for _, hotline := range []string{"988", "741741", "911"} {
		if !strings.Contains(constant.SevereCrisisResponse, hotline) {
			t.Errorf("severe crisis response is missing hotline %q", hotline)
		}
	}
}
