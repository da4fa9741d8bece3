package wearable

import "time"

// IndicatorLevel buckets a derived wellness indicator.
type IndicatorLevel string

const (
	IndicatorLow      IndicatorLevel = "low"
	IndicatorModerate IndicatorLevel = "moderate"
	IndicatorHigh     IndicatorLevel = "high"
	IndicatorUnknown  IndicatorLevel = "unknown"
)

// DailySummary is one day of wearable data.
type DailySummary struct {
	Date             string  `json:"date"`
	SleepHours       float64 `json:"sleep_hours"`
	Steps            int     `json:"steps"`
	RestingHeartRate int     `json:"resting_heart_rate"`
	ActiveMinutes    int     `json:"active_minutes"`
}

// Indicators are coarse signals derived from the raw summaries. They feed
// the analyzer prompt alongside the numbers themselves.
type Indicators struct {
	Stress  IndicatorLevel `json:"stress"`
	Anxiety IndicatorLevel `json:"anxiety"`
	Fatigue IndicatorLevel `json:"fatigue"`
}

// WellnessSnapshot is the provider-agnostic view of recent wearable history.
type WellnessSnapshot struct {
	Days       []DailySummary `json:"days"`
	Indicators Indicators     `json:"indicators"`
	FetchedAt  time.Time      `json:"fetched_at"`
}

// HasHistory reports whether the snapshot carries any usable days. The
// analyzer never runs on an empty snapshot.
func (s *WellnessSnapshot) HasHistory() bool {
	return s != nil && len(s.Days) > 0
}

// DeriveIndicators buckets the summaries into coarse levels. Thresholds
// follow common consumer-wearable guidance, not clinical cutoffs.
func DeriveIndicators(days []DailySummary) Indicators {
	ind := Indicators{
		Stress:  IndicatorUnknown,
		Anxiety: IndicatorUnknown,
		Fatigue: IndicatorUnknown,
	}
	if len(days) == 0 {
		return ind
	}

	var sleepTotal float64
	var sleepCount int
	var hrTotal, hrCount int
	var stepsTotal int
	for _, d := range days {
		if d.SleepHours > 0 {
			sleepTotal += d.SleepHours
			sleepCount++
		}
		if d.RestingHeartRate > 0 {
			hrTotal += d.RestingHeartRate
			hrCount++
		}
		stepsTotal += d.Steps
	}

	if sleepCount > 0 {
		avgSleep := sleepTotal / float64(sleepCount)
		switch {
		case avgSleep < 5:
			ind.Fatigue = IndicatorHigh
		case avgSleep < 6.5:
			ind.Fatigue = IndicatorModerate
		default:
			ind.Fatigue = IndicatorLow
		}
	}

	if hrCount > 0 {
		avgHR := hrTotal / hrCount
		switch {
		case avgHR >= 80:
			ind.Stress = IndicatorHigh
		case avgHR >= 70:
			ind.Stress = IndicatorModerate
		default:
			ind.Stress = IndicatorLow
		}
	}

	// Anxiety proxy: poor sleep combined with low movement.
	avgSteps := stepsTotal / len(days)
	if sleepCount > 0 {
		avgSleep := sleepTotal / float64(sleepCount)
		switch {
		case avgSleep < 5.5 && avgSteps < 3000:
			ind.Anxiety = IndicatorHigh
		case avgSleep < 6.5 && avgSteps < 6000:
			ind.Anxiety = IndicatorModerate
		default:
			ind.Anxiety = IndicatorLow
		}
	}

	return ind
}
