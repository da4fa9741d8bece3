package wearable

import "testing"

func TestDeriveIndicators(t *testing.T) {
	tests := []struct {
		name string
		days []DailySummary
		want Indicators
	}{
		{
			name: "no days",
			days: nil,
			want: Indicators{Stress: IndicatorUnknown, Anxiety: IndicatorUnknown, Fatigue: IndicatorUnknown},
		},
		{
			name: "healthy week",
			days: []DailySummary{
				{SleepHours: 7.5, Steps: 9000, RestingHeartRate: 58},
				{SleepHours: 8.0, Steps: 11000, RestingHeartRate: 60},
			},
			want: Indicators{Stress: IndicatorLow, Anxiety: IndicatorLow, Fatigue: IndicatorLow},
		},
		{
			name: "severe sleep debt",
			days: []DailySummary{
				{SleepHours: 4.0, Steps: 2000, RestingHeartRate: 82},
				{SleepHours: 3.5, Steps: 1500, RestingHeartRate: 85},
			},
			want: Indicators{Stress: IndicatorHigh, Anxiety: IndicatorHigh, Fatigue: IndicatorHigh},
		},
		{
			name: "borderline sleep",
			days: []DailySummary{
				{SleepHours: 6.0, Steps: 5000, RestingHeartRate: 72},
			},
			want: Indicators{Stress: IndicatorModerate, Anxiety: IndicatorModerate, Fatigue: IndicatorModerate},
		},
		{
			// Zero-value days carry no sleep or HR reading and must not
			// drag the averages down.
			name: "missing readings stay unknown",
			days: []DailySummary{
				{Steps: 4000},
				{Steps: 3000},
			},
			want: Indicators{Stress: IndicatorUnknown, Anxiety: IndicatorUnknown, Fatigue: IndicatorUnknown},
		},
		{
			name: "poor sleep but active",
			days: []DailySummary{
				{SleepHours: 5.0, Steps: 12000, RestingHeartRate: 62},
			},
			want: Indicators{Stress: IndicatorLow, Anxiety: IndicatorLow, Fatigue: IndicatorModerate},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveIndicators(tt.days)
			if got != tt.want {
				t.Errorf("DeriveIndicators() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestHasHistory(t *testing.T) {
	var nilSnapshot *WellnessSnapshot
	if nilSnapshot.HasHistory() {
		t.Error("nil snapshot reports history")
	}
	if (&WellnessSnapshot{}).HasHistory() {
		t.Error("empty snapshot reports history")
	}
	withDay := &WellnessSnapshot{Days: []DailySummary{{Date: "2026-08-20"}}}
	if !withDay.HasHistory() {
		t.Error("snapshot with a day reports no history")
	}
}
