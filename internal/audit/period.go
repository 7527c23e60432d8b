package audit

// Period is a fixed time-of-day bucket used to classify business records.
type Period string

const (
	PeriodMorning   Period = "MORNING"
	PeriodAfternoon Period = "AFTERNOON"
	PeriodEvening   Period = "EVENING"
	PeriodNight     Period = "NIGHT"
)

// ClassifyHour maps an hour of day to its period. NIGHT is the catch-all, so
// out-of-range input classifies as NIGHT instead of failing.
func ClassifyHour(hour int) Period {
	switch {
	case hour >= 6 && hour < 12:
		return PeriodMorning
	case hour >= 12 && hour < 18:
		return PeriodAfternoon
	case hour >= 18 && hour < 22:
		return PeriodEvening
	default:
		return PeriodNight
	}
}
