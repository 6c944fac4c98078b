package workout

// DayKeys returns the ordered day keys of a split. Unknown plan types fall
// back to a single full-body day.
func DayKeys(planType PlanType) []string {
	switch planType {
	case PlanTypeAB:
		return []string{"A", "B"}
	case PlanTypeABC:
		return []string{"A", "B", "C"}
	case PlanTypeABCD:
		return []string{"A", "B", "C", "D"}
	case PlanTypeFullBody:
		return []string{"FULL"}
	}
	return []string{"FULL"}
}

// NextDayKey resolves the day that should be trained next. An empty or unknown
// lastDayKey restarts the rotation from the first day.
func NextDayKey(planType PlanType, lastDayKey string) string {
	keys := DayKeys(planType)
	if lastDayKey == "" {
		return keys[0]
	}
	for i, key := range keys {
		if key == lastDayKey {
			return keys[(i+1)%len(keys)]
		}
	}
	return keys[0]
}
