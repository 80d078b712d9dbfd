package report

// Recompute converts a task's budget and its accumulated worked seconds
// into (overtime, savedTime). Tasks without a positive estimate are not
// budget-tracked and always yield zeros. At most one of the two results
// is positive.
func Recompute(estimated, accumulated int64) (overtime, saved int64) {
	if estimated <= 0 {
		return 0, 0
	}
	switch {
	case accumulated > estimated:
		return accumulated - estimated, 0
	case accumulated < estimated:
		return 0, estimated - accumulated
	default:
		return 0, 0
	}
}
