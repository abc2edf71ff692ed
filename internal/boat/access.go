package boat

// AccessibleBy decides whether a user may use a boat: a boat with no group
// restrictions is open to everyone, otherwise the user must share at least
// one group with the boat. Booking admission, the boat listing and the boat
// detail page all call this one function.
func AccessibleBy(boatGroupIDs, userGroupIDs []int) bool {
	if len(boatGroupIDs) == 0 {
		return true
	}

	userSet := make(map[int]struct{}, len(userGroupIDs))
	for _, id := range userGroupIDs {
		userSet[id] = struct{}{}
	}

	for _, id := range boatGroupIDs {
		if _, ok := userSet[id]; ok {
			return true
		}
	}

	return false
}
