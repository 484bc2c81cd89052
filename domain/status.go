package domain

// ValidStatus reports whether s is one of the three known statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ValidateStatusTransition checks that newValue is a legal status and that
// moving from oldValue to newValue is allowed. A completed task can never be
// reopened. The function is pure and performs no I/O.
func ValidateStatusTransition(newValue, oldValue Status) error {
	if !ValidStatus(newValue) {
		return ErrInvalidStatus
	}
	if oldValue == StatusCompleted && newValue != StatusCompleted {
		return ErrInvalidTransition
	}
	return nil
}
