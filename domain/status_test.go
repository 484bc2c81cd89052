package domain

import (
	"errors"
	"testing"
)

func TestValidateStatusTransition(t *testing.T) {
	tests := []struct {
		name     string
		newValue Status
		oldValue Status
		wantErr  error
	}{
		{"pending to in_progress", StatusInProgress, StatusPending, nil},
		{"pending to completed", StatusCompleted, StatusPending, nil},
		{"in_progress to completed", StatusCompleted, StatusInProgress, nil},
		{"in_progress back to pending", StatusPending, StatusInProgress, nil},
		{"completed stays completed", StatusCompleted, StatusCompleted, nil},
		{"completed to pending", StatusPending, StatusCompleted, ErrInvalidTransition},
		{"completed to in_progress", StatusInProgress, StatusCompleted, ErrInvalidTransition},
		{"empty new value", Status(""), StatusPending, ErrInvalidStatus},
		{"unknown new value", Status("done"), StatusPending, ErrInvalidStatus},
		{"unknown value beats transition check", Status("archived"), StatusCompleted, ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStatusTransition(tt.newValue, tt.oldValue)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidPriority(t *testing.T) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh} {
		if !ValidPriority(p) {
			t.Errorf("expected %q to be valid", p)
		}
	}
	if ValidPriority("urgent") {
		t.Error("expected 'urgent' to be invalid")
	}
	if ValidPriority("") {
		t.Error("expected empty priority to be invalid")
	}
}

func TestIsDomainError(t *testing.T) {
	if !IsDomainError(ErrTaskLimitReached, ErrCodeBusinessRule) {
		t.Error("expected task limit error to classify as business rule")
	}
	if IsDomainError(ErrTaskNotFound, ErrCodeBusinessRule) {
		t.Error("expected not-found error not to classify as business rule")
	}
	wrapped := WrapError(ErrCodeInternal, "store unavailable", ErrTaskNotFound)
	if !IsDomainError(wrapped, ErrCodeInternal) {
		t.Error("expected wrapped error to keep its outer code")
	}
}
