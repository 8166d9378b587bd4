package quota

import (
	"errors"
	"fmt"
)

// DefaultLimit is the number of AI-assisted operations a standard account gets.
const DefaultLimit = 3

var (
	// ErrLimitReached indicates the user exhausted their analysis quota.
	ErrLimitReached = errors.New("analysis limit reached")
	// ErrUserNotFound indicates no quota record exists for the user.
	ErrUserNotFound = errors.New("user not found")
)

// Snapshot is a point-in-time view of a user's quota.
type Snapshot struct {
	AnalysisCount     int  `json:"analysisCount"`
	UnlimitedAnalysis bool `json:"unlimitedAnalysis"`
	Limit             int  `json:"limit"`
}

// Remaining reports how many operations are left; -1 means unlimited.
func (s Snapshot) Remaining() int {
	if s.UnlimitedAnalysis {
		return -1
	}
	left := s.Limit - s.AnalysisCount
	if left < 0 {
		left = 0
	}
	return left
}

// RemainingValue renders the remaining count for API responses,
// using the literal "unlimited" for override accounts.
func (s Snapshot) RemainingValue() any {
	if s.UnlimitedAnalysis {
		return "unlimited"
	}
	return s.Remaining()
}

// LimitMessage is the user-facing rejection text.
func LimitMessage(limit int) string {
	return fmt.Sprintf("You have reached the maximum number of analyses (%d). Please upgrade your account for more analyses.", limit)
}
