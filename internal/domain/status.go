package domain

// Application statuses, ordered by typical progression. The progression is
// advisory: any transition is allowed, only membership is validated.
const (
	StatusSaved      = "saved"       // found, not yet applied
	StatusApplied    = "applied"     // application submitted
	StatusFollowedUp = "followed_up" // sent a follow-up
	StatusInterview  = "interview"   // interview scheduled
	StatusOffer      = "offer"       // received an offer
	StatusRejected   = "rejected"    // got rejected
	StatusDeclined   = "declined"    // declined by the candidate
	StatusWithdrawn  = "withdrawn"   // withdrew the application
)

// ValidStatuses lists every recognized application status.
var ValidStatuses = []string{
	StatusSaved,
	StatusApplied,
	StatusFollowedUp,
	StatusInterview,
	StatusOffer,
	StatusRejected,
	StatusDeclined,
	StatusWithdrawn,
}

// ValidStatus reports whether s is a recognized application status.
func ValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}
