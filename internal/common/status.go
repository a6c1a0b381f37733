package common

// Listing lifecycle states, derived from the flag triple. Inactive and
// Active together form the "not started" superstate; Ended is terminal.
const (
	Inactive = "Inactive"
	Active   = "Active"
	Started  = "Started"
	Ended    = "Ended"
)

func ListingState(isActive, isStarted, isEnded bool) string {
	switch {
	case isEnded:
		return Ended
	case isStarted:
		return Started
	case isActive:
		return Active
	default:
		return Inactive
	}
}
