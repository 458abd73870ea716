package state

// validTransitions contains the permitted forward and backward moves in the
// ordering flow. Returning to StateIdle (main menu) is always allowed and is
// handled separately in IsTransitionAllowed.
var validTransitions = map[State][]State{
	StateIdle: {
		StateCountry,
	},
	StateCountry: {
		StateBank,
	},
	StateBank: {
		StateDetails,
		StateCountry,
	},
	StateDetails: {
		StateBank,
		StateCountry,
	},
}

// IsTransitionAllowed reports whether moving from one state to another is valid.
func IsTransitionAllowed(from, to State) bool {
	if to == StateIdle {
		return true
	}

	allowed, ok := validTransitions[from]
	if !ok {
		return false
	}

	for _, state := range allowed {
		if state == to {
			return true
		}
	}

	return false
}
