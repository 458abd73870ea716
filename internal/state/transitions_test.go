package state

import "testing"

func TestIsTransitionAllowed(t *testing.T) {
	testCases := []struct {
		name    string
		from    State
		to      State
		allowed bool
	}{
		{"idle to country", StateIdle, StateCountry, true},
		{"country to bank", StateCountry, StateBank, true},
		{"bank to details", StateBank, StateDetails, true},
		{"bank back to country", StateBank, StateCountry, true},
		{"details back to bank", StateDetails, StateBank, true},
		{"details back to country", StateDetails, StateCountry, true},
		{"idle cannot skip to bank", StateIdle, StateBank, false},
		{"idle cannot skip to details", StateIdle, StateDetails, false},
		{"country cannot skip to details", StateCountry, StateDetails, false},
		{"details cannot repeat", StateDetails, StateDetails, false},
		{"country to idle always allowed", StateCountry, StateIdle, true},
		{"bank to idle always allowed", StateBank, StateIdle, true},
		{"details to idle always allowed", StateDetails, StateIdle, true},
		{"unknown state to idle allowed", State("bogus"), StateIdle, true},
		{"unknown state to country denied", State("bogus"), StateCountry, false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := IsTransitionAllowed(tc.from, tc.to); got != tc.allowed {
				t.Fatalf("IsTransitionAllowed(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.allowed)
			}
		})
	}
}
