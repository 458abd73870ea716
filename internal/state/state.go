package state

import "time"

// State represents a position in the card ordering flow.
type State string

const (
	// StateIdle indicates that the user has no flow in progress.
	StateIdle State = "idle"
	// StateCountry indicates that the flow awaits a country selection.
	StateCountry State = "country"
	// StateBank indicates that the flow awaits a bank selection.
	StateBank State = "bank"
	// StateDetails indicates that the user sees offering details and may
	// share a contact or open the web app to finish.
	StateDetails State = "details"
)

// Session captures one user's in-progress position within the ordering flow.
type Session struct {
	UserID       int64     `json:"user_id"`
	CurrentState State     `json:"current_state"`
	Country      string    `json:"country,omitempty"`
	Bank         string    `json:"bank,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Clone returns a copy so callers can never mutate stored sessions in place.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}

	copied := *s
	return &copied
}
