package wizard

import (
	"github.com/google/uuid"

	"futureself/internal/domain"
)

// Session is the explicit context object for one visitor's flow. It is owned
// by the interaction that created it and must never be shared across flows;
// there is no ambient global state.
type Session struct {
	ID    string
	State State

	Form         domain.SubmissionForm
	SubmissionID string

	OriginalImage  []byte
	GeneratedImage []byte
	Card           []byte

	BackupURL    string
	BackupFileID string

	// Warnings collects soft failures (backup upload, record patch) for
	// display on the result page.
	Warnings []string
}

// NewSession starts a fresh flow on the home page.
func NewSession() *Session {
	return &Session{ID: uuid.NewString(), State: StateHome}
}

// reset clears everything generated by the previous run while preserving the
// visitor's name and mobile for convenience.
func (s *Session) reset() {
	s.Form = domain.SubmissionForm{Name: s.Form.Name, Mobile: s.Form.Mobile}
	s.SubmissionID = ""
	s.OriginalImage = nil
	s.GeneratedImage = nil
	s.Card = nil
	s.BackupURL = ""
	s.BackupFileID = ""
	s.Warnings = nil
	s.State = StateCreate
}
