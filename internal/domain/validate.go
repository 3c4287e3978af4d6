package domain

import (
	"regexp"
	"strings"
)

// Indian mobile: 10 digits starting 6-9, optional +91 or leading zero.
var mobilePattern = regexp.MustCompile(`^(?:\+91[-\s]?|0?)?([6-9][0-9]{9})$`)

// NormalizeMobile strips any country prefix and returns the bare 10-digit
// number, or false when the input does not match the accepted pattern.
func NormalizeMobile(raw string) (string, bool) {
	m := mobilePattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// SubmissionForm holds the raw create-page input before validation.
type SubmissionForm struct {
	Name       string
	Mobile     string
	Goal       string
	CustomGoal string
	HasPhoto   bool
	Consent    bool
}

// Validate checks the form in a fixed order (name, mobile, goal, photo,
// consent) and stops at the first failure. On success the mobile is
// normalized in place and a custom goal replaces the "Other" marker.
func (f *SubmissionForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return &ValidationError{Field: "name", Message: "Please enter your name."}
	}
	mobile, ok := NormalizeMobile(f.Mobile)
	if !ok {
		return &ValidationError{Field: "mobile", Message: "Enter a valid 10-digit Indian mobile number (start 6-9)."}
	}
	goal := strings.TrimSpace(f.Goal)
	if goal == "" {
		return &ValidationError{Field: "goal", Message: "Please choose your dream career."}
	}
	if goal == "Other" {
		custom := strings.TrimSpace(f.CustomGoal)
		if custom == "" {
			return &ValidationError{Field: "goal", Message: "Please specify your dream career."}
		}
		goal = custom
	}
	if !f.HasPhoto {
		return &ValidationError{Field: "photo", Message: "Please capture or upload a clear face photo."}
	}
	if !f.Consent {
		return &ValidationError{Field: "consent", Message: "Consent is required."}
	}

	f.Name = strings.TrimSpace(f.Name)
	f.Mobile = mobile
	f.Goal = goal
	return nil
}
