package onboarding

import (
	"sort"
	"strings"

	"github.com/dmitrijs2005/onboarder/internal/client/models"
)

// Profile keys used in ValidationErrors.
const (
	FieldAboutMe   = "aboutMe"
	FieldAddress   = "address"
	FieldCity      = "city"
	FieldState     = "state"
	FieldZip       = "zip"
	FieldBirthDate = "birthDate"

	// FieldMessage holds errors that are not tied to a field.
	FieldMessage = "message"
)

// ValidationErrors maps a field (or FieldMessage) to a user-facing message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	keys := v.Fields()
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, v[k])
	}
	return strings.Join(msgs, "; ")
}

// Fields returns the failing keys in a stable order.
func (v ValidationErrors) Fields() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks the required fields of every component in active against
// draft. A nil result means the draft can be submitted.
func Validate(active []Component, draft models.UserProfile) ValidationErrors {
	errs := ValidationErrors{}
	blank := func(s string) bool { return strings.TrimSpace(s) == "" }

	for _, c := range active {
		switch c.Kind {
		case KindAboutMe:
			if blank(draft.AboutMe) {
				errs[FieldAboutMe] = "About Me is required"
			}
		case KindAddress:
			if blank(draft.Address) {
				errs[FieldAddress] = "Address is required"
			}
			if blank(draft.City) {
				errs[FieldCity] = "City is required"
			}
			if blank(draft.State) {
				errs[FieldState] = "State is required"
			}
			if blank(draft.Zip) {
				errs[FieldZip] = "ZIP code is required"
			}
		case KindBirthDate:
			if draft.BirthDate == "" {
				errs[FieldBirthDate] = "Birth date is required"
			}
		case KindUnknown:
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
