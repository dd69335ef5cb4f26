package onboarding

import "github.com/dmitrijs2005/onboarder/internal/client/models"

// Kind is the closed set of component variants the client can render.
// Names the server introduces later map to KindUnknown.
type Kind int

const (
	KindUnknown Kind = iota
	KindAboutMe
	KindAddress
	KindBirthDate
)

var kindsByName = map[string]Kind{
	models.ComponentAboutMe:   KindAboutMe,
	models.ComponentAddress:   KindAddress,
	models.ComponentBirthDate: KindBirthDate,
}

// KindOf maps a declared component name to its variant.
func KindOf(name string) Kind {
	if k, ok := kindsByName[name]; ok {
		return k
	}
	return KindUnknown
}

func (k Kind) String() string {
	switch k {
	case KindAboutMe:
		return models.ComponentAboutMe
	case KindAddress:
		return models.ComponentAddress
	case KindBirthDate:
		return models.ComponentBirthDate
	default:
		return "unknown"
	}
}

// Fields lists the profile keys the variant writes to.
func (k Kind) Fields() []string {
	switch k {
	case KindAboutMe:
		return []string{FieldAboutMe}
	case KindAddress:
		return []string{FieldAddress, FieldCity, FieldState, FieldZip}
	case KindBirthDate:
		return []string{FieldBirthDate}
	default:
		return nil
	}
}

// Component is a declaration resolved to its variant.
type Component struct {
	models.OnboardingComponent
	Kind Kind
}

// Resolve returns the components shown at step: active declarations for
// that step, in the order the server sent them.
func Resolve(declared []models.OnboardingComponent, step int) []Component {
	out := make([]Component, 0, len(declared))
	for _, c := range declared {
		if c.StepIndex != step || !c.IsActive {
			continue
		}
		out = append(out, Component{OnboardingComponent: c, Kind: KindOf(c.Name)})
	}
	return out
}
