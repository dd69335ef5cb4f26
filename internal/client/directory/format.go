package directory

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/onboarder/internal/client/models"
)

const (
	NotAvailable  = "N/A"
	DisplayLayout = "Jan 2, 2006"
)

// FormatAddress joins the non-empty address parts. A user without a street
// address has no address at all.
func FormatAddress(u models.UserProfile) string {
	if u.Address == "" {
		return NotAvailable
	}
	parts := make([]string, 0, 4)
	for _, p := range []string{u.Address, u.City, u.State, u.Zip} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// FormatDate renders an ISO date or RFC 3339 timestamp for display. Values
// that parse as neither are returned unchanged.
func FormatDate(s string) string {
	if s == "" {
		return NotAvailable
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DisplayLayout)
		}
	}
	return s
}
