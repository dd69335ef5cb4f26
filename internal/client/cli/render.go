package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/onboarder/internal/client/admin"
	"github.com/dmitrijs2005/onboarder/internal/client/directory"
	"github.com/dmitrijs2005/onboarder/internal/client/models"
	"github.com/dmitrijs2005/onboarder/internal/client/onboarding"
)

const progressWidth = 20

const notProvided = "Not provided"

// renderProgress draws numbered step markers and a bar, e.g.
//
//	[1] [2]  3
//	[#############-------] 66%
func renderProgress(w io.Writer, p onboarding.Progress) {
	markers := make([]string, 0, p.Total)
	for i := 1; i <= p.Total; i++ {
		if p.Reached(i) {
			markers = append(markers, fmt.Sprintf("[%d]", i))
		} else {
			markers = append(markers, fmt.Sprintf(" %d ", i))
		}
	}
	filled := p.Percent() * progressWidth / 100
	fmt.Fprintln(w, strings.Join(markers, " "))
	fmt.Fprintf(w, "[%s%s] %d%%\n", strings.Repeat("#", filled), strings.Repeat("-", progressWidth-filled), p.Percent())
}

func renderStep(w io.Writer, st onboarding.State) {
	renderProgress(w, st.Progress)
	fmt.Fprintf(w, "Step %d of %d\n", st.Progress.Current, st.Progress.Total)
	if len(st.Active) == 0 {
		fmt.Fprintln(w, "Nothing to fill in at this step.")
	}
	for _, c := range st.Active {
		if c.Kind == onboarding.KindUnknown {
			fmt.Fprintf(w, "  - %s (not supported by this client)\n", admin.Label(c.Name))
			continue
		}
		fmt.Fprintf(w, "  - %s\n", admin.Label(c.Name))
	}
	renderErrors(w, st.Errors)
}

func renderErrors(w io.Writer, errs onboarding.ValidationErrors) {
	for _, f := range errs.Fields() {
		fmt.Fprintf(w, "  ! %s\n", errs[f])
	}
}

func orNotProvided(s string) string {
	if s == "" {
		return notProvided
	}
	return s
}

func renderProfile(w io.Writer, u models.UserProfile) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Your Profile")
	fmt.Fprintf(tw, "Email\t%s\n", u.Email)
	fmt.Fprintf(tw, "About\t%s\n", orNotProvided(u.AboutMe))
	fmt.Fprintf(tw, "DOB\t%s\n", orNotProvided(u.BirthDate))
	fmt.Fprintf(tw, "Address\t%s\n", orNotProvided(u.Address))
	fmt.Fprintf(tw, "City\t%s\n", orNotProvided(u.City))
	fmt.Fprintf(tw, "State\t%s\n", orNotProvided(u.State))
	fmt.Fprintf(tw, "ZIP\t%s\n", orNotProvided(u.Zip))
	_ = tw.Flush()
}

// renderSessionExpiry reports when the stored token stops being accepted.
func renderSessionExpiry(w io.Writer, exp, now time.Time) {
	if !exp.After(now) {
		fmt.Fprintln(w, "Session expired, sign in again.")
		return
	}
	fmt.Fprintf(w, "Session valid until %s\n", exp.Local().Format(time.DateTime))
}

// renderAdmin prints one row per step and one column per known component,
// with "x" where the component is shown.
func renderAdmin(w io.Writer, e *admin.Editor) {
	names := e.KnownNames()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := []string{"Step"}
	for _, n := range names {
		header = append(header, admin.Label(n))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for step := 1; step <= e.TotalStepCount(); step++ {
		row := []string{fmt.Sprintf("%d", step)}
		for _, n := range names {
			mark := "."
			if e.IsChecked(step, n) {
				mark = "x"
			}
			row = append(row, mark)
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "Total steps: %d", e.TotalStepCount())
	if e.UpdatingSteps() {
		fmt.Fprint(w, " (updating...)")
	}
	fmt.Fprintln(w)

	b := e.Banner()
	if b.Error != "" {
		fmt.Fprintln(w, "Error:", b.Error)
	}
	if b.Success != "" {
		fmt.Fprintln(w, b.Success)
	}
}

func renderUsers(w io.Writer, s directory.Snapshot) {
	if s.Err != "" {
		fmt.Fprintln(w, "Error:", s.Err)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "EMAIL\tABOUT\tADDRESS\tBIRTHDATE\tCREATED")
	for _, u := range s.Users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			u.Email,
			orNotAvailable(u.AboutMe),
			directory.FormatAddress(u),
			directory.FormatDate(u.BirthDate),
			directory.FormatDate(u.CreatedAt),
		)
	}
	_ = tw.Flush()
	if !s.UpdatedAt.IsZero() {
		fmt.Fprintf(w, "Updated %s. This list refreshes automatically.\n", s.UpdatedAt.Format("15:04:05"))
	}
}

func orNotAvailable(s string) string {
	if s == "" {
		return directory.NotAvailable
	}
	return s
}
