package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/onboarder/internal/client/client"
	"github.com/dmitrijs2005/onboarder/internal/client/directory"
	"github.com/dmitrijs2005/onboarder/internal/client/models"
	"github.com/dmitrijs2005/onboarder/internal/client/onboarding"
	"github.com/dmitrijs2005/onboarder/internal/client/services"
	"github.com/stretchr/testify/assert"
)

func TestRenderProgress(t *testing.T) {
	var buf bytes.Buffer
	renderProgress(&buf, onboarding.Progress{Current: 2, Total: 4})
	assert.Equal(t, "[1] [2]  3   4 \n[##########----------] 50%\n", buf.String())

	buf.Reset()
	renderProgress(&buf, onboarding.Progress{Current: 3, Total: 3})
	assert.Contains(t, buf.String(), "[####################] 100%")
}

func TestRenderStep(t *testing.T) {
	var buf bytes.Buffer
	renderStep(&buf, onboarding.State{
		Progress: onboarding.Progress{Current: 1, Total: 2},
		Active: []onboarding.Component{
			{OnboardingComponent: models.OnboardingComponent{Name: "aboutMe"}, Kind: onboarding.KindAboutMe},
			{OnboardingComponent: models.OnboardingComponent{Name: "shoeSize"}, Kind: onboarding.KindUnknown},
		},
		Errors: onboarding.ValidationErrors{onboarding.FieldAboutMe: "About Me is required"},
	})

	s := buf.String()
	assert.Contains(t, s, "Step 1 of 2")
	assert.Contains(t, s, "- AboutMe\n")
	assert.Contains(t, s, "- ShoeSize (not supported by this client)")
	assert.Contains(t, s, "! About Me is required")
}

func TestRenderProfile(t *testing.T) {
	var buf bytes.Buffer
	renderProfile(&buf, models.UserProfile{Email: "a@b.com", City: "Springfield"})

	s := buf.String()
	assert.Contains(t, s, "a@b.com")
	assert.Contains(t, s, "Springfield")
	assert.Contains(t, s, "Not provided")
}

func TestRenderSessionExpiry(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	renderSessionExpiry(&buf, now.Add(time.Hour), now)
	assert.Equal(t, "Session valid until "+now.Add(time.Hour).Local().Format(time.DateTime)+"\n", buf.String())

	buf.Reset()
	renderSessionExpiry(&buf, now.Add(-time.Minute), now)
	assert.Equal(t, "Session expired, sign in again.\n", buf.String())
}

func TestRenderUsers(t *testing.T) {
	var buf bytes.Buffer
	renderUsers(&buf, directory.Snapshot{
		Users: []models.UserProfile{{
			Email:     "a@b.com",
			Address:   "1 Main St",
			City:      "Springfield",
			BirthDate: "1990-01-31",
		}},
		Err:       "boom",
		UpdatedAt: time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC),
	})

	s := buf.String()
	assert.Contains(t, s, "Error: boom")
	assert.Contains(t, s, "1 Main St, Springfield")
	assert.Contains(t, s, "Jan 31, 1990")
	assert.Contains(t, s, "Updated 12:30:00")
}

func TestErrorText(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{services.ErrInvalidCredentials, "Invalid credentials"},
		{fmt.Errorf("sign in error: %w", client.ErrUnavailable), "Error: Server unavailable, please try again"},
		{fmt.Errorf("sign up error: %w", &client.APIError{StatusCode: 409, Message: "User already exists"}), "Error: User already exists"},
		{onboarding.ValidationErrors{onboarding.FieldZip: "ZIP code is required"}, "Please fix the following: ZIP code is required"},
		{errors.New("boom"), "Error: boom"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, errorText(tt.err))
	}
}
