package admin

import (
	"context"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/onboarder/internal/client/client"
	"github.com/dmitrijs2005/onboarder/internal/client/models"
	"github.com/dmitrijs2005/onboarder/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI keeps the configuration in memory the way the server would.
type fakeAPI struct {
	cfg models.OnboardingConfig

	GetErr  error
	PutErr  error
	StepErr error

	PutCalls      int
	LastPut       []models.OnboardingComponent
	LastStepCount int

	// stepHook runs inside SetStepCount, before it returns.
	stepHook func()
}

func (f *fakeAPI) GetAdminConfig(context.Context) (*models.OnboardingConfig, error) {
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	cfg := f.cfg
	cfg.Components = append([]models.OnboardingComponent(nil), f.cfg.Components...)
	return &cfg, nil
}

func (f *fakeAPI) PutAdminConfig(_ context.Context, components []models.OnboardingComponent) error {
	f.PutCalls++
	f.LastPut = components
	if f.PutErr != nil {
		return f.PutErr
	}
	f.cfg.Components = append([]models.OnboardingComponent(nil), components...)
	return nil
}

func (f *fakeAPI) SetStepCount(_ context.Context, n int) error {
	f.LastStepCount = n
	if f.stepHook != nil {
		f.stepHook()
	}
	if f.StepErr != nil {
		return f.StepErr
	}
	f.cfg.TotalStepCount = n
	return nil
}

func defaultConfig() models.OnboardingConfig {
	return models.OnboardingConfig{
		Components: []models.OnboardingComponent{
			{Name: "birthDate", StepIndex: 2, IsActive: true},
			{Name: "aboutMe", StepIndex: 2, IsActive: true},
			{Name: "address", StepIndex: 3, IsActive: true},
		},
		TotalStepCount: 3,
	}
}

func loaded(t *testing.T, api *fakeAPI) *Editor {
	t.Helper()
	e := NewEditor(api, logging.Discard())
	require.NoError(t, e.Load(context.Background()))
	return e
}

func activeCount(components []models.OnboardingComponent) map[string]int {
	out := map[string]int{}
	for _, c := range components {
		if c.IsActive {
			out[c.Name]++
		}
	}
	return out
}

func TestEditor_Load(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Components = append(cfg.Components, models.OnboardingComponent{Name: "aboutMe", StepIndex: 1})
	e := loaded(t, &fakeAPI{cfg: cfg})

	assert.Equal(t, []string{"aboutMe", "address", "birthDate"}, e.KnownNames())
	assert.Equal(t, 3, e.TotalStepCount())
	assert.Len(t, e.Components(), 4)
	assert.True(t, e.IsChecked(2, "aboutMe"))
	assert.False(t, e.IsChecked(1, "aboutMe"))
	assert.Equal(t, Banner{}, e.Banner())
}

func TestEditor_Load_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server message", &client.APIError{StatusCode: 500, Message: "db down"}, "db down"},
		{"transport", fmt.Errorf("%w: refused", client.ErrUnavailable), "Error loading configuration"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := NewEditor(&fakeAPI{GetErr: tt.err}, logging.Discard())
			require.Error(t, e.Load(context.Background()))
			assert.Equal(t, Banner{Error: tt.want}, e.Banner())
			require.ErrorIs(t, e.Toggle(1, "aboutMe", true), ErrNotLoaded)
			require.ErrorIs(t, e.Save(context.Background()), ErrNotLoaded)
		})
	}
}

func TestEditor_Toggle(t *testing.T) {
	t.Parallel()

	e := loaded(t, &fakeAPI{cfg: defaultConfig()})

	require.NoError(t, e.Toggle(1, "aboutMe", true))
	assert.True(t, e.IsChecked(1, "aboutMe"))
	assert.False(t, e.IsChecked(2, "aboutMe"))

	require.NoError(t, e.Toggle(1, "aboutMe", false))
	for step := 1; step <= 3; step++ {
		assert.False(t, e.IsChecked(step, "aboutMe"))
	}
	assert.Contains(t, e.KnownNames(), "aboutMe", "known names are fixed at load")

	require.NoError(t, e.Toggle(3, "aboutMe", true))
	assert.True(t, e.IsChecked(3, "aboutMe"))

	require.ErrorIs(t, e.Toggle(0, "aboutMe", true), ErrInvalidStep)
	require.ErrorIs(t, e.Toggle(4, "aboutMe", true), ErrInvalidStep)
}

func TestEditor_Toggle_AtMostOneActivePerName(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	// duplicates coming from the server are collapsed by the first toggle
	cfg.Components = append(cfg.Components, models.OnboardingComponent{Name: "address", StepIndex: 1, IsActive: true})
	e := loaded(t, &fakeAPI{cfg: cfg})

	seq := []struct {
		step    int
		name    string
		checked bool
	}{
		{1, "address", true},
		{2, "address", true},
		{3, "aboutMe", true},
		{1, "birthDate", false},
		{1, "birthDate", true},
		{2, "birthDate", true},
		{3, "address", false},
		{3, "address", true},
	}
	for _, s := range seq {
		require.NoError(t, e.Toggle(s.step, s.name, s.checked))
		for name, n := range activeCount(e.Components()) {
			assert.LessOrEqual(t, n, 1, "name %s after toggle %+v", name, s)
		}
	}
}

func TestEditor_Save(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{cfg: defaultConfig()}
	e := loaded(t, api)

	require.NoError(t, e.Toggle(1, "aboutMe", true))
	require.NoError(t, e.Save(context.Background()))

	assert.Equal(t, 1, api.PutCalls)
	assert.Equal(t, e.Components(), api.LastPut)
	assert.Equal(t, Banner{Success: MsgSaved}, e.Banner())

	require.NoError(t, e.Toggle(2, "aboutMe", true))
	assert.Equal(t, Banner{}, e.Banner(), "toggle clears the banner")
}

func TestEditor_Save_Error(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{cfg: defaultConfig()}
	e := loaded(t, api)
	api.PutErr = &client.APIError{StatusCode: 400, Message: "invalid component"}

	require.Error(t, e.Save(context.Background()))
	assert.Equal(t, Banner{Error: "invalid component"}, e.Banner())

	api.PutErr = &client.APIError{StatusCode: 500}
	require.Error(t, e.Save(context.Background()))
	assert.Equal(t, Banner{Error: "Error saving configuration"}, e.Banner())
}

func TestEditor_SaveReloadRoundTrip(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{cfg: defaultConfig()}
	e := loaded(t, api)

	require.NoError(t, e.SetStepCount(context.Background(), 2))
	require.NoError(t, e.Toggle(1, "aboutMe", true))
	require.NoError(t, e.Toggle(2, "address", true))
	require.NoError(t, e.Toggle(1, "birthDate", false))
	require.NoError(t, e.Save(context.Background()))

	reloaded := loaded(t, api)
	assert.Equal(t, 2, reloaded.TotalStepCount())
	assert.ElementsMatch(t, []models.OnboardingComponent{
		{Name: "aboutMe", StepIndex: 1, IsActive: true},
		{Name: "address", StepIndex: 2, IsActive: true},
	}, reloaded.Components())
}

func TestEditor_SetStepCount(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{cfg: defaultConfig()}
	e := loaded(t, api)
	before := e.Components()

	require.NoError(t, e.SetStepCount(context.Background(), 1))
	assert.Equal(t, 1, api.LastStepCount)
	assert.Equal(t, 1, e.TotalStepCount())
	assert.Equal(t, before, e.Components(), "declarations are untouched")
	assert.Equal(t, Banner{Success: MsgStepCountUpdated}, e.Banner())
	assert.False(t, e.UpdatingSteps())

	require.ErrorIs(t, e.SetStepCount(context.Background(), 0), ErrInvalidStepCount)
}

func TestEditor_SetStepCount_Error(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{cfg: defaultConfig(), StepErr: fmt.Errorf("%w: timeout", client.ErrUnavailable)}
	e := loaded(t, api)

	require.ErrorIs(t, e.SetStepCount(context.Background(), 2), client.ErrUnavailable)
	assert.Equal(t, 3, e.TotalStepCount())
	assert.Equal(t, Banner{Error: "Error updating step count"}, e.Banner())
	assert.False(t, e.UpdatingSteps())
}

func TestEditor_SetStepCount_InFlight(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{cfg: defaultConfig()}
	e := loaded(t, api)

	var nested error
	api.stepHook = func() {
		assert.True(t, e.UpdatingSteps())
		nested = e.SetStepCount(context.Background(), 1)
	}

	require.NoError(t, e.SetStepCount(context.Background(), 2))
	require.ErrorIs(t, nested, ErrStepCountInFlight)
	assert.Equal(t, 2, e.TotalStepCount())
}

func TestLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "AboutMe", Label("aboutMe"))
	assert.Equal(t, "BirthDate", Label("birthDate"))
	assert.Equal(t, "Address", Label("address"))
}
