package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/onboarder/internal/client/client"
	"github.com/dmitrijs2005/onboarder/internal/client/models"
	"github.com/dmitrijs2005/onboarder/internal/client/repositories/kv"
	"github.com/dmitrijs2005/onboarder/internal/client/session"
	"github.com/dmitrijs2005/onboarder/internal/logging"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func getKV(t *testing.T, db *sql.DB, k string) []byte {
	t.Helper()
	v, err := kv.NewSQLiteRepository(db).Get(context.Background(), k)
	require.NoError(t, err)
	return v
}

// ---- fake client ----

// fakeClient реализует client.Client для юнит-тестов AuthService.
type fakeClient struct {
	// поведение/результаты
	SignInRet *models.AuthResult
	SignInErr error

	SignUpRet *models.AuthResult
	SignUpErr error

	InfoRet int
	InfoErr error

	// для проверок аргументов
	LastSignInEmail    string
	LastSignInPassword string
	LastSignUpEmail    string
	LastSignUpPassword string
	SignInCalls        int
}

func (f *fakeClient) SignIn(_ context.Context, email, password string) (*models.AuthResult, error) {
	f.SignInCalls++
	f.LastSignInEmail, f.LastSignInPassword = email, password
	return f.SignInRet, f.SignInErr
}

func (f *fakeClient) SignUp(_ context.Context, email, password string) (*models.AuthResult, error) {
	f.LastSignUpEmail, f.LastSignUpPassword = email, password
	return f.SignUpRet, f.SignUpErr
}

func (f *fakeClient) GetOnboardingInfo(context.Context) (int, error) { return f.InfoRet, f.InfoErr }

// остальные методы не используются этими тестами, но нужны интерфейсу
func (f *fakeClient) GetUser(context.Context, string) (*models.UserStatus, error) { return nil, nil }
func (f *fakeClient) GetOnboarding(context.Context, string) (*models.OnboardingState, error) {
	return nil, nil
}
func (f *fakeClient) SubmitOnboarding(context.Context, string, models.OnboardingSubmission) (*models.UserStatus, error) {
	return nil, nil
}
func (f *fakeClient) SetStepCount(context.Context, int) error { return nil }
func (f *fakeClient) GetAdminConfig(context.Context) (*models.OnboardingConfig, error) {
	return nil, nil
}
func (f *fakeClient) PutAdminConfig(context.Context, []models.OnboardingComponent) error { return nil }
func (f *fakeClient) ListUsers(context.Context) ([]models.UserProfile, error)          { return nil, nil }

func newService(t *testing.T, fc *fakeClient) (AuthService, *session.Store, *sql.DB) {
	t.Helper()
	db := setupDB(t)
	store := session.NewStore(db, fc, logging.Discard())
	return NewAuthService(fc, store, logging.Discard()), store, db
}

// ---- TESTS ----

func TestSignIn_CompletedUserGoesHome(t *testing.T) {
	fc := &fakeClient{SignInRet: &models.AuthResult{
		Token:                  "tok",
		HasCompletedOnboarding: true,
		User:                   models.UserProfile{Email: "a@b.com"},
	}}
	svc, store, db := newService(t, fc)

	view, err := svc.SignIn(context.Background(), "a@b.com", "x")
	require.NoError(t, err)
	require.Equal(t, models.ViewHome, view)

	require.Equal(t, "a@b.com", fc.LastSignInEmail)
	require.Equal(t, "x", fc.LastSignInPassword)
	require.Equal(t, "tok", store.Token())
	require.Equal(t, []byte("tok"), getKV(t, db, session.TokenKey))
	require.Contains(t, string(getKV(t, db, session.UserKey)), `"email":"a@b.com"`)
}

func TestSignIn_IncompleteUserGoesToOnboarding(t *testing.T) {
	fc := &fakeClient{SignInRet: &models.AuthResult{Token: "tok"}}
	svc, _, _ := newService(t, fc)

	view, err := svc.SignIn(context.Background(), "a@b.com", "x")
	require.NoError(t, err)
	require.Equal(t, models.ViewOnboarding, view)
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	cases := map[string]*fakeClient{
		"empty token": {SignInRet: &models.AuthResult{}},
		"401":         {SignInErr: &client.APIError{StatusCode: 401, Message: "Invalid credentials"}},
		"404":         {SignInErr: &client.APIError{StatusCode: 404, Message: "User not found"}},
	}
	for name, fc := range cases {
		t.Run(name, func(t *testing.T) {
			svc, store, _ := newService(t, fc)
			_, err := svc.SignIn(context.Background(), "a@b.com", "x")
			require.ErrorIs(t, err, ErrInvalidCredentials)
			require.False(t, store.IsAuthenticated())
		})
	}
}

func TestSignIn_TransportError_Wrapped(t *testing.T) {
	fc := &fakeClient{SignInErr: fmt.Errorf("%w: refused", client.ErrUnavailable)}
	svc, _, _ := newService(t, fc)

	_, err := svc.SignIn(context.Background(), "a@b.com", "x")
	require.ErrorIs(t, err, client.ErrUnavailable)
	require.True(t, strings.HasPrefix(err.Error(), "sign in error:"))
}

func TestSignIn_RequiredFields(t *testing.T) {
	fc := &fakeClient{}
	svc, _, _ := newService(t, fc)

	_, err := svc.SignIn(context.Background(), "  ", "x")
	require.ErrorIs(t, err, ErrEmailRequired)
	_, err = svc.SignIn(context.Background(), "a@b.com", "")
	require.ErrorIs(t, err, ErrPasswordRequired)
	require.Zero(t, fc.SignInCalls)
}

func TestSignUp_GoesToOnboarding(t *testing.T) {
	fc := &fakeClient{SignUpRet: &models.AuthResult{Token: "tok", User: models.UserProfile{Email: "a@b.com"}}}
	svc, store, _ := newService(t, fc)

	view, err := svc.SignUp(context.Background(), "a@b.com", "x")
	require.NoError(t, err)
	require.Equal(t, models.ViewOnboarding, view)
	require.Equal(t, "a@b.com", fc.LastSignUpEmail)
	require.Equal(t, "tok", store.Token())
	require.Equal(t, "a@b.com", store.User().Email)
}

func TestSignUp_ServerMessagePropagates(t *testing.T) {
	fc := &fakeClient{SignUpErr: &client.APIError{StatusCode: 409, Message: "User already exists"}}
	svc, store, _ := newService(t, fc)

	_, err := svc.SignUp(context.Background(), "a@b.com", "x")
	require.Error(t, err)
	require.Equal(t, "User already exists", client.Message(err))
	require.False(t, store.IsAuthenticated())
}

func TestSignUp_NoToken(t *testing.T) {
	fc := &fakeClient{SignUpRet: &models.AuthResult{}}
	svc, _, _ := newService(t, fc)

	_, err := svc.SignUp(context.Background(), "a@b.com", "x")
	require.Error(t, err)
	require.Equal(t, client.DefaultErrorMessage, client.Message(err))
}

func TestSignOut_ClearsTokenOnly(t *testing.T) {
	fc := &fakeClient{SignInRet: &models.AuthResult{Token: "tok", User: models.UserProfile{Email: "a@b.com"}}}
	svc, store, db := newService(t, fc)

	_, err := svc.SignIn(context.Background(), "a@b.com", "x")
	require.NoError(t, err)

	view, err := svc.SignOut(context.Background())
	require.NoError(t, err)
	require.Equal(t, models.ViewWelcome, view)
	require.False(t, store.IsAuthenticated())
	require.Nil(t, getKV(t, db, session.TokenKey))
	// кэш пользователя остаётся в хранилище
	require.NotNil(t, getKV(t, db, session.UserKey))
}

func TestStepCount(t *testing.T) {
	svc, _, _ := newService(t, &fakeClient{InfoRet: 2})
	require.Equal(t, 2, svc.StepCount(context.Background()))

	svc, _, _ = newService(t, &fakeClient{InfoErr: errors.New("down")})
	require.Equal(t, DefaultStepCount, svc.StepCount(context.Background()))

	svc, _, _ = newService(t, &fakeClient{InfoRet: 0})
	require.Equal(t, DefaultStepCount, svc.StepCount(context.Background()))
}
