// Package apitest provides an in-memory onboarding API for tests. It serves
// every endpoint the client calls, keeps users and configuration in memory
// and counts requests so tests can assert on the traffic a flow produced.
package apitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/onboarder/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

var signingKey = []byte("apitest")

type account struct {
	password    string
	profile     models.UserProfile
	currentStep int
	completed   bool
}

// Server is a fake onboarding API. The zero value is not usable; call
// NewServer.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	accounts   map[string]*account
	components []models.OnboardingComponent
	total      int
	hits       map[string]int
	requestIDs []string
	now        func() time.Time
}

// DefaultConfig is the configuration a new Server starts with.
func DefaultConfig() models.OnboardingConfig {
	return models.OnboardingConfig{
		Components: []models.OnboardingComponent{
			{Name: models.ComponentAboutMe, StepIndex: 1, IsActive: true},
			{Name: models.ComponentBirthDate, StepIndex: 2, IsActive: true},
			{Name: models.ComponentAddress, StepIndex: 2, IsActive: true},
		},
		TotalStepCount: 2,
	}
}

// NewServer starts a fake API with cfg and closes it when t finishes.
func NewServer(t testing.TB, cfg models.OnboardingConfig) *Server {
	t.Helper()

	s := &Server{
		accounts:   map[string]*account{},
		components: append([]models.OnboardingComponent(nil), cfg.Components...),
		total:      cfg.TotalStepCount,
		hits:       map[string]int{},
		now:        time.Now,
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.count)

	r.Route("/user", func(u chi.Router) {
		u.Post("/sign-in", s.signIn)
		u.Post("/sign-up", s.signUp)
		u.With(s.auth).Get("/", s.getUser)
	})
	r.Route("/onboarding", func(o chi.Router) {
		o.With(s.auth).Get("/", s.getOnboarding)
		o.With(s.auth).Patch("/", s.patchOnboarding)
		o.Get("/info", s.getInfo)
		o.Put("/step-count", s.putStepCount)
	})
	r.Get("/admin/config", s.getAdminConfig)
	r.Put("/admin/config", s.putAdminConfig)
	r.Get("/users", s.listUsers)
	return r
}

// Hits returns how many requests were made to method and path.
func (s *Server) Hits(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[method+" "+path]
}

// RequestIDs returns the X-Request-ID headers seen so far, in order.
func (s *Server) RequestIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requestIDs...)
}

// Config returns the stored configuration.
func (s *Server) Config() models.OnboardingConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.OnboardingConfig{
		Components:     append([]models.OnboardingComponent(nil), s.components...),
		TotalStepCount: s.total,
	}
}

// Token issues a token for email that expires after ttl.
func (s *Server) Token(email string, ttl time.Duration) string {
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(s.now()),
		ExpiresAt: jwt.NewNumericDate(s.now().Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		panic(fmt.Sprintf("apitest: sign token: %v", err))
	}
	return signed
}

// AddUser registers an account directly, bypassing sign-up.
func (s *Server) AddUser(email, password string, step int, completed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[email] = &account{
		password:    password,
		profile:     models.UserProfile{Email: email, CreatedAt: s.now().UTC().Format(time.RFC3339)},
		currentStep: step,
		completed:   completed,
	}
}

type ctxKey struct{}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.Method+" "+strings.TrimSuffix(r.URL.Path, "/")]++
		if id := r.Header.Get("X-Request-ID"); id != "" {
			s.requestIDs = append(s.requestIDs, id)
		}
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var claims jwt.RegisteredClaims
		_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) { return signingKey, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithTimeFunc(s.now))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		s.mu.Lock()
		_, exists := s.accounts[claims.Subject]
		s.mu.Unlock()
		if !exists {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		next.ServeHTTP(w, r.WithContext(withEmail(r.Context(), claims.Subject)))
	})
}

func (s *Server) signIn(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if !readJSON(w, r, &creds) {
		return
	}

	s.mu.Lock()
	acc, ok := s.accounts[creds.Email]
	s.mu.Unlock()
	if !ok || acc.password != creds.Password {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	s.mu.Lock()
	res := models.AuthResult{HasCompletedOnboarding: acc.completed, User: acc.profile}
	s.mu.Unlock()
	res.Token = s.Token(creds.Email, time.Hour)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) signUp(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if !readJSON(w, r, &creds) {
		return
	}
	if creds.Email == "" || creds.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	s.mu.Lock()
	if _, exists := s.accounts[creds.Email]; exists {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, "User already exists")
		return
	}
	s.mu.Unlock()

	s.AddUser(creds.Email, creds.Password, 1, false)

	s.mu.Lock()
	profile := s.accounts[creds.Email].profile
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, models.AuthResult{Token: s.Token(creds.Email, time.Hour), User: profile})
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	acc := s.accounts[emailFrom(r.Context())]
	res := models.UserStatus{HasCompletedOnboarding: acc.completed, User: acc.profile}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, res)
}

type nameOnly struct {
	Name string `json:"name"`
}

// getOnboarding answers with bare names scoped to the user's current step,
// the shape the production server uses.
func (s *Server) getOnboarding(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	acc := s.accounts[emailFrom(r.Context())]
	comps := []nameOnly{}
	for _, c := range s.components {
		if c.IsActive && c.StepIndex == acc.currentStep {
			comps = append(comps, nameOnly{Name: c.Name})
		}
	}
	res := map[string]any{
		"onboardingComponents": comps,
		"user":                 acc.profile,
		"currentStep":          acc.currentStep,
		"totalStepCount":       s.total,
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) patchOnboarding(w http.ResponseWriter, r *http.Request) {
	var sub models.OnboardingSubmission
	if !readJSON(w, r, &sub) {
		return
	}

	s.mu.Lock()
	acc := s.accounts[emailFrom(r.Context())]
	email := acc.profile.Email
	created := acc.profile.CreatedAt
	acc.profile = sub.User
	acc.profile.Email = email
	acc.profile.CreatedAt = created
	if acc.currentStep >= s.total {
		acc.completed = true
	} else {
		acc.currentStep++
	}
	res := models.UserStatus{HasCompletedOnboarding: acc.completed, User: acc.profile}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) getInfo(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	total := s.total
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]int{"totalStepCount": total})
}

func (s *Server) putStepCount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StepCount int `json:"stepCount"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	if req.StepCount < 1 {
		writeError(w, http.StatusBadRequest, "Step count must be positive")
		return
	}
	s.mu.Lock()
	s.total = req.StepCount
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]int{"totalStepCount": req.StepCount})
}

func (s *Server) getAdminConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Config())
}

func (s *Server) putAdminConfig(w http.ResponseWriter, r *http.Request) {
	var comps []models.OnboardingComponent
	if !readJSON(w, r, &comps) {
		return
	}
	for _, c := range comps {
		if c.Name == "" || c.StepIndex < 1 {
			writeError(w, http.StatusBadRequest, "Invalid component declaration")
			return
		}
	}
	s.mu.Lock()
	s.components = comps
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}

func (s *Server) listUsers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	users := make([]models.UserProfile, 0, len(s.accounts))
	for _, acc := range s.accounts {
		users = append(users, acc.profile)
	}
	s.mu.Unlock()
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	writeJSON(w, http.StatusOK, users)
}
