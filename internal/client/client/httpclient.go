package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/onboarder/internal/client/models"
	"github.com/google/uuid"
)

const (
	RequestIDHeaderName = "X-Request-ID"

	defaultTimeout = 10 * time.Second
)

// HTTPClient talks JSON to the onboarding API rooted at baseURL.
type HTTPClient struct {
	baseURL   *url.URL
	http      *http.Client
	timeout   time.Duration
	requestID func() string
}

// Option customises an HTTPClient.
type Option func(*HTTPClient)

// WithRequestIDFunc replaces the X-Request-ID generator.
func WithRequestIDFunc(fn func() string) Option {
	return func(c *HTTPClient) { c.requestID = fn }
}

// NewHTTPClient validates baseURL and builds a client. Each request is bounded
// by timeout; a non-positive timeout selects the default of 10s.
func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid api url %q: missing host", baseURL)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &HTTPClient{
		baseURL:   u,
		http:      &http.Client{},
		timeout:   timeout,
		requestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *HTTPClient) endpoint(path string) string {
	return c.baseURL.JoinPath(path).String()
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeaderName, c.requestID())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.mapError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.mapError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func newAPIError(resp *http.Response, body []byte) *APIError {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && strings.TrimSpace(er.Message) != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: er.Message}
	}
	msg := http.StatusText(resp.StatusCode)
	if msg == "" {
		msg = DefaultErrorMessage
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

func (c *HTTPClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func (c *HTTPClient) SignIn(ctx context.Context, email, password string) (*models.AuthResult, error) {
	var res models.AuthResult
	if err := c.do(ctx, http.MethodPost, "/user/sign-in", "", models.Credentials{Email: email, Password: password}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) SignUp(ctx context.Context, email, password string) (*models.AuthResult, error) {
	var res models.AuthResult
	if err := c.do(ctx, http.MethodPost, "/user/sign-up", "", models.Credentials{Email: email, Password: password}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, token string) (*models.UserStatus, error) {
	var res models.UserStatus
	if err := c.do(ctx, http.MethodGet, "/user", token, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) GetOnboarding(ctx context.Context, token string) (*models.OnboardingState, error) {
	var res onboardingResponse
	if err := c.do(ctx, http.MethodGet, "/onboarding", token, nil, &res); err != nil {
		return nil, err
	}
	return res.toModel(), nil
}

func (c *HTTPClient) SubmitOnboarding(ctx context.Context, token string, sub models.OnboardingSubmission) (*models.UserStatus, error) {
	if sub.Components == nil {
		sub.Components = []models.OnboardingComponent{}
	}
	var res models.UserStatus
	if err := c.do(ctx, http.MethodPatch, "/onboarding", token, sub, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) GetOnboardingInfo(ctx context.Context) (int, error) {
	var res onboardingInfoResponse
	if err := c.do(ctx, http.MethodGet, "/onboarding/info", "", nil, &res); err != nil {
		return 0, err
	}
	return res.TotalStepCount, nil
}

func (c *HTTPClient) SetStepCount(ctx context.Context, stepCount int) error {
	return c.do(ctx, http.MethodPut, "/onboarding/step-count", "", stepCountRequest{StepCount: stepCount}, nil)
}

func (c *HTTPClient) GetAdminConfig(ctx context.Context) (*models.OnboardingConfig, error) {
	var res models.OnboardingConfig
	if err := c.do(ctx, http.MethodGet, "/admin/config", "", nil, &res); err != nil {
		return nil, err
	}
	if res.Components == nil {
		res.Components = []models.OnboardingComponent{}
	}
	return &res, nil
}

func (c *HTTPClient) PutAdminConfig(ctx context.Context, components []models.OnboardingComponent) error {
	if components == nil {
		components = []models.OnboardingComponent{}
	}
	return c.do(ctx, http.MethodPut, "/admin/config", "", components, nil)
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.UserProfile, error) {
	var res []models.UserProfile
	if err := c.do(ctx, http.MethodGet, "/users", "", nil, &res); err != nil {
		return nil, err
	}
	if res == nil {
		res = []models.UserProfile{}
	}
	return res, nil
}
