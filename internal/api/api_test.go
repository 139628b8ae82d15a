package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agency-admin-api/internal/api"
	"github.com/agency-admin-api/internal/config"
	"github.com/agency-admin-api/internal/mocks"
	"github.com/agency-admin-api/internal/models"
	"github.com/agency-admin-api/internal/payment"
	"github.com/agency-admin-api/internal/repository"
	"github.com/agency-admin-api/internal/service"
)

type testEnv struct {
	router   *gin.Engine
	repos    *repository.Repositories
	provider *mocks.MockPaymentProvider
}

func newTestEnv() *testEnv {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenTTL = time.Hour
	cfg.Server.BaseURL = "https://admin.example.com"

	repos := mocks.NewMockRepositories()
	provider := mocks.NewMockPaymentProvider()
	services := service.NewServices(repos, provider, nil, cfg, zerolog.Nop())

	return &testEnv{
		router:   api.NewRouter(services, cfg, zerolog.Nop()),
		repos:    repos,
		provider: provider,
	}
}

func (env *testEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// signupAndLogin creates an account through the public API and returns
// the issued token
func (env *testEnv) signupAndLogin(t *testing.T, email string) string {
	t.Helper()
	w := env.do(http.MethodPost, "/api/users", "", models.SignupRequest{
		Username: "tester", Email: email, Password: "pw123456",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Signup returned %d: %s", w.Code, w.Body.String())
	}

	w = env.do(http.MethodPost, "/api/users/login", "", models.LoginRequest{
		Email: email, Password: "pw123456",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Login returned %d: %s", w.Code, w.Body.String())
	}

	var resp models.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Login body: %v", err)
	}
	return resp.Token
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv()
	w := env.do(http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	env := newTestEnv()

	for _, path := range []string{"/api/users", "/api/projects", "/api/dashboard", "/api/estimates"} {
		w := env.do(http.MethodGet, path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token: expected 401, got %d", path, w.Code)
		}
	}

	w := env.do(http.MethodGet, "/api/users", "not-a-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Garbage token: expected 401, got %d", w.Code)
	}
}

func TestAuthFlow(t *testing.T) {
	env := newTestEnv()
	token := env.signupAndLogin(t, "flow@example.com")

	w := env.do(http.MethodGet, "/api/users", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Authenticated list returned %d: %s", w.Code, w.Body.String())
	}

	var users []models.User
	if err := json.Unmarshal(w.Body.Bytes(), &users); err != nil {
		t.Fatalf("Decode users: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("Expected 1 user, got %d", len(users))
	}
}

func TestErrorEnvelope(t *testing.T) {
	env := newTestEnv()
	token := env.signupAndLogin(t, "err@example.com")

	w := env.do(http.MethodGet, "/api/projects/"+uuid.NewString(), token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Decode error body: %v", err)
	}
	if body.Error.Code != "not_found" {
		t.Errorf("Expected code not_found, got %q", body.Error.Code)
	}
	if body.Error.Message == "" {
		t.Error("Expected a message")
	}
}

func TestPublicEstimateSubmission(t *testing.T) {
	env := newTestEnv()

	w := env.do(http.MethodPost, "/api/estimates", "", models.Estimate{
		RequestDetails: models.EstimateRequestDetails{Title: "Shop", Service: "web"},
		Client:         models.EstimateClient{Email: "lead@example.com"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Listing the estimates still needs a token
	if w := env.do(http.MethodGet, "/api/estimates", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", w.Code)
	}
}

func TestWebhookEndpoint(t *testing.T) {
	env := newTestEnv()
	token := env.signupAndLogin(t, "owner@example.com")

	// Create a project and open a checkout session
	w := env.do(http.MethodPost, "/api/projects", token, models.CreateEngagementRequest{
		Title: "Site", Email: "owner@example.com", Price: 700,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Create project returned %d: %s", w.Code, w.Body.String())
	}
	var e models.Engagement
	json.Unmarshal(w.Body.Bytes(), &e)

	w = env.do(http.MethodPost, "/api/stripe/checkout", token, map[string]string{"project_id": e.ID})
	if w.Code != http.StatusOK {
		t.Fatalf("Checkout returned %d: %s", w.Code, w.Body.String())
	}

	stored, _ := env.repos.Engagement.GetByID(context.Background(), e.ID)
	sessionID := stored.CheckoutSessionID

	// Signature failure is rejected with no state change
	env.provider.ParseFunc = func(payload []byte, signature string) (*payment.Event, error) {
		return nil, errors.New("bad signature")
	}
	if w := env.do(http.MethodPost, "/api/stripe/webhook", "", map[string]string{}); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad signature, got %d", w.Code)
	}

	// Valid succeeded event marks the project paid
	env.provider.ParseFunc = func(payload []byte, signature string) (*payment.Event, error) {
		return &payment.Event{Type: payment.EventPaymentSucceeded, SessionID: sessionID}, nil
	}
	if w := env.do(http.MethodPost, "/api/stripe/webhook", "", map[string]string{}); w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}

	final, _ := env.repos.Engagement.GetByID(context.Background(), e.ID)
	if final.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("Expected paid, got %s", final.PaymentStatus)
	}
}

func TestPublicArticleReads(t *testing.T) {
	env := newTestEnv()
	token := env.signupAndLogin(t, "writer@example.com")

	w := env.do(http.MethodPost, "/api/articles", token, models.Article{
		Title: "Launch notes", Heading: "h", Body: "content", Status: "published",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Create article returned %d: %s", w.Code, w.Body.String())
	}
	var a models.Article
	json.Unmarshal(w.Body.Bytes(), &a)

	// Reads are public, writes are not
	if w := env.do(http.MethodGet, "/api/articles", "", nil); w.Code != http.StatusOK {
		t.Errorf("Public list returned %d", w.Code)
	}
	if w := env.do(http.MethodGet, "/api/articles/"+a.ID, "", nil); w.Code != http.StatusOK {
		t.Errorf("Public get returned %d", w.Code)
	}
	if w := env.do(http.MethodDelete, "/api/articles/"+a.ID, "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("Unauthenticated delete returned %d", w.Code)
	}
}

func TestVisitTrackingEndpoints(t *testing.T) {
	env := newTestEnv()

	if w := env.do(http.MethodPost, "/api/analytics/visits/landing", "", nil); w.Code != http.StatusCreated {
		t.Errorf("Landing tracking returned %d", w.Code)
	}
	if w := env.do(http.MethodPost, "/api/analytics/visits/user", "", map[string]string{
		"user_id": "u1", "area": "dashboard",
	}); w.Code != http.StatusCreated {
		t.Errorf("User tracking returned %d", w.Code)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	env := newTestEnv()

	w := env.do(http.MethodGet, "/api/users/logout", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Logout returned %d", w.Code)
	}

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("Expected the token cookie to be cleared")
	}
}
