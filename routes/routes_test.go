package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotelsa/database/repository"
	hotelRepo "hotelsa/database/repository/hotel"
	"hotelsa/handlers"
	"hotelsa/middleware"
	"hotelsa/screens"
	"hotelsa/services/booking"
	"hotelsa/services/catalog"
	"hotelsa/services/flags"
	"hotelsa/services/identity"
	"hotelsa/services/notification"
	"hotelsa/services/review"
	"hotelsa/services/session"
	"hotelsa/services/user"
	"hotelsa/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	testEmail    = "thandi@example.com"
	testPassword = "s3cret-pass"
)

type testApp struct {
	router     *gin.Engine
	identities *identity.MemoryBackend
	flags      *flags.MemoryStore
	repos      *repository.Repositories
	sessions   *session.Manager
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	ctx := context.Background()

	repos := repository.NewMemoryRepositories()
	if err := hotelRepo.Seed(ctx, repos.Hotels); err != nil {
		t.Fatalf("seed hotels: %v", err)
	}
	backend := identity.NewMemoryBackend()
	if _, err := backend.Seed("Thandi", testEmail, testPassword); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	store := flags.NewMemoryStore()

	notifService, err := notification.NewDefaultNotificationService(repos.Users, nil, logger)
	if err != nil {
		t.Fatalf("notification service: %v", err)
	}
	catalogService := catalog.NewCatalogService(repos.Hotels, repos.Reviews)
	bookingService := booking.NewBookingService(repos.Hotels, repos.Bookings, notification.InlineEnqueuer{Service: notifService}, logger)
	reviewService := review.NewReviewService(repos.Hotels, repos.Reviews, logger)
	userService := user.NewUserService(repos.Users, logger)

	registry, err := screens.BuildRegistry(screens.Deps{
		Catalog:         catalogService,
		Bookings:        bookingService,
		Users:           userService,
		DemoModeEnabled: true,
	})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	sessions := session.NewManager(&identity.DemoBackend{Primary: backend, Enabled: true, Logger: logger}, store, time.Hour, logger)
	t.Cleanup(sessions.CloseAll)

	tokens, err := utils.NewSessionTokens("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("tokens: %v", err)
	}

	r := gin.New()
	r.Use(utils.ErrorHandler())
	RegisterRoutes(r, &handlers.HandlerBundle{
		Sessions: sessions,
		Tokens:   tokens,
		Screens:  registry,
		Health:   utils.NewHealthMonitor("memory", nil, nil),
		Users:    userService,
		Bookings: bookingService,
		Reviews:  reviewService,
	})
	return &testApp{router: r, identities: backend, flags: store, repos: repos, sessions: sessions}
}

type client struct {
	app    *testApp
	device string
	token  string
}

type response struct {
	Code int
	Body map[string]any
}

func (a *testApp) request(t *testing.T, method, path, device, token string, body any) response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if device != "" {
		req.Header.Set(middleware.HeaderDeviceID, device)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	res := response{Code: rec.Code}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &res.Body); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return res
}

// startSession opens a session for device and returns a client bound to it.
func (a *testApp) startSession(t *testing.T, device string) (*client, response) {
	t.Helper()
	res := a.request(t, http.MethodPost, "/api/sessions", device, "", nil)
	if res.Code != http.StatusCreated {
		t.Fatalf("start session: status %d body %v", res.Code, res.Body)
	}
	token, _ := res.Body["token"].(string)
	if token == "" {
		t.Fatalf("start session: no token in %v", res.Body)
	}
	return &client{app: a, device: device, token: token}, res
}

func (c *client) do(t *testing.T, method, path string, body any) response {
	t.Helper()
	return c.app.request(t, method, path, c.device, c.token, body)
}

func (c *client) expect(t *testing.T, method, path string, body any, status int) response {
	t.Helper()
	res := c.do(t, method, path, body)
	if res.Code != status {
		t.Fatalf("%s %s: status %d, want %d; body %v", method, path, res.Code, status, res.Body)
	}
	return res
}

func frameOf(t *testing.T, res response) map[string]any {
	t.Helper()
	f, ok := res.Body["frame"].(map[string]any)
	if !ok {
		t.Fatalf("no frame in %v", res.Body)
	}
	return f
}

func screenOf(t *testing.T, res response) string {
	t.Helper()
	s, _ := frameOf(t, res)["screen"].(string)
	return s
}

func historyOf(t *testing.T, res response) []string {
	t.Helper()
	raw, _ := frameOf(t, res)["history"].([]any)
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		out = append(out, s.(string))
	}
	return out
}

// onboarded starts a session and finishes onboarding, leaving it on auth.
func (a *testApp) onboarded(t *testing.T, device string) *client {
	t.Helper()
	c, _ := a.startSession(t, device)
	res := c.expect(t, http.MethodPost, "/api/onboarding/complete", nil, http.StatusOK)
	if got := screenOf(t, res); got != "auth" {
		t.Fatalf("after onboarding screen = %q, want auth", got)
	}
	return c
}

func (c *client) signIn(t *testing.T) {
	t.Helper()
	res := c.expect(t, http.MethodPost, "/api/auth/signin", gin.H{"email": testEmail, "password": testPassword}, http.StatusOK)
	if got := screenOf(t, res); got != "home" {
		t.Fatalf("after sign in screen = %q, want home", got)
	}
}

func TestSessionLifecycle(t *testing.T) {
	app := newTestApp(t)

	c, res := app.startSession(t, "device-1")
	if got := screenOf(t, res); got != "onboarding" {
		t.Errorf("first screen = %q, want onboarding", got)
	}
	if frameOf(t, res)["view"] == nil {
		t.Error("first frame has no view")
	}

	c.expect(t, http.MethodGet, "/api/sessions/current", nil, http.StatusOK)

	// A token only works from the device it was issued to.
	res = app.request(t, http.MethodGet, "/api/sessions/current", "device-2", c.token, nil)
	if res.Code != http.StatusUnauthorized {
		t.Errorf("foreign device: status %d, want 401", res.Code)
	}
	res = app.request(t, http.MethodGet, "/api/sessions/current", "device-1", "", nil)
	if res.Code != http.StatusUnauthorized {
		t.Errorf("missing token: status %d, want 401", res.Code)
	}

	c.expect(t, http.MethodDelete, "/api/sessions/current", nil, http.StatusNoContent)
	c.expect(t, http.MethodGet, "/api/sessions/current", nil, http.StatusUnauthorized)
	if app.sessions.Len() != 0 {
		t.Errorf("sessions left = %d", app.sessions.Len())
	}
}

func TestStartSessionRequiresDevice(t *testing.T) {
	app := newTestApp(t)
	res := app.request(t, http.MethodPost, "/api/sessions", "", "", nil)
	if res.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", res.Code)
	}
}

func TestOnboardingIsRememberedPerDevice(t *testing.T) {
	app := newTestApp(t)
	app.onboarded(t, "device-1")

	_, res := app.startSession(t, "device-1")
	if got := screenOf(t, res); got != "auth" {
		t.Errorf("returning device screen = %q, want auth", got)
	}
	_, res = app.startSession(t, "device-2")
	if got := screenOf(t, res); got != "onboarding" {
		t.Errorf("new device screen = %q, want onboarding", got)
	}
}

func TestRestartReplacesDeviceSession(t *testing.T) {
	app := newTestApp(t)
	first, _ := app.startSession(t, "device-1")
	second, _ := app.startSession(t, "device-1")

	first.expect(t, http.MethodGet, "/api/sessions/current", nil, http.StatusUnauthorized)
	second.expect(t, http.MethodGet, "/api/sessions/current", nil, http.StatusOK)
	if app.sessions.Len() != 1 {
		t.Errorf("sessions = %d, want 1", app.sessions.Len())
	}
}

func TestGuardedNavigationWhileSignedOut(t *testing.T) {
	app := newTestApp(t)
	c := app.onboarded(t, "device-1")

	c.expect(t, http.MethodPost, "/api/nav/navigate", gin.H{"screen": "explore"}, http.StatusOK)
	c.expect(t, http.MethodPost, "/api/nav/navigate", gin.H{"screen": "hotel-details", "params": gin.H{"hotelId": "1"}}, http.StatusOK)

	for _, target := range []string{"booking", "rating"} {
		res := c.expect(t, http.MethodPost, "/api/nav/navigate", gin.H{"screen": target, "params": gin.H{"hotelId": "1"}}, http.StatusForbidden)
		if res.Body["error"] != "requires-auth" || res.Body["screen"] != "hotel-details" || res.Body["target"] != target {
			t.Errorf("navigate %s: body %v", target, res.Body)
		}
	}

	res := c.expect(t, http.MethodGet, "/api/sessions/current", nil, http.StatusOK)
	want := []string{"auth", "explore", "hotel-details"}
	if got := historyOf(t, res); !equal(got, want) {
		t.Errorf("history = %v, want %v", got, want)
	}

	// Confirming a booking signed out is declined the same way.
	res = c.expect(t, http.MethodPost, "/api/bookings", gin.H{"hotelId": "1", "checkInDate": "2030-01-10", "checkOutDate": "2030-01-12", "guests": 2, "rooms": 1}, http.StatusForbidden)
	if res.Body["target"] != "booking" {
		t.Errorf("confirm signed out: body %v", res.Body)
	}
}

func TestNavigationCommands(t *testing.T) {
	app := newTestApp(t)
	c := app.onboarded(t, "device-1")

	res := c.expect(t, http.MethodPost, "/api/nav/back", nil, http.StatusOK)
	if res.Body["popped"] != false || screenOf(t, res) != "auth" {
		t.Errorf("back at root: %v", res.Body)
	}

	c.expect(t, http.MethodPost, "/api/nav/navigate", gin.H{"screen": "explore", "params": gin.H{"sort": "price"}}, http.StatusOK)
	res = c.expect(t, http.MethodPost, "/api/nav/back", nil, http.StatusOK)
	if res.Body["popped"] != true || screenOf(t, res) != "auth" {
		t.Errorf("back: %v", res.Body)
	}

	res = c.expect(t, http.MethodPost, "/api/nav/replace", gin.H{"screen": "explore"}, http.StatusOK)
	if got := historyOf(t, res); !equal(got, []string{"explore"}) {
		t.Errorf("history after replace = %v", got)
	}
	if frameOf(t, res)["canGoBack"] != false {
		t.Error("canGoBack after replace")
	}

	c.expect(t, http.MethodPost, "/api/nav/navigate", gin.H{"screen": "lobby"}, http.StatusBadRequest)
	c.expect(t, http.MethodPost, "/api/nav/navigate", gin.H{}, http.StatusBadRequest)
}

func TestSignInBookAndReview(t *testing.T) {
	app := newTestApp(t)
	c := app.onboarded(t, "device-1")
	c.signIn(t)

	res := c.expect(t, http.MethodGet, "/api/sessions/current", nil, http.StatusOK)
	view, _ := frameOf(t, res)["view"].(map[string]any)
	if view["greeting"] != "Hello, Thandi" {
		t.Errorf("home view = %v", view)
	}

	c.expect(t, http.MethodPost, "/api/nav/navigate", gin.H{"screen": "hotel-details", "params": gin.H{"hotelId": "4"}}, http.StatusOK)
	c.expect(t, http.MethodPost, "/api/nav/navigate", gin.H{"screen": "booking", "params": gin.H{"hotelId": "4"}}, http.StatusOK)

	req := gin.H{"hotelId": "4", "checkInDate": "2030-01-10", "checkOutDate": "2030-01-12", "guests": 2, "rooms": 1}
	res = c.expect(t, http.MethodPost, "/api/bookings/quote", req, http.StatusOK)
	quote, _ := res.Body["quote"].(map[string]any)
	if quote["nights"] != float64(2) || quote["total"] != float64(10400) {
		t.Errorf("quote = %v", quote)
	}

	res = c.expect(t, http.MethodPost, "/api/bookings", req, http.StatusCreated)
	if got := historyOf(t, res); !equal(got, []string{"home"}) {
		t.Errorf("history after booking = %v, want [home]", got)
	}
	b, _ := res.Body["booking"].(map[string]any)
	if b["hotelName"] != "The Oyster Box" || b["status"] != "confirmed" {
		t.Errorf("booking = %v", b)
	}

	res = c.expect(t, http.MethodGet, "/api/bookings", nil, http.StatusOK)
	if list, _ := res.Body["bookings"].([]any); len(list) != 1 {
		t.Errorf("bookings = %v", res.Body["bookings"])
	}

	c.expect(t, http.MethodPost, "/api/nav/navigate", gin.H{"screen": "hotel-details", "params": gin.H{"hotelId": "4"}}, http.StatusOK)
	c.expect(t, http.MethodPost, "/api/nav/navigate", gin.H{"screen": "rating", "params": gin.H{"hotelId": "4"}}, http.StatusOK)

	c.expect(t, http.MethodPost, "/api/reviews", gin.H{"hotelId": "4", "rating": 0, "comment": "Lovely"}, http.StatusBadRequest)
	res = c.expect(t, http.MethodPost, "/api/reviews", gin.H{"hotelId": "4", "rating": 5, "comment": "Lovely stay"}, http.StatusCreated)
	if got := screenOf(t, res); got != "hotel-details" {
		t.Errorf("screen after review = %q, want hotel-details", got)
	}
	r, _ := res.Body["review"].(map[string]any)
	if r["userName"] != "Thandi" {
		t.Errorf("review = %v", r)
	}
}

func TestBookingValidation(t *testing.T) {
	app := newTestApp(t)
	c := app.onboarded(t, "device-1")
	c.signIn(t)

	c.expect(t, http.MethodPost, "/api/bookings/quote", gin.H{"hotelId": "4", "checkInDate": "2030-01-12", "checkOutDate": "2030-01-12", "guests": 2, "rooms": 1}, http.StatusBadRequest)
	c.expect(t, http.MethodPost, "/api/bookings/quote", gin.H{"hotelId": "4", "checkInDate": "2030-01-10", "checkOutDate": "2030-01-12", "guests": 0, "rooms": 1}, http.StatusBadRequest)
	c.expect(t, http.MethodPost, "/api/bookings/quote", gin.H{"hotelId": "99", "checkInDate": "2030-01-10", "checkOutDate": "2030-01-12", "guests": 2, "rooms": 1}, http.StatusNotFound)
}

func TestSignInFailures(t *testing.T) {
	app := newTestApp(t)
	c := app.onboarded(t, "device-1")

	res := c.expect(t, http.MethodPost, "/api/auth/signin", gin.H{"email": testEmail, "password": "wrong-password"}, http.StatusUnauthorized)
	if res.Body["error"] != "invalid-credentials" {
		t.Errorf("body = %v", res.Body)
	}
	c.expect(t, http.MethodPost, "/api/auth/signin", gin.H{"email": testEmail}, http.StatusBadRequest)

	res = c.expect(t, http.MethodGet, "/api/sessions/current", nil, http.StatusOK)
	if got := screenOf(t, res); got != "auth" {
		t.Errorf("screen after failed sign in = %q", got)
	}
}

func TestSignUpAndSignOut(t *testing.T) {
	app := newTestApp(t)
	c := app.onboarded(t, "device-1")

	res := c.expect(t, http.MethodPost, "/api/auth/signup", gin.H{"name": "Sipho", "email": "sipho@example.com", "password": "abc123"}, http.StatusCreated)
	if got := screenOf(t, res); got != "home" {
		t.Errorf("screen after sign up = %q", got)
	}
	c.expect(t, http.MethodPost, "/api/auth/signup", gin.H{"name": "Sipho", "email": "sipho@example.com", "password": "abc123"}, http.StatusConflict)

	c.expect(t, http.MethodPost, "/api/nav/navigate", gin.H{"screen": "profile"}, http.StatusOK)
	res = c.expect(t, http.MethodPut, "/api/profile", gin.H{"name": "Sipho M"}, http.StatusOK)
	if got := frameOf(t, res)["identity"].(map[string]any)["displayName"]; got != "Sipho M" {
		t.Errorf("displayName = %v", got)
	}
	c.expect(t, http.MethodPut, "/api/profile/push-token", gin.H{"token": "fcm-token"}, http.StatusOK)

	res = c.expect(t, http.MethodPost, "/api/auth/signout", nil, http.StatusOK)
	if got := historyOf(t, res); !equal(got, []string{"auth"}) {
		t.Errorf("history after sign out = %v, want [auth]", got)
	}
	c.expect(t, http.MethodGet, "/api/bookings", nil, http.StatusUnauthorized)
}

func TestDemoSignIn(t *testing.T) {
	app := newTestApp(t)
	c := app.onboarded(t, "device-1")

	res := c.expect(t, http.MethodPost, "/api/auth/signin", gin.H{"demo": true}, http.StatusOK)
	id, _ := res.Body["identity"].(map[string]any)
	if id["uid"] != identity.DemoUID || id["email"] != identity.DemoEmail || id["demo"] != true {
		t.Errorf("identity = %v", id)
	}
	if got := screenOf(t, res); got != "home" {
		t.Errorf("screen = %q, want home", got)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	app := newTestApp(t)
	a := app.onboarded(t, "device-a")
	b := app.onboarded(t, "device-b")

	a.signIn(t)
	res := b.expect(t, http.MethodGet, "/api/sessions/current", nil, http.StatusOK)
	if got := screenOf(t, res); got != "auth" {
		t.Errorf("other device moved to %q", got)
	}
}

func TestForgotPasswordAndStrength(t *testing.T) {
	app := newTestApp(t)
	c := app.onboarded(t, "device-1")

	c.expect(t, http.MethodPost, "/api/auth/forgot-password", gin.H{"email": testEmail}, http.StatusOK)
	c.expect(t, http.MethodPost, "/api/auth/forgot-password", gin.H{"email": "nobody@example.com"}, http.StatusNotFound)

	res := app.request(t, http.MethodGet, "/api/auth/password-strength?password=abc", "", "", nil)
	if res.Code != http.StatusOK || res.Body["strength"] != "Weak" {
		t.Errorf("strength: %d %v", res.Code, res.Body)
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	app.startSession(t, "device-1")

	res := app.request(t, http.MethodGet, "/health", "", "", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("status %d", res.Code)
	}
	status, _ := res.Body["status"].(map[string]any)
	if status["backend"] != "memory" || status["sessions"] != float64(1) {
		t.Errorf("status = %v", status)
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
