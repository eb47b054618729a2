package identity

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/googleapi"
)

func newTestBackend(t *testing.T) *MemoryBackend {
	t.Helper()
	b := NewMemoryBackend()
	b.cost = bcrypt.MinCost
	return b
}

// recorder collects identity notifications in arrival order.
type recorder struct {
	events []*Identity
}

func (r *recorder) listen(id *Identity) {
	r.events = append(r.events, id)
}

func (r *recorder) uids() []string {
	out := make([]string, len(r.events))
	for i, e := range r.events {
		if e != nil {
			out[i] = e.UID
		}
	}
	return out
}

func TestMemorySubscribeOrdering(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)
	if _, err := b.Seed("Ada", "ada@example.com", "secret1"); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Seed("Bo", "bo@example.com", "secret2"); err != nil {
		t.Fatal(err)
	}

	c := b.Session("device-1")
	rec := &recorder{}
	dispose, err := c.Subscribe(rec.listen)
	if err != nil {
		t.Fatal(err)
	}

	u1, err := c.SignIn(ctx, Credentials{Email: "ada@example.com", Password: "secret1"})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SignOut(ctx); err != nil {
		t.Fatal(err)
	}
	u2, err := c.SignIn(ctx, Credentials{Email: "bo@example.com", Password: "secret2"})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"", u1.UID, "", u2.UID}
	got := rec.uids()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events = %v, want %v", got, want)
		}
	}

	dispose()
	dispose()
	_ = c.SignOut(ctx)
	if len(rec.events) != len(want) {
		t.Fatal("listener called after dispose")
	}
}

func TestMemorySignInErrors(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)
	if _, err := b.Seed("Ada", "ada@example.com", "secret1"); err != nil {
		t.Fatal(err)
	}
	c := b.Session("d")

	tests := []struct {
		name  string
		creds Credentials
		code  ErrorCode
	}{
		{"wrong password", Credentials{Email: "ada@example.com", Password: "nope"}, CodeInvalidCredentials},
		{"unknown user", Credentials{Email: "who@example.com", Password: "secret1"}, CodeInvalidCredentials},
		{"empty fields", Credentials{}, CodeInvalidCredentials},
		{"id token", Credentials{IDToken: "abc"}, CodeInvalidCredentials},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.SignIn(ctx, tc.creds)
			if !IsCode(err, tc.code) {
				t.Fatalf("err = %v, want %s", err, tc.code)
			}
		})
	}
	if c.Current() != nil {
		t.Fatal("failed sign in left an identity behind")
	}
}

func TestMemorySignUp(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)
	c := b.Session("d")

	tests := []struct {
		name string
		req  SignUpRequest
		code ErrorCode
	}{
		{"ok", SignUpRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"}, ""},
		{"duplicate", SignUpRequest{Name: "Ada", Email: "ADA@example.com", Password: "secret1"}, CodeEmailInUse},
		{"weak password", SignUpRequest{Name: "Bo", Email: "bo@example.com", Password: "123"}, CodeWeakPassword},
		{"invalid email", SignUpRequest{Name: "Bo", Email: "bo-at-example", Password: "secret1"}, CodeInvalidEmail},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id, err := c.SignUp(ctx, tc.req)
			if tc.code == "" {
				if err != nil {
					t.Fatal(err)
				}
				if id.DisplayName != tc.req.Name || c.Current().UID != id.UID {
					t.Fatalf("identity = %+v", id)
				}
				return
			}
			if !IsCode(err, tc.code) {
				t.Fatalf("err = %v, want %s", err, tc.code)
			}
		})
	}
}

func TestMemorySessionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)
	if _, err := b.Seed("Ada", "ada@example.com", "secret1"); err != nil {
		t.Fatal(err)
	}
	phone, tablet := b.Session("phone"), b.Session("tablet")
	if _, err := phone.SignIn(ctx, Credentials{Email: "ada@example.com", Password: "secret1"}); err != nil {
		t.Fatal(err)
	}
	if tablet.Current() != nil {
		t.Fatal("sign in leaked to another session")
	}
}

func TestMemoryUpdateDisplayName(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)
	c := b.Session("d")
	if err := c.UpdateDisplayName(ctx, "X"); !IsCode(err, CodeNotSignedIn) {
		t.Fatalf("err = %v", err)
	}
	if _, err := c.SignUp(ctx, SignUpRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"}); err != nil {
		t.Fatal(err)
	}
	if err := c.UpdateDisplayName(ctx, "Ada L."); err != nil {
		t.Fatal(err)
	}
	if got := c.Current().DisplayName; got != "Ada L." {
		t.Fatalf("display name = %q", got)
	}
	other := b.Session("d2")
	id, err := other.SignIn(ctx, Credentials{Email: "ada@example.com", Password: "secret1"})
	if err != nil {
		t.Fatal(err)
	}
	if id.DisplayName != "Ada L." {
		t.Fatalf("directory not updated: %q", id.DisplayName)
	}
}

func TestMemoryPasswordReset(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)
	if _, err := b.Seed("Ada", "ada@example.com", "secret1"); err != nil {
		t.Fatal(err)
	}
	c := b.Session("d")
	if err := c.SendPasswordReset(ctx, "ada@example.com"); err != nil {
		t.Fatal(err)
	}
	if err := c.SendPasswordReset(ctx, ""); !IsCode(err, CodeInvalidEmail) {
		t.Fatalf("err = %v", err)
	}
	if err := c.SendPasswordReset(ctx, "who@example.com"); !IsCode(err, CodeUserNotFound) {
		t.Fatalf("err = %v", err)
	}
}

// failingProvider is a primary that cannot attach and is unreachable.
type failingProvider struct{}

func (failingProvider) Subscribe(Listener) (Disposer, error) { return nil, ErrNotAttached }
func (failingProvider) SignIn(context.Context, Credentials) (*Identity, error) {
	return nil, newAuthError(CodeNetwork, "unreachable", nil)
}
func (failingProvider) SignUp(context.Context, SignUpRequest) (*Identity, error) {
	return nil, newAuthError(CodeNetwork, "unreachable", nil)
}
func (failingProvider) SignOut(context.Context) error                   { return nil }
func (failingProvider) SendPasswordReset(context.Context, string) error { return nil }
func (failingProvider) UpdateDisplayName(context.Context, string) error { return nil }
func (failingProvider) Current() *Identity                              { return nil }

func TestDemoFallbackRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	d := NewDemoFallback(failingProvider{}, true, nil)
	rec := &recorder{}
	if _, err := d.Subscribe(rec.listen); err != nil {
		t.Fatalf("subscribe with unattached primary: %v", err)
	}

	_, err := d.SignIn(ctx, Credentials{Email: "a@example.com", Password: "x"})
	if !IsCode(err, CodeNetwork) || !d.DemoAvailable(err) {
		t.Fatalf("err = %v, want network error with demo available", err)
	}
	if d.Current() != nil {
		t.Fatal("demo identity used without confirmation")
	}

	id, err := d.SignIn(ctx, Credentials{Demo: true})
	if err != nil {
		t.Fatal(err)
	}
	if id.UID != DemoUID || id.Email != DemoEmail || id.DisplayName != DemoDisplayName || !id.Demo {
		t.Fatalf("demo identity = %+v", id)
	}

	if err := d.SignOut(ctx); err != nil {
		t.Fatal(err)
	}
	got := rec.uids()
	want := []string{"", DemoUID, ""}
	if len(got) != len(want) || got[1] != DemoUID || got[2] != "" {
		t.Fatalf("events = %v, want %v", got, want)
	}
}

func TestDemoFallbackDisabled(t *testing.T) {
	d := NewDemoFallback(failingProvider{}, false, nil)
	_, err := d.SignIn(context.Background(), Credentials{Demo: true})
	if !IsCode(err, CodeDemoDisabled) {
		t.Fatalf("err = %v", err)
	}
	if d.DemoAvailable(newAuthError(CodeNetwork, "x", nil)) {
		t.Fatal("demo offered while disabled")
	}
}

func TestDemoFallbackForwardsPrimary(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)
	if _, err := b.Seed("Ada", "ada@example.com", "secret1"); err != nil {
		t.Fatal(err)
	}
	d := NewDemoFallback(b.Session("d"), true, nil)
	rec := &recorder{}
	dispose, err := d.Subscribe(rec.listen)
	if err != nil {
		t.Fatal(err)
	}
	defer dispose()

	if _, err := d.SignIn(ctx, Credentials{Demo: true}); err != nil {
		t.Fatal(err)
	}
	id, err := d.SignIn(ctx, Credentials{Email: "ada@example.com", Password: "secret1"})
	if err != nil {
		t.Fatal(err)
	}
	if cur := d.Current(); cur == nil || cur.UID != id.UID {
		t.Fatalf("current = %+v", cur)
	}
	got := rec.uids()
	if len(got) != 3 || got[0] != "" || got[1] != DemoUID || got[2] != id.UID {
		t.Fatalf("events = %v", got)
	}
}

func TestDemoFallbackFailedSignInKeepsDemo(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)
	if _, err := b.Seed("Ada", "ada@example.com", "secret1"); err != nil {
		t.Fatal(err)
	}
	d := NewDemoFallback(b.Session("d"), true, nil)
	rec := &recorder{}
	dispose, err := d.Subscribe(rec.listen)
	if err != nil {
		t.Fatal(err)
	}
	defer dispose()

	if _, err := d.SignIn(ctx, Credentials{Demo: true}); err != nil {
		t.Fatal(err)
	}
	_, err = d.SignIn(ctx, Credentials{Email: "ada@example.com", Password: "wrong-pass"})
	if !IsCode(err, CodeInvalidCredentials) {
		t.Fatalf("sign-in err = %v", err)
	}
	_, err = d.SignUp(ctx, SignUpRequest{Name: "Bob", Email: "bob@example.com", Password: "123"})
	if !IsCode(err, CodeWeakPassword) {
		t.Fatalf("sign-up err = %v", err)
	}

	cur := d.Current()
	if cur == nil || cur.UID != DemoUID {
		t.Fatalf("current = %+v, want demo identity", cur)
	}
	got := rec.uids()
	if len(got) != 2 || got[len(got)-1] != cur.UID {
		t.Fatalf("events = %v, last event disagrees with current %q", got, cur.UID)
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{"ada@example.com", true},
		{"  ada@example.com ", true},
		{"", false},
		{"plain", false},
		{"@", false},
		{"Ada <ada@example.com>", false},
		{"ada@localhost", false},
	}
	for _, tt := range tests {
		err := validateEmail(tt.email)
		if tt.ok && err != nil {
			t.Errorf("validateEmail(%q) = %v", tt.email, err)
		}
		if !tt.ok && !IsCode(err, CodeInvalidEmail) {
			t.Errorf("validateEmail(%q) = %v, want invalid-email", tt.email, err)
		}
	}
}

func TestFirebaseUnattached(t *testing.T) {
	c := (&FirebaseBackend{}).Session("d")
	if _, err := c.Subscribe(func(*Identity) {}); !errors.Is(err, ErrNotAttached) {
		t.Fatalf("err = %v", err)
	}
	_, err := c.SignIn(context.Background(), Credentials{Email: "a@example.com", Password: "secret1"})
	if !IsCode(err, CodeNetwork) {
		t.Fatalf("err = %v", err)
	}
}

func TestMapToolkitError(t *testing.T) {
	apiErr := func(msg string) error {
		return &googleapi.Error{Code: http.StatusBadRequest, Message: msg}
	}
	tests := []struct {
		err      error
		notFound ErrorCode
		want     ErrorCode
	}{
		{apiErr("INVALID_PASSWORD"), CodeInvalidCredentials, CodeInvalidCredentials},
		{apiErr("INVALID_LOGIN_CREDENTIALS"), CodeInvalidCredentials, CodeInvalidCredentials},
		{apiErr("EMAIL_NOT_FOUND"), CodeInvalidCredentials, CodeInvalidCredentials},
		{apiErr("EMAIL_NOT_FOUND"), CodeUserNotFound, CodeUserNotFound},
		{apiErr("INVALID_EMAIL"), CodeInvalidCredentials, CodeInvalidEmail},
		{apiErr("EMAIL_EXISTS"), CodeInvalidCredentials, CodeEmailInUse},
		{apiErr("WEAK_PASSWORD : Password should be at least 6 characters"), CodeInvalidCredentials, CodeWeakPassword},
		{apiErr("QUOTA_EXCEEDED"), CodeInvalidCredentials, CodeNetwork},
		{errors.New("dial tcp: timeout"), CodeInvalidCredentials, CodeNetwork},
	}
	for _, tc := range tests {
		if got := CodeOf(mapToolkitError("op", tc.notFound, tc.err)); got != tc.want {
			t.Errorf("%v: got %s, want %s", tc.err, got, tc.want)
		}
	}
}
