package identity

import "context"

// Identity is an authenticated user as reported by the auth provider.
type Identity struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	Demo        bool   `json:"demo,omitempty"`
}

// Credentials identify a user signing in. Either Email/Password or an
// IDToken minted by the client SDK is used; Demo requests the local demo
// identity and needs the user's explicit confirmation.
type Credentials struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	IDToken     string `json:"idToken,omitempty"`
	Demo        bool   `json:"demo,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

// SignUpRequest is the profile submitted by the sign-up form.
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Listener receives identity changes; nil means signed out.
type Listener func(id *Identity)

// Disposer ends a subscription. Calling it more than once is harmless.
type Disposer func()

// Provider is the identity provider as seen by one app session.
type Provider interface {
	// Subscribe calls fn with the current identity right away and then once
	// per sign-in or sign-out, in the order they happen.
	Subscribe(fn Listener) (Disposer, error)
	SignIn(ctx context.Context, creds Credentials) (*Identity, error)
	SignUp(ctx context.Context, req SignUpRequest) (*Identity, error)
	SignOut(ctx context.Context) error
	SendPasswordReset(ctx context.Context, email string) error
	UpdateDisplayName(ctx context.Context, name string) error
	Current() *Identity
}

// Backend hands out a Provider per app session.
type Backend interface {
	Session(deviceID string) Provider
}
