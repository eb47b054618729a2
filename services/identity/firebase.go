package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

// FirebaseBackend talks to Firebase Authentication. The Admin SDK creates
// users, renames them and verifies client ID tokens; the Identity Toolkit
// API (with the project's web API key) checks passwords and sends reset
// e-mails, which the Admin SDK cannot do.
type FirebaseBackend struct {
	auth    *auth.Client
	toolkit *identitytoolkit.Service
	logger  *zap.Logger
}

// NewFirebaseBackend builds the backend from an initialised Firebase app.
func NewFirebaseBackend(ctx context.Context, app *firebase.App, apiKey string, logger *zap.Logger) (*FirebaseBackend, error) {
	if app == nil {
		return nil, errors.New("identity: firebase app is nil")
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("identity: error getting Auth client: %w", err)
	}
	toolkit, err := identitytoolkit.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("identity: error creating identity toolkit service: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FirebaseBackend{auth: authClient, toolkit: toolkit, logger: logger}, nil
}

// NewUnattachedFirebaseBackend returns a backend with no auth service behind
// it. Its sessions stay signed out and sign-in fails with CodeNetwork.
func NewUnattachedFirebaseBackend(logger *zap.Logger) *FirebaseBackend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FirebaseBackend{logger: logger}
}

// Session returns a client holding one session's signed-in state.
func (b *FirebaseBackend) Session(deviceID string) Provider {
	return &firebaseClient{backend: b, deviceID: deviceID, obs: &observer{}}
}

type firebaseClient struct {
	backend  *FirebaseBackend
	deviceID string
	obs      *observer
}

func (c *firebaseClient) attached() bool {
	return c.backend != nil && c.backend.auth != nil && c.backend.toolkit != nil
}

func (c *firebaseClient) Subscribe(fn Listener) (Disposer, error) {
	if !c.attached() {
		return nil, ErrNotAttached
	}
	return c.obs.subscribe(fn), nil
}

func (c *firebaseClient) SignIn(ctx context.Context, creds Credentials) (*Identity, error) {
	if !c.attached() {
		return nil, newAuthError(CodeNetwork, "auth service unreachable", ErrNotAttached)
	}

	var (
		id  *Identity
		err error
	)
	if creds.IDToken != "" {
		id, err = c.verifyIDToken(ctx, creds.IDToken)
	} else {
		id, err = c.verifyPassword(ctx, creds.Email, creds.Password)
	}
	if err != nil {
		c.backend.logger.Debug("firebase sign in failed", zap.String("deviceID", c.deviceID), zap.Error(err))
		return nil, err
	}
	c.obs.set(id)
	return copyIdentity(id), nil
}

func (c *firebaseClient) verifyIDToken(ctx context.Context, idToken string) (*Identity, error) {
	token, err := c.backend.auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, newAuthError(CodeInvalidCredentials, "invalid id token", err)
	}
	user, err := c.backend.auth.GetUser(ctx, token.UID)
	if err != nil {
		return nil, newAuthError(CodeNetwork, "failed to fetch user", err)
	}
	return &Identity{UID: user.UID, Email: user.Email, DisplayName: user.DisplayName}, nil
}

func (c *firebaseClient) verifyPassword(ctx context.Context, email, password string) (*Identity, error) {
	if email == "" || password == "" {
		return nil, newAuthError(CodeInvalidCredentials, "email and password are required", nil)
	}
	resp, err := c.backend.toolkit.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return nil, mapToolkitError("sign in failed", CodeInvalidCredentials, err)
	}
	return &Identity{UID: resp.LocalId, Email: resp.Email, DisplayName: resp.DisplayName}, nil
}

func (c *firebaseClient) SignUp(ctx context.Context, req SignUpRequest) (*Identity, error) {
	if !c.attached() {
		return nil, newAuthError(CodeNetwork, "auth service unreachable", ErrNotAttached)
	}
	if err := validateSignUp(req); err != nil {
		return nil, err
	}
	params := (&auth.UserToCreate{}).
		Email(req.Email).
		Password(req.Password).
		DisplayName(req.Name)
	user, err := c.backend.auth.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return nil, newAuthError(CodeEmailInUse, "email address is already in use", err)
		}
		return nil, newAuthError(CodeNetwork, "sign up failed", err)
	}
	id := &Identity{UID: user.UID, Email: user.Email, DisplayName: user.DisplayName}
	c.obs.set(id)
	return copyIdentity(id), nil
}

// SignOut only forgets the identity for this session; other devices of the
// same user stay signed in.
func (c *firebaseClient) SignOut(ctx context.Context) error {
	c.obs.set(nil)
	return nil
}

func (c *firebaseClient) SendPasswordReset(ctx context.Context, email string) error {
	if !c.attached() {
		return newAuthError(CodeNetwork, "auth service unreachable", ErrNotAttached)
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	_, err := c.backend.toolkit.Relyingparty.GetOobConfirmationCode(&identitytoolkit.Relyingparty{
		RequestType: "PASSWORD_RESET",
		Email:       email,
	}).Context(ctx).Do()
	if err != nil {
		return mapToolkitError("password reset failed", CodeUserNotFound, err)
	}
	return nil
}

func (c *firebaseClient) UpdateDisplayName(ctx context.Context, name string) error {
	cur := c.obs.get()
	if cur == nil {
		return newAuthError(CodeNotSignedIn, "no user is signed in", nil)
	}
	if !c.attached() {
		return newAuthError(CodeNetwork, "auth service unreachable", ErrNotAttached)
	}
	if _, err := c.backend.auth.UpdateUser(ctx, cur.UID, (&auth.UserToUpdate{}).DisplayName(name)); err != nil {
		return newAuthError(CodeNetwork, "failed to update profile", err)
	}
	cur.DisplayName = name
	c.obs.set(cur)
	return nil
}

func (c *firebaseClient) Current() *Identity {
	return c.obs.get()
}

// mapToolkitError translates Identity Toolkit error messages
// (e.g. "INVALID_PASSWORD") into error codes. notFound is the code used for
// EMAIL_NOT_FOUND, which sign-in must not distinguish from a bad password.
func mapToolkitError(msg string, notFound ErrorCode, err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return newAuthError(CodeNetwork, msg, err)
	}
	reason := gerr.Message
	switch {
	case strings.HasPrefix(reason, "INVALID_PASSWORD"),
		strings.HasPrefix(reason, "INVALID_LOGIN_CREDENTIALS"),
		strings.HasPrefix(reason, "USER_DISABLED"):
		return newAuthError(CodeInvalidCredentials, "invalid email or password", err)
	case strings.HasPrefix(reason, "EMAIL_NOT_FOUND"):
		if notFound == CodeUserNotFound {
			return newAuthError(CodeUserNotFound, "no account for this email", err)
		}
		return newAuthError(CodeInvalidCredentials, "invalid email or password", err)
	case strings.HasPrefix(reason, "INVALID_EMAIL"):
		return newAuthError(CodeInvalidEmail, "email address is badly formatted", err)
	case strings.HasPrefix(reason, "EMAIL_EXISTS"):
		return newAuthError(CodeEmailInUse, "email address is already in use", err)
	case strings.HasPrefix(reason, "WEAK_PASSWORD"):
		return newAuthError(CodeWeakPassword, "password should be at least 6 characters", err)
	}
	return newAuthError(CodeNetwork, msg, err)
}
