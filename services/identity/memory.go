package identity

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MemoryBackend is the in-process mock auth backend. Accounts live only as
// long as the process.
type MemoryBackend struct {
	mu    sync.RWMutex
	users map[string]*memoryUser // keyed by lower-cased email
	cost  int
}

type memoryUser struct {
	uid          string
	email        string
	displayName  string
	passwordHash []byte
}

// NewMemoryBackend creates an empty user directory.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		users: make(map[string]*memoryUser),
		cost:  bcrypt.DefaultCost,
	}
}

// Session returns a client with its own signed-in state.
func (b *MemoryBackend) Session(deviceID string) Provider {
	return &memoryClient{backend: b, obs: &observer{}}
}

// Seed registers an account directly, e.g. for demos and tests.
func (b *MemoryBackend) Seed(name, email, password string) (*Identity, error) {
	return b.create(SignUpRequest{Name: name, Email: email, Password: password})
}

func (b *MemoryBackend) create(req SignUpRequest) (*Identity, error) {
	if err := validateSignUp(req); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), b.cost)
	if err != nil {
		return nil, newAuthError(CodeWeakPassword, "password could not be hashed", err)
	}

	key := strings.ToLower(req.Email)
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.users[key]; exists {
		return nil, newAuthError(CodeEmailInUse, "email address is already in use", nil)
	}
	u := &memoryUser{
		uid:          "mock-user-" + uuid.NewString(),
		email:        req.Email,
		displayName:  req.Name,
		passwordHash: hash,
	}
	b.users[key] = u
	return u.identity(), nil
}

func (b *MemoryBackend) authenticate(email, password string) (*Identity, error) {
	b.mu.RLock()
	u, ok := b.users[strings.ToLower(email)]
	b.mu.RUnlock()
	if !ok {
		return nil, newAuthError(CodeInvalidCredentials, "invalid email or password", nil)
	}
	if err := bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)); err != nil {
		return nil, newAuthError(CodeInvalidCredentials, "invalid email or password", nil)
	}
	return u.identity(), nil
}

func (b *MemoryBackend) rename(uid, name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.users {
		if u.uid == uid {
			u.displayName = name
			return true
		}
	}
	return false
}

func (b *MemoryBackend) exists(email string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.users[strings.ToLower(email)]
	return ok
}

func (u *memoryUser) identity() *Identity {
	return &Identity{UID: u.uid, Email: u.email, DisplayName: u.displayName}
}

// memoryClient is one session's view of the MemoryBackend.
type memoryClient struct {
	backend *MemoryBackend
	obs     *observer
}

func (c *memoryClient) Subscribe(fn Listener) (Disposer, error) {
	return c.obs.subscribe(fn), nil
}

func (c *memoryClient) SignIn(ctx context.Context, creds Credentials) (*Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, newAuthError(CodeNetwork, "sign in interrupted", err)
	}
	if creds.IDToken != "" {
		return nil, newAuthError(CodeInvalidCredentials, "id tokens are not supported by the mock backend", nil)
	}
	if creds.Email == "" || creds.Password == "" {
		return nil, newAuthError(CodeInvalidCredentials, "email and password are required", nil)
	}
	id, err := c.backend.authenticate(creds.Email, creds.Password)
	if err != nil {
		return nil, err
	}
	c.obs.set(id)
	return copyIdentity(id), nil
}

func (c *memoryClient) SignUp(ctx context.Context, req SignUpRequest) (*Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, newAuthError(CodeNetwork, "sign up interrupted", err)
	}
	id, err := c.backend.create(req)
	if err != nil {
		return nil, err
	}
	c.obs.set(id)
	return copyIdentity(id), nil
}

func (c *memoryClient) SignOut(ctx context.Context) error {
	c.obs.set(nil)
	return nil
}

func (c *memoryClient) SendPasswordReset(ctx context.Context, email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	if !c.backend.exists(email) {
		return newAuthError(CodeUserNotFound, "no account for this email", nil)
	}
	return nil
}

func (c *memoryClient) UpdateDisplayName(ctx context.Context, name string) error {
	cur := c.obs.get()
	if cur == nil {
		return newAuthError(CodeNotSignedIn, "no user is signed in", nil)
	}
	c.backend.rename(cur.UID, name)
	cur.DisplayName = name
	c.obs.set(cur)
	return nil
}

func (c *memoryClient) Current() *Identity {
	return c.obs.get()
}
