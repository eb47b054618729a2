package identity

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Demo identity defaults, as shown by the demo-mode sign-in.
const (
	DemoUID         = "mock-user-123"
	DemoEmail       = "user@example.com"
	DemoDisplayName = "Test User"
)

// DemoBackend wraps a primary backend so that each session can switch to a
// locally simulated identity. The switch is never automatic: the client has
// to send Credentials.Demo after the user confirmed it.
type DemoBackend struct {
	Primary Backend
	Enabled bool
	Logger  *zap.Logger
}

func (b *DemoBackend) Session(deviceID string) Provider {
	return NewDemoFallback(b.Primary.Session(deviceID), b.Enabled, b.Logger)
}

// DemoFallback is a Provider that forwards to primary until the user asks
// for demo mode.
type DemoFallback struct {
	primary Provider
	enabled bool
	logger  *zap.Logger
	obs     *observer

	mu   sync.Mutex
	demo *Identity

	// attachMu guards the primary subscription. The primary calls forward
	// (which takes mu) during Subscribe, so attachMu is always taken first.
	attachMu sync.Mutex
	attached bool
	detach   Disposer
}

// NewDemoFallback wraps primary. When enabled is false, demo sign-in is
// refused with CodeDemoDisabled.
func NewDemoFallback(primary Provider, enabled bool, logger *zap.Logger) *DemoFallback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DemoFallback{primary: primary, enabled: enabled, logger: logger, obs: &observer{}}
}

// DemoAvailable reports whether err is an outage the user may work around
// by confirming demo mode.
func (d *DemoFallback) DemoAvailable(err error) bool {
	return d.enabled && IsCode(err, CodeNetwork)
}

// Subscribe attaches to the primary provider on first use. If the primary
// cannot be attached the subscription still works; identity stays absent
// until the user signs in with demo mode.
func (d *DemoFallback) Subscribe(fn Listener) (Disposer, error) {
	d.attachMu.Lock()
	if !d.attached {
		d.attached = true
		detach, err := d.primary.Subscribe(d.forward)
		if err != nil {
			d.logger.Warn("identity provider unavailable, continuing signed out",
				zap.Error(err), zap.Bool("demoEnabled", d.enabled))
		} else {
			d.detach = detach
		}
	}
	d.attachMu.Unlock()

	dispose := d.obs.subscribe(fn)
	return func() {
		dispose()
		d.attachMu.Lock()
		defer d.attachMu.Unlock()
		if d.obs.count() == 0 && d.detach != nil {
			d.detach()
			d.detach = nil
			d.attached = false
		}
	}, nil
}

func (d *DemoFallback) forward(id *Identity) {
	d.mu.Lock()
	inDemo := d.demo != nil
	d.mu.Unlock()
	if inDemo {
		return
	}
	d.obs.set(id)
}

func (d *DemoFallback) SignIn(ctx context.Context, creds Credentials) (*Identity, error) {
	if creds.Demo {
		if !d.enabled {
			return nil, newAuthError(CodeDemoDisabled, "demo mode is disabled", nil)
		}
		id := &Identity{UID: DemoUID, Email: creds.Email, DisplayName: creds.DisplayName, Demo: true}
		if id.Email == "" {
			id.Email = DemoEmail
		}
		if id.DisplayName == "" {
			id.DisplayName = DemoDisplayName
		}
		d.mu.Lock()
		d.demo = copyIdentity(id)
		d.mu.Unlock()
		d.logger.Info("demo identity in use", zap.String("email", id.Email))
		d.obs.set(id)
		return id, nil
	}

	id, err := d.primary.SignIn(ctx, creds)
	if err != nil {
		return nil, err
	}
	d.switchToPrimary()
	return id, nil
}

func (d *DemoFallback) SignUp(ctx context.Context, req SignUpRequest) (*Identity, error) {
	id, err := d.primary.SignUp(ctx, req)
	if err != nil {
		return nil, err
	}
	d.switchToPrimary()
	return id, nil
}

// switchToPrimary leaves demo mode after a successful primary sign-in.
// forward dropped the primary's event while the demo identity was active,
// so subscribers are told here.
func (d *DemoFallback) switchToPrimary() {
	if d.leaveDemo() {
		d.obs.set(d.primary.Current())
	}
}

func (d *DemoFallback) SignOut(ctx context.Context) error {
	if d.leaveDemo() {
		d.obs.set(d.primary.Current())
		return nil
	}
	return d.primary.SignOut(ctx)
}

func (d *DemoFallback) SendPasswordReset(ctx context.Context, email string) error {
	return d.primary.SendPasswordReset(ctx, email)
}

func (d *DemoFallback) UpdateDisplayName(ctx context.Context, name string) error {
	d.mu.Lock()
	if d.demo != nil {
		d.demo.DisplayName = name
		id := copyIdentity(d.demo)
		d.mu.Unlock()
		d.obs.set(id)
		return nil
	}
	d.mu.Unlock()
	return d.primary.UpdateDisplayName(ctx, name)
}

func (d *DemoFallback) Current() *Identity {
	d.mu.Lock()
	demo := copyIdentity(d.demo)
	d.mu.Unlock()
	if demo != nil {
		return demo
	}
	return d.primary.Current()
}

// leaveDemo drops the demo identity and reports whether one was active.
func (d *DemoFallback) leaveDemo() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	was := d.demo != nil
	d.demo = nil
	return was
}
