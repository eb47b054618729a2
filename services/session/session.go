package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"hotelsa/models"
	"hotelsa/navigation"
	"hotelsa/services/flags"
	"hotelsa/services/identity"

	"go.uber.org/zap"
)

// ErrClosed is returned by calls made on a session that has ended.
var ErrClosed = errors.New("app session closed")

// eventBuffer bounds how many identity events and commands may wait for the
// loop before senders block.
const eventBuffer = 64

// AppSession is one device's running app. It owns the device's Router and
// applies identity events and client commands one at a time, in the order
// they arrive, on a single goroutine.
type AppSession struct {
	ID       string
	Device   models.Device
	Provider identity.Provider

	router  *navigation.Router
	flags   flags.Store
	logger  *zap.Logger
	events  chan func(*navigation.Router)
	done    chan struct{}
	stopped chan struct{}

	closeOnce sync.Once
	dispose   identity.Disposer
	lastSeen  atomic.Int64
}

func newAppSession(id string, device models.Device, provider identity.Provider, store flags.Store, onboarded bool, logger *zap.Logger) *AppSession {
	s := &AppSession{
		ID:       id,
		Device:   device,
		Provider: provider,
		flags:    store,
		logger:   logger.With(zap.String("sessionID", id), zap.String("deviceID", device.DeviceID)),
		events:   make(chan func(*navigation.Router), eventBuffer),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	gate := navigation.NewGate(onboarded, toNavigationIdentity(provider.Current()))
	s.router = navigation.NewRouter(gate).OnTransition(s.logTransition)
	s.touch()
	return s
}

func (s *AppSession) run() {
	defer close(s.stopped)
	for {
		select {
		case fn := <-s.events:
			fn(s.router)
		case <-s.done:
			return
		}
	}
}

// attach subscribes the session to its identity provider. The provider
// calls back right away with the current identity; from then on every
// sign-in and sign-out is queued behind whatever the loop already holds.
// When the provider cannot attach, the session runs signed out.
func (s *AppSession) attach() {
	dispose, err := s.Provider.Subscribe(s.onIdentity)
	if err != nil {
		s.logger.Error("Identity provider failed to attach; continuing signed out", zap.Error(err))
		return
	}
	s.dispose = dispose
}

func (s *AppSession) onIdentity(id *identity.Identity) {
	nav := toNavigationIdentity(id)
	s.post(func(r *navigation.Router) {
		screen, changed := r.Sync(nav)
		if changed {
			s.logger.Info("Identity changed",
				zap.Bool("signedIn", nav != nil),
				zap.Stringer("screen", screen))
		}
	})
}

// post queues fn without waiting for it to run.
func (s *AppSession) post(fn func(*navigation.Router)) bool {
	select {
	case s.events <- fn:
		return true
	case <-s.done:
		return false
	}
}

// call runs fn on the loop and waits for its result. The result travels
// over a buffered channel so an abandoned call never races the loop. A
// command whose ctx is done by the time the loop reaches it is skipped, so
// a caller that gave up never has its command applied behind its back.
func call[T any](ctx context.Context, s *AppSession, fn func(*navigation.Router) T) (T, error) {
	var zero T
	s.touch()
	reply := make(chan T, 1)
	queued := s.post(func(r *navigation.Router) {
		if ctx.Err() != nil {
			return
		}
		reply <- fn(r)
	})
	if !queued {
		return zero, ErrClosed
	}
	select {
	case v := <-reply:
		return v, nil
	case <-s.done:
		return zero, ErrClosed
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Result is a command's outcome together with the frame it left behind.
type Result struct {
	Outcome navigation.Outcome
	Popped  bool
	Frame   navigation.Frame
}

// Snapshot returns the current navigation frame.
func (s *AppSession) Snapshot(ctx context.Context) (navigation.Frame, error) {
	return call(ctx, s, func(r *navigation.Router) navigation.Frame {
		return r.Frame(s.ID)
	})
}

// Navigate pushes target, subject to the router's guards.
func (s *AppSession) Navigate(ctx context.Context, target navigation.Screen, params navigation.Params) (Result, error) {
	return call(ctx, s, func(r *navigation.Router) Result {
		out := r.Navigate(target, params)
		return Result{Outcome: out, Frame: r.Frame(s.ID)}
	})
}

// GoBack pops one screen. Popped is false at the root.
func (s *AppSession) GoBack(ctx context.Context) (Result, error) {
	return call(ctx, s, func(r *navigation.Router) Result {
		popped := r.GoBack()
		return Result{Popped: popped, Frame: r.Frame(s.ID)}
	})
}

// Replace resets the history to target.
func (s *AppSession) Replace(ctx context.Context, target navigation.Screen, params navigation.Params) (Result, error) {
	return call(ctx, s, func(r *navigation.Router) Result {
		out := r.Replace(target, params)
		return Result{Outcome: out, Frame: r.Frame(s.ID)}
	})
}

// FinishOnboarding persists the device's onboarding flag and moves past the
// onboarding screen. A failed flag write only costs the device a second
// pass through onboarding, so it is logged and navigation proceeds.
func (s *AppSession) FinishOnboarding(ctx context.Context) (navigation.Frame, error) {
	if err := flags.MarkOnboardingComplete(ctx, s.flags, s.Device.DeviceID); err != nil {
		s.logger.Warn("FinishOnboarding: flag not saved", zap.Error(err))
	}
	return call(ctx, s, func(r *navigation.Router) navigation.Frame {
		r.FinishOnboarding()
		return r.Frame(s.ID)
	})
}

// Identity is the identity the provider currently reports.
func (s *AppSession) Identity() *identity.Identity {
	return s.Provider.Current()
}

// LastSeen is the time of the last client call.
func (s *AppSession) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

func (s *AppSession) touch() {
	s.lastSeen.Store(time.Now().UnixNano())
}

// Close detaches from the identity provider and stops the loop. It is safe
// to call more than once.
func (s *AppSession) Close() {
	s.closeOnce.Do(func() {
		if s.dispose != nil {
			s.dispose()
		}
		close(s.done)
		<-s.stopped
		s.logger.Info("App session closed")
	})
}

// Done is closed when the session has been closed.
func (s *AppSession) Done() <-chan struct{} {
	return s.done
}

func (s *AppSession) logTransition(t navigation.Transition) {
	s.logger.Debug("Navigation",
		zap.Stringer("kind", t.Kind),
		zap.Stringer("from", t.From.Screen),
		zap.Stringer("to", t.To.Screen),
		zap.Int("depth", t.Len))
}

func toNavigationIdentity(id *identity.Identity) *navigation.Identity {
	if id == nil {
		return nil
	}
	return &navigation.Identity{UID: id.UID, Email: id.Email, DisplayName: id.DisplayName}
}
