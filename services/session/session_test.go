package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hotelsa/models"
	"hotelsa/navigation"
	"hotelsa/services/flags"
	"hotelsa/services/identity"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// scriptedProvider lets a test drive identity events by hand.
type scriptedProvider struct {
	mu           sync.Mutex
	current      *identity.Identity
	listener     identity.Listener
	subscribeErr error
	disposals    int
}

func (p *scriptedProvider) Subscribe(fn identity.Listener) (identity.Disposer, error) {
	if p.subscribeErr != nil {
		return nil, p.subscribeErr
	}
	p.mu.Lock()
	p.listener = fn
	cur := p.current
	p.mu.Unlock()
	fn(cur)
	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			p.listener = nil
			p.disposals++
			p.mu.Unlock()
		})
	}, nil
}

func (p *scriptedProvider) emit(id *identity.Identity) {
	p.mu.Lock()
	p.current = id
	fn := p.listener
	p.mu.Unlock()
	if fn != nil {
		fn(id)
	}
}

func (p *scriptedProvider) SignIn(ctx context.Context, creds identity.Credentials) (*identity.Identity, error) {
	return nil, errors.New("not scripted")
}
func (p *scriptedProvider) SignUp(ctx context.Context, req identity.SignUpRequest) (*identity.Identity, error) {
	return nil, errors.New("not scripted")
}
func (p *scriptedProvider) SignOut(ctx context.Context) error { p.emit(nil); return nil }
func (p *scriptedProvider) SendPasswordReset(ctx context.Context, email string) error {
	return nil
}
func (p *scriptedProvider) UpdateDisplayName(ctx context.Context, name string) error { return nil }
func (p *scriptedProvider) Current() *identity.Identity {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

type scriptedBackend struct{ p *scriptedProvider }

func (b scriptedBackend) Session(deviceID string) identity.Provider { return b.p }

var (
	u1 = &identity.Identity{UID: "u1", Email: "u1@example.com"}
	u2 = &identity.Identity{UID: "u2", Email: "u2@example.com"}
)

func onboardedStore(t *testing.T, deviceID string) *flags.MemoryStore {
	t.Helper()
	store := flags.NewMemoryStore()
	if err := flags.MarkOnboardingComplete(context.Background(), store, deviceID); err != nil {
		t.Fatal(err)
	}
	return store
}

func startScripted(t *testing.T, p *scriptedProvider, store flags.Store, logger *zap.Logger) (*Manager, *AppSession) {
	t.Helper()
	m := NewManager(scriptedBackend{p}, store, time.Hour, logger)
	s, err := m.Start(context.Background(), models.Device{DeviceID: "dev-1"})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(m.CloseAll)
	return m, s
}

func snapshot(t *testing.T, s *AppSession) navigation.Frame {
	t.Helper()
	f, err := s.Snapshot(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestInitialScreen(t *testing.T) {
	tests := []struct {
		name      string
		onboarded bool
		current   *identity.Identity
		want      navigation.Screen
	}{
		{"fresh install", false, nil, navigation.ScreenOnboarding},
		{"onboarded, signed out", true, nil, navigation.ScreenAuth},
		{"onboarded, signed in", true, u1, navigation.ScreenHome},
		{"not onboarded, signed in", false, u1, navigation.ScreenOnboarding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := flags.NewMemoryStore()
			if tt.onboarded {
				store = onboardedStore(t, "dev-1")
			}
			_, s := startScripted(t, &scriptedProvider{current: tt.current}, store, nil)
			f := snapshot(t, s)
			if f.Entry.Screen != tt.want || len(f.History) != 1 {
				t.Fatalf("frame = %+v, want %s at root", f, tt.want)
			}
		})
	}
}

func TestIdentityEventsApplyInOrder(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	p := &scriptedProvider{}
	_, s := startScripted(t, p, onboardedStore(t, "dev-1"), zap.New(core))

	for _, id := range []*identity.Identity{nil, u1, nil, u2} {
		p.emit(id)
	}
	f := snapshot(t, s)
	if f.Entry.Screen != navigation.ScreenHome || f.State.Identity.UID != "u2" || len(f.History) != 1 {
		t.Fatalf("final frame = %+v", f)
	}

	var screens []string
	for _, e := range logs.FilterMessage("Identity changed").All() {
		screens = append(screens, e.ContextMap()["screen"].(string))
	}
	want := []string{"home", "auth", "home"}
	if len(screens) != len(want) {
		t.Fatalf("screens = %v, want %v", screens, want)
	}
	for i := range want {
		if screens[i] != want[i] {
			t.Fatalf("screens = %v, want %v", screens, want)
		}
	}
}

func TestGuardsFollowIdentity(t *testing.T) {
	ctx := context.Background()
	p := &scriptedProvider{}
	_, s := startScripted(t, p, onboardedStore(t, "dev-1"), nil)

	// auth -> home is a system transition, allowed while signed out.
	res, err := s.Replace(ctx, navigation.ScreenHome, nil)
	if err != nil || res.Outcome.Declined() || res.Frame.Entry.Screen != navigation.ScreenHome {
		t.Fatalf("replace = %+v, %v", res, err)
	}
	res, _ = s.Navigate(ctx, navigation.ScreenHotelDetails, navigation.Params{"hotelId": "1"})
	if hotelID, _ := res.Frame.Entry.Param("hotelId"); res.Outcome.Declined() || hotelID != "1" {
		t.Fatalf("hotel details = %+v", res)
	}

	before := res.Frame
	res, _ = s.Navigate(ctx, navigation.ScreenBooking, navigation.Params{"hotelId": "1"})
	if res.Outcome.Kind != navigation.OutcomeRequiresAuth {
		t.Fatalf("booking signed out = %+v", res.Outcome)
	}
	if len(res.Frame.History) != len(before.History) || res.Frame.Entry.Screen != navigation.ScreenHotelDetails {
		t.Fatalf("declined navigation mutated history: %+v", res.Frame)
	}

	p.emit(u1)
	f := snapshot(t, s)
	if f.Entry.Screen != navigation.ScreenHome || len(f.History) != 1 {
		t.Fatalf("sign-in should replace to home, got %+v", f)
	}
	res, _ = s.Navigate(ctx, navigation.ScreenRating, navigation.Params{"hotelId": "1"})
	if res.Outcome.Declined() {
		t.Fatalf("rating signed in = %+v", res.Outcome)
	}
}

func TestLogoutClearsHistory(t *testing.T) {
	ctx := context.Background()
	p := &scriptedProvider{current: u1}
	_, s := startScripted(t, p, onboardedStore(t, "dev-1"), nil)

	_, _ = s.Navigate(ctx, navigation.ScreenHotelDetails, navigation.Params{"hotelId": "1"})
	_, _ = s.Navigate(ctx, navigation.ScreenBooking, navigation.Params{"hotelId": "1"})
	if err := s.Provider.SignOut(ctx); err != nil {
		t.Fatal(err)
	}
	f := snapshot(t, s)
	if f.Entry.Screen != navigation.ScreenAuth || f.CanGoBack {
		t.Fatalf("after logout = %+v", f)
	}
	res, _ := s.GoBack(ctx)
	if res.Popped || res.Frame.Entry.Screen != navigation.ScreenAuth {
		t.Fatalf("back at root = %+v", res)
	}
}

func TestSubscribeFailureRunsSignedOut(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.ErrorLevel)
	p := &scriptedProvider{subscribeErr: identity.ErrNotAttached}
	_, s := startScripted(t, p, onboardedStore(t, "dev-1"), zap.New(core))

	if logs.Len() == 0 {
		t.Fatal("attach failure was not logged")
	}
	f := snapshot(t, s)
	if f.Entry.Screen != navigation.ScreenAuth {
		t.Fatalf("frame = %+v", f)
	}
	_, _ = s.Replace(ctx, navigation.ScreenHome, nil)
	res, _ := s.Navigate(ctx, navigation.ScreenExplore, nil)
	if res.Outcome.Declined() || res.Frame.Entry.Screen != navigation.ScreenExplore {
		t.Fatalf("unguarded navigation blocked: %+v", res)
	}
	res, _ = s.Navigate(ctx, navigation.ScreenBooking, nil)
	if !res.Outcome.Declined() {
		t.Fatal("booking must stay guarded")
	}
}

func TestFinishOnboardingPersists(t *testing.T) {
	ctx := context.Background()
	store := flags.NewMemoryStore()
	m := NewManager(identity.NewMemoryBackend(), store, time.Hour, nil)
	defer m.CloseAll()

	s, err := m.Start(ctx, models.Device{DeviceID: "dev-1"})
	if err != nil {
		t.Fatal(err)
	}
	f, err := s.FinishOnboarding(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if f.Entry.Screen != navigation.ScreenAuth || !f.State.OnboardingComplete {
		t.Fatalf("frame = %+v", f)
	}

	again, _ := m.Start(ctx, models.Device{DeviceID: "dev-1"})
	if got := snapshot(t, again).Entry.Screen; got != navigation.ScreenAuth {
		t.Fatalf("restart screen = %s", got)
	}
	if _, ok := m.Get(s.ID); ok {
		t.Fatal("restarting a device should end its previous session")
	}
	if _, err := s.Snapshot(ctx); !errors.Is(err, ErrClosed) {
		t.Fatalf("old session: got %v", err)
	}
}

func TestMemorySignInDrivesSession(t *testing.T) {
	ctx := context.Background()
	backend := identity.NewMemoryBackend()
	if _, err := backend.Seed("Test User", "guest@example.com", "secret1"); err != nil {
		t.Fatal(err)
	}
	m := NewManager(backend, onboardedStore(t, "dev-1"), time.Hour, nil)
	defer m.CloseAll()
	s, _ := m.Start(ctx, models.Device{DeviceID: "dev-1"})

	if _, err := s.Provider.SignIn(ctx, identity.Credentials{Email: "guest@example.com", Password: "secret1"}); err != nil {
		t.Fatal(err)
	}
	// The sign-in event was queued before this command, so it is visible.
	f := snapshot(t, s)
	if f.Entry.Screen != navigation.ScreenHome || !f.State.Authenticated() {
		t.Fatalf("frame = %+v", f)
	}
}

func TestCancelledCommandIsNotApplied(t *testing.T) {
	p := &scriptedProvider{}
	_, s := startScripted(t, p, onboardedStore(t, "dev-1"), nil)
	before := snapshot(t, s)

	// Hold the loop so the command is still queued when its caller gives up.
	release := make(chan struct{})
	s.post(func(*navigation.Router) { <-release })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Navigate(ctx, navigation.ScreenExplore, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("navigate err = %v, want context.Canceled", err)
	}
	close(release)

	after := snapshot(t, s)
	if after.Entry.Screen != before.Entry.Screen || len(after.History) != len(before.History) {
		t.Fatalf("cancelled navigation was applied: before %+v, after %+v", before, after)
	}
}

func TestCloseDisposesOnce(t *testing.T) {
	p := &scriptedProvider{}
	m, s := startScripted(t, p, flags.NewMemoryStore(), nil)

	if !m.End(s.ID) {
		t.Fatal("End should report a live session")
	}
	s.Close()
	if m.End(s.ID) {
		t.Fatal("second End should report nothing to end")
	}
	if p.disposals != 1 {
		t.Fatalf("disposals = %d", p.disposals)
	}
	p.emit(u1) // no listener left; must not block
	if _, err := s.Navigate(context.Background(), navigation.ScreenExplore, nil); !errors.Is(err, ErrClosed) {
		t.Fatalf("navigate after close: %v", err)
	}
}

func TestSweepClosesIdleSessions(t *testing.T) {
	m := NewManager(identity.NewMemoryBackend(), flags.NewMemoryStore(), time.Minute, nil)
	defer m.CloseAll()
	ctx := context.Background()
	a, _ := m.Start(ctx, models.Device{DeviceID: "a"})
	b, _ := m.Start(ctx, models.Device{DeviceID: "b"})

	a.lastSeen.Store(time.Now().Add(-2 * time.Minute).UnixNano())
	if n := m.Sweep(time.Now()); n != 1 {
		t.Fatalf("swept %d", n)
	}
	if _, ok := m.Get(a.ID); ok {
		t.Fatal("idle session still live")
	}
	if _, ok := m.Get(b.ID); !ok {
		t.Fatal("active session was swept")
	}
	select {
	case <-a.Done():
	default:
		t.Fatal("idle session not closed")
	}
}
