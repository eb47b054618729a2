package navigation

// Identity is the part of an authenticated user the navigation core cares
// about. A nil *Identity means nobody is signed in.
type Identity struct {
	UID         string `json:"uid"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

// SessionState is what the Gate knows about the session.
type SessionState struct {
	Identity           *Identity
	OnboardingComplete bool
}

// Authenticated reports whether an identity is present.
func (s SessionState) Authenticated() bool {
	return s.Identity != nil
}

// ComputeInitialScreen decides where a session is admitted:
// onboarding until it is finished, then auth until someone signs in,
// then home.
func ComputeInitialScreen(onboardingComplete bool, identity *Identity) Screen {
	switch {
	case !onboardingComplete:
		return ScreenOnboarding
	case identity == nil:
		return ScreenAuth
	default:
		return ScreenHome
	}
}

// Gate owns the SessionState. It only changes in response to identity
// events and the onboarding-finished signal.
type Gate struct {
	state SessionState
}

// NewGate creates a gate from the persisted onboarding flag and the
// identity known at startup (usually nil until the first event arrives).
func NewGate(onboardingComplete bool, identity *Identity) *Gate {
	return &Gate{state: SessionState{
		Identity:           copyIdentity(identity),
		OnboardingComplete: onboardingComplete,
	}}
}

// State returns a copy of the current session state.
func (g *Gate) State() SessionState {
	return SessionState{
		Identity:           copyIdentity(g.state.Identity),
		OnboardingComplete: g.state.OnboardingComplete,
	}
}

// Screen returns the screen the session is currently admitted to.
func (g *Gate) Screen() Screen {
	return ComputeInitialScreen(g.state.OnboardingComplete, g.state.Identity)
}

// Observe records an identity event and returns the recomputed screen.
// changed is true when the identity went absent->present, present->absent,
// or switched to a different user.
func (g *Gate) Observe(identity *Identity) (screen Screen, changed bool) {
	prev := g.state.Identity
	switch {
	case prev == nil && identity == nil:
		changed = false
	case prev == nil || identity == nil:
		changed = true
	default:
		changed = prev.UID != identity.UID
	}
	g.state.Identity = copyIdentity(identity)
	return g.Screen(), changed
}

// CompleteOnboarding records that the onboarding flow finished.
func (g *Gate) CompleteOnboarding() Screen {
	g.state.OnboardingComplete = true
	return g.Screen()
}

func copyIdentity(id *Identity) *Identity {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
