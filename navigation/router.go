package navigation

import "fmt"

// OutcomeKind classifies the result of a navigation request.
type OutcomeKind int

const (
	// OutcomeAccepted means the transition was applied.
	OutcomeAccepted OutcomeKind = iota
	// OutcomeRequiresAuth means the target is guarded and nobody is signed in.
	OutcomeRequiresAuth
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeRequiresAuth:
		return "requires-auth"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// Outcome is returned by Navigate and Replace. A declined outcome is an
// expected result, not an error: the requesting screen decides whether to
// prompt for sign-in.
type Outcome struct {
	Kind    OutcomeKind
	Target  Screen
	Current Entry
}

// Declined reports whether the request was refused by a guard.
func (o Outcome) Declined() bool {
	return o.Kind != OutcomeAccepted
}

// TransitionKind names the stack operation a transition applied.
type TransitionKind int

const (
	TransitionPush TransitionKind = iota
	TransitionPop
	TransitionReplace
)

func (k TransitionKind) String() string {
	switch k {
	case TransitionPush:
		return "push"
	case TransitionPop:
		return "pop"
	case TransitionReplace:
		return "replace"
	default:
		return fmt.Sprintf("transition(%d)", int(k))
	}
}

// Transition describes an applied change to the history.
type Transition struct {
	Kind TransitionKind
	From Entry
	To   Entry
	Len  int
}

// TransitionFunc observes applied transitions.
type TransitionFunc func(t Transition)

// RequiresAuth reports whether navigating to s needs a signed-in identity.
func RequiresAuth(s Screen) bool {
	return s == ScreenBooking || s == ScreenRating
}

// Router validates navigation requests against the guards and records the
// accepted ones on the Stack. It is not safe for concurrent use; an app
// session drives it from a single goroutine.
type Router struct {
	gate      *Gate
	stack     *Stack
	observers []TransitionFunc
}

// NewRouter creates a router whose history starts at the gate's screen.
func NewRouter(gate *Gate) *Router {
	return &Router{
		gate:  gate,
		stack: NewStack(NewEntry(gate.Screen(), nil)),
	}
}

// OnTransition registers fn to be called after every applied transition.
func (r *Router) OnTransition(fn TransitionFunc) *Router {
	r.observers = append(r.observers, fn)
	return r
}

// Navigate pushes target when its guard passes. Guards are evaluated
// against the identity known right now, never a cached decision.
func (r *Router) Navigate(target Screen, params Params) Outcome {
	mustBeValid(target)
	if !r.allowed(target) {
		return r.declined(target)
	}
	from := r.stack.Current()
	to := NewEntry(target, params)
	r.stack.Push(to)
	r.emit(TransitionPush, from, to)
	return r.accepted(target)
}

// GoBack pops the current entry. At the root it is a no-op and returns false.
func (r *Router) GoBack() bool {
	from := r.stack.Current()
	if !r.stack.Pop() {
		return false
	}
	r.emit(TransitionPop, from, r.stack.Current())
	return true
}

// Replace starts a new one-entry history at target. The system transitions
// onboarding->auth, auth->home and any->auth skip the guards; every other
// replace is guarded like Navigate.
func (r *Router) Replace(target Screen, params Params) Outcome {
	mustBeValid(target)
	if !isSystemTransition(r.stack.Current().Screen, target) && !r.allowed(target) {
		return r.declined(target)
	}
	r.replace(NewEntry(target, params))
	return r.accepted(target)
}

// Sync feeds an identity event through the gate. When identity presence
// changed and onboarding is complete, the history is replaced with the
// gate's screen so the change cannot be undone with back navigation.
func (r *Router) Sync(identity *Identity) (Screen, bool) {
	screen, changed := r.gate.Observe(identity)
	if changed && r.gate.State().OnboardingComplete {
		r.replace(NewEntry(screen, nil))
	}
	return screen, changed
}

// FinishOnboarding marks onboarding complete and moves the session on to
// the gate's next screen.
func (r *Router) FinishOnboarding() Screen {
	screen := r.gate.CompleteOnboarding()
	if r.stack.Current().Screen == ScreenOnboarding {
		r.replace(NewEntry(screen, nil))
	}
	return screen
}

// Current returns the current history entry.
func (r *Router) Current() Entry {
	return r.stack.Current()
}

// CanGoBack reports whether GoBack would change the history.
func (r *Router) CanGoBack() bool {
	return r.stack.CanGoBack()
}

// Len returns the history length.
func (r *Router) Len() int {
	return r.stack.Len()
}

// History returns a copy of the history, oldest first.
func (r *Router) History() []Entry {
	return r.stack.Entries()
}

// State returns the gate's session state.
func (r *Router) State() SessionState {
	return r.gate.State()
}

// Frame captures everything a renderer needs about the current screen.
func (r *Router) Frame(sessionID string) Frame {
	entries := r.stack.Entries()
	history := make([]Screen, len(entries))
	for i, e := range entries {
		history[i] = e.Screen
	}
	return Frame{
		SessionID: sessionID,
		Entry:     r.stack.Current(),
		CanGoBack: r.stack.CanGoBack(),
		History:   history,
		State:     r.gate.State(),
	}
}

func (r *Router) allowed(target Screen) bool {
	return !RequiresAuth(target) || r.gate.State().Authenticated()
}

func (r *Router) replace(to Entry) {
	from := r.stack.Current()
	r.stack.Replace(to)
	r.emit(TransitionReplace, from, to)
}

func (r *Router) emit(kind TransitionKind, from, to Entry) {
	t := Transition{Kind: kind, From: from, To: to, Len: r.stack.Len()}
	for _, fn := range r.observers {
		fn(t)
	}
}

func (r *Router) accepted(target Screen) Outcome {
	return Outcome{Kind: OutcomeAccepted, Target: target, Current: r.stack.Current()}
}

func (r *Router) declined(target Screen) Outcome {
	return Outcome{Kind: OutcomeRequiresAuth, Target: target, Current: r.stack.Current()}
}

func isSystemTransition(from, to Screen) bool {
	switch to {
	case ScreenAuth:
		// onboarding->auth and logout
		return true
	case ScreenHome:
		return from == ScreenAuth
	}
	return false
}

func mustBeValid(s Screen) {
	if !s.Valid() {
		panic(fmt.Sprintf("navigation: unknown screen %d", int(s)))
	}
}
