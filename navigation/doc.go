// Package navigation is the in-process navigation core of an app session.
//
// It is a pure state machine: a Stack of entries (the navigation history),
// a Gate that decides which screen the session is admitted to from the
// onboarding flag and the current identity, and a Router that validates
// every transition against the guards before touching the stack.
//
// Nothing in this package blocks or spawns goroutines. Callers drive it
// from a single event loop (see services/session) and observe the
// resulting state through OnTransition or by rendering a Frame.
//
// # Basic Usage
//
//	gate := navigation.NewGate(onboarded, nil)
//	r := navigation.NewRouter(gate)
//
//	r.OnTransition(func(t navigation.Transition) {
//	    log.Printf("%s: %s -> %s", t.Kind, t.From, t.To)
//	})
//
//	out := r.Navigate(navigation.ScreenBooking, navigation.Params{"hotelId": "1"})
//	if out.Declined() {
//	    // the calling screen decides whether to prompt for sign-in
//	}
//
// # Guards
//
// ScreenBooking and ScreenRating require a signed-in identity. The guard is
// evaluated on every Navigate call; a failed guard returns a declined
// Outcome and leaves the history untouched.
package navigation
