package navigation

import (
	"fmt"
	"sort"
)

// Screen identifies a navigable screen. The set is closed; add a constant
// and a name below to extend it.
type Screen int

const (
	ScreenOnboarding Screen = iota
	ScreenAuth
	ScreenHome
	ScreenExplore
	ScreenProfile
	ScreenHotelDetails
	ScreenBooking
	ScreenRating

	screenCount
)

var screenNames = [...]string{
	ScreenOnboarding:   "onboarding",
	ScreenAuth:         "auth",
	ScreenHome:         "home",
	ScreenExplore:      "explore",
	ScreenProfile:      "profile",
	ScreenHotelDetails: "hotel-details",
	ScreenBooking:      "booking",
	ScreenRating:       "rating",
}

// Screens returns every screen of the closed set in declaration order.
func Screens() []Screen {
	all := make([]Screen, 0, screenCount)
	for s := Screen(0); s < screenCount; s++ {
		all = append(all, s)
	}
	return all
}

// Valid reports whether s belongs to the closed set.
func (s Screen) Valid() bool {
	return s >= 0 && s < screenCount
}

func (s Screen) String() string {
	if !s.Valid() {
		return fmt.Sprintf("screen(%d)", int(s))
	}
	return screenNames[s]
}

// MarshalText encodes the screen by its wire name.
func (s Screen) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("navigation: unknown screen %d", int(s))
	}
	return []byte(screenNames[s]), nil
}

// UnmarshalText decodes a wire name produced by MarshalText.
func (s *Screen) UnmarshalText(text []byte) error {
	parsed, err := ParseScreen(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseScreen maps a wire name back to its Screen.
func ParseScreen(name string) (Screen, error) {
	for i, n := range screenNames {
		if n == name {
			return Screen(i), nil
		}
	}
	return -1, fmt.Errorf("navigation: unknown screen %q", name)
}

// Params are optional navigation parameters, e.g. the selected hotel.
type Params map[string]string

func (p Params) clone() Params {
	if len(p) == 0 {
		return nil
	}
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Entry is a single navigation history entry. Its params are copied when
// the entry is created, so an entry never changes once pushed.
type Entry struct {
	Screen Screen
	params Params
}

// NewEntry builds an entry for screen with a private copy of params.
func NewEntry(screen Screen, params Params) Entry {
	return Entry{Screen: screen, params: params.clone()}
}

// Param returns the named parameter and whether it was set.
func (e Entry) Param(key string) (string, bool) {
	v, ok := e.params[key]
	return v, ok
}

// Params returns a copy of the entry's parameters.
func (e Entry) Params() Params {
	return e.params.clone()
}

// Keys returns the parameter names in sorted order.
func (e Entry) Keys() []string {
	keys := make([]string, 0, len(e.params))
	for k := range e.params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (e Entry) String() string {
	if len(e.params) == 0 {
		return e.Screen.String()
	}
	return fmt.Sprintf("%s%v", e.Screen, map[string]string(e.params))
}
