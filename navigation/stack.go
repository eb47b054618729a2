package navigation

// Stack is the navigation history of one app session. The most recent
// entry is the current screen. A Stack created with NewStack is never
// empty: Pop stops at the root and Replace always leaves one entry.
type Stack struct {
	entries []Entry
}

// NewStack creates a history whose only entry is root.
func NewStack(root Entry) *Stack {
	return &Stack{
		entries: []Entry{root},
	}
}

// Push appends entry; it becomes the current screen.
func (s *Stack) Push(entry Entry) {
	s.entries = append(s.entries, entry)
}

// Pop removes the current entry and reports whether it did.
// At the root it does nothing and returns false.
func (s *Stack) Pop() bool {
	if len(s.entries) <= 1 {
		return false
	}
	s.entries[len(s.entries)-1] = Entry{}
	s.entries = s.entries[:len(s.entries)-1]
	return true
}

// Replace discards the whole history and starts a new one at entry.
// Used for transitions that must not be reachable with back navigation.
func (s *Stack) Replace(entry Entry) {
	s.entries = []Entry{entry}
}

// Current returns the most recent entry.
func (s *Stack) Current() Entry {
	return s.entries[len(s.entries)-1]
}

// CanGoBack reports whether Pop would change the history.
func (s *Stack) CanGoBack() bool {
	return len(s.entries) > 1
}

// Len returns the number of entries in the history.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the history, oldest first.
func (s *Stack) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
