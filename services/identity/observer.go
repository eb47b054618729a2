package identity

import "sync"

// observer fans identity changes out to listeners. Notifications are
// delivered under the lock so that every listener sees changes in the
// order they were made. Listeners must not call back into the observer.
type observer struct {
	mu        sync.Mutex
	current   *Identity
	nextID    int
	listeners []listenerEntry
}

type listenerEntry struct {
	id int
	fn Listener
}

func (o *observer) subscribe(fn Listener) Disposer {
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.listeners = append(o.listeners, listenerEntry{id: id, fn: fn})
	fn(copyIdentity(o.current))
	o.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			for i, l := range o.listeners {
				if l.id == id {
					o.listeners = append(o.listeners[:i], o.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

func (o *observer) set(id *Identity) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.current = copyIdentity(id)
	for _, l := range o.listeners {
		l.fn(copyIdentity(id))
	}
}

func (o *observer) get() *Identity {
	o.mu.Lock()
	defer o.mu.Unlock()
	return copyIdentity(o.current)
}

func (o *observer) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.listeners)
}

func copyIdentity(id *Identity) *Identity {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
