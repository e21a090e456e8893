package session

import (
	"sync"
	"time"
)

// EventKind tells a connected player what happened on the server.
type EventKind string

const (
	// EventWorldRecord is sent when any player beats the world record.
	EventWorldRecord EventKind = "world_record"
	// EventPresence is sent when a player joins or leaves.
	EventPresence EventKind = "presence"
)

// Event is delivered to live sessions.
type Event struct {
	Kind       EventKind
	From       ID
	PlayerName string
	Score      int
	Online     int
}

// Handle is one connected player. Events are delivered through a buffered
// channel so senders never block on a slow terminal.
type Handle struct {
	id        ID
	user      string
	remote    string
	startedAt time.Time

	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
}

// NewHandle creates a handle for a connection.
// bufferSize controls how many events can be queued before the oldest is dropped.
func NewHandle(id ID, user, remote string, bufferSize int) *Handle {
	if bufferSize < 1 {
		bufferSize = 16
	}
	return &Handle{
		id:        id,
		user:      user,
		remote:    remote,
		startedAt: time.Now(),
		events:    make(chan Event, bufferSize),
		done:      make(chan struct{}),
	}
}

// ID returns the session identifier.
func (h *Handle) ID() ID {
	return h.id
}

// User returns the login name of the connection.
func (h *Handle) User() string {
	return h.user
}

// Remote returns the remote address of the connection.
func (h *Handle) Remote() string {
	return h.remote
}

// StartedAt returns when the handle was created.
func (h *Handle) StartedAt() time.Time {
	return h.startedAt
}

// Send queues an event for the session.
// If the buffer is full the oldest event is dropped.
func (h *Handle) Send(evt Event) {
	select {
	case <-h.done:
		return
	default:
	}

	select {
	case h.events <- evt:
	default:
		select {
		case <-h.events:
		default:
		}
		// Best effort
		select {
		case h.events <- evt:
		default:
		}
	}
}

// Events returns the channel to receive events from.
func (h *Handle) Events() <-chan Event {
	return h.events
}

// Done returns a channel that closes when the session ends.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Close marks the session as done.
// Safe to call multiple times.
func (h *Handle) Close() {
	h.doneOnce.Do(func() {
		close(h.done)
	})
}

// Registry tracks live sessions.
// Thread-safe for concurrent access.
type Registry struct {
	mu       sync.RWMutex
	sessions map[ID]*Handle
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[ID]*Handle),
	}
}

// Register adds a session and announces the new head count.
func (r *Registry) Register(h *Handle) {
	r.mu.Lock()
	r.sessions[h.ID()] = h
	r.mu.Unlock()

	r.Broadcast(Event{Kind: EventPresence, From: h.ID(), Online: r.Count()})
}

// Unregister closes and removes a session, then announces the new head count.
func (r *Registry) Unregister(id ID) {
	r.mu.Lock()
	h, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if !ok {
		return
	}
	h.Close()
	r.Broadcast(Event{Kind: EventPresence, From: id, Online: r.Count()})
}

// Get retrieves a session by ID.
func (r *Registry) Get(id ID) (*Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.sessions[id]
	return h, ok
}

// Count returns the number of registered sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Broadcast sends evt to every registered session.
func (r *Registry) Broadcast(evt Event) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, h := range r.sessions {
		h.Send(evt)
	}
}
