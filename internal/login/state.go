// Package login holds the UI-facing login state and the intents that change it.
//
// A Holder lives as long as one login screen: it is created when the screen
// becomes active, rehydrates the logged-in status from the repository in the
// background, and is closed when the screen is torn down. All mutation goes
// through the intent methods; observers read snapshots or subscribe.
package login

import (
	"context"
	"sync"

	apperrors "tokenlogin/cli/internal/errors"
	"tokenlogin/cli/internal/logging"
)

// Status is the coarse authentication status shown to the user.
type Status int

const (
	// StatusNone means no login has succeeded or failed on this holder yet.
	StatusNone Status = iota
	// StatusFailed means the last login attempt failed. It is not terminal.
	StatusFailed
	// StatusLoggedIn means a session token is stored.
	StatusLoggedIn
)

func (s Status) String() string {
	switch s {
	case StatusFailed:
		return "FAILED"
	case StatusLoggedIn:
		return "LOGGED_IN"
	default:
		return "NONE"
	}
}

// UIState is an immutable snapshot of the login screen.
type UIState struct {
	ID       string
	Password string
	Status   Status
	// Pending is true while at least one login attempt is in flight.
	Pending bool
	// Failure is the kind of the last failed attempt; empty otherwise.
	Failure apperrors.Kind
	// Err is the error of the last failed attempt; nil otherwise.
	Err error
}

// Repository is what the holder needs from auth.Repository.
type Repository interface {
	Login(ctx context.Context, id, password string) (bool, error)
	IsLoggedIn(ctx context.Context) (bool, error)
}

// Option customizes a Holder.
type Option func(*Holder)

// WithCredentials pre-fills the id and password fields.
func WithCredentials(id, password string) Option {
	return func(h *Holder) {
		h.state.ID = id
		h.state.Password = password
	}
}

// Holder owns the login UI state for one screen lifetime.
type Holder struct {
	repo   Repository
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	ready  chan struct{}

	// mu protects every field below
	mu       sync.Mutex
	state    UIState
	inflight int
	subs     map[int]chan UIState
	nextSub  int
	closed   bool
}

// New creates a holder bound to parent's lifetime and starts rehydrating the
// logged-in status in the background.
func New(parent context.Context, repo Repository, opts ...Option) *Holder {
	ctx, cancel := context.WithCancel(parent)
	h := &Holder{
		repo:   repo,
		ctx:    ctx,
		cancel: cancel,
		ready:  make(chan struct{}),
		subs:   make(map[int]chan UIState),
	}
	for _, opt := range opts {
		opt(h)
	}

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		defer close(h.ready)
		h.rehydrate(ctx)
	}()
	return h
}

// rehydrate marks the holder logged in when a token is already stored.
func (h *Holder) rehydrate(ctx context.Context) {
	ok, err := h.repo.IsLoggedIn(ctx)
	if err != nil {
		logging.Log.Warnw("login state: could not read stored token", "err", err)
		return
	}
	if !ok {
		return
	}
	h.update(func(s *UIState) {
		s.Status = StatusLoggedIn
		s.Failure = ""
		s.Err = nil
	})
}

// Ready is closed once the stored login status has been read, whether or not
// that succeeded.
func (h *Holder) Ready() <-chan struct{} {
	return h.ready
}

// State returns the current snapshot.
func (h *Holder) State() UIState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Subscribe returns a channel that receives the current snapshot immediately
// and then every later one. A slow reader only sees the newest snapshot.
// The channel is closed by the returned cancel func or by Close.
func (h *Holder) Subscribe() (<-chan UIState, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan UIState, 1)
	ch <- h.state
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextSub
	h.nextSub++
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if c, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(c)
			}
		})
	}
}

// ChangeID replaces the id field.
func (h *Holder) ChangeID(value string) {
	h.update(func(s *UIState) { s.ID = value })
}

// ChangePassword replaces the password field.
func (h *Holder) ChangePassword(value string) {
	h.update(func(s *UIState) { s.Password = value })
}

// Login starts a login attempt with the current id and password and returns
// immediately. Completion is observable only through the published state.
func (h *Holder) Login() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	id, password := h.state.ID, h.state.Password
	h.inflight++
	h.state.Pending = true
	h.publishLocked()
	h.wg.Add(1)
	h.mu.Unlock()

	go func() {
		defer h.wg.Done()
		ok, err := h.repo.Login(h.ctx, id, password)
		h.update(func(s *UIState) {
			h.inflight--
			s.Pending = h.inflight > 0
			if ok {
				s.Status = StatusLoggedIn
				s.Failure = ""
				s.Err = nil
				return
			}
			s.Status = StatusFailed
			s.Failure = apperrors.KindOf(err)
			s.Err = err
		})
	}()
}

// Close cancels in-flight work, waits for it to finish and closes every
// subscription. No state is published after Close returns.
func (h *Holder) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	h.mu.Unlock()

	h.cancel()
	h.wg.Wait()

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}

// update applies fn to the state and publishes the result unless closed.
func (h *Holder) update(fn func(*UIState)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	fn(&h.state)
	h.publishLocked()
}

// publishLocked delivers the snapshot to every subscriber, replacing any
// snapshot the subscriber has not read yet. h.mu must be held.
func (h *Holder) publishLocked() {
	for _, ch := range h.subs {
		select {
		case ch <- h.state:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- h.state:
			default:
			}
		}
	}
}
