package order

import "sync"

// session carries the draft of one user. Access goes through the session
// mutex so rapid duplicate events from the same user cannot interleave
// transitions; different users never contend.
type session struct {
	mu    sync.Mutex
	state State
	draft Draft
	gone  bool
}

// Store keeps the active order session per user. Entries are created on
// flow start and destroyed on completion or cancellation; there is no
// time-based expiry.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*session
}

// NewStore constructs an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[int64]*session)}
}

// Begin creates a fresh session for the user, replacing any existing one.
// The new draft starts empty at the platform step.
func (s *Store) Begin(userID int64) Draft {
	fresh := &session{
		state: StatePlatform,
		draft: Draft{UserID: userID},
	}

	s.mu.Lock()
	old := s.sessions[userID]
	s.sessions[userID] = fresh
	s.mu.Unlock()

	if old != nil {
		// Detach the superseded session; a handler still holding it sees
		// gone and retries against the store.
		old.mu.Lock()
		old.gone = true
		old.mu.Unlock()
	}
	return fresh.draft
}

// Update runs fn with exclusive access to the user's session. When fn
// reports destroy, the session is removed after it returns. ErrSessionAbsent
// is returned when the user has no active session.
func (s *Store) Update(userID int64, fn func(st *State, d *Draft) (destroy bool, err error)) error {
	for {
		s.mu.Lock()
		sess, ok := s.sessions[userID]
		s.mu.Unlock()
		if !ok {
			return ErrSessionAbsent
		}

		sess.mu.Lock()
		if sess.gone {
			sess.mu.Unlock()
			continue
		}
		destroy, err := fn(&sess.state, &sess.draft)
		if destroy {
			sess.gone = true
		}
		sess.mu.Unlock()

		if destroy {
			s.mu.Lock()
			if s.sessions[userID] == sess {
				delete(s.sessions, userID)
			}
			s.mu.Unlock()
		}
		return err
	}
}

// Destroy discards the user's session, if any, and reports whether one existed.
func (s *Store) Destroy(userID int64) bool {
	s.mu.Lock()
	sess, ok := s.sessions[userID]
	if ok {
		delete(s.sessions, userID)
	}
	s.mu.Unlock()

	if ok {
		sess.mu.Lock()
		sess.gone = true
		sess.mu.Unlock()
	}
	return ok
}

// Snapshot returns a copy of the user's current state and draft.
func (s *Store) Snapshot(userID int64) (State, Draft, bool) {
	s.mu.Lock()
	sess, ok := s.sessions[userID]
	s.mu.Unlock()
	if !ok {
		return StateMainMenu, Draft{}, false
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.gone {
		return StateMainMenu, Draft{}, false
	}
	return sess.state, sess.draft, true
}

// Active reports whether the user has an order flow in progress.
func (s *Store) Active(userID int64) bool {
	_, _, ok := s.Snapshot(userID)
	return ok
}

// Len returns the number of active sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
