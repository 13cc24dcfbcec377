package store

import (
	"sync"
	"time"

	"github.com/dgallion1/docsbot/internal/render"
)

// DocStore is a thread-safe path-keyed cache of built documentation
// with TTL eviction. Documentation values are immutable once stored and
// shared read-only.
type DocStore struct {
	mu   sync.Mutex
	docs map[string]*docEntry
	ttl  time.Duration
}

type docEntry struct {
	doc *render.Documentation
	at  time.Time
}

func NewDocStore(ttl time.Duration) *DocStore {
	return &DocStore{
		docs: make(map[string]*docEntry),
		ttl:  ttl,
	}
}

// Get returns the cached documentation, refreshing its eviction clock,
// or nil.
func (s *DocStore) Get(key string) *render.Documentation {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.docs[key]
	if e == nil {
		return nil
	}
	e.at = time.Now()
	return e.doc
}

func (s *DocStore) Put(key string, doc *render.Documentation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key] = &docEntry{doc: doc, at: time.Now()}
}

// Cleanup removes expired entries.
func (s *DocStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for key, e := range s.docs {
		if now.Sub(e.at) > s.ttl {
			delete(s.docs, key)
		}
	}
}

// Session ties one sent message to its document path and the page it
// currently shows, so callbacks resolve without resending content.
type Session struct {
	Path string
	Page int
}

type sessionKey struct {
	ChatID    int64
	MessageID int64
}

// SessionStore is a thread-safe chat/message-keyed session registry
// with TTL eviction.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[sessionKey]*sessionEntry
	ttl      time.Duration
}

type sessionEntry struct {
	session Session
	at      time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[sessionKey]*sessionEntry),
		ttl:      ttl,
	}
}

func (s *SessionStore) Get(chatID, messageID int64) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.sessions[sessionKey{chatID, messageID}]
	if e == nil {
		return Session{}, false
	}
	e.at = time.Now()
	return e.session, true
}

func (s *SessionStore) Put(chatID, messageID int64, session Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionKey{chatID, messageID}] = &sessionEntry{session: session, at: time.Now()}
}

// Cleanup removes expired sessions.
func (s *SessionStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for key, e := range s.sessions {
		if now.Sub(e.at) > s.ttl {
			delete(s.sessions, key)
		}
	}
}
