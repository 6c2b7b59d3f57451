package memory

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harshydav08/sitechat"
)

// Compile-time interface verification.
var _ sitechat.SessionService = (*SessionService)(nil)

// Default conversation bounds.
const (
	DefaultMaxMessages     = 20
	DefaultContextMessages = 6
)

// SessionService keeps conversations in a map guarded by a single mutex.
// Each session retains at most maxMessages messages; older ones are
// evicted first.
type SessionService struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	mu              sync.RWMutex
	sessions        map[string]*sitechat.Session
	maxMessages     int
	contextMessages int
}

// NewSessionService returns an empty SessionService. Non-positive bounds
// fall back to the defaults.
func NewSessionService(maxMessages, contextMessages int) *SessionService {
	if maxMessages <= 0 {
		maxMessages = DefaultMaxMessages
	}
	if contextMessages <= 0 {
		contextMessages = DefaultContextMessages
	}
	return &SessionService{
		Now:             time.Now,
		sessions:        make(map[string]*sitechat.Session),
		maxMessages:     maxMessages,
		contextMessages: contextMessages,
	}
}

// CreateSession starts an empty session and returns its UUID.
func (s *SessionService) CreateSession() string {
	now := s.Now()
	sess := &sitechat.Session{
		ID:           uuid.New().String(),
		Messages:     []*sitechat.Message{},
		CreatedAt:    now,
		LastActivity: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return sess.ID
}

// AppendMessage adds a message to the session and evicts the oldest
// messages beyond the limit.
func (s *SessionService) AppendMessage(id string, role sitechat.Role, content string, meta sitechat.Metadata) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return false
	}

	now := s.Now()
	sess.Messages = append(sess.Messages, &sitechat.Message{
		Role:      role,
		Content:   content,
		Timestamp: now,
		Metadata:  meta,
	})
	sess.LastActivity = now

	if n := len(sess.Messages); n > s.maxMessages {
		sess.Messages = slices.Clone(sess.Messages[n-s.maxMessages:])
	}
	return true
}

// RecentContext returns the last context messages, oldest first.
func (s *SessionService) RecentContext(id string) []*sitechat.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return []*sitechat.Message{}
	}
	msgs := sess.Messages
	if len(msgs) > s.contextMessages {
		msgs = msgs[len(msgs)-s.contextMessages:]
	}
	return slices.Clone(msgs)
}

// History returns every retained message, oldest first.
func (s *SessionService) History(id string) []*sitechat.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return []*sitechat.Message{}
	}
	return slices.Clone(sess.Messages)
}

// ClearSession deletes the session.
func (s *SessionService) ClearSession(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// SessionInfo summarizes a session.
func (s *SessionService) SessionInfo(id string) (*sitechat.SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, sitechat.Errorf(sitechat.ENOTFOUND, "session not found")
	}
	return info(sess), nil
}

// Sessions summarizes every session, oldest first.
func (s *SessionService) Sessions() []*sitechat.SessionInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*sitechat.SessionInfo, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, info(sess))
	}
	slices.SortFunc(out, func(a, b *sitechat.SessionInfo) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out
}

// SessionExists reports whether the session exists.
func (s *SessionService) SessionExists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[id]
	return ok
}

// SweepExpired removes sessions whose last activity is older than maxAge.
func (s *SessionService) SweepExpired(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now()
	var removed int
	for id, sess := range s.sessions {
		if now.Sub(sess.LastActivity) > maxAge {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Stats aggregates memory usage.
func (s *SessionService) Stats() sitechat.MemoryStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := sitechat.MemoryStats{
		TotalSessions:         len(s.sessions),
		MaxMessagesPerSession: s.maxMessages,
		MaxContextMessages:    s.contextMessages,
	}
	for _, sess := range s.sessions {
		stats.TotalMessages += len(sess.Messages)
	}
	if stats.TotalSessions > 0 {
		stats.AverageMessagesPerSession = float64(stats.TotalMessages) / float64(stats.TotalSessions)
	}
	return stats
}

func info(sess *sitechat.Session) *sitechat.SessionInfo {
	return &sitechat.SessionInfo{
		ID:           sess.ID,
		MessageCount: len(sess.Messages),
		CreatedAt:    sess.CreatedAt,
		LastActivity: sess.LastActivity,
	}
}
