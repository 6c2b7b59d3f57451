package mock

import (
	"time"

	"github.com/harshydav08/sitechat"
)

var _ sitechat.SessionService = (*SessionService)(nil)

// SessionService is a mock implementation of sitechat.SessionService.
type SessionService struct {
	CreateSessionFn func() string
	AppendMessageFn func(id string, role sitechat.Role, content string, meta sitechat.Metadata) bool
	RecentContextFn func(id string) []*sitechat.Message
	HistoryFn       func(id string) []*sitechat.Message
	ClearSessionFn  func(id string) bool
	SessionInfoFn   func(id string) (*sitechat.SessionInfo, error)
	SessionsFn      func() []*sitechat.SessionInfo
	SessionExistsFn func(id string) bool
	SweepExpiredFn  func(maxAge time.Duration) int
	StatsFn         func() sitechat.MemoryStats
}

func (s *SessionService) CreateSession() string {
	return s.CreateSessionFn()
}

func (s *SessionService) AppendMessage(id string, role sitechat.Role, content string, meta sitechat.Metadata) bool {
	return s.AppendMessageFn(id, role, content, meta)
}

func (s *SessionService) RecentContext(id string) []*sitechat.Message {
	return s.RecentContextFn(id)
}

func (s *SessionService) History(id string) []*sitechat.Message {
	return s.HistoryFn(id)
}

func (s *SessionService) ClearSession(id string) bool {
	return s.ClearSessionFn(id)
}

func (s *SessionService) SessionInfo(id string) (*sitechat.SessionInfo, error) {
	return s.SessionInfoFn(id)
}

func (s *SessionService) Sessions() []*sitechat.SessionInfo {
	return s.SessionsFn()
}

func (s *SessionService) SessionExists(id string) bool {
	return s.SessionExistsFn(id)
}

func (s *SessionService) SweepExpired(maxAge time.Duration) int {
	return s.SweepExpiredFn(maxAge)
}

func (s *SessionService) Stats() sitechat.MemoryStats {
	return s.StatsFn()
}
