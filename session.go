package sitechat

import "time"

// Role identifies the author of a message.
type Role string

// Message roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  Metadata  `json:"metadata,omitempty"`
}

// Session is a conversation. Messages are ordered oldest first.
type Session struct {
	ID           string     `json:"sessionId"`
	Messages     []*Message `json:"messages"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastActivity time.Time  `json:"lastActivity"`
}

// SessionInfo summarizes a session without its messages.
type SessionInfo struct {
	ID           string    `json:"sessionId"`
	MessageCount int       `json:"messageCount"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
}

// MemoryStats aggregates conversation memory usage.
type MemoryStats struct {
	TotalSessions             int     `json:"totalSessions"`
	TotalMessages             int     `json:"totalMessages"`
	MaxMessagesPerSession     int     `json:"maxMessagesPerSession"`
	MaxContextMessages        int     `json:"maxContextMessages"`
	AverageMessagesPerSession float64 `json:"averageMessagesPerSession"`
}

// SessionService owns all conversation state. Implementations must be safe
// for concurrent use.
type SessionService interface {
	// CreateSession starts an empty session and returns its ID.
	CreateSession() string

	// AppendMessage adds a message and trims the oldest ones beyond the
	// per-session limit. Returns false if the session is unknown.
	AppendMessage(id string, role Role, content string, meta Metadata) bool

	// RecentContext returns the most recent context messages, oldest first.
	// Unknown sessions yield an empty slice.
	RecentContext(id string) []*Message

	// History returns every retained message, oldest first.
	History(id string) []*Message

	// ClearSession deletes a session. Returns false if it was unknown.
	ClearSession(id string) bool

	// SessionInfo summarizes a session.
	// Returns ENOTFOUND if the session does not exist.
	SessionInfo(id string) (*SessionInfo, error)

	// Sessions summarizes every session.
	Sessions() []*SessionInfo

	// SessionExists reports whether the session exists.
	SessionExists(id string) bool

	// SweepExpired removes sessions idle for longer than maxAge and
	// returns how many were removed.
	SweepExpired(maxAge time.Duration) int

	// Stats aggregates memory usage.
	Stats() MemoryStats
}
