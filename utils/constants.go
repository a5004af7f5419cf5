package utils

import "time"

// SessionCachePrefix is the prefix used for Redis session keys.
const SessionCachePrefix = "session:"

// DefaultSessionTTL applies when no SESSION_TTL is configured.
const DefaultSessionTTL = 24 * time.Hour

// DefaultSessionSweepInterval applies when no SESSION_SWEEP_INTERVAL is configured.
const DefaultSessionSweepInterval = time.Minute

// Context keys set by the auth middleware.
const (
	ContextUserID    = "userID"
	ContextSessionID = "sessionID"
	ContextUser      = "user"
	ContextToken     = "token"
)
