package constants

import "time"

// Context keys for values attached by middleware.
const (
	ContextKeyUser    = "user"
	ContextKeyProject = "project"
	ContextKeyTask    = "task"
)

// Password policy
const (
	MinPasswordLength = 8
)

// Token policy
const (
	TokenCodeLength = 6
	TokenTTL        = 10 * time.Minute
	SessionTTL      = 180 * 24 * time.Hour
)
