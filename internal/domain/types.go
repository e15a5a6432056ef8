package domain

import "time"

type ClientID string
type MessageID string

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// EngagementType is the kind of work a client wants to explore.
type EngagementType string

const (
	EngagementNewIdea     EngagementType = "new_idea"
	EngagementImprovement EngagementType = "improvement"
)

// AuditType narrows an improvement engagement to a concrete audit.
type AuditType string

const (
	AuditUI      AuditType = "ui"
	AuditUX      AuditType = "ux"
	AuditGeneral AuditType = "general"
)

type Timestamp = time.Time
