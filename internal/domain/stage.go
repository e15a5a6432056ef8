package domain

// Stage is the explicit workflow state of a client. It is derived from the
// type/auditType fields on every read; the optional-field encoding is a
// serialization detail only.
type Stage string

const (
	// StageAwaitingType is transient: Create defaults type to new_idea, so a
	// persisted client never reads back in this stage.
	StageAwaitingType      Stage = "awaiting_type"
	StageNewIdea           Stage = "new_idea"
	StageAwaitingAuditType Stage = "awaiting_audit_type"
	StageImprovementChat   Stage = "improvement_chat"
)

// StageOf derives the workflow stage from a client record.
func StageOf(c *Client) Stage {
	switch c.Type {
	case EngagementNewIdea:
		return StageNewIdea
	case EngagementImprovement:
		if c.AuditType == "" {
			return StageAwaitingAuditType
		}
		return StageImprovementChat
	default:
		return StageAwaitingType
	}
}

// Screen names the view a client-facing router should show for a stage.
type Screen string

const (
	ScreenSelectType  Screen = "select-type"
	ScreenSelectAudit Screen = "select-audit"
	ScreenChat        Screen = "chat"
)

// ScreenFor maps a stage to its screen.
func ScreenFor(s Stage) Screen {
	switch s {
	case StageNewIdea, StageImprovementChat:
		return ScreenChat
	case StageAwaitingAuditType:
		return ScreenSelectAudit
	default:
		return ScreenSelectType
	}
}

// InChat reports whether a client in this stage can send chat messages.
func (s Stage) InChat() bool {
	return s == StageNewIdea || s == StageImprovementChat
}
