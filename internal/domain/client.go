package domain

// Client represents a sales lead/project being walked through an engagement.
type Client struct {
	ID      ClientID `json:"id"`
	Name    string   `json:"name"`
	Company string   `json:"company,omitempty"`

	Type EngagementType `json:"type"`

	// AuditType is set only after audit-type selection for an improvement
	// client. Switching back to new_idea clears it.
	AuditType AuditType `json:"auditType,omitempty"`

	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

// Message is one turn in a client's conversation log.
type Message struct {
	ID        MessageID `json:"id"`
	ClientID  ClientID  `json:"clientId"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt Timestamp `json:"createdAt"`
}
