package session

import (
	"context"

	"github.com/toyhtowdomasydyt/sales-gemini-chat/internal/app/chat"
	"github.com/toyhtowdomasydyt/sales-gemini-chat/internal/app/registry"
	"github.com/toyhtowdomasydyt/sales-gemini-chat/internal/domain"
	"github.com/toyhtowdomasydyt/sales-gemini-chat/internal/observability"
)

// Selector drives the per-client workflow: which stage applies, and the
// ChooseType / ChooseAuditType transitions between them.
type Selector struct {
	registry *registry.Service
	chat     *chat.Service
}

func NewSelector(reg *registry.Service, chatSvc *chat.Service) *Selector {
	return &Selector{
		registry: reg,
		chat:     chatSvc,
	}
}

// ChooseType sets the engagement type. Choosing new_idea unconditionally
// clears any previously set audit type and, when the conversation log is
// empty, seeds the fixed welcome message so the chat opens with it.
func (s *Selector) ChooseType(ctx context.Context, id domain.ClientID, t domain.EngagementType) (*domain.Client, error) {
	if t != domain.EngagementNewIdea && t != domain.EngagementImprovement {
		return nil, &domain.ValidationError{Field: "type", Reason: "must be new_idea or improvement"}
	}

	patch := registry.UpdatePatch{Type: &t}
	if t == domain.EngagementNewIdea {
		patch.ClearAuditType = true
	}

	client, err := s.registry.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info("engagement type chosen",
		"client_id", id,
		"type", t,
		"stage", domain.StageOf(client),
	)

	if t == domain.EngagementNewIdea {
		// Timeline seeds the welcome message when the log is empty.
		if _, _, err := s.chat.Timeline(ctx, id); err != nil {
			return nil, err
		}
	}

	return client, nil
}

// ChooseAuditType is only valid for an improvement client that has not yet
// picked an audit type. It sets the audit type and replaces the conversation
// log with a single assistant message holding the brief for that audit.
func (s *Selector) ChooseAuditType(ctx context.Context, id domain.ClientID, t domain.AuditType) (*domain.Client, error) {
	switch t {
	case domain.AuditUI, domain.AuditUX, domain.AuditGeneral:
	default:
		return nil, &domain.ValidationError{Field: "auditType", Reason: "must be ui, ux or general"}
	}

	client, err := s.registry.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if domain.StageOf(client) != domain.StageAwaitingAuditType {
		return nil, domain.ErrInvalidStage
	}

	client, err = s.registry.Update(ctx, id, registry.UpdatePatch{AuditType: &t})
	if err != nil {
		return nil, err
	}

	if _, err := s.chat.SeedBrief(ctx, client, chat.BriefFor(t)); err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info("audit type chosen",
		"client_id", id,
		"audit_type", t,
	)

	return client, nil
}
