package domain

import "testing"

func TestStageOf(t *testing.T) {
	cases := []struct {
		name   string
		client Client
		want   Stage
	}{
		{"new idea", Client{Type: EngagementNewIdea}, StageNewIdea},
		{"new idea with stale audit type", Client{Type: EngagementNewIdea, AuditType: AuditUX}, StageNewIdea},
		{"improvement without audit type", Client{Type: EngagementImprovement}, StageAwaitingAuditType},
		{"improvement with audit type", Client{Type: EngagementImprovement, AuditType: AuditUI}, StageImprovementChat},
		{"unset type", Client{}, StageAwaitingType},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StageOf(&tc.client); got != tc.want {
				t.Fatalf("StageOf = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestScreenFor(t *testing.T) {
	cases := []struct {
		stage Stage
		want  Screen
	}{
		{StageNewIdea, ScreenChat},
		{StageImprovementChat, ScreenChat},
		{StageAwaitingAuditType, ScreenSelectAudit},
		{StageAwaitingType, ScreenSelectType},
	}

	for _, tc := range cases {
		if got := ScreenFor(tc.stage); got != tc.want {
			t.Fatalf("ScreenFor(%q) = %q, want %q", tc.stage, got, tc.want)
		}
	}
}

func TestStageInChat(t *testing.T) {
	if !StageNewIdea.InChat() || !StageImprovementChat.InChat() {
		t.Fatal("chat stages must allow chat")
	}
	if StageAwaitingType.InChat() || StageAwaitingAuditType.InChat() {
		t.Fatal("selection stages must not allow chat")
	}
}
