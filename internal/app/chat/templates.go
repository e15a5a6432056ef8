package chat

import "github.com/toyhtowdomasydyt/sales-gemini-chat/internal/domain"

// WelcomeMessage is the assistant message seeded when a new-idea client
// opens the chat for the first time. Reproduced verbatim for compatibility
// with transcripts written by earlier versions.
const WelcomeMessage = "Welcome! Please describe your new app idea. Share as much detail as you can about the concept, goals, and any features you have in mind. I'll help you shape your idea into a great product!"

// IdeaContext is the prompt-seeding context for the first user turn of a
// new-idea engagement.
const IdeaContext = `You are an experienced product consultant helping a client shape a new app idea. Structure every response using the following markdown sections:

**Just an Idea:** Restate the client's idea in one or two sentences to confirm your understanding of the concept.

**Solution:** Describe the solution you propose and how it addresses the client's goals.

**Artefact:** List the concrete deliverables the client should expect from this engagement.

**Outcome:** Explain the business outcome the client can expect once the solution ships.`

// UXAuditContext is the prompt-seeding context for the first user turn of a
// UX audit.
const UXAuditContext = `You are an experienced UX consultant auditing an existing application. Structure every response using the following markdown sections:

**UX Audit:** Analyze the user flows, interactions, and experience patterns the client describes, pointing out concrete problems and improvements.

**Artefact:** List the concrete deliverables the client should expect from this audit.

**Outcome:** Explain the business outcome the client can expect once the recommendations are applied.`

// UIAuditContext is the prompt-seeding context for the first user turn of a
// UI audit.
const UIAuditContext = `You are an experienced UI consultant auditing an existing application. Structure every response using the following markdown sections:

**UI Audit:** Evaluate the visual design, layout, and interface elements the client describes, pointing out concrete problems and improvements.

**Artefact:** List the concrete deliverables the client should expect from this audit.

**Outcome:** Explain the business outcome the client can expect once the recommendations are applied.`

const uiBrief = "Please provide the following information about your app's UI requirements:\n1. What is the main purpose of your app?\n2. Who are your target users?\n3. What are the key features you want to include?\n4. Do you have any specific design preferences or inspiration?\n5. What platforms will your app support (web, mobile, both)?"

const uxBrief = "Please provide the following information about your app's UX requirements:\n1. What are the main user flows you want to implement?\n2. What are the key user interactions?\n3. How do you want users to navigate through your app?\n4. What are the main pain points you want to address?\n5. Do you have any specific accessibility requirements?"

const generalBrief = "Please provide the following information about your app:\n1. What is the main problem your app solves?\n2. Who are your target users?\n3. What are your main competitors?\n4. What makes your app unique?\n5. What are your main technical requirements?"

// BriefFor returns the brief questionnaire seeded as the first assistant
// message when an audit type is chosen.
func BriefFor(t domain.AuditType) string {
	switch t {
	case domain.AuditUI:
		return uiBrief
	case domain.AuditUX:
		return uxBrief
	default:
		return generalBrief
	}
}

// SelectContext decides the context for the next outbound completion call.
// It is a pure function of the client state and the log as it stands before
// the new user message is appended.
//
// First user turn of a new-idea engagement (log holds exactly the seeded
// welcome) uses the idea consultant template. First user turn after choosing
// a ui/ux audit (log empty or exactly one seeded assistant message) uses the
// matching audit template. Everything else uses the full history join.
func SelectContext(c *domain.Client, log []*domain.Message) string {
	switch domain.StageOf(c) {
	case domain.StageNewIdea:
		if len(log) == 1 && log[0].Role == domain.RoleAssistant && log[0].Content == WelcomeMessage {
			return IdeaContext
		}
	case domain.StageImprovementChat:
		seeded := len(log) == 0 || (len(log) == 1 && log[0].Role == domain.RoleAssistant)
		if seeded {
			switch c.AuditType {
			case domain.AuditUX:
				return UXAuditContext
			case domain.AuditUI:
				return UIAuditContext
			}
		}
	}
	return domain.BuildContext(log)
}
