package httpadapter

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/toyhtowdomasydyt/sales-gemini-chat/internal/app/chat"
	"github.com/toyhtowdomasydyt/sales-gemini-chat/internal/app/registry"
	"github.com/toyhtowdomasydyt/sales-gemini-chat/internal/app/session"
	"github.com/toyhtowdomasydyt/sales-gemini-chat/internal/domain"
)

type Server struct {
	registry *registry.Service
	selector *session.Selector
	chat     *chat.Service
	llm      domain.LLMClient
}

func NewServer(
	reg *registry.Service,
	selector *session.Selector,
	chatSvc *chat.Service,
	llm domain.LLMClient,
) http.Handler {
	s := &Server{
		registry: reg,
		selector: selector,
		chat:     chatSvc,
		llm:      llm,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealthz)

	// /api/gemini-chat → stateless completion pass-through (POST)
	mux.HandleFunc("/api/gemini-chat", s.handleGeminiChat)

	// /clients → create (POST), list/search (GET)
	mux.HandleFunc("/clients", s.handleClients)

	// /clients/current            → GET: the active selection
	// /clients/{id}               → GET: client + messages + screen
	// /clients/{id}/select        → POST: make current
	// /clients/{id}/type          → POST: choose engagement type
	// /clients/{id}/audit-type    → POST: choose audit type
	// /clients/{id}/messages      → POST: send a chat message
	mux.HandleFunc("/clients/", s.handleClientWithID)

	return chainMiddlewares(mux, withCORS, withLogging, withRequestID)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type clientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Company   string    `json:"company,omitempty"`
	Type      string    `json:"type"`
	AuditType string    `json:"auditType,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Screen    string    `json:"screen"`
}

type messageResponse struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"clientId"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type createClientRequest struct {
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
}

type chooseTypeRequest struct {
	Type string `json:"type"`
}

type chooseAuditTypeRequest struct {
	AuditType string `json:"auditType"`
}

type sendMessageRequest struct {
	Text        string `json:"text"`
	ImageBase64 string `json:"imageBase64,omitempty"`
}

type sendMessageResponse struct {
	UserMessage      messageResponse `json:"user_message"`
	AssistantMessage messageResponse `json:"assistant_message"`
}

type getClientResponse struct {
	Client   clientResponse    `json:"client"`
	Messages []messageResponse `json:"messages"`
}

type geminiChatRequest struct {
	Prompt      string `json:"prompt"`
	Context     string `json:"context,omitempty"`
	ImageBase64 string `json:"imageBase64,omitempty"`
	// UseVision is accepted for compatibility; image presence decides.
	UseVision bool `json:"useVision,omitempty"`
}

// ─────────────────────────────────────────────
// Basic routing
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// /clients
func (s *Server) handleClients(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateClient(w, r)
	case http.MethodGet:
		s.handleListClients(w, r)
	default:
		methodNotAllowed(w)
	}
}

// /clients/current, /clients/{id} or /clients/{id}/<action>
func (s *Server) handleClientWithID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/clients/")
	if path == "" {
		http.NotFound(w, r)
		return
	}

	parts := strings.Split(path, "/")
	if parts[0] == "" {
		http.NotFound(w, r)
		return
	}

	if len(parts) == 1 {
		switch {
		case parts[0] == "current" && r.Method == http.MethodGet:
			s.handleCurrentClient(w, r)
		case r.Method == http.MethodGet:
			s.handleGetClient(w, r, domain.ClientID(parts[0]))
		default:
			methodNotAllowed(w)
		}
		return
	}

	if len(parts) == 2 {
		id := domain.ClientID(parts[0])
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		switch parts[1] {
		case "select":
			s.handleSelectClient(w, r, id)
		case "type":
			s.handleChooseType(w, r, id)
		case "audit-type":
			s.handleChooseAuditType(w, r, id)
		case "messages":
			s.handleSendMessage(w, r, id)
		default:
			http.NotFound(w, r)
		}
		return
	}

	http.NotFound(w, r)
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	client, err := s.registry.Create(r.Context(), registry.CreateInput{
		Name:    req.Name,
		Company: req.Company,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toClientResponse(client))
}

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := s.registry.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]clientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, toClientResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCurrentClient(w http.ResponseWriter, r *http.Request) {
	client, err := s.registry.Current(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toClientResponse(client))
}

func (s *Server) handleGetClient(w http.ResponseWriter, r *http.Request, id domain.ClientID) {
	client, msgs, err := s.chat.Timeline(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, getClientResponse{
		Client:   toClientResponse(client),
		Messages: toMessagesResponse(msgs),
	})
}

func (s *Server) handleSelectClient(w http.ResponseWriter, r *http.Request, id domain.ClientID) {
	client, err := s.registry.Select(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toClientResponse(client))
}

func (s *Server) handleChooseType(w http.ResponseWriter, r *http.Request, id domain.ClientID) {
	var req chooseTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	client, err := s.selector.ChooseType(r.Context(), id, domain.EngagementType(req.Type))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toClientResponse(client))
}

func (s *Server) handleChooseAuditType(w http.ResponseWriter, r *http.Request, id domain.ClientID) {
	var req chooseAuditTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	client, err := s.selector.ChooseAuditType(r.Context(), id, domain.AuditType(req.AuditType))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toClientResponse(client))
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request, id domain.ClientID) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	image, err := parseImageDataURL(req.ImageBase64)
	if err != nil {
		badRequest(w, "invalid imageBase64 payload")
		return
	}

	out, err := s.chat.SendMessage(r.Context(), chat.SendMessageInput{
		ClientID: id,
		Text:     req.Text,
		Image:    image,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sendMessageResponse{
		UserMessage:      toMessageResponse(out.UserMessage),
		AssistantMessage: toMessageResponse(out.AssistantMessage),
	})
}

// handleGeminiChat is the stateless pass-through to the completion provider.
// Contract kept byte-compatible with the original endpoint: 405 for
// non-POST, 400 when neither prompt nor image is supplied, 500 with the
// provider's message on failure, 200 {"text": ...} on success.
func (s *Server) handleGeminiChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}

	var req geminiChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if req.Prompt == "" && req.ImageBase64 == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing prompt or image"})
		return
	}

	image, err := parseImageDataURL(req.ImageBase64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid imageBase64 payload"})
		return
	}

	text, err := s.llm.Complete(r.Context(), req.Prompt, req.Context, image)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// parseImageDataURL turns a "data:image/png;base64,...." data URL into image
// bytes. An empty input means no image.
func parseImageDataURL(dataURL string) (*domain.ImageData, error) {
	if dataURL == "" {
		return nil, nil
	}

	mimeType := "image/png"
	payload := dataURL

	if i := strings.Index(dataURL, ","); i >= 0 {
		header := dataURL[:i]
		payload = dataURL[i+1:]
		header = strings.TrimPrefix(header, "data:")
		if j := strings.Index(header, ";"); j >= 0 {
			header = header[:j]
		}
		if header != "" {
			mimeType = header
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, err
	}

	return &domain.ImageData{MIMEType: mimeType, Data: data}, nil
}

func toClientResponse(c *domain.Client) clientResponse {
	return clientResponse{
		ID:        string(c.ID),
		Name:      c.Name,
		Company:   c.Company,
		Type:      string(c.Type),
		AuditType: string(c.AuditType),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Screen:    string(domain.ScreenFor(domain.StageOf(c))),
	}
}

func toMessageResponse(m *domain.Message) messageResponse {
	return messageResponse{
		ID:        string(m.ID),
		ClientID:  string(m.ClientID),
		Role:      string(m.Role),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

func toMessagesResponse(msgs []*domain.Message) []messageResponse {
	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	return out
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err):
		badRequest(w, err.Error())
	case errors.Is(err, domain.ErrClientNotFound), errors.Is(err, domain.ErrNoCurrentClient):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidStage):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case domain.IsGateway(err):
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	default:
		internalError(w, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func internalError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "internal server error",
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}
