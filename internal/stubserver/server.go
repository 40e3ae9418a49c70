package stubserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Tanjamul-Azad/Complete-Legal-Aid/internal/logging"
)

// Server exposes the chat API surface over an in-memory store.
type Server struct {
	store *MessageStore
	log   zerolog.Logger
}

// New creates a server over the given store.
func New(store *MessageStore) *Server {
	return &Server{
		store: store,
		log:   logging.Component("stubserver"),
	}
}

// Handler builds the HTTP routing table, rooted at /api.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/chat-messages/", s.listMessages).Methods(http.MethodGet)
	api.HandleFunc("/chat-messages/", s.createMessage).Methods(http.MethodPost)
	api.HandleFunc("/chat-messages/{id}/", s.patchMessage).Methods(http.MethodPatch)
	api.HandleFunc("/users/", s.listUsers).Methods(http.MethodGet)

	r.Use(s.requestLog)
	return r
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", reqID).
			Msg("request")
		next.ServeHTTP(w, r)
	})
}

// senderID resolves the caller's identity. The stub treats the bearer
// token as the user ID so any directory entry can log in without an
// auth backend.
func senderID(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Token "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func (s *Server) listMessages(w http.ResponseWriter, r *http.Request) {
	// The real deployment paginates; the stub ships everything in one
	// page but keeps the envelope so clients exercise both shapes.
	writeJSON(w, http.StatusOK, struct {
		Results []Record `json:"results"`
	}{Results: s.store.List()})
}

type createReq struct {
	Text       string `json:"message_text"`
	Receiver   string `json:"receiver"`
	Case       string `json:"case"`
	Attachment string `json:"attachment"`
}

func (s *Server) createMessage(w http.ResponseWriter, r *http.Request) {
	sender := senderID(r)
	if sender == "" {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "message_text required")
		return
	}
	if strings.TrimSpace(req.Receiver) == "" {
		writeError(w, http.StatusBadRequest, "receiver required")
		return
	}
	rec := s.store.Add(sender, req.Receiver, req.Text, req.Case, req.Attachment)
	s.log.Info().
		Int64("message_id", rec.MessageID).
		Str("sender", sender).
		Str("receiver", req.Receiver).
		Msg("message created")
	writeJSON(w, http.StatusCreated, rec)
}

type patchReq struct {
	IsRead *bool `json:"is_read"`
}

func (s *Server) patchMessage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid message id")
		return
	}
	var req patchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.IsRead == nil {
		writeError(w, http.StatusBadRequest, "is_read required")
		return
	}
	rec, ok := s.store.MarkRead(id, *req.IsRead)
	if !ok {
		writeError(w, http.StatusNotFound, "message not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Users())
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, struct {
		Error string `json:"error"`
	}{Error: msg})
}
