package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dgallion1/docsbot/internal/bot"
	"github.com/dgallion1/docsbot/internal/config"
	"github.com/dgallion1/docsbot/internal/telegram"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxUpdateBytes bounds a single webhook body.
const maxUpdateBytes = 1 << 20

// Server is the HTTP surface of the bot: the Telegram webhook and a
// health probe.
type Server struct {
	router     chi.Router
	dispatcher *bot.Dispatcher
	log        *slog.Logger
	cfg        config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(d *bot.Dispatcher, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		dispatcher: d,
		log:        log,
		cfg:        cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(WebhookAuth(s.cfg.WebhookSecret, s.log))
		r.Post("/webhook", s.handleWebhook)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleWebhook acks fast: decode one update, enqueue it, return. The
// workers do the actual Bot API round-trips.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var up telegram.Update
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUpdateBytes))
	if err := dec.Decode(&up); err != nil {
		http.Error(w, `{"error":"malformed update"}`, http.StatusBadRequest)
		return
	}
	s.dispatcher.Enqueue(up)
	w.WriteHeader(http.StatusOK)
}
