// Package server exposes the wrapped analysis over HTTP: a health check and
// a single player endpoint that fetches live data and returns the insight
// record alongside the raw profile.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pable/go-cr-wrapped/internal/insights"
	"github.com/pable/go-cr-wrapped/internal/model"
	"github.com/pable/go-cr-wrapped/internal/royale"
)

// PlayerFetcher is the upstream API surface the server depends on.
type PlayerFetcher interface {
	GetPlayer(ctx context.Context, tag string) (*model.Profile, error)
	GetBattleLog(ctx context.Context, tag string) ([]model.Battle, error)
}

// Server is the wrapped REST API.
type Server struct {
	router  *chi.Mux
	fetcher PlayerFetcher
}

// New builds the server and its routes. allowedOrigins configures CORS for
// browser frontends (e.g. the Vite dev server).
func New(fetcher PlayerFetcher, allowedOrigins []string) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		fetcher: fetcher,
	}

	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	s.router.Get("/", s.root)
	s.router.Get("/health", s.health)
	s.router.Post("/api/player", s.player)
	return s
}

// ServeHTTP makes the server usable as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe runs the server until the context is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown: %v", err)
		}
	}()
	log.Printf("listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to Clash Royale Wrapped API"})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// playerRequest is the POST /api/player body.
type playerRequest struct {
	Tag string `json:"tag"`
}

// playerResponse is the success envelope.
type playerResponse struct {
	Success bool       `json:"success"`
	Data    playerData `json:"data"`
}

type playerData struct {
	Player   *model.Profile `json:"player"`
	Insights model.Insights `json:"insights"`
}

func (s *Server) player(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !royale.ValidateTag(req.Tag) {
		writeError(w, http.StatusBadRequest, "invalid tag format: tags contain only digits and uppercase letters")
		return
	}

	profile, err := s.fetcher.GetPlayer(r.Context(), req.Tag)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	battles, err := s.fetcher.GetBattleLog(r.Context(), req.Tag)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, playerResponse{
		Success: true,
		Data: playerData{
			Player:   profile,
			Insights: insights.Analyze(*profile, battles),
		},
	})
}

// statusFor maps the upstream error taxonomy onto HTTP statuses, one per kind.
func statusFor(err error) int {
	switch royale.KindOf(err) {
	case royale.KindInvalidTag:
		return http.StatusBadRequest
	case royale.KindNotFound:
		return http.StatusNotFound
	case royale.KindForbidden:
		return http.StatusBadGateway
	case royale.KindRateLimited:
		return http.StatusTooManyRequests
	case royale.KindTimeout:
		return http.StatusGatewayTimeout
	case royale.KindNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{"success": false, "error": msg})
}
