package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"aktau-afisha-bot/internal/domain"
	"aktau-afisha-bot/internal/domain/model"
	"aktau-afisha-bot/internal/usecase"
)

// Server is the read-only HTTP sidecar: public event/promotion listings and
// a JWT-gated admin stats endpoint.
type Server struct {
	eventUC    usecase.EventUseCase
	promoUC    usecase.PromotionUseCase
	statsUC    usecase.StatsUseCase
	auth       *AuthManager
	adminToken string
	log        *zerolog.Logger
}

func NewServer(
	eventUC usecase.EventUseCase,
	promoUC usecase.PromotionUseCase,
	statsUC usecase.StatsUseCase,
	auth *AuthManager,
	adminToken string,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		eventUC:    eventUC,
		promoUC:    promoUC,
		statsUC:    statsUC,
		auth:       auth,
		adminToken: adminToken,
		log:        logger,
	}
}

// Handler builds the chi router with the shared middleware chain applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/events", s.handleListEvents)
		r.Get("/events/{id}", s.handleGetEvent)
		r.Get("/promotions", s.handleListPromotions)

		r.Post("/admin/login", s.handleAdminLogin)
		r.With(s.requireAdmin).Get("/admin/stats", s.handleAdminStats)
	})

	return Chain(r,
		TraceID(),
		RequestLog(s.log),
		Recover(s.log),
		Timeout(15*time.Second),
	)
}

type eventDTO struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
}

type promotionDTO struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Venue       string `json:"venue"`
	ValidUntil  string `json:"valid_until"`
	IsActive    bool   `json:"is_active"`
}

func toEventDTO(e *model.Event) eventDTO {
	return eventDTO{ID: e.ID, Title: e.Title, Description: e.Description, Date: e.Date, Location: e.Location}
}

func toPromotionDTO(p *model.Promotion) promotionDTO {
	return promotionDTO{ID: p.ID, Title: p.Title, Description: p.Description, Venue: p.Venue, ValidUntil: p.ValidUntil, IsActive: p.IsActive}
}

// handleListEvents returns upcoming events by default; ?all=true lists the
// full catalog.
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	var (
		events []*model.Event
		err    error
	)
	if r.URL.Query().Get("all") == "true" {
		events, err = s.eventUC.All(r.Context())
	} else {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		events, err = s.eventUC.Upcoming(r.Context(), limit)
	}
	if err != nil {
		s.log.Error().Err(err).Msg("api list events")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	out := make([]eventDTO, 0, len(events))
	for _, e := range events {
		out = append(out, toEventDTO(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}
	e, err := s.eventUC.Get(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Error().Err(err).Int64("event_id", id).Msg("api get event")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toEventDTO(e))
}

func (s *Server) handleListPromotions(w http.ResponseWriter, r *http.Request) {
	promos, err := s.promoUC.Active(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("api list promotions")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	out := make([]promotionDTO, 0, len(promos))
	for _, p := range promos {
		out = append(out, toPromotionDTO(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if s.adminToken == "" {
		s.log.Error().Msg("admin token is not configured")
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Token != s.adminToken {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	jwt, err := s.auth.Mint()
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": jwt})
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.auth.ParseFromRequest(r); err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.statsUC.Totals(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("api stats")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
