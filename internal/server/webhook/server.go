// Package webhook runs the side HTTP server: a health probe and the Stripe
// webhook that confirms card tithes settled outside the gRPC call.
package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/praylink/internal/common"
	"github.com/dmitrijs2005/praylink/internal/logging"
	"github.com/dmitrijs2005/praylink/internal/models"
	"github.com/dmitrijs2005/praylink/internal/server/payments"
	"github.com/dmitrijs2005/praylink/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const maxPayloadBytes = 64 << 10

type titheRecorder interface {
	RecordSuccess(ctx context.Context, userID string, amount int64, currency string,
		method models.PaymentMethod, reference string) (*services.TitheResult, error)
}

type Server struct {
	address      string
	stripeSecret string
	tithes       titheRecorder
	logger       logging.Logger
	router       chi.Router
	parseWebhook func(payload []byte, signature, secret string) (*payments.Intent, bool, error)
}

func NewServer(addr string, l logging.Logger, tithes titheRecorder, stripeWebhookSecret string) *Server {
	s := &Server{
		address:      addr,
		stripeSecret: stripeWebhookSecret,
		tithes:       tithes,
		logger:       l.With("module", "http_server"),
		parseWebhook: payments.ParseStripeWebhook,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/webhooks", func(r chi.Router) {
		r.Post("/stripe", s.handleStripe)
	})

	s.router = r
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: s.router, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStripe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if s.stripeSecret == "" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "stripe webhook not configured"})
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "payload too large"})
		return
	}

	in, ok, err := s.parseWebhook(payload, r.Header.Get("Stripe-Signature"), s.stripeSecret)
	if err != nil {
		s.logger.Warn(ctx, "rejected stripe webhook", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid signature"})
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}
	if in.UserID == "" {
		s.logger.Warn(ctx, "stripe intent without user metadata", "reference", in.Reference)
		writeJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	res, err := s.tithes.RecordSuccess(ctx, in.UserID, in.Amount, in.Currency, models.PaymentCreditCard, in.Reference)
	if errors.Is(err, common.ErrorNotFound) {
		s.logger.Warn(ctx, "stripe intent for unknown user", "reference", in.Reference, "user_id", in.UserID)
		writeJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}
	if err != nil {
		s.logger.Error(ctx, "failed to record stripe tithe", "reference", in.Reference, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	s.logger.Info(ctx, "Stripe tithe recorded", "reference", in.Reference, "upgraded", res.Upgraded)
	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}
