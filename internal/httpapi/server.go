// Package httpapi exposes the scan-continuation endpoint and the webhook
// receiver. Both always answer structured JSON: conditions an automated
// caller can retry come back as retryable payloads, never bare 5xx.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"catalog_syncer/internal/domain"
	"catalog_syncer/internal/gateway"
	"catalog_syncer/internal/service"
)

// legacyWebhookPath must keep working: external callback registrations still
// point at it.
const (
	webhookPath       = "/webhooks/catalog"
	legacyWebhookPath = "/api/notifications"
)

// AlertReader backs the alert-history reporting endpoint.
type AlertReader interface {
	RecentByProduct(ctx context.Context, userID int64, productID string, limit int) ([]domain.StockAlert, error)
}

type Server struct {
	scanner  *service.Scanner
	webhooks *service.WebhookProcessor
	gw       *gateway.Gateway
	alerts   AlertReader
	logger   *slog.Logger
}

func NewServer(scanner *service.Scanner, webhooks *service.WebhookProcessor, gw *gateway.Gateway, alerts AlertReader, logger *slog.Logger) *Server {
	return &Server{
		scanner:  scanner,
		webhooks: webhooks,
		gw:       gw,
		alerts:   alerts,
		logger:   logger.With("component", "httpapi"),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /sync/next", s.handleSyncNext)
	mux.HandleFunc("POST "+webhookPath, s.handleWebhook)
	mux.HandleFunc("POST "+legacyWebhookPath, s.handleWebhook)
	mux.HandleFunc("GET /alerts/recent", s.handleRecentAlerts)
	mux.HandleFunc("GET /gateway/stats", s.handleGatewayStats)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return withRequestID(withLogging(s.logger, mux))
}

type progress struct {
	Current           int     `json:"current"`
	Total             int     `json:"total"`
	Percentage        float64 `json:"percentage"`
	NewInThisBatch    int     `json:"newInThisBatch"`
	DuplicatesSkipped int     `json:"duplicatesSkipped"`
}

type syncNextResponse struct {
	Success       bool      `json:"success"`
	HasMore       bool      `json:"hasMore"`
	ScanCompleted bool      `json:"scanCompleted"`
	Restarted     bool      `json:"restarted,omitempty"`
	Progress      *progress `json:"progress,omitempty"`
	ContinueURL   *string   `json:"continueUrl"`
	Retryable     bool      `json:"retryable,omitempty"`
	NeedsReauth   bool      `json:"needsReauth,omitempty"`
	Error         string    `json:"error,omitempty"`
}

func (s *Server) handleSyncNext(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		writeJSON(w, http.StatusBadRequest, syncNextResponse{
			Success:     false,
			ContinueURL: nil,
			Error:       "user_id query parameter is required",
		})
		return
	}

	result, err := s.scanner.NextPage(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAuthExpired):
			// Must not look like "no data": the caller re-auths and
			// retries instead of clearing local state.
			writeJSON(w, http.StatusOK, syncNextResponse{
				Success:     false,
				Retryable:   true,
				NeedsReauth: true,
				Error:       "marketplace credentials expired",
			})
		case domain.IsRetryable(err):
			writeJSON(w, http.StatusOK, syncNextResponse{
				Success:   false,
				Retryable: true,
				Error:     err.Error(),
			})
		default:
			s.logger.Error("scan page failed", "user_id", userID, "error", err)
			writeJSON(w, http.StatusInternalServerError, syncNextResponse{
				Success: false,
				Error:   "internal error",
			})
		}
		return
	}

	resp := syncNextResponse{
		Success:       true,
		HasMore:       result.HasMore,
		ScanCompleted: result.ScanCompleted,
		Restarted:     result.Restarted,
		Progress: &progress{
			Current:           result.TotalSoFar,
			Total:             result.TotalKnown,
			Percentage:        percentage(result.TotalSoFar, result.TotalKnown),
			NewInThisBatch:    result.NewInBatch,
			DuplicatesSkipped: result.DuplicatesSkipped,
		},
	}
	if result.HasMore {
		u := fmt.Sprintf("/sync/next?user_id=%d", userID)
		resp.ContinueURL = &u
	}
	writeJSON(w, http.StatusOK, resp)
}

type webhookResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	WebhookID      string `json:"webhook_id,omitempty"`
	ProcessingTime string `json:"processingTime"`
}

// handleWebhook is phase 1 of ingestion: validate, persist, acknowledge.
// The response status reflects immediate validation only, never downstream
// processing outcome.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var n service.Notification
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&n); err != nil {
		writeJSON(w, http.StatusBadRequest, webhookResponse{
			Success:        false,
			Message:        "invalid JSON payload",
			ProcessingTime: time.Since(start).String(),
		})
		return
	}

	eventID, duplicate, err := s.webhooks.Ingest(r.Context(), n)
	if err != nil {
		status := http.StatusBadRequest
		if n.Validate() == nil {
			// Validation passed, storage failed: the marketplace
			// should redeliver.
			status = http.StatusInternalServerError
		}
		writeJSON(w, status, webhookResponse{
			Success:        false,
			Message:        err.Error(),
			ProcessingTime: time.Since(start).String(),
		})
		return
	}

	message := "queued for processing"
	if duplicate {
		message = "duplicate delivery ignored"
	}
	writeJSON(w, http.StatusOK, webhookResponse{
		Success:        true,
		Message:        message,
		WebhookID:      eventID,
		ProcessingTime: time.Since(start).String(),
	})
}

type recentAlertsResponse struct {
	Success bool                `json:"success"`
	Alerts  []domain.StockAlert `json:"alerts"`
	Error   string              `json:"error,omitempty"`
}

// handleRecentAlerts serves the alert history for one product, newest first.
func (s *Server) handleRecentAlerts(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	productID := r.URL.Query().Get("product_id")
	if err != nil || userID <= 0 || productID == "" {
		writeJSON(w, http.StatusBadRequest, recentAlertsResponse{
			Success: false,
			Error:   "user_id and product_id query parameters are required",
		})
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	alerts, err := s.alerts.RecentByProduct(r.Context(), userID, productID, limit)
	if err != nil {
		s.logger.Error("alert history lookup failed",
			"user_id", userID,
			"product_id", productID,
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, recentAlertsResponse{
			Success: false,
			Error:   "internal error",
		})
		return
	}
	if alerts == nil {
		alerts = []domain.StockAlert{}
	}
	writeJSON(w, http.StatusOK, recentAlertsResponse{Success: true, Alerts: alerts})
}

func (s *Server) handleGatewayStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.gw.Stats())
}

func percentage(current, total int) float64 {
	if total <= 0 {
		return 0
	}
	p := float64(current) / float64(total) * 100
	if p > 100 {
		p = 100
	}
	return p
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
