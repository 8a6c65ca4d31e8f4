// Package api exposes the prediction engine and its stores over HTTP and
// MCP for local clients.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kalambet/foretell/internal/history"
	"github.com/kalambet/foretell/internal/predict"
	"github.com/kalambet/foretell/internal/reminder"
	"github.com/kalambet/foretell/internal/themes"
)

const maxRequestBodySize = 1 << 20 // 1MB

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Deps holds the handler dependencies. The stores do whole-file
// read-modify-write without locking, so a single mutex serializes every
// mutating request.
type Deps struct {
	Assembler *predict.Assembler
	History   *history.Store
	Reminders *reminder.Store
	Themes    *themes.Registry
	Clock     Clock

	mu sync.Mutex
}

// NewHandler returns the HTTP API router.
func NewHandler(deps *Deps) http.Handler {
	if deps.Clock == nil {
		deps.Clock = systemClock{}
	}

	r := chi.NewRouter()
	r.Use(RequestLogger)

	r.Get("/health", handleHealth)
	r.Post("/predict", handlePredict(deps))
	r.Get("/categories", handleCategories(deps))
	r.Get("/themes", handleThemes(deps))
	r.Get("/history", handleHistory(deps))
	r.Get("/stats", handleStats(deps))
	r.Post("/history/{id}/rating", handleRate(deps))
	r.Get("/reminders", handleListReminders(deps))
	r.Get("/reminders/pending", handlePendingReminders(deps))
	r.Post("/reminders", handleCreateReminder(deps))
	r.Post("/reminders/{id}/ack", handleAckReminder(deps))

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// PredictRequest selects the prediction mode for one draw.
type PredictRequest struct {
	Category  string `json:"category"`
	Theme     string `json:"theme"`
	TimeAware bool   `json:"time_aware"`
	Preferred bool   `json:"preferred"`
	Smart     bool   `json:"smart"`
	Save      *bool  `json:"save"`
}

func handlePredict(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		req := PredictRequest{}
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
				return
			}
		}

		save := true
		if req.Save != nil {
			save = *req.Save
		}

		deps.mu.Lock()
		rec, err := deps.Assembler.Predict(predict.Options{
			Category:  req.Category,
			Theme:     req.Theme,
			TimeAware: req.TimeAware,
			Preferred: req.Preferred,
			Smart:     req.Smart,
			Save:      save,
		})
		deps.mu.Unlock()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to generate prediction: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rec)
	}
}

func handleCategories(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string][]string{"categories": deps.Assembler.Categories()})
	}
}

func handleThemes(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string][]string{"themes": deps.Themes.Names()})
	}
}

func handleHistory(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		records := history.Filter(deps.History.Load(), q.Get("category"), q.Get("since"))
		if records == nil {
			records = []history.Record{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(records)
	}
}

func handleStats(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(history.ComputeStats(deps.History.Load()))
	}
}

// RateRequest carries a 1-5 rating.
type RateRequest struct {
	Rating int `json:"rating"`
}

func handleRate(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid prediction id")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var req RateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		deps.mu.Lock()
		err = deps.History.SetRating(id, req.Rating)
		deps.mu.Unlock()
		if errors.Is(err, history.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "no prediction with id %d", id)
			return
		}
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "rated"})
	}
}

func handleListReminders(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records := deps.Reminders.Load()
		if records == nil {
			records = []reminder.Record{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(records)
	}
}

func handlePendingReminders(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		asOf := deps.Clock.Now().Format("2006-01-02")
		records := deps.Reminders.Pending(asOf)
		if records == nil {
			records = []reminder.Record{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(records)
	}
}

// ReminderRequest creates a reminder either for a stored prediction (by id)
// or for free-form text.
type ReminderRequest struct {
	PredictionID int    `json:"prediction_id"`
	Prediction   string `json:"prediction"`
	Category     string `json:"category"`
	RemindDate   string `json:"remind_date"`
}

func handleCreateReminder(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var req ReminderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		rec := reminder.Record{
			PredictionID: req.PredictionID,
			Prediction:   req.Prediction,
			Category:     req.Category,
		}
		var appliesTo string
		if req.PredictionID != 0 {
			src, ok := findPrediction(deps.History.Load(), req.PredictionID)
			if !ok {
				httpError(w, http.StatusNotFound, "not_found", "no prediction with id %d", req.PredictionID)
				return
			}
			rec.Prediction = src.Text
			rec.Category = src.Category
			appliesTo = src.AppliesTo
		} else if req.Prediction == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "either prediction_id or prediction is required")
			return
		}
		rec.RemindDate = reminder.DeriveDate(req.RemindDate, appliesTo, deps.Clock)

		deps.mu.Lock()
		created, err := deps.Reminders.Append(rec)
		deps.mu.Unlock()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save reminder: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func handleAckReminder(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid reminder id")
			return
		}

		deps.mu.Lock()
		err = deps.Reminders.Acknowledge(id)
		deps.mu.Unlock()
		if errors.Is(err, reminder.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "no reminder with id %d", id)
			return
		}
		if err != nil {
			httpError(w, http.StatusConflict, "invalid_request_error", "%v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "acknowledged"})
	}
}

func findPrediction(records []history.Record, id int) (history.Record, bool) {
	for _, r := range records {
		if r.ID == id {
			return r, true
		}
	}
	return history.Record{}, false
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
