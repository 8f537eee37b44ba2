package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"max.ks1230/ledger-bot/internal/entity/ledger"
	"max.ks1230/ledger-bot/internal/logger"
	"max.ks1230/ledger-bot/internal/model/customerr"
)

const dateLayout = "2006-01-02"

type ledgerService interface {
	AddTransaction(ctx context.Context, userID int64, amount decimal.Decimal, category string,
		typ ledger.TransactionType, description string) (ledger.Transaction, error)
	Balance(ctx context.Context, userID int64) (decimal.Decimal, error)
	MonthlySummary(ctx context.Context, userID int64, period ledger.Period) (ledger.MonthlySummary, error)
	SavingsGoals(ctx context.Context, userID int64) ([]ledger.SavingsGoal, error)
	AddSavingsGoal(ctx context.Context, userID int64, name string, target decimal.Decimal,
		deadline *time.Time) (ledger.SavingsGoal, error)
	Advice(ctx context.Context, userID int64) (string, error)
	Report(ctx context.Context, userID int64) (ledger.Report, error)
}

type Handler struct {
	ledger ledgerService
}

func NewHandler(ledger ledgerService) *Handler {
	return &Handler{ledger: ledger}
}

type transactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
}

type goalRequest struct {
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	Deadline     string          `json:"deadline"`
}

func (h *Handler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &customerr.ValidationError{Field: "body", Err: err.Error()})
		return
	}

	rec, err := h.ledger.AddTransaction(r.Context(), userID, req.Amount, req.Category,
		ledger.TransactionType(req.Type), req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":     true,
		"transaction": newTransactionView(rec),
	})
}

func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	balance, err := h.ledger.Balance(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"balance": balance,
	})
}

func (h *Handler) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	period, err := periodFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	summary, err := h.ledger.MonthlySummary(r.Context(), userID, period)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"summary": newSummaryView(summary),
	})
}

func (h *Handler) SavingsGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	goals, err := h.ledger.SavingsGoals(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"goals":   newGoalViews(goals),
	})
}

func (h *Handler) AddSavingsGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &customerr.ValidationError{Field: "body", Err: err.Error()})
		return
	}

	var deadline *time.Time
	if req.Deadline != "" {
		d, err := time.Parse(dateLayout, req.Deadline)
		if err != nil {
			writeError(w, &customerr.ValidationError{Field: "deadline", Err: "expected YYYY-MM-DD"})
			return
		}
		deadline = &d
	}

	goal, err := h.ledger.AddSavingsGoal(r.Context(), userID, req.Name, req.TargetAmount, deadline)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"goal":    newGoalView(goal),
	})
}

func (h *Handler) Advice(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	text, err := h.ledger.Advice(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"advice":  text,
	})
}

func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	report, err := h.ledger.Report(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"report": map[string]interface{}{
			"balance": report.Balance,
			"summary": newSummaryView(report.Summary),
			"goals":   newGoalViews(report.Goals),
			"advice":  report.Advice,
		},
	})
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok"})
}

func userIDFrom(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := strconv.ParseInt(mux.Vars(r)["userID"], 10, 64)
	if err != nil {
		writeError(w, &customerr.ValidationError{Field: "user id", Err: "must be an integer"})
		return 0, false
	}
	return userID, true
}

// periodFrom reads month and year; an absent one is filled in from the current date.
func periodFrom(r *http.Request) (ledger.Period, error) {
	var period ledger.Period
	q := r.URL.Query()

	if month := q.Get("month"); month != "" {
		m, err := strconv.Atoi(month)
		if err != nil {
			return ledger.Period{}, &customerr.ValidationError{Field: "month", Err: "must be an integer"}
		}
		period.Month = time.Month(m)
	}
	if year := q.Get("year"); year != "" {
		y, err := strconv.Atoi(year)
		if err != nil {
			return ledger.Period{}, &customerr.ValidationError{Field: "year", Err: "must be an integer"}
		}
		period.Year = y
	}
	return period, nil
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var verr *customerr.ValidationError
	if errors.As(err, &verr) {
		status = http.StatusBadRequest
	} else {
		logger.Error("api request failed", zap.Error(err))
	}
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("cannot encode response", zap.Error(err))
	}
}
