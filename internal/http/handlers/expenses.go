package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/kaiwenlim/fintrack-be/internal/apperr"
	"github.com/kaiwenlim/fintrack-be/internal/http/respond"
	"github.com/kaiwenlim/fintrack-be/internal/ledger"
	"github.com/kaiwenlim/fintrack-be/internal/middleware"
	"github.com/kaiwenlim/fintrack-be/internal/models"
	"github.com/kaiwenlim/fintrack-be/internal/models/dto"
	"github.com/kaiwenlim/fintrack-be/internal/storage"
)

const dateLayout = "2006-01-02"

// ExpenseHandler owns the authenticated record CRUD and query endpoints.
// Every operation is scoped to the caller resolved by the auth middleware,
// including the totals recomputed after each mutation.
type ExpenseHandler struct {
	records storage.RecordStore
	log     *logrus.Logger
	now     func() time.Time
}

// NewExpenseHandler constructs the handler.
func NewExpenseHandler(records storage.RecordStore, log *logrus.Logger) *ExpenseHandler {
	return &ExpenseHandler{records: records, log: log, now: time.Now}
}

// Register attaches expense routes to the (already authed) router.
func (h *ExpenseHandler) Register(r *mux.Router) {
	r.HandleFunc("/create-expense", h.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/all-expenses", h.handleListAll).Methods(http.MethodGet)
	r.HandleFunc("/expenses-by-time", h.handleListByTime).Methods(http.MethodGet)
	r.HandleFunc("/search-expenses", h.handleSearch).Methods(http.MethodGet)
	r.HandleFunc("/expense/{id}", h.handleGet).Methods(http.MethodGet)
	r.HandleFunc("/expense/{id}", h.handleUpdate).Methods(http.MethodPut)
	r.HandleFunc("/expense/{id}", h.handleDelete).Methods(http.MethodDelete)
}

func (h *ExpenseHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "missing identity")
		return
	}
	rec, err := decodeRecord(r, identity.UserID)
	if err != nil {
		respond.AppError(w, err)
		return
	}

	created, err := h.records.CreateRecord(r.Context(), rec)
	if err != nil {
		h.log.WithError(err).Error("create record failed")
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	totals, err := h.ownerTotals(r, identity.UserID)
	if err != nil {
		respond.AppError(w, err)
		return
	}
	respond.JSONWithTotals(w, http.StatusCreated, "expense created", created, totals)
}

func (h *ExpenseHandler) handleListAll(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "missing identity")
		return
	}
	records, err := h.records.ListRecordsByOwner(r.Context(), identity.UserID)
	if err != nil {
		h.log.WithError(err).Error("list records failed")
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond.JSONWithTotals(w, http.StatusOK, "expenses fetched", records, ledger.Sum(records))
}

func (h *ExpenseHandler) handleListByTime(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "missing identity")
		return
	}
	records, err := h.records.ListRecordsByOwner(r.Context(), identity.UserID)
	if err != nil {
		h.log.WithError(err).Error("list records failed")
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	period := r.URL.Query().Get("filter")
	filtered, err := ledger.FilterByPeriod(period, h.now().UTC(), records)
	if err != nil {
		if errors.Is(err, ledger.ErrUnknownPeriod) {
			respond.Error(w, http.StatusBadRequest, "filter must be one of today, month, year")
			return
		}
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond.JSONWithTotals(w, http.StatusOK, "expenses fetched", filtered, ledger.Sum(filtered))
}

func (h *ExpenseHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "missing identity")
		return
	}
	records, err := h.records.ListRecordsByOwner(r.Context(), identity.UserID)
	if err != nil {
		h.log.WithError(err).Error("list records failed")
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	found, err := ledger.Search(r.URL.Query().Get("query"), records)
	if err != nil {
		if errors.Is(err, ledger.ErrEmptyQuery) {
			respond.Error(w, http.StatusBadRequest, "query must not be empty")
			return
		}
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, "expenses fetched", found)
}

func (h *ExpenseHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "missing identity")
		return
	}
	rec, err := h.records.GetRecord(r.Context(), identity.UserID, mux.Vars(r)["id"])
	if err != nil {
		h.respondStorageError(w, err, "get record failed")
		return
	}
	respond.JSON(w, http.StatusOK, "expense fetched", rec)
}

func (h *ExpenseHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "missing identity")
		return
	}
	rec, err := decodeRecord(r, identity.UserID)
	if err != nil {
		respond.AppError(w, err)
		return
	}
	rec.ID = mux.Vars(r)["id"]

	updated, err := h.records.UpdateRecord(r.Context(), rec)
	if err != nil {
		h.respondStorageError(w, err, "update record failed")
		return
	}

	totals, err := h.ownerTotals(r, identity.UserID)
	if err != nil {
		respond.AppError(w, err)
		return
	}
	respond.JSONWithTotals(w, http.StatusOK, "expense updated", updated, totals)
}

func (h *ExpenseHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "missing identity")
		return
	}
	if err := h.records.DeleteRecord(r.Context(), identity.UserID, mux.Vars(r)["id"]); err != nil {
		h.respondStorageError(w, err, "delete record failed")
		return
	}

	totals, err := h.ownerTotals(r, identity.UserID)
	if err != nil {
		respond.AppError(w, err)
		return
	}
	respond.JSONWithTotals(w, http.StatusOK, "expense deleted", nil, totals)
}

// ownerTotals recomputes totals over the caller's full record set. Mutations
// never consult other owners' records.
func (h *ExpenseHandler) ownerTotals(r *http.Request, ownerID int64) (models.Totals, error) {
	records, err := h.records.ListRecordsByOwner(r.Context(), ownerID)
	if err != nil {
		return models.Totals{}, apperr.Wrap(apperr.Internal, "failed to recompute totals", err)
	}
	return ledger.Sum(records), nil
}

func (h *ExpenseHandler) respondStorageError(w http.ResponseWriter, err error, logMsg string) {
	if errors.Is(err, storage.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "expense not found")
		return
	}
	h.log.WithError(err).Error(logMsg)
	respond.Error(w, http.StatusInternalServerError, err.Error())
}

// decodeRecord parses and validates the shared create/update payload.
func decodeRecord(r *http.Request, ownerID int64) (models.Record, error) {
	var req dto.ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return models.Record{}, apperr.New(apperr.Validation, "invalid JSON payload")
	}
	if req.Type != models.TypeIncome && req.Type != models.TypeExpense {
		return models.Record{}, apperr.New(apperr.Validation, "type must be Income or Expense")
	}
	if req.Amount == nil {
		return models.Record{}, apperr.New(apperr.Validation, "amount is required")
	}
	date, err := time.ParseInLocation(dateLayout, strings.TrimSpace(req.Date), time.UTC)
	if err != nil {
		return models.Record{}, apperr.New(apperr.Validation, "date must be in YYYY-MM-DD format")
	}

	return models.Record{
		OwnerID:     ownerID,
		Type:        req.Type,
		Amount:      ledger.CoerceAmount(req.Amount),
		Category:    strings.TrimSpace(req.Category),
		Date:        date,
		Description: strings.TrimSpace(req.Description),
	}, nil
}
