package transaction

import (
	"errors"
	"net/http"

	"github.com/redmonkez12/ledger-api/internal/httputil"
	"github.com/redmonkez12/ledger-api/internal/logging"
)

// Handler contains HTTP handlers for transaction endpoints
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateResponse is returned after a transaction is recorded
type CreateResponse struct {
	ID int64 `json:"id"`
}

// List returns all transactions
// @Summary      List transactions
// @Description  Return every transaction ordered by date, newest first
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array}  Transaction
// @Failure      401 {object} httputil.ErrorResponse "Missing, invalid or expired token"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/transactions [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	txs, err := h.service.List(r.Context())
	if err != nil {
		logger.LogError("failed to list transactions", err)
		httputil.RespondErrorWithCode(w, "failed to list transactions", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, txs, http.StatusOK)
}

// Create records a transaction
// @Summary      Add a transaction
// @Description  Record a transaction. All fields are required.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body NewTransaction true "Transaction"
// @Success      201 {object} CreateResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid request, missing fields or bad date"
// @Failure      401 {object} httputil.ErrorResponse "Missing, invalid or expired token"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/transactions [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req NewTransaction
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		logger.Warn("invalid transaction request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	id, err := h.service.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeMissingFields, http.StatusBadRequest)
		case errors.Is(err, ErrInvalidDate):
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeInvalidDate, http.StatusBadRequest)
		default:
			logger.LogError("failed to create transaction", err)
			httputil.RespondErrorWithCode(w, "failed to create transaction", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	logger.Info("transaction recorded", "transaction_id", id)
	httputil.RespondJSON(w, CreateResponse{ID: id}, http.StatusCreated)
}
