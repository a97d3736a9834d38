package message

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rentora/rentora-api/internal/auth"
	"github.com/rentora/rentora-api/internal/httputil"
	"github.com/rentora/rentora-api/internal/logging"
	"github.com/rentora/rentora-api/internal/rental"
)

// Handler contains HTTP handlers for message endpoints
type Handler struct {
	service *Service
	logger  *logging.Logger
}

func NewHandler(service *Service, logger *logging.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// CreateRequest represents the message creation request body
type CreateRequest struct {
	Message  string `json:"message"`
	UserID   int64  `json:"user_id"`
	RentalID int64  `json:"rental_id"`
}

// Create stores a new message about a rental
// @Summary      Create message
// @Description  Send a message about a rental. The declared sender must be the authenticated caller.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateRequest true "Message details"
// @Success      201 {object} map[string]string
// @Failure      400 {object} httputil.ErrorResponse "Validation error"
// @Failure      401 {object} httputil.ErrorResponse "Missing or invalid token"
// @Failure      403 {object} httputil.ErrorResponse "Declared sender is not the caller"
// @Failure      404 {object} httputil.ErrorResponse "Rental not found"
// @Router       /api/messages [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	identity := auth.IdentityFromContext(r.Context())
	if identity == nil {
		httputil.RespondErrorWithCode(w, "authentication required", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid message request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	if req.UserID == 0 || req.RentalID == 0 {
		httputil.RespondErrorWithCode(w, "user_id and rental_id are required", httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}

	msg, err := h.service.Create(r.Context(), identity.ID, req.UserID, req.RentalID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, ErrSenderMismatch):
			logger.Warn("message creation forbidden: sender mismatch", "user_id", identity.ID, "declared_sender", req.UserID)
			httputil.RespondErrorWithCode(w, "sender does not match the authenticated user", httputil.CodeForbidden, http.StatusForbidden)
		case errors.Is(err, rental.ErrNotFound):
			httputil.RespondErrorWithCode(w, "rental not found", httputil.CodeNotFound, http.StatusNotFound)
		case errors.Is(err, ErrContentRequired), errors.Is(err, ErrContentTooLong):
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
		default:
			logger.Error("failed to create message", "error", err.Error())
			httputil.RespondErrorWithCode(w, "failed to create message", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	logger.Info("message created", "message_id", msg.ID, "rental_id", msg.RentalID)

	httputil.RespondJSON(w, map[string]string{"message": "message created"}, http.StatusCreated)
}
