package rental

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rentora/rentora-api/internal/auth"
	"github.com/rentora/rentora-api/internal/httputil"
	"github.com/rentora/rentora-api/internal/logging"
	"github.com/rentora/rentora-api/internal/upload"
)

const maxUploadSize = 10 << 20 // 10 MiB

// Handler contains HTTP handlers for rental endpoints
type Handler struct {
	service *Service
	uploads *upload.Service
	logger  *logging.Logger
}

func NewHandler(service *Service, uploads *upload.Service, logger *logging.Logger) *Handler {
	return &Handler{
		service: service,
		uploads: uploads,
		logger:  logger,
	}
}

// ListResponse wraps the rental collection
type ListResponse struct {
	Rentals []Response `json:"rentals"`
}

// List returns all rentals
// @Summary      List rentals
// @Description  Fetch all rental listings.
// @Tags         rentals
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} ListResponse
// @Failure      401 {object} httputil.ErrorResponse "Missing or invalid token"
// @Router       /api/rentals [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	rentals, err := h.service.List(r.Context())
	if err != nil {
		logger.Error("failed to list rentals", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to list rentals", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	payload := ListResponse{Rentals: make([]Response, 0, len(rentals))}
	for _, rental := range rentals {
		payload.Rentals = append(payload.Rentals, ToResponse(rental))
	}

	httputil.RespondJSON(w, payload, http.StatusOK)
}

// Get returns a rental by ID
// @Summary      Get rental
// @Description  Fetch a single rental by its ID.
// @Tags         rentals
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Rental ID"
// @Success      200 {object} Response
// @Failure      401 {object} httputil.ErrorResponse "Missing or invalid token"
// @Failure      404 {object} httputil.ErrorResponse "Rental not found"
// @Router       /api/rentals/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid rental id", httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}

	rental, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "rental not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to get rental", "error", err.Error(), "rental_id", id)
		httputil.RespondErrorWithCode(w, "failed to get rental", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, ToResponse(rental), http.StatusOK)
}

// Create stores a new rental with its picture
// @Summary      Create rental
// @Description  Create a rental listing owned by the caller. Multipart form with a required picture.
// @Tags         rentals
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name formData string true "Rental name"
// @Param        surface formData number true "Surface in square meters"
// @Param        price formData number true "Price per night"
// @Param        description formData string true "Description"
// @Param        picture formData file true "Picture (JPEG or PNG)"
// @Success      201 {object} map[string]string
// @Failure      400 {object} httputil.ErrorResponse "Validation error"
// @Failure      401 {object} httputil.ErrorResponse "Missing or invalid token"
// @Router       /api/rentals [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	identity := auth.IdentityFromContext(r.Context())
	if identity == nil {
		httputil.RespondErrorWithCode(w, "authentication required", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httputil.RespondErrorWithCode(w, "invalid multipart form", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	input, err := inputFromForm(r)
	if err != nil {
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("picture")
	if err != nil {
		httputil.RespondErrorWithCode(w, "the rental picture is required", httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}
	defer file.Close()

	pictureURL, err := h.uploads.StorePicture(file, header, input.Name)
	if err != nil {
		if errors.Is(err, upload.ErrUnsupportedFileType) {
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
			return
		}
		logger.Error("failed to store rental picture", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to store picture", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}
	input.Picture = pictureURL

	rental, err := h.service.Create(r.Context(), identity.ID, input)
	if err != nil {
		if isValidationError(err) {
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
			return
		}
		logger.Error("failed to create rental", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to create rental", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("rental created", "rental_id", rental.ID, "owner_id", identity.ID)

	httputil.RespondJSON(w, map[string]string{"message": "rental created"}, http.StatusCreated)
}

// Update mutates a rental owned by the caller
// @Summary      Update rental
// @Description  Update a rental listing. Only the owner may update; the picture is optional and kept when omitted.
// @Tags         rentals
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Rental ID"
// @Param        name formData string true "Rental name"
// @Param        surface formData number true "Surface in square meters"
// @Param        price formData number true "Price per night"
// @Param        description formData string true "Description"
// @Param        picture formData file false "Picture (JPEG or PNG)"
// @Success      200 {object} map[string]string
// @Failure      400 {object} httputil.ErrorResponse "Validation error"
// @Failure      401 {object} httputil.ErrorResponse "Missing or invalid token"
// @Failure      403 {object} httputil.ErrorResponse "Caller does not own this rental"
// @Failure      404 {object} httputil.ErrorResponse "Rental not found"
// @Router       /api/rentals/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	identity := auth.IdentityFromContext(r.Context())
	if identity == nil {
		httputil.RespondErrorWithCode(w, "authentication required", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid rental id", httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httputil.RespondErrorWithCode(w, "invalid multipart form", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	input, err := inputFromForm(r)
	if err != nil {
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}

	// Picture is optional on update; existing picture is kept when omitted
	if file, header, err := r.FormFile("picture"); err == nil {
		defer file.Close()
		pictureURL, err := h.uploads.StorePicture(file, header, input.Name)
		if err != nil {
			if errors.Is(err, upload.ErrUnsupportedFileType) {
				httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
				return
			}
			logger.Error("failed to store rental picture", "error", err.Error())
			httputil.RespondErrorWithCode(w, "failed to store picture", httputil.CodeInternalError, http.StatusInternalServerError)
			return
		}
		input.Picture = pictureURL
	}

	_, err = h.service.Update(r.Context(), id, identity.ID, input)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httputil.RespondErrorWithCode(w, "rental not found", httputil.CodeNotFound, http.StatusNotFound)
		case errors.Is(err, ErrNotOwner):
			logger.Warn("rental update forbidden", "rental_id", id, "user_id", identity.ID)
			httputil.RespondErrorWithCode(w, "you do not own this rental", httputil.CodeForbidden, http.StatusForbidden)
		case isValidationError(err):
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
		default:
			logger.Error("failed to update rental", "error", err.Error(), "rental_id", id)
			httputil.RespondErrorWithCode(w, "failed to update rental", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	logger.Info("rental updated", "rental_id", id, "user_id", identity.ID)

	httputil.RespondJSON(w, map[string]string{"message": "rental updated"}, http.StatusOK)
}

// inputFromForm reads the writable rental fields from a multipart form
func inputFromForm(r *http.Request) (Input, error) {
	surface, err := strconv.ParseFloat(r.FormValue("surface"), 64)
	if err != nil {
		return Input{}, ErrInvalidSurface
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		return Input{}, ErrInvalidPrice
	}

	return Input{
		Name:        r.FormValue("name"),
		Surface:     surface,
		Price:       price,
		Description: r.FormValue("description"),
	}, nil
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrNameTooLong) ||
		errors.Is(err, ErrInvalidSurface) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrDescriptionRequired)
}
