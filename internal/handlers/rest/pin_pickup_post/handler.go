package pin_pickup_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"agent/internal/dto"
	"agent/internal/gateway/rest"
	"agent/internal/pin"
	"agent/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	return &Handler{
		log:     log.With(),
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	var request dto.PinRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := dto.Validate(request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	err := h.service.VerifyPickup(r.Context(), orderID, request.Pin)
	if err != nil {
		writePinError(h.log, w, orderID, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func writePinError(log handlerLogger, w http.ResponseWriter, orderID string, err error) {
	switch {
	case errors.Is(err, pin.ErrInvalidPin):
		writeError(w, http.StatusBadRequest, "pin must be exactly 4 digits")
	case errors.Is(err, pin.ErrOrderNotTracked):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, pin.ErrAlreadyVerified):
		writeError(w, http.StatusConflict, "handoff already verified")
	case errors.Is(err, rest.ErrPinRejected):
		writeError(w, http.StatusUnprocessableEntity, "backend rejected pin")
	default:
		log.With(
			logger.NewField("order", orderID),
			logger.NewField("error", err),
		).Error("verify pin")
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(dto.Error{Message: message})
}
