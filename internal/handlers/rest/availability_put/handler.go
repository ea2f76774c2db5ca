package availability_put

import (
	"encoding/json"
	"errors"
	"net/http"

	"agent/internal/dto"
	"agent/internal/location"
	"agent/internal/pool"
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
	var request dto.AvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := dto.Validate(request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var err error
	if *request.Available {
		err = h.service.Join(r.Context())
	} else {
		err = h.service.Leave(r.Context())
	}
	if err != nil {
		switch {
		case errors.Is(err, location.ErrNoFix):
			writeError(w, http.StatusPreconditionFailed, "no location fix available")
		case errors.Is(err, pool.ErrActiveDeliveries):
			writeError(w, http.StatusConflict, "rider has active deliveries")
		default:
			h.log.With(
				logger.NewField("error", err),
			).Error("set availability")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(dto.Error{Message: message})
}
