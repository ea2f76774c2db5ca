package order_accept_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"agent/internal/dto"
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
	orderID := mux.Vars(r)["id"]
	if orderID == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	err := h.service.Accept(r.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, pool.ErrOfferNotAvailable):
			writeError(w, http.StatusConflict, "offer is no longer available")
		default:
			h.log.With(
				logger.NewField("order", orderID),
				logger.NewField("error", err),
			).Error("accept order")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(dto.Error{Message: message})
}
