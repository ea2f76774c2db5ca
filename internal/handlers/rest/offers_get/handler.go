package offers_get

import (
	"encoding/json"
	"net/http"

	"agent/internal/dto"
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
	offers := h.service.Offers()

	response := make([]dto.Offer, 0, len(offers))
	for _, offer := range offers {
		response = append(response, dto.FromOffer(offer))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
