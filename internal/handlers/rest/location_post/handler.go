package location_post

import (
	"encoding/json"
	"net/http"

	"agent/internal/dto"
	"agent/internal/entities"
)

// Handler принимает геофикс от внешнего источника (GPS-приставка,
// мобильное приложение, curl при отладке).
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
	var request dto.LocationRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := dto.Validate(request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	h.service.Update(entities.GeoPoint{
		Latitude:  request.Lat,
		Longitude: request.Lng,
	})

	w.WriteHeader(http.StatusNoContent)
}
