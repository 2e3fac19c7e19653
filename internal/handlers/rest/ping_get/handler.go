package ping_get

import (
	"net/http"
	"time"

	"bidding-service/internal/generated/dto"
	"bidding-service/internal/handlers/rest/respond"
)

type Handler struct {
	log handlerLogger
}

func New(log handlerLogger) *Handler {
	return &Handler{
		log: log,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	message := "pong"
	now := time.Now().UTC()

	respond.JSON(w, h.log, http.StatusOK, dto.PingResponse{
		Message:    &message,
		ServerTime: &now,
	})
}
