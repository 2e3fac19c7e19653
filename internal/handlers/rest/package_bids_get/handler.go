package package_bids_get

import (
	"errors"
	"net/http"
	"time"

	"bidding-service/internal/generated/dto"
	"bidding-service/internal/handlers/rest/converters"
	"bidding-service/internal/handlers/rest/respond"
	"bidding-service/internal/service/bid"
	"bidding-service/internal/service/parcel"
	"bidding-service/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
	now     func() time.Time
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(
		logger.NewField("handler", "package_bids_get"),
	)

	return &Handler{
		log:     handlerLog,
		service: service,
		now:     time.Now,
	}
}

// ServeHTTP отдает авторитетный снимок ставок: по нему клиент сверяет состояние после потери push-событий.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	packageID := respond.PathString(r, "id")

	packageBids, err := h.service.ListBids(r.Context(), packageID)
	if err != nil {
		switch {
		case errors.Is(err, bid.ErrInvalidPackageID):
			respond.Error(w, h.log, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, err.Error())
		case errors.Is(err, parcel.ErrPackageNotFound):
			respond.Error(w, h.log, http.StatusNotFound, dto.ErrorCodeNotFound, err.Error())
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("package", packageID),
			).Error("list bids")
			respond.Internal(w, h.log)
		}
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	respond.JSON(w, h.log, http.StatusOK, converters.FromPackageBids(*packageBids, h.now().UTC()))
}
