package package_events_get

import (
	"errors"
	"net/http"
	"strconv"

	"bidding-service/internal/entities"
	"bidding-service/internal/generated/dto"
	"bidding-service/internal/handlers/rest/converters"
	"bidding-service/internal/handlers/rest/respond"
	"bidding-service/internal/service/notification"
	"bidding-service/internal/service/parcel"
	"bidding-service/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(
		logger.NewField("handler", "package_events_get"),
	)

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

// ServeHTTP: GET /packages/{id}/events?after=<cursor>&limit=<n>
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	filter := entities.EventFilter{
		PackageID: respond.PathString(r, "id"),
	}

	query := r.URL.Query()
	if raw := query.Get("after"); raw != "" {
		after, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respond.Error(w, h.log, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, "after must be an integer cursor")
			return
		}
		filter.AfterID = after
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respond.Error(w, h.log, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, "limit must be a non-negative integer")
			return
		}
		filter.Limit = limit
	}

	events, err := h.service.ListEvents(r.Context(), filter)
	if err != nil {
		switch {
		case errors.Is(err, notification.ErrInvalidFilter):
			respond.Error(w, h.log, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, err.Error())
		case errors.Is(err, parcel.ErrPackageNotFound):
			respond.Error(w, h.log, http.StatusNotFound, dto.ErrorCodeNotFound, err.Error())
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("package", filter.PackageID),
			).Error("list events")
			respond.Internal(w, h.log)
		}
		return
	}

	respond.JSON(w, h.log, http.StatusOK, converters.FromEvents(events, filter.AfterID))
}
