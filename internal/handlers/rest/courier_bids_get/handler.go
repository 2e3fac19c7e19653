package courier_bids_get

import (
	"errors"
	"net/http"
	"strconv"

	"bidding-service/internal/entities"
	"bidding-service/internal/generated/dto"
	"bidding-service/internal/handlers/rest/converters"
	"bidding-service/internal/handlers/rest/respond"
	"bidding-service/internal/service/bid"
	"bidding-service/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(
		logger.NewField("handler", "courier_bids_get"),
	)

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

// ServeHTTP: GET /couriers/{id}/bids?status=pending&limit=50
// Курьер видит только свои ставки.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	callerID, err := respond.UserID(r)
	if err != nil {
		respond.Unauthorized(w, h.log, err)
		return
	}

	courierID, err := respond.PathInt64(r, "id")
	if err != nil {
		respond.Error(w, h.log, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, err.Error())
		return
	}
	if courierID != callerID {
		respond.Forbidden(w, h.log, "bids of another courier")
		return
	}

	filter := entities.CourierBidsFilter{
		CourierID: courierID,
	}

	query := r.URL.Query()
	if raw := query.Get("status"); raw != "" {
		status := entities.BidStatusType(raw)
		filter.Status = &status
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respond.Error(w, h.log, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, "limit must be a non-negative integer")
			return
		}
		filter.Limit = limit
	}

	bids, err := h.service.ListCourierBids(r.Context(), filter)
	if err != nil {
		switch {
		case errors.Is(err, bid.ErrInvalidCourierID),
			errors.Is(err, bid.ErrInvalidBid):
			respond.Error(w, h.log, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, err.Error())
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("courier", courierID),
			).Error("list courier bids")
			respond.Internal(w, h.log)
		}
		return
	}

	respond.JSON(w, h.log, http.StatusOK, dto.CourierBids{
		Bids: converters.FromBids(bids),
	})
}
