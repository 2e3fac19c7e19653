package bid_select_post

import (
	"errors"
	"net/http"

	"bidding-service/internal/generated/dto"
	"bidding-service/internal/handlers/rest/converters"
	"bidding-service/internal/handlers/rest/respond"
	"bidding-service/internal/service/allocation"
	"bidding-service/internal/service/bid"
	"bidding-service/internal/service/parcel"
	"bidding-service/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(
		logger.NewField("handler", "bid_select_post"),
	)

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	senderID, err := respond.UserID(r)
	if err != nil {
		respond.Unauthorized(w, h.log, err)
		return
	}

	bidID, err := respond.PathInt64(r, "id")
	if err != nil {
		respond.Error(w, h.log, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, err.Error())
		return
	}

	result, err := h.service.SelectBid(r.Context(), bidID, senderID)
	if err != nil {
		switch {
		case errors.Is(err, allocation.ErrInvalidBidID),
			errors.Is(err, allocation.ErrInvalidRequesterID):
			respond.Error(w, h.log, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, err.Error())
		case errors.Is(err, allocation.ErrForbidden):
			respond.Error(w, h.log, http.StatusForbidden, dto.ErrorCodeForbidden, err.Error())
		case errors.Is(err, bid.ErrBidNotFound),
			errors.Is(err, parcel.ErrPackageNotFound):
			respond.Error(w, h.log, http.StatusNotFound, dto.ErrorCodeNotFound, err.Error())
		case errors.Is(err, allocation.ErrBidNoLongerAvailable):
			// клиент должен перечитать список ставок
			respond.Error(w, h.log, http.StatusConflict, dto.ErrorCodeBidNoLongerAvailable, err.Error())
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("bid", bidID),
			).Error("select bid")
			respond.Internal(w, h.log)
		}
		return
	}

	h.log.With(
		logger.NewField("bid", result.Winner.ID),
		logger.NewField("package", result.Package.TrackingID),
		logger.NewField("rejected", len(result.Rejected)),
	).Info("bid selected")

	respond.JSON(w, h.log, http.StatusOK, converters.FromAllocation(*result))
}
