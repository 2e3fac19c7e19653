package bid_withdraw_post

import (
	"errors"
	"net/http"

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
		logger.NewField("handler", "bid_withdraw_post"),
	)

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	courierID, err := respond.UserID(r)
	if err != nil {
		respond.Unauthorized(w, h.log, err)
		return
	}

	bidID, err := respond.PathInt64(r, "id")
	if err != nil {
		respond.Error(w, h.log, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, err.Error())
		return
	}

	withdrawn, err := h.service.WithdrawBid(r.Context(), bidID, courierID)
	if err != nil {
		switch {
		case errors.Is(err, bid.ErrInvalidBidID),
			errors.Is(err, bid.ErrInvalidCourierID):
			respond.Error(w, h.log, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, err.Error())
		case errors.Is(err, bid.ErrForbidden):
			respond.Error(w, h.log, http.StatusForbidden, dto.ErrorCodeForbidden, err.Error())
		case errors.Is(err, bid.ErrBidNotFound):
			respond.Error(w, h.log, http.StatusNotFound, dto.ErrorCodeNotFound, err.Error())
		case errors.Is(err, bid.ErrInvalidState):
			respond.Error(w, h.log, http.StatusConflict, dto.ErrorCodeInvalidState, err.Error())
		case errors.Is(err, bid.ErrBiddingClosed):
			respond.Error(w, h.log, http.StatusConflict, dto.ErrorCodeBiddingClosed, err.Error())
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("bid", bidID),
			).Error("withdraw bid")
			respond.Internal(w, h.log)
		}
		return
	}

	respond.JSON(w, h.log, http.StatusOK, converters.FromBid(*withdrawn))
}
