package bid_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"bidding-service/internal/entities"
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
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(
		logger.NewField("handler", "bid_post"),
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

	var bidCreateDTO dto.BidCreate
	err = json.NewDecoder(r.Body).Decode(&bidCreateDTO)
	if err != nil {
		respond.Error(w, h.log, http.StatusBadRequest, dto.ErrorCodeInvalidBid, "malformed JSON body")
		return
	}

	packageID := respond.PathString(r, "id")
	bidModify := entities.BidModify{
		PackageID:              &packageID,
		CourierID:              &courierID,
		ProposedPrice:          bidCreateDTO.ProposedPrice,
		EstimatedDeliveryHours: bidCreateDTO.EstimatedDeliveryHours,
		EstimatedPickupTime:    bidCreateDTO.EstimatedPickupTime,
		Message:                bidCreateDTO.Message,
	}

	created, err := h.service.SubmitBid(r.Context(), bidModify)
	if err != nil {
		switch {
		case errors.Is(err, bid.ErrInvalidBid):
			respond.Error(w, h.log, http.StatusBadRequest, dto.ErrorCodeInvalidBid, err.Error())
		case errors.Is(err, parcel.ErrPackageNotFound):
			respond.Error(w, h.log, http.StatusNotFound, dto.ErrorCodeNotFound, err.Error())
		case errors.Is(err, bid.ErrDuplicateBid):
			respond.Error(w, h.log, http.StatusConflict, dto.ErrorCodeDuplicateBid, err.Error())
		case errors.Is(err, bid.ErrBiddingClosed):
			respond.Error(w, h.log, http.StatusConflict, dto.ErrorCodeBiddingClosed, err.Error())
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("package", packageID),
			).Error("submit bid")
			respond.Internal(w, h.log)
		}
		return
	}

	respond.JSON(w, h.log, http.StatusCreated, converters.FromBid(*created))
}
