package package_cancel_post

import (
	"errors"
	"net/http"

	"bidding-service/internal/generated/dto"
	"bidding-service/internal/handlers/rest/converters"
	"bidding-service/internal/handlers/rest/respond"
	"bidding-service/internal/service/allocation"
	"bidding-service/internal/service/parcel"
	"bidding-service/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(
		logger.NewField("handler", "package_cancel_post"),
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

	packageID := respond.PathString(r, "id")

	cancellation, err := h.service.CancelPackage(r.Context(), packageID, senderID)
	if err != nil {
		switch {
		case errors.Is(err, allocation.ErrInvalidPackageID),
			errors.Is(err, allocation.ErrInvalidRequesterID):
			respond.Error(w, h.log, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, err.Error())
		case errors.Is(err, allocation.ErrForbidden):
			respond.Error(w, h.log, http.StatusForbidden, dto.ErrorCodeForbidden, err.Error())
		case errors.Is(err, parcel.ErrPackageNotFound):
			respond.Error(w, h.log, http.StatusNotFound, dto.ErrorCodeNotFound, err.Error())
		case errors.Is(err, allocation.ErrPackageNotOpen):
			respond.Error(w, h.log, http.StatusConflict, dto.ErrorCodePackageNotOpen, err.Error())
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("package", packageID),
			).Error("cancel package")
			respond.Internal(w, h.log)
		}
		return
	}

	respond.JSON(w, h.log, http.StatusOK, converters.FromCancellation(*cancellation))
}
