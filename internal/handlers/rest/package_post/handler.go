package package_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"bidding-service/internal/entities"
	"bidding-service/internal/generated/dto"
	"bidding-service/internal/handlers/rest/converters"
	"bidding-service/internal/handlers/rest/respond"
	"bidding-service/internal/service/parcel"
	"bidding-service/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(
		logger.NewField("handler", "package_post"),
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

	var packageCreateDTO dto.PackageCreate
	err = json.NewDecoder(r.Body).Decode(&packageCreateDTO)
	if err != nil {
		respond.Error(w, h.log, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, "malformed JSON body")
		return
	}

	pkg, err := h.service.RegisterPackage(r.Context(), entities.PackageModify{
		TrackingID: &packageCreateDTO.TrackingID,
		SenderID:   &senderID,
	})
	if err != nil {
		switch {
		case errors.Is(err, parcel.ErrInvalidTrackingID),
			errors.Is(err, parcel.ErrInvalidSenderID):
			respond.Error(w, h.log, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, err.Error())
		case errors.Is(err, parcel.ErrPackageConflict):
			respond.Error(w, h.log, http.StatusConflict, dto.ErrorCodeConflict, err.Error())
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("package", packageCreateDTO.TrackingID),
			).Error("register package")
			respond.Internal(w, h.log)
		}
		return
	}

	respond.JSON(w, h.log, http.StatusCreated, converters.FromPackage(*pkg))
}
