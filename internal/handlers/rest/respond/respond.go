package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"bidding-service/internal/generated/dto"
	"bidding-service/pkg/logger"
)

// UserIDHeader - идентификатор вызывающего, проставляется API gateway после аутентификации.
const UserIDHeader = "X-User-ID"

var (
	ErrMissingUserID = errors.New("missing " + UserIDHeader + " header")
	ErrInvalidUserID = errors.New("invalid " + UserIDHeader + " header")
	ErrInvalidPathID = errors.New("invalid id in path")
)

type errorLogger interface {
	Error(msg string, fields ...logger.Field)
}

func UserID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.Header.Get(UserIDHeader))
	if raw == "" {
		return 0, ErrMissingUserID
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidUserID
	}
	return id, nil
}

func PathInt64(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidPathID
	}
	return id, nil
}

func PathString(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}

func JSON(w http.ResponseWriter, log errorLogger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		log.Error("encode JSON response",
			logger.NewField("error", err),
		)
	}
}

func Error(w http.ResponseWriter, log errorLogger, status int, code dto.ErrorCode, message string) {
	JSON(w, log, status, dto.Error{
		Code:    code,
		Message: message,
	})
}

// Unauthorized отвечает 401 на отсутствующий или битый X-User-ID.
func Unauthorized(w http.ResponseWriter, log errorLogger, err error) {
	Error(w, log, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, err.Error())
}

// Forbidden отвечает 403, когда вызывающий не владелец ресурса.
func Forbidden(w http.ResponseWriter, log errorLogger, message string) {
	Error(w, log, http.StatusForbidden, dto.ErrorCodeForbidden, message)
}

func Internal(w http.ResponseWriter, log errorLogger) {
	Error(w, log, http.StatusInternalServerError, dto.ErrorCodeInternal, "internal error")
}
