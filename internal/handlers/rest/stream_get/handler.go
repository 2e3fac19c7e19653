package stream_get

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"bidding-service/internal/generated/dto"
	"bidding-service/internal/handlers/rest/converters"
	"bidding-service/internal/handlers/rest/respond"
	"bidding-service/internal/pkg/hub"
	"bidding-service/pkg/logger"
)

// clientRetry - через сколько EventSource переподключается после обрыва.
const clientRetry = 3 * time.Second

// Handler держит SSE-поток событий ставок по посылке, курьеру или отправителю.
// Поток best-effort: пропущенные события клиент восстанавливает опросом GET /packages/{id}/bids.
type Handler struct {
	log               handlerLogger
	subscriber        Subscriber
	kind              hub.TopicKind
	heartbeatInterval time.Duration
}

func New(log handlerLogger, subscriber Subscriber, kind hub.TopicKind, heartbeatInterval time.Duration) *Handler {
	handlerLog := log.With(
		logger.NewField("handler", "stream_get"),
		logger.NewField("topic_kind", string(kind)),
	)

	return &Handler{
		log:               handlerLog,
		subscriber:        subscriber,
		kind:              kind,
		heartbeatInterval: heartbeatInterval,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	topic, ownerID, err := h.topic(respond.PathString(r, "id"))
	if err != nil {
		respond.Error(w, h.log, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, err.Error())
		return
	}

	// поток курьера или отправителя отдается только ему самому
	if ownerID != 0 {
		callerID, err := respond.UserID(r)
		if err != nil {
			respond.Unauthorized(w, h.log, err)
			return
		}
		if callerID != ownerID {
			respond.Forbidden(w, h.log, "stream of another "+string(h.kind))
			return
		}
	}

	controller := http.NewResponseController(w)
	// WriteTimeout сервера рассчитан на обычные запросы, поток живет дольше
	if err := controller.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		h.log.With(
			logger.NewField("error", err),
		).Warn("reset write deadline")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	sub := h.subscriber.Subscribe(topic)
	defer h.subscriber.Unsubscribe(sub)

	if _, err := fmt.Fprintf(w, "retry: %d\n\n", clientRetry.Milliseconds()); err != nil {
		return
	}
	if err := controller.Flush(); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Warn("response writer does not support flushing")
		return
	}

	heartbeat := time.NewTicker(h.heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return

		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": heartbeat\n\n"); err != nil {
				return
			}

		case event, ok := <-sub.Events():
			if !ok {
				// хаб закрыт при остановке сервиса
				return
			}

			payload, err := json.Marshal(converters.FromEvent(event))
			if err != nil {
				h.log.With(
					logger.NewField("error", err),
				).Error("marshal sse event")
				continue
			}

			if _, err := fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", event.ID, event.Type, payload); err != nil {
				return
			}
		}

		if err := controller.Flush(); err != nil {
			return
		}
	}
}

// topic возвращает адресата подписки и id владельца потока.
// У потока посылки владельца нет, ownerID = 0.
func (h *Handler) topic(rawID string) (hub.Topic, int64, error) {
	switch h.kind {
	case hub.TopicPackage:
		if rawID == "" {
			return hub.Topic{}, 0, respond.ErrInvalidPathID
		}
		return hub.PackageTopic(rawID), 0, nil

	case hub.TopicCourier, hub.TopicSender:
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || id <= 0 {
			return hub.Topic{}, 0, respond.ErrInvalidPathID
		}
		if h.kind == hub.TopicCourier {
			return hub.CourierTopic(id), id, nil
		}
		return hub.SenderTopic(id), id, nil

	default:
		return hub.Topic{}, 0, fmt.Errorf("unknown topic kind %q", h.kind)
	}
}
