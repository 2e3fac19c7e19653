package package_status_changed

import (
	"context"
	"errors"
	"time"

	"github.com/IBM/sarama"

	"bidding-service/internal/entities"
	parcelservice "bidding-service/internal/service/parcel"
	"bidding-service/pkg/logger"
)

// Handler применяет смену статуса посылки к торгам: отмена или доставка
// закрывают торги, статус берется из tracking-service, а не из сообщения.
// Прочие статусы коммитятся как ignored_status.
type Handler struct {
	parcelService Service
	log           handlerLogger
	timeout       time.Duration
}

func New(log handlerLogger, parcelService Service, timeout time.Duration) *Handler {
	return &Handler{
		parcelService: parcelService,
		log:           log.With(logger.NewField("handler", "package.status.changed")),
		timeout:       timeout,
	}
}

func (h *Handler) Setup(sess sarama.ConsumerGroupSession) error {
	h.log.Info("partitions assigned", logger.NewField("claims", sess.Claims()))
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			if !h.handle(sess, message) {
				// офсет не сдвигается, после rebalance сообщение придет снова
				return nil
			}

		case <-sess.Context().Done():
			return nil
		}
	}
}

// handle возвращает false, если обработку партиции нужно прервать без коммита.
// Остальные ошибки коммитятся: повтор не исправит неизвестную посылку или битый JSON.
func (h *Handler) handle(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	msgLog := h.log.With(
		logger.NewField("partition", message.Partition),
		logger.NewField("offset", message.Offset),
	)

	event, err := decodeEvent(message.Key, message.Value)
	if err != nil {
		msgLog.Error("malformed message skipped", logger.NewField("error", err))
		MessagesTotal.WithLabelValues(outcomeMalformed).Inc()
		sess.MarkMessage(message, "")
		return true
	}

	msgLog = msgLog.With(
		logger.NewField("package", event.TrackingID),
		logger.NewField("event_status", event.Status),
	)

	ctx, cancel := context.WithTimeout(sess.Context(), h.timeout)
	defer cancel()

	status := entities.ParcelStatusType(event.Status)
	parcel, err := h.parcelService.ProcessPackageStatusChange(ctx, entities.ParcelModify{
		TrackingID: &event.TrackingID,
		Status:     &status,
	})

	outcome := classify(err)
	MessagesTotal.WithLabelValues(outcome).Inc()

	switch outcome {
	case outcomeRetry:
		msgLog.Warn("processing interrupted, message will be redelivered", logger.NewField("error", err))
		return false
	case outcomeProcessed:
		msgLog.Info("package status applied", logger.NewField("current_status", parcel.Status.String()))
	case outcomeFailed:
		msgLog.Error("failed to apply package status", logger.NewField("error", err))
	default:
		msgLog.Warn("package status ignored", logger.NewField("reason", outcome), logger.NewField("error", err))
	}

	if !message.Timestamp.IsZero() {
		MessageLag.Observe(time.Since(message.Timestamp).Seconds())
	}
	sess.MarkMessage(message, "")
	return true
}

func classify(err error) string {
	switch {
	case err == nil:
		return outcomeProcessed
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return outcomeRetry
	case errors.Is(err, parcelservice.ErrPackageNotFound):
		return outcomeUnknown
	case errors.Is(err, parcelservice.ErrPackageConflict):
		return outcomeConflict
	case errors.Is(err, parcelservice.ErrUndefinedStatus):
		return outcomeIgnored
	default:
		return outcomeFailed
	}
}
