package hub

import (
	"strconv"
	"sync"

	"bidding-service/internal/entities"
	"bidding-service/internal/pkg/metrics"
	"bidding-service/pkg/logger"
)

type TopicKind string

const (
	TopicPackage TopicKind = "package"
	TopicCourier TopicKind = "courier"
	TopicSender  TopicKind = "sender"
)

// Topic - адресат подписки: посылка, курьер или отправитель.
type Topic struct {
	Kind TopicKind
	Key  string
}

func PackageTopic(trackingID string) Topic {
	return Topic{Kind: TopicPackage, Key: trackingID}
}

func CourierTopic(courierID int64) Topic {
	return Topic{Kind: TopicCourier, Key: strconv.FormatInt(courierID, 10)}
}

func SenderTopic(senderID int64) Topic {
	return Topic{Kind: TopicSender, Key: strconv.FormatInt(senderID, 10)}
}

func (t Topic) String() string {
	return string(t.Kind) + ":" + t.Key
}

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
}

type Subscription struct {
	id     uint64
	topic  Topic
	events chan entities.BidEvent
	closed bool
}

// Events закрывается при Unsubscribe или Close хаба.
func (s *Subscription) Events() <-chan entities.BidEvent {
	return s.events
}

func (s *Subscription) Topic() Topic {
	return s.topic
}

// Hub раздает опубликованные события ставок SSE-подписчикам внутри процесса.
// Медленный подписчик теряет события, а не тормозит relay: клиент догонит состояние опросом.
type Hub struct {
	log        handlerLogger
	bufferSize int

	mu     sync.RWMutex
	subs   map[Topic]map[uint64]*Subscription
	nextID uint64
	closed bool
}

func New(log handlerLogger, bufferSize int) *Hub {
	if bufferSize <= 0 {
		bufferSize = 1
	}

	return &Hub{
		log:        log,
		bufferSize: bufferSize,
		subs:       make(map[Topic]map[uint64]*Subscription),
	}
}

// Subscribe регистрирует подписчика. После Close хаба возвращается уже закрытая подписка.
func (h *Hub) Subscribe(topic Topic) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	sub := &Subscription{
		id:     h.nextID,
		topic:  topic,
		events: make(chan entities.BidEvent, h.bufferSize),
	}

	if h.closed {
		sub.closed = true
		close(sub.events)
		return sub
	}

	group, ok := h.subs[topic]
	if !ok {
		group = make(map[uint64]*Subscription)
		h.subs[topic] = group
	}
	group[sub.id] = sub

	metrics.SSESubscribers.Inc()
	h.log.Debug("sse subscriber added",
		logger.NewField("topic", topic.String()),
		logger.NewField("subscription", sub.id),
	)

	return sub
}

// Unsubscribe идемпотентен.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(sub)
}

func (h *Hub) removeLocked(sub *Subscription) {
	if sub.closed {
		return
	}
	sub.closed = true
	close(sub.events)

	if group, ok := h.subs[sub.topic]; ok {
		delete(group, sub.id)
		if len(group) == 0 {
			delete(h.subs, sub.topic)
		}
	}
	metrics.SSESubscribers.Dec()
}

// Broadcast рассылает события подписчикам посылки, курьера и отправителя. Не блокируется.
func (h *Hub) Broadcast(events []entities.BidEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, event := range events {
		topics := [...]Topic{
			PackageTopic(event.PackageID),
			CourierTopic(event.CourierID),
			SenderTopic(event.SenderID),
		}

		for _, topic := range topics {
			for _, sub := range h.subs[topic] {
				select {
				case sub.events <- event:
				default:
					metrics.SSEDroppedTotal.Inc()
					h.log.Debug("sse subscriber is slow, event dropped",
						logger.NewField("topic", topic.String()),
						logger.NewField("subscription", sub.id),
						logger.NewField("event_id", event.EventID.String()),
					)
				}
			}
		}
	}
}

// Subscribers возвращает количество подписчиков на топик.
func (h *Hub) Subscribers(topic Topic) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subs[topic])
}

// Close закрывает все подписки, чтобы SSE-обработчики завершились при остановке сервиса.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	total := 0
	for _, group := range h.subs {
		for _, sub := range group {
			h.removeLocked(sub)
			total++
		}
	}

	h.log.Info("sse hub closed",
		logger.NewField("subscribers", total),
	)
}
