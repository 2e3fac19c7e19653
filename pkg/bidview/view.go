// Package bidview - клиентская проекция ставок посылки.
//
// Состояние сходится из двух каналов: push (SSE) и poll (GET /packages/{id}/bids).
// Оба могут доставить один и тот же переход, поэтому применение (bid id, status)
// идемпотентно, а терминальный статус ставки не меняется.
package bidview

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"
)

var ErrInvalidStatus = errors.New("invalid bid status")

type Status string

const (
	StatusPending   Status = "pending"
	StatusSelected  Status = "selected"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
	StatusExpired   Status = "expired"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusSelected, StatusRejected, StatusWithdrawn, StatusExpired:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s.IsValid() && s != StatusPending
}

const packageStatusOpen = "open"

// Snapshot - авторитетное состояние посылки, полученное poll-ом.
type Snapshot struct {
	PackageID     string
	PackageStatus string
	BidDeadline   *time.Time
	Bids          map[int64]Status
}

// Change - примененный к проекции переход ставки.
type Change struct {
	BidID int64
	From  Status // пустой, если ставка появилась впервые
	To    Status
}

type View struct {
	mu            sync.RWMutex
	packageID     string
	packageStatus string
	bidDeadline   *time.Time
	bids          map[int64]Status
}

func New(packageID string) *View {
	return &View{
		packageID: packageID,
		bids:      make(map[int64]Status),
	}
}

func (v *View) PackageID() string {
	return v.packageID
}

// Apply применяет событие. Повтор или переход из терминального статуса - no-op
// с changed=false, не ошибка.
func (v *View) Apply(bidID int64, status Status) (bool, error) {
	if !status.IsValid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	_, changed := v.applyLocked(bidID, status)
	return changed, nil
}

func (v *View) applyLocked(bidID int64, status Status) (Change, bool) {
	current, known := v.bids[bidID]
	if known && (current == status || current.IsTerminal()) {
		return Change{}, false
	}

	v.bids[bidID] = status
	return Change{BidID: bidID, From: current, To: status}, true
}

// Reconcile заменяет проекцию снапшотом poll-а. Ставки, которых нет в снапшоте,
// выбрасываются. Терминальные статусы, уже известные проекции, сохраняются:
// снапшот мог быть прочитан до события, пришедшего по push.
func (v *View) Reconcile(snapshot Snapshot) ([]Change, error) {
	for bidID, status := range snapshot.Bids {
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: bid %d has status %q", ErrInvalidStatus, bidID, status)
		}
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.packageStatus = snapshot.PackageStatus
	v.bidDeadline = snapshot.BidDeadline

	for bidID := range v.bids {
		if _, ok := snapshot.Bids[bidID]; !ok {
			delete(v.bids, bidID)
		}
	}

	changes := make([]Change, 0)
	for _, bidID := range sortedIDs(snapshot.Bids) {
		if change, ok := v.applyLocked(bidID, snapshot.Bids[bidID]); ok {
			changes = append(changes, change)
		}
	}

	return changes, nil
}

func (v *View) Status(bidID int64) (Status, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	status, ok := v.bids[bidID]
	return status, ok
}

// Bids возвращает копию проекции.
func (v *View) Bids() map[int64]Status {
	v.mu.RLock()
	defer v.mu.RUnlock()

	bids := make(map[int64]Status, len(v.bids))
	for id, status := range v.bids {
		bids[id] = status
	}
	return bids
}

// Countdown - секунды до дедлайна с округлением вверх. ok=false, если торги
// не открыты или дедлайн еще не взведен. Только для отображения: границу
// окна проверяет сервер.
func (v *View) Countdown(now time.Time) (int64, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.packageStatus != packageStatusOpen || v.bidDeadline == nil {
		return 0, false
	}

	remaining := v.bidDeadline.Sub(now)
	if remaining <= 0 {
		return 0, true
	}
	return int64(math.Ceil(remaining.Seconds())), true
}

// NextDeadlinePoll - через сколько нужно сделать внеочередной poll, когда
// обратный отсчет дойдет до нуля.
func (v *View) NextDeadlinePoll(now time.Time) (time.Duration, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.packageStatus != packageStatusOpen || v.bidDeadline == nil {
		return 0, false
	}
	return max(v.bidDeadline.Sub(now), 0), true
}

func sortedIDs(bids map[int64]Status) []int64 {
	ids := make([]int64, 0, len(bids))
	for id := range bids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
