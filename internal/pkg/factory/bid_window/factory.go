package bid_window

import "time"

const DefaultWindow = 24 * time.Hour

// BiddingWindowFactory считает дедлайн торгов от момента первой ставки.
type BiddingWindowFactory struct {
	window time.Duration
}

func New(window time.Duration) *BiddingWindowFactory {
	if window <= 0 {
		window = DefaultWindow
	}
	return &BiddingWindowFactory{
		window: window,
	}
}

func (f *BiddingWindowFactory) CalculateDeadline(firstBidAt time.Time) time.Time {
	return firstBidAt.Add(f.window)
}
