package bid

import (
	"slices"

	"bidding-service/internal/entities"
)

// displayRank: выбранная ставка, затем pending, затем остальные терминальные.
func displayRank(status entities.BidStatusType) int {
	switch status {
	case entities.BidSelected:
		return 0
	case entities.BidPending:
		return 1
	default:
		return 2
	}
}

// sortForDisplay упорядочивает ставки для экрана отправителя.
// Pending сортируются по цене, при равной цене по времени подачи и id.
func sortForDisplay(bids []entities.Bid) {
	slices.SortStableFunc(bids, func(a, b entities.Bid) int {
		if ra, rb := displayRank(a.Status), displayRank(b.Status); ra != rb {
			return ra - rb
		}

		if a.Status != entities.BidPending {
			return 0
		}

		if c := a.ProposedPrice.Cmp(b.ProposedPrice); c != 0 {
			return c
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}

		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
}
