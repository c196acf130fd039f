package bidding

import (
	"fmt"
	"math"
	"slices"
	"time"

	model "auction-house/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultTopLots is how many lots the dashboard ranks when no limit is given
const DefaultTopLots = 3

// summarize attaches the derived display fields to a lot
func summarize(lot model.Lot, now time.Time) model.LotSummary {
	return model.LotSummary{
		Lot:           lot,
		TimeRemaining: TimeRemaining(lot.AuctionEndTime, now),
		Closed:        lot.ClosedAt(now),
	}
}

// TimeRemaining formats the time left until end as "Xh Ym", "Ym" or "Ended"
func TimeRemaining(end, now time.Time) string {
	diff := end.Sub(now)
	if diff <= 0 {
		return "Ended"
	}

	hours := int(diff / time.Hour)
	minutes := int((diff % time.Hour) / time.Minute)
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// GetDashboard aggregates bid activity by scanning the ledger
func (s *BiddingService) GetDashboard(topN int) model.DashboardStats {
	if topN <= 0 {
		topN = DefaultTopLots
	}

	lots := s.ListLots()
	stats := model.DashboardStats{
		LotCount:   len(lots),
		HighestBid: decimal.Zero,
		TopLots:    []model.LotSummary{},
	}

	for _, lot := range lots {
		stats.TotalBids += lot.BidCount
		if lot.CurrentBid.GreaterThan(stats.HighestBid) {
			stats.HighestBid = lot.CurrentBid
		}
		if !lot.Closed {
			stats.OpenLots++
		}
	}

	if len(lots) > 0 {
		stats.AvgBidsPerLot = int(math.Round(float64(stats.TotalBids) / float64(len(lots))))
	}

	ranked := slices.Clone(lots)
	slices.SortStableFunc(ranked, func(a, b model.LotSummary) int {
		return b.BidCount - a.BidCount
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	stats.TopLots = append(stats.TopLots, ranked...)

	return stats
}
