package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot represents an item open for bidding
type Lot struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Artist         string          `json:"artist"`
	Year           int             `json:"year"`
	Medium         string          `json:"medium"`
	Description    string          `json:"description"`
	ImageURL       string          `json:"image_url,omitempty"`
	StartingBid    decimal.Decimal `json:"starting_bid"`
	CurrentBid     decimal.Decimal `json:"current_bid"`
	AuctionEndTime time.Time       `json:"auction_end_time"`
	CreatedAt      time.Time       `json:"created_at"`
	BidCount       int             `json:"bid_count"`
	// Revision counts bids committed since the lot was added. Seeded history is not counted.
	Revision uint64 `json:"revision"`
}

// ClosedAt reports whether the auction for the lot has ended at the given time
func (l Lot) ClosedAt(now time.Time) bool {
	return !now.Before(l.AuctionEndTime)
}

// Bid represents an accepted offer against a lot
type Bid struct {
	ID         string          `json:"id"`
	LotID      string          `json:"lot_id"`
	BidderName string          `json:"bidder_name"`
	Amount     decimal.Decimal `json:"amount"`
	Timestamp  time.Time       `json:"timestamp"`
}

// LotSummary is a lot with fields derived at read time
type LotSummary struct {
	Lot
	TimeRemaining string `json:"time_remaining"`
	Closed        bool   `json:"closed"`
}

// LotDetail is a lot summary with its bid history, most recent first
type LotDetail struct {
	LotSummary
	Bids []Bid `json:"bids"`
}

// BidEvent is pushed to every subscriber of a lot after a bid is committed
type BidEvent struct {
	LotID      string          `json:"lot_id"`
	CurrentBid decimal.Decimal `json:"current_bid"`
	Bid        Bid             `json:"bid"`
	Revision   uint64          `json:"revision"`
}

// DashboardStats aggregates ledger state across all lots
type DashboardStats struct {
	TotalBids     int             `json:"total_bids"`
	HighestBid    decimal.Decimal `json:"highest_bid"`
	LotCount      int             `json:"lot_count"`
	OpenLots      int             `json:"open_lots"`
	AvgBidsPerLot int             `json:"avg_bids_per_lot"`
	TopLots       []LotSummary    `json:"top_lots"`
}
