package stream

import (
	"time"

	model "auction-house/internal/models"
)

// Client message types
const (
	TypeJoinLot  = "join_lot"
	TypeLeaveLot = "leave_lot"
)

// Server message types
const (
	TypeBidUpdate = "bid_update"
	TypeJoined    = "joined_lot"
	TypeLeft      = "left_lot"
	TypeError     = "error"
)

// ClientMessage is a request sent by a websocket client
type ClientMessage struct {
	Type  string `json:"type" validate:"required,oneof=join_lot leave_lot"`
	LotID string `json:"lot_id" validate:"required_if=Type join_lot"`
}

// BidPayload is the wire form of a committed bid
type BidPayload struct {
	ID         string `json:"id"`
	LotID      string `json:"lot_id"`
	BidderName string `json:"bidder_name"`
	Amount     string `json:"amount"`
	Timestamp  string `json:"timestamp"`
}

// BidUpdate is pushed to every connection watching the lot
type BidUpdate struct {
	Type       string     `json:"type"`
	LotID      string     `json:"lot_id"`
	CurrentBid string     `json:"current_bid"`
	Bid        BidPayload `json:"bid"`
}

// Ack confirms a join or leave
type Ack struct {
	Type       string `json:"type"`
	LotID      string `json:"lot_id,omitempty"`
	CurrentBid string `json:"current_bid,omitempty"`
}

// ErrorMessage reports a refused client message
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func newBidUpdate(event model.BidEvent) BidUpdate {
	return BidUpdate{
		Type:       TypeBidUpdate,
		LotID:      event.LotID,
		CurrentBid: event.CurrentBid.StringFixed(2),
		Bid: BidPayload{
			ID:         event.Bid.ID,
			LotID:      event.Bid.LotID,
			BidderName: event.Bid.BidderName,
			Amount:     event.Bid.Amount.StringFixed(2),
			Timestamp:  event.Bid.Timestamp.UTC().Format(time.RFC3339Nano),
		},
	}
}
