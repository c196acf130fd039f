package helpers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	model "auction-house/internal/models"
)

// AmountInput accepts a bid amount sent as a JSON string or a JSON number.
// Parsing is left to the bid validator so malformed amounts get a specific reason.
type AmountInput string

func (a *AmountInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AmountInput(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a string or number: %w", err)
	}
	*a = AmountInput(n.String())
	return nil
}

// Request/Response DTOs
type PlaceBidRequest struct {
	BidderName string      `json:"bidder_name"`
	Amount     AmountInput `json:"amount"`
}

type BidResponse struct {
	BidID      string `json:"bid_id"`
	LotID      string `json:"lot_id"`
	BidderName string `json:"bidder_name"`
	Amount     string `json:"amount"`
	Timestamp  string `json:"timestamp"`
}

type CurrentBidResponse struct {
	LotID      string `json:"lot_id"`
	CurrentBid string `json:"current_bid"`
}

// NewBidResponse converts a committed bid for the wire
func NewBidResponse(bid model.Bid) BidResponse {
	return BidResponse{
		BidID:      bid.ID,
		LotID:      bid.LotID,
		BidderName: bid.BidderName,
		Amount:     bid.Amount.StringFixed(2),
		Timestamp:  bid.Timestamp.UTC().Format(time.RFC3339Nano),
	}
}
