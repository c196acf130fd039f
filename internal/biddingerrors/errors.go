package biddingerrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Repository-level errors
var (
	ErrLotNotFound    = errors.New("lot not found")
	ErrLotExists      = errors.New("lot already exists")
	ErrInvalidLot     = errors.New("invalid lot")
	ErrCommitConflict = errors.New("bid does not exceed current bid at commit")
)

// Rejection categories
var (
	ErrInvalidInput = errors.New("invalid bid input")
	ErrBusinessRule = errors.New("bid rejected by auction rules")
)

// Rejection reasons
var (
	ErrEmptyBidderName = errors.New("bidder name is required")
	ErrAmountMalformed = errors.New("bid amount is malformed")
	ErrAmountNotHigher = errors.New("bid amount is not higher than current bid")
	ErrAuctionClosed   = errors.New("auction has ended")
)

// Reason identifies why a bid was rejected
type Reason string

const (
	ReasonLotNotFound     Reason = "LotNotFound"
	ReasonEmptyBidderName Reason = "EmptyBidderName"
	ReasonAmountMalformed Reason = "AmountMalformed"
	ReasonAmountNotHigher Reason = "AmountNotHigher"
	ReasonAuctionClosed   Reason = "AuctionClosed"
)

// Category returns the category sentinel for the reason, or ErrLotNotFound for a missing lot
func (r Reason) Category() error {
	switch r {
	case ReasonEmptyBidderName, ReasonAmountMalformed:
		return ErrInvalidInput
	case ReasonAmountNotHigher, ReasonAuctionClosed:
		return ErrBusinessRule
	case ReasonLotNotFound:
		return ErrLotNotFound
	default:
		return nil
	}
}

func (r Reason) sentinel() error {
	switch r {
	case ReasonEmptyBidderName:
		return ErrEmptyBidderName
	case ReasonAmountMalformed:
		return ErrAmountMalformed
	case ReasonAmountNotHigher:
		return ErrAmountNotHigher
	case ReasonAuctionClosed:
		return ErrAuctionClosed
	case ReasonLotNotFound:
		return ErrLotNotFound
	default:
		return nil
	}
}

// Rejection is returned for every bid refused by validation.
// CurrentBid is zero when the lot does not exist.
type Rejection struct {
	Reason     Reason
	Message    string
	LotID      string
	CurrentBid decimal.Decimal
}

// Reject builds a Rejection for the given lot
func Reject(reason Reason, lotID string, currentBid decimal.Decimal, format string, args ...any) *Rejection {
	return &Rejection{
		Reason:     reason,
		Message:    fmt.Sprintf(format, args...),
		LotID:      lotID,
		CurrentBid: currentBid,
	}
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Reason, r.Message)
}

// Is matches both the reason sentinel and the reason category
func (r *Rejection) Is(target error) bool {
	if target == nil {
		return false
	}
	return target == r.Reason.sentinel() || target == r.Reason.Category()
}

// AsRejection unwraps err into a Rejection when it carries one
func AsRejection(err error) (*Rejection, bool) {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}
