// Package validator decides whether a proposed bid may be admitted against a lot snapshot.
// It has no side effects; the admission pipeline calls it both before and after taking
// the per-lot lock.
package validator

import (
	"strings"
	"time"

	"auction-house/internal/biddingerrors"
	model "auction-house/internal/models"

	"github.com/shopspring/decimal"
)

// MaxFractionDigits is the precision money amounts are accepted with
const MaxFractionDigits = 2

// MaxAmount is the largest accepted bid, the ceiling of a decimal(10,2) column
var MaxAmount = decimal.RequireFromString("99999999.99")

const (
	maxAmountLength = 32
	minExponent     = -maxAmountLength
	maxExponent     = 10
)

// ParseAmount parses a positive decimal amount with at most two fractional digits, no larger
// than MaxAmount. Length and exponent are bounded before any comparison rescales the value.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > maxAmountLength {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	if exp := amount.Exponent(); exp < minExponent || exp > maxExponent {
		return decimal.Zero, false
	}
	if !amount.IsPositive() || amount.GreaterThan(MaxAmount) {
		return decimal.Zero, false
	}
	if !amount.Equal(amount.Truncate(MaxFractionDigits)) {
		return decimal.Zero, false
	}
	return amount, true
}

// ValidateBid checks a bid against a lot snapshot. lot is nil when the lot does not exist.
// On acceptance it returns the parsed amount; otherwise a *biddingerrors.Rejection.
func ValidateBid(lot *model.Lot, lotID, bidderName, rawAmount string, now time.Time) (decimal.Decimal, error) {
	if lot == nil {
		return decimal.Zero, biddingerrors.Reject(biddingerrors.ReasonLotNotFound, lotID, decimal.Zero,
			"lot %s does not exist", lotID)
	}

	if strings.TrimSpace(bidderName) == "" {
		return decimal.Zero, biddingerrors.Reject(biddingerrors.ReasonEmptyBidderName, lot.ID, lot.CurrentBid,
			"bidder name is required")
	}

	amount, ok := ParseAmount(rawAmount)
	if !ok {
		return decimal.Zero, biddingerrors.Reject(biddingerrors.ReasonAmountMalformed, lot.ID, lot.CurrentBid,
			"amount %q must be a positive number up to %s with at most %d decimal places",
			rawAmount, MaxAmount.StringFixed(MaxFractionDigits), MaxFractionDigits)
	}

	if lot.ClosedAt(now) {
		return decimal.Zero, biddingerrors.Reject(biddingerrors.ReasonAuctionClosed, lot.ID, lot.CurrentBid,
			"auction ended at %s", lot.AuctionEndTime.UTC().Format(time.RFC3339))
	}

	if !amount.GreaterThan(lot.CurrentBid) {
		return decimal.Zero, biddingerrors.Reject(biddingerrors.ReasonAmountNotHigher, lot.ID, lot.CurrentBid,
			"bid must be higher than current bid of %s", lot.CurrentBid.StringFixed(MaxFractionDigits))
	}

	return amount, nil
}
