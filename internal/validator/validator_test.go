package validator

import (
	"errors"
	"strings"
	"testing"
	"time"

	"auction-house/internal/biddingerrors"
	model "auction-house/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestValidateBid(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	lot := &model.Lot{
		ID:             "L1",
		StartingBid:    decimal.NewFromInt(100000),
		CurrentBid:     decimal.NewFromInt(105000),
		AuctionEndTime: now.Add(time.Hour),
	}

	tests := []struct {
		name       string
		lot        *model.Lot
		bidder     string
		amount     string
		now        time.Time
		wantReason biddingerrors.Reason
		wantAmount string
	}{
		{name: "accepts_higher_amount", lot: lot, bidder: "A", amount: "110000", now: now, wantAmount: "110000"},
		{name: "accepts_cents", lot: lot, bidder: "A", amount: "105000.01", now: now, wantAmount: "105000.01"},
		{name: "accepts_padded_input", lot: lot, bidder: " A ", amount: " 106000 ", now: now, wantAmount: "106000"},
		{name: "lot_not_found", lot: nil, bidder: "A", amount: "110000", now: now, wantReason: biddingerrors.ReasonLotNotFound},
		{name: "empty_name", lot: lot, bidder: "", amount: "110000", now: now, wantReason: biddingerrors.ReasonEmptyBidderName},
		{name: "whitespace_name", lot: lot, bidder: " \t ", amount: "110000", now: now, wantReason: biddingerrors.ReasonEmptyBidderName},
		{name: "amount_not_a_number", lot: lot, bidder: "A", amount: "lots", now: now, wantReason: biddingerrors.ReasonAmountMalformed},
		{name: "amount_empty", lot: lot, bidder: "A", amount: "", now: now, wantReason: biddingerrors.ReasonAmountMalformed},
		{name: "amount_zero", lot: lot, bidder: "A", amount: "0", now: now, wantReason: biddingerrors.ReasonAmountMalformed},
		{name: "amount_negative", lot: lot, bidder: "A", amount: "-5", now: now, wantReason: biddingerrors.ReasonAmountMalformed},
		{name: "amount_infinite", lot: lot, bidder: "A", amount: "Inf", now: now, wantReason: biddingerrors.ReasonAmountMalformed},
		{name: "amount_huge_exponent", lot: lot, bidder: "A", amount: "1e400", now: now, wantReason: biddingerrors.ReasonAmountMalformed},
		{name: "amount_enormous_exponent", lot: lot, bidder: "A", amount: "1e5000000", now: now, wantReason: biddingerrors.ReasonAmountMalformed},
		{name: "amount_above_max", lot: lot, bidder: "A", amount: "100000000", now: now, wantReason: biddingerrors.ReasonAmountMalformed},
		{name: "amount_too_precise", lot: lot, bidder: "A", amount: "110000.001", now: now, wantReason: biddingerrors.ReasonAmountMalformed},
		{name: "equal_amount", lot: lot, bidder: "B", amount: "105000", now: now, wantReason: biddingerrors.ReasonAmountNotHigher},
		{name: "lower_amount", lot: lot, bidder: "C", amount: "99000", now: now, wantReason: biddingerrors.ReasonAmountNotHigher},
		{name: "closed_at_end_time", lot: lot, bidder: "D", amount: "110000", now: lot.AuctionEndTime, wantReason: biddingerrors.ReasonAuctionClosed},
		{name: "closed_after_end_time", lot: lot, bidder: "D", amount: "110000", now: now.Add(2 * time.Hour), wantReason: biddingerrors.ReasonAuctionClosed},
		{name: "name_checked_before_amount", lot: lot, bidder: "", amount: "oops", now: now, wantReason: biddingerrors.ReasonEmptyBidderName},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			amount, err := ValidateBid(tc.lot, "L1", tc.bidder, tc.amount, tc.now)
			if tc.wantReason == "" {
				require.NoError(t, err)
				require.True(t, decimal.RequireFromString(tc.wantAmount).Equal(amount))
				return
			}

			rej, ok := biddingerrors.AsRejection(err)
			require.True(t, ok, "expected a rejection, got %v", err)
			require.Equal(t, tc.wantReason, rej.Reason)
			require.Equal(t, "L1", rej.LotID)
			require.NotEmpty(t, rej.Message)
			require.True(t, amount.IsZero())
		})
	}
}

func TestValidateBid_ErrorCategories(t *testing.T) {
	now := time.Now()
	lot := &model.Lot{ID: "L1", CurrentBid: decimal.NewFromInt(10), AuctionEndTime: now.Add(time.Minute)}

	_, err := ValidateBid(lot, "L1", "", "20", now)
	require.True(t, errors.Is(err, biddingerrors.ErrEmptyBidderName))
	require.True(t, errors.Is(err, biddingerrors.ErrInvalidInput))
	require.False(t, errors.Is(err, biddingerrors.ErrBusinessRule))

	_, err = ValidateBid(lot, "L1", "A", "5", now)
	require.True(t, errors.Is(err, biddingerrors.ErrAmountNotHigher))
	require.True(t, errors.Is(err, biddingerrors.ErrBusinessRule))

	rej, ok := biddingerrors.AsRejection(err)
	require.True(t, ok)
	require.True(t, decimal.NewFromInt(10).Equal(rej.CurrentBid))

	_, err = ValidateBid(nil, "L9", "A", "5", now)
	require.True(t, errors.Is(err, biddingerrors.ErrLotNotFound))
	require.False(t, errors.Is(err, biddingerrors.ErrInvalidInput))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw    string
		wantOK bool
	}{
		{"1", true},
		{"1.5", true},
		{"1.50", true},
		{"1.505", false},
		{"1e3", true},
		{"abc", false},
		{"NaN", false},
		{"0.00", false},
		{"99999999.99", true},
		{"100000000", false},
		{"1e7", true},
		{"1e8", false},
		{"1e400", false},
		{"1e100000", false},
		{"1e5000000", false},
		{"1e-5000000", false},
		{"0.000000000000000000000000000000001", false},
		{strings.Repeat("1", 33), false},
	}

	for _, tc := range tests {
		_, ok := ParseAmount(tc.raw)
		require.Equal(t, tc.wantOK, ok, "raw=%q", tc.raw)
	}
}

func TestParseAmount_HugeExponentIsCheap(t *testing.T) {
	start := time.Now()
	for i := 0; i < 1000; i++ {
		_, ok := ParseAmount("1e5000000")
		require.False(t, ok)
	}
	require.Less(t, time.Since(start), time.Second)
}
