package bidding

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"auction-house/internal/biddingerrors"
	model "auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/internal/validator"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mock_publisher.go -package=bidding auction-house/internal/biddingService Publisher

// Publisher receives an event for every committed bid
type Publisher interface {
	Publish(event model.BidEvent)
}

// BiddingService admits bids and serves read queries over the ledger
type BiddingService struct {
	repo      repository.AuctionDB
	publisher Publisher
	locks     *lotLocks
	now       func() time.Time
}

// Option configures a BiddingService
type Option func(*BiddingService)

// WithClock replaces the wall clock used to decide whether an auction has ended
func WithClock(now func() time.Time) Option {
	return func(s *BiddingService) {
		s.now = now
	}
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(repo repository.AuctionDB, publisher Publisher, opts ...Option) *BiddingService {
	s := &BiddingService{
		repo:      repo,
		publisher: publisher,
		locks:     newLotLocks(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceBid validates a bid, commits it under the lot's admission lock and publishes it.
// Rejections are returned as *biddingerrors.Rejection.
func (s *BiddingService) PlaceBid(lotID, bidderName, amount string) (model.Bid, error) {
	bidderName = strings.TrimSpace(bidderName)

	// Current bids only grow and time only moves forward, so a rejection against an
	// unlocked snapshot stays valid and is returned without waiting for the lock.
	if _, err := s.validate(lotID, bidderName, amount); err != nil {
		return model.Bid{}, err
	}

	bid, lot, err := s.admit(lotID, bidderName, amount)
	if err != nil {
		return model.Bid{}, err
	}

	s.publisher.Publish(model.BidEvent{
		LotID:      lot.ID,
		CurrentBid: lot.CurrentBid,
		Bid:        bid,
		Revision:   lot.Revision,
	})

	return bid, nil
}

// admit holds the per-lot lock from the authoritative validation through the commit
func (s *BiddingService) admit(lotID, bidderName, amount string) (model.Bid, model.Lot, error) {
	unlock := s.locks.Lock(lotID)
	defer unlock()

	parsed, err := s.validate(lotID, bidderName, amount)
	if err != nil {
		return model.Bid{}, model.Lot{}, err
	}

	bid, lot, err := s.repo.CommitBid(lotID, bidderName, parsed)
	if err != nil {
		return model.Bid{}, model.Lot{}, fmt.Errorf("service: failed to commit bid for lot %s by %s: %w", lotID, bidderName, err)
	}
	return bid, lot, nil
}

// validate runs the validator against a fresh ledger snapshot
func (s *BiddingService) validate(lotID, bidderName, amount string) (decimal.Decimal, error) {
	var snapshot *model.Lot
	lot, err := s.repo.GetLot(lotID)
	switch {
	case err == nil:
		snapshot = &lot
	case !errors.Is(err, biddingerrors.ErrLotNotFound):
		return decimal.Zero, fmt.Errorf("service: failed to load lot %s: %w", lotID, err)
	}

	return validator.ValidateBid(snapshot, lotID, bidderName, amount, s.now())
}

// ListLots returns every lot with its derived fields, ordered by ID
func (s *BiddingService) ListLots() []model.LotSummary {
	now := s.now()
	lots := s.repo.ListLots()
	out := make([]model.LotSummary, 0, len(lots))
	for _, lot := range lots {
		out = append(out, summarize(lot, now))
	}
	return out
}

// GetLot returns a lot together with its bid history, most recent first
func (s *BiddingService) GetLot(lotID string) (model.LotDetail, error) {
	if lotID == "" {
		return model.LotDetail{}, fmt.Errorf("service: %w - empty lot ID", biddingerrors.ErrLotNotFound)
	}

	lot, err := s.repo.GetLot(lotID)
	if err != nil {
		return model.LotDetail{}, fmt.Errorf("service: failed to get lot %s: %w", lotID, err)
	}

	bids, err := s.repo.ListBids(lotID)
	if err != nil {
		return model.LotDetail{}, fmt.Errorf("service: failed to get bids for lot %s: %w", lotID, err)
	}

	// the history may have grown between the two reads; report the lot as of the history
	if len(bids) > 0 {
		lot.CurrentBid = bids[0].Amount
		lot.BidCount = len(bids)
	}

	return model.LotDetail{LotSummary: summarize(lot, s.now()), Bids: bids}, nil
}

// GetBidsForLot returns all bids for a lot, most recent first
func (s *BiddingService) GetBidsForLot(lotID string) ([]model.Bid, error) {
	if lotID == "" {
		return nil, fmt.Errorf("service: %w - empty lot ID", biddingerrors.ErrLotNotFound)
	}

	bids, err := s.repo.ListBids(lotID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for lot %s: %w", lotID, err)
	}

	return bids, nil
}

// GetCurrentBid returns the highest accepted bid amount, or the starting bid
func (s *BiddingService) GetCurrentBid(lotID string) (decimal.Decimal, error) {
	current, err := s.repo.GetCurrentBid(lotID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("service: failed to get current bid for lot %s: %w", lotID, err)
	}
	return current, nil
}
