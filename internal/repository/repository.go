package repository

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"auction-house/internal/biddingerrors"
	model "auction-house/internal/models"
	"auction-house/utils"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mock_repository.go -package=repository auction-house/internal/repository AuctionDB

// AuctionDB defines the ledger interface for lots and bids
type AuctionDB interface {
	AddLot(lot model.Lot, history ...model.Bid) error
	GetLot(lotID string) (model.Lot, error)
	ListLots() []model.Lot
	ListBids(lotID string) ([]model.Bid, error)
	ListAllBids() []model.Bid
	GetCurrentBid(lotID string) (decimal.Decimal, error)
	CommitBid(lotID, bidderName string, amount decimal.Decimal) (model.Bid, model.Lot, error)
}

// lotState is an immutable snapshot of one lot. bids is append-only, oldest first;
// a newer state may share its backing array but never writes below len(bids).
type lotState struct {
	lot  model.Lot
	bids []model.Bid
}

func (s *lotState) snapshot() model.Lot {
	lot := s.lot
	lot.BidCount = len(s.bids)
	return lot
}

// newestFirst copies the bid history in reverse chronological order
func (s *lotState) newestFirst() []model.Bid {
	out := make([]model.Bid, len(s.bids))
	for i, b := range s.bids {
		out[len(s.bids)-1-i] = b
	}
	return out
}

type lotRecord struct {
	writeMu sync.Mutex
	state   atomic.Pointer[lotState]
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB.
// Reads load an atomic snapshot and never wait on a commit in progress.
type MemoryRepo struct {
	mu   sync.RWMutex
	lots map[string]*lotRecord
	ids  []string // sorted ascending

	now func() time.Time
}

// Option configures a MemoryRepo
type Option func(*MemoryRepo)

// WithClock replaces the wall clock used for commit timestamps
func WithClock(now func() time.Time) Option {
	return func(r *MemoryRepo) {
		r.now = now
	}
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo(opts ...Option) *MemoryRepo {
	r := &MemoryRepo{
		lots: make(map[string]*lotRecord),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddLot registers a lot with an optional bid history, oldest first.
// CurrentBid is derived from the history; history must strictly increase above the starting bid.
func (r *MemoryRepo) AddLot(lot model.Lot, history ...model.Bid) error {
	if strings.TrimSpace(lot.ID) == "" {
		return fmt.Errorf("add lot: %w - empty lot ID", biddingerrors.ErrInvalidLot)
	}
	if !lot.StartingBid.IsPositive() {
		return fmt.Errorf("add lot %s: %w - starting bid must be positive", lot.ID, biddingerrors.ErrInvalidLot)
	}
	if lot.AuctionEndTime.IsZero() {
		return fmt.Errorf("add lot %s: %w - missing auction end time", lot.ID, biddingerrors.ErrInvalidLot)
	}
	if lot.CreatedAt.IsZero() {
		lot.CreatedAt = r.now().UTC()
	}

	lot.CurrentBid = lot.StartingBid
	lot.Revision = 0
	bids := make([]model.Bid, 0, len(history))
	var last time.Time
	for i, b := range history {
		if !b.Amount.GreaterThan(lot.CurrentBid) {
			return fmt.Errorf("add lot %s: %w - history bid %d (%s) does not exceed %s",
				lot.ID, biddingerrors.ErrInvalidLot, i, b.Amount, lot.CurrentBid)
		}
		if i > 0 && !b.Timestamp.After(last) {
			return fmt.Errorf("add lot %s: %w - history bid %d is not after its predecessor",
				lot.ID, biddingerrors.ErrInvalidLot, i)
		}
		if b.ID == "" {
			b.ID = utils.GenerateID()
		}
		b.LotID = lot.ID
		bids = append(bids, b)
		lot.CurrentBid = b.Amount
		last = b.Timestamp
	}

	rec := &lotRecord{}
	rec.state.Store(&lotState{lot: lot, bids: bids})

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lots[lot.ID]; ok {
		return fmt.Errorf("add lot %s: %w", lot.ID, biddingerrors.ErrLotExists)
	}
	r.lots[lot.ID] = rec
	idx, _ := slices.BinarySearch(r.ids, lot.ID)
	r.ids = slices.Insert(r.ids, idx, lot.ID)
	return nil
}

func (r *MemoryRepo) record(lotID string) (*lotRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.lots[lotID]
	return rec, ok
}

// GetLot returns a snapshot of a lot
func (r *MemoryRepo) GetLot(lotID string) (model.Lot, error) {
	rec, ok := r.record(lotID)
	if !ok {
		return model.Lot{}, fmt.Errorf("get lot %s: %w", lotID, biddingerrors.ErrLotNotFound)
	}
	return rec.state.Load().snapshot(), nil
}

// ListLots returns all lots ordered by ID ascending
func (r *MemoryRepo) ListLots() []model.Lot {
	r.mu.RLock()
	recs := make([]*lotRecord, 0, len(r.ids))
	for _, id := range r.ids {
		recs = append(recs, r.lots[id])
	}
	r.mu.RUnlock()

	lots := make([]model.Lot, 0, len(recs))
	for _, rec := range recs {
		lots = append(lots, rec.state.Load().snapshot())
	}
	return lots
}

// ListBids returns all bids for a lot, most recent first
func (r *MemoryRepo) ListBids(lotID string) ([]model.Bid, error) {
	rec, ok := r.record(lotID)
	if !ok {
		return nil, fmt.Errorf("list bids for lot %s: %w", lotID, biddingerrors.ErrLotNotFound)
	}
	return rec.state.Load().newestFirst(), nil
}

// ListAllBids returns every bid across all lots, most recent first
func (r *MemoryRepo) ListAllBids() []model.Bid {
	var all []model.Bid
	for _, lot := range r.ListLots() {
		bids, err := r.ListBids(lot.ID)
		if err != nil {
			continue
		}
		all = append(all, bids...)
	}
	slices.SortStableFunc(all, func(a, b model.Bid) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	if all == nil {
		all = []model.Bid{}
	}
	return all
}

// GetCurrentBid returns the current highest bid for a lot
func (r *MemoryRepo) GetCurrentBid(lotID string) (decimal.Decimal, error) {
	rec, ok := r.record(lotID)
	if !ok {
		return decimal.Zero, fmt.Errorf("get current bid for lot %s: %w", lotID, biddingerrors.ErrLotNotFound)
	}
	return rec.state.Load().lot.CurrentBid, nil
}

// CommitBid records an already validated bid. The new bid, the history append and the
// current bid update become visible to readers together.
func (r *MemoryRepo) CommitBid(lotID, bidderName string, amount decimal.Decimal) (model.Bid, model.Lot, error) {
	rec, ok := r.record(lotID)
	if !ok {
		return model.Bid{}, model.Lot{}, fmt.Errorf("commit bid for lot %s: %w", lotID, biddingerrors.ErrLotNotFound)
	}

	rec.writeMu.Lock()
	defer rec.writeMu.Unlock()

	prev := rec.state.Load()
	if !amount.GreaterThan(prev.lot.CurrentBid) {
		return model.Bid{}, model.Lot{}, fmt.Errorf("commit bid for lot %s: %w - amount %s, current %s",
			lotID, biddingerrors.ErrCommitConflict, amount, prev.lot.CurrentBid)
	}

	ts := r.now().UTC()
	if n := len(prev.bids); n > 0 && !ts.After(prev.bids[n-1].Timestamp) {
		ts = prev.bids[n-1].Timestamp.Add(time.Nanosecond)
	}

	bid := model.Bid{
		ID:         utils.GenerateID(),
		LotID:      lotID,
		BidderName: bidderName,
		Amount:     amount,
		Timestamp:  ts,
	}

	next := &lotState{lot: prev.lot, bids: append(prev.bids, bid)}
	next.lot.CurrentBid = amount
	next.lot.Revision = prev.lot.Revision + 1
	rec.state.Store(next)

	return bid, next.snapshot(), nil
}
