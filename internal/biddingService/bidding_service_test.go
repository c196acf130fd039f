package bidding

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"auction-house/internal/biddingerrors"
	"auction-house/internal/broadcast"
	model "auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/internal/subscription"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// testClock is a settable clock shared by the repo and the service
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// Tests PlaceBid against a mocked ledger
func TestBiddingService_PlaceBid(t *testing.T) {
	clock := newTestClock()
	openLot := model.Lot{
		ID:             "lot1",
		StartingBid:    dec(100),
		CurrentBid:     dec(100),
		AuctionEndTime: clock.Now().Add(time.Hour),
	}

	// Table-driven test cases
	tests := []struct {
		name          string
		lotID         string
		bidder        string
		amount        string
		mockSetup     func(repo *repository.MockAuctionDB, pub *MockPublisher)
		expectError   bool
		expectedError error
	}{
		{
			name:   "valid_bid",
			lotID:  "lot1",
			bidder: "alice",
			amount: "150",
			mockSetup: func(repo *repository.MockAuctionDB, pub *MockPublisher) {
				repo.EXPECT().GetLot("lot1").Return(openLot, nil).Times(2)
				repo.EXPECT().CommitBid("lot1", "alice", gomock.Any()).DoAndReturn(
					func(lotID, bidder string, amount decimal.Decimal) (model.Bid, model.Lot, error) {
						lot := openLot
						lot.CurrentBid = amount
						lot.Revision = 1
						return model.Bid{ID: uuid.NewString(), LotID: lotID, BidderName: bidder, Amount: amount, Timestamp: clock.Now()}, lot, nil
					})
				pub.EXPECT().Publish(gomock.Any()).Do(func(ev model.BidEvent) {
					require.Equal(t, "lot1", ev.LotID)
					require.True(t, dec(150).Equal(ev.CurrentBid))
					require.Equal(t, "alice", ev.Bid.BidderName)
					require.Equal(t, uint64(1), ev.Revision)
				})
			},
		},
		{
			name:   "bidder_name_is_trimmed",
			lotID:  "lot1",
			bidder: "  bob  ",
			amount: "150",
			mockSetup: func(repo *repository.MockAuctionDB, pub *MockPublisher) {
				repo.EXPECT().GetLot("lot1").Return(openLot, nil).Times(2)
				repo.EXPECT().CommitBid("lot1", "bob", gomock.Any()).Return(model.Bid{BidderName: "bob"}, openLot, nil)
				pub.EXPECT().Publish(gomock.Any())
			},
		},
		{
			name:   "amount_not_higher_rejected_without_lock",
			lotID:  "lot1",
			bidder: "alice",
			amount: "100",
			mockSetup: func(repo *repository.MockAuctionDB, pub *MockPublisher) {
				repo.EXPECT().GetLot("lot1").Return(openLot, nil).Times(1)
			},
			expectError:   true,
			expectedError: biddingerrors.ErrAmountNotHigher,
		},
		{
			name:   "lot_not_found",
			lotID:  "nope",
			bidder: "alice",
			amount: "150",
			mockSetup: func(repo *repository.MockAuctionDB, pub *MockPublisher) {
				repo.EXPECT().GetLot("nope").Return(model.Lot{}, fmt.Errorf("get lot nope: %w", biddingerrors.ErrLotNotFound))
			},
			expectError:   true,
			expectedError: biddingerrors.ErrLotNotFound,
		},
		{
			name:   "empty_bidder",
			lotID:  "lot1",
			bidder: " ",
			amount: "150",
			mockSetup: func(repo *repository.MockAuctionDB, pub *MockPublisher) {
				repo.EXPECT().GetLot("lot1").Return(openLot, nil)
			},
			expectError:   true,
			expectedError: biddingerrors.ErrEmptyBidderName,
		},
		{
			name:   "malformed_amount",
			lotID:  "lot1",
			bidder: "alice",
			amount: "12,000",
			mockSetup: func(repo *repository.MockAuctionDB, pub *MockPublisher) {
				repo.EXPECT().GetLot("lot1").Return(openLot, nil)
			},
			expectError:   true,
			expectedError: biddingerrors.ErrAmountMalformed,
		},
		{
			name:   "outbid_while_waiting_for_lock",
			lotID:  "lot1",
			bidder: "alice",
			amount: "150",
			mockSetup: func(repo *repository.MockAuctionDB, pub *MockPublisher) {
				raced := openLot
				raced.CurrentBid = dec(200)
				gomock.InOrder(
					repo.EXPECT().GetLot("lot1").Return(openLot, nil),
					repo.EXPECT().GetLot("lot1").Return(raced, nil),
				)
			},
			expectError:   true,
			expectedError: biddingerrors.ErrAmountNotHigher,
		},
		{
			name:   "ledger_read_fails",
			lotID:  "lot1",
			bidder: "alice",
			amount: "150",
			mockSetup: func(repo *repository.MockAuctionDB, pub *MockPublisher) {
				repo.EXPECT().GetLot("lot1").Return(model.Lot{}, errors.New("storage offline"))
			},
			expectError:   true,
			expectedError: nil, // Service wraps repo error
		},
		{
			name:   "commit_fails",
			lotID:  "lot1",
			bidder: "alice",
			amount: "150",
			mockSetup: func(repo *repository.MockAuctionDB, pub *MockPublisher) {
				repo.EXPECT().GetLot("lot1").Return(openLot, nil).Times(2)
				repo.EXPECT().CommitBid("lot1", "alice", gomock.Any()).Return(model.Bid{}, model.Lot{}, errors.New("repo write failed"))
			},
			expectError:   true,
			expectedError: nil, // Service wraps repo error
		},
	}

	for _, tc := range tests {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel() // Run tests concurrently

			ctrl := gomock.NewController(t)
			mockRepo := repository.NewMockAuctionDB(ctrl)
			mockPub := NewMockPublisher(ctrl)
			service := NewBiddingService(mockRepo, mockPub, WithClock(clock.Now))

			tc.mockSetup(mockRepo, mockPub)

			bid, err := service.PlaceBid(tc.lotID, tc.bidder, tc.amount)

			if tc.expectError {
				require.Error(t, err)
				if tc.expectedError != nil {
					require.True(t, errors.Is(err, tc.expectedError), "expected error: %v, got: %v", tc.expectedError, err)
					_, isRejection := biddingerrors.AsRejection(err)
					require.True(t, isRejection)
				} else {
					_, isRejection := biddingerrors.AsRejection(err)
					require.False(t, isRejection, "internal failures must not look like rejections")
				}
				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, bid.BidderName)
		})
	}
}

// newLiveService wires the real ledger, registry and dispatcher
func newLiveService(t *testing.T, clock *testClock) (*BiddingService, *repository.MemoryRepo, *subscription.Registry) {
	t.Helper()
	repo := repository.NewMemoryRepo(repository.WithClock(clock.Now))
	registry := subscription.NewRegistry()
	dispatcher := broadcast.NewDispatcher(registry)
	return NewBiddingService(repo, dispatcher, WithClock(clock.Now)), repo, registry
}

func addLot(t *testing.T, repo *repository.MemoryRepo, id string, starting int64, endsIn time.Duration, clock *testClock) {
	t.Helper()
	require.NoError(t, repo.AddLot(model.Lot{
		ID:             id,
		Title:          id,
		StartingBid:    dec(starting),
		AuctionEndTime: clock.Now().Add(endsIn),
	}))
}

func requireReason(t *testing.T, err error, reason biddingerrors.Reason) {
	t.Helper()
	rej, ok := biddingerrors.AsRejection(err)
	require.True(t, ok, "expected rejection %s, got %v", reason, err)
	require.Equal(t, reason, rej.Reason)
}

func TestBiddingService_Scenario(t *testing.T) {
	clock := newTestClock()
	service, repo, _ := newLiveService(t, clock)
	addLot(t, repo, "L1", 100000, time.Hour, clock)

	bid, err := service.PlaceBid("L1", "A", "105000")
	require.NoError(t, err)
	require.True(t, dec(105000).Equal(bid.Amount))

	current, err := service.GetCurrentBid("L1")
	require.NoError(t, err)
	require.True(t, dec(105000).Equal(current))

	_, err = service.PlaceBid("L1", "B", "105000")
	requireReason(t, err, biddingerrors.ReasonAmountNotHigher)
	rej, _ := biddingerrors.AsRejection(err)
	require.True(t, dec(105000).Equal(rej.CurrentBid))

	_, err = service.PlaceBid("L1", "C", "99000")
	requireReason(t, err, biddingerrors.ReasonAmountNotHigher)

	clock.Advance(time.Hour + time.Second)
	_, err = service.PlaceBid("L1", "D", "110000")
	requireReason(t, err, biddingerrors.ReasonAuctionClosed)

	current, err = service.GetCurrentBid("L1")
	require.NoError(t, err)
	require.True(t, dec(105000).Equal(current))

	bids, err := service.GetBidsForLot("L1")
	require.NoError(t, err)
	require.Len(t, bids, 1)
	require.Equal(t, "A", bids[0].BidderName)
}

func TestBiddingService_ConcurrentBidsSameLot(t *testing.T) {
	for run := 0; run < 20; run++ {
		clock := newTestClock()
		service, repo, _ := newLiveService(t, clock)
		addLot(t, repo, "lot1", 100, time.Hour, clock)

		const bidders = 40
		var wg sync.WaitGroup
		accepted := make(chan model.Bid, bidders)
		start := make(chan struct{})

		for i := 1; i <= bidders; i++ {
			wg.Add(1)
			amount := fmt.Sprintf("%d", 100+i)
			name := fmt.Sprintf("bidder-%d", i)
			go func() {
				defer wg.Done()
				<-start
				bid, err := service.PlaceBid("lot1", name, amount)
				if err != nil {
					requireReason(t, err, biddingerrors.ReasonAmountNotHigher)
					return
				}
				accepted <- bid
			}()
		}
		close(start)
		wg.Wait()
		close(accepted)

		var highest decimal.Decimal
		count := 0
		for bid := range accepted {
			count++
			if bid.Amount.GreaterThan(highest) {
				highest = bid.Amount
			}
		}
		require.Positive(t, count)

		lot, err := repo.GetLot("lot1")
		require.NoError(t, err)
		require.True(t, lot.CurrentBid.Equal(highest), "current bid must equal the highest accepted amount")
		require.Equal(t, count, lot.BidCount)

		bids, err := repo.ListBids("lot1")
		require.NoError(t, err)
		require.Len(t, bids, count)
		for i := len(bids) - 1; i > 0; i-- {
			require.True(t, bids[i-1].Amount.GreaterThan(bids[i].Amount))
			require.True(t, bids[i-1].Timestamp.After(bids[i].Timestamp))
		}
		require.True(t, lot.CurrentBid.Equal(bids[0].Amount))
	}
}

func TestBiddingService_RejectionsLeaveNoTrace(t *testing.T) {
	clock := newTestClock()
	service, repo, registry := newLiveService(t, clock)
	addLot(t, repo, "lot1", 100, time.Minute, clock)

	sub := &collectingSubscriber{id: "watcher"}
	registry.Subscribe(sub, "lot1")

	for _, amount := range []string{"50", "100", "abc", "-1"} {
		_, err := service.PlaceBid("lot1", "x", amount)
		require.Error(t, err)
	}
	_, err := service.PlaceBid("lot1", "", "500")
	require.Error(t, err)

	clock.Advance(time.Minute)
	_, err = service.PlaceBid("lot1", "late", "1000000")
	requireReason(t, err, biddingerrors.ReasonAuctionClosed)

	bids, err := repo.ListBids("lot1")
	require.NoError(t, err)
	require.Empty(t, bids)

	current, err := repo.GetCurrentBid("lot1")
	require.NoError(t, err)
	require.True(t, dec(100).Equal(current))
	require.Empty(t, sub.received())
}

// collectingSubscriber records delivered events
type collectingSubscriber struct {
	id     string
	mu     sync.Mutex
	events []model.BidEvent
}

func (c *collectingSubscriber) ID() string { return c.id }

func (c *collectingSubscriber) Deliver(ev model.BidEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
	return nil
}

func (c *collectingSubscriber) received() []model.BidEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.BidEvent(nil), c.events...)
}

func TestBiddingService_BroadcastToSubscribers(t *testing.T) {
	clock := newTestClock()
	service, repo, registry := newLiveService(t, clock)
	addLot(t, repo, "lot1", 100, time.Hour, clock)
	addLot(t, repo, "lot2", 100, time.Hour, clock)

	early := &collectingSubscriber{id: "early"}
	elsewhere := &collectingSubscriber{id: "elsewhere"}
	registry.Subscribe(early, "lot1")
	registry.Subscribe(elsewhere, "lot2")

	first, err := service.PlaceBid("lot1", "A", "110")
	require.NoError(t, err)

	late := &collectingSubscriber{id: "late"}
	registry.Subscribe(late, "lot1")

	second, err := service.PlaceBid("lot1", "B", "120")
	require.NoError(t, err)

	got := early.received()
	require.Len(t, got, 2)
	require.Equal(t, first.ID, got[0].Bid.ID)
	require.Equal(t, second.ID, got[1].Bid.ID)
	require.True(t, dec(120).Equal(got[1].CurrentBid))

	lateGot := late.received()
	require.Len(t, lateGot, 1, "a late subscriber sees only commits after it joined")
	require.Equal(t, second.ID, lateGot[0].Bid.ID)

	require.Empty(t, elsewhere.received())
}

func TestBiddingService_Queries(t *testing.T) {
	clock := newTestClock()
	service, repo, _ := newLiveService(t, clock)
	addLot(t, repo, "lot-b", 100, 2*time.Hour+15*time.Minute, clock)
	addLot(t, repo, "lot-a", 500, 42*time.Minute, clock)

	for i, amount := range []string{"110", "120", "130"} {
		_, err := service.PlaceBid("lot-b", fmt.Sprintf("bidder-%d", i), amount)
		require.NoError(t, err)
	}

	t.Run("list_lots", func(t *testing.T) {
		lots := service.ListLots()
		require.Len(t, lots, 2)
		require.Equal(t, "lot-a", lots[0].ID)
		require.Equal(t, "42m", lots[0].TimeRemaining)
		require.Equal(t, "lot-b", lots[1].ID)
		require.Equal(t, "2h 15m", lots[1].TimeRemaining)
		require.Equal(t, 3, lots[1].BidCount)
		require.False(t, lots[1].Closed)
	})

	t.Run("get_lot_with_history", func(t *testing.T) {
		detail, err := service.GetLot("lot-b")
		require.NoError(t, err)
		require.Len(t, detail.Bids, 3)
		require.True(t, dec(130).Equal(detail.CurrentBid))
		require.True(t, dec(130).Equal(detail.Bids[0].Amount))
	})

	t.Run("get_lot_missing", func(t *testing.T) {
		_, err := service.GetLot("missing")
		require.ErrorIs(t, err, biddingerrors.ErrLotNotFound)

		_, err = service.GetLot("")
		require.ErrorIs(t, err, biddingerrors.ErrLotNotFound)
	})

	t.Run("bids_for_lot_without_bids", func(t *testing.T) {
		bids, err := service.GetBidsForLot("lot-a")
		require.NoError(t, err)
		require.Empty(t, bids)
	})

	t.Run("bids_for_missing_lot", func(t *testing.T) {
		_, err := service.GetBidsForLot("missing")
		require.ErrorIs(t, err, biddingerrors.ErrLotNotFound)
	})
}
