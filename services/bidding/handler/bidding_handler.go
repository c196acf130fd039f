package handler

import (
	"fmt"
	"net/http"
	"strconv"

	model "auction-house/internal/models"
	"auction-house/services/bidding/helpers"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mock_bidding_service.go -package=handler auction-house/services/bidding/handler BiddingServiceInterface

type BiddingServiceInterface interface {
	PlaceBid(lotID, bidderName, amount string) (model.Bid, error)
	ListLots() []model.LotSummary
	GetLot(lotID string) (model.LotDetail, error)
	GetBidsForLot(lotID string) ([]model.Bid, error)
	GetCurrentBid(lotID string) (decimal.Decimal, error)
	GetDashboard(topN int) model.DashboardStats
}

type BiddingHandler struct {
	service     BiddingServiceInterface
	defaultTopN int
}

func NewBiddingHandler(service BiddingServiceInterface, defaultTopN int) *BiddingHandler {
	return &BiddingHandler{service: service, defaultTopN: defaultTopN}
}

// PlaceBidHandler handles POST /api/auctions/:lot_id/bids
func (h *BiddingHandler) PlaceBidHandler(c *gin.Context) {
	lotID := c.Param("lot_id")

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.service.PlaceBid(lotID, req.BidderName, string(req.Amount))
	if err != nil {
		status, _ := helpers.RespondError(c, err)
		fields := map[string]any{
			"handler":     "PlaceBidHandler",
			"lot_id":      lotID,
			"bidder_name": req.BidderName,
			"amount":      string(req.Amount),
			"error":       err.Error(),
		}
		if status >= http.StatusInternalServerError {
			utils.Error("PlaceBidHandler: failed to place bid", fields)
		} else {
			utils.Info("PlaceBidHandler: bid rejected", fields)
		}
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewBidResponse(bid), "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"bid_id":      bid.ID,
		"lot_id":      bid.LotID,
		"bidder_name": bid.BidderName,
		"amount":      bid.Amount.String(),
	})
}

// ListLotsHandler handles GET /api/auctions
func (h *BiddingHandler) ListLotsHandler(c *gin.Context) {
	lots := h.service.ListLots()
	if lots == nil {
		lots = []model.LotSummary{}
	}

	utils.JSONResponse(c, http.StatusOK, lots, "lots retrieved successfully")
	helpers.LogSuccess("ListLotsHandler", "lots retrieved successfully", map[string]any{
		"count": len(lots),
	})
}

// GetLotHandler handles GET /api/auctions/:lot_id
func (h *BiddingHandler) GetLotHandler(c *gin.Context) {
	lotID := c.Param("lot_id")
	lot, err := h.service.GetLot(lotID)
	if err != nil {
		helpers.RespondError(c, err)
		utils.Warn("GetLotHandler: error retrieving lot", map[string]any{"lot_id": lotID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, lot, "lot retrieved successfully")
	helpers.LogSuccess("GetLotHandler", "lot retrieved successfully", map[string]any{
		"lot_id":    lotID,
		"bid_count": len(lot.Bids),
	})
}

// GetBidsByLotHandler handles GET /api/auctions/:lot_id/bids
func (h *BiddingHandler) GetBidsByLotHandler(c *gin.Context) {
	lotID := c.Param("lot_id")
	bids, err := h.service.GetBidsForLot(lotID)
	if err != nil {
		helpers.RespondError(c, err)
		utils.Warn("GetBidsByLotHandler: error retrieving bids", map[string]any{"lot_id": lotID, "error": err.Error()})
		return
	}

	if bids == nil {
		bids = []model.Bid{}
	}

	utils.JSONResponse(c, http.StatusOK, bids, "bids retrieved successfully")
	helpers.LogSuccess("GetBidsByLotHandler", "bids retrieved successfully", map[string]any{
		"lot_id": lotID,
		"count":  len(bids),
	})
}

// GetCurrentBidHandler handles GET /api/auctions/:lot_id/current
func (h *BiddingHandler) GetCurrentBidHandler(c *gin.Context) {
	lotID := c.Param("lot_id")
	current, err := h.service.GetCurrentBid(lotID)
	if err != nil {
		helpers.RespondError(c, err)
		utils.Warn("GetCurrentBidHandler: error retrieving current bid", map[string]any{"lot_id": lotID, "error": err.Error()})
		return
	}

	resp := helpers.CurrentBidResponse{LotID: lotID, CurrentBid: current.StringFixed(2)}
	utils.JSONResponse(c, http.StatusOK, resp, "current bid retrieved successfully")
}

// GetDashboardHandler handles GET /api/dashboard?top=N
func (h *BiddingHandler) GetDashboardHandler(c *gin.Context) {
	topN := h.defaultTopN
	if raw := c.Query("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			helpers.HandleBindError(c, "GetDashboardHandler", fmt.Errorf("top must be a positive integer, got %q", raw))
			return
		}
		topN = n
	}

	stats := h.service.GetDashboard(topN)
	utils.JSONResponse(c, http.StatusOK, stats, "dashboard retrieved successfully")
	helpers.LogSuccess("GetDashboardHandler", "dashboard retrieved successfully", map[string]any{
		"total_bids": stats.TotalBids,
		"lot_count":  stats.LotCount,
	})
}
