package server

import (
	"net/http"

	bidding "auction-house/internal/biddingService"
	"auction-house/internal/broadcast"
	"auction-house/internal/repository"
	"auction-house/internal/subscription"
	handler "auction-house/services/bidding/handler"
	"auction-house/services/bidding/stream"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
)

// Dependencies are the components the router exposes
type Dependencies struct {
	Service    *bidding.BiddingService
	Registry   *subscription.Registry
	Dispatcher *broadcast.Dispatcher
	Streams    *stream.Server
	TopN       int
}

// NewDependencies wires the admission pipeline, broadcast and websocket server around repo
func NewDependencies(repo repository.AuctionDB, streamOpts stream.Options, topN int, opts ...bidding.Option) Dependencies {
	registry := subscription.NewRegistry()
	dispatcher := broadcast.NewDispatcher(registry)
	service := bidding.NewBiddingService(repo, dispatcher, opts...)

	return Dependencies{
		Service:    service,
		Registry:   registry,
		Dispatcher: dispatcher,
		Streams:    stream.NewServer(registry, service, streamOpts),
		TopN:       topN,
	}
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	biddingHandler := handler.NewBiddingHandler(deps.Service, deps.TopN)

	auctions := router.Group("/api/auctions")
	{
		auctions.GET("", biddingHandler.ListLotsHandler)
		auctions.GET("/:lot_id", biddingHandler.GetLotHandler)
		auctions.GET("/:lot_id/bids", biddingHandler.GetBidsByLotHandler)
		auctions.POST("/:lot_id/bids", biddingHandler.PlaceBidHandler)
		auctions.GET("/:lot_id/current", biddingHandler.GetCurrentBidHandler)
	}

	router.GET("/api/dashboard", biddingHandler.GetDashboardHandler)
	router.GET("/ws", deps.Streams.Handle)
	router.GET("/healthz", healthHandler(deps))

	return router
}

func healthHandler(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.JSONResponse(c, http.StatusOK, gin.H{
			"status":      "ok",
			"subscribers": deps.Registry.Count(),
			"connections": deps.Streams.Open(),
			"broadcast":   deps.Dispatcher.Stats(),
		}, "healthy")
	}
}
