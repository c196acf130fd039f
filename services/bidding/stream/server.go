// Package stream serves the websocket subscription channel. Each connection watches at most
// one lot and receives a bid_update for every bid committed on it while subscribed.
package stream

import (
	"net/http"
	"sync"
	"time"

	"auction-house/internal/subscription"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
)

// Registry is the part of the subscription registry a connection needs
type Registry interface {
	Subscribe(sub subscription.Subscriber, lotID string)
	Unsubscribe(sub subscription.Subscriber)
}

// LotFinder confirms a lot exists before a connection joins it
type LotFinder interface {
	GetCurrentBid(lotID string) (decimal.Decimal, error)
}

// Options tunes connection timeouts and buffers
type Options struct {
	WriteTimeout    time.Duration
	PongTimeout     time.Duration
	PingInterval    time.Duration
	SendBuffer      int
	MaxMessageBytes int64
}

// DefaultOptions matches the configuration defaults
func DefaultOptions() Options {
	return Options{
		WriteTimeout:    5 * time.Second,
		PongTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		SendBuffer:      64,
		MaxMessageBytes: 4096,
	}
}

// Server upgrades HTTP requests and tracks the open connections
type Server struct {
	registry Registry
	lots     LotFinder
	opts     Options
	upgrader websocket.Upgrader
	validate *validator.Validate

	mu    sync.Mutex
	conns map[string]*Conn
}

// NewServer creates a websocket server backed by registry and lots
func NewServer(registry Registry, lots LotFinder, opts Options) *Server {
	return &Server{
		registry: registry,
		lots:     lots,
		opts:     opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		validate: validator.New(),
		conns:    make(map[string]*Conn),
	}
}

// Handle handles GET /ws
func (s *Server) Handle(c *gin.Context) {
	ws, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader has already written an HTTP error
		utils.Warn("stream: upgrade failed", map[string]any{"error": err.Error(), "remote": c.ClientIP()})
		return
	}

	conn := newConn(s, ws)
	s.track(conn)
	utils.Info("stream: connection opened", map[string]any{"conn_id": conn.ID(), "remote": c.ClientIP()})

	go conn.writeLoop()
	conn.readLoop()
}

func (s *Server) track(c *Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[c.ID()] = c
}

func (s *Server) forget(c *Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, c.ID())
}

// Open returns the number of open connections
func (s *Server) Open() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// CloseAll closes every open connection. Hijacked connections are not closed by http.Server.Shutdown.
func (s *Server) CloseAll() {
	s.mu.Lock()
	conns := make([]*Conn, 0, len(s.conns))
	for _, c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		c.shutdown("server shutting down")
	}
}
