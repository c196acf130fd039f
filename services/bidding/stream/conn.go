package stream

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"auction-house/internal/biddingerrors"
	model "auction-house/internal/models"
	"auction-house/utils"

	"github.com/gorilla/websocket"
)

var (
	// ErrSubscriberSlow is returned by Deliver when the outbound queue is full; the connection is closed
	ErrSubscriberSlow = errors.New("subscriber outbound queue full")
	// ErrConnClosed is returned by Deliver after the connection has been closed
	ErrConnClosed = errors.New("connection closed")
)

// Conn is one websocket client. It implements subscription.Subscriber.
// Only the write loop writes to the socket; everything else goes through the send queue.
type Conn struct {
	id     string
	ws     *websocket.Conn
	server *Server

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newConn(s *Server, ws *websocket.Conn) *Conn {
	return &Conn{
		id:     utils.GenerateID(),
		ws:     ws,
		server: s,
		send:   make(chan []byte, s.opts.SendBuffer),
		done:   make(chan struct{}),
	}
}

// ID returns the connection identifier
func (c *Conn) ID() string {
	return c.id
}

// Deliver queues a bid update without blocking
func (c *Conn) Deliver(event model.BidEvent) error {
	payload, err := json.Marshal(newBidUpdate(event))
	if err != nil {
		return fmt.Errorf("stream: encode bid update: %w", err)
	}
	return c.enqueue(payload)
}

func (c *Conn) enqueue(payload []byte) error {
	select {
	case <-c.done:
		return ErrConnClosed
	default:
	}

	select {
	case c.send <- payload:
		return nil
	default:
		c.shutdown("outbound queue full")
		return ErrSubscriberSlow
	}
}

func (c *Conn) reply(v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		utils.Error("stream: failed to encode reply", map[string]any{"conn_id": c.id, "error": err.Error()})
		return
	}
	if err := c.enqueue(payload); err != nil {
		utils.Warn("stream: reply dropped", map[string]any{"conn_id": c.id, "error": err.Error()})
	}
}

func (c *Conn) replyError(format string, args ...any) {
	c.reply(ErrorMessage{Type: TypeError, Message: fmt.Sprintf(format, args...)})
}

// shutdown unregisters the connection and stops the write loop, which closes the socket
func (c *Conn) shutdown(reason string) {
	c.closeOnce.Do(func() {
		close(c.done)
		c.server.registry.Unsubscribe(c)
		c.server.forget(c)
		utils.Info("stream: connection closed", map[string]any{"conn_id": c.id, "reason": reason})
	})
}

func (c *Conn) readLoop() {
	reason := "client disconnected"
	defer func() { c.shutdown(reason) }()

	opts := c.server.opts
	c.ws.SetReadLimit(opts.MaxMessageBytes)
	_ = c.ws.SetReadDeadline(time.Now().Add(opts.PongTimeout))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(opts.PongTimeout))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				reason = err.Error()
			}
			return
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(opts.PongTimeout))
		c.handle(data)
	}
}

func (c *Conn) handle(data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.replyError("invalid message: %v", err)
		return
	}
	if err := c.server.validate.Struct(msg); err != nil {
		c.replyError("invalid message: %v", err)
		return
	}

	switch msg.Type {
	case TypeJoinLot:
		c.join(msg.LotID)
	case TypeLeaveLot:
		c.server.registry.Unsubscribe(c)
		c.reply(Ack{Type: TypeLeft})
		utils.Debug("stream: left lot", map[string]any{"conn_id": c.id})
	}
}

// join switches the subscription to lotID. An unknown lot keeps the previous subscription.
// The ack's current bid is read after subscribing, so a bid committed during the join is either
// reflected in the ack or delivered as an update.
func (c *Conn) join(lotID string) {
	if _, err := c.server.lots.GetCurrentBid(lotID); err != nil {
		c.joinFailed(lotID, err)
		return
	}

	c.server.registry.Subscribe(c, lotID)
	select {
	case <-c.done:
		// closed while joining; shutdown may have unsubscribed before we subscribed
		c.server.registry.Unsubscribe(c)
		return
	default:
	}

	current, err := c.server.lots.GetCurrentBid(lotID)
	if err != nil {
		c.joinFailed(lotID, err)
		return
	}
	c.reply(Ack{Type: TypeJoined, LotID: lotID, CurrentBid: current.StringFixed(2)})
	utils.Debug("stream: joined lot", map[string]any{"conn_id": c.id, "lot_id": lotID})
}

func (c *Conn) joinFailed(lotID string, err error) {
	if errors.Is(err, biddingerrors.ErrLotNotFound) {
		c.replyError("lot %s not found", lotID)
		return
	}
	utils.Error("stream: failed to look up lot", map[string]any{"conn_id": c.id, "lot_id": lotID, "error": err.Error()})
	c.replyError("failed to join lot %s", lotID)
}

func (c *Conn) writeLoop() {
	opts := c.server.opts
	ticker := time.NewTicker(opts.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(opts.WriteTimeout))
			return
		case payload := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(opts.WriteTimeout))
			if err := c.ws.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.shutdown("write failed: " + err.Error())
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(opts.WriteTimeout))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.shutdown("ping failed: " + err.Error())
				return
			}
		}
	}
}
