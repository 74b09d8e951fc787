package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"minesweeper_webapp/internal/game"
	"minesweeper_webapp/internal/logger"
	"minesweeper_webapp/internal/service"
	"minesweeper_webapp/internal/session"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second

	actionTimeout = 5 * time.Second
)

// GameActions is the part of service.GameService the socket drives.
type GameActions interface {
	NewGame(ctx context.Context, userID int64, rows, cols, mines int) (*game.State, error)
	State(ctx context.Context, userID int64) (*game.State, error)
	Reveal(ctx context.Context, userID int64, r, c int) (*game.UpdateResult, error)
	ToggleFlag(ctx context.Context, userID int64, r, c int) (*game.UpdateResult, error)
}

type Client struct {
	ID     string
	UserID int64
	Conn   *websocket.Conn
	Send   chan []byte

	hub   *Hub
	games GameActions
	log   *slog.Logger

	closeOnce sync.Once
	done      chan struct{}
}

func NewClient(userID int64, conn *websocket.Conn, hub *Hub, games GameActions) *Client {
	id := uuid.New().String()
	return &Client{
		ID:     id,
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		hub:    hub,
		games:  games,
		log:    logger.With("conn_id", id, "user_id", userID),
		done:   make(chan struct{}),
	}
}

// Run registers the client and blocks until the connection closes.
func (c *Client) Run() {
	c.hub.Register(c)
	defer c.hub.Unregister(c)

	go c.writePump()

	c.reply(Outbound{Type: MsgReady})
	c.log.Debug("ws client connected")

	c.readPump()
	c.log.Debug("ws client disconnected")
}

func (c *Client) readPump() {
	defer c.close()

	c.Conn.SetReadLimit(4096)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("ws read error", "error", err)
			}
			return
		}
		c.handle(msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case msg := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.log.Warn("ws write error", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handle(raw []byte) {
	var in Inbound
	if err := json.Unmarshal(raw, &in); err != nil {
		c.fail("invalid message")
		return
	}

	ctx, cancel := context.WithTimeout(logger.NewContext(context.Background(), c.log), actionTimeout)
	defer cancel()

	switch in.Type {
	case MsgPing:
		c.reply(Outbound{Type: MsgPong})

	case MsgNew:
		st, err := c.games.NewGame(ctx, c.UserID, in.Rows, in.Cols, in.Mines)
		if err != nil {
			c.failErr(err)
			return
		}
		c.broadcast(Outbound{Type: MsgCreated, Payload: service.Summarize(st)})

	case MsgState:
		st, err := c.games.State(ctx, c.UserID)
		if err != nil {
			c.failErr(err)
			return
		}
		c.reply(Outbound{Type: MsgUpdate, Payload: game.Snapshot(st)})

	case MsgReveal, MsgFlag:
		if in.R == nil || in.C == nil {
			c.fail("r and c are required")
			return
		}

		action := c.games.Reveal
		if in.Type == MsgFlag {
			action = c.games.ToggleFlag
		}

		res, err := action(ctx, c.UserID, *in.R, *in.C)
		if err != nil {
			c.failErr(err)
			return
		}
		c.broadcast(Outbound{Type: MsgUpdate, Payload: res})

	default:
		c.fail("unknown message type")
	}
}

func (c *Client) failErr(err error) {
	switch {
	case errors.Is(err, session.ErrNoGame):
		c.fail("no active game")
	default:
		c.log.Error("ws action failed", "error", err)
		c.fail("internal error")
	}
}

func (c *Client) fail(msg string) {
	c.reply(Outbound{Type: MsgError, Payload: ErrorPayload{Message: msg}})
}

func (c *Client) reply(out Outbound) {
	if b, err := json.Marshal(out); err == nil {
		c.trySend(b)
	}
}

func (c *Client) broadcast(out Outbound) {
	if b, err := json.Marshal(out); err == nil {
		c.hub.Broadcast(c.UserID, b)
	}
}

func (c *Client) trySend(msg []byte) {
	select {
	case <-c.done:
	case c.Send <- msg:
	default:
		c.log.Warn("ws send buffer full, dropping message")
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.done) })
}
