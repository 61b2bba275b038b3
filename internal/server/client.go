package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/herdsync/herdsync/internal/core/observability/log"
	"github.com/herdsync/herdsync/internal/core/world"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

const (
	writeWait      = 5 * time.Second
	sendBufferSize = 8
)

// inMessage is anything a renderer client sends back: key state and
// the play/pause/restart controls.
type inMessage struct {
	Type   string `json:"type"`
	Up     bool   `json:"up,omitempty"`
	Down   bool   `json:"down,omitempty"`
	Left   bool   `json:"left,omitempty"`
	Right  bool   `json:"right,omitempty"`
	Paused bool   `json:"paused,omitempty"`
}

type outMessage struct {
	Type     string          `json:"type"`
	Snapshot *world.Snapshot `json:"snapshot,omitempty"`
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	log  log.Log
}

// trySend queues a frame for the client, dropping it when the buffer is
// full. A renderer that falls behind skips frames; the tick loop never
// waits.
func (c *client) trySend(data []byte) {
	select {
	case c.send <- data:
	default:
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", log.Error("err", err))
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
		log:  s.log.With(log.String("client", conn.RemoteAddr().String())),
	}
	s.clients.Store(c.id, c)
	c.log.Info("renderer connected", log.String("session", c.id))

	go c.writePump()
	s.readPump(c)
}

func (s *Server) readPump(c *client) {
	defer func() {
		s.clients.Delete(c.id)
		close(c.done)
		_ = c.conn.Close()
		c.log.Info("renderer disconnected", log.String("session", c.id))
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg inMessage
		if err = json.Unmarshal(data, &msg); err != nil {
			c.log.Warn("bad client message", log.Error("err", err))
			continue
		}
		s.dispatch(msg)
	}
}

func (s *Server) dispatch(msg inMessage) {
	switch msg.Type {
	case "input":
		s.setInput(world.Input{Up: msg.Up, Down: msg.Down, Left: msg.Left, Right: msg.Right})
	case "pause":
		s.sim.SetPaused(msg.Paused)
	case "restart":
		s.sim.Reset(context.Background())
	case "next":
		s.sim.NextLevel(context.Background())
	default:
		s.log.Debug("unknown message type", log.String("type", msg.Type))
	}
}

func (c *client) writePump() {
	for {
		select {
		case <-c.done:
			return
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}
}
