package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/sagythepigy/LAN-Poker/internal/game"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// ErrConnectionClosed reports a send against a connection that is gone.
var ErrConnectionClosed = websocket.ErrCloseSent

// Connection wraps one WebSocket client: a seat identity minted at upgrade
// time, the room it occupies, and the read/write pumps.
type Connection struct {
	conn   *websocket.Conn
	send   chan *Message
	seatID string
	rooms  *Rooms

	mu     sync.RWMutex
	name   string
	roomID string

	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewConnection wraps an upgraded WebSocket connection.
func NewConnection(conn *websocket.Conn, seatID string, rooms *Rooms, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		conn:   conn,
		send:   make(chan *Message, 256),
		seatID: seatID,
		rooms:  rooms,
		logger: logger.WithPrefix("conn").With("seat", seatID),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins handling the connection.
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues a message for the client. A client whose send buffer is
// full is dropped rather than allowed to stall the table.
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Send raced with Close; expected during shutdown.
			c.logger.Debug("send on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// RoomID returns the room this connection is seated in, if any.
func (c *Connection) RoomID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roomID
}

func (c *Connection) setRoom(roomID, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roomID = roomID
	c.name = name
}

// leaveRoom detaches the connection from its room, if it has one. Used for
// both an explicit leave message and a disconnect.
func (c *Connection) leaveRoom() {
	c.mu.Lock()
	roomID := c.roomID
	c.roomID = ""
	c.mu.Unlock()

	if roomID != "" {
		c.rooms.Leave(roomID, c.seatID)
	}
}

// readPump handles incoming messages from the client.
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("websocket error", "error", err)
			}
			return
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client.
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage routes one client message.
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("received message", "type", msg.Type)

	switch msg.Type {
	case MessageTypeJoin:
		var data JoinData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "failed to parse join data")
			return
		}
		c.handleJoin(data)

	case MessageTypeAction:
		var data ActionData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "failed to parse action data")
			return
		}
		c.handleAction(data)

	case MessageTypeLeave:
		c.handleLeave()

	default:
		c.sendError("unknown_message_type", "unknown message type: "+msg.Type.String())
	}
}

func (c *Connection) handleJoin(data JoinData) {
	c.logger.Info("join request", "room", data.RoomID, "name", data.Name)

	if data.RoomID == "" || data.Name == "" {
		c.sendError("invalid_join", "room id and name are required")
		return
	}
	if c.RoomID() != "" {
		c.sendError("already_joined", "connection is already seated")
		return
	}

	if err := c.rooms.Join(data.RoomID, c.seatID, data.Name); err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}
	c.setRoom(data.RoomID, data.Name)

	response, _ := NewMessage(MessageTypeJoined, JoinedData{
		RoomID: data.RoomID,
		SeatID: c.seatID,
	})
	_ = c.SendMessage(response)
}

func (c *Connection) handleAction(data ActionData) {
	roomID := c.RoomID()
	if roomID == "" {
		c.sendError("not_joined", "join a room before acting")
		return
	}

	action, err := game.ParseAction(data.Action)
	if err != nil {
		c.sendError("invalid_action", err.Error())
		return
	}

	if err := c.rooms.Act(roomID, c.seatID, action, data.Amount); err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}
	// No direct response: the room broadcasts the resulting state.
}

func (c *Connection) handleLeave() {
	roomID := c.RoomID()
	if roomID == "" {
		c.sendError("not_joined", "connection is not seated")
		return
	}
	c.leaveRoom()

	response, _ := NewMessage(MessageTypeLeft, map[string]string{"roomId": roomID})
	_ = c.SendMessage(response)
}

// sendError reports a rejected message back to the client.
func (c *Connection) sendError(code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("failed to create error message", "error", err)
		return
	}
	_ = c.SendMessage(errorMsg)
}
