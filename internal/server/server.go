package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/sagythepigy/LAN-Poker/internal/game"
	"github.com/sagythepigy/LAN-Poker/internal/identity"
)

// Server is the WebSocket front end: it upgrades connections, mints their
// seat identities, and routes room snapshots back out. It is the registry's
// notifier.
//
// The seat map lock is never held across a room or registry call; rooms
// broadcast under their own lock through Deliver, which only reads the seat
// map and never blocks.
type Server struct {
	addr     string
	upgrader websocket.Upgrader
	rooms    *Rooms
	logger   *log.Logger

	mu    sync.RWMutex
	conns map[string]*Connection

	register   chan *Connection
	unregister chan *Connection

	ctx    context.Context
	cancel context.CancelFunc

	httpServer *http.Server
}

var _ game.Notifier = (*Server)(nil)

// NewServer creates a WebSocket server over the given room registry. Callers
// wire it back into the registry with rooms.SetNotifier before starting.
func NewServer(addr string, logger *log.Logger, rooms *Rooms) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// LAN deployment: clients connect from arbitrary origins.
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		rooms:      rooms,
		logger:     logger.WithPrefix("server"),
		conns:      make(map[string]*Connection),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Handler returns the HTTP routes: /ws for the game protocol and /health
// for probes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start runs the connection lifecycle loop and serves HTTP until Shutdown.
func (s *Server) Start() error {
	go s.run()

	s.httpServer = &http.Server{Addr: s.addr, Handler: s.Handler()}
	s.logger.Info("listening", "addr", s.addr)
	if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the listener, drops every connection, and tears down all
// rooms.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down")

	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}
	s.cancel()

	s.mu.Lock()
	conns := make([]*Connection, 0, len(s.conns))
	for _, c := range s.conns {
		conns = append(conns, c)
	}
	s.conns = make(map[string]*Connection)
	s.mu.Unlock()

	for _, c := range conns {
		_ = c.Close()
	}
	s.rooms.CloseAll()
	return err
}

// Deliver pushes a state snapshot to the connection holding the seat.
// Called by rooms under their own lock: it must not block and must not call
// back into a room.
func (s *Server) Deliver(seatID string, snap *game.Snapshot) {
	s.mu.RLock()
	conn := s.conns[seatID]
	s.mu.RUnlock()
	if conn == nil {
		return
	}

	msg, err := NewMessage(MessageTypeState, snap)
	if err != nil {
		s.logger.Error("failed to encode snapshot", "error", err)
		return
	}
	_ = conn.SendMessage(msg)
}

// ConnCount reports the number of registered connections.
func (s *Server) ConnCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conns)
}

// run handles connection registration. Departing connections leave their
// room only after the seat map lock is released.
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.conns[conn.seatID] = conn
			total := len(s.conns)
			s.mu.Unlock()
			s.logger.Info("client connected", "seat", conn.seatID, "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			_, known := s.conns[conn.seatID]
			if known {
				delete(s.conns, conn.seatID)
			}
			total := len(s.conns)
			s.mu.Unlock()

			if known {
				conn.leaveRoom()
				_ = conn.Close()
				s.logger.Info("client disconnected", "seat", conn.seatID, "total", total)
			}

		case <-s.ctx.Done():
			return
		}
	}
}

// handleWebSocket upgrades the request and registers the connection under a
// freshly minted seat identity.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, identity.New(), s.rooms, s.logger)
	select {
	case s.register <- client:
	case <-s.ctx.Done():
		_ = client.Close()
		return
	}
	client.Start()

	go func() {
		<-client.ctx.Done()
		select {
		case s.unregister <- client:
		case <-s.ctx.Done():
		}
	}()
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}
