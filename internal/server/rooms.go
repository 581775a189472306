package server

import (
	"errors"
	rand "math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/sagythepigy/LAN-Poker/internal/game"
	"github.com/sagythepigy/LAN-Poker/internal/randutil"
	"github.com/sagythepigy/LAN-Poker/internal/stats"
)

// ErrRoomNotFound rejects an action or snapshot request against a room id
// with no live room.
var ErrRoomNotFound = errors.New("room not found")

// Rooms is the room registry. Rooms are created on first join and destroyed
// when the last connected seat leaves. Lock order is registry before room;
// a room never calls back into the registry.
type Rooms struct {
	mu    sync.Mutex
	rooms map[string]*game.Room

	cfg      game.Config
	logger   *log.Logger
	clock    quartz.Clock
	recorder stats.Recorder
	notifier game.Notifier

	// seed, when set, makes every room's shuffle deterministic: room n is
	// seeded with seed+n in creation order.
	seed    *int64
	created int64
}

// NewRooms creates an empty registry. Every room it creates shares the same
// table rules, clock, and stats recorder. The notifier is wired afterwards
// with SetNotifier, before the transport accepts connections.
func NewRooms(cfg game.Config, logger *log.Logger, clock quartz.Clock, recorder stats.Recorder, seed *int64) *Rooms {
	return &Rooms{
		rooms:    make(map[string]*game.Room),
		cfg:      cfg,
		logger:   logger,
		clock:    clock,
		recorder: recorder,
		seed:     seed,
	}
}

// SetNotifier wires the snapshot sink that new rooms broadcast through.
func (r *Rooms) SetNotifier(n game.Notifier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifier = n
}

// Join seats the player in the named room, creating the room on first join.
func (r *Rooms) Join(roomID, seatID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	if !ok {
		room = game.NewRoom(roomID, r.cfg, r.logger, r.clock, r.nextRNG(), r.notifier, r.recorder)
		r.rooms[roomID] = room
		r.logger.Info("room created", "room", roomID, "rooms", len(r.rooms))
	}
	return room.Join(seatID, name)
}

// Act applies a betting action in the named room.
func (r *Rooms) Act(roomID, seatID string, action game.Action, amount int) error {
	r.mu.Lock()
	room, ok := r.rooms[roomID]
	r.mu.Unlock()
	if !ok {
		return ErrRoomNotFound
	}
	return room.Act(seatID, action, amount)
}

// Leave removes the seat from the named room and destroys the room once no
// connected seats remain.
func (r *Rooms) Leave(roomID, seatID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return
	}
	if empty := room.Leave(seatID); empty {
		delete(r.rooms, roomID)
		room.Close()
		r.logger.Info("room destroyed", "room", roomID, "rooms", len(r.rooms))
	}
}

// Snapshot returns the named room's state as visible to the given seat.
func (r *Rooms) Snapshot(roomID, seatID string) (*game.Snapshot, error) {
	r.mu.Lock()
	room, ok := r.rooms[roomID]
	r.mu.Unlock()
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room.Snapshot(seatID), nil
}

// Len reports the number of live rooms.
func (r *Rooms) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms)
}

// CloseAll tears down every room. Called on server shutdown.
func (r *Rooms) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, room := range r.rooms {
		room.Close()
		delete(r.rooms, id)
	}
}

// nextRNG returns the shuffle source for a new room. Caller holds the
// registry lock.
func (r *Rooms) nextRNG() *rand.Rand {
	if r.seed == nil {
		return randutil.FromClock()
	}
	rng := randutil.New(*r.seed + r.created)
	r.created++
	return rng
}
