package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/sagythepigy/LAN-Poker/internal/randutil"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func testConfig(minPlayers int) Config {
	cfg := DefaultConfig()
	cfg.MinPlayers = minPlayers
	return cfg
}

// newTestRoom seats the named players through the public Join path. The
// hand deals once MinPlayers have joined, so tests wanting everyone dealt in
// pass a config with MinPlayers = len(names).
func newTestRoom(t *testing.T, cfg Config, names ...string) (*Room, *quartz.Mock) {
	t.Helper()
	clock := quartz.NewMock(t)
	r := NewRoom("test-room", cfg, testLogger(), clock, randutil.New(42), nil, nil)
	for _, n := range names {
		if err := r.Join(seatID(n), n); err != nil {
			t.Fatalf("join %s: %v", n, err)
		}
	}
	return r, clock
}

// newHandRoom seats players with specific stacks and deals the first hand
// directly, bypassing the join flow.
func newHandRoom(t *testing.T, cfg Config, names []string, chips []int) *Room {
	t.Helper()
	r := NewRoom("test-room", cfg, testLogger(), quartz.NewMock(t), randutil.New(7), nil, nil)
	for i, n := range names {
		r.seats = append(r.seats, &Seat{ID: seatID(n), Name: n, Chips: chips[i]})
	}
	r.startHand()
	return r
}

func seatID(name string) string {
	return "id-" + name
}

func mustAct(t *testing.T, r *Room, name string, action Action, amount int) {
	t.Helper()
	if err := r.Act(seatID(name), action, amount); err != nil {
		t.Fatalf("%s %s %d: %v", name, action, amount, err)
	}
}

func seat(t *testing.T, r *Room, name string) *Seat {
	t.Helper()
	s, _ := r.seatByID(seatID(name))
	if s == nil {
		t.Fatalf("seat %s not found", name)
	}
	return s
}

// chipTotal sums the pot and every stack; it must never change within a
// hand.
func chipTotal(r *Room) int {
	total := r.pot
	for _, s := range r.seats {
		total += s.Chips
	}
	return total
}

func assertConservation(t *testing.T, r *Room, want int) {
	t.Helper()
	if got := chipTotal(r); got != want {
		t.Errorf("chips leaked: pot + stacks = %d, want %d", got, want)
	}
}
