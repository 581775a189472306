package game

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/coder/quartz"

	"github.com/sagythepigy/LAN-Poker/internal/deck"
	"github.com/sagythepigy/LAN-Poker/internal/randutil"
)

func seatView(t *testing.T, snap *Snapshot, name string) SeatView {
	t.Helper()
	for _, v := range snap.Seats {
		if v.Name == name {
			return v
		}
	}
	t.Fatalf("seat %s not in snapshot", name)
	return SeatView{}
}

func allHidden(cards []CardView) bool {
	for _, c := range cards {
		if !c.Hidden || c.Rank != "" || c.Suit != "" {
			return false
		}
	}
	return len(cards) > 0
}

func allVisible(cards []CardView) bool {
	for _, c := range cards {
		if c.Hidden || c.Rank == "" || c.Suit == "" {
			return false
		}
	}
	return len(cards) > 0
}

func TestSnapshotRedactsOpponents(t *testing.T) {
	r, _ := newTestRoom(t, testConfig(2), "alice", "bob")

	snap := r.Snapshot(seatID("alice"))

	if snap.Street != "preflop" {
		t.Errorf("street = %q, want preflop", snap.Street)
	}
	if snap.Pot != 30 || snap.CurrentBet != 20 {
		t.Errorf("pot/bet = %d/%d, want 30/20", snap.Pot, snap.CurrentBet)
	}
	if snap.You != seatID("alice") {
		t.Errorf("you = %q, want %q", snap.You, seatID("alice"))
	}
	if snap.DealerSeat != seatID("alice") {
		t.Errorf("dealerSeat = %q, want alice", snap.DealerSeat)
	}
	if snap.ActiveSeat != seatID("alice") {
		t.Errorf("activeSeat = %q, want alice", snap.ActiveSeat)
	}
	if len(snap.Community) != 0 {
		t.Errorf("community = %d cards preflop", len(snap.Community))
	}

	me := seatView(t, snap, "alice")
	if !allVisible(me.Cards) || len(me.Cards) != 2 {
		t.Errorf("own cards should be visible: %+v", me.Cards)
	}
	them := seatView(t, snap, "bob")
	if !allHidden(them.Cards) || len(them.Cards) != 2 {
		t.Errorf("opponent cards should be hidden placeholders: %+v", them.Cards)
	}
}

func TestSnapshotSpectatorSeesNothing(t *testing.T) {
	r, _ := newTestRoom(t, testConfig(2), "alice", "bob")

	snap := r.Snapshot("")
	for _, name := range []string{"alice", "bob"} {
		if v := seatView(t, snap, name); !allHidden(v.Cards) {
			t.Errorf("%s's cards leaked to a spectator", name)
		}
	}
}

func TestSnapshotWaitingRoom(t *testing.T) {
	r, _ := newTestRoom(t, testConfig(2), "alice")

	snap := r.Snapshot(seatID("alice"))
	if snap.Street != "waiting" {
		t.Errorf("street = %q, want waiting", snap.Street)
	}
	if snap.DealerSeat != "" || snap.ActiveSeat != "" {
		t.Errorf("no dealer or turn while waiting, got %q/%q", snap.DealerSeat, snap.ActiveSeat)
	}
	if snap.HandNum != 0 {
		t.Errorf("handNum = %d, want 0", snap.HandNum)
	}
}

func TestSnapshotRevealsShowdown(t *testing.T) {
	r := NewRoom("test-room", testConfig(2), testLogger(), quartz.NewMock(t), randutil.New(1), nil, nil)
	r.seats = []*Seat{
		{ID: seatID("alice"), Name: "alice", HoleCards: deck.MustParseCards("AsAh")},
		{ID: seatID("bob"), Name: "bob", HoleCards: deck.MustParseCards("3d4d")},
	}
	r.community = deck.MustParseCards("KhQd9s5c2h")
	r.street = River
	r.pot = 200
	r.handNum = 1
	r.runShowdown()

	snap := r.Snapshot("")
	if snap.Street != "round_complete" {
		t.Fatalf("street = %q, want round_complete", snap.Street)
	}
	for _, name := range []string{"alice", "bob"} {
		v := seatView(t, snap, name)
		if !allVisible(v.Cards) {
			t.Errorf("%s's cards should show at showdown: %+v", name, v.Cards)
		}
		if v.HandRank == "" {
			t.Errorf("%s missing a hand rank", name)
		}
	}
	if v := seatView(t, snap, "alice"); v.HandRank != "One Pair" || !v.Winner {
		t.Errorf("alice rank=%q winner=%v, want One Pair/true", v.HandRank, v.Winner)
	}
	if len(snap.Community) != 5 {
		t.Errorf("community = %d cards, want 5", len(snap.Community))
	}
}

func TestSnapshotNeverRevealsFolded(t *testing.T) {
	r, _ := newTestRoom(t, testConfig(3), "alice", "bob", "carol")

	mustAct(t, r, "alice", Fold, 0)
	mustAct(t, r, "bob", Fold, 0)
	if r.street != RoundComplete {
		t.Fatalf("street = %s, want round_complete", r.street)
	}

	snap := r.Snapshot("")
	for _, name := range []string{"alice", "bob"} {
		if v := seatView(t, snap, name); !allHidden(v.Cards) {
			t.Errorf("folded %s's cards leaked", name)
		}
	}
	carol := seatView(t, snap, "carol")
	if !allVisible(carol.Cards) {
		t.Errorf("winner's cards should show at the end of the hand: %+v", carol.Cards)
	}
	if !carol.Winner {
		t.Error("carol should be flagged the winner")
	}
	if carol.HandRank != "" {
		t.Errorf("uncontested winner has no evaluated rank, got %q", carol.HandRank)
	}
}

func TestSnapshotJSONShape(t *testing.T) {
	r, _ := newTestRoom(t, testConfig(2), "alice", "bob")

	raw, err := json.Marshal(r.Snapshot(seatID("alice")))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(raw)
	for _, key := range []string{
		`"roomId":"test-room"`,
		`"street":"preflop"`,
		`"pot":30`,
		`"currentBet":20`,
		`"minRaise":20`,
		`"community":[]`,
		`"hidden":true`,
	} {
		if !strings.Contains(s, key) {
			t.Errorf("snapshot JSON missing %s: %s", key, s)
		}
	}
}
