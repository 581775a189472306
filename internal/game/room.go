package game

import (
	rand "math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/sagythepigy/LAN-Poker/internal/deck"
	"github.com/sagythepigy/LAN-Poker/internal/stats"
)

// Notifier pushes a state snapshot to one seat. Implementations must not
// block and must not call back into the room: the room invokes Deliver while
// holding its own lock. Delivery failures are the notifier's problem.
type Notifier interface {
	Deliver(seatID string, snap *Snapshot)
}

// Room owns one table: its seats, deck, pot, and street state machine. All
// exported methods serialize through the room mutex.
type Room struct {
	mu sync.Mutex

	id     string
	cfg    Config
	logger *log.Logger
	clock  quartz.Clock
	rng    *rand.Rand

	notifier Notifier
	recorder stats.Recorder

	seats     []*Seat
	street    Street
	deck      *deck.Deck
	community []deck.Card

	pot        int
	currentBet int
	minRaise   int

	dealerIdx   int
	activeIdx   int
	returnToIdx int
	roundDone   bool

	handNum      int
	restartTimer *quartz.Timer
	closed       bool

	gameRef int64
	handRef int64
}

// NewRoom creates an empty room in the waiting state. The clock drives the
// between-hands restart timer; the rng drives deck shuffles. A nil recorder
// is replaced with the no-op recorder; a nil notifier disables broadcasts.
func NewRoom(id string, cfg Config, logger *log.Logger, clock quartz.Clock, rng *rand.Rand, notifier Notifier, recorder stats.Recorder) *Room {
	if recorder == nil {
		recorder = stats.NewNopRecorder()
	}
	return &Room{
		id:        id,
		cfg:       cfg,
		logger:    logger.WithPrefix("room").With("id", id),
		clock:     clock,
		rng:       rng,
		notifier:  notifier,
		recorder:  recorder,
		street:    Waiting,
		activeIdx: -1,
	}
}

// ID returns the room identifier.
func (r *Room) ID() string {
	return r.id
}

// Join seats a player. Joining a room mid-hand seats the player sitting out
// until the next deal; joining a waiting room with enough funded seats starts
// a hand.
func (r *Room) Join(seatID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.seats {
		if s.ID == seatID {
			return nil // already seated
		}
	}
	if len(r.seats) >= r.cfg.MaxPlayers {
		return ErrRoomFull
	}
	for _, s := range r.seats {
		if s.Name == name {
			return ErrNameTaken
		}
	}

	seat := &Seat{ID: seatID, Name: name, Chips: r.cfg.StartingChips}
	if r.street != Waiting {
		seat.SittingOut = true
	}
	r.seats = append(r.seats, seat)
	r.logger.Info("player joined", "name", name, "seats", len(r.seats))

	if r.street == Waiting && r.fundedSeats() >= r.cfg.MinPlayers {
		r.startHand()
	}
	r.notifyAll()
	return nil
}

// Leave removes a player. Between hands the seat is removed outright; during
// a hand it is flagged absent and auto-folded so play continues, then purged
// at the next hand boundary. The return value reports whether the room now
// has no connected seats and should be torn down.
func (r *Room) Leave(seatID string) (empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seat, idx := r.seatByID(seatID)
	if seat == nil {
		return r.connectedSeats() == 0
	}

	if r.street == Waiting || r.street == RoundComplete {
		r.removeSeat(idx)
		r.logger.Info("player left", "name", seat.Name, "seats", len(r.seats))
	} else {
		seat.Absent = true
		r.logger.Info("player left mid-hand", "name", seat.Name)
		if seat.Live() {
			r.forceFold(idx)
		}
	}

	r.notifyAll()
	return r.connectedSeats() == 0
}

// Close tears the room down: the restart timer is stopped (a timer that
// already fired becomes a no-op) and the game-end record is written. The
// registry calls Close after the last connected seat leaves.
func (r *Room) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	r.stopRestartTimer()
	if r.gameRef != 0 {
		r.recorder.RecordGameEnd(r.gameRef, r.handNum)
	}
	r.logger.Info("room closed", "hands", r.handNum)
}

// Snapshot builds the room state as visible to recipient. An empty recipient
// produces a spectator view with every hole card hidden.
func (r *Room) Snapshot(recipient string) *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buildSnapshot(recipient)
}

// startHand deals a new hand: purges departed seats, flags unfunded seats
// sitting out, collects antes, deals hole cards, posts blinds, and opens
// preflop betting. Falls back to waiting when fewer than MinPlayers funded
// seats remain. Caller holds the lock.
func (r *Room) startHand() {
	r.purgeAbsent()
	if r.fundedSeats() < r.cfg.MinPlayers {
		r.street = Waiting
		r.activeIdx = -1
		return
	}

	r.handNum++
	r.deck = deck.NewShuffled(r.rng)
	r.community = nil
	r.pot = 0
	r.currentBet = 0
	r.minRaise = r.cfg.BigBlind
	r.roundDone = false

	for _, s := range r.seats {
		s.resetForHand()
	}

	if r.dealerIdx >= len(r.seats) {
		r.dealerIdx = 0
	}
	if r.seats[r.dealerIdx].SittingOut {
		r.dealerIdx = r.nextPlayingAfter(r.dealerIdx)
	}

	if r.gameRef == 0 {
		r.gameRef = r.recorder.RecordGameStart(r.id, r.playingSeats(), r.cfg.BigBlind)
	}

	if r.cfg.Ante > 0 {
		r.collectAntes()
	}

	// Two hole cards each, dealt one at a time starting left of the dealer.
	for range 2 {
		for i := 1; i <= len(r.seats); i++ {
			s := r.seats[(r.dealerIdx+i)%len(r.seats)]
			if s.SittingOut {
				continue
			}
			card, err := r.deck.Deal()
			if err != nil {
				r.abortHand(err)
				return
			}
			s.HoleCards = append(s.HoleCards, card)
		}
	}

	// Heads-up the dealer posts the small blind and acts first preflop;
	// otherwise blinds sit left of the dealer and action opens after the
	// big blind.
	var sbIdx int
	if r.playingSeats() == 2 {
		sbIdx = r.dealerIdx
	} else {
		sbIdx = r.nextPlayingAfter(r.dealerIdx)
	}
	bbIdx := r.nextPlayingAfter(sbIdx)
	r.postBlind(r.seats[sbIdx], r.cfg.SmallBlind, "small")
	r.postBlind(r.seats[bbIdx], r.cfg.BigBlind, "big")
	r.currentBet = r.cfg.BigBlind
	r.returnToIdx = bbIdx

	if r.playingSeats() == 2 {
		r.activeIdx = sbIdx
	} else {
		r.activeIdx = r.nextPlayingAfter(bbIdx)
	}
	r.street = Preflop
	r.handRef = r.recorder.RecordHandStart(r.gameRef, r.handNum)
	r.logger.Info("hand started",
		"hand", r.handNum,
		"players", r.playingSeats(),
		"dealer", r.seats[r.dealerIdx].Name)

	// A blind or ante can put a seat all-in before anyone acts; the turn
	// must start on a seat that can actually act, or run the hand out.
	if !r.seats[r.activeIdx].CanAct() {
		if idx := r.nextContenderAfter(r.activeIdx); idx != -1 {
			r.activeIdx = idx
		}
	}
	if r.contenders() == 0 {
		r.roundDone = true
		r.routeCompletion()
	}
}

// collectAntes takes the ante from every dealt-in seat as dead money: it
// goes straight to the pot without counting toward the street contribution.
func (r *Room) collectAntes() {
	for _, s := range r.seats {
		if s.SittingOut {
			continue
		}
		a := min(r.cfg.Ante, s.Chips)
		s.Chips -= a
		r.pot += a
		if s.Chips == 0 {
			s.AllIn = true
		}
	}
}

// postBlind commits up to the blind from the seat's stack.
func (r *Room) postBlind(s *Seat, blind int, which string) {
	pay := min(blind, s.Chips)
	s.Chips -= pay
	s.StreetBet = pay
	r.pot += pay
	if s.Chips == 0 {
		s.AllIn = true
	}
	r.logger.Debug("blind posted", "name", s.Name, "blind", which, "amount", pay)
}

// restartHand fires on the restart timer: departed seats are purged, the
// dealer button advances, and the next hand deals. Firing after teardown, or
// after the room moved on through another path, is a no-op.
func (r *Room) restartHand() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.street != RoundComplete {
		return
	}

	r.purgeAbsent()
	if len(r.seats) > 0 {
		r.dealerIdx = (r.dealerIdx + 1) % len(r.seats)
	}
	r.startHand()
	r.notifyAll()
}

// scheduleRestart arms the between-hands timer, replacing any pending one.
func (r *Room) scheduleRestart() {
	r.stopRestartTimer()
	r.restartTimer = r.clock.AfterFunc(r.cfg.RestartDelay, r.restartHand)
}

func (r *Room) stopRestartTimer() {
	if r.restartTimer != nil {
		r.restartTimer.Stop()
		r.restartTimer = nil
	}
}

// abortHand freezes the room after a deck underflow. That cannot happen in
// correct play, so it is treated as an invariant violation: no chips move,
// the error is logged loudly, the room waits for operator attention or new
// joins.
func (r *Room) abortHand(err error) {
	r.logger.Error("hand aborted", "hand", r.handNum, "err", err)
	r.street = Waiting
	r.activeIdx = -1
	r.stopRestartTimer()
}

// purgeAbsent removes seats whose connections departed mid-hand.
func (r *Room) purgeAbsent() {
	for i := len(r.seats) - 1; i >= 0; i-- {
		if r.seats[i].Absent {
			r.removeSeat(i)
		}
	}
}

// removeSeat drops the seat at idx, keeping the dealer button on the same
// player where possible.
func (r *Room) removeSeat(idx int) {
	r.seats = append(r.seats[:idx], r.seats[idx+1:]...)
	if idx < r.dealerIdx {
		r.dealerIdx--
	}
	if r.dealerIdx >= len(r.seats) {
		r.dealerIdx = 0
	}
}

// notifyAll pushes a per-seat redacted snapshot to every connected seat.
// Fire-and-forget: one slow or dead recipient never blocks the others.
func (r *Room) notifyAll() {
	if r.notifier == nil {
		return
	}
	for _, s := range r.seats {
		if s.Absent {
			continue
		}
		r.notifier.Deliver(s.ID, r.buildSnapshot(s.ID))
	}
}

func (r *Room) seatByID(id string) (*Seat, int) {
	for i, s := range r.seats {
		if s.ID == id {
			return s, i
		}
	}
	return nil, -1
}

// fundedSeats counts connected seats with chips for the next hand.
func (r *Room) fundedSeats() int {
	n := 0
	for _, s := range r.seats {
		if !s.Absent && s.Chips > 0 {
			n++
		}
	}
	return n
}

// playingSeats counts seats dealt into the current hand.
func (r *Room) playingSeats() int {
	n := 0
	for _, s := range r.seats {
		if !s.SittingOut {
			n++
		}
	}
	return n
}

// connectedSeats counts seats whose connections are still here.
func (r *Room) connectedSeats() int {
	n := 0
	for _, s := range r.seats {
		if !s.Absent {
			n++
		}
	}
	return n
}

// contenders counts seats that can still take a betting action.
func (r *Room) contenders() int {
	n := 0
	for _, s := range r.seats {
		if s.CanAct() {
			n++
		}
	}
	return n
}

// liveSeats counts non-folded dealt-in seats, the seats contending for the
// pot.
func (r *Room) liveSeats() int {
	n := 0
	for _, s := range r.seats {
		if s.Live() {
			n++
		}
	}
	return n
}

// nextPlayingAfter returns the index of the first dealt-in seat strictly
// after start, wrapping around the table.
func (r *Room) nextPlayingAfter(start int) int {
	n := len(r.seats)
	for i := 1; i <= n; i++ {
		idx := (start + i) % n
		if !r.seats[idx].SittingOut {
			return idx
		}
	}
	return start
}

// nextContenderAfter returns the index of the next seat after start that can
// act, or -1 when nobody can.
func (r *Room) nextContenderAfter(start int) int {
	n := len(r.seats)
	for i := 1; i <= n; i++ {
		idx := (start + i) % n
		if r.seats[idx].CanAct() {
			return idx
		}
	}
	return -1
}
