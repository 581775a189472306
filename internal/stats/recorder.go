// Package stats records games, hands, and actions for later analysis. The
// SQLite recorder persists to a database file; the no-op recorder serves
// rooms running with stats disabled. Recorders are best-effort: failures are
// logged and swallowed, never surfaced into game state.
package stats

// HandResult is one seat's outcome in a completed hand.
type HandResult struct {
	Player     string
	StartChips int
	EndChips   int
	Cards      []string
	Position   int
	Winner     bool
	HandType   string
}

// Recorder sinks game, hand, and action records. The refs returned by the
// start methods thread through the dependent calls; a zero ref means the
// parent record was never created and dependents are skipped.
type Recorder interface {
	RecordGameStart(roomID string, numPlayers, bigBlind int) int64
	RecordHandStart(gameRef int64, handNumber int) int64
	RecordAction(handRef int64, player, action string, amount int, street string)
	RecordHandResult(handRef int64, potSize int, board []string, results []HandResult)
	RecordGameEnd(gameRef int64, totalHands int)
}

// NopRecorder discards all records with zero overhead.
type NopRecorder struct{}

// NewNopRecorder returns a recorder that discards everything.
func NewNopRecorder() *NopRecorder {
	return &NopRecorder{}
}

func (n *NopRecorder) RecordGameStart(roomID string, numPlayers, bigBlind int) int64 {
	return 0
}

func (n *NopRecorder) RecordHandStart(gameRef int64, handNumber int) int64 {
	return 0
}

func (n *NopRecorder) RecordAction(handRef int64, player, action string, amount int, street string) {
}

func (n *NopRecorder) RecordHandResult(handRef int64, potSize int, board []string, results []HandResult) {
}

func (n *NopRecorder) RecordGameEnd(gameRef int64, totalHands int) {
}
