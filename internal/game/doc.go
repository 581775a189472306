// Package game implements the core Texas Hold'em room logic.
//
// The main type is Room, which owns one table's full lifecycle: seating,
// blind posting, street progression, betting, showdown, and the automatic
// restart timer between hands. All mutation of a room is serialized through
// its mutex; cross-room operations are independent.
//
// A Room pushes redacted state snapshots to its Notifier after every accepted
// mutation and reports hand outcomes to a stats.Recorder. Both collaborators
// are best-effort: their failures never gate game state.
//
// For deterministic play, inject a seeded *rand.Rand (deck shuffles) and a
// quartz mock clock (restart timer):
//
//	r := game.NewRoom("table-1", game.DefaultConfig(), logger,
//		quartz.NewMock(t), randutil.New(42), notifier, stats.NewNopRecorder())
package game
