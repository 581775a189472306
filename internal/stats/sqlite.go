package stats

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists records to a single SQLite database file. It is
// safe for concurrent use by multiple rooms; writes serialize on one
// connection.
type SQLiteRecorder struct {
	db     *sql.DB
	logger *log.Logger
}

var _ Recorder = (*SQLiteRecorder)(nil)

// Open opens the stats database at path, creating the file and schema as
// needed. ":memory:" opens a throwaway in-memory database.
func Open(path string, logger *log.Logger) (*SQLiteRecorder, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create stats directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open stats database: %w", err)
	}

	// modernc's sqlite wants a single writer connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping stats database: %w", err)
	}

	return &SQLiteRecorder{db: db, logger: logger.WithPrefix("stats")}, nil
}

// Close releases the database.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS games (
		game_id     INTEGER PRIMARY KEY AUTOINCREMENT,
		room_id     TEXT NOT NULL,
		start_time  TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		end_time    TIMESTAMP,
		num_players INTEGER,
		big_blind   INTEGER,
		total_hands INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS players (
		player_id INTEGER PRIMARY KEY AUTOINCREMENT,
		username  TEXT UNIQUE NOT NULL,
		join_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS hands (
		hand_id     INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id     INTEGER NOT NULL REFERENCES games(game_id),
		hand_number INTEGER,
		pot_size    INTEGER,
		flop        TEXT,
		turn        TEXT,
		river       TEXT,
		time        TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS player_hands (
		player_hand_id  INTEGER PRIMARY KEY AUTOINCREMENT,
		hand_id         INTEGER NOT NULL REFERENCES hands(hand_id),
		player_id       INTEGER NOT NULL REFERENCES players(player_id),
		starting_chips  INTEGER,
		ending_chips    INTEGER,
		cards           TEXT,
		position        INTEGER,
		is_winner       BOOLEAN,
		final_hand_type TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS actions (
		action_id   INTEGER PRIMARY KEY AUTOINCREMENT,
		hand_id     INTEGER NOT NULL REFERENCES hands(hand_id),
		player_id   INTEGER NOT NULL REFERENCES players(player_id),
		action_type TEXT,
		amount      INTEGER,
		street      TEXT,
		time        TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
}

// RecordGameStart inserts a games row and returns its id, or 0 on failure.
func (r *SQLiteRecorder) RecordGameStart(roomID string, numPlayers, bigBlind int) int64 {
	res, err := r.db.Exec(
		`INSERT INTO games (room_id, num_players, big_blind) VALUES (?, ?, ?)`,
		roomID, numPlayers, bigBlind,
	)
	if err != nil {
		r.logger.Warn("record game start failed", "room", roomID, "err", err)
		return 0
	}
	id, err := res.LastInsertId()
	if err != nil {
		r.logger.Warn("game id unavailable", "room", roomID, "err", err)
		return 0
	}
	return id
}

// RecordHandStart inserts a hands row and returns its id, or 0 on failure.
func (r *SQLiteRecorder) RecordHandStart(gameRef int64, handNumber int) int64 {
	if gameRef == 0 {
		return 0
	}
	res, err := r.db.Exec(
		`INSERT INTO hands (game_id, hand_number) VALUES (?, ?)`,
		gameRef, handNumber,
	)
	if err != nil {
		r.logger.Warn("record hand start failed", "game", gameRef, "hand", handNumber, "err", err)
		return 0
	}
	id, err := res.LastInsertId()
	if err != nil {
		r.logger.Warn("hand id unavailable", "game", gameRef, "err", err)
		return 0
	}
	return id
}

// RecordAction inserts an actions row.
func (r *SQLiteRecorder) RecordAction(handRef int64, player, action string, amount int, street string) {
	if handRef == 0 {
		return
	}
	playerID, err := r.playerID(player)
	if err != nil {
		r.logger.Warn("player lookup failed", "player", player, "err", err)
		return
	}
	_, err = r.db.Exec(
		`INSERT INTO actions (hand_id, player_id, action_type, amount, street) VALUES (?, ?, ?, ?, ?)`,
		handRef, playerID, action, amount, street,
	)
	if err != nil {
		r.logger.Warn("record action failed", "player", player, "action", action, "err", err)
	}
}

// RecordHandResult fills in the hand's pot and board and inserts one
// player_hands row per dealt-in seat.
func (r *SQLiteRecorder) RecordHandResult(handRef int64, potSize int, board []string, results []HandResult) {
	if handRef == 0 {
		return
	}

	var flop, turn, river string
	if len(board) >= 3 {
		flop = strings.Join(board[:3], ",")
	}
	if len(board) >= 4 {
		turn = board[3]
	}
	if len(board) >= 5 {
		river = board[4]
	}

	_, err := r.db.Exec(
		`UPDATE hands SET pot_size = ?, flop = ?, turn = ?, river = ? WHERE hand_id = ?`,
		potSize, flop, turn, river, handRef,
	)
	if err != nil {
		r.logger.Warn("record hand result failed", "hand", handRef, "err", err)
		return
	}

	for _, res := range results {
		playerID, err := r.playerID(res.Player)
		if err != nil {
			r.logger.Warn("player lookup failed", "player", res.Player, "err", err)
			continue
		}
		_, err = r.db.Exec(
			`INSERT INTO player_hands
				(hand_id, player_id, starting_chips, ending_chips, cards, position, is_winner, final_hand_type)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			handRef, playerID, res.StartChips, res.EndChips,
			strings.Join(res.Cards, ","), res.Position, res.Winner, res.HandType,
		)
		if err != nil {
			r.logger.Warn("record player hand failed", "player", res.Player, "err", err)
		}
	}
}

// RecordGameEnd stamps the game's end time and final hand count.
func (r *SQLiteRecorder) RecordGameEnd(gameRef int64, totalHands int) {
	if gameRef == 0 {
		return
	}
	_, err := r.db.Exec(
		`UPDATE games SET end_time = CURRENT_TIMESTAMP, total_hands = ? WHERE game_id = ?`,
		totalHands, gameRef,
	)
	if err != nil {
		r.logger.Warn("record game end failed", "game", gameRef, "err", err)
	}
}

// playerID returns the id for a username, inserting the row on first sight.
func (r *SQLiteRecorder) playerID(name string) (int64, error) {
	if _, err := r.db.Exec(`INSERT OR IGNORE INTO players (username) VALUES (?)`, name); err != nil {
		return 0, err
	}
	var id int64
	err := r.db.QueryRow(`SELECT player_id FROM players WHERE username = ?`, name).Scan(&id)
	return id, err
}
