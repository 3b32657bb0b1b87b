package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Money columns are TEXT holding exact decimal strings, never REAL.
const schema = `
CREATE TABLE IF NOT EXISTS players (
    name TEXT PRIMARY KEY COLLATE NOCASE,
    retiree INTEGER NOT NULL DEFAULT 0,
    comment TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS games (
    id TEXT PRIMARY KEY,
    game_date TEXT NOT NULL,
    cost TEXT NOT NULL,
    booker TEXT NOT NULL DEFAULT '',
    provenance TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS game_attendance (
    game_id TEXT NOT NULL,
    player TEXT NOT NULL COLLATE NOCASE,
    result TEXT NOT NULL,
    PRIMARY KEY (game_id, player),
    FOREIGN KEY (game_id) REFERENCES games(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS game_guests (
    game_id TEXT NOT NULL,
    player TEXT NOT NULL COLLATE NOCASE,
    guests INTEGER NOT NULL,
    PRIMARY KEY (game_id, player),
    FOREIGN KEY (game_id) REFERENCES games(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS payments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    player TEXT NOT NULL COLLATE NOCASE,
    type TEXT NOT NULL,
    amount TEXT NOT NULL,
    paid_on TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS adjustments (
    player TEXT PRIMARY KEY COLLATE NOCASE,
    adjust TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS summaries (
    player TEXT PRIMARY KEY COLLATE NOCASE,
    games_attended INTEGER NOT NULL,
    last_played TEXT NOT NULL,
    games_cost TEXT NOT NULL,
    monies_paid TEXT NOT NULL,
    balance TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    team_name TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_game_attendance_game_id ON game_attendance(game_id);
CREATE INDEX IF NOT EXISTS idx_game_guests_game_id ON game_guests(game_id);
CREATE INDEX IF NOT EXISTS idx_payments_player ON payments(player);
CREATE INDEX IF NOT EXISTS idx_games_date ON games(game_date);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
