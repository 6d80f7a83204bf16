package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gradmend/internal/domain"
	"gradmend/internal/ports"

	_ "github.com/mattn/go-sqlite3"
)

const schemaVersion = "1"

// History implements ports.PatchHistory using SQLite. It is a side index
// only: the build file on disk stays the single source of truth, the index
// just remembers what each run checked and changed.
type History struct {
	db     *sql.DB
	dbPath string
}

// Ensure History implements PatchHistory
var _ ports.PatchHistory = (*History)(nil)

// NewHistory creates a new SQLite history index
func NewHistory() *History {
	return &History{}
}

// Open initializes the index for the given project path
func (h *History) Open(projectPath string) error {
	if len(projectPath) > 0 && projectPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		projectPath = filepath.Join(home, projectPath[1:])
	}

	h.dbPath = databasePath(projectPath)

	if err := os.MkdirAll(filepath.Dir(h.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	// WAL mode keeps readers unblocked while a run records itself.
	db, err := sql.Open("sqlite3", h.dbPath+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	h.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			file TEXT NOT NULL,
			changed INTEGER NOT NULL,
			success INTEGER NOT NULL,
			message TEXT,
			failure TEXT,
			states TEXT,
			at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_file ON runs(file, at DESC);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	_, err = db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (h *History) Close() error {
	if h.db != nil {
		return h.db.Close()
	}
	return nil
}

// Record persists one patch run
func (h *History) Record(run *domain.PatchRun) error {
	states, err := encodeStates(run.States)
	if err != nil {
		return err
	}

	_, err = h.db.Exec(`
		INSERT INTO runs (file, changed, success, message, failure, states, at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.File, boolToInt(run.Changed), boolToInt(run.Success), run.Message, run.Failure, states, run.At.Unix())
	return err
}

// Recent returns the latest runs for a file, newest first
func (h *History) Recent(file string, limit int) ([]domain.PatchRun, error) {
	rows, err := h.db.Query(`
		SELECT file, changed, success, message, failure, states, at
		FROM runs WHERE file = ?
		ORDER BY at DESC, id DESC
		LIMIT ?
	`, file, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []domain.PatchRun
	for rows.Next() {
		var run domain.PatchRun
		var changed, success int
		var states sql.NullString
		var at int64
		if err := rows.Scan(&run.File, &changed, &success, &run.Message, &run.Failure, &states, &at); err != nil {
			return nil, err
		}
		run.Changed = changed != 0
		run.Success = success != 0
		run.At = time.Unix(at, 0)
		if states.Valid {
			run.States, _ = decodeStates(states.String)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// databasePath returns the path for the SQLite database
func databasePath(projectPath string) string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}

	h := sha256.Sum256([]byte(projectPath))
	return filepath.Join(dataHome, "gradmend", hex.EncodeToString(h[:8])+".db")
}

func encodeStates(states map[string]domain.FragmentState) (string, error) {
	if states == nil {
		return "", nil
	}
	named := make(map[string]string, len(states))
	for marker, state := range states {
		named[marker] = state.String()
	}
	b, err := json.Marshal(named)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeStates(encoded string) (map[string]domain.FragmentState, error) {
	if encoded == "" {
		return nil, nil
	}
	var named map[string]string
	if err := json.Unmarshal([]byte(encoded), &named); err != nil {
		return nil, err
	}
	states := make(map[string]domain.FragmentState, len(named))
	for marker, name := range named {
		switch name {
		case "correct":
			states[marker] = domain.StateCorrect
		case "stale":
			states[marker] = domain.StateStale
		default:
			states[marker] = domain.StateAbsent
		}
	}
	return states, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
