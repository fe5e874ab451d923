// Package store persists column order and small settings in sqlite.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/justyntemme/imgsort/internal/debug"
)

// DB is a synchronous handle to the order database. All calls happen on the
// UI thread, so there is no request channel.
type DB struct {
	conn *sql.DB
}

// NewDB returns an unopened DB.
func NewDB() *DB {
	return &DB{}
}

// Open initializes the database connection and schema
func (d *DB) Open(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	// One connection keeps the write order identical to the call order.
	db.SetMaxOpenConns(1)

	// WAL mode allows simultaneous readers and writers
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return err
	}
	// Synchronous NORMAL is safe against app crashes, faster than FULL
	if _, err := db.Exec("PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return err
	}

	orderQuery := `
	CREATE TABLE IF NOT EXISTS column_order (
		dir TEXT NOT NULL,
		name TEXT NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (dir, name)
	);
	`
	if _, err := db.Exec(orderQuery); err != nil {
		db.Close()
		return err
	}

	settingsQuery := `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := db.Exec(settingsQuery); err != nil {
		db.Close()
		return err
	}

	d.conn = db
	debug.Log(debug.STORE, "opened %s", dbPath)
	return nil
}

// LoadOrder returns the stored position of every known file in dir.
func (d *DB) LoadOrder(dir string) (map[string]int, error) {
	if d.conn == nil {
		return nil, errNotOpen
	}
	rows, err := d.conn.Query("SELECT name, position FROM column_order WHERE dir = ?", dir)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	order := make(map[string]int)
	for rows.Next() {
		var name string
		var pos int
		if err := rows.Scan(&name, &pos); err != nil {
			return nil, err
		}
		order[name] = pos
	}
	return order, rows.Err()
}

// SaveOrder replaces the stored order of dir with names.
func (d *DB) SaveOrder(dir string, names []string) error {
	if d.conn == nil {
		return errNotOpen
	}
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM column_order WHERE dir = ?", dir); err != nil {
		return err
	}
	stmt, err := tx.Prepare("INSERT INTO column_order (dir, name, position) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, name := range names {
		if _, err := stmt.Exec(dir, name, i); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	debug.Log(debug.STORE, "saved order of %s (%d names)", dir, len(names))
	return nil
}

// Setting returns a stored setting and whether it exists.
func (d *DB) Setting(key string) (string, bool, error) {
	if d.conn == nil {
		return "", false, errNotOpen
	}
	var value string
	err := d.conn.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SaveSetting upserts a setting.
func (d *DB) SaveSetting(key, value string) error {
	if d.conn == nil {
		return errNotOpen
	}
	_, err := d.conn.Exec("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", key, value)
	return err
}

func (d *DB) Close() {
	if d.conn != nil {
		d.conn.Close()
		d.conn = nil
	}
}

var errNotOpen = fmt.Errorf("store: database not open")
