package data

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"neonshell/logger"
	"neonshell/navigation"

	"github.com/mattn/go-sqlite3"
)

type SqliteBrowserRepository struct {
	db   *sql.DB
	Path string
	// Now is the clock used for new rows and history cutoffs.
	Now func() time.Time
}

// OpenSqlite opens (creating if needed) the database at path and brings the
// schema up to date.
func OpenSqlite(path string) (*SqliteBrowserRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// One connection keeps every write visible to the next read.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	repository := &SqliteBrowserRepository{db: db, Path: path, Now: time.Now}
	if err := repository.setupDb(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug.Println("opened sqlite store", path)
	return repository, nil
}

func (r *SqliteBrowserRepository) setupDb() error {
	if err := createSqliteHistoryTable(r.db); err != nil {
		return err
	}
	if err := createSqliteFavoritesTable(r.db); err != nil {
		return err
	}
	return migrateSqliteFavicon(r.db)
}

func createSqliteHistoryTable(db *sql.DB) error {
	createTableQuery := `
         CREATE TABLE IF NOT EXISTS history (
             id INTEGER PRIMARY KEY AUTOINCREMENT,
             url TEXT NOT NULL,
             title TEXT,
             timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
         )
     `
	if _, err := db.Exec(createTableQuery); err != nil {
		return fmt.Errorf("create history table: %w", err)
	}
	return nil
}

// The favicon column is added by migrateSqliteFavicon so older databases
// pick it up too.
func createSqliteFavoritesTable(db *sql.DB) error {
	createTableQuery := `
         CREATE TABLE IF NOT EXISTS favorites (
             id INTEGER PRIMARY KEY AUTOINCREMENT,
             url TEXT NOT NULL UNIQUE,
             title TEXT,
             timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
         )
     `
	if _, err := db.Exec(createTableQuery); err != nil {
		return fmt.Errorf("create favorites table: %w", err)
	}
	return nil
}

func migrateSqliteFavicon(db *sql.DB) error {
	exists, err := sqliteColumnExists(db, "favorites", "favicon")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	logger.Debug.Println("adding favicon column to favorites")
	if _, err := db.Exec("ALTER TABLE favorites ADD COLUMN favicon TEXT"); err != nil {
		return fmt.Errorf("add favicon column: %w", err)
	}
	return nil
}

func sqliteColumnExists(db *sql.DB, table string, column string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("inspect %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid          int
			name         string
			columnType   string
			notNull      int
			defaultValue sql.NullString
			primaryKey   int
		)
		if err := rows.Scan(&cid, &name, &columnType, &notNull, &defaultValue, &primaryKey); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

func (r *SqliteBrowserRepository) Close() error {
	return r.db.Close()
}

func (r *SqliteBrowserRepository) RecordVisit(url string, title string) (bool, error) {
	if navigation.IsInternalURL(url) {
		return false, nil
	}

	insertQuery := "INSERT INTO history (url, title, timestamp) VALUES (?, ?, ?)"
	_, err := r.db.Exec(insertQuery, url, title, formatTimestamp(r.Now()))
	if err != nil {
		logger.Debug.Println("insert of history failed", err)
		return false, err
	}
	return true, nil
}

func (r *SqliteBrowserRepository) ListHistory(limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	selectQuery := "SELECT id, url, title, timestamp FROM history ORDER BY timestamp DESC, id DESC LIMIT ?"
	rows, err := r.db.Query(selectQuery, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var entry HistoryEntry
		var title sql.NullString
		if err := rows.Scan(&entry.Id, &entry.Url, &title, &entry.Timestamp); err != nil {
			return nil, err
		}
		entry.Title = title.String
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (r *SqliteBrowserRepository) DeleteHistoryEntry(historyId int64) (int64, error) {
	res, err := r.db.Exec("DELETE FROM history WHERE id = ?", historyId)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *SqliteBrowserRepository) ClearHistory(scope ClearScope) (int64, error) {
	var res sql.Result
	var err error

	if cutoff, ok := scope.Cutoff(r.Now()); ok {
		res, err = r.db.Exec("DELETE FROM history WHERE timestamp >= ?", formatTimestamp(cutoff))
	} else {
		res, err = r.db.Exec("DELETE FROM history")
	}
	if err != nil {
		return 0, err
	}

	deleted, err := res.RowsAffected()
	logger.Debug.Printf("cleared %d history rows (%s)", deleted, scope)
	return deleted, err
}

func (r *SqliteBrowserRepository) IsFavorite(url string) (bool, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM favorites WHERE url = ?", url).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SqliteBrowserRepository) AddFavorite(favorite FavoriteEntry) (int64, error) {
	insertQuery := "INSERT INTO favorites (url, title, favicon, timestamp) VALUES (?, ?, ?, ?)"
	result, err := r.db.Exec(insertQuery, favorite.Url, favorite.Title, nullString(favorite.Favicon), formatTimestamp(r.Now()))
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return 0, ErrAlreadyFavorite
		}
		logger.Debug.Println("insert of favorite failed", err)
		return 0, err
	}

	return result.LastInsertId()
}

func (r *SqliteBrowserRepository) RemoveFavorite(url string) (int64, error) {
	res, err := r.db.Exec("DELETE FROM favorites WHERE url = ?", url)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *SqliteBrowserRepository) ListFavorites() ([]FavoriteEntry, error) {
	rows, err := r.db.Query("SELECT id, url, title, favicon, timestamp FROM favorites ORDER BY timestamp DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favorites []FavoriteEntry
	for rows.Next() {
		var favorite FavoriteEntry
		var title, favicon sql.NullString
		if err := rows.Scan(&favorite.Id, &favorite.Url, &title, &favicon, &favorite.Timestamp); err != nil {
			return nil, err
		}
		favorite.Title = title.String
		favorite.Favicon = favicon.String
		favorites = append(favorites, favorite)
	}

	return favorites, rows.Err()
}
