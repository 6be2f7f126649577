package data

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"neonshell/logger"
	"neonshell/navigation"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type PostgresBrowserRepository struct {
	db  *sql.DB
	Now func() time.Time
}

// OpenPostgres connects to connectionString and creates the schema if needed.
func OpenPostgres(connectionString string) (*PostgresBrowserRepository, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	repository := &PostgresBrowserRepository{db: db, Now: time.Now}
	if err := repository.setupDb(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug.Println("connected to postgres store")
	return repository, nil
}

func (r *PostgresBrowserRepository) setupDb() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS history (
			id SERIAL PRIMARY KEY,
			url TEXT NOT NULL,
			title TEXT,
			"timestamp" TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS favorites (
			id SERIAL PRIMARY KEY,
			url TEXT NOT NULL UNIQUE,
			title TEXT,
			"timestamp" TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`ALTER TABLE favorites ADD COLUMN IF NOT EXISTS favicon TEXT`,
	}

	for _, statement := range statements {
		if _, err := r.db.Exec(statement); err != nil {
			return fmt.Errorf("setup postgres schema: %w", err)
		}
	}
	return nil
}

func (r *PostgresBrowserRepository) Close() error {
	return r.db.Close()
}

func (r *PostgresBrowserRepository) RecordVisit(url string, title string) (bool, error) {
	if navigation.IsInternalURL(url) {
		return false, nil
	}

	_, err := r.db.Exec(`INSERT INTO history (url, title, "timestamp") VALUES ($1, $2, $3)`, url, title, r.Now().UTC())
	if err != nil {
		logger.Debug.Println("insert of history failed", err)
		return false, err
	}
	return true, nil
}

func (r *PostgresBrowserRepository) ListHistory(limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	rows, err := r.db.Query(`SELECT id, url, title, "timestamp" FROM history ORDER BY "timestamp" DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var h HistoryEntry
		var title sql.NullString
		if err := rows.Scan(&h.Id, &h.Url, &title, &h.Timestamp); err != nil {
			logger.Debug.Println("error parsing history row", err)
			return nil, err
		}
		h.Title = title.String
		entries = append(entries, h)
	}
	return entries, rows.Err()
}

func (r *PostgresBrowserRepository) DeleteHistoryEntry(historyId int64) (int64, error) {
	res, err := r.db.Exec("DELETE FROM history WHERE id = $1", historyId)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PostgresBrowserRepository) ClearHistory(scope ClearScope) (int64, error) {
	var res sql.Result
	var err error

	if cutoff, ok := scope.Cutoff(r.Now()); ok {
		res, err = r.db.Exec(`DELETE FROM history WHERE "timestamp" >= $1`, cutoff.UTC())
	} else {
		res, err = r.db.Exec("DELETE FROM history")
	}
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PostgresBrowserRepository) IsFavorite(url string) (bool, error) {
	var exists bool
	err := r.db.QueryRow("SELECT EXISTS (SELECT 1 FROM favorites WHERE url = $1)", url).Scan(&exists)
	return exists, err
}

func (r *PostgresBrowserRepository) AddFavorite(favorite FavoriteEntry) (int64, error) {
	var id int64
	err := r.db.QueryRow(`INSERT INTO favorites (url, title, favicon, "timestamp") VALUES ($1, $2, $3, $4) RETURNING id`,
		favorite.Url, favorite.Title, nullString(favorite.Favicon), r.Now().UTC()).
		Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return 0, ErrAlreadyFavorite
		}
		return 0, err
	}
	return id, nil
}

func (r *PostgresBrowserRepository) RemoveFavorite(url string) (int64, error) {
	res, err := r.db.Exec("DELETE FROM favorites WHERE url = $1", url)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PostgresBrowserRepository) ListFavorites() ([]FavoriteEntry, error) {
	rows, err := r.db.Query(`SELECT id, url, title, favicon, "timestamp" FROM favorites ORDER BY "timestamp" DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favorites []FavoriteEntry
	for rows.Next() {
		var f FavoriteEntry
		var title, favicon sql.NullString
		if err := rows.Scan(&f.Id, &f.Url, &title, &favicon, &f.Timestamp); err != nil {
			return nil, err
		}
		f.Title = title.String
		f.Favicon = favicon.String
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}
