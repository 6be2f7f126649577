package data

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// DefaultHistoryLimit is how many history rows are listed when no limit is given.
const DefaultHistoryLimit = 100

// ErrAlreadyFavorite is returned when a url is starred twice.
var ErrAlreadyFavorite = errors.New("already in favorites")

type BrowserRepository interface {
	RecordVisit(url string, title string) (bool, error)
	ListHistory(limit int) ([]HistoryEntry, error)
	DeleteHistoryEntry(historyId int64) (int64, error)
	ClearHistory(scope ClearScope) (int64, error)
	IsFavorite(url string) (bool, error)
	AddFavorite(favorite FavoriteEntry) (int64, error)
	RemoveFavorite(url string) (int64, error)
	ListFavorites() ([]FavoriteEntry, error)
	Close() error
}

// ClearScope selects which history rows ClearHistory removes.
type ClearScope string

const (
	ClearAll         ClearScope = "all"
	ClearLast24Hours ClearScope = "last24h"
	ClearLast7Days   ClearScope = "last7d"
)

func ParseClearScope(s string) (ClearScope, error) {
	switch scope := ClearScope(s); scope {
	case ClearAll, ClearLast24Hours, ClearLast7Days:
		return scope, nil
	}
	return "", fmt.Errorf("unknown history scope %q", s)
}

// Cutoff returns the oldest timestamp the scope covers. ok is false for
// ClearAll, which has no cutoff.
func (s ClearScope) Cutoff(now time.Time) (cutoff time.Time, ok bool) {
	switch s {
	case ClearLast24Hours:
		return now.Add(-24 * time.Hour), true
	case ClearLast7Days:
		return now.Add(-7 * 24 * time.Hour), true
	}
	return time.Time{}, false
}

// Description is the wording used when asking the user to confirm a clear.
func (s ClearScope) Description() string {
	switch s {
	case ClearLast24Hours:
		return "history from the last 24 hours"
	case ClearLast7Days:
		return "history from the last week"
	}
	return "all browsing history"
}

// timestampLayout is how timestamps are written, always in UTC.
const timestampLayout = "2006-01-02 15:04:05"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
