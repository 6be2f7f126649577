package data

import (
	"time"
)

type HistoryEntry struct {
	Id        int64     `json:"id"`
	Url       string    `json:"url"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
}

type FavoriteEntry struct {
	Id        int64     `json:"id"`
	Url       string    `json:"url"`
	Title     string    `json:"title"`
	Favicon   string    `json:"favicon,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// DisplayTitle is the title, or the url when the page had none.
func (f FavoriteEntry) DisplayTitle() string {
	if f.Title == "" {
		return f.Url
	}
	return f.Title
}

// DisplayTitle is the title, or the url when the page had none.
func (h HistoryEntry) DisplayTitle() string {
	if h.Title == "" {
		return h.Url
	}
	return h.Title
}
