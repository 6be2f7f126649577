package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"neonshell/bridge"
	"neonshell/data"
	"neonshell/homepage"
	"neonshell/logger"
	"neonshell/navigation"
	"neonshell/shell"
)

type serverData struct {
	store data.BrowserRepository
	hub   *bridge.Hub
	opts  bridge.Options
}

// NewHandler builds the companion server's routes. Hosts attach on /engine;
// the rest is a JSON API over the store plus the rendered home page.
func NewHandler(hub *bridge.Hub, opts bridge.Options) http.Handler {
	s := &serverData{store: opts.Store, hub: hub, opts: opts}

	mux := http.NewServeMux()
	mux.HandleFunc("/engine", bridge.Handler(hub, opts))
	mux.HandleFunc("/home", s.handleHome)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/history/{id}", s.handleHistoryEntry)
	mux.HandleFunc("/api/favorites", s.handleFavorites)
	mux.HandleFunc("/status", s.handleStatus)
	return mux
}

// Run serves until the listener fails.
func Run(address string, opts bridge.Options) error {
	hub := bridge.NewHub()
	logger.Screen(fmt.Sprintf("neonshell listening on %s", address), logger.InfoColor)
	logger.Debug.Printf("server running on %s", address)
	return http.ListenAndServe(address, NewHandler(hub, opts))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug.Printf("encoding response: %v", err)
	}
}

func serverError(w http.ResponseWriter, what string, err error) {
	logger.Debug.Printf("%s: %v", what, err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// confirmed reports whether a destructive request carries confirm=true and
// answers 412 when it does not.
func confirmed(w http.ResponseWriter, r *http.Request) bool {
	if r.URL.Query().Get("confirm") == "true" {
		return true
	}
	http.Error(w, "destructive request needs confirm=true", http.StatusPreconditionFailed)
	return false
}

// refreshHomePages reloads the home page in every attached host.
func (s *serverData) refreshHomePages() {
	n := s.hub.Broadcast(func(sh *shell.Shell) {
		if err := sh.RefreshHomePage(); err != nil {
			logger.Debug.Printf("refreshing home page: %v", err)
		}
	})
	logger.Debug.Printf("home page refresh posted to %d hosts", n)
}

func (s *serverData) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	favorites, err := s.store.ListFavorites()
	if err != nil {
		serverError(w, "listing favorites", err)
		return
	}
	engine := s.opts.Engine
	if engine.Name == "" {
		engine = navigation.DefaultEngine
	}
	document, err := homepage.Render(homepage.Page{
		Favorites:  favorites,
		Background: s.opts.Background,
		Logo:       s.opts.Logo,
		Engines:    navigation.Engines(),
		Selected:   engine.Name,
	})
	if err != nil {
		serverError(w, "rendering home page", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, document)
}

type ClearResponse struct {
	Deleted int64 `json:"deleted"`
}

func (s *serverData) handleHistory(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			var err error
			limit, err = strconv.Atoi(raw)
			if err != nil {
				http.Error(w, "limit must be a number", http.StatusBadRequest)
				return
			}
		}
		history, err := s.store.ListHistory(limit)
		if err != nil {
			serverError(w, "listing history", err)
			return
		}
		if history == nil {
			history = []data.HistoryEntry{}
		}
		writeJSON(w, http.StatusOK, history)

	case http.MethodDelete:
		scope, err := data.ParseClearScope(r.URL.Query().Get("scope"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if !confirmed(w, r) {
			return
		}
		n, err := s.store.ClearHistory(scope)
		if err != nil {
			serverError(w, "clearing history", err)
			return
		}
		logger.Screen(fmt.Sprintf("cleared %d history entries (%s)", n, scope), logger.WarnColor)
		writeJSON(w, http.StatusOK, ClearResponse{Deleted: n})

	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func (s *serverData) handleHistoryEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	id := r.PathValue("id")
	intId, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		logger.Screen(fmt.Sprintf("\nFailed to convert id to int: %s", id), logger.ErrorColor)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !confirmed(w, r) {
		return
	}
	n, err := s.store.DeleteHistoryEntry(intId)
	if err != nil {
		serverError(w, "deleting history entry", err)
		return
	}
	if n == 0 {
		http.Error(w, "no such history entry", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type FavoriteRequest struct {
	Url     string `json:"url"`
	Title   string `json:"title"`
	Favicon string `json:"favicon"`
}

type FavoriteResponse struct {
	Id int64 `json:"id"`
}

func parseFavoriteRequest(r *http.Request) (FavoriteRequest, error) {
	var req FavoriteRequest

	if r.Header.Get("Content-Type") != "application/json" {
		return req, fmt.Errorf("Content-Type must be application/json")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Screen(fmt.Sprintf("\nerror reading request body\n: %v", err), logger.ErrorColor)
		return req, fmt.Errorf("error reading request body: %w", err)
	}
	defer r.Body.Close()

	if err := json.Unmarshal(body, &req); err != nil {
		logger.Screen(fmt.Sprintf("\nerror parsing JSON: %v\n", err), logger.ErrorColor)
		return req, fmt.Errorf("error parsing JSON: %w", err)
	}

	if navigation.IsInternalURL(req.Url) {
		return req, fmt.Errorf("cannot add %q to favorites", req.Url)
	}
	return req, nil
}

func (s *serverData) handleFavorites(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		favorites, err := s.store.ListFavorites()
		if err != nil {
			serverError(w, "listing favorites", err)
			return
		}
		if favorites == nil {
			favorites = []data.FavoriteEntry{}
		}
		writeJSON(w, http.StatusOK, favorites)

	case http.MethodPost:
		req, err := parseFavoriteRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		id, err := s.store.AddFavorite(data.FavoriteEntry{Url: req.Url, Title: req.Title, Favicon: req.Favicon})
		if errors.Is(err, data.ErrAlreadyFavorite) {
			http.Error(w, "Already in favorites!", http.StatusConflict)
			return
		}
		if err != nil {
			serverError(w, "adding favorite", err)
			return
		}
		s.refreshHomePages()
		writeJSON(w, http.StatusCreated, FavoriteResponse{Id: id})

	case http.MethodDelete:
		url := r.URL.Query().Get("url")
		if url == "" {
			http.Error(w, "url is required", http.StatusBadRequest)
			return
		}
		if !confirmed(w, r) {
			return
		}
		n, err := s.store.RemoveFavorite(url)
		if err != nil {
			serverError(w, "removing favorite", err)
			return
		}
		if n == 0 {
			http.Error(w, "not in favorites", http.StatusNotFound)
			return
		}
		s.refreshHomePages()
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

type StatusResponse struct {
	Status string `json:"status"`
	Hosts  int    `json:"hosts"`
}

func (s *serverData) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok", Hosts: s.hub.Count()})
}
