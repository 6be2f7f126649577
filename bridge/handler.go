package bridge

import (
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"

	"neonshell/logger"
)

var upgrader = websocket.Upgrader{CheckOrigin: localOrigin}

// localOrigin accepts hosts without an Origin header and pages served from
// this machine. The host name must match exactly; localhost.example.org is
// someone else's page.
func localOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}

// Handler upgrades the request and serves a host on it until it disconnects.
func Handler(hub *Hub, opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Debug.Printf("websocket upgrade failed: %v", err)
			return
		}

		host := NewHost(conn, opts)
		detach := hub.Attach(host)
		defer detach()

		logger.Debug.Printf("host attached from %s", r.RemoteAddr)
		if err := host.Serve(r.Context()); err != nil {
			logger.Debug.Printf("host %s: %v", r.RemoteAddr, err)
		}
		logger.Debug.Printf("host detached from %s", r.RemoteAddr)
	}
}
