package bridge

import (
	"sync"

	"neonshell/shell"
)

// Hub tracks attached hosts so code outside their loops, such as the HTTP
// API, can reach every shell.
type Hub struct {
	mu    sync.Mutex
	hosts map[*Host]struct{}
}

func NewHub() *Hub {
	return &Hub{hosts: make(map[*Host]struct{})}
}

// Attach registers host and returns the function that removes it.
func (hub *Hub) Attach(host *Host) func() {
	hub.mu.Lock()
	hub.hosts[host] = struct{}{}
	hub.mu.Unlock()
	return func() {
		hub.mu.Lock()
		delete(hub.hosts, host)
		hub.mu.Unlock()
	}
}

func (hub *Hub) Count() int {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	return len(hub.hosts)
}

// Broadcast queues fn on every attached host's loop and returns how many
// hosts accepted it.
func (hub *Hub) Broadcast(fn func(s *shell.Shell)) int {
	hub.mu.Lock()
	hosts := make([]*Host, 0, len(hub.hosts))
	for host := range hub.hosts {
		hosts = append(hosts, host)
	}
	hub.mu.Unlock()

	n := 0
	for _, host := range hosts {
		if host.WithShell(fn) {
			n++
		}
	}
	return n
}
