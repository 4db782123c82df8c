package confirm

import "sync"

// Registry хранит открытые шлюзы по идентификатору, пока живёт сообщение с ними.
type Registry struct {
	mu    sync.Mutex
	gates map[string]*Gate
}

// NewRegistry создаёт пустой реестр.
func NewRegistry() *Registry {
	return &Registry{gates: make(map[string]*Gate)}
}

// Add регистрирует шлюз. После перехода в конечное состояние шлюз удаляется сам.
func (r *Registry) Add(g *Gate) {
	r.mu.Lock()
	r.gates[g.ID()] = g
	r.mu.Unlock()

	go func() {
		<-g.Done()
		r.mu.Lock()
		delete(r.gates, g.ID())
		r.mu.Unlock()
	}()
}

// Get возвращает шлюз по идентификатору.
func (r *Registry) Get(id string) (*Gate, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.gates[id]
	return g, ok
}

// Len возвращает число открытых шлюзов.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.gates)
}
