package db

import "sync"

// memoryEngine keeps snapshots in process memory. Used by tests and by
// deployments that only want live values without durable storage.
type memoryEngine struct {
	mu   sync.Mutex
	cols map[string]map[string]Snapshot
}

func newMemoryEngine() *memoryEngine {
	return &memoryEngine{cols: make(map[string]map[string]Snapshot)}
}

func (e *memoryEngine) Read(col, id string) (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	snap, ok := e.cols[col][id]
	if !ok {
		return nil, nil
	}
	out := make(Snapshot, len(snap))
	for k, v := range snap {
		out[k] = v
	}
	return out, nil
}

func (e *memoryEngine) Write(col, id string, snap Snapshot) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	c := e.cols[col]
	if c == nil {
		c = make(map[string]Snapshot)
		e.cols[col] = c
	}
	stored := make(Snapshot, len(snap))
	for k, v := range snap {
		stored[k] = v
	}
	c[id] = stored
	return nil
}

func (e *memoryEngine) Del(col, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.cols[col], id)
	return nil
}

func (e *memoryEngine) Exists(col, id string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.cols[col][id]
	return ok, nil
}

func (e *memoryEngine) Close() {}

func (e *memoryEngine) IsEOF(err error) bool { return false }
