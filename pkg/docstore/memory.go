package docstore

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: map[string][]byte{}}
}

func (m *MemoryStore) Get(ctx context.Context, path string, v interface{}) (bool, error) {
	if err := checkPath(path, false); err != nil {
		return false, err
	}
	m.mu.RLock()
	b, ok := m.docs[path]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, v)
}

func (m *MemoryStore) Set(ctx context.Context, path string, v interface{}) error {
	if err := checkPath(path, false); err != nil {
		return err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.docs[path] = b
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	if err := checkPath(path, false); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, err := mergeFields(m.docs[path], fields)
	if err != nil {
		return err
	}
	m.docs[path] = b
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, path string) error {
	if err := checkPath(path, false); err != nil {
		return err
	}
	prefix := childPrefix(path)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, path)
	for p := range m.docs {
		if strings.HasPrefix(p, prefix) {
			delete(m.docs, p)
		}
	}
	return nil
}

func (m *MemoryStore) Push(ctx context.Context, path string, v interface{}) (string, error) {
	id := uuid.NewString()
	if err := m.Set(ctx, Join(path, id), v); err != nil {
		return "", err
	}
	return id, nil
}

func (m *MemoryStore) CreateIfAbsent(ctx context.Context, path string, v interface{}) (bool, error) {
	if err := checkPath(path, false); err != nil {
		return false, err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[path]; ok {
		return false, nil
	}
	m.docs[path] = b
	return true, nil
}

func (m *MemoryStore) Keys(ctx context.Context, path string) ([]string, error) {
	if err := checkPath(path, true); err != nil {
		return nil, err
	}
	prefix := childPrefix(path)
	seen := map[string]struct{}{}
	m.mu.RLock()
	for p := range m.docs {
		if !strings.HasPrefix(p, prefix) || p == path {
			continue
		}
		rest := p[len(prefix):]
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			rest = rest[:i]
		}
		seen[rest] = struct{}{}
	}
	m.mu.RUnlock()

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryStore) List(ctx context.Context, path string) (map[string]json.RawMessage, error) {
	if err := checkPath(path, true); err != nil {
		return nil, err
	}
	prefix := childPrefix(path)
	out := map[string]json.RawMessage{}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for p, b := range m.docs {
		if !strings.HasPrefix(p, prefix) || p == path {
			continue
		}
		rest := p[len(prefix):]
		if strings.IndexByte(rest, '/') >= 0 {
			continue
		}
		out[rest] = append(json.RawMessage(nil), b...)
	}
	return out, nil
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}
