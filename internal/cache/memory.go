package cache

import (
	"context"
	"sync"
)

// Memory 进程内缓存，用于测试和未配置 Redis 的部署
type Memory struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemory 创建一个空的进程内缓存
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, alias string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.entries[alias]
	if !ok {
		return "", ErrMiss
	}
	return val, nil
}

func (m *Memory) Set(_ context.Context, alias string, longURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[alias] = longURL
	return nil
}
