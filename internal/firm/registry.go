package firm

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Firm describes one tenant organization served by this backend.
type Firm struct {
	FirmID   string          `json:"firm_id"`
	FirmName string          `json:"firm_name"`
	Region   string          `json:"region"`
	Features map[string]bool `json:"features"`
}

type FirmsFile struct {
	Firms []Firm `json:"firms"`
}

type Registry struct {
	mu    sync.RWMutex
	firms map[string]*Firm
}

func NewRegistry() *Registry {
	return &Registry{
		firms: make(map[string]*Firm),
	}
}

func LoadFromFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read firms config: %w", err)
	}

	var file FirmsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse firms config: %w", err)
	}

	registry := NewRegistry()
	for i := range file.Firms {
		registry.Register(&file.Firms[i])
	}
	return registry, nil
}

func (r *Registry) Register(f *Firm) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.firms[f.FirmID] = f
}

func (r *Registry) Get(firmID string) *Firm {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.firms[firmID]
}

func (r *Registry) Exists(firmID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.firms[firmID]
	return ok
}

func (r *Registry) HasFeature(firmID, feature string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.firms[firmID]
	if !ok {
		return false
	}
	return f.Features[feature]
}

func (r *Registry) All() []*Firm {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*Firm, 0, len(r.firms))
	for _, f := range r.firms {
		result = append(result, f)
	}
	return result
}
