package store

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"stockmaster/internal/core"

	toml "github.com/pelletier/go-toml/v2"
)

// Preferences is a core.PreferencesStore. Without a path it lives in memory
// only; with a path every change is written to a TOML file before it becomes
// visible, so the values survive a restart.
type Preferences struct {
	path string

	mu     sync.RWMutex
	values map[string]string

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(core.PreferenceChange)
}

type preferencesFile struct {
	Preferences map[string]string `toml:"preferences"`
}

// NewMemoryPreferences returns an empty store that is never persisted.
func NewMemoryPreferences() *Preferences {
	return &Preferences{
		values: make(map[string]string),
		subs:   make(map[int]func(core.PreferenceChange)),
	}
}

// OpenFilePreferences loads the store at path. A missing file is an empty store;
// the file is created on the first write.
func OpenFilePreferences(path string) (*Preferences, error) {
	p := NewMemoryPreferences()
	p.path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read preferences %s: %w", path, err)
	}

	var f preferencesFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse preferences %s: %w", path, err)
	}
	for k, v := range f.Preferences {
		p.values[k] = v
	}
	return p, nil
}

func (p *Preferences) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()

	v, ok := p.values[key]
	if !ok {
		return "", fmt.Errorf("%s: %w", key, core.ErrPreferenceNotSet)
	}
	return v, nil
}

func (p *Preferences) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := core.ValidatePreference(key, value); err != nil {
		return err
	}

	p.mu.Lock()
	old, existed := p.values[key]
	if existed && old == value {
		p.mu.Unlock()
		return nil
	}
	p.values[key] = value
	if err := p.persistLocked(); err != nil {
		if existed {
			p.values[key] = old
		} else {
			delete(p.values, key)
		}
		p.mu.Unlock()
		return err
	}
	p.mu.Unlock()

	p.notify(core.PreferenceChange{Key: key, Value: value})
	return nil
}

func (p *Preferences) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	old, existed := p.values[key]
	if !existed {
		p.mu.Unlock()
		return nil
	}
	delete(p.values, key)
	if err := p.persistLocked(); err != nil {
		p.values[key] = old
		p.mu.Unlock()
		return err
	}
	p.mu.Unlock()

	p.notify(core.PreferenceChange{Key: key, Deleted: true})
	return nil
}

func (p *Preferences) All(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return maps.Clone(p.values), nil
}

func (p *Preferences) Subscribe(fn func(core.PreferenceChange)) func() {
	p.subMu.Lock()
	defer p.subMu.Unlock()

	id := p.nextID
	p.nextID++
	p.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			p.subMu.Lock()
			delete(p.subs, id)
			p.subMu.Unlock()
		})
	}
}

// notify runs outside p.mu so subscribers may read the store.
func (p *Preferences) notify(change core.PreferenceChange) {
	p.subMu.Lock()
	fns := make([]func(core.PreferenceChange), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.subMu.Unlock()

	for _, fn := range fns {
		fn(change)
	}
}

// persistLocked writes the file through a temp file and rename. Callers hold p.mu.
func (p *Preferences) persistLocked() error {
	if p.path == "" {
		return nil
	}
	data, err := toml.Marshal(preferencesFile{Preferences: p.values})
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".preferences-*.toml")
	if err != nil {
		return fmt.Errorf("create temp preferences: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := os.Rename(tmp.Name(), p.path); err != nil {
		return fmt.Errorf("replace preferences %s: %w", p.path, err)
	}
	return nil
}
