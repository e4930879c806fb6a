// Package store is the host's persistence for sticky notes: the five named
// slots of every widget instance, keyed by instance ID.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fchimpan/sticky/internal/widget"
)

type Store interface {
	// Load returns the last committed state of id. A missing instance
	// yields widget.DefaultState() together with ErrNotFound.
	Load(ctx context.Context, id string) (widget.State, error)
	Save(ctx context.Context, id string, s widget.State) error
	List(ctx context.Context) ([]Entry, error)
}

type Entry struct {
	ID        string
	State     widget.State
	UpdatedAt time.Time
}

func NewID() string { return uuid.NewString() }

// Resolve picks the instance to open. An explicit id wins; otherwise the
// most recently updated instance is reused, and an empty store gets a fresh
// id. created reports whether the returned id has no stored state yet.
func Resolve(ctx context.Context, s Store, id string) (resolved string, st widget.State, created bool, err error) {
	if id != "" {
		st, err = s.Load(ctx, id)
		if errors.Is(err, ErrNotFound) {
			return id, st, true, nil
		}
		if err != nil {
			return "", widget.State{}, false, err
		}
		return id, st, false, nil
	}

	entries, err := s.List(ctx)
	if err != nil {
		return "", widget.State{}, false, err
	}
	if len(entries) == 0 {
		return NewID(), widget.DefaultState(), true, nil
	}
	latest := entries[0]
	return latest.ID, latest.State, false, nil
}

// sortEntries orders entries newest first, then by id for stability.
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].UpdatedAt.Equal(entries[j].UpdatedAt) {
			return entries[i].UpdatedAt.After(entries[j].UpdatedAt)
		}
		return entries[i].ID < entries[j].ID
	})
}

// MemoryStore keeps state for the lifetime of the process.
type MemoryStore struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now, entries: map[string]Entry{}}
}

func (m *MemoryStore) Load(ctx context.Context, id string) (widget.State, error) {
	if err := ctx.Err(); err != nil {
		return widget.State{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return widget.DefaultState(), fmt.Errorf("load %s: %w", id, ErrNotFound)
	}
	return e.State, nil
}

func (m *MemoryStore) Save(ctx context.Context, id string, s widget.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("instance id must be set")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = Entry{ID: id, State: s, UpdatedAt: m.now()}
	return nil
}

func (m *MemoryStore) List(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	out := make([]Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	m.mu.Unlock()
	sortEntries(out)
	return out, nil
}
