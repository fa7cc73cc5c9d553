package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/orbitx-mcn/orbitx-go/internal/model"
)

var (
	// ErrNotFound is returned when no record matches the given id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateID is returned when inserting an id that already exists.
	ErrDuplicateID = errors.New("duplicate id")
)

// CreatorRepository is the backing store for creator records.
type CreatorRepository interface {
	List(ctx context.Context) ([]model.Creator, error)
	FindByID(ctx context.Context, id string) (*model.Creator, error)
	Insert(ctx context.Context, c model.Creator) error
	Update(ctx context.Context, id string, patch model.CreatorPatch) (*model.Creator, error)
	Delete(ctx context.Context, id string) error
}

// CreatorSaver persists a full snapshot of the creator collection.
type CreatorSaver interface {
	SaveCreators(creators []model.Creator) error
}

// MemoryCreatorRepo keeps creators in a map keyed by id, with a separate
// slice preserving insertion order. After each mutation the full collection
// is handed to the saver, if any. A failed save leaves the in-memory change
// in place.
type MemoryCreatorRepo struct {
	mu    sync.RWMutex
	byID  map[string]*model.Creator
	order []string
	saver CreatorSaver
}

// NewMemoryCreatorRepo builds a repo from an initial collection. Records with
// a duplicate id after the first occurrence are dropped.
func NewMemoryCreatorRepo(initial []model.Creator, saver CreatorSaver) *MemoryCreatorRepo {
	r := &MemoryCreatorRepo{
		byID:  make(map[string]*model.Creator, len(initial)),
		order: make([]string, 0, len(initial)),
		saver: saver,
	}
	for i := range initial {
		c := initial[i]
		if _, dup := r.byID[c.ID]; dup {
			continue
		}
		r.byID[c.ID] = &c
		r.order = append(r.order, c.ID)
	}
	return r
}

// List returns a copy of every creator in insertion order.
func (r *MemoryCreatorRepo) List(_ context.Context) ([]model.Creator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot(), nil
}

// FindByID returns a copy of the creator with the given id.
func (r *MemoryCreatorRepo) FindByID(_ context.Context, id string) (*model.Creator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *c
	return &out, nil
}

// Insert appends a new creator and persists the collection.
func (r *MemoryCreatorRepo) Insert(_ context.Context, c model.Creator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[c.ID]; exists {
		return fmt.Errorf("insert creator %s: %w", c.ID, ErrDuplicateID)
	}
	r.byID[c.ID] = &c
	r.order = append(r.order, c.ID)
	return r.persist()
}

// Update merges patch onto the stored creator and persists the collection.
func (r *MemoryCreatorRepo) Update(_ context.Context, id string, patch model.CreatorPatch) (*model.Creator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	patch.Apply(c)
	out := *c
	if err := r.persist(); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the creator and persists the collection.
func (r *MemoryCreatorRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return r.persist()
}

// snapshot must be called with mu held.
func (r *MemoryCreatorRepo) snapshot() []model.Creator {
	out := make([]model.Creator, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.byID[id])
	}
	return out
}

// persist must be called with mu held for writing.
func (r *MemoryCreatorRepo) persist() error {
	if r.saver == nil {
		return nil
	}
	if err := r.saver.SaveCreators(r.snapshot()); err != nil {
		return fmt.Errorf("save creators: %w", err)
	}
	return nil
}
