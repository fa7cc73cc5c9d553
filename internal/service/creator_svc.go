package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/orbitx-mcn/orbitx-go/internal/metrics"
	"github.com/orbitx-mcn/orbitx-go/internal/model"
	"github.com/orbitx-mcn/orbitx-go/internal/repository"
)

// ErrCreatorNotFound is returned by Get and Sync for an unknown id. Update and
// Delete treat a missing id as a successful no-op instead.
var ErrCreatorNotFound = errors.New("creator not found")

// lastSyncedFormat mirrors the dashboard's en-US locale timestamp.
const lastSyncedFormat = "1/2/2006, 3:04:05 PM"

const maxIDAttempts = 3

// CreatorService is the only mutation path for creator records. Each mutation
// runs mutate, persist, then audit while holding mu, so concurrent requests
// cannot interleave their read-modify-write cycles. The sequence is not
// crash-atomic: a crash after persist and before the audit append leaves the
// store one step ahead of the trail.
type CreatorService struct {
	mu     sync.Mutex
	repo   repository.CreatorRepository
	audit  *AuditLogger
	lookup ChannelLookup
	logger zerolog.Logger

	newID func() string
	now   func() time.Time
}

func NewCreatorService(repo repository.CreatorRepository, audit *AuditLogger, lookup ChannelLookup, logger zerolog.Logger) *CreatorService {
	return &CreatorService{
		repo:   repo,
		audit:  audit,
		lookup: lookup,
		logger: logger,
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// List returns every creator in insertion order.
func (s *CreatorService) List(ctx context.Context) ([]model.Creator, error) {
	return s.repo.List(ctx)
}

// Get returns one creator.
func (s *CreatorService) Get(ctx context.Context, id string) (*model.Creator, error) {
	c, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCreatorNotFound
	}
	return c, err
}

// Create stores a new creator built from patch and assigns it a fresh id.
func (s *CreatorService) Create(ctx context.Context, patch model.CreatorPatch) (*model.Creator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var c model.Creator
	patch.Apply(&c)

	var err error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		c.ID = s.newID()
		err = s.repo.Insert(ctx, c)
		if !errors.Is(err, repository.ErrDuplicateID) {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("create creator: %w", err)
	}

	if err := s.record(ctx, model.ActionCreatorAdded,
		fmt.Sprintf("Added new creator: %s (%s)", c.Name, c.ChannelName)); err != nil {
		return nil, err
	}
	return &c, nil
}

// Update merges patch onto the stored creator. It reports found=false, with
// no error and no audit entry, when the id does not exist.
func (s *CreatorService) Update(ctx context.Context, id string, patch model.CreatorPatch) (found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.repo.Update(ctx, id, patch)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Debug().Str("creator_id", id).Msg("update of unknown creator ignored")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("update creator %s: %w", id, err)
	}

	if err := s.record(ctx, model.ActionCreatorUpdated,
		fmt.Sprintf("Updated creator: %s (%s)", c.Name, c.ChannelName)); err != nil {
		return true, err
	}
	return true, nil
}

// Delete removes the creator. Deleting an unknown id reports found=false with
// no error and no audit entry, so repeated deletes are idempotent.
func (s *CreatorService) Delete(ctx context.Context, id string) (found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Debug().Str("creator_id", id).Msg("delete of unknown creator ignored")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete creator %s: %w", id, err)
	}

	err = s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete creator %s: %w", id, err)
	}

	if err := s.record(ctx, model.ActionCreatorDeleted,
		fmt.Sprintf("Deleted creator: %s (%s)", c.Name, c.ChannelName)); err != nil {
		return true, err
	}
	return true, nil
}

// Sync refreshes a creator's channel statistics from the lookup collaborator,
// bypassing any lookup cache. When the real service is unavailable the
// returned ChannelInfo carries Source "mock". A handle that matches no
// channel returns ErrChannelNotFound and leaves the creator untouched.
func (s *CreatorService) Sync(ctx context.Context, id, handle string) (*model.Creator, *model.ChannelInfo, error) {
	c, info, _, err := s.sync(ctx, id, handle, true, false)
	return c, info, err
}

// Resync is the background variant of Sync. It may answer from the lookup
// cache, and it neither writes nor audits when the statistics are unchanged.
func (s *CreatorService) Resync(ctx context.Context, id, handle string) (changed bool, err error) {
	_, _, changed, err = s.sync(ctx, id, handle, false, true)
	return changed, err
}

func (s *CreatorService) sync(ctx context.Context, id, handle string, fresh, skipUnchanged bool) (*model.Creator, *model.ChannelInfo, bool, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, nil, false, err
	}

	// Lookup happens outside the lock; it may take seconds against the real API.
	lookup := s.lookup.Lookup
	if r, ok := s.lookup.(ChannelRefresher); ok && fresh {
		lookup = r.Refresh
	}
	info, err := lookup(ctx, handle)
	if err != nil {
		return nil, nil, false, fmt.Errorf("lookup channel %s: %w", handle, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	linked := "@" + handle
	if skipUnchanged {
		current, err := s.Get(ctx, id)
		if err != nil {
			return nil, nil, false, err
		}
		if current.LinkedChannelHandle == linked &&
			current.ChannelName == info.Title &&
			current.Subscribers == info.SubscriberCount &&
			current.TotalViews == info.ViewCount &&
			current.VideoCount == info.VideoCount {
			return current, info, false, nil
		}
	}

	synced := s.now().Format(lastSyncedFormat)
	patch := model.CreatorPatch{
		LinkedChannelHandle: &linked,
		ChannelName:         &info.Title,
		Subscribers:         &info.SubscriberCount,
		TotalViews:          &info.ViewCount,
		VideoCount:          &info.VideoCount,
		LastSynced:          &synced,
	}

	c, err := s.repo.Update(ctx, id, patch)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, false, ErrCreatorNotFound
	}
	if err != nil {
		return nil, nil, false, fmt.Errorf("sync creator %s: %w", id, err)
	}

	if err := s.record(ctx, model.ActionCreatorSynced,
		fmt.Sprintf("Synced creator: %s with %s (%s data)", c.Name, linked, info.Source)); err != nil {
		return nil, nil, true, err
	}
	return c, info, true, nil
}

// record appends the audit entry for a mutation that has already been
// persisted. Must be called with mu held.
func (s *CreatorService) record(ctx context.Context, action, details string) error {
	metrics.CreatorMutations.WithLabelValues(action).Inc()
	if _, err := s.audit.Log(ctx, action, details); err != nil {
		s.logger.Error().Err(err).Str("action", action).Msg("creator persisted but audit entry was not written")
		return err
	}
	return nil
}
