package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/orbitx-mcn/orbitx-go/internal/model"
)

const creatorColumns = `
	id, name, channel_name, subscribers, total_views, video_count, revenue,
	niche, avatar_url, status, trend, linked_channel_handle, last_synced,
	monetization_status, upload_policy`

// PostgresCreatorRepo stores creators in the creators table, one row per
// record, so mutations touch a single row instead of rewriting the collection.
type PostgresCreatorRepo struct {
	pool PgxPool
}

func NewPostgresCreatorRepo(pool PgxPool) *PostgresCreatorRepo {
	return &PostgresCreatorRepo{pool: pool}
}

// SeedIfEmpty inserts the sample roster when the table has no rows.
func (r *PostgresCreatorRepo) SeedIfEmpty(ctx context.Context) (bool, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM creators`).Scan(&n); err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	for _, c := range SeedCreators() {
		if err := r.Insert(ctx, c); err != nil {
			return false, err
		}
	}
	return true, nil
}

// List returns all creators in insertion order.
func (r *PostgresCreatorRepo) List(ctx context.Context) ([]model.Creator, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+creatorColumns+` FROM creators ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	creators := []model.Creator{}
	for rows.Next() {
		c, err := scanCreator(rows)
		if err != nil {
			return nil, err
		}
		creators = append(creators, *c)
	}
	return creators, rows.Err()
}

// FindByID returns a single creator by id.
func (r *PostgresCreatorRepo) FindByID(ctx context.Context, id string) (*model.Creator, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+creatorColumns+` FROM creators WHERE id = $1`, id)
	c, err := scanCreator(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

func (r *PostgresCreatorRepo) Insert(ctx context.Context, c model.Creator) error {
	query := `
		INSERT INTO creators (` + creatorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO NOTHING`

	tag, err := r.pool.Exec(ctx, query, creatorArgs(&c)...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("insert creator %s: %w", c.ID, ErrDuplicateID)
	}
	return nil
}

// Update reads the row under FOR UPDATE, merges the patch and writes it back
// in one transaction.
func (r *PostgresCreatorRepo) Update(ctx context.Context, id string, patch model.CreatorPatch) (*model.Creator, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `SELECT `+creatorColumns+` FROM creators WHERE id = $1 FOR UPDATE`, id)
	c, err := scanCreator(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	patch.Apply(c)

	_, err = tx.Exec(ctx, `
		UPDATE creators
		SET name = $2, channel_name = $3, subscribers = $4, total_views = $5,
		    video_count = $6, revenue = $7, niche = $8, avatar_url = $9,
		    status = $10, trend = $11, linked_channel_handle = $12,
		    last_synced = $13, monetization_status = $14, upload_policy = $15
		WHERE id = $1`, creatorArgs(c)...)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *PostgresCreatorRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM creators WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCreator(row pgx.Row) (*model.Creator, error) {
	var c model.Creator
	err := row.Scan(
		&c.ID, &c.Name, &c.ChannelName, &c.Subscribers, &c.TotalViews, &c.VideoCount, &c.Revenue,
		&c.Niche, &c.AvatarURL, &c.Status, &c.Trend, &c.LinkedChannelHandle, &c.LastSynced,
		&c.MonetizationStatus, &c.UploadPolicy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func creatorArgs(c *model.Creator) []any {
	return []any{
		c.ID, c.Name, c.ChannelName, c.Subscribers, c.TotalViews, c.VideoCount, c.Revenue,
		c.Niche, c.AvatarURL, c.Status, c.Trend, c.LinkedChannelHandle, c.LastSynced,
		c.MonetizationStatus, c.UploadPolicy,
	}
}
