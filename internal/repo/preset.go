package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/wedding-timeline/internal/domain"
)

// PresetRepo defines the persistence operations for Presets.
// The service layer depends on this interface, not the Postgres implementation.
type PresetRepo interface {
	// Create inserts a new preset and returns it with id and timestamps set.
	// Returns domain.ErrConflict if the name is taken.
	Create(ctx context.Context, p domain.Preset) (domain.Preset, error)

	// GetByID returns domain.ErrNotFound if no preset with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Preset, error)

	// List returns one page of presets ordered by name, and the total count.
	List(ctx context.Context, page domain.PaginationParams) ([]domain.Preset, int64, error)

	// Update overwrites name and defaults. Returns domain.ErrNotFound or
	// domain.ErrConflict.
	Update(ctx context.Context, p domain.Preset) (domain.Preset, error)

	// Delete returns domain.ErrNotFound if the preset does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgPresetRepo is the Postgres implementation of PresetRepo.
// Defaults are stored as a jsonb document.
type pgPresetRepo struct {
	db db
}

// NewPresetRepo constructs a PresetRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPresetRepo(db db) PresetRepo {
	return &pgPresetRepo{db: db}
}

const presetColumns = `id, name, defaults, created_at, updated_at`

// Create inserts a preset row and returns the persisted record.
func (r *pgPresetRepo) Create(ctx context.Context, p domain.Preset) (domain.Preset, error) {
	const q = `
		INSERT INTO presets (name, defaults)
		VALUES (@name, @defaults)
		RETURNING ` + presetColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": p.Name, "defaults": p.Defaults})
	result, err := scanPreset(row)
	if err != nil {
		return domain.Preset{}, fmt.Errorf("repo.PresetRepo.Create: %w", mapError(err))
	}
	return result, nil
}

// GetByID retrieves a preset by primary key.
func (r *pgPresetRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Preset, error) {
	const q = `SELECT ` + presetColumns + ` FROM presets WHERE id = @id`

	result, err := scanPreset(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Preset{}, fmt.Errorf("repo.PresetRepo.GetByID: %w", mapError(err))
	}
	return result, nil
}

// List returns one page of presets ordered by name. The total is read with a
// window function so the page and the count come from one snapshot.
func (r *pgPresetRepo) List(ctx context.Context, page domain.PaginationParams) ([]domain.Preset, int64, error) {
	const q = `
		SELECT ` + presetColumns + `, count(*) OVER () AS total
		FROM presets
		ORDER BY name
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": page.Limit, "offset": page.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.PresetRepo.List: %w", err)
	}
	defer rows.Close()

	presets := []domain.Preset{}
	var total int64
	for rows.Next() {
		var (
			p  domain.Preset
			id pgtype.UUID
		)
		if err := rows.Scan(&id, &p.Name, &p.Defaults, &p.CreatedAt, &p.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("repo.PresetRepo.List: scan: %w", err)
		}
		p.ID = uuid.UUID(id.Bytes)
		presets = append(presets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.PresetRepo.List: rows: %w", err)
	}

	// A page past the end has no rows to carry the window count.
	if len(presets) == 0 && page.Offset() > 0 {
		if err := r.db.QueryRow(ctx, `SELECT count(*) FROM presets`).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("repo.PresetRepo.List: count: %w", err)
		}
	}
	return presets, total, nil
}

// Update overwrites a preset's name and defaults and bumps updated_at.
func (r *pgPresetRepo) Update(ctx context.Context, p domain.Preset) (domain.Preset, error) {
	const q = `
		UPDATE presets
		SET name       = @name,
		    defaults   = @defaults,
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + presetColumns

	args := pgx.NamedArgs{
		"id":       p.ID,
		"name":     p.Name,
		"defaults": p.Defaults,
	}
	result, err := scanPreset(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Preset{}, fmt.Errorf("repo.PresetRepo.Update: %w", mapError(err))
	}
	return result, nil
}

// Delete removes a preset by primary key.
func (r *pgPresetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM presets WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.PresetRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PresetRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanPreset maps one row into a domain.Preset. The jsonb defaults column
// decodes straight into domain.Defaults.
func scanPreset(s scanner) (domain.Preset, error) {
	var (
		p  domain.Preset
		id pgtype.UUID
	)
	if err := s.Scan(&id, &p.Name, &p.Defaults, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return domain.Preset{}, err
	}
	p.ID = uuid.UUID(id.Bytes)
	return p, nil
}
