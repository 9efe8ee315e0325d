// Package service contains the business logic for the wedding timeline API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here: services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pkordes/wedding-timeline/internal/domain"
	"github.com/pkordes/wedding-timeline/internal/repo"
)

// maxPresetNameLen bounds preset names so they fit comfortably in a picker.
const maxPresetNameLen = 100

// PresetService implements business logic for Preset operations.
type PresetService struct {
	repo repo.PresetRepo
}

// NewPresetService constructs a PresetService backed by the provided PresetRepo.
func NewPresetService(r repo.PresetRepo) *PresetService {
	return &PresetService{repo: r}
}

// Create validates and persists a new preset.
func (s *PresetService) Create(ctx context.Context, p domain.Preset) (domain.Preset, error) {
	p, err := validatePreset(p)
	if err != nil {
		return domain.Preset{}, fmt.Errorf("service.PresetService.Create: %w", err)
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return domain.Preset{}, fmt.Errorf("service.PresetService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single preset by ID.
func (s *PresetService) GetByID(ctx context.Context, id uuid.UUID) (domain.Preset, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Preset{}, fmt.Errorf("service.PresetService.GetByID: %w", err)
	}
	return p, nil
}

// List returns one page of presets and the total number of presets.
func (s *PresetService) List(ctx context.Context, page domain.PaginationParams) ([]domain.Preset, int64, error) {
	presets, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("service.PresetService.List: %w", err)
	}
	return presets, total, nil
}

// Update validates and overwrites an existing preset.
func (s *PresetService) Update(ctx context.Context, p domain.Preset) (domain.Preset, error) {
	p, err := validatePreset(p)
	if err != nil {
		return domain.Preset{}, fmt.Errorf("service.PresetService.Update: %w", err)
	}
	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return domain.Preset{}, fmt.Errorf("service.PresetService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a preset by ID.
func (s *PresetService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.PresetService.Delete: %w", err)
	}
	return nil
}

// validatePreset trims the name and checks it and the durations.
func validatePreset(p domain.Preset) (domain.Preset, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return p, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(p.Name) > maxPresetNameLen {
		return p, fmt.Errorf("%w: name must be at most %d characters", domain.ErrValidation, maxPresetNameLen)
	}
	if err := p.Defaults.Validate(); err != nil {
		return p, err
	}
	return p, nil
}
