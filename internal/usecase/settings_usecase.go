package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/mahin/ledgercore/internal/domain"
)

// SettingsUseCase handles the finance settings singleton.
type SettingsUseCase struct {
	settingsRepo SettingsRepository
}

// NewSettingsUseCase creates a new SettingsUseCase.
func NewSettingsUseCase(settingsRepo SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{settingsRepo: settingsRepo}
}

// Get returns the stored settings, lazily creating the defaults (BDT base
// currency, negative balances allowed) on first read.
func (uc *SettingsUseCase) Get(ctx context.Context) (*domain.Settings, error) {
	settings, err := uc.settingsRepo.Get(ctx)
	if err == nil {
		return settings, nil
	}

	if !errors.Is(err, domain.ErrSettingsNotFound) {
		return nil, err
	}

	settings = domain.DefaultSettings(time.Now().UTC())
	if err := uc.settingsRepo.Upsert(ctx, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// UpdateSettingsInput represents input for updating finance settings.
type UpdateSettingsInput struct {
	BaseCurrency          string
	AllowNegativeBalances bool
}

// Update replaces the finance settings.
func (uc *SettingsUseCase) Update(ctx context.Context, input UpdateSettingsInput) (*domain.Settings, error) {
	settings := &domain.Settings{
		BaseCurrency:          input.BaseCurrency,
		AllowNegativeBalances: input.AllowNegativeBalances,
		UpdatedAt:             time.Now().UTC(),
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	if err := uc.settingsRepo.Upsert(ctx, settings); err != nil {
		return nil, err
	}

	return settings, nil
}
