// Package repository persists tracked team data.
package repository

import (
	"context"

	"github.com/okian/fpl-tracker/internal/domain/model"
)

// Store loads and saves the full TeamsData mapping.
type Store interface {
	// Load returns the persisted data, or an empty mapping when nothing
	// has been saved yet.
	Load(ctx context.Context) (model.TeamsData, error)

	// Save replaces everything persisted with data.
	Save(ctx context.Context, data model.TeamsData) error
}
