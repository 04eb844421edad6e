package repository

import (
	"context"

	"cloud.google.com/go/civil"

	"github.com/jhoicas/TollFee-api/internal/domain/entity"
)

// RuleSetRepository define el puerto de persistencia para tarifarios (DIP).
type RuleSetRepository interface {
	// Create persiste el tarifario. ErrDuplicate si ya existe uno con la misma ValidFrom.
	Create(ctx context.Context, rs *entity.RuleSet) error
	// List devuelve todos los tarifarios ordenados por ValidFrom.
	List(ctx context.Context) ([]*entity.RuleSet, error)
	GetByValidFrom(ctx context.Context, validFrom civil.Date) (*entity.RuleSet, error)
	Delete(ctx context.Context, id string) error
}
