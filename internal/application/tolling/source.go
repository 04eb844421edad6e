package tolling

import (
	"context"
	"fmt"

	"github.com/jhoicas/TollFee-api/internal/domain/entity"
	"github.com/jhoicas/TollFee-api/internal/domain/repository"
	"github.com/jhoicas/TollFee-api/internal/domain/toll"
)

// RuleSetSource origen de los tarifarios con los que se arma el catálogo.
type RuleSetSource interface {
	Name() string
	LoadRuleSets(ctx context.Context) ([]*entity.RuleSet, error)
}

// DefaultSource tarifarios incluidos en el binario.
type DefaultSource struct{}

// Name implementa RuleSetSource.
func (DefaultSource) Name() string { return "default" }

// LoadRuleSets implementa RuleSetSource.
func (DefaultSource) LoadRuleSets(context.Context) ([]*entity.RuleSet, error) {
	return []*entity.RuleSet{toll.DefaultRuleSet2025()}, nil
}

// RepositorySource lee los tarifarios persistidos. Con la tabla vacía usa los incluidos en el binario.
type RepositorySource struct {
	repo repository.RuleSetRepository
}

// NewRepositorySource construye la fuente sobre el repositorio.
func NewRepositorySource(repo repository.RuleSetRepository) *RepositorySource {
	return &RepositorySource{repo: repo}
}

// Name implementa RuleSetSource.
func (s *RepositorySource) Name() string { return "postgres" }

// LoadRuleSets implementa RuleSetSource.
func (s *RepositorySource) LoadRuleSets(ctx context.Context) ([]*entity.RuleSet, error) {
	sets, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar tarifarios: %w", err)
	}
	if len(sets) == 0 {
		return DefaultSource{}.LoadRuleSets(ctx)
	}
	return sets, nil
}
