package toll

import (
	"fmt"
	"sort"

	"cloud.google.com/go/civil"

	"github.com/jhoicas/TollFee-api/internal/domain"
	"github.com/jhoicas/TollFee-api/internal/domain/entity"
)

// Catalog colección inmutable de tarifarios ordenada por ValidFrom.
type Catalog struct {
	ruleSets []*entity.RuleSet
}

// NewCatalog valida cada tarifario y los ordena por fecha de vigencia.
// Dos tarifarios con la misma ValidFrom son un error de configuración.
func NewCatalog(ruleSets ...*entity.RuleSet) (*Catalog, error) {
	if len(ruleSets) == 0 {
		return nil, fmt.Errorf("%w: catálogo sin tarifarios", domain.ErrConfiguration)
	}
	sorted := make([]*entity.RuleSet, len(ruleSets))
	copy(sorted, ruleSets)
	for _, rs := range sorted {
		if err := rs.Validate(); err != nil {
			return nil, err
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ValidFrom.Before(sorted[j].ValidFrom) })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].ValidFrom == sorted[i-1].ValidFrom {
			return nil, fmt.Errorf("%w: dos tarifarios vigentes desde %s", domain.ErrConfiguration, sorted[i].ValidFrom)
		}
	}
	return &Catalog{ruleSets: sorted}, nil
}

// RuleSetFor devuelve el tarifario con la ValidFrom más reciente que no supere la fecha.
func (c *Catalog) RuleSetFor(d civil.Date) (*entity.RuleSet, error) {
	i := sort.Search(len(c.ruleSets), func(i int) bool { return c.ruleSets[i].ValidFrom.After(d) })
	if i == 0 {
		return nil, fmt.Errorf("%w: no hay tarifario vigente para %s", domain.ErrConfiguration, d)
	}
	return c.ruleSets[i-1], nil
}

// RuleSets copia de los tarifarios en orden de vigencia.
func (c *Catalog) RuleSets() []*entity.RuleSet {
	out := make([]*entity.RuleSet, len(c.ruleSets))
	copy(out, c.ruleSets)
	return out
}

// Len cantidad de tarifarios.
func (c *Catalog) Len() int { return len(c.ruleSets) }
