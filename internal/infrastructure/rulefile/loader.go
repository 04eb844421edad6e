package rulefile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jhoicas/TollFee-api/internal/application/tolling"
	"github.com/jhoicas/TollFee-api/internal/domain"
	"github.com/jhoicas/TollFee-api/internal/domain/entity"
)

var _ tolling.RuleSetSource = (*Source)(nil)

// Source fuente de tarifarios respaldada por un archivo YAML.
type Source struct {
	path string
}

// NewSource construye la fuente para el archivo indicado.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Name implementa tolling.RuleSetSource.
func (s *Source) Name() string { return "file" }

// Path ruta del archivo.
func (s *Source) Path() string { return s.path }

// LoadRuleSets lee y valida el archivo completo en cada llamada.
func (s *Source) LoadRuleSets(_ context.Context) ([]*entity.RuleSet, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", s.path, err)
	}
	sets, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return sets, nil
}

// Parse decodifica un documento YAML. Campos desconocidos son un error.
func Parse(data []byte) ([]*entity.RuleSet, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: archivo vacío", domain.ErrConfiguration)
		}
		return nil, fmt.Errorf("%w: yaml: %v", domain.ErrConfiguration, err)
	}
	if len(doc.RuleSets) == 0 {
		return nil, fmt.Errorf("%w: rule_sets vacío", domain.ErrConfiguration)
	}

	sets := make([]*entity.RuleSet, 0, len(doc.RuleSets))
	for i, d := range doc.RuleSets {
		in, err := d.toDTO()
		if err != nil {
			return nil, fmt.Errorf("rule_sets[%d]: %w", i, err)
		}
		rs, err := tolling.RuleSetFromDTO(in)
		if err != nil {
			return nil, fmt.Errorf("rule_sets[%d]: %w", i, err)
		}
		sets = append(sets, rs)
	}
	return sets, nil
}

// Encode serializa los tarifarios en el formato que lee Parse.
func Encode(w io.Writer, sets []*entity.RuleSet) error {
	doc := Document{RuleSets: make([]RuleSetDoc, 0, len(sets))}
	for _, rs := range sets {
		doc.RuleSets = append(doc.RuleSets, fromDTO(tolling.RuleSetToDTO(rs)))
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("yaml: %w", err)
	}
	return enc.Close()
}
