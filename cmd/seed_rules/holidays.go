package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/civil"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/TollFee-api/internal/domain/entity"
)

// readHolidays lee líneas "fecha;nombre" (también acepta coma). Las líneas que empiezan con # se ignoran.
func readHolidays(r io.Reader, charset string) ([]entity.Holiday, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
	case "iso-8859-1", "iso8859-1", "latin1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	case "windows-1252", "cp1252":
		r = transform.NewReader(r, charmap.Windows1252.NewDecoder())
	default:
		return nil, fmt.Errorf("charset no soportado: %s", charset)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := string(data)
	cr := csv.NewReader(strings.NewReader(text))
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if strings.Contains(firstLine(text), ";") {
		cr.Comma = ';'
	}

	var out []entity.Holiday
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) == 0 || strings.TrimSpace(rec[0]) == "" {
			continue
		}
		d, err := entity.ParseDate(rec[0])
		if err != nil {
			// cabecera
			if len(out) == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "date") {
				continue
			}
			return nil, err
		}
		h := entity.Holiday{Date: d}
		if len(rec) > 1 {
			h.Name = strings.TrimSpace(rec[1])
		}
		out = append(out, h)
	}
	return out, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// nextRuleSet copia franjas, tope, ventana, exenciones y política del tarifario base
// con la nueva vigencia y el calendario de festivos indicado.
func nextRuleSet(base *entity.RuleSet, validFrom civil.Date, holidays []entity.Holiday) *entity.RuleSet {
	next := &entity.RuleSet{
		Name:                 fmt.Sprintf("rules-%d", validFrom.Year),
		ValidFrom:            validFrom,
		MaxDailyFee:          base.MaxDailyFee,
		TollFreeWindow:       base.TollFreeWindow,
		PublicHolidays:       entity.HolidaySet(holidays...),
		TollFreeVehicleTypes: entity.VehicleTypeSet(base.VehicleTypesExempt()...),
		Rules:                append([]entity.TollRule(nil), base.Rules...),
		Policy:               base.Policy,
	}
	return next
}
