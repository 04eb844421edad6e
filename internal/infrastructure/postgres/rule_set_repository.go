package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/TollFee-api/internal/domain"
	"github.com/jhoicas/TollFee-api/internal/domain/entity"
	"github.com/jhoicas/TollFee-api/internal/domain/repository"
)

var _ repository.RuleSetRepository = (*RuleSetRepo)(nil)

// RuleSetRepo implementación del puerto RuleSetRepository sobre PostgreSQL.
// Un tarifario ocupa una fila en toll_rule_sets más sus franjas y festivos.
type RuleSetRepo struct {
	pool *pgxpool.Pool
	tx   *TxRunner
}

// NewRuleSetRepository construye el adaptador de persistencia para tarifarios.
func NewRuleSetRepository(pool *pgxpool.Pool) *RuleSetRepo {
	return &RuleSetRepo{pool: pool, tx: NewTxRunner(pool)}
}

const ruleSetColumns = `
	id, name, valid_from, max_daily_fee, toll_free_window_seconds, toll_free_vehicle_types,
	toll_free_weekdays, toll_free_months, exempt_public_holidays, exempt_day_before_holiday`

// Create persiste el tarifario con sus franjas y festivos en una sola transacción.
func (r *RuleSetRepo) Create(ctx context.Context, rs *entity.RuleSet) error {
	return r.tx.Run(ctx, func(q Querier) error {
		row := toRow(rs)
		_, err := q.Exec(ctx, `
			INSERT INTO toll_rule_sets (`+ruleSetColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			row.id, row.name, row.validFrom, row.maxDailyFee, row.windowSeconds, row.vehicleTypes,
			row.weekdays, row.months, row.exemptHolidays, row.exemptDayBefore,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: tarifario vigente desde %s", domain.ErrDuplicate, rs.ValidFrom)
			}
			return fmt.Errorf("insert rule set: %w", err)
		}

		batch := &pgx.Batch{}
		for i, rule := range rs.Rules {
			batch.Queue(`
				INSERT INTO toll_bands (rule_set_id, position, valid_from, valid_to, fee)
				VALUES ($1, $2, $3, $4, $5)`,
				rs.ID, i, pgTime(rule.ValidFrom), pgTime(rule.ValidTo), rule.Fee,
			)
		}
		for _, h := range rs.Holidays() {
			batch.Queue(`
				INSERT INTO toll_public_holidays (rule_set_id, holiday, name)
				VALUES ($1, $2, $3)`,
				rs.ID, pgDate(h.Date), h.Name,
			)
		}
		if err := q.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert bands/holidays: %w", err)
		}
		return nil
	})
}

// List obtiene todos los tarifarios ordenados por valid_from.
func (r *RuleSetRepo) List(ctx context.Context) ([]*entity.RuleSet, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+ruleSetColumns+` FROM toll_rule_sets ORDER BY valid_from`)
	if err != nil {
		return nil, fmt.Errorf("list rule sets: %w", err)
	}
	defer rows.Close()

	var list []*entity.RuleSet
	byID := map[string]*entity.RuleSet{}
	for rows.Next() {
		var row ruleSetRow
		if err := row.scan(rows); err != nil {
			return nil, fmt.Errorf("scan rule set: %w", err)
		}
		rs, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		list = append(list, rs)
		byID[rs.ID] = rs
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, byID); err != nil {
		return nil, err
	}
	return list, nil
}

// GetByValidFrom obtiene el tarifario que empieza en la fecha indicada. nil si no existe.
func (r *RuleSetRepo) GetByValidFrom(ctx context.Context, validFrom civil.Date) (*entity.RuleSet, error) {
	var row ruleSetRow
	err := row.scan(r.pool.QueryRow(ctx,
		`SELECT `+ruleSetColumns+` FROM toll_rule_sets WHERE valid_from = $1`, pgDate(validFrom)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rule set by valid_from: %w", err)
	}
	rs, err := row.toEntity()
	if err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, map[string]*entity.RuleSet{rs.ID: rs}); err != nil {
		return nil, err
	}
	return rs, nil
}

// Delete elimina un tarifario; franjas y festivos caen por cascada.
func (r *RuleSetRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM toll_rule_sets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete rule set: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RuleSetRepo) loadChildren(ctx context.Context, byID map[string]*entity.RuleSet) error {
	if len(byID) == 0 {
		return nil
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT rule_set_id, valid_from, valid_to, fee
		FROM toll_bands WHERE rule_set_id = ANY($1) ORDER BY rule_set_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list bands: %w", err)
	}
	for rows.Next() {
		var (
			id       string
			from, to pgtype.Time
			fee      decimal.Decimal
		)
		if err := rows.Scan(&id, &from, &to, &fee); err != nil {
			rows.Close()
			return fmt.Errorf("scan band: %w", err)
		}
		rs := byID[id]
		rs.Rules = append(rs.Rules, entity.TollRule{ValidFrom: civilTime(from), ValidTo: civilTime(to), Fee: fee})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.pool.Query(ctx, `
		SELECT rule_set_id, holiday, name
		FROM toll_public_holidays WHERE rule_set_id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("list holidays: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id   string
			day  pgtype.Date
			name string
		)
		if err := rows.Scan(&id, &day, &name); err != nil {
			return fmt.Errorf("scan holiday: %w", err)
		}
		byID[id].PublicHolidays[civilDate(day)] = name
	}
	return rows.Err()
}

// ruleSetRow fila de toll_rule_sets.
type ruleSetRow struct {
	id              string
	name            string
	validFrom       pgtype.Date
	maxDailyFee     decimal.Decimal
	windowSeconds   int32
	vehicleTypes    []string
	weekdays        []int16
	months          []int16
	exemptHolidays  bool
	exemptDayBefore bool
}

func (row *ruleSetRow) scan(s pgx.Row) error {
	return s.Scan(
		&row.id, &row.name, &row.validFrom, &row.maxDailyFee, &row.windowSeconds, &row.vehicleTypes,
		&row.weekdays, &row.months, &row.exemptHolidays, &row.exemptDayBefore,
	)
}

func toRow(rs *entity.RuleSet) ruleSetRow {
	row := ruleSetRow{
		id:              rs.ID,
		name:            rs.Name,
		validFrom:       pgDate(rs.ValidFrom),
		maxDailyFee:     rs.MaxDailyFee,
		windowSeconds:   int32(rs.TollFreeWindow / time.Second),
		vehicleTypes:    []string{},
		weekdays:        []int16{},
		months:          []int16{},
		exemptHolidays:  rs.Policy.ExemptPublicHolidays,
		exemptDayBefore: rs.Policy.ExemptDayBeforeHoliday,
	}
	for _, vt := range rs.VehicleTypesExempt() {
		row.vehicleTypes = append(row.vehicleTypes, string(vt))
	}
	for _, d := range rs.Policy.TollFreeWeekdays {
		row.weekdays = append(row.weekdays, int16(d))
	}
	for _, m := range rs.Policy.TollFreeMonths {
		row.months = append(row.months, int16(m))
	}
	return row
}

// toEntity arma el tarifario sin franjas ni festivos (los agrega loadChildren).
func (row ruleSetRow) toEntity() (*entity.RuleSet, error) {
	rs := &entity.RuleSet{
		ID:                   row.id,
		Name:                 row.name,
		ValidFrom:            civilDate(row.validFrom),
		MaxDailyFee:          row.maxDailyFee,
		TollFreeWindow:       time.Duration(row.windowSeconds) * time.Second,
		PublicHolidays:       map[civil.Date]string{},
		TollFreeVehicleTypes: map[entity.VehicleType]bool{},
		Policy: entity.DatePolicy{
			ExemptPublicHolidays:   row.exemptHolidays,
			ExemptDayBeforeHoliday: row.exemptDayBefore,
		},
	}
	for _, s := range row.vehicleTypes {
		vt, err := entity.ParseVehicleType(s)
		if err != nil {
			return nil, fmt.Errorf("%w: tarifario %s: %v", domain.ErrConfiguration, row.id, err)
		}
		rs.TollFreeVehicleTypes[vt] = true
	}
	for _, d := range row.weekdays {
		rs.Policy.TollFreeWeekdays = append(rs.Policy.TollFreeWeekdays, time.Weekday(d))
	}
	for _, m := range row.months {
		rs.Policy.TollFreeMonths = append(rs.Policy.TollFreeMonths, time.Month(m))
	}
	return rs, nil
}
