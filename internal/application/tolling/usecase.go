package tolling

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/jhoicas/TollFee-api/internal/application/dto"
	"github.com/jhoicas/TollFee-api/internal/domain"
	"github.com/jhoicas/TollFee-api/internal/domain/entity"
	"github.com/jhoicas/TollFee-api/internal/domain/repository"
	"github.com/jhoicas/TollFee-api/internal/domain/toll"
	"github.com/jhoicas/TollFee-api/pkg/logger"
)

// ErrReadOnlySource la fuente configurada no admite altas de tarifarios.
var ErrReadOnlySource = errors.New("la fuente de tarifarios es de solo lectura")

// TollUseCase casos de uso de cálculo de peajes y administración del catálogo.
// El motor se reemplaza atómicamente en cada recarga; las consultas en curso
// terminan con el catálogo que tomaron.
type TollUseCase struct {
	source RuleSetSource
	repo   repository.RuleSetRepository
	log    *logger.Logger

	calc     atomic.Pointer[toll.Calculator]
	reloadMu sync.Mutex
}

// NewTollUseCase carga el catálogo inicial. repo puede ser nil (fuente de solo lectura).
func NewTollUseCase(ctx context.Context, source RuleSetSource, repo repository.RuleSetRepository, log *logger.Logger) (*TollUseCase, error) {
	if log == nil {
		log = logger.Nop()
	}
	uc := &TollUseCase{source: source, repo: repo, log: log.Component("tolling")}
	if _, err := uc.Reload(ctx); err != nil {
		return nil, err
	}
	return uc, nil
}

// SourceName nombre de la fuente de tarifarios.
func (uc *TollUseCase) SourceName() string { return uc.source.Name() }

// Calculator motor vigente.
func (uc *TollUseCase) Calculator() *toll.Calculator { return uc.calc.Load() }

// Reload vuelve a leer la fuente. Si el resultado no es válido se conserva el catálogo anterior.
func (uc *TollUseCase) Reload(ctx context.Context) (*dto.ReloadResponse, error) {
	uc.reloadMu.Lock()
	defer uc.reloadMu.Unlock()

	sets, err := uc.source.LoadRuleSets(ctx)
	if err != nil {
		uc.log.Error().Err(err).Str("source", uc.source.Name()).Msg("carga de tarifarios")
		return nil, err
	}
	catalog, err := toll.NewCatalog(sets...)
	if err != nil {
		uc.log.Error().Err(err).Str("source", uc.source.Name()).Msg("catálogo rechazado, se conserva el anterior")
		return nil, err
	}
	uc.calc.Store(toll.NewCalculator(catalog))
	uc.log.Info().Str("source", uc.source.Name()).Int("rule_sets", catalog.Len()).Msg("catálogo de tarifarios cargado")
	return &dto.ReloadResponse{Source: uc.source.Name(), RuleSets: catalog.Len()}, nil
}

// PassageFee tarifa de una pasada individual.
func (uc *TollUseCase) PassageFee(in dto.PassageFeeRequest) (*dto.PassageFeeResponse, error) {
	vt, err := entity.ParseVehicleType(in.VehicleType)
	if err != nil {
		return nil, err
	}
	at, err := entity.ParseDateTime(in.PassageTime)
	if err != nil {
		return nil, err
	}
	q, err := uc.Calculator().QuotePassage(entity.NewVehicle(vt), at)
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Str("vehicle", string(vt)).Str("at", at.String()).Str("fee", q.Fee.String()).Msg("tarifa de pasada")
	return &dto.PassageFeeResponse{
		Fee:              q.Fee,
		RuleSetValidFrom: q.RuleSet.ValidFrom.String(),
		TollFree:         q.Exemption != toll.NotExempt,
		Exemption:        string(q.Exemption),
	}, nil
}

// DailyToll total de un día con el desglose de ventanas. Times nil es un error; vacío devuelve 0.
func (uc *TollUseCase) DailyToll(in dto.DailyTollRequest) (*dto.DailyTollResponse, error) {
	vt, err := entity.ParseVehicleType(in.VehicleType)
	if err != nil {
		return nil, err
	}
	date, err := entity.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	if in.Times == nil {
		return nil, fmt.Errorf("%w: times es requerido", domain.ErrInvalidArgument)
	}
	times := make([]civil.Time, 0, len(in.Times))
	for _, s := range in.Times {
		t, err := entity.ParseTimeOfDay(s)
		if err != nil {
			return nil, err
		}
		times = append(times, t)
	}

	b, err := uc.Calculator().DailyBreakdown(entity.NewVehicle(vt), date, times)
	if err != nil {
		return nil, err
	}
	uc.log.Debug().
		Str("vehicle", string(vt)).
		Str("date", date.String()).
		Int("passages", len(times)).
		Str("total", b.Total.String()).
		Bool("capped", b.Capped).
		Msg("total diario")

	out := &dto.DailyTollResponse{
		Date:             date.String(),
		RuleSetValidFrom: b.RuleSet.ValidFrom.String(),
		TotalFee:         b.Total,
		RawTotal:         b.RawTotal,
		Capped:           b.Capped,
		TollFree:         b.Exemption != toll.NotExempt,
		Exemption:        string(b.Exemption),
		Windows:          make([]dto.WindowResponse, 0, len(b.Windows)),
	}
	for _, w := range b.Windows {
		wr := dto.WindowResponse{
			Start:    entity.FormatTimeOfDay(w.Start),
			End:      formatOffset(w.End),
			Passages: make([]string, 0, len(w.Passages)),
			Fee:      w.Fee,
		}
		for _, p := range w.Passages {
			wr.Passages = append(wr.Passages, entity.FormatTimeOfDay(p))
		}
		out.Windows = append(out.Windows, wr)
	}
	return out, nil
}

// formatOffset HH:MM desde medianoche; una ventana que pasa la medianoche muestra horas >= 24.
func formatOffset(d time.Duration) string {
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	if s == 0 {
		return fmt.Sprintf("%02d:%02d", h, m)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// ListRuleSets tarifarios del catálogo vigente.
func (uc *TollUseCase) ListRuleSets() dto.RuleSetListResponse {
	sets := uc.Calculator().Catalog().RuleSets()
	out := dto.RuleSetListResponse{Source: uc.source.Name(), Items: make([]dto.RuleSetSummary, 0, len(sets))}
	for _, rs := range sets {
		out.Items = append(out.Items, toSummary(rs))
	}
	return out
}

// ApplicableRuleSet tarifario que rige en la fecha indicada.
func (uc *TollUseCase) ApplicableRuleSet(date string) (*dto.RuleSetDTO, error) {
	d, err := entity.ParseDate(date)
	if err != nil {
		return nil, err
	}
	rs, err := uc.Calculator().RuleSetFor(d)
	if err != nil {
		return nil, err
	}
	out := RuleSetToDTO(rs)
	return &out, nil
}

// CreateRuleSet persiste un tarifario nuevo y recarga el catálogo.
// Solo disponible con una fuente respaldada por repositorio.
func (uc *TollUseCase) CreateRuleSet(ctx context.Context, operator string, in dto.RuleSetDTO) (*dto.RuleSetDTO, error) {
	if uc.repo == nil {
		return nil, ErrReadOnlySource
	}
	rs, err := RuleSetFromDTO(in)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByValidFrom(ctx, rs.ValidFrom)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe un tarifario vigente desde %s", domain.ErrDuplicate, rs.ValidFrom)
	}
	coveredFrom := uc.coveredFrom()
	rs.ID = uuid.New().String()
	if err := uc.repo.Create(ctx, rs); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("id", rs.ID).
		Str("valid_from", rs.ValidFrom.String()).
		Str("operator", operator).
		Msg("tarifario creado")

	if _, err := uc.Reload(ctx); err != nil {
		return nil, err
	}
	uc.warnUncovered(coveredFrom, operator)
	out := RuleSetToDTO(rs)
	return &out, nil
}

// DeleteRuleSet elimina un tarifario persistido y recarga el catálogo.
func (uc *TollUseCase) DeleteRuleSet(ctx context.Context, operator, id string) (*dto.ReloadResponse, error) {
	if uc.repo == nil {
		return nil, ErrReadOnlySource
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: id %q", domain.ErrInvalidArgument, id)
	}
	coveredFrom := uc.coveredFrom()
	if err := uc.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	uc.log.Info().Str("id", id).Str("operator", operator).Msg("tarifario eliminado")
	out, err := uc.Reload(ctx)
	if err != nil {
		return nil, err
	}
	uc.warnUncovered(coveredFrom, operator)
	return out, nil
}

// coveredFrom primera fecha con tarifario en el catálogo vigente.
func (uc *TollUseCase) coveredFrom() civil.Date {
	sets := uc.Calculator().Catalog().RuleSets()
	if len(sets) == 0 {
		return civil.Date{}
	}
	return sets[0].ValidFrom
}

// warnUncovered avisa cuando el catálogo nuevo deja sin tarifario fechas que antes tenían uno.
// Pasa con el primer alta sobre una tabla vacía: el tarifario incluido deja de aplicarse.
func (uc *TollUseCase) warnUncovered(before civil.Date, operator string) {
	after := uc.coveredFrom()
	if before.IsZero() || !before.Before(after) {
		return
	}
	uc.log.Warn().
		Str("covered_from_before", before.String()).
		Str("covered_from", after.String()).
		Str("operator", operator).
		Msg("fechas anteriores a covered_from quedan sin tarifario")
}
