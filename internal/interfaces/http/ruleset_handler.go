package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/TollFee-api/internal/application/dto"
	"github.com/jhoicas/TollFee-api/internal/application/tolling"
)

// RuleSetHandler consulta y administración del catálogo de tarifarios.
type RuleSetHandler struct {
	uc *tolling.TollUseCase
}

// NewRuleSetHandler construye el handler.
func NewRuleSetHandler(uc *tolling.TollUseCase) *RuleSetHandler {
	return &RuleSetHandler{uc: uc}
}

// List godoc
// @Summary      Listar tarifarios
// @Tags         rulesets
// @Produce      json
// @Success      200  {object}  dto.RuleSetListResponse
// @Router       /api/rulesets [get]
func (h *RuleSetHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.uc.ListRuleSets())
}

// Applicable godoc
// @Summary      Tarifario vigente en una fecha
// @Tags         rulesets
// @Produce      json
// @Param        date  query  string  true  "Fecha YYYY-MM-DD"
// @Success      200   {object}  dto.RuleSetDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/rulesets/applicable [get]
func (h *RuleSetHandler) Applicable(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date es requerido"})
	}
	out, err := h.uc.ApplicableRuleSet(date)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear tarifario
// @Tags         rulesets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RuleSetDTO  true  "Tarifario"
// @Success      201   {object}  dto.RuleSetDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/rulesets [post]
func (h *RuleSetHandler) Create(c *fiber.Ctx) error {
	var in dto.RuleSetDTO
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.ValidFrom == "" || in.MaxDailyFee == nil || len(in.Bands) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "valid_from, max_daily_fee y bands son requeridos"})
	}
	out, err := h.uc.CreateRuleSet(c.UserContext(), GetSubject(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Reload godoc
// @Summary      Recargar el catálogo desde la fuente configurada
// @Tags         rulesets
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReloadResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/rulesets/reload [post]
func (h *RuleSetHandler) Reload(c *fiber.Ctx) error {
	out, err := h.uc.Reload(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar tarifario
// @Tags         rulesets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del tarifario"
// @Success      200  {object}  dto.ReloadResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/rulesets/{id} [delete]
func (h *RuleSetHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.DeleteRuleSet(c.UserContext(), GetSubject(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
