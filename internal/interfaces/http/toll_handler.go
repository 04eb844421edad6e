package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/TollFee-api/internal/application/dto"
	"github.com/jhoicas/TollFee-api/internal/application/tolling"
)

// TollHandler cálculo de tarifas (público).
type TollHandler struct {
	uc *tolling.TollUseCase
}

// NewTollHandler construye el handler.
func NewTollHandler(uc *tolling.TollUseCase) *TollHandler {
	return &TollHandler{uc: uc}
}

// PassageFee godoc
// @Summary      Tarifa de una pasada
// @Tags         tolls
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PassageFeeRequest  true  "Tipo de vehículo y fecha/hora local"
// @Success      200   {object}  dto.PassageFeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/tolls/passage [post]
func (h *TollHandler) PassageFee(c *fiber.Ctx) error {
	var in dto.PassageFeeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.PassageFee(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DailyToll godoc
// @Summary      Total diario con ventanas y tope
// @Tags         tolls
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DailyTollRequest  true  "Tipo de vehículo, fecha y horas de pasada"
// @Success      200   {object}  dto.DailyTollResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/tolls/daily [post]
func (h *TollHandler) DailyToll(c *fiber.Ctx) error {
	var in dto.DailyTollRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.DailyToll(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
