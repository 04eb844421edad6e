package entity

import (
	"fmt"
	"strings"

	"github.com/jhoicas/TollFee-api/internal/domain"
)

// VehicleType clasificación del vehículo que determina si paga peaje.
type VehicleType string

const (
	VehicleCar       VehicleType = "Car"
	VehicleMotorbike VehicleType = "Motorbike"
	VehicleTractor   VehicleType = "Tractor"
	VehicleEmergency VehicleType = "Emergency"
	VehicleDiplomat  VehicleType = "Diplomat"
	VehicleForeign   VehicleType = "Foreign"
	VehicleMilitary  VehicleType = "Military"
	VehicleBus       VehicleType = "Bus"
)

var vehicleTypes = []VehicleType{
	VehicleCar, VehicleMotorbike, VehicleTractor, VehicleEmergency,
	VehicleDiplomat, VehicleForeign, VehicleMilitary, VehicleBus,
}

// ParseVehicleType convierte el texto (sin distinguir mayúsculas) en un VehicleType conocido.
func ParseVehicleType(s string) (VehicleType, error) {
	s = strings.TrimSpace(s)
	for _, vt := range vehicleTypes {
		if strings.EqualFold(string(vt), s) {
			return vt, nil
		}
	}
	return "", fmt.Errorf("%w: tipo de vehículo desconocido %q", domain.ErrInvalidArgument, s)
}

// Vehicle vehículo que cruza un punto de peaje. Solo importa su tipo.
type Vehicle struct {
	Type VehicleType
}

// NewVehicle construye un vehículo del tipo indicado.
func NewVehicle(t VehicleType) *Vehicle {
	return &Vehicle{Type: t}
}
