package entity

import "cloud.google.com/go/civil"

// Passage cruce de un vehículo por un punto de peaje. No se persiste.
type Passage struct {
	Vehicle *Vehicle
	At      civil.DateTime
}
