package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// ErrInvalidArgument error de programación del llamador (vehículo o pasadas ausentes, texto mal formado).
	ErrInvalidArgument = errors.New("argumento inválido")
	// ErrConfiguration tarifario inconsistente o inexistente para la fecha consultada.
	ErrConfiguration = errors.New("configuración de peajes inválida")
)
