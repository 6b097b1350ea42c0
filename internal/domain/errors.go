package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrDuplicateCode    = errors.New("código de lote duplicado")
	ErrStoreUnavailable = errors.New("almacén de datos no disponible")
	ErrConflict         = errors.New("conflicto con el estado actual")
)
