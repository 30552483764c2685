package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrStageLocked         = errors.New("la etapa de la orden no permite esta operación")
	ErrInvalidTransition   = errors.New("transición de etapa no permitida")
	ErrOperationInProgress = errors.New("ya hay una operación en curso para esta orden")
)

// ValidationError error de validación local, previo a cualquier llamada de red.
// Field identifica el campo ofensivo para mostrarlo junto al formulario.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidation construye un ValidationError.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation indica si err es (o envuelve) un error de validación.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// RemoteError falla de una llamada al servicio de gestión de órdenes.
// El estado local derivado queda intacto; el operador puede reintentar.
type RemoteError struct {
	Status  int    // código HTTP devuelto por el backend (0 = error de red)
	Message string
}

func (e *RemoteError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("backend inalcanzable: %s", e.Message)
	}
	return fmt.Sprintf("backend respondió %d: %s", e.Status, e.Message)
}

// IsRemote indica si err es (o envuelve) un error del backend.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}

// PlanError un plan de empaque no pasó la validación de conservación.
// No es una excepción en el flujo normal: el commit queda deshabilitado
// y los problemas se muestran al operador.
type PlanError struct {
	Problems []string
}

func (e *PlanError) Error() string {
	return "plan de empaque inválido: " + strings.Join(e.Problems, "; ")
}
