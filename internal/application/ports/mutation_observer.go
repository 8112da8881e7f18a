package ports

import "time"

// Resultados de una mutación, en el vocabulario que el llamador traduce a un mensaje.
const (
	OutcomeSuccess    = "success"
	OutcomeValidation = "validation_error"
	OutcomeConflict   = "conflict_error"
	OutcomeNotFound   = "not_found"
	OutcomeFatal      = "fatal_error"
)

// MutationObserver recibe el resultado de cada mutación (métricas).
// La implementación no debe bloquear.
type MutationObserver interface {
	ObserveMutation(entityType, kind, outcome string, elapsed time.Duration)
}

// NopObserver descarta las observaciones.
type NopObserver struct{}

// ObserveMutation no hace nada.
func (NopObserver) ObserveMutation(string, string, string, time.Duration) {}
