package ordem

import (
	"strings"

	"github.com/ordensapp/ordens-api/internal/httperr"
)

// ===============================
// Ordem Status
// ===============================

type Status string

const (
	StatusPendente    Status = "Pendente"
	StatusEmAndamento Status = "Em Andamento"
	StatusConcluido   Status = "Concluído"
	StatusCancelado   Status = "Cancelado"
)

// AllowedStatuses é o conjunto fechado aceito em qualquer escrita.
var AllowedStatuses = []Status{
	StatusPendente,
	StatusEmAndamento,
	StatusConcluido,
	StatusCancelado,
}

func InitialStatus() Status {
	return StatusPendente
}

// ===============================
// Validations
// ===============================

func IsValidStatus(s string) bool {
	for _, allowed := range AllowedStatuses {
		if s == string(allowed) {
			return true
		}
	}
	return false
}

// ValidateStatus rejeita valores fora do conjunto fechado, listando os legais.
func ValidateStatus(s string) error {
	if IsValidStatus(s) {
		return nil
	}

	values := make([]string, 0, len(AllowedStatuses))
	for _, allowed := range AllowedStatuses {
		values = append(values, string(allowed))
	}

	return httperr.ErrBusinessMsg(
		"invalid_status",
		"Status inválido. Valores permitidos: "+strings.Join(values, ", ")+".",
	)
}
