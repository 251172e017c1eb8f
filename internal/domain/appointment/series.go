package appointment

import "github.com/BrilhoLimpeza/cleaning-scheduler/internal/models"

// SameSeries decide se dois agendamentos são ocorrências da mesma
// faxina recorrente. A ordem das regras é hierarquia de confiança e
// não pode mudar:
//
//  1. clientes diferentes nunca compartilham série
//  2. agrupamento explícito do backend (series id) é autoritativo
//  3. regra de recorrência igual (comparação literal de string)
//  4. heurística de último recurso: mesmo horário + mesmo preço +
//     pelo menos um lado marcado como recorrente
//
// A regra 4 admite falso positivo (duas faxinas avulsas com mesmo
// horário e preço) e falso negativo (série que mudou de preço no meio).
// Por isso a cascata só usa este caminho com confirmação explícita.
func SameSeries(a, b *models.Appointment) bool {
	if a.CustomerID != b.CustomerID {
		return false
	}

	if a.RecurrenceSeriesID != "" && b.RecurrenceSeriesID != "" {
		return a.RecurrenceSeriesID == b.RecurrenceSeriesID
	}

	if a.RecurrenceRule != "" && b.RecurrenceRule != "" {
		return a.RecurrenceRule == b.RecurrenceRule
	}

	return a.StartTime == b.StartTime &&
		equalPrice(a.Price, b.Price) &&
		(a.IsRecurring || b.IsRecurring)
}

func equalPrice(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
