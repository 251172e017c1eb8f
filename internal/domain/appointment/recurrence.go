package appointment

import (
	"time"

	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/dates"
)

// ===============================
// Recurrence Rules
// ===============================

// Enumeração fechada de padrões de recorrência. Não há gramática de
// calendário: comparação é sempre literal.
const (
	RuleWeekly          = "FREQ=WEEKLY;INTERVAL=1"
	RuleBiweekly        = "FREQ=WEEKLY;INTERVAL=2"
	RuleEveryThreeWeeks = "FREQ=WEEKLY;INTERVAL=3"
	RuleMonthly         = "FREQ=MONTHLY;INTERVAL=1"
)

func ValidRecurrenceRule(rule string) bool {
	switch rule {
	case RuleWeekly, RuleBiweekly, RuleEveryThreeWeeks, RuleMonthly:
		return true
	}
	return false
}

// NextOccurrenceDate devolve a data canônica da próxima ocorrência
// a partir de uma data da série.
func NextOccurrenceDate(date string, rule string, loc *time.Location) string {
	t := dates.ParseCanonical(date, loc)

	switch rule {
	case RuleWeekly:
		t = t.AddDate(0, 0, 7)
	case RuleBiweekly:
		t = t.AddDate(0, 0, 14)
	case RuleEveryThreeWeeks:
		t = t.AddDate(0, 0, 21)
	case RuleMonthly:
		t = t.AddDate(0, 1, 0)
	default:
		return date
	}

	return dates.Canonical(t)
}
