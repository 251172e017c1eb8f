package appointment

import (
	"time"

	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/billing"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Start move o agendamento para EM_ANDAMENTO e registra o início.
// Reentrada a partir de EM_ANDAMENTO é no-op: a UI pode reenviar o
// mesmo toque de "iniciar".
func Start(ap *models.Appointment, now time.Time) error {
	if Status(ap.Status) == StatusInProgress {
		return nil
	}

	if err := CanTransition(Status(ap.Status), StatusInProgress); err != nil {
		return err
	}

	ap.Status = string(StatusInProgress)
	ap.StartedAt = &now
	return nil
}

// Finish conclui o agendamento. Se há diarista atribuída e o repasse
// ainda não foi definido, deriva o valor pela política de pagamento
// antes de persistir.
func Finish(ap *models.Appointment, helper *models.Helper, now time.Time) error {
	if err := CanTransition(Status(ap.Status), StatusCompleted); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.FinishedAt = &now

	if ap.HelperFee == nil && helper != nil && ap.Price != nil {
		if fee, ok := billing.ResolveHelperFee(
			*ap.Price,
			billing.PayoutMode(helper.PayoutMode),
			helper.PayoutValue,
		); ok {
			ap.HelperFee = &fee
		}
	}

	return nil
}

// Cancel é permitido de qualquer estado não terminal.
func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanTransition(Status(ap.Status), StatusCancelled); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

// ElapsedMinutes é derivação de exibição: cronômetro corrente enquanto
// EM_ANDAMENTO, duração fixa depois de CONCLUIDO. Nunca realimenta o
// cálculo de repasse.
func ElapsedMinutes(ap *models.Appointment, now time.Time) int {
	if ap.StartedAt == nil {
		return 0
	}

	switch Status(ap.Status) {
	case StatusInProgress:
		return clampMinutes(now.Sub(*ap.StartedAt))
	case StatusCompleted:
		if ap.FinishedAt == nil {
			return 0
		}
		return clampMinutes(ap.FinishedAt.Sub(*ap.StartedAt))
	}
	return 0
}

func clampMinutes(d time.Duration) int {
	m := int(d.Minutes())
	if m < 0 {
		return 0
	}
	return m
}
