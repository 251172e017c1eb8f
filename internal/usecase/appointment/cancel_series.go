package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/audit"
	domain "github.com/BrilhoLimpeza/cleaning-scheduler/internal/domain/appointment"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/httperr"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/logs"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/timezone"
)

// ======================================================
// INPUT / RESULT
// ======================================================

type CancelSeriesInput struct {
	AccountID     uint
	UserID        uint
	AppointmentID uint

	// O caminho degradado (resolver heurístico + cancelamento item a
	// item) pode sobre-casar; só roda com confirmação explícita.
	ConfirmFallback bool
}

type CancelSeriesResult struct {
	Cancelled int
	FailedIDs []uint
}

// Partial indica que a cascata terminou incompleta: o usuário precisa
// saber que podem restar ocorrências para limpeza manual.
func (r *CancelSeriesResult) Partial() bool {
	return len(r.FailedIDs) > 0
}

// ======================================================
// USE CASE
// ======================================================

// CancelSeries cancela todas as ocorrências da série que contém a
// âncora. Primeiro tenta a operação em lote do backend; se ela não
// está disponível, cai para o resolver de identidade de série com
// cancelamentos individuais.
type CancelSeries struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelSeries(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelSeries {
	return &CancelSeries{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelSeries) Execute(
	ctx context.Context,
	in CancelSeriesInput,
) (*CancelSeriesResult, error) {

	account, err := uc.repo.GetAccountByID(ctx, in.AccountID)
	if err != nil {
		return nil, err
	}

	anchor, err := uc.repo.GetAppointment(ctx, in.AccountID, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(account.Timezone)

	// --------------------------------------------------
	// 1. Caminho autoritativo: lote por series id
	// --------------------------------------------------
	n, bulkErr := uc.repo.CancelSeries(ctx, in.AccountID, anchor, now)
	if bulkErr == nil {
		uc.dispatch(in, "series_cancelled", int(n))
		return &CancelSeriesResult{Cancelled: int(n)}, nil
	}

	if logs.Log != nil {
		logs.Log.Warn("bulk series cancel unavailable, considering fallback",
			zap.Uint("appointment_id", anchor.ID),
			zap.Error(bulkErr),
		)
	}

	// --------------------------------------------------
	// 2. Fallback heurístico, somente confirmado
	// --------------------------------------------------
	if !in.ConfirmFallback {
		return nil, httperr.ErrBusiness("series_fallback_not_confirmed")
	}

	candidates, err := uc.repo.ListAppointmentsByCustomer(ctx, in.AccountID, anchor.CustomerID)
	if err != nil {
		return nil, err
	}

	result := &CancelSeriesResult{}

	for i := range candidates {
		candidate := &candidates[i]

		if !domain.SameSeries(candidate, anchor) {
			continue
		}
		if domain.IsTerminal(domain.Status(candidate.Status)) {
			// concluídas/já canceladas ficam como estão
			continue
		}

		if err := domain.Cancel(candidate, now); err != nil {
			result.FailedIDs = append(result.FailedIDs, candidate.ID)
			continue
		}
		if err := uc.repo.UpdateAppointment(ctx, candidate); err != nil {
			result.FailedIDs = append(result.FailedIDs, candidate.ID)
			continue
		}
		result.Cancelled++
	}

	uc.dispatch(in, "series_cancelled_fallback", result.Cancelled)

	return result, nil
}

func (uc *CancelSeries) dispatch(in CancelSeriesInput, action string, cancelled int) {
	uc.audit.Dispatch(audit.Event{
		AccountID: in.AccountID,
		UserID:    &in.UserID,
		Action:    action,
		Entity:    "appointment",
		EntityID:  &in.AppointmentID,
		Metadata:  map[string]any{"cancelled": cancelled},
	})
}
