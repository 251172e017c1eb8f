package appointment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/audit"
	domain "github.com/BrilhoLimpeza/cleaning-scheduler/internal/domain/appointment"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/httperr"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/logs"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/models"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/timezone"
)

// ======================================================
// INPUT / RESULT
// ======================================================

type ChangeStatusInput struct {
	AccountID     uint
	UserID        uint
	AppointmentID uint

	Target domain.Status

	// Emitir cobrança ao concluir e devolver a URL para a UI
	SendInvoice bool

	// Cancelamento de uma única ocorrência de série, depois que o
	// usuário recusou explicitamente a cascata.
	CancelSingleOccurrence bool
}

type ChangeStatusResult struct {
	Appointment *models.Appointment

	InvoiceURL string

	// Código de aviso não fatal (ex.: falha na emissão da cobrança).
	// A transição de status nunca é desfeita por causa dele.
	Warning string
}

// ======================================================
// USE CASE
// ======================================================

// ChangeStatus é o ponto de entrada único de transição usado pelos
// seletores manuais de status. Botões rápidos e cascata passam pela
// mesma tabela de legalidade do domínio.
type ChangeStatus struct {
	repo     domain.Repository
	invoicer Invoicer
	urls     InvoiceURLCache
	audit    *audit.Dispatcher
}

func NewChangeStatus(
	repo domain.Repository,
	invoicer Invoicer,
	urls InvoiceURLCache,
	audit *audit.Dispatcher,
) *ChangeStatus {
	return &ChangeStatus{
		repo:     repo,
		invoicer: invoicer,
		urls:     urls,
		audit:    audit,
	}
}

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	in ChangeStatusInput,
) (*ChangeStatusResult, error) {

	account, err := uc.repo.GetAccountByID(ctx, in.AccountID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AccountID, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(account.Timezone)

	switch in.Target {
	case domain.StatusInProgress:
		err = domain.Start(ap, now)

	case domain.StatusCompleted:
		var helper *models.Helper
		if ap.HelperID != nil {
			helper, err = uc.repo.GetHelper(ctx, in.AccountID, *ap.HelperID)
			if err != nil {
				return nil, httperr.ErrBusiness("helper_not_found")
			}
		}
		err = domain.Finish(ap, helper, now)

	case domain.StatusCancelled:
		// Ocorrência de série deve passar pela cascata; cancelar só
		// esta exige recusa explícita do usuário.
		if partOfSeries(ap) && !in.CancelSingleOccurrence {
			return nil, httperr.ErrBusiness("series_cascade_required")
		}
		err = domain.Cancel(ap, now)

	default:
		err = httperr.ErrBusiness("invalid_transition")
	}

	if err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		AccountID: in.AccountID,
		UserID:    &in.UserID,
		Action:    "appointment_status_changed",
		Entity:    "appointment",
		EntityID:  &ap.ID,
		Metadata:  map[string]any{"target": string(in.Target)},
	})

	result := &ChangeStatusResult{Appointment: ap}

	if in.Target == domain.StatusCompleted && in.SendInvoice {
		uc.issueInvoice(ctx, ap, result)
	}

	return result, nil
}

// issueInvoice pede a cobrança ao colaborador depois que a transição
// já foi persistida. Falha aqui é reportada como aviso, nunca desfaz
// a conclusão.
func (uc *ChangeStatus) issueInvoice(
	ctx context.Context,
	ap *models.Appointment,
	result *ChangeStatusResult,
) {

	if ap.Price == nil || *ap.Price <= 0 {
		result.Warning = "invoice_skipped_unpriced"
		return
	}

	if uc.urls != nil {
		if url, err := uc.urls.Get(ctx, ap.ID); err == nil && url != "" {
			result.InvoiceURL = url
			return
		}
	}

	customer, err := uc.repo.GetCustomer(ctx, ap.AccountID, ap.CustomerID)
	if err != nil {
		result.Warning = "invoice_issue_failed"
		return
	}

	url, providerID, err := uc.invoicer.Issue(ctx, InvoiceRequest{
		AppointmentID: ap.ID,
		CustomerName:  customer.Name,
		Description:   fmt.Sprintf("Faxina %s %s", ap.Date, ap.StartTime),
		Amount:        *ap.Price,
	})
	if err != nil {
		if logs.Log != nil {
			logs.Log.Warn("invoice issuance failed",
				zap.Uint("appointment_id", ap.ID),
				zap.Error(err),
			)
		}
		result.Warning = "invoice_issue_failed"
		return
	}

	inv := &models.Invoice{
		AccountID:     ap.AccountID,
		AppointmentID: ap.ID,
		CustomerID:    ap.CustomerID,
		Amount:        *ap.Price,
		URL:           url,
		ProviderID:    providerID,
	}
	if err := uc.repo.CreateInvoice(ctx, inv); err != nil && logs.Log != nil {
		logs.Log.Warn("invoice persistence failed", zap.Error(err))
	}

	if uc.urls != nil {
		_ = uc.urls.Set(ctx, ap.ID, url)
	}

	result.InvoiceURL = url
}

func partOfSeries(ap *models.Appointment) bool {
	return ap.IsRecurring || ap.RecurrenceSeriesID != ""
}
