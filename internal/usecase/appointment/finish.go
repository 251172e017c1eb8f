package appointment

import (
	"context"

	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/audit"
	domain "github.com/BrilhoLimpeza/cleaning-scheduler/internal/domain/appointment"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/httperr"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/models"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/timezone"
)

type FinishAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewFinishAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *FinishAppointment {
	return &FinishAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *FinishAppointment) Execute(
	ctx context.Context,
	accountID uint,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	account, err := uc.repo.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, accountID, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	var helper *models.Helper
	if ap.HelperID != nil {
		// Repasse é derivado na conclusão; precisa da política atual
		helper, err = uc.repo.GetHelper(ctx, accountID, *ap.HelperID)
		if err != nil {
			return nil, httperr.ErrBusiness("helper_not_found")
		}
	}

	now := timezone.NowIn(account.Timezone)
	if err := domain.Finish(ap, helper, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		AccountID: accountID,
		UserID:    &userID,
		Action:    "appointment_finished",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
