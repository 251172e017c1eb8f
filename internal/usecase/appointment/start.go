package appointment

import (
	"context"

	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/audit"
	domain "github.com/BrilhoLimpeza/cleaning-scheduler/internal/domain/appointment"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/httperr"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/models"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/timezone"
)

type StartAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewStartAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *StartAppointment {
	return &StartAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *StartAppointment) Execute(
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

	now := timezone.NowIn(account.Timezone)
	if err := domain.Start(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		AccountID: accountID,
		UserID:    &userID,
		Action:    "appointment_started",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
