package appointment

import (
	"context"

	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/audit"
	domain "github.com/BrilhoLimpeza/cleaning-scheduler/internal/domain/appointment"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/httperr"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	accountID uint,
	userID uint,
	appointmentID uint,
) error {

	if _, err := uc.repo.GetAppointment(ctx, accountID, appointmentID); err != nil {
		return httperr.ErrBusiness("appointment_not_found")
	}

	if err := uc.repo.DeleteAppointment(ctx, accountID, appointmentID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		AccountID: accountID,
		UserID:    &userID,
		Action:    "appointment_deleted",
		Entity:    "appointment",
		EntityID:  &appointmentID,
	})

	return nil
}
