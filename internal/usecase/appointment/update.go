package appointment

import (
	"context"

	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/audit"
	domain "github.com/BrilhoLimpeza/cleaning-scheduler/internal/domain/appointment"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/httperr"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type UpdateAppointmentInput struct {
	AccountID     uint
	UserID        uint
	AppointmentID uint

	// Ponteiros nil = campo não editado nesta sessão
	HelperID     *uint
	RemoveHelper bool
	Price        *float64
	StartTime    *string
	EndTime      *string
	DurationMin  *int
	Notes        *string

	// Estado pregado do repasse na sessão de edição corrente
	HelperFee        *float64
	FeeOverridden    bool
	ClearFeeOverride bool
}

// ======================================================
// USE CASE
// ======================================================

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.AccountID, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if domain.Status(ap.Status) == domain.StatusCancelled {
		// agendamento cancelado não aceita mais edição de agenda
		return nil, httperr.ErrBusiness("appointment_cancelled")
	}

	var helper *models.Helper
	if ap.HelperID != nil {
		helper, err = uc.repo.GetHelper(ctx, in.AccountID, *ap.HelperID)
		if err != nil {
			return nil, httperr.ErrBusiness("helper_not_found")
		}
	}

	session := domain.NewEditSession(ap, helper)
	session.FeeOverridden = in.FeeOverridden

	if in.HelperFee != nil {
		session.OverrideFee(*in.HelperFee)
	}

	if in.RemoveHelper {
		session.SetHelper(nil)
	} else if in.HelperID != nil {
		newHelper, err := uc.repo.GetHelper(ctx, in.AccountID, *in.HelperID)
		if err != nil {
			return nil, httperr.ErrBusiness("helper_not_found")
		}
		session.SetHelper(newHelper)
	}

	if in.Price != nil {
		session.SetPrice(*in.Price)
	}

	if in.ClearFeeOverride {
		session.ClearOverride()
	}

	if in.StartTime != nil {
		ap.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		ap.EndTime = *in.EndTime
	}
	if in.DurationMin != nil {
		ap.DurationMin = in.DurationMin
	}
	if in.Notes != nil {
		ap.Notes = *in.Notes
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		AccountID: in.AccountID,
		UserID:    &in.UserID,
		Action:    "appointment_updated",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
