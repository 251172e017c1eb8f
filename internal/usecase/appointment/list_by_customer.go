package appointment

import (
	"context"

	domain "github.com/BrilhoLimpeza/cleaning-scheduler/internal/domain/appointment"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/models"
)

type ListAppointmentsByCustomer struct {
	repo domain.Repository
}

func NewListAppointmentsByCustomer(
	repo domain.Repository,
) *ListAppointmentsByCustomer {
	return &ListAppointmentsByCustomer{
		repo: repo,
	}
}

func (uc *ListAppointmentsByCustomer) Execute(
	ctx context.Context,
	accountID uint,
	customerID uint,
) ([]models.Appointment, error) {

	return uc.repo.ListAppointmentsByCustomer(ctx, accountID, customerID)
}
