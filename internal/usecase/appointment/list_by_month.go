package appointment

import (
	"context"
	"fmt"

	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/dates"
	domain "github.com/BrilhoLimpeza/cleaning-scheduler/internal/domain/appointment"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/models"
)

type ListAppointmentsByMonth struct {
	repo domain.Repository
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo: repo,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	accountID uint,
	year int,
	month int,
) ([]models.Appointment, error) {

	// Datas canônicas ordenam lexicograficamente; o período do mês é
	// um range de strings.
	from := fmt.Sprintf("%04d-%02d-01", year, month)
	to := fmt.Sprintf("%04d-%02d-%02d", year, month, dates.DaysInMonth(year, month))

	return uc.repo.ListAppointmentsForPeriod(ctx, accountID, from, to)
}
