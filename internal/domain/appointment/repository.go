package appointment

import (
	"context"
	"time"

	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/models"
)

type Repository interface {
	// -------- Account --------
	GetAccountByID(
		ctx context.Context,
		id uint,
	) (*models.Account, error)

	// -------- Customer / Helper --------
	GetCustomer(
		ctx context.Context,
		accountID uint,
		customerID uint,
	) (*models.Customer, error)

	GetHelper(
		ctx context.Context,
		accountID uint,
		helperID uint,
	) (*models.Helper, error)

	// -------- Appointment (create / read) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	CreateAppointments(
		ctx context.Context,
		aps []*models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		accountID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	GetAppointmentForHelper(
		ctx context.Context,
		helperID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	// -------- Appointment (state change) --------
	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		accountID uint,
		appointmentID uint,
	) error

	// CancelSeries é a operação autoritativa de cascata: cancela em um
	// comando todas as ocorrências agrupadas pelo series id da âncora.
	// Falha com "series_not_grouped" quando a âncora não tem
	// agrupamento explícito do backend.
	CancelSeries(
		ctx context.Context,
		accountID uint,
		anchor *models.Appointment,
		now time.Time,
	) (int64, error)

	// -------- Listagens --------
	ListAppointmentsByCustomer(
		ctx context.Context,
		accountID uint,
		customerID uint,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		accountID uint,
		dateFrom string,
		dateTo string,
	) ([]models.Appointment, error)

	ListAppointmentsForHelperDate(
		ctx context.Context,
		helperID uint,
		date string,
	) ([]models.Appointment, error)

	// -------- Invoice --------
	CreateInvoice(
		ctx context.Context,
		inv *models.Invoice,
	) error
}
