package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BrilhoLimpeza/cleaning-scheduler/internal/domain/appointment"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/httperr"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Account
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAccountByID(
	ctx context.Context,
	id uint,
) (*models.Account, error) {

	var account models.Account
	if err := r.db.WithContext(ctx).First(&account, id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// --------------------------------------------------
// Customer / Helper
// --------------------------------------------------

func (r *AppointmentGormRepository) GetCustomer(
	ctx context.Context,
	accountID uint,
	customerID uint,
) (*models.Customer, error) {

	var customer models.Customer
	if err := r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", customerID, accountID).
		First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *AppointmentGormRepository) GetHelper(
	ctx context.Context,
	accountID uint,
	helperID uint,
) (*models.Helper, error) {

	var helper models.Helper
	if err := r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", helperID, accountID).
		First(&helper).Error; err != nil {
		return nil, err
	}
	return &helper, nil
}

// --------------------------------------------------
// Appointment (create / read)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) CreateAppointments(
	ctx context.Context,
	aps []*models.Appointment,
) error {

	// ocorrências da série entram juntas ou não entram
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ap := range aps {
			if err := tx.Create(ap).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	accountID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", appointmentID, accountID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentForHelper(
	ctx context.Context,
	helperID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND helper_id = ?", appointmentID, helperID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	accountID uint,
	appointmentID uint,
) error {

	return r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", appointmentID, accountID).
		Delete(&models.Appointment{}).Error
}

// CancelSeries cancela em um único UPDATE todas as ocorrências não
// terminais agrupadas pelo series id da âncora. Sem agrupamento
// explícito não há operação em lote confiável; o chamador decide se
// usa o resolver heurístico.
func (r *AppointmentGormRepository) CancelSeries(
	ctx context.Context,
	accountID uint,
	anchor *models.Appointment,
	now time.Time,
) (int64, error) {

	if anchor.RecurrenceSeriesID == "" {
		return 0, httperr.ErrBusiness("series_not_grouped")
	}

	result := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"account_id = ? AND recurrence_series_id = ? AND status IN ?",
			accountID,
			anchor.RecurrenceSeriesID,
			[]string{string(domain.StatusScheduled), string(domain.StatusInProgress)},
		).
		Updates(map[string]any{
			"status":       string(domain.StatusCancelled),
			"cancelled_at": now,
		})

	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// --------------------------------------------------
// Listagens
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsByCustomer(
	ctx context.Context,
	accountID uint,
	customerID uint,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND customer_id = ?", accountID, customerID).
		Order("date ASC, start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	accountID uint,
	dateFrom string,
	dateTo string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Helper").
		Where(
			"account_id = ? AND date >= ? AND date <= ?",
			accountID, dateFrom, dateTo,
		).
		Order("date ASC, start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForHelperDate(
	ctx context.Context,
	helperID uint,
	date string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("helper_id = ? AND date = ?", helperID, date).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// --------------------------------------------------
// Invoice
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateInvoice(
	ctx context.Context,
	inv *models.Invoice,
) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
