package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/audit"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/dates"
	domain "github.com/BrilhoLimpeza/cleaning-scheduler/internal/domain/appointment"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/httperr"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/models"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/timezone"
)

// Quantas ocorrências são materializadas ao criar uma série (âncora
// inclusa). O backend agrupa todas pelo mesmo series id.
const seriesHorizon = 12

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	AccountID uint
	UserID    uint

	CustomerID uint
	HelperID   *uint

	// Campos soltos do formulário "escolhe o mês, escolhe o dia"
	Date dates.DateParts

	StartTime   string
	EndTime     string
	DurationMin *int

	Price *float64
	Notes string

	IsRecurring    bool
	RecurrenceRule string

	// Registro retroativo: a faxina já aconteceu e entra direto como
	// concluída.
	AlreadyCompleted bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	account, err := uc.repo.GetAccountByID(ctx, in.AccountID)
	if err != nil {
		return nil, err
	}

	date, verr := in.Date.Compose()
	if verr != nil {
		return nil, verr
	}

	customer, err := uc.repo.GetCustomer(ctx, in.AccountID, in.CustomerID)
	if err != nil {
		return nil, httperr.ErrBusiness("customer_not_found")
	}

	var helper *models.Helper
	if in.HelperID != nil {
		helper, err = uc.repo.GetHelper(ctx, in.AccountID, *in.HelperID)
		if err != nil {
			return nil, httperr.ErrBusiness("helper_not_found")
		}
	}

	// Preço omitido cai no valor padrão do cliente
	price := in.Price
	if price == nil && customer.DefaultPrice != nil {
		price = customer.DefaultPrice
	}

	if in.IsRecurring && !domain.ValidRecurrenceRule(in.RecurrenceRule) {
		return nil, httperr.ErrBusiness("invalid_recurrence_rule")
	}
	if !in.IsRecurring && in.RecurrenceRule != "" {
		return nil, httperr.ErrBusiness("rule_without_recurrence")
	}

	ap := &models.Appointment{
		AccountID:   in.AccountID,
		CustomerID:  customer.ID,
		HelperID:    in.HelperID,
		Date:        date,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		DurationMin: in.DurationMin,
		Status:      string(domain.InitialStatus()),
		Price:       price,
		Notes:       in.Notes,
	}

	now := timezone.NowIn(account.Timezone)

	if in.AlreadyCompleted {
		// Passa pelo mesmo motor de estados do fluxo normal
		if err := domain.Start(ap, now); err != nil {
			return nil, err
		}
		if err := domain.Finish(ap, helper, now); err != nil {
			return nil, err
		}
	}

	if in.IsRecurring {
		ap.IsRecurring = true
		ap.RecurrenceRule = in.RecurrenceRule
		ap.RecurrenceSeriesID = uuid.NewString()

		if err := uc.createSeries(ctx, account, ap); err != nil {
			return nil, err
		}
	} else {
		if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
			return nil, err
		}
	}

	uc.audit.Dispatch(audit.Event{
		AccountID: in.AccountID,
		UserID:    &in.UserID,
		Action:    "appointment_created",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}

// createSeries materializa as ocorrências futuras da série. A âncora
// pode ter sido criada já concluída; as demais nascem sempre AGENDADO.
func (uc *CreateAppointment) createSeries(
	ctx context.Context,
	account *models.Account,
	anchor *models.Appointment,
) error {

	loc := timezone.Location(account.Timezone)

	aps := make([]*models.Appointment, 0, seriesHorizon)
	aps = append(aps, anchor)

	date := anchor.Date
	for i := 1; i < seriesHorizon; i++ {
		date = domain.NextOccurrenceDate(date, anchor.RecurrenceRule, loc)

		occ := &models.Appointment{
			AccountID:          anchor.AccountID,
			CustomerID:         anchor.CustomerID,
			HelperID:           anchor.HelperID,
			Date:               date,
			StartTime:          anchor.StartTime,
			EndTime:            anchor.EndTime,
			DurationMin:        anchor.DurationMin,
			Status:             string(domain.StatusScheduled),
			Price:              anchor.Price,
			Notes:              anchor.Notes,
			IsRecurring:        true,
			RecurrenceRule:     anchor.RecurrenceRule,
			RecurrenceSeriesID: anchor.RecurrenceSeriesID,
		}
		aps = append(aps, occ)
	}

	return uc.repo.CreateAppointments(ctx, aps)
}
