package appointment

import (
	"context"
	"errors"
	"time"

	domain "github.com/BrilhoLimpeza/cleaning-scheduler/internal/domain/appointment"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/audit"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/httperr"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/models"
)

func fptr(v float64) *float64 { return &v }
func uptr(v uint) *uint       { return &v }

type noopRecorder struct{}

func (noopRecorder) Log(uint, *uint, string, string, *uint, any) error { return nil }

func newTestDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(noopRecorder{})
}

// stubRepo é um domain.Repository em memória para os testes de caso de
// uso, no estilo dos stubs de serviço do restante do projeto.
type stubRepo struct {
	account   models.Account
	customers map[uint]models.Customer
	helpers   map[uint]models.Helper

	appointments map[uint]*models.Appointment
	order        []uint
	nextID       uint

	bulkCancelErr error
	updateErrFor  map[uint]error

	invoices []*models.Invoice
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		account:      models.Account{ID: 1, Name: "Brilho Total", Timezone: "America/Sao_Paulo"},
		customers:    map[uint]models.Customer{},
		helpers:      map[uint]models.Helper{},
		appointments: map[uint]*models.Appointment{},
		updateErrFor: map[uint]error{},
		nextID:       100,
	}
}

func (r *stubRepo) add(ap models.Appointment) *models.Appointment {
	if ap.ID == 0 {
		r.nextID++
		ap.ID = r.nextID
	}
	cp := ap
	r.appointments[cp.ID] = &cp
	r.order = append(r.order, cp.ID)
	return &cp
}

func (r *stubRepo) GetAccountByID(_ context.Context, id uint) (*models.Account, error) {
	if id != r.account.ID {
		return nil, errors.New("account not found")
	}
	acc := r.account
	return &acc, nil
}

func (r *stubRepo) GetCustomer(_ context.Context, accountID, customerID uint) (*models.Customer, error) {
	c, ok := r.customers[customerID]
	if !ok || c.AccountID != accountID {
		return nil, errors.New("customer not found")
	}
	return &c, nil
}

func (r *stubRepo) GetHelper(_ context.Context, accountID, helperID uint) (*models.Helper, error) {
	h, ok := r.helpers[helperID]
	if !ok || h.AccountID != accountID {
		return nil, errors.New("helper not found")
	}
	return &h, nil
}

func (r *stubRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.nextID++
	ap.ID = r.nextID
	cp := *ap
	r.appointments[ap.ID] = &cp
	r.order = append(r.order, ap.ID)
	return nil
}

func (r *stubRepo) CreateAppointments(ctx context.Context, aps []*models.Appointment) error {
	for _, ap := range aps {
		if err := r.CreateAppointment(ctx, ap); err != nil {
			return err
		}
	}
	return nil
}

func (r *stubRepo) GetAppointment(_ context.Context, accountID, appointmentID uint) (*models.Appointment, error) {
	ap, ok := r.appointments[appointmentID]
	if !ok || ap.AccountID != accountID {
		return nil, errors.New("appointment not found")
	}
	cp := *ap
	return &cp, nil
}

func (r *stubRepo) GetAppointmentForHelper(_ context.Context, helperID, appointmentID uint) (*models.Appointment, error) {
	ap, ok := r.appointments[appointmentID]
	if !ok || ap.HelperID == nil || *ap.HelperID != helperID {
		return nil, errors.New("appointment not found")
	}
	cp := *ap
	return &cp, nil
}

func (r *stubRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	if err, ok := r.updateErrFor[ap.ID]; ok {
		return err
	}
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *stubRepo) DeleteAppointment(_ context.Context, accountID, appointmentID uint) error {
	ap, ok := r.appointments[appointmentID]
	if !ok || ap.AccountID != accountID {
		return errors.New("appointment not found")
	}
	delete(r.appointments, appointmentID)
	return nil
}

func (r *stubRepo) CancelSeries(_ context.Context, accountID uint, anchor *models.Appointment, now time.Time) (int64, error) {
	if r.bulkCancelErr != nil {
		return 0, r.bulkCancelErr
	}
	if anchor.RecurrenceSeriesID == "" {
		return 0, httperr.ErrBusiness("series_not_grouped")
	}

	var n int64
	for _, id := range r.order {
		ap := r.appointments[id]
		if ap.AccountID != accountID || ap.RecurrenceSeriesID != anchor.RecurrenceSeriesID {
			continue
		}
		if domain.IsTerminal(domain.Status(ap.Status)) {
			continue
		}
		ap.Status = string(domain.StatusCancelled)
		ap.CancelledAt = &now
		n++
	}
	return n, nil
}

func (r *stubRepo) ListAppointmentsByCustomer(_ context.Context, accountID, customerID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, id := range r.order {
		ap := r.appointments[id]
		if ap != nil && ap.AccountID == accountID && ap.CustomerID == customerID {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *stubRepo) ListAppointmentsForPeriod(_ context.Context, accountID uint, dateFrom, dateTo string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, id := range r.order {
		ap := r.appointments[id]
		if ap != nil && ap.AccountID == accountID && ap.Date >= dateFrom && ap.Date <= dateTo {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *stubRepo) ListAppointmentsForHelperDate(_ context.Context, helperID uint, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, id := range r.order {
		ap := r.appointments[id]
		if ap != nil && ap.HelperID != nil && *ap.HelperID == helperID && ap.Date == date {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *stubRepo) CreateInvoice(_ context.Context, inv *models.Invoice) error {
	cp := *inv
	r.invoices = append(r.invoices, &cp)
	return nil
}

var _ domain.Repository = (*stubRepo)(nil)

// stubInvoicer registra as emissões pedidas ao colaborador de cobrança.
type stubInvoicer struct {
	url    string
	err    error
	issued []InvoiceRequest
}

func (s *stubInvoicer) Issue(_ context.Context, req InvoiceRequest) (string, string, error) {
	s.issued = append(s.issued, req)
	if s.err != nil {
		return "", "", s.err
	}
	return s.url, "prov-1", nil
}

type stubURLCache struct {
	urls map[uint]string
}

func newStubURLCache() *stubURLCache {
	return &stubURLCache{urls: map[uint]string{}}
}

func (s *stubURLCache) Get(_ context.Context, appointmentID uint) (string, error) {
	return s.urls[appointmentID], nil
}

func (s *stubURLCache) Set(_ context.Context, appointmentID uint, url string) error {
	s.urls[appointmentID] = url
	return nil
}
