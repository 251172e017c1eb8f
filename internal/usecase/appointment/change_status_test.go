package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/BrilhoLimpeza/cleaning-scheduler/internal/domain/appointment"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/httperr"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/models"
)

func newChangeStatusFixture() (*stubRepo, *stubInvoicer, *stubURLCache, *ChangeStatus) {
	repo := newStubRepo()
	repo.customers[1] = models.Customer{ID: 1, AccountID: 1, Name: "Dona Marta"}
	repo.helpers[7] = models.Helper{ID: 7, AccountID: 1, Name: "Rosa", PayoutMode: "PERCENTAGE", PayoutValue: 40}

	invoicer := &stubInvoicer{url: "https://pay.example/abc"}
	cache := newStubURLCache()
	uc := NewChangeStatus(repo, invoicer, cache, newTestDispatcher())
	return repo, invoicer, cache, uc
}

func inProgressAppointment(repo *stubRepo) *models.Appointment {
	started := time.Now().Add(-2 * time.Hour)
	return repo.add(models.Appointment{
		AccountID:  1,
		CustomerID: 1,
		HelperID:   uptr(7),
		Date:       "2024-03-05",
		StartTime:  "08:00",
		Status:     string(domain.StatusInProgress),
		StartedAt:  &started,
		Price:      fptr(200),
	})
}

func TestChangeStatusCompleteWithInvoice(t *testing.T) {
	repo, invoicer, cache, uc := newChangeStatusFixture()
	ap := inProgressAppointment(repo)

	result, err := uc.Execute(context.Background(), ChangeStatusInput{
		AccountID:     1,
		UserID:        9,
		AppointmentID: ap.ID,
		Target:        domain.StatusCompleted,
		SendInvoice:   true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Appointment.Status != string(domain.StatusCompleted) {
		t.Fatalf("expected CONCLUIDO, got %s", result.Appointment.Status)
	}
	if result.InvoiceURL != "https://pay.example/abc" {
		t.Fatalf("expected invoice URL surfaced to the caller, got %q", result.InvoiceURL)
	}
	if result.Warning != "" {
		t.Fatalf("unexpected warning %q", result.Warning)
	}

	// repasse derivado na conclusão (40% de 200)
	if got := repo.appointments[ap.ID].HelperFee; got == nil || *got != 80.00 {
		t.Fatalf("expected derived helper fee 80.00, got %v", got)
	}

	if len(repo.invoices) != 1 || repo.invoices[0].AppointmentID != ap.ID {
		t.Fatalf("expected a persisted invoice for the appointment, got %v", repo.invoices)
	}
	if url, _ := cache.Get(context.Background(), ap.ID); url != "https://pay.example/abc" {
		t.Fatal("expected the issued URL to be cached")
	}
	if len(invoicer.issued) != 1 {
		t.Fatalf("expected exactly one issuance, got %d", len(invoicer.issued))
	}
}

func TestChangeStatusInvoiceFailureIsNonFatal(t *testing.T) {
	repo, invoicer, _, uc := newChangeStatusFixture()
	invoicer.err = errors.New("gateway down")
	ap := inProgressAppointment(repo)

	result, err := uc.Execute(context.Background(), ChangeStatusInput{
		AccountID:     1,
		UserID:        9,
		AppointmentID: ap.ID,
		Target:        domain.StatusCompleted,
		SendInvoice:   true,
	})
	if err != nil {
		t.Fatalf("invoice failure must not fail the transition: %v", err)
	}

	if result.Warning != "invoice_issue_failed" {
		t.Fatalf("expected invoice_issue_failed warning, got %q", result.Warning)
	}
	// transição persistida apesar da falha de cobrança
	if repo.appointments[ap.ID].Status != string(domain.StatusCompleted) {
		t.Fatal("completion must not be rolled back on invoice failure")
	}
}

func TestChangeStatusUsesCachedInvoiceURL(t *testing.T) {
	repo, invoicer, cache, uc := newChangeStatusFixture()
	ap := inProgressAppointment(repo)
	cache.urls[ap.ID] = "https://pay.example/cached"

	result, err := uc.Execute(context.Background(), ChangeStatusInput{
		AccountID:     1,
		UserID:        9,
		AppointmentID: ap.ID,
		Target:        domain.StatusCompleted,
		SendInvoice:   true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.InvoiceURL != "https://pay.example/cached" {
		t.Fatalf("expected cached URL, got %q", result.InvoiceURL)
	}
	if len(invoicer.issued) != 0 {
		t.Fatal("a cached URL must not trigger a re-issue")
	}
}

func TestChangeStatusUnpricedSkipsInvoice(t *testing.T) {
	repo, invoicer, _, uc := newChangeStatusFixture()
	started := time.Now()
	ap := repo.add(models.Appointment{
		AccountID:  1,
		CustomerID: 1,
		Status:     string(domain.StatusInProgress),
		StartedAt:  &started,
	})

	result, err := uc.Execute(context.Background(), ChangeStatusInput{
		AccountID:     1,
		UserID:        9,
		AppointmentID: ap.ID,
		Target:        domain.StatusCompleted,
		SendInvoice:   true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Warning != "invoice_skipped_unpriced" {
		t.Fatalf("expected invoice_skipped_unpriced, got %q", result.Warning)
	}
	if len(invoicer.issued) != 0 {
		t.Fatal("unpriced appointment must not reach the invoicer")
	}
}

func TestChangeStatusIllegalTransition(t *testing.T) {
	repo, _, _, uc := newChangeStatusFixture()
	ap := repo.add(models.Appointment{
		AccountID:  1,
		CustomerID: 1,
		Status:     string(domain.StatusScheduled),
	})

	_, err := uc.Execute(context.Background(), ChangeStatusInput{
		AccountID:     1,
		UserID:        9,
		AppointmentID: ap.ID,
		Target:        domain.StatusCompleted,
	})
	if !httperr.IsBusiness(err, "invalid_transition") {
		t.Fatalf("expected invalid_transition, got %v", err)
	}
	if repo.appointments[ap.ID].Status != string(domain.StatusScheduled) {
		t.Fatal("illegal transition must not be persisted")
	}
}

func TestChangeStatusBackToScheduledRejected(t *testing.T) {
	repo, _, _, uc := newChangeStatusFixture()
	ap := inProgressAppointment(repo)

	_, err := uc.Execute(context.Background(), ChangeStatusInput{
		AccountID:     1,
		UserID:        9,
		AppointmentID: ap.ID,
		Target:        domain.StatusScheduled,
	})
	if !httperr.IsBusiness(err, "invalid_transition") {
		t.Fatalf("expected invalid_transition, got %v", err)
	}
}

func TestChangeStatusCancelRecurringRequiresCascade(t *testing.T) {
	repo, _, _, uc := newChangeStatusFixture()
	ap := repo.add(models.Appointment{
		AccountID:          1,
		CustomerID:         1,
		Status:             string(domain.StatusScheduled),
		IsRecurring:        true,
		RecurrenceRule:     domain.RuleWeekly,
		RecurrenceSeriesID: "S1",
	})

	_, err := uc.Execute(context.Background(), ChangeStatusInput{
		AccountID:     1,
		UserID:        9,
		AppointmentID: ap.ID,
		Target:        domain.StatusCancelled,
	})
	if !httperr.IsBusiness(err, "series_cascade_required") {
		t.Fatalf("expected series_cascade_required, got %v", err)
	}

	// recusa explícita da cascata libera o cancelamento avulso
	result, err := uc.Execute(context.Background(), ChangeStatusInput{
		AccountID:              1,
		UserID:                 9,
		AppointmentID:          ap.ID,
		Target:                 domain.StatusCancelled,
		CancelSingleOccurrence: true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Appointment.Status != string(domain.StatusCancelled) {
		t.Fatalf("expected CANCELADO, got %s", result.Appointment.Status)
	}
}

func TestChangeStatusCancelOneOffNeedsNoConfirmation(t *testing.T) {
	repo, _, _, uc := newChangeStatusFixture()
	ap := repo.add(models.Appointment{
		AccountID:  1,
		CustomerID: 1,
		Status:     string(domain.StatusScheduled),
	})

	result, err := uc.Execute(context.Background(), ChangeStatusInput{
		AccountID:     1,
		UserID:        9,
		AppointmentID: ap.ID,
		Target:        domain.StatusCancelled,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Appointment.CancelledAt == nil {
		t.Fatal("expected cancelledAt to be stamped")
	}
}
