package appointment

import (
	"context"
	"errors"
	"testing"

	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/dates"
	domain "github.com/BrilhoLimpeza/cleaning-scheduler/internal/domain/appointment"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/httperr"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/models"
)

func newCreateFixture() (*stubRepo, *CreateAppointment) {
	repo := newStubRepo()
	repo.customers[1] = models.Customer{ID: 1, AccountID: 1, Name: "Dona Marta", DefaultPrice: fptr(180)}
	repo.helpers[7] = models.Helper{ID: 7, AccountID: 1, Name: "Rosa", PayoutMode: "FIXED", PayoutValue: 90}
	return repo, NewCreateAppointment(repo, newTestDispatcher())
}

func TestCreateAppointmentPrefillsCustomerDefaultPrice(t *testing.T) {
	_, uc := newCreateFixture()

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		AccountID:  1,
		UserID:     9,
		CustomerID: 1,
		Date:       dates.DateParts{Year: 2024, Month: 3, Day: 5},
		StartTime:  "08:00",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if ap.Price == nil || *ap.Price != 180 {
		t.Fatalf("expected default price 180, got %v", ap.Price)
	}
	if ap.Status != string(domain.StatusScheduled) {
		t.Fatalf("expected AGENDADO, got %s", ap.Status)
	}
	if ap.Date != "2024-03-05" {
		t.Fatalf("expected canonical date, got %s", ap.Date)
	}
}

func TestCreateAppointmentExplicitPriceWins(t *testing.T) {
	_, uc := newCreateFixture()

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		AccountID:  1,
		UserID:     9,
		CustomerID: 1,
		Date:       dates.DateParts{Year: 2024, Month: 3, Day: 5},
		StartTime:  "08:00",
		Price:      fptr(250),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if *ap.Price != 250 {
		t.Fatalf("expected 250, got %v", *ap.Price)
	}
}

func TestCreateAppointmentInvalidDayIsFieldError(t *testing.T) {
	_, uc := newCreateFixture()

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		AccountID:  1,
		UserID:     9,
		CustomerID: 1,
		Date:       dates.DateParts{Year: 2024, Month: 2, Day: 30},
		StartTime:  "08:00",
	})

	var verr *dates.ValidationError
	if err == nil {
		t.Fatal("expected validation error for Feb 30")
	}
	if !errors.As(err, &verr) {
		t.Fatalf("expected *dates.ValidationError, got %T", err)
	}
	if verr.Field != "day" {
		t.Fatalf("expected day field error, got %s", verr.Field)
	}
}

func TestCreateRecurringMaterializesSeries(t *testing.T) {
	repo, uc := newCreateFixture()

	anchor, err := uc.Execute(context.Background(), CreateAppointmentInput{
		AccountID:      1,
		UserID:         9,
		CustomerID:     1,
		Date:           dates.DateParts{Year: 2024, Month: 3, Day: 5},
		StartTime:      "08:00",
		IsRecurring:    true,
		RecurrenceRule: domain.RuleBiweekly,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if anchor.RecurrenceSeriesID == "" {
		t.Fatal("expected a generated series id")
	}

	occurrences, _ := repo.ListAppointmentsByCustomer(context.Background(), 1, 1)
	if len(occurrences) != 12 {
		t.Fatalf("expected 12 materialized occurrences, got %d", len(occurrences))
	}

	for i, occ := range occurrences {
		if occ.RecurrenceSeriesID != anchor.RecurrenceSeriesID {
			t.Fatalf("occurrence %d has a different series id", i)
		}
		if occ.StartTime != "08:00" || occ.RecurrenceRule != domain.RuleBiweekly {
			t.Fatalf("occurrence %d lost series fields: %+v", i, occ)
		}
	}

	// quinzenal: segunda ocorrência 14 dias depois da âncora
	if occurrences[1].Date != "2024-03-19" {
		t.Fatalf("expected 2024-03-19 for the second occurrence, got %s", occurrences[1].Date)
	}
	if occurrences[11].Date != "2024-08-06" {
		t.Fatalf("expected 2024-08-06 for the last occurrence, got %s", occurrences[11].Date)
	}
}

func TestCreateRejectsInvalidRecurrenceRule(t *testing.T) {
	_, uc := newCreateFixture()

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		AccountID:      1,
		UserID:         9,
		CustomerID:     1,
		Date:           dates.DateParts{Year: 2024, Month: 3, Day: 5},
		StartTime:      "08:00",
		IsRecurring:    true,
		RecurrenceRule: "FREQ=DAILY;INTERVAL=1",
	})
	if !httperr.IsBusiness(err, "invalid_recurrence_rule") {
		t.Fatalf("expected invalid_recurrence_rule, got %v", err)
	}
}

func TestCreateRejectsRuleWithoutRecurringFlag(t *testing.T) {
	_, uc := newCreateFixture()

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		AccountID:      1,
		UserID:         9,
		CustomerID:     1,
		Date:           dates.DateParts{Year: 2024, Month: 3, Day: 5},
		StartTime:      "08:00",
		RecurrenceRule: domain.RuleWeekly,
	})
	if !httperr.IsBusiness(err, "rule_without_recurrence") {
		t.Fatalf("expected rule_without_recurrence, got %v", err)
	}
}

func TestCreateAlreadyCompletedGoesThroughStateMachine(t *testing.T) {
	_, uc := newCreateFixture()

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		AccountID:        1,
		UserID:           9,
		CustomerID:       1,
		HelperID:         uptr(7),
		Date:             dates.DateParts{Year: 2024, Month: 3, Day: 5},
		StartTime:        "08:00",
		Price:            fptr(200),
		AlreadyCompleted: true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if ap.Status != string(domain.StatusCompleted) {
		t.Fatalf("expected CONCLUIDO, got %s", ap.Status)
	}
	if ap.StartedAt == nil || ap.FinishedAt == nil {
		t.Fatal("retroactive completion must stamp both timestamps")
	}
	if ap.HelperFee == nil || *ap.HelperFee != 90 {
		t.Fatalf("expected fixed payout 90, got %v", ap.HelperFee)
	}
}
