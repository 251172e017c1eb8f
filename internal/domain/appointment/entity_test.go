package appointment

import (
	"testing"
	"time"

	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/httperr"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/models"
)

func fptr(v float64) *float64 { return &v }

func TestStartStampsStartedAt(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusScheduled)}
	now := time.Date(2024, 3, 5, 9, 0, 0, 0, time.Local)

	if err := Start(ap, now); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if ap.Status != string(StatusInProgress) {
		t.Fatalf("expected EM_ANDAMENTO, got %s", ap.Status)
	}
	if ap.StartedAt == nil || !ap.StartedAt.Equal(now) {
		t.Fatalf("expected startedAt %v, got %v", now, ap.StartedAt)
	}
}

func TestStartIsIdempotentFromInProgress(t *testing.T) {
	first := time.Date(2024, 3, 5, 9, 0, 0, 0, time.Local)
	ap := &models.Appointment{Status: string(StatusInProgress), StartedAt: &first}

	if err := Start(ap, first.Add(time.Minute)); err != nil {
		t.Fatalf("expected retried start to be a no-op, got %v", err)
	}
	if !ap.StartedAt.Equal(first) {
		t.Fatal("retried start must not move startedAt")
	}
}

func TestStartIllegalFromTerminal(t *testing.T) {
	for _, status := range []Status{StatusCompleted, StatusCancelled} {
		ap := &models.Appointment{Status: string(status)}
		if err := Start(ap, time.Now()); err == nil {
			t.Fatalf("expected start from %s to fail", status)
		}
	}
}

func TestFinishFromScheduledIsIllegal(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusScheduled)}
	err := Finish(ap, nil, time.Now())
	if err == nil {
		t.Fatal("finish must not silently succeed from AGENDADO")
	}
	if !httperr.IsBusiness(err, "invalid_transition") {
		t.Fatalf("expected invalid_transition, got %v", err)
	}
	if ap.FinishedAt != nil {
		t.Fatal("illegal finish must not stamp finishedAt")
	}
}

func TestFinishStampsAndDerivesFee(t *testing.T) {
	started := time.Date(2024, 3, 5, 9, 0, 0, 0, time.Local)
	now := started.Add(3 * time.Hour)
	helperID := uint(7)

	ap := &models.Appointment{
		Status:    string(StatusInProgress),
		StartedAt: &started,
		HelperID:  &helperID,
		Price:     fptr(200),
	}
	helper := &models.Helper{ID: helperID, PayoutMode: "PERCENTAGE", PayoutValue: 40}

	if err := Finish(ap, helper, now); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if ap.Status != string(StatusCompleted) {
		t.Fatalf("expected CONCLUIDO, got %s", ap.Status)
	}
	if ap.FinishedAt == nil || ap.FinishedAt.Before(*ap.StartedAt) {
		t.Fatalf("expected finishedAt >= startedAt, got %v", ap.FinishedAt)
	}
	if ap.HelperFee == nil || *ap.HelperFee != 80.00 {
		t.Fatalf("expected derived fee 80.00, got %v", ap.HelperFee)
	}
}

func TestFinishKeepsExistingFee(t *testing.T) {
	started := time.Now()
	ap := &models.Appointment{
		Status:    string(StatusInProgress),
		StartedAt: &started,
		Price:     fptr(200),
		HelperFee: fptr(50),
	}
	helper := &models.Helper{PayoutMode: "PERCENTAGE", PayoutValue: 40}

	if err := Finish(ap, helper, time.Now()); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if *ap.HelperFee != 50 {
		t.Fatalf("finish must not overwrite an existing fee, got %v", *ap.HelperFee)
	}
}

func TestFinishWithoutPriceSkipsFee(t *testing.T) {
	started := time.Now()
	ap := &models.Appointment{Status: string(StatusInProgress), StartedAt: &started}
	helper := &models.Helper{PayoutMode: "FIXED", PayoutValue: 35}

	if err := Finish(ap, helper, time.Now()); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if ap.HelperFee != nil {
		t.Fatalf("unpriced appointment must stay without fee, got %v", *ap.HelperFee)
	}
}

func TestCancelFromNonTerminalStates(t *testing.T) {
	now := time.Now()

	for _, status := range []Status{StatusScheduled, StatusInProgress} {
		ap := &models.Appointment{Status: string(status)}
		if err := Cancel(ap, now); err != nil {
			t.Fatalf("cancel from %s: %v", status, err)
		}
		if ap.Status != string(StatusCancelled) || ap.CancelledAt == nil {
			t.Fatalf("expected cancelled with timestamp, got %+v", ap)
		}
	}

	for _, status := range []Status{StatusCompleted, StatusCancelled} {
		ap := &models.Appointment{Status: string(status)}
		if err := Cancel(ap, now); err == nil {
			t.Fatalf("expected cancel from %s to fail", status)
		}
	}
}

func TestElapsedMinutesDerivation(t *testing.T) {
	started := time.Date(2024, 3, 5, 9, 0, 0, 0, time.Local)

	t.Run("running clock while in progress", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusInProgress), StartedAt: &started}
		if got := ElapsedMinutes(ap, started.Add(95*time.Minute)); got != 95 {
			t.Fatalf("expected 95, got %d", got)
		}
	})

	t.Run("frozen once completed", func(t *testing.T) {
		finished := started.Add(2 * time.Hour)
		ap := &models.Appointment{
			Status:     string(StatusCompleted),
			StartedAt:  &started,
			FinishedAt: &finished,
		}
		if got := ElapsedMinutes(ap, finished.Add(24*time.Hour)); got != 120 {
			t.Fatalf("expected 120 regardless of now, got %d", got)
		}
	})

	t.Run("zero without startedAt", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusScheduled)}
		if got := ElapsedMinutes(ap, time.Now()); got != 0 {
			t.Fatalf("expected 0, got %d", got)
		}
	})
}
