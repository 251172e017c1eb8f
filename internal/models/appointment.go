package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AccountID uint    `json:"account_id"`
	Account   Account `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"account"`

	CustomerID uint     `gorm:"index" json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	HelperID *uint   `gorm:"index" json:"helper_id"`
	Helper   *Helper `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"helper"`

	// Data canônica YYYY-MM-DD e horários HH:MM no fuso da conta
	Date        string `gorm:"size:10;index" json:"date"`
	StartTime   string `gorm:"size:5" json:"start_time"`
	EndTime     string `gorm:"size:5" json:"end_time"`
	DurationMin *int   `json:"duration_min"`

	Status      string     `gorm:"size:20;default:'AGENDADO'" json:"status"`
	StartedAt   *time.Time `json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	Price     *float64 `json:"price"`
	HelperFee *float64 `json:"helper_fee"`

	IsRecurring        bool   `json:"is_recurring"`
	RecurrenceRule     string `gorm:"size:40" json:"recurrence_rule"`
	RecurrenceSeriesID string `gorm:"size:36;index" json:"recurrence_series_id"`

	WorkPhotoURL string `gorm:"size:255" json:"work_photo_url"`
	Notes        string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
