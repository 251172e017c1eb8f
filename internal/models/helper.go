package models

import "time"

// Diarista/ajudante que executa os serviços. A política de repasse
// (payout_mode + payout_value) define quanto ela recebe por atendimento.
type Helper struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	AccountID uint `json:"account_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	// FIXED = valor em reais por atendimento; PERCENTAGE = percentual (0-100) do preço
	PayoutMode  string  `gorm:"size:20;default:'FIXED'" json:"payout_mode"`
	PayoutValue float64 `json:"payout_value"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
