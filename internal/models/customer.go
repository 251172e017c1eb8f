package models

import "time"

// Cliente de faturamento, vinculado à conta
type Customer struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	AccountID uint `json:"account_id"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Phone   string `gorm:"size:20" json:"phone"`
	Email   string `gorm:"size:100" json:"email"`
	Address string `gorm:"size:255" json:"address"`

	// Valor padrão da diária, usado para pré-preencher novos agendamentos
	DefaultPrice *float64 `json:"default_price"`

	Notes string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
