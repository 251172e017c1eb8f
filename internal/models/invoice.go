package models

import "time"

// Registro de cobrança emitida para um agendamento concluído.
// A URL é o link de pagamento devolvido pelo provedor.
type Invoice struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	AccountID uint `gorm:"index" json:"account_id"`

	AppointmentID uint `gorm:"index" json:"appointment_id"`
	CustomerID    uint `gorm:"index" json:"customer_id"`

	Amount     float64 `json:"amount"`
	URL        string  `gorm:"size:500" json:"url"`
	ProviderID string  `gorm:"size:100" json:"provider_id"`

	CreatedAt time.Time `json:"created_at"`
}
