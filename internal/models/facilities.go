package models

import "time"

// EnergyBill is one power-utility bill for an installation.
type EnergyBill struct {
	ID             string    `json:"id" db:"id"`
	Installation   string    `json:"installation" db:"installation"`
	ReferenceMonth *string   `json:"referenceMonth" db:"reference_month"`
	DueDate        *string   `json:"dueDate" db:"due_date"`
	Amount         float64   `json:"amount" db:"amount"`
	ConsumptionKwh float64   `json:"consumptionKwh" db:"consumption_kwh"`
	Paid           bool      `json:"paid" db:"paid"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// InternetBill is one connectivity bill.
type InternetBill struct {
	ID             string    `json:"id" db:"id"`
	Provider       string    `json:"provider" db:"provider"`
	ReferenceMonth *string   `json:"referenceMonth" db:"reference_month"`
	DueDate        *string   `json:"dueDate" db:"due_date"`
	Amount         float64   `json:"amount" db:"amount"`
	Paid           bool      `json:"paid" db:"paid"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}
