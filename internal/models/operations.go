package models

import "time"

// Contract is a service contract with a client.
type Contract struct {
	ID           string    `json:"id" db:"id"`
	Number       string    `json:"number" db:"number"`
	Client       string    `json:"client" db:"client"`
	Description  *string   `json:"description" db:"description"`
	StartDate    *string   `json:"startDate" db:"start_date"`
	EndDate      *string   `json:"endDate" db:"end_date"`
	MonthlyValue float64   `json:"monthlyValue" db:"monthly_value"`
	Status       string    `json:"status" db:"status"` // ativo | encerrado | suspenso
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Employee is a staff member.
type Employee struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	CPF           *string   `json:"cpf" db:"cpf"`
	RoleTitle     *string   `json:"roleTitle" db:"role_title"`
	Phone         *string   `json:"phone" db:"phone"`
	Email         *string   `json:"email" db:"email"`
	AdmissionDate *string   `json:"admissionDate" db:"admission_date"`
	Salary        float64   `json:"salary" db:"salary"`
	Status        string    `json:"status" db:"status"` // ativo | inativo | ferias | afastado
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// Invoice is an issued fiscal note tied (optionally) to a contract.
type Invoice struct {
	ID         string    `json:"id" db:"id"`
	Number     string    `json:"number" db:"number"`
	ContractID *string   `json:"contractId" db:"contract_id"`
	IssueDate  *string   `json:"issueDate" db:"issue_date"`
	DueDate    *string   `json:"dueDate" db:"due_date"`
	Amount     float64   `json:"amount" db:"amount"`
	Status     string    `json:"status" db:"status"` // pendente | paga | cancelada
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// InventoryItem is one stocked item with a minimum-quantity floor.
type InventoryItem struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Category    *string   `json:"category" db:"category"`
	Quantity    float64   `json:"quantity" db:"quantity"`
	MinQuantity float64   `json:"minQuantity" db:"min_quantity"`
	Unit        *string   `json:"unit" db:"unit"`
	Location    *string   `json:"location" db:"location"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// Equipment is a tracked piece of field equipment.
type Equipment struct {
	ID              string    `json:"id" db:"id"`
	Code            string    `json:"code" db:"code"`
	Name            string    `json:"name" db:"name"`
	SerialNumber    *string   `json:"serialNumber" db:"serial_number"`
	Location        *string   `json:"location" db:"location"`
	Status          string    `json:"status" db:"status"` // operante | manutencao | inoperante | calibracao
	StatusChangedAt *string   `json:"statusChangedAt" db:"status_changed_at"`
	ContractID      *string   `json:"contractId" db:"contract_id"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

// Calibration records the calibration window of one equipment.
type Calibration struct {
	ID          string    `json:"id" db:"id"`
	EquipmentID string    `json:"equipmentId" db:"equipment_id"`
	LastDate    *string   `json:"lastDate" db:"last_date"`
	NextDate    *string   `json:"nextDate" db:"next_date"`
	Certificate *string   `json:"certificate" db:"certificate"`
	Provider    *string   `json:"provider" db:"provider"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
