package models

import "time"

// Vehicle is one fleet vehicle.
type Vehicle struct {
	ID         string    `json:"id" db:"id"`
	Plate      string    `json:"plate" db:"plate"`
	Model      *string   `json:"model" db:"model"`
	Brand      *string   `json:"brand" db:"brand"`
	Year       int64     `json:"year" db:"year"`
	Renavam    *string   `json:"renavam" db:"renavam"`
	FuelType   *string   `json:"fuelType" db:"fuel_type"`
	Status     string    `json:"status" db:"status"` // ativo | manutencao | inativo
	ContractID *string   `json:"contractId" db:"contract_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// FuelRecord is one refuelling entry.
type FuelRecord struct {
	ID            string    `json:"id" db:"id"`
	VehicleID     string    `json:"vehicleId" db:"vehicle_id"`
	EmployeeID    *string   `json:"employeeId" db:"employee_id"`
	RecordDate    string    `json:"recordDate" db:"record_date"`
	Liters        float64   `json:"liters" db:"liters"`
	PricePerLiter float64   `json:"pricePerLiter" db:"price_per_liter"`
	TotalValue    float64   `json:"totalValue" db:"total_value"`
	Odometer      int64     `json:"odometer" db:"odometer"`
	FuelType      *string   `json:"fuelType" db:"fuel_type"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// MileageRecord accumulates one vehicle's kilometers in one month.
type MileageRecord struct {
	ID        string    `json:"id" db:"id"`
	VehicleID string    `json:"vehicleId" db:"vehicle_id"`
	Month     string    `json:"month" db:"month"` // first day of the month
	Km        float64   `json:"km" db:"km"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
