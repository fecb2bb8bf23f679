package alerts

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/splice-sistemas/splice-be/internal/models"
)

// Row shapes for the per-category queries. Only the columns each rule
// needs are fetched.
type contractRow struct {
	ID      string  `db:"id"`
	Number  string  `db:"number"`
	Client  string  `db:"client"`
	EndDate *string `db:"end_date"`
}

type calibrationRow struct {
	ID            string  `db:"id"`
	EquipmentName string  `db:"equipment_name"`
	NextDate      *string `db:"next_date"`
}

type invoiceRow struct {
	ID      string  `db:"id"`
	Number  string  `db:"number"`
	Amount  float64 `db:"amount"`
	DueDate *string `db:"due_date"`
}

type billRow struct {
	ID        string  `db:"id"`
	Reference string  `db:"reference"`
	Amount    float64 `db:"amount"`
	DueDate   *string `db:"due_date"`
}

type inventoryRow struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Quantity    float64 `db:"quantity"`
	MinQuantity float64 `db:"min_quantity"`
}

type equipmentRow struct {
	ID              string  `db:"id"`
	Code            string  `db:"code"`
	Name            string  `db:"name"`
	StatusChangedAt *string `db:"status_changed_at"`
}

type mileageRow struct {
	VehicleID string  `db:"vehicle_id"`
	Plate     string  `db:"plate"`
	TotalKm   float64 `db:"total_km"`
}

// Engine derives system alerts from the current database snapshot. Nothing
// is persisted: every Compute call reclassifies from scratch.
type Engine struct {
	db *sqlx.DB
}

// NewEngine creates an alert engine over the given database.
func NewEngine(db *sqlx.DB) *Engine {
	return &Engine{db: db}
}

// Compute queries all eight alert sources and returns the unified list,
// stably sorted by severity. A failing source is logged and skipped so one
// broken query never blanks the whole dashboard.
func (e *Engine) Compute(ctx context.Context) []models.SystemAlert {
	now := time.Now().UTC()
	var alerts []models.SystemAlert

	var contracts []contractRow
	if err := e.db.SelectContext(ctx, &contracts,
		`SELECT id, number, client, end_date FROM contracts
		 WHERE status = 'ativo' AND end_date IS NOT NULL`); err != nil {
		log.Error().Err(err).Msg("alerts: contract query failed")
	} else {
		alerts = append(alerts, contractAlerts(contracts, now)...)
	}

	var calibrations []calibrationRow
	if err := e.db.SelectContext(ctx, &calibrations,
		`SELECT c.id, e.name AS equipment_name, c.next_date
		 FROM calibrations c JOIN equipment e ON e.id = c.equipment_id
		 WHERE c.next_date IS NOT NULL`); err != nil {
		log.Error().Err(err).Msg("alerts: calibration query failed")
	} else {
		alerts = append(alerts, calibrationAlerts(calibrations, now)...)
	}

	var invoices []invoiceRow
	if err := e.db.SelectContext(ctx, &invoices,
		`SELECT id, number, amount, due_date FROM invoices
		 WHERE status = 'pendente' AND due_date IS NOT NULL`); err != nil {
		log.Error().Err(err).Msg("alerts: invoice query failed")
	} else {
		alerts = append(alerts, invoiceAlerts(invoices, now)...)
	}

	var energy []billRow
	if err := e.db.SelectContext(ctx, &energy,
		`SELECT id, installation AS reference, amount, due_date FROM energy_bills
		 WHERE paid = 0 AND due_date IS NOT NULL`); err != nil {
		log.Error().Err(err).Msg("alerts: energy bill query failed")
	} else {
		alerts = append(alerts, energyBillAlerts(energy, now)...)
	}

	var internet []billRow
	if err := e.db.SelectContext(ctx, &internet,
		`SELECT id, provider AS reference, amount, due_date FROM internet_bills
		 WHERE paid = 0 AND due_date IS NOT NULL`); err != nil {
		log.Error().Err(err).Msg("alerts: internet bill query failed")
	} else {
		alerts = append(alerts, internetBillAlerts(internet, now)...)
	}

	var inventory []inventoryRow
	if err := e.db.SelectContext(ctx, &inventory,
		`SELECT id, name, quantity, min_quantity FROM inventory
		 WHERE quantity <= min_quantity OR quantity <= 0`); err != nil {
		log.Error().Err(err).Msg("alerts: inventory query failed")
	} else {
		alerts = append(alerts, inventoryAlerts(inventory, now)...)
	}

	var equipment []equipmentRow
	if err := e.db.SelectContext(ctx, &equipment,
		`SELECT id, code, name, status_changed_at FROM equipment
		 WHERE status = 'manutencao' AND status_changed_at IS NOT NULL`); err != nil {
		log.Error().Err(err).Msg("alerts: equipment query failed")
	} else {
		alerts = append(alerts, equipmentAlerts(equipment, now)...)
	}

	var mileage []mileageRow
	if err := e.db.SelectContext(ctx, &mileage,
		`SELECT m.vehicle_id, v.plate, SUM(m.km) AS total_km
		 FROM mileage_records m JOIN vehicles v ON v.id = m.vehicle_id
		 WHERE m.month = ?
		 GROUP BY m.vehicle_id, v.plate`,
		time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")); err != nil {
		log.Error().Err(err).Msg("alerts: mileage query failed")
	} else {
		alerts = append(alerts, mileageAlerts(mileage, now)...)
	}

	sortBySeverity(alerts)
	return alerts
}
