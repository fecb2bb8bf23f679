package alerts

import (
	"fmt"
	"sort"
	"time"

	"github.com/splice-sistemas/splice-be/internal/models"
)

// Alert categories, one per data source.
const (
	CategoryContracts     = "contracts"
	CategoryCalibrations  = "calibrations"
	CategoryInvoices      = "invoices"
	CategoryEnergyBills   = "energy_bills"
	CategoryInternetBills = "internet_bills"
	CategoryInventory     = "inventory"
	CategoryEquipment     = "equipment"
	CategoryMileage       = "mileage"
)

// Deadline policy: how close a due date must be before it is alert-worthy,
// and how the distance maps to a severity.
const (
	lookbackDays        = 60
	highThresholdDays   = 15
	mediumThresholdDays = 30
)

// Mileage policy: absolute monthly consumption thresholds in km.
const (
	mileageWarnKm     = 2000
	mileageCriticalKm = 3000
)

// Equipment-in-maintenance policy: elapsed days since the status change.
const (
	maintenanceHighDays   = 30
	maintenanceMediumDays = 7
)

// daysUntil computes whole calendar days from now until an ISO date string.
// Returns false for absent or unparseable dates.
func daysUntil(date *string, now time.Time) (int, bool) {
	if date == nil || *date == "" {
		return 0, false
	}
	deadline, err := time.Parse("2006-01-02", *date)
	if err != nil {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(deadline.Sub(today).Hours() / 24), true
}

// deadlineSeverity maps days-until-deadline onto a severity. The second
// return is false outside the lookback window (no alert at all).
func deadlineSeverity(days int) (string, bool) {
	switch {
	case days <= 0:
		return models.SeverityCritical, true
	case days <= highThresholdDays:
		return models.SeverityHigh, true
	case days <= mediumThresholdDays:
		return models.SeverityMedium, true
	case days <= lookbackDays:
		return models.SeverityLow, true
	default:
		return "", false
	}
}

// alertID derives the stable identity of an alert. Alerts are never stored,
// so recomputation must produce the same ID for the same record.
func alertID(category, entityID string) string {
	return category + "-" + entityID
}

func newAlert(category, severity, entityID, entityType, title, description, suggestion string, now time.Time) models.SystemAlert {
	return models.SystemAlert{
		ID:          alertID(category, entityID),
		Severity:    severity,
		Category:    category,
		Title:       title,
		Description: description,
		Suggestion:  suggestion,
		DetectedAt:  now,
		EntityID:    entityID,
		EntityType:  entityType,
	}
}

// dueLabel phrases a day distance in Portuguese.
func dueLabel(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("venceu há %d dias", -days)
	case days == 0:
		return "vence hoje"
	case days == 1:
		return "vence amanhã"
	default:
		return fmt.Sprintf("vence em %d dias", days)
	}
}

func contractAlerts(rows []contractRow, now time.Time) []models.SystemAlert {
	var alerts []models.SystemAlert
	for _, c := range rows {
		days, ok := daysUntil(c.EndDate, now)
		if !ok {
			continue
		}
		severity, ok := deadlineSeverity(days)
		if !ok {
			continue
		}
		alerts = append(alerts, newAlert(
			CategoryContracts, severity, c.ID, "contracts",
			fmt.Sprintf("Contrato %s %s", c.Number, dueLabel(days)),
			fmt.Sprintf("O contrato %s com %s tem término previsto para %s.", c.Number, c.Client, *c.EndDate),
			"Inicie a renovação ou formalize o encerramento do contrato.",
			now,
		))
	}
	return alerts
}

func calibrationAlerts(rows []calibrationRow, now time.Time) []models.SystemAlert {
	var alerts []models.SystemAlert
	for _, c := range rows {
		days, ok := daysUntil(c.NextDate, now)
		if !ok {
			continue
		}
		severity, ok := deadlineSeverity(days)
		if !ok {
			continue
		}
		alerts = append(alerts, newAlert(
			CategoryCalibrations, severity, c.ID, "calibrations",
			fmt.Sprintf("Calibração do equipamento %s %s", c.EquipmentName, dueLabel(days)),
			fmt.Sprintf("A próxima calibração de %s está agendada para %s.", c.EquipmentName, *c.NextDate),
			"Agende a calibração com o laboratório antes do vencimento do certificado.",
			now,
		))
	}
	return alerts
}

func invoiceAlerts(rows []invoiceRow, now time.Time) []models.SystemAlert {
	var alerts []models.SystemAlert
	for _, inv := range rows {
		days, ok := daysUntil(inv.DueDate, now)
		if !ok {
			continue
		}
		severity, ok := deadlineSeverity(days)
		if !ok {
			continue
		}
		alerts = append(alerts, newAlert(
			CategoryInvoices, severity, inv.ID, "invoices",
			fmt.Sprintf("Nota fiscal %s %s", inv.Number, dueLabel(days)),
			fmt.Sprintf("A nota fiscal %s no valor de R$ %.2f está pendente de pagamento.", inv.Number, inv.Amount),
			"Verifique o pagamento ou renegocie o vencimento com o cliente.",
			now,
		))
	}
	return alerts
}

func energyBillAlerts(rows []billRow, now time.Time) []models.SystemAlert {
	return billAlerts(rows, now, CategoryEnergyBills, "energy_bills", "Conta de energia")
}

func internetBillAlerts(rows []billRow, now time.Time) []models.SystemAlert {
	return billAlerts(rows, now, CategoryInternetBills, "internet_bills", "Conta de internet")
}

func billAlerts(rows []billRow, now time.Time, category, entityType, label string) []models.SystemAlert {
	var alerts []models.SystemAlert
	for _, b := range rows {
		days, ok := daysUntil(b.DueDate, now)
		if !ok {
			continue
		}
		severity, ok := deadlineSeverity(days)
		if !ok {
			continue
		}
		alerts = append(alerts, newAlert(
			category, severity, b.ID, entityType,
			fmt.Sprintf("%s (%s) %s", label, b.Reference, dueLabel(days)),
			fmt.Sprintf("%s de %s no valor de R$ %.2f ainda não foi paga.", label, b.Reference, b.Amount),
			"Programe o pagamento para evitar juros e corte de fornecimento.",
			now,
		))
	}
	return alerts
}

func inventoryAlerts(rows []inventoryRow, now time.Time) []models.SystemAlert {
	var alerts []models.SystemAlert
	for _, item := range rows {
		var severity string
		switch {
		case item.Quantity <= 0:
			severity = models.SeverityCritical
		case item.MinQuantity > 0 && item.Quantity <= item.MinQuantity*0.5:
			severity = models.SeverityHigh
		case item.Quantity <= item.MinQuantity:
			severity = models.SeverityMedium
		default:
			continue
		}
		alerts = append(alerts, newAlert(
			CategoryInventory, severity, item.ID, "inventory",
			fmt.Sprintf("Estoque baixo: %s", item.Name),
			fmt.Sprintf("O item %s está com %.0f unidades (mínimo %.0f).", item.Name, item.Quantity, item.MinQuantity),
			"Abra uma requisição de compra para repor o estoque.",
			now,
		))
	}
	return alerts
}

func equipmentAlerts(rows []equipmentRow, now time.Time) []models.SystemAlert {
	var alerts []models.SystemAlert
	for _, eq := range rows {
		days, ok := daysUntil(eq.StatusChangedAt, now)
		if !ok {
			continue
		}
		elapsed := -days
		var severity string
		switch {
		case elapsed >= maintenanceHighDays:
			severity = models.SeverityHigh
		case elapsed >= maintenanceMediumDays:
			severity = models.SeverityMedium
		default:
			continue
		}
		alerts = append(alerts, newAlert(
			CategoryEquipment, severity, eq.ID, "equipment",
			fmt.Sprintf("Equipamento %s em manutenção há %d dias", eq.Name, elapsed),
			fmt.Sprintf("O equipamento %s (%s) está em manutenção desde %s.", eq.Name, eq.Code, *eq.StatusChangedAt),
			"Cobre o prazo de conserto ou providencie um equipamento reserva.",
			now,
		))
	}
	return alerts
}

func mileageAlerts(rows []mileageRow, now time.Time) []models.SystemAlert {
	var alerts []models.SystemAlert
	for _, m := range rows {
		var severity string
		switch {
		case m.TotalKm >= mileageCriticalKm:
			severity = models.SeverityCritical
		case m.TotalKm >= mileageWarnKm:
			severity = models.SeverityMedium
		default:
			continue
		}
		alerts = append(alerts, newAlert(
			CategoryMileage, severity, m.VehicleID, "vehicles",
			fmt.Sprintf("Veículo %s rodou %.0f km neste mês", m.Plate, m.TotalKm),
			fmt.Sprintf("A quilometragem acumulada do veículo %s no mês já soma %.0f km.", m.Plate, m.TotalKm),
			"Reavalie a escala de uso do veículo e antecipe a revisão preventiva.",
			now,
		))
	}
	return alerts
}

// sortBySeverity orders alerts critical < high < medium < low; the sort is
// stable so ties keep encounter order.
func sortBySeverity(alerts []models.SystemAlert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		return models.SeverityRank[alerts[i].Severity] < models.SeverityRank[alerts[j].Severity]
	})
}

// Summarize counts a computed alert list by severity and groups it by
// category, for the dashboard summary widgets.
func Summarize(alerts []models.SystemAlert) models.AlertSummary {
	summary := models.AlertSummary{
		Total:      len(alerts),
		BySeverity: make(map[string]int),
		ByCategory: make(map[string][]models.SystemAlert),
	}
	for _, a := range alerts {
		summary.BySeverity[a.Severity]++
		summary.ByCategory[a.Category] = append(summary.ByCategory[a.Category], a)
	}
	return summary
}
