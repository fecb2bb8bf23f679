package alerts

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splice-sistemas/splice-be/internal/database"
	"github.com/splice-sistemas/splice-be/internal/models"
)

func testEngine(t *testing.T) (*Engine, *sqlx.DB) {
	t.Helper()
	db, err := database.New(":memory:")
	require.NoError(t, err)
	// In-memory sqlite lives inside a single connection.
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return NewEngine(db), db
}

func TestComputeOnEmptyDatabase(t *testing.T) {
	engine, _ := testEngine(t)
	assert.Empty(t, engine.Compute(context.Background()))
}

func TestComputeAggregatesSources(t *testing.T) {
	engine, db := testEngine(t)
	ctx := context.Background()
	now := time.Now().UTC()
	soon := now.AddDate(0, 0, 10).Format("2006-01-02")
	far := now.AddDate(0, 0, 120).Format("2006-01-02")
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")

	db.MustExec(`INSERT INTO contracts (id, number, client, end_date, status) VALUES
		('c1', 'CT-001', 'Prefeitura', ?, 'ativo'),
		('c2', 'CT-002', 'Detran', ?, 'ativo'),
		('c3', 'CT-003', 'Via Sul', ?, 'encerrado')`, soon, far, soon)

	db.MustExec(`INSERT INTO invoices (id, number, amount, due_date, status) VALUES
		('n1', 'NF-100', 1500, ?, 'pendente'),
		('n2', 'NF-101', 900, ?, 'paga')`, soon, soon)

	db.MustExec(`INSERT INTO inventory (id, name, quantity, min_quantity) VALUES
		('i1', 'Cone', 0, 10),
		('i2', 'Parafuso', 500, 100)`)

	db.MustExec(`INSERT INTO vehicles (id, plate) VALUES ('v1', 'ABC-1234')`)
	db.MustExec(`INSERT INTO mileage_records (id, vehicle_id, month, km) VALUES
		('m1', 'v1', ?, 1800),
		('m2', 'v1', ?, 1500)`, monthStart, monthStart)

	alerts := engine.Compute(ctx)

	ids := make(map[string]models.SystemAlert, len(alerts))
	for _, a := range alerts {
		ids[a.ID] = a
	}

	// Expiring active contract alerts; the far-out and closed ones do not.
	require.Contains(t, ids, "contracts-c1")
	assert.Equal(t, models.SeverityHigh, ids["contracts-c1"].Severity)
	assert.NotContains(t, ids, "contracts-c2")
	assert.NotContains(t, ids, "contracts-c3")

	// Only the pending invoice alerts.
	require.Contains(t, ids, "invoices-n1")
	assert.NotContains(t, ids, "invoices-n2")

	// Zero stock is critical; healthy stock is silent.
	require.Contains(t, ids, "inventory-i1")
	assert.Equal(t, models.SeverityCritical, ids["inventory-i1"].Severity)
	assert.NotContains(t, ids, "inventory-i2")

	// Monthly mileage is summed per vehicle: 1800 + 1500 = 3300 km.
	require.Contains(t, ids, "mileage-v1")
	assert.Equal(t, models.SeverityCritical, ids["mileage-v1"].Severity)

	// Most severe first.
	assert.Equal(t, models.SeverityCritical, alerts[0].Severity)
}
