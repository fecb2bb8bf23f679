package monitoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splice-sistemas/splice-be/internal/alerts"
	"github.com/splice-sistemas/splice-be/internal/database"
	"github.com/splice-sistemas/splice-be/internal/services"
	"github.com/splice-sistemas/splice-be/internal/websocket"
)

func TestNewDigestJobRejectsBadCron(t *testing.T) {
	_, err := NewDigestJob(nil, nil, nil, "not a cron line")
	assert.Error(t, err)

	_, err = NewDigestJob(nil, nil, nil, "0 7 * * *")
	assert.NoError(t, err)
}

func TestDigestRunOnce(t *testing.T) {
	db, err := database.New(":memory:")
	require.NoError(t, err)
	// In-memory sqlite lives inside a single connection.
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })

	db.MustExec(`INSERT INTO inventory (id, name, quantity, min_quantity) VALUES ('i1', 'Cone', 0, 10)`)

	hub := websocket.NewHub()
	go hub.Run()
	auditSvc := services.NewAuditService(db, hub)

	job, err := NewDigestJob(alerts.NewEngine(db), auditSvc, hub, "0 7 * * *")
	require.NoError(t, err)

	job.runOnce()

	entries, err := auditSvc.RecentActivity(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "alerts.digest", entries[0].Action)
	assert.Contains(t, entries[0].Message, "1 no total")
	assert.Contains(t, entries[0].Message, "1 críticos")
}
