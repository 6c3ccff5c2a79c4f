package metrics

import (
	"database/sql"
	"strings"
	"time"
)

// UpdateDBStats publishes a connection pool snapshot. The argument is
// declared as interface{} so the database package does not need to
// import database/sql types through us; anything other than a
// sql.DBStats is ignored.
func (m *Metrics) UpdateDBStats(statsInterface interface{}) {
	stats, ok := statsInterface.(sql.DBStats)
	if !ok {
		return
	}
	m.safeExecute("UpdateDBStats", func() {
		m.DBConnectionsOpen.Set(float64(stats.OpenConnections))
		m.DBConnectionsInUse.Set(float64(stats.InUse))
		m.DBConnectionsIdle.Set(float64(stats.Idle))
		m.DBConnectionsMax.Set(float64(stats.MaxOpenConnections))
		m.DBConnectionWaitTotal.Add(float64(stats.WaitCount))
		m.DBConnectionWaitDuration.Add(stats.WaitDuration.Seconds())
	})
}

// RecordDBQuery observes a single query's latency, and counts it as an
// error when the query failed.
func (m *Metrics) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	op := strings.ToLower(operation)
	m.safeExecute("RecordDBQuery", func() {
		m.DBQueryDuration.WithLabelValues(op, table).Observe(duration.Seconds())
		if err != nil {
			m.DBQueryErrors.WithLabelValues(op, table).Inc()
		}
	})
}
