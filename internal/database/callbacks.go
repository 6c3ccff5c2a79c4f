package database

import (
	"time"

	"gorm.io/gorm"
)

const queryStartKey = "metrics:query_start"

// MetricsRecorder receives query timings and pool statistics. The
// metrics package satisfies it; declaring the interface here keeps
// database free of an import on metrics.
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
	UpdateDBStats(stats interface{})
}

// callbackSlot is the point in a gorm callback chain where a hook can
// be registered. Both Before() and After() results satisfy it.
type callbackSlot interface {
	Register(name string, fn func(*gorm.DB)) error
}

// RegisterMetricsCallbacks times every query, insert, update and
// delete that goes through the gorm instance.
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) {
	cb := db.Callback()
	timeOperation(cb.Query().Before("gorm:query"), cb.Query().After("gorm:query"), "select", recorder)
	timeOperation(cb.Create().Before("gorm:create"), cb.Create().After("gorm:create"), "insert", recorder)
	timeOperation(cb.Update().Before("gorm:update"), cb.Update().After("gorm:update"), "update", recorder)
	timeOperation(cb.Delete().Before("gorm:delete"), cb.Delete().After("gorm:delete"), "delete", recorder)
}

func timeOperation(before, after callbackSlot, operation string, recorder MetricsRecorder) {
	before.Register("metrics:"+operation+"_start", func(db *gorm.DB) {
		db.InstanceSet(queryStartKey, time.Now())
	})
	after.Register("metrics:"+operation+"_done", func(db *gorm.DB) {
		start, ok := db.InstanceGet(queryStartKey)
		if !ok {
			return
		}
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		recorder.RecordDBQuery(operation, table, time.Since(start.(time.Time)), db.Error)
	})
}

// StartDBStatsCollector samples connection pool statistics every 15
// seconds until the returned channel is closed.
func StartDBStatsCollector(db *gorm.DB, recorder MetricsRecorder) chan struct{} {
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					continue
				}
				recorder.UpdateDBStats(sqlDB.Stats())
			}
		}
	}()

	return done
}
