package persistence

import (
	"ticketsync-service/internal/infrastructure/config"
	"ticketsync-service/pkg/logger"
	"ticketsync-service/pkg/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SinkConn pairs a configured sink name with its database handle. DB is nil
// when the connection could not be opened; the sink still occupies its slot
// so the coordinator can report a zero count for it.
type SinkConn struct {
	Name string
	DB   *gorm.DB
}

// OpenSinks opens one gorm connection per configured sink target. An
// unreachable sink is logged and returned with a nil DB, never aborting the
// remaining sinks.
func OpenSinks(targets []config.SinkTarget, log logger.Logger) []SinkConn {
	conns := make([]SinkConn, 0, len(targets))

	for _, target := range targets {
		db, err := gorm.Open(postgres.Open(target.DSN), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			log.Error("Failed to initialize sink connection",
				"sink", target.Name,
				"dsn", utils.RedactDSN(target.DSN),
				"error", err)
			conns = append(conns, SinkConn{Name: target.Name})
			continue
		}

		log.Info("Sink connection initialized",
			"sink", target.Name,
			"dsn", utils.RedactDSN(target.DSN))
		conns = append(conns, SinkConn{Name: target.Name, DB: db})
	}

	return conns
}
