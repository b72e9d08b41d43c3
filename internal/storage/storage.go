package storage

import (
	"sync"

	"wedsync/internal/config"
	"wedsync/internal/util/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

var (
	once sync.Once
	db   *gorm.DB
)

// GetDb returns the shared gorm connection pool, opening it on first use.
func GetDb() *gorm.DB {
	once.Do(func() {
		log := logger.GetLogger()
		env := config.GetEnv()

		conn, err := gorm.Open(postgres.Open(env.DatabaseDsn), &gorm.Config{
			Logger: gorm_logger.Default.LogMode(gorm_logger.Silent),
		})
		if err != nil {
			log.Error("Failed to connect to database", "error", err)
			panic(err)
		}

		db = conn
	})

	return db
}
