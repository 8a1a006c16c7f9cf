package db

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"gorm.io/gorm"

	"kras-kickers/volunteers/internal/config"
)

var DB *sqlx.DB

// InitSQLX opens the read-projection handle. Postgres gets its own lib/pq pool;
// sqlite shares the GORM connection so both see the same database.
func InitSQLX(cfg config.DBConfig, orm *gorm.DB) (*sqlx.DB, error) {
	if cfg.Driver == "sqlite" {
		sqlDB, err := orm.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sqlite handle: %w", err)
		}
		DB = sqlx.NewDb(sqlDB, "sqlite3")
		return DB, nil
	}

	var err error
	for i := 0; i < 10; i++ {
		DB, err = sqlx.Connect("postgres", cfg.PostgresDSN())
		if err == nil {
			return DB, nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return nil, err
}
