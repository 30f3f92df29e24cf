package db

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"social-service/configs"
)

type Db struct {
	DB *gorm.DB
}

// NewDb opens the shared Postgres connection. TranslateError is on so
// constraint violations surface as gorm sentinel errors and the
// repositories can map them to the API taxonomy.
func NewDb(cfg *configs.Config) *Db {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Could not connect to Postgres: %v", err)
	}
	return &Db{DB: db}
}
