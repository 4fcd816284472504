package sql

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/saveblush/annotate-api/core/generic"
	"github.com/saveblush/annotate-api/core/utils"
	"github.com/saveblush/annotate-api/core/utils/logger"
	"github.com/saveblush/annotate-api/models"
)

func createDatabase(cf *Configuration) error {
	dsn := fmt.Sprintf("user=%s password=%s host=%s port=%d sslmode=disable TimeZone=%s",
		cf.Username,
		cf.Password,
		cf.Host,
		cf.Port,
		utils.TimeZone(),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return err
	}

	var exc string
	sql := "SELECT 'CREATE DATABASE " + cf.DatabaseName + "' WHERE NOT EXISTS (SELECT 1 FROM pg_database WHERE datname = ?)"
	err = db.Raw(sql, cf.DatabaseName).Scan(&exc).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Log.Errorf("check already database error: %s", err)
	}
	if !generic.IsEmpty(exc) {
		err := db.Exec(exc).Error
		if err != nil {
			logger.Log.Errorf("create database error: %s", err)
			return err
		}
	}

	return nil
}

func Migration(db *gorm.DB) error {
	var sqls []string
	sqls = append(sqls, `
		CREATE TABLE IF NOT EXISTS nipsa_users (
			user_id varchar(512) NOT NULL PRIMARY KEY,
			created_at timestamptz DEFAULT NULL
 		);
	`)

	sqls = append(sqls, `
		CREATE TABLE IF NOT EXISTS document_uris (
			id serial PRIMARY KEY,
			document_id bigint NOT NULL,
			uri text NOT NULL
 		);
	`)

	// index document_uris
	sqls = append(sqls, `CREATE INDEX IF NOT EXISTS idx_document_uris_uri ON document_uris (uri);`)
	sqls = append(sqls, `CREATE INDEX IF NOT EXISTS idx_document_uris_document_id ON document_uris (document_id);`)

	for _, sql := range sqls {
		err := db.Exec(sql).Error
		if err != nil {
			logger.Log.Errorf("db migration error: %s", err)
			return err
		}
	}

	db.AutoMigrate(&models.NipsaUser{})

	return nil
}
