package infra

import (
	"fmt"

	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs AutoMigrate
// for every collection. The *gorm.DB handle is constructed here, once, and
// injected into repositories by the composition root — there is no package
// global and no lazy initialization.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Marca{},
		&model.Categoria{},
		&model.Proveedor{},
		&model.Producto{},
		&model.Lote{},
		&model.LoteItem{},
		&model.Venta{},
		&model.VentaItem{},
		&model.MovimientoStock{},
		&model.ConfiguracionUsuario{},
		&model.Usuario{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	return db, nil
}

// Close releases the underlying connection pool on shutdown.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
