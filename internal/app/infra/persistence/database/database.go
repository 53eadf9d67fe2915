package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/anilpotu/aws-s3-service/common/entity"
	"github.com/anilpotu/aws-s3-service/internal/app/config"
)

// Dialector 根据驱动名称选择 GORM 方言
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", driver)
	}
}

// Open 建立数据库连接并设置连接池
// TranslateError 开启后主键冲突返回 gorm.ErrDuplicatedKey
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}
	return openWith(dialector, cfg)
}

// openWith 使用给定方言建立连接，迁移失败时关闭连接池
func openWith(dialector gorm.Dialector, cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	if cfg.AutoMigrate {
		if err := db.AutoMigrate(entity.UserModels()...); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("failed to migrate user tables: %w", err)
		}
	}
	return db, nil
}

// Close 关闭底层连接池
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
