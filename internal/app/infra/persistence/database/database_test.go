package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"

	"github.com/anilpotu/aws-s3-service/internal/app/config"
)

var errUnavailable = errors.New("relation access denied")

// failingConnector 连接成功但所有语句执行失败
type failingConnector struct{}

func (failingConnector) Connect(context.Context) (driver.Conn, error) { return failingConn{}, nil }
func (failingConnector) Driver() driver.Driver                     { return failingDriver{} }

type failingDriver struct{}

func (failingDriver) Open(string) (driver.Conn, error) { return failingConn{}, nil }

type failingConn struct{}

func (failingConn) Prepare(string) (driver.Stmt, error) { return nil, errUnavailable }
func (failingConn) Close() error                        { return nil }
func (failingConn) Begin() (driver.Tx, error)           { return nil, errUnavailable }

func TestDialector(t *testing.T) {
	d, err := Dialector("postgres", "host=localhost user=app dbname=app")
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	d, err = Dialector("mysql", "app:secret@tcp(localhost:3306)/app?parseTime=true")
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	_, err = Dialector("sqlite", "file::memory:")
	assert.Error(t, err)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "oracle", DSN: "x"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestOpenWith_MigrateFailureClosesPool(t *testing.T) {
	sqlDB := sql.OpenDB(failingConnector{})
	dialector := postgres.New(postgres.Config{Conn: sqlDB})

	db, err := openWith(dialector, config.DatabaseConfig{AutoMigrate: true})
	require.Error(t, err)
	assert.Nil(t, db)
	assert.ErrorContains(t, err, "failed to migrate user tables")
	assert.ErrorContains(t, sqlDB.Ping(), "database is closed")
}
