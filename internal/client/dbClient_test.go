package client

import (
	"moviemart-checkout/internal/config"
	"moviemart-checkout/internal/model"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDBClient_MigratesSchema(t *testing.T) {
	db, err := InitDBClient(&config.Database{
		Driver: "sqlite",
		URL:    filepath.Join(t.TempDir(), "moviemart.db"),
	})
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&model.Purchase{}))
	assert.True(t, db.Migrator().HasTable(&model.SessionEntry{}))
	assert.True(t, db.Migrator().HasColumn(&model.Purchase{}, "PaymentProof"))
}

func TestInitDBClient_UnsupportedDriver(t *testing.T) {
	_, err := InitDBClient(&config.Database{Driver: "postgres"})
	assert.ErrorContains(t, err, "unsupported database driver")
}
