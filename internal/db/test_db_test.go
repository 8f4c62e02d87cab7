package db

import (
	"testing"

	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupTestDB_ClosesPool(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)

	require.NoError(t, testDB.Create(&model.Customer{Name: "A", Surname: "B", Email: "a@example.com"}).Error)

	sqlDB, err := testDB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Ping())

	CleanupTestDB(testDB)
	assert.Error(t, sqlDB.Ping())

	assert.NotPanics(t, func() {
		CleanupTestDB(testDB)
	})
}

func TestTruncateAllTables(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		CleanupTestDB(testDB)
	})

	customer := model.Customer{Name: "A", Surname: "B", Email: "a@example.com"}
	require.NoError(t, testDB.Create(&customer).Error)
	require.NoError(t, testDB.Create(&model.Order{CustomerID: customer.ID}).Error)

	require.NoError(t, TruncateAllTables(testDB))

	var n int64
	require.NoError(t, testDB.Model(&model.Customer{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, testDB.Model(&model.Order{}).Count(&n).Error)
	assert.Zero(t, n)
}
