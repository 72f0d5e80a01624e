package rules

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/JeremyMColegrove/budgetr-sub000/internal/models"
)

// newTestDB opens a per-test in-memory sqlite database. The shared
// cache plus a single pooled connection keeps every gorm session on the
// same memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Account{},
		&models.BudgetRule{},
		&models.LedgerEntry{},
		&models.Category{},
	))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func strPtr(v string) *string { return &v }

// seedRule inserts a rule with an explicit creation time so tests get
// deterministic display ordering.
func seedRule(t *testing.T, db *gorm.DB, rule *models.BudgetRule, createdAt time.Time) *models.BudgetRule {
	t.Helper()
	rule.CreatedAt = createdAt
	require.NoError(t, db.Create(rule).Error)
	return rule
}
