package service_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/finance-tracker/internal/config"
	"github.com/finance-tracker/internal/models"
	"github.com/finance-tracker/internal/repository"
	"github.com/finance-tracker/internal/service"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testJWTConfig = config.JWTConfig{
	Secret:      "test-secret",
	ExpireHours: 168,
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "finance.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Category{}, &models.Transaction{}))

	return db
}

func newServices(t *testing.T) (*gorm.DB, *service.AuthService, *service.CategoryService, *service.TransactionService) {
	t.Helper()

	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	return db,
		service.NewAuthService(userRepo, testJWTConfig),
		service.NewCategoryService(categoryRepo),
		service.NewTransactionService(transactionRepo, categoryRepo)
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "irrelevant",
		Role:         models.RoleUser,
		Currency:     "USD",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createCategory(t *testing.T, db *gorm.DB, owner *models.User, name string, txType models.TransactionType) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:  name,
		Type:  txType,
		Color: models.DefaultCategoryColor,
		Icon:  models.DefaultCategoryIcon,
	}
	if owner != nil {
		category.UserID = &owner.ID
	} else {
		category.IsDefault = true
	}
	require.NoError(t, db.Create(category).Error)
	return category
}

func createTransaction(t *testing.T, db *gorm.DB, user *models.User, category *models.Category, amount float64, date time.Time) *models.Transaction {
	t.Helper()

	txn := &models.Transaction{
		Amount:     amount,
		Date:       date,
		Type:       category.Type,
		CategoryID: category.ID,
		UserID:     user.ID,
	}
	require.NoError(t, db.Create(txn).Error)
	return txn
}
