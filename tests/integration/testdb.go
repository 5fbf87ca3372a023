// Package integration provides integration testing utilities for the
// storefront backend. It uses testcontainers to spin up real PostgreSQL
// databases for testing.
package integration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	mpg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// Shared container for all tests in a package
	sharedContainer    testcontainers.Container
	sharedContainerMu  sync.Mutex
	sharedContainerDSN string
)

// TestDB represents a test database connection
type TestDB struct {
	DB        *gorm.DB
	SqlDB     *sql.DB
	Container testcontainers.Container
	DSN       string
	t         *testing.T
}

// NewTestDB creates a new PostgreSQL container for testing.
// This creates a fresh container for each test, providing complete isolation.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("admin123"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	db, sqlDB := connectToDatabase(t, dsn)

	runMigrations(t, sqlDB)

	testDB := &TestDB{
		DB:        db,
		SqlDB:     sqlDB,
		Container: container,
		DSN:       dsn,
		t:         t,
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// NewSharedTestDB returns a shared PostgreSQL container for tests that can share state.
// This is more efficient for read-only tests or tests that clean up after themselves.
func NewSharedTestDB(t *testing.T) *TestDB {
	t.Helper()

	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	ctx := context.Background()

	if sharedContainer == nil {
		container, err := tcpostgres.Run(ctx,
			"postgres:16-alpine",
			tcpostgres.WithDatabase("storefront_shared_test"),
			tcpostgres.WithUsername("postgres"),
			tcpostgres.WithPassword("admin123"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second)),
		)
		require.NoError(t, err, "Failed to start shared PostgreSQL container")

		dsn, err := container.ConnectionString(ctx, "sslmode=disable")
		require.NoError(t, err, "Failed to get connection string")

		sharedContainer = container
		sharedContainerDSN = dsn

		// Connect and run migrations once
		_, sqlDB := connectToDatabase(t, dsn)
		runMigrations(t, sqlDB)
		sqlDB.Close()
	}

	// Each test gets a fresh connection
	db, sqlDB := connectToDatabase(t, sharedContainerDSN)

	testDB := &TestDB{
		DB:        db,
		SqlDB:     sqlDB,
		Container: sharedContainer,
		DSN:       sharedContainerDSN,
		t:         t,
	}

	// The shared container outlives the test, only the connection is closed
	t.Cleanup(func() {
		if testDB.SqlDB != nil {
			testDB.SqlDB.Close()
		}
	})

	return testDB
}

// Close closes the database connection and terminates the container
func (tdb *TestDB) Close() {
	ctx := context.Background()

	if tdb.SqlDB != nil {
		tdb.SqlDB.Close()
	}

	if tdb.Container != nil && tdb.Container != sharedContainer {
		if err := tdb.Container.Terminate(ctx); err != nil {
			tdb.t.Logf("Warning: Failed to terminate container: %v", err)
		}
	}
}

// CleanTables truncates all tables in the database
func (tdb *TestDB) CleanTables() {
	tdb.t.Helper()

	var tables []string
	err := tdb.DB.Raw(`
		SELECT tablename FROM pg_tables
		WHERE schemaname = 'public'
		AND tablename != 'schema_migrations'
	`).Scan(&tables).Error
	require.NoError(tdb.t, err, "Failed to get table names")

	if len(tables) == 0 {
		return
	}

	for _, table := range tables {
		err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error
		if err != nil {
			tdb.t.Logf("Warning: Failed to truncate table %s: %v", table, err)
		}
	}
}

// WithTransaction runs a function within a transaction that is automatically rolled back.
func (tdb *TestDB) WithTransaction(fn func(tx *gorm.DB)) {
	tdb.t.Helper()

	tx := tdb.DB.Begin()
	require.NoError(tdb.t, tx.Error, "Failed to begin transaction")

	defer func() {
		tx.Rollback()
	}()

	fn(tx)
}

// connectToDatabase establishes a GORM connection to the database
func connectToDatabase(t *testing.T, dsn string) (*gorm.DB, *sql.DB) {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}

	if os.Getenv("TEST_DB_DEBUG") != "" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), gormConfig)
	require.NoError(t, err, "Failed to connect to database")

	sqlDB, err := db.DB()
	require.NoError(t, err, "Failed to get underlying SQL DB")

	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, sqlDB
}

// runMigrations applies all database migrations
func runMigrations(t *testing.T, sqlDB *sql.DB) {
	t.Helper()

	migrationsPath := findMigrationsPath()
	require.NotEmpty(t, migrationsPath, "Could not find migrations directory")

	driver, err := mpg.WithInstance(sqlDB, &mpg.Config{})
	require.NoError(t, err, "Failed to create migration driver")

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+migrationsPath,
		"postgres",
		driver,
	)
	require.NoError(t, err, "Failed to create migrate instance")

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to run migrations")
	}
}

// findMigrationsPath locates the migrations directory
func findMigrationsPath() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}

	// Navigate from tests/integration up to the repository root
	dir := filepath.Dir(filename)
	for i := 0; i < 5; i++ {
		migrationsPath := filepath.Join(dir, "migrations")
		if _, err := os.Stat(migrationsPath); err == nil {
			return migrationsPath
		}
		dir = filepath.Dir(dir)
	}

	if wd, err := os.Getwd(); err == nil {
		paths := []string{
			filepath.Join(wd, "migrations"),
			filepath.Join(wd, "..", "migrations"),
			filepath.Join(wd, "..", "..", "migrations"),
		}
		for _, p := range paths {
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}

	return ""
}

// CleanupSharedContainer terminates the shared container.
// This should be called in TestMain if using shared containers.
func CleanupSharedContainer() {
	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	if sharedContainer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		sharedContainer.Terminate(ctx)
		sharedContainer = nil
		sharedContainerDSN = ""
	}
}

// CreateTestCategory inserts a category row and returns nothing, callers
// reference it through the ID they pass in.
func (tdb *TestDB) CreateTestCategory(categoryID uuid.UUID, name string) {
	tdb.t.Helper()

	err := tdb.DB.Exec(`
		INSERT INTO categories (id, name, description, version)
		VALUES (?, ?, ?, 1)
		ON CONFLICT (id) DO NOTHING
	`, categoryID, name, "Test category "+name).Error
	require.NoError(tdb.t, err, "Failed to create test category")
}

// CreateTestSize inserts a size row used to build product variants
func (tdb *TestDB) CreateTestSize(sizeID uuid.UUID, name string) {
	tdb.t.Helper()

	err := tdb.DB.Exec(`
		INSERT INTO sizes (id, name)
		VALUES (?, ?)
		ON CONFLICT (id) DO NOTHING
	`, sizeID, name).Error
	require.NoError(tdb.t, err, "Failed to create test size")
}

// CreateTestColor inserts a color row used to build product variants
func (tdb *TestDB) CreateTestColor(colorID uuid.UUID, name, code string) {
	tdb.t.Helper()

	err := tdb.DB.Exec(`
		INSERT INTO colors (id, name, code)
		VALUES (?, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`, colorID, name, code).Error
	require.NoError(tdb.t, err, "Failed to create test color")
}

// CreateTestProduct inserts a live product row with the given prices in cents
func (tdb *TestDB) CreateTestProduct(productID, categoryID uuid.UUID, title string, price, priceSale int64) {
	tdb.t.Helper()

	err := tdb.DB.Exec(`
		INSERT INTO products (id, category_id, title, name, status, description, price, price_sale, total_quantity, version)
		VALUES (?, ?, ?, ?, 'active', ?, ?, ?, 0, 1)
		ON CONFLICT (id) DO NOTHING
	`, productID, categoryID, title, title, "Test product "+title, price, priceSale).Error
	require.NoError(tdb.t, err, "Failed to create test product")
}

// CreateTestProductItem inserts one size and color variant of a product
func (tdb *TestDB) CreateTestProductItem(itemID, productID, sizeID, colorID uuid.UUID, quantity int) {
	tdb.t.Helper()

	err := tdb.DB.Exec(`
		INSERT INTO product_items (id, product_id, size_id, color_id, quantity)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`, itemID, productID, sizeID, colorID, quantity).Error
	require.NoError(tdb.t, err, "Failed to create test product item")
}

// CreateTestOrder inserts an order with the given status for a user
func (tdb *TestDB) CreateTestOrder(orderID, userID uuid.UUID, status string, totalAmount int64, createdAt time.Time) {
	tdb.t.Helper()

	orderNumber := fmt.Sprintf("ORD-%s", orderID.String()[:8])

	err := tdb.DB.Exec(`
		INSERT INTO orders (id, user_id, order_number, total_amount, status, version, created_at)
		VALUES (?, ?, ?, ?, ?, 1, ?)
		ON CONFLICT (id) DO NOTHING
	`, orderID, userID, orderNumber, totalAmount, status, createdAt).Error
	require.NoError(tdb.t, err, "Failed to create test order")
}

// CreateTestOrderLine inserts one line of an order referencing a product item
func (tdb *TestDB) CreateTestOrderLine(lineID, orderID, itemID uuid.UUID, quantity int, price int64) {
	tdb.t.Helper()

	err := tdb.DB.Exec(`
		INSERT INTO order_lines (id, order_id, product_item_id, quantity, price, total_price)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`, lineID, orderID, itemID, quantity, price, price*int64(quantity)).Error
	require.NoError(tdb.t, err, "Failed to create test order line")
}

// SeedVariantFixture creates a category, one size, one color, a product and
// a single variant, returning the product and item IDs. Most review and
// sales tests need exactly this shape.
func (tdb *TestDB) SeedVariantFixture(prefix string) (productID, itemID uuid.UUID) {
	tdb.t.Helper()

	categoryID := uuid.New()
	sizeID := uuid.New()
	colorID := uuid.New()
	productID = uuid.New()
	itemID = uuid.New()

	tdb.CreateTestCategory(categoryID, prefix+" category")
	tdb.CreateTestSize(sizeID, "M")
	tdb.CreateTestColor(colorID, "Black", "#000000")
	tdb.CreateTestProduct(productID, categoryID, prefix+" product", 150000, 120000)
	tdb.CreateTestProductItem(itemID, productID, sizeID, colorID, 10)

	return productID, itemID
}
