package integration

import (
	"bytes"
	"mime/multipart"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	analyticsapp "github.com/storefront/backend/internal/application/analytics"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	reviewapp "github.com/storefront/backend/internal/application/review"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/infrastructure/storage"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testServer bundles the HTTP stack assembled on top of a real database
type testServer struct {
	Engine  *gin.Engine
	JWT     *auth.JWTService
	Storage *storage.MemoryObjectStorage
}

// newTestServer wires real repositories, services and handlers against the
// given test database, mirroring the production route layout. Images go to
// in-memory storage and the ranking cache is disabled so results always
// reflect the database.
func newTestServer(t *testing.T, tdb *TestDB) *testServer {
	t.Helper()

	objectStorage := storage.NewMemoryObjectStorage()

	productRepo := persistence.NewGormProductRepository(tdb.DB)
	categoryRepo := persistence.NewGormCategoryRepository(tdb.DB)
	itemRepo := persistence.NewGormProductItemRepository(tdb.DB)
	orderRepo := persistence.NewGormOrderRepository(tdb.DB)
	reviewRepo := persistence.NewGormReviewRepository(tdb.DB)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "integration-test-secret",
		AccessTokenExpiration: time.Hour,
		Issuer:                "storefront-test",
	})

	productService := catalogapp.NewProductService(productRepo, categoryRepo, objectStorage)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	reviewService := reviewapp.NewReviewService(reviewRepo, orderRepo, itemRepo, objectStorage)
	statsService := analyticsapp.NewStatsService(orderRepo, itemRepo, productRepo, nil, zap.NewNop())

	productHandler := handler.NewProductHandler(productService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	statsHandler := handler.NewStatsHandler(statsService)

	engine := gin.New()
	engine.Use(middleware.RequestID())

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	adminRoutes := router.NewDomainGroup("admin", "/admin").
		Use(middleware.JWTAuth(jwtService), middleware.RequireAdmin()).
		POST("/products", productHandler.Create).
		GET("/products", productHandler.List).
		GET("/products/count", productHandler.Count).
		GET("/products/deleted", productHandler.ListDeleted).
		PUT("/products/:id", productHandler.Update).
		DELETE("/products/:id", productHandler.Delete).
		POST("/products/:id/restore", productHandler.Restore).
		DELETE("/products/:id/purge", productHandler.Purge).
		POST("/categories", categoryHandler.Create).
		PUT("/categories/:id", categoryHandler.Update)

	shopRoutes := router.NewDomainGroup("shop", "/shop").
		GET("/products", productHandler.ListShop).
		GET("/products/all", productHandler.ListAll).
		GET("/products/:id", productHandler.Get).
		GET("/products/:id/reviews", reviewHandler.ListByProduct).
		POST("/products/:id/search", statsHandler.RecordSearch).
		GET("/categories", categoryHandler.List).
		GET("/categories/:id", categoryHandler.Get).
		GET("/categories/:id/products", productHandler.ListByCategory).
		GET("/stats/top-selling", statsHandler.TopSelling).
		GET("/stats/top-searched", statsHandler.TopSearched)

	reviewRoutes := router.NewDomainGroup("reviews", "/shop/reviews").
		Use(middleware.JWTAuth(jwtService)).
		POST("", reviewHandler.Submit).
		DELETE("/:id", reviewHandler.Delete).
		GET("/mine", reviewHandler.ListMine)

	r.Register(adminRoutes).Register(shopRoutes).Register(reviewRoutes)
	r.Setup()

	return &testServer{
		Engine:  engine,
		JWT:     jwtService,
		Storage: objectStorage,
	}
}

// AdminToken issues a bearer token with the admin role
func (s *testServer) AdminToken(t *testing.T) string {
	t.Helper()

	token, err := s.JWT.Generate(uuid.New(), "test-admin", auth.RoleAdmin)
	require.NoError(t, err)
	return token.Token
}

// CustomerToken issues a bearer token for the given customer
func (s *testServer) CustomerToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()

	token, err := s.JWT.Generate(userID, "test-customer", auth.RoleCustomer)
	require.NoError(t, err)
	return token.Token
}

// multipartForm builds a multipart body from plain string fields
func multipartForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}
