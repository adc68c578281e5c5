package catalogrepo_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres/catalogrepo"
	"storefront/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ProductCatalogIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	catalog   *catalogrepo.GormProductCatalog
}

func (suite *ProductCatalogIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db
	suite.Require().NoError(db.AutoMigrate(&catalogrepo.ProductDTO{}))

	suite.Require().NoError(db.Create([]catalogrepo.ProductDTO{
		{Ref: "P1", Name: "Keyboard", Price: decimal.RequireFromString("10.00")},
		{Ref: "P2", Name: "Mouse", Price: decimal.RequireFromString("4.50")},
	}).Error)

	suite.catalog = catalogrepo.NewGormProductCatalog(db)
}

func (suite *ProductCatalogIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ProductCatalogIntegrationTestSuite) TestPrices_KnownAndUnknownRefs() {
	prices, err := suite.catalog.Prices(context.Background(), []order.ProductRef{"P1", "P2", "MISSING"})

	suite.Require().NoError(err)
	suite.Len(prices, 2)
	suite.Equal("10.00", prices["P1"].String())
	suite.Equal("4.50", prices["P2"].String())
	_, found := prices["MISSING"]
	suite.False(found)
}

func (suite *ProductCatalogIntegrationTestSuite) TestPrices_NoRefs() {
	prices, err := suite.catalog.Prices(context.Background(), nil)

	suite.Require().NoError(err)
	suite.Empty(prices)
}

func TestProductCatalogIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ProductCatalogIntegrationTestSuite))
}
