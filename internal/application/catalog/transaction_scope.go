package catalog

import (
	"context"

	"github.com/growbro/backend/internal/domain/catalog"
	"github.com/growbro/backend/internal/domain/inventory"
)

// TransactionScope runs a function against catalog and inventory repositories
// that share one database transaction. An error from the function rolls the
// transaction back; success commits it.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories a matrix apply touches.
// Applying a matrix writes variants and seeds stock rows in one atomic step,
// so the stock repositories ride in the same scope.
type TransactionalRepositories interface {
	ProductRepo() catalog.ProductRepository
	VariantRepo() catalog.VariantRepository
	StockItemRepo() inventory.StockItemRepository
	WarehouseRepo() inventory.WarehouseRepository
}

// NoOpTransactionScope passes the wrapped repositories through without a real
// transaction. Used in tests.
type NoOpTransactionScope struct {
	productRepo   catalog.ProductRepository
	variantRepo   catalog.VariantRepository
	stockItemRepo inventory.StockItemRepository
	warehouseRepo inventory.WarehouseRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories.
func NewNoOpTransactionScope(
	productRepo catalog.ProductRepository,
	variantRepo catalog.VariantRepository,
	stockItemRepo inventory.StockItemRepository,
	warehouseRepo inventory.WarehouseRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo:   productRepo,
		variantRepo:   variantRepo,
		stockItemRepo: stockItemRepo,
		warehouseRepo: warehouseRepo,
	}
}

// Execute runs the function without transactional guarantees.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

func (s *NoOpTransactionScope) VariantRepo() catalog.VariantRepository {
	return s.variantRepo
}

func (s *NoOpTransactionScope) StockItemRepo() inventory.StockItemRepository {
	return s.stockItemRepo
}

func (s *NoOpTransactionScope) WarehouseRepo() inventory.WarehouseRepository {
	return s.warehouseRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
