package persistence

import (
	"context"

	"gorm.io/gorm"

	catalogapp "github.com/growbro/backend/internal/application/catalog"
	"github.com/growbro/backend/internal/domain/catalog"
	"github.com/growbro/backend/internal/domain/inventory"
)

// GormTransactionScope implements the catalog TransactionScope using GORM
// transactions, so a matrix apply commits or rolls back as one unit.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn inside a database transaction. An error from fn rolls the
// transaction back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos catalogapp.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories exposes repositories bound to one transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormTransactionalRepositories) VariantRepo() catalog.VariantRepository {
	return NewGormVariantRepository(r.tx)
}

func (r *gormTransactionalRepositories) StockItemRepo() inventory.StockItemRepository {
	return NewGormStockItemRepository(r.tx)
}

func (r *gormTransactionalRepositories) WarehouseRepo() inventory.WarehouseRepository {
	return NewGormWarehouseRepository(r.tx)
}

var _ catalogapp.TransactionScope = (*GormTransactionScope)(nil)
var _ catalogapp.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
