package inventory

import (
	"strings"

	"github.com/google/uuid"

	"github.com/growbro/backend/internal/domain/shared"
)

// Warehouse is a physical or logical stock location. Most small shops have
// exactly one, created implicitly, but the model allows several.
type Warehouse struct {
	shared.OrgAggregateRoot
	Name      string `gorm:"type:varchar(255);not null" json:"name"`
	Code      string `gorm:"type:varchar(64);not null;index" json:"code"`
	IsDefault bool   `gorm:"not null;default:false" json:"is_default"`
	Active    bool   `gorm:"not null;default:true" json:"active"`
}

func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates an active warehouse.
func NewWarehouse(orgID uuid.UUID, name, code string, isDefault bool) (*Warehouse, error) {
	name = strings.TrimSpace(name)
	code = strings.ToUpper(strings.TrimSpace(code))
	if name == "" {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE_NAME", "warehouse name cannot be empty")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE_CODE", "warehouse code cannot be empty")
	}
	return &Warehouse{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		Name:             name,
		Code:             code,
		IsDefault:        isDefault,
		Active:           true,
	}, nil
}

// Deactivate takes the warehouse out of use. Stock rows remain readable.
func (w *Warehouse) Deactivate() {
	if !w.Active {
		return
	}
	w.Active = false
	w.IncrementVersion()
}
