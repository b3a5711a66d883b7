package domain

import (
	"context"

	"gorm.io/gorm"
)

// Repository is the catalog store. Lookups return (nil, nil) for a
// missing product; the service layer turns that into ErrNotFound.
type Repository interface {
	Create(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Product, error)
	FindByBarcode(ctx context.Context, db *gorm.DB, code int64) (*Product, error)
	List(ctx context.Context, db *gorm.DB, offset, limit int) ([]Product, error)
}
