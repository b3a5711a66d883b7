package domain

import (
	"context"

	"gorm.io/gorm"
)

// Repository persists the transaction ledger. Writes are always handed
// the caller's open *gorm.DB transaction so header and details commit
// or roll back together.
type Repository interface {
	CreateTransaction(ctx context.Context, db *gorm.DB, trx *Transaction) error
	CreateDetails(ctx context.Context, db *gorm.DB, details []TransactionDetail) error
	FindTransaction(ctx context.Context, db *gorm.DB, id int64) (*Transaction, error)
}
