package domain

import (
	"context"
	"errors"
)

// Service is the product lookup surface.
type Service interface {
	SearchByBarcode(ctx context.Context, barcode int64) (*Product, error)
	List(ctx context.Context, req ListRequest) ([]Product, error)
}

// ListRequest paginates the catalog by numeric offset and limit.
type ListRequest struct {
	Skip  int
	Limit int
}

var (
	ErrNotFound     = errors.New("product_not_found")
	ErrInvalidSkip  = errors.New("invalid_skip")
	ErrInvalidLimit = errors.New("invalid_limit")
)
