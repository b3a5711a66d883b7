package domain

import (
	"context"
	"errors"
	"time"
)

// Service is the purchase processor: it validates a basket, computes
// the tax-inclusive total, and commits the ledger entry atomically.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*CreateResponse, error)
}

// Item is one requested line. Code, name, and price are the client's
// snapshot of the product at scan time; only the product id is checked
// against the catalog.
type Item struct {
	ProductID   int64
	ProductCode string
	ProductName string
	UnitPrice   int64
	Quantity    int
	TaxCode     string
}

type CreateRequest struct {
	Items        []Item
	EmployeeCode string
	StoreCode    string
	TerminalCode string
}

type CreateResponse struct {
	TransactionID int64     `json:"TRD_ID"`
	Datetime      time.Time `json:"DATETIME"`
	TotalAmount   int64     `json:"TOTAL_AMT"`
	TotalExTax    int64     `json:"TTL_AMT_EX_TAX"`
}

var (
	ErrProductNotFound = errors.New("purchase_product_not_found")

	ErrEmptyItems          = errors.New("empty_items")
	ErrInvalidQuantity     = errors.New("invalid_quantity")
	ErrInvalidPrice        = errors.New("invalid_price")
	ErrInvalidProductCode  = errors.New("invalid_product_code")
	ErrInvalidProductName  = errors.New("invalid_product_name")
	ErrInvalidTaxCode      = errors.New("invalid_tax_code")
	ErrInvalidEmployeeCode = errors.New("invalid_employee_code")
	ErrInvalidStoreCode    = errors.New("invalid_store_code")
	ErrInvalidTerminalCode = errors.New("invalid_terminal_code")
)
