package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/retailhub/pos-api/internal/catalog/domain"
	"github.com/retailhub/pos-api/internal/clock"
	"github.com/retailhub/pos-api/internal/purchase/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Flat 10% consumption tax. The recorded TAX_CD does not select a rate;
// the aggregate subtotal is taxed once and the result floored.
const (
	taxRateNumerator   = 110
	taxRateDenominator = 100
)

const defaultTaxCode = "10"

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    domain.Repository
	Catalog catalogdomain.Repository
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    domain.Repository
	catalog catalogdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("purchase.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		catalog: p.Catalog,
	}
}

// Create runs the whole purchase in one database transaction: product
// existence checks, the header insert, and the detail inserts either
// all commit or none do. ErrProductNotFound propagates unchanged
// through the rollback so the handler can answer 404.
func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.CreateResponse, error) {
	normalized, err := normalize(req)
	if err != nil {
		return nil, err
	}

	var resp *domain.CreateResponse
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var subtotal int64
		for _, item := range normalized.Items {
			product, err := s.catalog.FindByID(ctx, tx, item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrProductNotFound
			}
			// the client's snapshot price is authoritative for the
			// ledger; the catalog row only proves the id exists
			subtotal += item.UnitPrice * int64(item.Quantity)
		}

		totalAmount := subtotal * taxRateNumerator / taxRateDenominator

		trx := &domain.Transaction{
			ID:           s.genID.Generate().Int64(),
			Datetime:     s.clock.Now(),
			EmployeeCode: normalized.EmployeeCode,
			StoreCode:    normalized.StoreCode,
			TerminalCode: normalized.TerminalCode,
			TotalAmount:  totalAmount,
			TotalExTax:   subtotal,
		}
		if err := s.repo.CreateTransaction(ctx, tx, trx); err != nil {
			return err
		}

		details := make([]domain.TransactionDetail, 0, len(normalized.Items))
		for i, item := range normalized.Items {
			details = append(details, domain.TransactionDetail{
				TransactionID: trx.ID,
				DetailID:      i + 1,
				ProductID:     item.ProductID,
				ProductCode:   item.ProductCode,
				ProductName:   item.ProductName,
				UnitPrice:     item.UnitPrice,
				TaxCode:       item.TaxCode,
			})
		}
		if err := s.repo.CreateDetails(ctx, tx, details); err != nil {
			return err
		}

		resp = &domain.CreateResponse{
			TransactionID: trx.ID,
			Datetime:      trx.Datetime,
			TotalAmount:   trx.TotalAmount,
			TotalExTax:    trx.TotalExTax,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("purchase committed",
		zap.Int64("transaction_id", resp.TransactionID),
		zap.Int("items", len(normalized.Items)),
		zap.Int64("total_amt", resp.TotalAmount),
		zap.Int64("total_amt_ex_tax", resp.TotalExTax),
	)

	return resp, nil
}

// normalize validates the request before any database interaction and
// fills the per-item defaults (quantity 1, tax code "10").
func normalize(req domain.CreateRequest) (domain.CreateRequest, error) {
	out := domain.CreateRequest{
		EmployeeCode: strings.TrimSpace(req.EmployeeCode),
		StoreCode:    strings.TrimSpace(req.StoreCode),
		TerminalCode: strings.TrimSpace(req.TerminalCode),
	}

	// column widths are character counts, so bound runes, not bytes
	if out.EmployeeCode == "" || utf8.RuneCountInString(out.EmployeeCode) > 10 {
		return out, domain.ErrInvalidEmployeeCode
	}
	if out.StoreCode == "" || utf8.RuneCountInString(out.StoreCode) > 5 {
		return out, domain.ErrInvalidStoreCode
	}
	if out.TerminalCode == "" || utf8.RuneCountInString(out.TerminalCode) > 3 {
		return out, domain.ErrInvalidTerminalCode
	}
	if len(req.Items) == 0 {
		return out, domain.ErrEmptyItems
	}

	out.Items = make([]domain.Item, 0, len(req.Items))
	for _, item := range req.Items {
		item.ProductCode = strings.TrimSpace(item.ProductCode)
		item.ProductName = strings.TrimSpace(item.ProductName)
		item.TaxCode = strings.TrimSpace(item.TaxCode)

		if item.ProductCode == "" || utf8.RuneCountInString(item.ProductCode) > 13 {
			return out, domain.ErrInvalidProductCode
		}
		if item.ProductName == "" || utf8.RuneCountInString(item.ProductName) > 50 {
			return out, domain.ErrInvalidProductName
		}
		if item.UnitPrice < 0 {
			return out, domain.ErrInvalidPrice
		}
		if item.Quantity < 1 {
			return out, domain.ErrInvalidQuantity
		}
		if item.TaxCode == "" {
			item.TaxCode = defaultTaxCode
		}
		if utf8.RuneCountInString(item.TaxCode) > 2 {
			return out, domain.ErrInvalidTaxCode
		}
		out.Items = append(out.Items, item)
	}

	return out, nil
}
