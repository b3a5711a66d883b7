package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	catalogdomain "github.com/retailhub/pos-api/internal/catalog/domain"
	catalogrepository "github.com/retailhub/pos-api/internal/catalog/repository"
	"github.com/retailhub/pos-api/internal/clock"
	"github.com/retailhub/pos-api/internal/purchase/domain"
	"github.com/retailhub/pos-api/internal/purchase/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupPurchaseService(t *testing.T) (domain.Service, *gorm.DB, *clock.FakeClock) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open db")

	sqlDB, err := db.DB()
	require.NoError(t, err, "db handle")
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	err = db.AutoMigrate(
		&catalogdomain.Product{},
		&domain.Transaction{},
		&domain.TransactionDetail{},
	)
	require.NoError(t, err, "migrate schema")

	node, err := snowflake.NewNode(1)
	require.NoError(t, err, "new node")

	fc := clock.NewFakeClock(time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC))

	svc := New(Params{
		DB:      db,
		Log:     zap.NewNop(),
		GenID:   node,
		Clock:   fc,
		Repo:    repository.Provide(),
		Catalog: catalogrepository.Provide(),
	})

	return svc, db, fc
}

func seedProduct(t *testing.T, db *gorm.DB, id, code int64, name string, price int64) {
	t.Helper()
	err := catalogrepository.Provide().Create(context.Background(), db, &catalogdomain.Product{
		ID:    id,
		Code:  code,
		Name:  name,
		Price: price,
	})
	require.NoError(t, err, "seed product")
}

func countRows(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Table(table).Count(&count).Error)
	return count
}

func TestCreateComputesTaxInclusiveTotal(t *testing.T) {
	svc, db, fc := setupPurchaseService(t)
	seedProduct(t, db, 1, 4901234567894, "Tea", 150)

	resp, err := svc.Create(context.Background(), domain.CreateRequest{
		EmployeeCode: "9999999999",
		StoreCode:    "30",
		TerminalCode: "90",
		Items: []domain.Item{
			{ProductID: 1, ProductCode: "4901234567894", ProductName: "Tea", UnitPrice: 150, Quantity: 2, TaxCode: "10"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(300), resp.TotalExTax)
	assert.Equal(t, int64(330), resp.TotalAmount)
	assert.Equal(t, fc.Now(), resp.Datetime)
	assert.NotZero(t, resp.TransactionID)
}

func TestCreateFloorsAggregateTaxOnce(t *testing.T) {
	svc, db, _ := setupPurchaseService(t)
	seedProduct(t, db, 1, 4901234567894, "Tea", 150)
	seedProduct(t, db, 2, 4902345678901, "Onigiri", 333)

	// 150 + 3*333 = 1149; 1149 * 1.1 = 1263.9, floored to 1263.
	// Per-line flooring would give 165 + 1098 = 1263 here too, so also
	// check a basket where the two schemes diverge below.
	resp, err := svc.Create(context.Background(), domain.CreateRequest{
		EmployeeCode: "EMP01",
		StoreCode:    "S1",
		TerminalCode: "1",
		Items: []domain.Item{
			{ProductID: 1, ProductCode: "4901234567894", ProductName: "Tea", UnitPrice: 150, Quantity: 1},
			{ProductID: 2, ProductCode: "4902345678901", ProductName: "Onigiri", UnitPrice: 333, Quantity: 3},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1149), resp.TotalExTax)
	assert.Equal(t, int64(1263), resp.TotalAmount)

	// 5 + 5 = 10; aggregate gives floor(11.0) = 11 while flooring each
	// 5-yen line separately would give 5 + 5 = 10.
	seedProduct(t, db, 3, 4903456789012, "Candy", 5)
	resp, err = svc.Create(context.Background(), domain.CreateRequest{
		EmployeeCode: "EMP01",
		StoreCode:    "S1",
		TerminalCode: "1",
		Items: []domain.Item{
			{ProductID: 3, ProductCode: "4903456789012", ProductName: "Candy", UnitPrice: 5, Quantity: 1},
			{ProductID: 3, ProductCode: "4903456789012", ProductName: "Candy", UnitPrice: 5, Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.TotalExTax)
	assert.Equal(t, int64(11), resp.TotalAmount)
}

func TestCreateRollsBackOnMissingProduct(t *testing.T) {
	svc, db, _ := setupPurchaseService(t)
	seedProduct(t, db, 1, 4901234567894, "Tea", 150)

	_, err := svc.Create(context.Background(), domain.CreateRequest{
		EmployeeCode: "EMP01",
		StoreCode:    "S1",
		TerminalCode: "1",
		Items: []domain.Item{
			{ProductID: 1, ProductCode: "4901234567894", ProductName: "Tea", UnitPrice: 150, Quantity: 1},
			{ProductID: 999, ProductCode: "4999999999999", ProductName: "Ghost", UnitPrice: 100, Quantity: 1},
		},
	})
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	assert.Equal(t, int64(0), countRows(t, db, "transactions"))
	assert.Equal(t, int64(0), countRows(t, db, "transaction_details"))
}

func TestCreateDetailIDsFollowRequestOrder(t *testing.T) {
	svc, db, _ := setupPurchaseService(t)
	seedProduct(t, db, 1, 4901234567894, "Tea", 150)
	seedProduct(t, db, 2, 4902345678901, "Onigiri", 333)
	seedProduct(t, db, 3, 4903456789012, "Candy", 5)

	resp, err := svc.Create(context.Background(), domain.CreateRequest{
		EmployeeCode: "EMP01",
		StoreCode:    "S1",
		TerminalCode: "1",
		Items: []domain.Item{
			{ProductID: 2, ProductCode: "4902345678901", ProductName: "Onigiri", UnitPrice: 333, Quantity: 1},
			{ProductID: 3, ProductCode: "4903456789012", ProductName: "Candy", UnitPrice: 5, Quantity: 2},
			{ProductID: 1, ProductCode: "4901234567894", ProductName: "Tea", UnitPrice: 150, Quantity: 1},
		},
	})
	require.NoError(t, err)

	trx, err := repository.Provide().FindTransaction(context.Background(), db, resp.TransactionID)
	require.NoError(t, err)
	require.NotNil(t, trx)
	require.Len(t, trx.Details, 3)

	for i, detail := range trx.Details {
		assert.Equal(t, i+1, detail.DetailID)
		assert.Equal(t, resp.TransactionID, detail.TransactionID)
	}
	assert.Equal(t, "4902345678901", trx.Details[0].ProductCode)
	assert.Equal(t, "4903456789012", trx.Details[1].ProductCode)
	assert.Equal(t, "4901234567894", trx.Details[2].ProductCode)
}

func TestCreateSnapshotsClientPrices(t *testing.T) {
	svc, db, _ := setupPurchaseService(t)
	seedProduct(t, db, 1, 4901234567894, "Tea", 150)

	// The ledger records the price the client scanned, even when the
	// catalog row has since changed.
	resp, err := svc.Create(context.Background(), domain.CreateRequest{
		EmployeeCode: "EMP01",
		StoreCode:    "S1",
		TerminalCode: "1",
		Items: []domain.Item{
			{ProductID: 1, ProductCode: "4901234567894", ProductName: "Tea (sale)", UnitPrice: 120, Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(120), resp.TotalExTax)
	assert.Equal(t, int64(132), resp.TotalAmount)

	trx, err := repository.Provide().FindTransaction(context.Background(), db, resp.TransactionID)
	require.NoError(t, err)
	require.Len(t, trx.Details, 1)
	assert.Equal(t, int64(120), trx.Details[0].UnitPrice)
	assert.Equal(t, "Tea (sale)", trx.Details[0].ProductName)
}

func TestDetailsSurviveCatalogDelete(t *testing.T) {
	svc, db, _ := setupPurchaseService(t)
	seedProduct(t, db, 1, 4901234567894, "Tea", 150)

	resp, err := svc.Create(context.Background(), domain.CreateRequest{
		EmployeeCode: "EMP01",
		StoreCode:    "S1",
		TerminalCode: "1",
		Items: []domain.Item{
			{ProductID: 1, ProductCode: "4901234567894", ProductName: "Tea", UnitPrice: 150, Quantity: 1},
		},
	})
	require.NoError(t, err)

	// details snapshot the product; removing the catalog row later must
	// not touch or invalidate the ledger
	require.NoError(t, db.Exec(`DELETE FROM products WHERE id = ?`, 1).Error)

	trx, err := repository.Provide().FindTransaction(context.Background(), db, resp.TransactionID)
	require.NoError(t, err)
	require.NotNil(t, trx)
	require.Len(t, trx.Details, 1)
	assert.Equal(t, int64(1), trx.Details[0].ProductID)
	assert.Equal(t, "Tea", trx.Details[0].ProductName)
}

func TestCreateDefaultsTaxCode(t *testing.T) {
	svc, db, _ := setupPurchaseService(t)
	seedProduct(t, db, 1, 4901234567894, "Tea", 150)

	resp, err := svc.Create(context.Background(), domain.CreateRequest{
		EmployeeCode: "EMP01",
		StoreCode:    "S1",
		TerminalCode: "1",
		Items: []domain.Item{
			{ProductID: 1, ProductCode: "4901234567894", ProductName: "Tea", UnitPrice: 150, Quantity: 1},
		},
	})
	require.NoError(t, err)

	trx, err := repository.Provide().FindTransaction(context.Background(), db, resp.TransactionID)
	require.NoError(t, err)
	require.Len(t, trx.Details, 1)
	assert.Equal(t, "10", trx.Details[0].TaxCode)
}

func TestCreateAcceptsMultibyteNames(t *testing.T) {
	svc, db, _ := setupPurchaseService(t)
	seedProduct(t, db, 1, 4901234567894, "Tea", 150)

	// 18 characters, 54 bytes: within the 50-character name column even
	// though it exceeds 50 bytes
	name := "お茶ペットボトル五百ミリリットル緑茶"
	resp, err := svc.Create(context.Background(), domain.CreateRequest{
		EmployeeCode: "レジ担当",
		StoreCode:    "店舗一",
		TerminalCode: "一",
		Items: []domain.Item{
			{ProductID: 1, ProductCode: "4901234567894", ProductName: name, UnitPrice: 150, Quantity: 1},
		},
	})
	require.NoError(t, err)

	trx, err := repository.Provide().FindTransaction(context.Background(), db, resp.TransactionID)
	require.NoError(t, err)
	require.Len(t, trx.Details, 1)
	assert.Equal(t, name, trx.Details[0].ProductName)
}

func TestCreateValidation(t *testing.T) {
	validItem := domain.Item{
		ProductID:   1,
		ProductCode: "4901234567894",
		ProductName: "Tea",
		UnitPrice:   150,
		Quantity:    1,
	}

	cases := []struct {
		name string
		req  domain.CreateRequest
		want error
	}{
		{
			name: "empty items",
			req:  domain.CreateRequest{EmployeeCode: "EMP01", StoreCode: "S1", TerminalCode: "1"},
			want: domain.ErrEmptyItems,
		},
		{
			name: "missing employee code",
			req: domain.CreateRequest{
				StoreCode: "S1", TerminalCode: "1",
				Items: []domain.Item{validItem},
			},
			want: domain.ErrInvalidEmployeeCode,
		},
		{
			name: "employee code too long",
			req: domain.CreateRequest{
				EmployeeCode: "12345678901", StoreCode: "S1", TerminalCode: "1",
				Items: []domain.Item{validItem},
			},
			want: domain.ErrInvalidEmployeeCode,
		},
		{
			name: "store code too long",
			req: domain.CreateRequest{
				EmployeeCode: "EMP01", StoreCode: "123456", TerminalCode: "1",
				Items: []domain.Item{validItem},
			},
			want: domain.ErrInvalidStoreCode,
		},
		{
			name: "terminal code too long",
			req: domain.CreateRequest{
				EmployeeCode: "EMP01", StoreCode: "S1", TerminalCode: "1234",
				Items: []domain.Item{validItem},
			},
			want: domain.ErrInvalidTerminalCode,
		},
		{
			name: "zero quantity",
			req: domain.CreateRequest{
				EmployeeCode: "EMP01", StoreCode: "S1", TerminalCode: "1",
				Items: []domain.Item{{
					ProductID: 1, ProductCode: "4901234567894", ProductName: "Tea",
					UnitPrice: 150, Quantity: 0,
				}},
			},
			want: domain.ErrInvalidQuantity,
		},
		{
			name: "negative price",
			req: domain.CreateRequest{
				EmployeeCode: "EMP01", StoreCode: "S1", TerminalCode: "1",
				Items: []domain.Item{{
					ProductID: 1, ProductCode: "4901234567894", ProductName: "Tea",
					UnitPrice: -1, Quantity: 1,
				}},
			},
			want: domain.ErrInvalidPrice,
		},
		{
			name: "product code too long",
			req: domain.CreateRequest{
				EmployeeCode: "EMP01", StoreCode: "S1", TerminalCode: "1",
				Items: []domain.Item{{
					ProductID: 1, ProductCode: "49012345678901", ProductName: "Tea",
					UnitPrice: 150, Quantity: 1,
				}},
			},
			want: domain.ErrInvalidProductCode,
		},
		{
			name: "product name too long",
			req: domain.CreateRequest{
				EmployeeCode: "EMP01", StoreCode: "S1", TerminalCode: "1",
				Items: []domain.Item{{
					ProductID: 1, ProductCode: "4901234567894",
					ProductName: "This product name runs well past the fifty character cap",
					UnitPrice:   150, Quantity: 1,
				}},
			},
			want: domain.ErrInvalidProductName,
		},
		{
			name: "tax code too long",
			req: domain.CreateRequest{
				EmployeeCode: "EMP01", StoreCode: "S1", TerminalCode: "1",
				Items: []domain.Item{{
					ProductID: 1, ProductCode: "4901234567894", ProductName: "Tea",
					UnitPrice: 150, Quantity: 1, TaxCode: "100",
				}},
			},
			want: domain.ErrInvalidTaxCode,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, db, _ := setupPurchaseService(t)
			seedProduct(t, db, 1, 4901234567894, "Tea", 150)

			_, err := svc.Create(context.Background(), tc.req)
			require.ErrorIs(t, err, tc.want)
			assert.Equal(t, int64(0), countRows(t, db, "transactions"))
		})
	}
}

func TestCreateZeroPricedItem(t *testing.T) {
	svc, db, _ := setupPurchaseService(t)
	seedProduct(t, db, 1, 4909999999990, "Flyer", 0)

	resp, err := svc.Create(context.Background(), domain.CreateRequest{
		EmployeeCode: "EMP01",
		StoreCode:    "S1",
		TerminalCode: "1",
		Items: []domain.Item{
			{ProductID: 1, ProductCode: "4909999999990", ProductName: "Flyer", UnitPrice: 0, Quantity: 3},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.TotalExTax)
	assert.Equal(t, int64(0), resp.TotalAmount)
}
