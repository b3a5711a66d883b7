package seed

import (
	catalogdomain "github.com/retailhub/pos-api/internal/catalog/domain"
	"github.com/retailhub/pos-api/pkg/db"
	"gorm.io/gorm"
)

// EnsureSampleCatalog inserts a small demo catalog into empty
// development databases so the API is exercisable immediately.
func EnsureSampleCatalog(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&catalogdomain.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	samples := []catalogdomain.Product{
		{ID: 1, Code: 4901234567894, Name: "Tea", Price: 150},
		{ID: 2, Code: 4901234567895, Name: "Coffee", Price: 180},
		{ID: 3, Code: 4901234567896, Name: "Mineral Water", Price: 100},
		{ID: 4, Code: 4901234567897, Name: "Chocolate Bar", Price: 220},
		{ID: 5, Code: 4901234567898, Name: "Rice Ball", Price: 130},
	}
	// two instances racing through an empty table is fine; whoever
	// loses the unique index keeps the winner's rows
	if err := conn.Create(&samples).Error; err != nil && !db.IsDuplicateKeyErr(err) {
		return err
	}
	return nil
}
