package domain

import "time"

// Product is a catalog row. The purchase processor only ever reads it;
// catalog management happens out of band (migrations and seeding).
type Product struct {
	ID        int64     `json:"PRD_ID" gorm:"column:id;primaryKey"`
	Code      int64     `json:"CODE" gorm:"column:code;uniqueIndex:ux_products_code;not null"`
	Name      string    `json:"NAME" gorm:"column:name;type:varchar(50);not null"`
	Price     int64     `json:"PRICE" gorm:"column:price;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP"`
}

func (Product) TableName() string { return "products" }
