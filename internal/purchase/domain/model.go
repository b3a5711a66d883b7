package domain

import "time"

// Transaction is a committed purchase header. Rows are written exactly
// once and never updated or deleted through the API.
type Transaction struct {
	ID           int64     `json:"TRD_ID" gorm:"column:id;primaryKey"`
	Datetime     time.Time `json:"DATETIME" gorm:"column:datetime;not null"`
	EmployeeCode string    `json:"EMP_CD" gorm:"column:emp_cd;type:varchar(10);not null"`
	StoreCode    string    `json:"STORE_CD" gorm:"column:store_cd;type:varchar(5);not null"`
	TerminalCode string    `json:"POS_NO" gorm:"column:pos_no;type:varchar(3);not null"`
	TotalAmount  int64     `json:"TOTAL_AMT" gorm:"column:total_amt;not null"`
	TotalExTax   int64     `json:"TTL_AMT_EX_TAX" gorm:"column:total_amt_ex_tax;not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`

	Details []TransactionDetail `json:"details,omitempty" gorm:"foreignKey:TransactionID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Transaction) TableName() string { return "transactions" }

// TransactionDetail is one purchased line. Product fields are captured
// at purchase time; later catalog edits never touch historical rows.
type TransactionDetail struct {
	TransactionID int64     `json:"TRD_ID" gorm:"column:transaction_id;primaryKey;autoIncrement:false"`
	DetailID      int       `json:"DTL_ID" gorm:"column:detail_id;primaryKey;autoIncrement:false"`
	ProductID     int64     `json:"PRD_ID" gorm:"column:product_id;not null"`
	ProductCode   string    `json:"PRD_CODE" gorm:"column:product_code;type:varchar(13);not null"`
	ProductName   string    `json:"PRD_NAME" gorm:"column:product_name;type:varchar(50);not null"`
	UnitPrice     int64     `json:"PRD_PRICE" gorm:"column:unit_price;not null"`
	TaxCode       string    `json:"TAX_CD" gorm:"column:tax_cd;type:varchar(2);not null"`
	CreatedAt     time.Time `json:"created_at" gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
}

func (TransactionDetail) TableName() string { return "transaction_details" }
