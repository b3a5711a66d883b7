package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	purchasedomain "github.com/retailhub/pos-api/internal/purchase/domain"
)

type purchaseItemRequest struct {
	ProductID   int64  `json:"PRD_ID"`
	ProductCode string `json:"PRD_CODE"`
	ProductName string `json:"PRD_NAME"`
	UnitPrice   *int64 `json:"PRD_PRICE"`
	Quantity    *int   `json:"quantity"`
	TaxCode     string `json:"TAX_CD"`
}

type purchaseRequest struct {
	Items        []purchaseItemRequest `json:"items"`
	EmployeeCode string                `json:"EMP_CD"`
	StoreCode    string                `json:"STORE_CD"`
	TerminalCode string                `json:"POS_NO"`
}

func (s *Server) CreatePurchase(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.obsMetrics.RecordPurchaseFailure("validation_error")
		AbortWithError(c, invalidRequestError())
		return
	}

	items := make([]purchasedomain.Item, 0, len(req.Items))
	for _, item := range req.Items {
		// absent quantity means one unit; absent TAX_CD is defaulted
		// downstream; a pointer keeps "missing" distinct from zero
		quantity := 1
		if item.Quantity != nil {
			quantity = *item.Quantity
		}
		var price int64 = -1
		if item.UnitPrice != nil {
			price = *item.UnitPrice
		}
		items = append(items, purchasedomain.Item{
			ProductID:   item.ProductID,
			ProductCode: item.ProductCode,
			ProductName: item.ProductName,
			UnitPrice:   price,
			Quantity:    quantity,
			TaxCode:     item.TaxCode,
		})
	}

	resp, err := s.purchaseSvc.Create(c.Request.Context(), purchasedomain.CreateRequest{
		Items:        items,
		EmployeeCode: req.EmployeeCode,
		StoreCode:    req.StoreCode,
		TerminalCode: req.TerminalCode,
	})
	if err != nil {
		s.obsMetrics.RecordPurchaseFailure(purchaseOutcome(err))
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordPurchase(resp.TotalAmount)
	c.JSON(http.StatusCreated, resp)
}

func purchaseOutcome(err error) string {
	outcome, _ := classifyErrorForLog(err)
	return outcome
}
