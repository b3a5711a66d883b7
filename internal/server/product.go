package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/retailhub/pos-api/internal/catalog/domain"
)

const defaultListLimit = 100

func (s *Server) SearchProduct(c *gin.Context) {
	raw := strings.TrimSpace(c.Param("barcode"))
	barcode, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || barcode < 0 {
		AbortWithError(c, newValidationError("barcode", "invalid_barcode", "barcode must be a non-negative integer"))
		return
	}

	product, err := s.catalogSvc.SearchByBarcode(c.Request.Context(), barcode)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (s *Server) ListProducts(c *gin.Context) {
	var query struct {
		Skip  *int `form:"skip"`
		Limit *int `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req := catalogdomain.ListRequest{Skip: 0, Limit: defaultListLimit}
	if query.Skip != nil {
		req.Skip = *query.Skip
	}
	if query.Limit != nil {
		req.Limit = *query.Limit
	}

	products, err := s.catalogSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}
