package api

import (
	"context"
	"net/http"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Catalog interface {
	ListCars(ctx context.Context, carType, city string) ([]domain.Vehicle, error)
}

type CarHandler struct {
	catalog Catalog
}

func NewCarHandler(catalog Catalog) *CarHandler {
	return &CarHandler{catalog: catalog}
}

func (h *CarHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
}

func (h *CarHandler) list(c *gin.Context) {
	carType := c.Query("type")
	city := c.Query("city")

	cars, err := h.catalog.ListCars(c.Request.Context(), carType, city)
	if err != nil {
		// Недоступный каталог отдаем как пустой список
		zap.L().Error("failed to fetch cars", zap.String("type", carType), zap.String("city", city), zap.Error(err))
		c.JSON(http.StatusOK, []domain.Vehicle{})
		return
	}
	if cars == nil {
		cars = []domain.Vehicle{}
	}
	c.JSON(http.StatusOK, cars)
}
