// Package httpapi реализует HTTP/JSON транспорт сервиса записей поверх gin.
package httpapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/easyorder/internal/service/records"
)

// Options настраивает маршрутизатор.
type Options struct {
	// AllowedOrigins перечисляет источники для CORS; пустой список разрешает любой.
	AllowedOrigins []string
}

// NewRouter собирает gin.Engine со всеми маршрутами сервиса.
func NewRouter(svc *records.Service, logger *log.Entry, opts Options) *gin.Engine {
	if logger == nil {
		logger = log.New().WithField("component", "http")
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestID(),
		AccessLog(logger),
		newCORS(opts.AllowedOrigins),
	)

	h := &handler{svc: svc}

	customers := router.Group("/customers")
	customers.POST("", h.createCustomer)
	customers.GET("", h.listCustomers)
	customers.GET("/:id", h.getCustomer)

	orders := router.Group("/orders")
	orders.POST("", h.createOrder)
	orders.GET("", h.listOrders)
	orders.GET("/:id", h.getOrder)

	products := router.Group("/products")
	products.POST("", h.createProduct)
	products.GET("", h.listProducts)
	products.GET("/:id", h.getProduct)
	products.PUT("/:id", h.updateProduct)
	products.DELETE("/:id", h.deleteProduct)

	payments := router.Group("/payments")
	payments.POST("", h.createPayment)
	payments.GET("", h.listPayments)
	payments.GET("/:id", h.getPayment)
	payments.PUT("/:id", h.updatePayment)
	payments.DELETE("/:id", h.deletePayment)

	deliveries := router.Group("/deliveries")
	deliveries.POST("", h.createDelivery)
	deliveries.GET("", h.listDeliveries)
	deliveries.GET("/:id", h.getDelivery)

	router.GET("/reports/orders-per-customer", h.ordersPerCustomer)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorBody{Error: "route not found"})
	})

	return router
}

func newCORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Content-Type", HeaderRequestID},
		ExposeHeaders: []string{HeaderRequestID},
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
