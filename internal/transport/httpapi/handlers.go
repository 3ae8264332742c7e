package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
	"github.com/vladislavdragonenkov/easyorder/internal/service/records"
)

type handler struct {
	svc *records.Service
}

func (h *handler) createCustomer(c *gin.Context) {
	var in domain.CustomerCreate
	if err := bindJSON(c, &in); err != nil {
		writeError(c, err)
		return
	}
	customer, err := h.svc.CreateCustomer(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *handler) listCustomers(c *gin.Context) {
	page, err := pageQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	customers, err := h.svc.ListCustomers(c.Request.Context(), page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *handler) getCustomer(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	customer, ok, err := h.svc.GetCustomer(c.Request.Context(), id)
	respondFound(c, domain.EntityCustomer, customer, ok, err)
}

func (h *handler) createOrder(c *gin.Context) {
	var in domain.OrderCreate
	if err := bindJSON(c, &in); err != nil {
		writeError(c, err)
		return
	}
	order, err := h.svc.CreateOrder(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *handler) listOrders(c *gin.Context) {
	page, err := pageQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	orders, err := h.svc.ListOrders(c.Request.Context(), page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *handler) getOrder(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	order, ok, err := h.svc.GetOrder(c.Request.Context(), id)
	respondFound(c, domain.EntityOrder, order, ok, err)
}

func (h *handler) createProduct(c *gin.Context) {
	in, err := bindProduct(c)
	if err != nil {
		writeError(c, err)
		return
	}
	product, err := h.svc.CreateProduct(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *handler) listProducts(c *gin.Context) {
	page, err := pageQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	products, err := h.svc.ListProducts(c.Request.Context(), page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *handler) getProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	product, ok, err := h.svc.GetProduct(c.Request.Context(), id)
	respondFound(c, domain.EntityProduct, product, ok, err)
}

func (h *handler) updateProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	in, err := bindProduct(c)
	if err != nil {
		writeError(c, err)
		return
	}
	product, ok, err := h.svc.UpdateProduct(c.Request.Context(), id, in)
	respondFound(c, domain.EntityProduct, product, ok, err)
}

func (h *handler) deleteProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	ok, err := h.svc.DeleteProduct(c.Request.Context(), id)
	respondDeleted(c, domain.EntityProduct, ok, err)
}

func (h *handler) createPayment(c *gin.Context) {
	var req paymentRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	in, err := req.toDomain()
	if err != nil {
		writeError(c, err)
		return
	}
	payment, err := h.svc.CreatePayment(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (h *handler) listPayments(c *gin.Context) {
	page, err := pageQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	payments, err := h.svc.ListPayments(c.Request.Context(), page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (h *handler) getPayment(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	payment, ok, err := h.svc.GetPayment(c.Request.Context(), id)
	respondFound(c, domain.EntityPayment, payment, ok, err)
}

func (h *handler) updatePayment(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	var in domain.PaymentUpdate
	if err := bindJSON(c, &in); err != nil {
		writeError(c, err)
		return
	}
	payment, ok, err := h.svc.UpdatePayment(c.Request.Context(), id, in)
	respondFound(c, domain.EntityPayment, payment, ok, err)
}

func (h *handler) deletePayment(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	ok, err := h.svc.DeletePayment(c.Request.Context(), id)
	respondDeleted(c, domain.EntityPayment, ok, err)
}

func (h *handler) createDelivery(c *gin.Context) {
	var req deliveryRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	delivery, err := h.svc.CreateDelivery(c.Request.Context(), req.toDomain())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, delivery)
}

func (h *handler) listDeliveries(c *gin.Context) {
	page, err := pageQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	deliveries, err := h.svc.ListDeliveries(c.Request.Context(), page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, deliveries)
}

func (h *handler) getDelivery(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	delivery, ok, err := h.svc.GetDelivery(c.Request.Context(), id)
	respondFound(c, domain.EntityDelivery, delivery, ok, err)
}

func (h *handler) ordersPerCustomer(c *gin.Context) {
	report, err := h.svc.OrdersPerCustomer(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func respondFound(c *gin.Context, entity domain.Entity, body any, ok bool, err error) {
	switch {
	case err != nil:
		writeError(c, err)
	case !ok:
		writeNotFound(c, entity)
	default:
		c.JSON(http.StatusOK, body)
	}
}

func respondDeleted(c *gin.Context, entity domain.Entity, ok bool, err error) {
	switch {
	case err != nil:
		writeError(c, err)
	case !ok:
		writeNotFound(c, entity)
	default:
		c.Status(http.StatusNoContent)
	}
}

func bindProduct(c *gin.Context) (domain.ProductInput, error) {
	var req productRequest
	if err := bindJSON(c, &req); err != nil {
		return domain.ProductInput{}, err
	}
	return req.toDomain()
}
