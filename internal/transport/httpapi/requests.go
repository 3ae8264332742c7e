package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

var (
	errInvalidBody  = errors.New("request body is not valid JSON for this resource")
	errInvalidSkip  = errors.New("skip must be an integer")
	errInvalidLimit = errors.New("limit must be an integer")
	errInvalidDate  = errors.New("delivery_date must be RFC 3339 or YYYY-MM-DD")
)

// bindJSON декодирует тело; ошибка разбора считается ошибкой валидации.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return domain.Validate([]error{fmt.Errorf("%w: %v", errInvalidBody, err)})
	}
	return nil
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Validate([]error{domain.ErrIDInvalid})
	}
	return id, nil
}

// pageQuery читает skip и limit; отсутствующие значения берутся по умолчанию.
func pageQuery(c *gin.Context) (domain.Page, error) {
	page := domain.DefaultPage()
	var problems []error

	if raw, ok := c.GetQuery("skip"); ok {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			problems = append(problems, errInvalidSkip)
		} else {
			page.Skip = v
		}
	}
	if raw, ok := c.GetQuery("limit"); ok {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			problems = append(problems, errInvalidLimit)
		} else {
			page.Limit = v
		}
	}

	if err := domain.Validate(problems); err != nil {
		return domain.Page{}, err
	}
	return page, nil
}

// Числовые поля приходят указателями, чтобы отсутствующее значение
// не превращалось молча в ноль.
type productRequest struct {
	Name          string   `json:"name"`
	Price         *float64 `json:"price"`
	Category      string   `json:"category"`
	StockQuantity *int64   `json:"stock_quantity"`
}

func (r productRequest) toDomain() (domain.ProductInput, error) {
	var problems []error
	if r.Price == nil {
		problems = append(problems, domain.ErrProductPriceRequired)
	}
	if r.StockQuantity == nil {
		problems = append(problems, domain.ErrProductStockRequired)
	}
	if err := domain.Validate(problems); err != nil {
		return domain.ProductInput{}, err
	}
	return domain.ProductInput{
		Name:          r.Name,
		Price:         *r.Price,
		Category:      r.Category,
		StockQuantity: *r.StockQuantity,
	}, nil
}

type paymentRequest struct {
	OrderID       int64    `json:"order_id"`
	Amount        *float64 `json:"amount"`
	PaymentMethod string   `json:"payment_method"`
}

func (r paymentRequest) toDomain() (domain.PaymentCreate, error) {
	if r.Amount == nil {
		return domain.PaymentCreate{}, domain.Validate([]error{domain.ErrPaymentAmountRequired})
	}
	return domain.PaymentCreate{
		OrderID:       r.OrderID,
		Amount:        *r.Amount,
		PaymentMethod: r.PaymentMethod,
	}, nil
}

// deliveryDate принимает как полную метку времени, так и календарную дату.
type deliveryDate struct {
	time.Time
}

func (d *deliveryDate) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errInvalidDate
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return errInvalidDate
}

type deliveryRequest struct {
	Address      string       `json:"address"`
	Status       string       `json:"status"`
	DeliveryDate deliveryDate `json:"delivery_date"`
	OrderID      int64        `json:"order_id"`
}

func (r deliveryRequest) toDomain() domain.DeliveryCreate {
	return domain.DeliveryCreate{
		Address:      r.Address,
		Status:       r.Status,
		DeliveryDate: r.DeliveryDate.Time,
		OrderID:      r.OrderID,
	}
}
