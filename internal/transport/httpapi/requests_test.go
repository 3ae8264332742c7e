package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

func TestDeliveryDate_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		raw     string
		want    time.Time
		wantErr bool
	}{
		{raw: `"2024-06-01"`, want: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{raw: `"2024-06-01T10:30:00+03:00"`, want: time.Date(2024, 6, 1, 7, 30, 0, 0, time.UTC)},
		{raw: `""`},
		{raw: `"01/06/2024"`, wantErr: true},
		{raw: `20240601`, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			var d deliveryDate
			err := json.Unmarshal([]byte(tc.raw), &d)
			if tc.wantErr {
				require.ErrorIs(t, err, errInvalidDate)
				return
			}
			require.NoError(t, err)
			require.True(t, tc.want.Equal(d.Time), "got %v", d.Time)
		})
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{err: domain.Validate([]error{domain.ErrIDInvalid}), want: http.StatusUnprocessableEntity},
		{err: fmt.Errorf("create order: %w", domain.ErrForeignKeyViolation), want: http.StatusBadRequest},
		{err: fmt.Errorf("create customer: %w", domain.ErrUniqueViolation), want: http.StatusConflict},
		{err: fmt.Errorf("ping: %w", domain.ErrStoreUnavailable), want: http.StatusServiceUnavailable},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, statusFor(tc.err), tc.err.Error())
	}
}

func TestProductRequest_ToDomain(t *testing.T) {
	var req productRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Pen","price":0,"category":"office","stock_quantity":0}`), &req))
	in, err := req.toDomain()
	require.NoError(t, err)
	require.Equal(t, domain.ProductInput{Name: "Pen", Category: "office"}, in)

	req = productRequest{Name: "Pen", Category: "office"}
	_, err = req.toDomain()
	require.ErrorIs(t, err, domain.ErrValidation)
	require.ErrorIs(t, err, domain.ErrProductPriceRequired)
	require.ErrorIs(t, err, domain.ErrProductStockRequired)
}

func TestPaymentRequest_ToDomain(t *testing.T) {
	amount := 12.5
	in, err := paymentRequest{OrderID: 3, Amount: &amount, PaymentMethod: "card"}.toDomain()
	require.NoError(t, err)
	require.Equal(t, domain.PaymentCreate{OrderID: 3, Amount: 12.5, PaymentMethod: "card"}, in)

	_, err = paymentRequest{OrderID: 3, PaymentMethod: "card"}.toDomain()
	require.ErrorIs(t, err, domain.ErrValidation)
	require.ErrorIs(t, err, domain.ErrPaymentAmountRequired)
}
