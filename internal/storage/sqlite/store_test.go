package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
	"github.com/vladislavdragonenkov/easyorder/internal/storage/storagetest"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	store, err := OpenInMemory(ctx, name, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestRepositoriesContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) domain.Repositories {
		return openTestStore(t).Repositories()
	})
}

func TestStore_RestrictOnDelete(t *testing.T) {
	store := openTestStore(t)
	repos := store.Repositories()
	ctx := context.Background()

	customer, err := repos.Customers.Create(ctx, domain.CustomerCreate{Name: "Ana", Email: "ana@x.com"})
	require.NoError(t, err)
	order, err := repos.Orders.Create(ctx, domain.OrderCreate{Description: "book", CustomerID: customer.ID})
	require.NoError(t, err)
	_, err = repos.Payments.Create(ctx, domain.PaymentCreate{OrderID: order.ID, Amount: 10, PaymentMethod: "card"})
	require.NoError(t, err)

	err = store.withTx(ctx, func(tx *gorm.DB) error {
		return tx.Delete(&customerRow{}, customer.ID).Error
	})
	require.ErrorIs(t, err, domain.ErrForeignKeyViolation)

	err = store.withTx(ctx, func(tx *gorm.DB) error {
		return tx.Delete(&orderRow{}, order.ID).Error
	})
	require.ErrorIs(t, err, domain.ErrForeignKeyViolation)

	_, ok, err := repos.Orders.Get(ctx, order.ID)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestStore_CheckConstraintsGuardNegativeValues(t *testing.T) {
	store := openTestStore(t)

	err := store.withTx(context.Background(), func(tx *gorm.DB) error {
		return tx.Create(&productRow{Name: "Pen", Price: -1, Category: "office"}).Error
	})
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrUniqueViolation)

	products, err := store.Repositories().Products.List(context.Background(), domain.DefaultPage())
	require.NoError(t, err)
	require.Empty(t, products)
}

func TestStore_FilePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "easyorder.db")
	ctx := context.Background()

	store, err := Open(ctx, path, nil)
	require.NoError(t, err)
	created, err := store.Repositories().Products.Create(ctx, domain.ProductInput{
		Name: "Pen", Price: 2.5, Category: "office", StockQuantity: 3,
	})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(ctx, path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, ok, err := reopened.Repositories().Products.Get(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, created, got)
	require.NoError(t, reopened.Ping(ctx))
}

func TestStore_NilGuards(t *testing.T) {
	var store *Store
	ctx := context.Background()

	require.ErrorIs(t, store.Ping(ctx), errStoreNotInitialized)
	require.NoError(t, store.Close())

	_, err := store.Repositories().Deliveries.List(ctx, domain.DefaultPage())
	require.ErrorIs(t, err, errStoreNotInitialized)
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "gorm duplicated key", err: gorm.ErrDuplicatedKey, want: domain.ErrUniqueViolation},
		{name: "gorm foreign key", err: gorm.ErrForeignKeyViolated, want: domain.ErrForeignKeyViolation},
		{
			name: "driver unique",
			err:  sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique},
			want: domain.ErrUniqueViolation,
		},
		{
			name: "driver foreign key",
			err:  sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey},
			want: domain.ErrForeignKeyViolation,
		},
		{
			name: "restrict on delete",
			err:  sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintTrigger},
			want: domain.ErrForeignKeyViolation,
		},
		{name: "busy", err: sqlite3.Error{Code: sqlite3.ErrBusy}, want: domain.ErrStoreUnavailable},
		{name: "deadline", err: fmt.Errorf("query: %w", context.DeadlineExceeded), want: domain.ErrStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, translateError(tt.err), tt.want)
		})
	}

	plain := errors.New("boom")
	require.Equal(t, plain, translateError(plain))
	require.NoError(t, translateError(nil))
}
