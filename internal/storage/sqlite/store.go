// Package sqlite реализует встраиваемое хранилище записей поверх gorm и SQLite.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

const (
	defaultOpTimeout     = 5 * time.Second
	defaultSlowThreshold = 500 * time.Millisecond
)

var errStoreNotInitialized = errors.New("sqlite store is not initialized")

// Store владеет gorm-подключением к SQLite.
type Store struct {
	db        *gorm.DB
	opTimeout time.Duration
}

// Open открывает файл базы по пути path и применяет схему.
func Open(ctx context.Context, path string, logger *log.Entry) (*Store, error) {
	return open(ctx, fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path), logger)
}

// OpenInMemory открывает именованную in-memory базу; живёт, пока открыт Store.
func OpenInMemory(ctx context.Context, name string, logger *log.Entry) (*Store, error) {
	return open(ctx, fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name), logger)
}

func open(ctx context.Context, dsn string, logger *log.Entry) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	// SQLite допускает одного писателя; единственное соединение исключает SQLITE_LOCKED
	// и держит in-memory базу живой.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	store := &Store{db: db, opTimeout: defaultOpTimeout}
	if err := store.migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return store, nil
}

func newGormLogger(logger *log.Entry) gormLogger.Interface {
	if logger == nil {
		return gormLogger.Default.LogMode(gormLogger.Silent)
	}
	return gormLogger.New(logger.WithField("component", "sqlite"), gormLogger.Config{
		SlowThreshold:             defaultSlowThreshold,
		LogLevel:                  gormLogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func (s *Store) migrate(ctx context.Context) error {
	err := s.db.WithContext(ctx).AutoMigrate(
		&customerRow{},
		&orderRow{},
		&productRow{},
		&paymentRow{},
		&deliveryRow{},
	)
	if err != nil {
		return fmt.Errorf("migrate sqlite schema: %w", err)
	}
	return nil
}

// Repositories возвращает все репозитории поверх одного Store.
func (s *Store) Repositories() domain.Repositories {
	return domain.Repositories{
		Customers:  NewCustomerRepository(s),
		Orders:     NewOrderRepository(s),
		Products:   NewProductRepository(s),
		Payments:   NewPaymentRepository(s),
		Deliveries: NewDeliveryRepository(s),
		Reports:    NewReportRepository(s),
	}
}

// Ping проверяет, что соединение живо.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errStoreNotInitialized
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	pingCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()
	return translateError(sqlDB.PingContext(pingCtx))
}

// Close закрывает базу. Для in-memory базы данные теряются.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// withTx выполняет fn в транзакции gorm с таймаутом операции.
// Коммит при nil, иначе откат; ошибка переводится в доменные категории.
func (s *Store) withTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return errStoreNotInitialized
	}
	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	return translateError(s.db.WithContext(opCtx).Transaction(fn))
}

// withSession выполняет чтение без явной транзакции.
func (s *Store) withSession(ctx context.Context, fn func(db *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return errStoreNotInitialized
	}
	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	return translateError(fn(s.db.WithContext(opCtx)))
}
