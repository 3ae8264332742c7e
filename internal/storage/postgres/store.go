package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

const (
	defaultConnTimeout     = 5 * time.Second
	defaultOpTimeout       = 5 * time.Second
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 25
	defaultConnMaxLifetime = 30 * time.Minute
	defaultConnMaxIdleTime = 5 * time.Minute
)

var errStoreNotInitialized = errors.New("postgres store is not initialized")

// querier описывает общую часть *sql.Conn и *sql.Tx, которой пользуются репозитории.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store оборачивает SQL-подключение к PostgreSQL.
type Store struct {
	db        *sql.DB
	opTimeout time.Duration
}

// Open открывает подключение к PostgreSQL и проверяет доступность базы.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}
	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)
	db.SetConnMaxIdleTime(defaultConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", classifyError(err))
	}

	return &Store{db: db, opTimeout: defaultOpTimeout}, nil
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

// DB возвращает raw SQL DB, когда нужен низкоуровневый доступ.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Ping проверяет доступность подключения.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errStoreNotInitialized
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()
	if err := s.db.PingContext(pingCtx); err != nil {
		return classifyError(err)
	}
	return nil
}

// EnsureSchema применяет все up-миграции.
func (s *Store) EnsureSchema(ctx context.Context) error {
	return s.MigrateUp(ctx, 0)
}

// Close закрывает подключение к БД.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// withConn выдаёт fn выделенное соединение из пула с таймаутом операции.
// Соединение возвращается в пул на любом пути выхода.
func (s *Store) withConn(ctx context.Context, fn func(ctx context.Context, q querier) error) error {
	if s == nil || s.db == nil {
		return errStoreNotInitialized
	}

	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	conn, err := s.db.Conn(opCtx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", classifyError(err))
	}
	defer conn.Close()

	return fn(opCtx, conn)
}

// withTx выполняет fn в транзакции: commit, если fn вернула nil,
// иначе rollback. Частично применённые изменения не видны снаружи.
func (s *Store) withTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, q querier) error) (err error) {
	if s == nil || s.db == nil {
		return errStoreNotInitialized
	}

	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(opCtx, opts)
	if err != nil {
		return fmt.Errorf("begin tx: %w", classifyError(err))
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(opCtx, tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", classifyError(err))
	}
	return nil
}

var readOnlySnapshot = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
