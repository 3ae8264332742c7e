package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

// translateError сводит ошибки gorm и драйвера к доменным категориям.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrForeignKeyViolation),
		errors.Is(err, domain.ErrUniqueViolation),
		errors.Is(err, domain.ErrStoreUnavailable):
		return err
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %w", domain.ErrForeignKeyViolation, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", domain.ErrUniqueViolation, err)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch {
		// ON DELETE RESTRICT срабатывает как SQLITE_CONSTRAINT_TRIGGER, а не как
		// SQLITE_CONSTRAINT_FOREIGNKEY. Собственных триггеров в схеме нет.
		case sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey,
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintTrigger:
			return fmt.Errorf("%w: %w", domain.ErrForeignKeyViolation, err)
		case sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique,
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %w", domain.ErrUniqueViolation, err)
		case sqliteErr.Code == sqlite3.ErrBusy,
			sqliteErr.Code == sqlite3.ErrLocked,
			sqliteErr.Code == sqlite3.ErrCantOpen:
			return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
		}
		return err
	}

	if errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return err
}
