package apperrors

import (
	stderrors "errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Коды ошибок драйверов, которые мы умеем переводить
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"

	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
	mysqlDuplicateEntry  = 1062
)

// TranslateDBError переводит ошибку драйвера/GORM в AppError.
// notFound используется для gorm.ErrRecordNotFound; nil-ошибка остается nil.
// Неизвестные ошибки возвращаются как есть (станут 500 в обработчике).
func TranslateDBError(err error, notFound *AppError) error {
	if err == nil {
		return nil
	}
	if _, ok := AsAppError(err); ok {
		return err
	}
	if stderrors.Is(err, gorm.ErrRecordNotFound) && notFound != nil {
		return notFound.WithError(err)
	}

	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return ErrReferencedRecord.WithError(err).WithDetails(map[string]string{"constraint": pgErr.ConstraintName})
		case pgUniqueViolation:
			return Conflict("database", "Record already exists", err)
		}
	}

	var myErr *mysql.MySQLError
	if stderrors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlRowIsReferenced, mysqlNoReferencedRow:
			return ErrReferencedRecord.WithError(err)
		case mysqlDuplicateEntry:
			return Conflict("database", "Record already exists", err)
		}
	}

	return err
}
