package apperr

import "errors"

// Типизированные ошибки движка. Транспорт отображает их в HTTP-коды,
// сервисы оборачивают через fmt.Errorf("...: %w", ...)
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbiddenRole   = errors.New("operation not allowed for this role")
	ErrForbidden       = errors.New("access denied")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
)

// IsDomain проверяет, относится ли ошибка к доменной таксономии
func IsDomain(err error) bool {
	return errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbiddenRole) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict)
}
