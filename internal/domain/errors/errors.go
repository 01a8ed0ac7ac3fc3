package errors

import (
	"net/http"

	"funntour/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// NewConflictError creates a 409 error whose message is shown to the client verbatim
func NewConflictError(errorCode, message string) *BaseError {
	return NewBaseError(http.StatusConflict, errorCode, message, "")
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// Is matches any BaseError carrying the same error code, so copies made by
// WithDetails or WithMessage still satisfy errors.Is against the predefined values.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode && e.httpCode == t.httpCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// WithMessage returns a copy with a different user-facing message
func (e *BaseError) WithMessage(message string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   message,
		details:   e.details,
	}
}

// Predefined error types
var (
	// Geographic errors
	ErrCountryNotFound = NewBaseError(
		http.StatusNotFound,
		"COUNTRY_NOT_FOUND",
		"País não encontrado",
		"",
	)

	ErrCountryConflict = NewConflictError(
		"COUNTRY_CONFLICT",
		"Já existe um país cadastrado com estes dados",
	)

	ErrStateNotFound = NewBaseError(
		http.StatusNotFound,
		"STATE_NOT_FOUND",
		"Estado não encontrado",
		"",
	)

	ErrStateConflict = NewConflictError(
		"STATE_CONFLICT",
		"Já existe um estado cadastrado com estes dados para o país selecionado",
	)

	ErrCityNotFound = NewBaseError(
		http.StatusNotFound,
		"CITY_NOT_FOUND",
		"Cidade não encontrada",
		"",
	)

	ErrCityConflict = NewConflictError(
		"CITY_CONFLICT",
		"Já existe uma cidade cadastrada com estes dados para o estado selecionado",
	)

	ErrAddressNotFound = NewBaseError(
		http.StatusNotFound,
		"ADDRESS_NOT_FOUND",
		"Endereço não encontrado",
		"",
	)

	// Profile errors
	ErrProfileNotFound = NewBaseError(
		http.StatusNotFound,
		"PROFILE_NOT_FOUND",
		"Perfil não encontrado",
		"",
	)

	ErrProfileConflict = NewConflictError(
		"PROFILE_CONFLICT",
		"Já existe um perfil com esta descrição",
	)

	// User errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"Usuário não encontrado",
		"",
	)

	ErrUserConflict = NewConflictError(
		"USER_CONFLICT",
		"Já existe um usuário cadastrado com estes dados",
	)

	ErrTaxIDAlreadyExists = NewConflictError(
		"TAX_ID_ALREADY_EXISTS",
		"Já existe um usuário cadastrado com este CPF/CNPJ",
	)

	ErrEmailAlreadyExists = NewConflictError(
		"EMAIL_ALREADY_EXISTS",
		"Já existe um usuário cadastrado com este e-mail",
	)

	// Authentication errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Credenciais inválidas",
		"",
	)

	ErrCurrentPasswordMismatch = NewBaseError(
		http.StatusBadRequest,
		"CURRENT_PASSWORD_MISMATCH",
		"Senha atual incorreta",
		"",
	)

	ErrResetTokenInvalid = NewBaseError(
		http.StatusBadRequest,
		"RESET_TOKEN_INVALID",
		"Token inválido ou expirado",
		"",
	)

	ErrAccessTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"Token de acesso inválido ou expirado",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Erro ao processar a senha",
		"",
	)

	// Avatar storage errors
	ErrStorageDisabled = NewBaseError(
		http.StatusServiceUnavailable,
		"STORAGE_DISABLED",
		"Armazenamento de arquivos não configurado",
		"",
	)

	ErrInvalidAvatar = NewBaseError(
		http.StatusBadRequest,
		"INVALID_AVATAR",
		"Arquivo de avatar inválido",
		"",
	)

	// Validation errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Dados de entrada inválidos",
		"",
	)

	ErrInvalidReference = NewBaseError(
		http.StatusBadRequest,
		"INVALID_REFERENCE",
		"Registro relacionado inexistente",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Erro interno do servidor",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Recurso não encontrado",
		"",
	)

	ErrConflict = NewConflictError(
		"CONFLICT",
		"Conflito de dados",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error to errors.Is / errors.As
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Erro ao processar a solicitação"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
