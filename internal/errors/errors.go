package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound             = NewAppError("NOT_FOUND", "Recurso no encontrado", http.StatusNotFound)
	ErrUnauthorized         = NewAppError("UNAUTHORIZED", "No autorizado", http.StatusUnauthorized)
	ErrForbidden            = NewAppError("FORBIDDEN", "Acceso denegado", http.StatusForbidden)
	ErrBadRequest           = NewAppError("BAD_REQUEST", "Solicitud inválida", http.StatusBadRequest)
	ErrInternalServer       = NewAppError("INTERNAL_SERVER_ERROR", "Error interno en el servidor", http.StatusInternalServerError)
	ErrValidation           = NewAppError("VALIDATION_ERROR", "Error de validación", http.StatusBadRequest)
	ErrDatabase             = NewAppError("DATABASE_ERROR", "Error en la base de datos", http.StatusInternalServerError)
	ErrInvalidCredentials   = NewAppError("INVALID_CREDENTIALS", "Credenciales inválidas", http.StatusUnauthorized)
	ErrEmailAlreadyExists   = NewAppError("EMAIL_ALREADY_EXISTS", "El email ya está registrado", http.StatusConflict)
	ErrUserNotFound         = NewAppError("USER_NOT_FOUND", "Usuario no encontrado", http.StatusNotFound)
	ErrGoalNotFound         = NewAppError("GOAL_NOT_FOUND", "Ahorro no encontrado", http.StatusNotFound)
	ErrContributionNotFound = NewAppError("CONTRIBUTION_NOT_FOUND", "Contribución no encontrada", http.StatusNotFound)
	ErrResourceNotOwned     = NewAppError("RESOURCE_NOT_OWNED", "No tienes permisos sobre este recurso", http.StatusForbidden)
)

type AppError struct {
	Code       string
	Message    string
	StatusCode int
	Details    map[string]interface{}
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s - %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	clone := e.clone()
	if details == nil {
		clone.Details = make(map[string]interface{})
		return clone
	}
	clone.Details = make(map[string]interface{}, len(details))
	for k, v := range details {
		clone.Details[k] = v
	}
	return clone
}

func (e *AppError) WithError(err error) *AppError {
	clone := e.clone()
	clone.Err = err
	return clone
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

func WrapError(err error, code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
		Details:    make(map[string]interface{}),
	}
}

func (e *AppError) clone() *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	if e.Details != nil {
		clone.Details = make(map[string]interface{}, len(e.Details))
		for k, v := range e.Details {
			clone.Details[k] = v
		}
	} else {
		clone.Details = make(map[string]interface{})
	}
	return &clone
}

func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func FromError(err error) *AppError {
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}

	if errors.Is(err, context.Canceled) {
		return WrapError(err, "REQUEST_CANCELED", "Solicitud cancelada por el cliente", http.StatusRequestTimeout)
	}

	return WrapError(err, "UNKNOWN_ERROR", "Error desconocido", http.StatusInternalServerError)
}

func NewAuthError(code, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
		Details:    make(map[string]interface{}),
	}
}

func NewValidationError(field, message string) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Details: map[string]interface{}{
			"field": field,
		},
	}
}

func NewDatabaseError(err error) *AppError {
	return WrapError(err, "DATABASE_ERROR", "Error al ejecutar la operación en la base de datos", http.StatusInternalServerError)
}

// NewTransactionError marca una unidad atómica que no pudo confirmarse.
// La transacción ya fue revertida: no queda estado parcial.
func NewTransactionError(err error) *AppError {
	return WrapError(err, "TRANSACTION_FAILED", "La transacción no pudo completarse", http.StatusInternalServerError)
}

func ParseValidationErrors(err error) *AppError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return ErrBadRequest.WithError(err)
	}

	fieldErrors := make([]map[string]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fieldErrors = append(fieldErrors, map[string]string{
			"field":   fieldErr.Field(),
			"message": translateValidationError(fieldErr),
		})
	}

	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    "Error de validación en los campos",
		StatusCode: http.StatusBadRequest,
		Details: map[string]interface{}{
			"fields": fieldErrors,
		},
	}
}

func translateValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es obligatorio", fe.Field())
	case "email":
		return "Email inválido"
	case "min":
		return fmt.Sprintf("%s debe tener al menos %s caracteres", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s debe tener como máximo %s caracteres", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s debe ser mayor a %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s debe ser mayor o igual a %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("La validación '%s' falló para %s", fe.Tag(), fe.Field())
	}
}
