package httpErrors

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

const (
	ErrBadRequest          = "Bad request"
	ErrInternalServerError = "Internal Server Error"
	ErrRequestTimeout      = "Request Timeout"
	ErrInvalidJSON         = "Invalid request payload"
)

type RestErr interface {
	Status() int
	Error() string
	Causes() interface{}
}

type RestError struct {
	ErrStatus int         `json:"-"`
	ErrError  string      `json:"error"`
	ErrCauses interface{} `json:"-"`
}

func (e RestError) Error() string {
	return e.ErrError
}

func (e RestError) Status() int {
	return e.ErrStatus
}

func (e RestError) Causes() interface{} {
	return e.ErrCauses
}

func NewRestError(status int, err string, causes interface{}) RestErr {
	return RestError{
		ErrStatus: status,
		ErrError:  err,
		ErrCauses: causes,
	}
}

func NewBadRequestError(message string) RestErr {
	return NewRestError(http.StatusBadRequest, message, nil)
}

func NewNotFoundError(message string) RestErr {
	return NewRestError(http.StatusNotFound, message, nil)
}

func NewConflictError(message string) RestErr {
	return NewRestError(http.StatusConflict, message, nil)
}

func NewServiceUnavailableError(message string) RestErr {
	return NewRestError(http.StatusServiceUnavailable, message, nil)
}

func NewBadGatewayError(message string) RestErr {
	return NewRestError(http.StatusBadGateway, message, nil)
}

// ParseErrors turns err into a REST error. Errors that already carry a status keep it; domain
// packages convert their own sentinels before calling in.
func ParseErrors(err error) RestErr {
	var restErr RestErr
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &restErr):
		return restErr
	case errors.As(err, &validationErrs):
		return NewRestError(http.StatusBadRequest, ErrBadRequest, err)
	case errors.Is(err, context.DeadlineExceeded):
		return NewRestError(http.StatusRequestTimeout, ErrRequestTimeout, err)
	default:
		return NewRestError(http.StatusInternalServerError, ErrInternalServerError, err)
	}
}

// ErrorResponse returns the status code and JSON body for err.
func ErrorResponse(err error) (int, interface{}) {
	restErr := ParseErrors(err)
	return restErr.Status(), restErr
}
