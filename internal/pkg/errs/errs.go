package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Code 對應HTTP status code，handler直接使用
type Code int

const (
	BadRequestCode      Code = http.StatusBadRequest
	UnauthenticatedCode Code = http.StatusUnauthorized
	UnauthorizedCode    Code = http.StatusForbidden
	NotFoundCode        Code = http.StatusNotFound
	ConflictCode        Code = http.StatusConflict
	InternalErrorCode   Code = http.StatusInternalServerError
)

var ErrStrMap = map[Code]string{
	BadRequestCode:      "bad request",
	UnauthenticatedCode: "unauthenticated",
	UnauthorizedCode:    "unauthorized",
	NotFoundCode:        "not found",
	ConflictCode:        "conflict",
	InternalErrorCode:   "internal server error",
}

// AppError 帶code的錯誤，service層回傳，handler層轉成response
type AppError struct {
	Code Code
	Msg  string
	Err  error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code Code, msg string) *AppError {
	return &AppError{Code: code, Msg: msg}
}

func Wrap(code Code, msg string, err error) *AppError {
	return &AppError{Code: code, Msg: msg, Err: err}
}

// CodeOf 取出錯誤的code，非AppError一律視為internal error
func CodeOf(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return InternalErrorCode
}
