package apiutil

import (
	"encoding/json"
	"net/http"

	"github.com/luxoptic/optistore/internal/pkg/errs"
)

// Response 統一回應格式
type Response struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type ResponseError struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func SuccessJSON(w http.ResponseWriter, data any, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(Response{Data: data, Message: msg})
}

func CreatedJSON(w http.ResponseWriter, data any, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(Response{Data: data, Message: msg})
}

func ErrorJSON(w http.ResponseWriter, code int, err error, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := ResponseError{Message: msg}
	if err != nil {
		resp.Error = err.Error()
	}
	json.NewEncoder(w).Encode(resp)
}

// ErrorFromService service層錯誤統一轉response
func ErrorFromService(w http.ResponseWriter, err error) {
	code := errs.CodeOf(err)
	ErrorJSON(w, int(code), err, errs.ErrStrMap[code])
}
