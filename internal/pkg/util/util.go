package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"reflect"
)

// IsNil 檢查介面是否為 nil
// 注意：這個函數會同時檢查介面的型別和值
// 只有當兩者都為 nil 時，才會返回 true
func IsNil(i interface{}) bool {
	if i == nil {
		return true
	}

	switch reflect.TypeOf(i).Kind() {
	case reflect.Ptr, reflect.Map, reflect.Array, reflect.Chan, reflect.Slice:
		return reflect.ValueOf(i).IsNil()
	}

	return false
}

// HasImplementation 檢查介面是否有具體實體值
func HasImplementation(i interface{}) bool {
	if i == nil {
		return false
	}
	return !reflect.ValueOf(i).IsZero()
}

// RandomDigits 產生固定長度的隨機數字字串
func RandomDigits(n int) (string, error) {
	max := big.NewInt(10)
	digits := make([]byte, n)
	for i := 0; i < n; i++ {
		v, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + v.Int64())
	}
	return string(digits), nil
}

// GenerateOrderNumber 訂單編號，prefix + 6位隨機數字
func GenerateOrderNumber(prefix string) (string, error) {
	suffix, err := RandomDigits(6)
	if err != nil {
		return "", fmt.Errorf("failed to generate order number: %w", err)
	}
	return prefix + suffix, nil
}
