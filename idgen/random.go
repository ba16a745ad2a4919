// Package idgen 提供模拟运行 ID 的生成.
package idgen

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
)

// ErrInvalidLength 长度必须为正偶数.
var ErrInvalidLength = errors.New("id length must be a positive even number")

// GenerateRandomID 生成指定长度的随机十六进制字符串 ID.
func GenerateRandomID(length int) (string, error) {
	if length <= 0 || length%2 != 0 {
		return "", ErrInvalidLength
	}
	bytes := make([]byte, length/2)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
