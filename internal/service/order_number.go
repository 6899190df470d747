package service

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"
)

// generateOrderNumber 前缀 + 日期(YYYYMMDD) + 6 位随机数字，不做唯一性预检，冲突由唯一索引暴露
func generateOrderNumber(prefix string, now time.Time) (string, error) {
	digits, err := randNumeric(rand.Reader, 6)
	if err != nil {
		return "", err
	}
	return prefix + now.Format("20060102") + digits, nil
}

// randNumeric 读取随机源失败时直接返回错误，不以固定数字补位
func randNumeric(r io.Reader, length int) (string, error) {
	var b strings.Builder
	b.Grow(length)
	ten := big.NewInt(10)
	for i := 0; i < length; i++ {
		n, err := rand.Int(r, ten)
		if err != nil {
			return "", fmt.Errorf("read random digits: %w", err)
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}
