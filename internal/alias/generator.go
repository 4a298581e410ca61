package alias

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// Charset 包含用于生成别名的所有字符
	Charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// Length 是生成的别名的固定长度
	Length = 6
)

// Generator 负责生成随机别名。
// 生成结果不保证全局唯一，唯一性由调用方对存储层校验并在冲突时重新生成。
type Generator struct{}

// NewGenerator 创建一个新的别名生成器实例
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate 使用加密安全的随机数生成器生成一个固定长度的别名
func (g *Generator) Generate() (string, error) {
	b := make([]byte, Length)
	for i := range b {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(Charset))))
		if err != nil {
			return "", fmt.Errorf("生成随机数失败: %w", err)
		}
		b[i] = Charset[num.Int64()]
	}
	return string(b), nil
}
