package cache

import (
	"context"
	"errors"
)

// ErrMiss 表示缓存未命中。
// 未命中不代表别名不存在，存储层才是事实来源。
var ErrMiss = errors.New("cache: 未命中")

// Cache 别名到长链接的缓存。
// 所有实现都是尽力而为：读失败按未命中处理，写失败由调用方记日志后忽略。
type Cache interface {
	Get(ctx context.Context, alias string) (string, error)
	Set(ctx context.Context, alias string, longURL string) error
}
