package store

import (
	"context"
	"errors"

	"shortlink-insight/internal/model"
)

var (
	// ErrAliasConflict 表示别名已被占用，与一般的存储错误区分开，
	// 让上层可以选择换别名重试还是直接拒绝请求
	ErrAliasConflict = errors.New("store: 别名已存在")
	// ErrNotFound 表示记录不存在
	ErrNotFound = errors.New("store: 记录不存在")
)

// Store 短链接的持久化存储，是别名唯一性的唯一裁决点
type Store interface {
	// CreateIfAliasFree 原子地校验别名唯一性并写入记录。
	// 并发创建相同别名时只有一个成功，冲突时不留下任何残缺数据。
	CreateIfAliasFree(ctx context.Context, record *model.ShortURL) error
	// FindByAlias 按别名查找记录，点击事件按写入顺序加载
	FindByAlias(ctx context.Context, alias string) (*model.ShortURL, error)
	// FindByTopic 查找某主题下的全部记录，没有匹配时返回空切片
	FindByTopic(ctx context.Context, topic string) ([]model.ShortURL, error)
	// FindAll 返回全部记录
	FindAll(ctx context.Context) ([]model.ShortURL, error)
	// AppendClick 向记录追加一条点击事件，追加是全有或全无的
	AppendClick(ctx context.Context, alias string, event *model.ClickEvent) error
}
