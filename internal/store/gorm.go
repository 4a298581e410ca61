package store

import (
	"context"
	"errors"
	"fmt"

	"shortlink-insight/internal/model"

	"gorm.io/gorm"
)

// GormStore 基于 gorm 的 Store 实现。
// 别名唯一性由 short_urls.alias 上的唯一索引保证，
// 需要以 TranslateError 打开数据库连接，冲突才能翻译成 gorm.ErrDuplicatedKey。
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 创建存储实例
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateIfAliasFree(ctx context.Context, record *model.ShortURL) error {
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAliasConflict
		}
		return fmt.Errorf("写入短链接记录失败: %w", err)
	}
	return nil
}

func (s *GormStore) FindByAlias(ctx context.Context, alias string) (*model.ShortURL, error) {
	var record model.ShortURL
	err := s.db.WithContext(ctx).
		Preload("Clicks", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("alias = ?", alias).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询短链接记录失败: %w", err)
	}
	return &record, nil
}

func (s *GormStore) FindByTopic(ctx context.Context, topic string) ([]model.ShortURL, error) {
	var records []model.ShortURL
	err := s.db.WithContext(ctx).
		Preload("Clicks", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("topic = ?", topic).
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("按主题查询失败: %w", err)
	}
	return records, nil
}

func (s *GormStore) FindAll(ctx context.Context) ([]model.ShortURL, error) {
	var records []model.ShortURL
	err := s.db.WithContext(ctx).
		Preload("Clicks", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("查询全部记录失败: %w", err)
	}
	return records, nil
}

func (s *GormStore) AppendClick(ctx context.Context, alias string, event *model.ClickEvent) error {
	var record model.ShortURL
	err := s.db.WithContext(ctx).Select("id").Where("alias = ?", alias).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("查询短链接记录失败: %w", err)
	}

	event.ShortURLID = record.ID
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("写入点击事件失败: %w", err)
	}
	return nil
}
