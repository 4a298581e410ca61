package model

import (
	"time"
)

// ShortURL 短链接记录，Alias 是全局唯一的查找键
type ShortURL struct {
	ID        uint         `gorm:"primarykey" json:"id"`
	Alias     string       `gorm:"size:16;uniqueIndex;not null" json:"alias"`
	LongURL   string       `gorm:"type:text;not null" json:"long_url"`
	Topic     string       `gorm:"size:100;index" json:"topic,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	Clicks    []ClickEvent `gorm:"foreignKey:ShortURLID" json:"clicks,omitempty"`
}

// TableName 指定表名
func (ShortURL) TableName() string {
	return "short_urls"
}
