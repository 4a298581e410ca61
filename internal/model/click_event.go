package model

import (
	"time"
)

// ClickEvent 一次重定向的访问记录，只追加，落库后不再修改
type ClickEvent struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	ShortURLID uint      `gorm:"not null;index" json:"short_url_id"`
	Timestamp  time.Time `gorm:"not null" json:"timestamp"`
	IP         string    `gorm:"size:45" json:"ip"`
	OS         string    `gorm:"size:100" json:"os"`
	Device     string    `gorm:"size:100" json:"device"`
	Browser    string    `gorm:"size:100" json:"browser"`
}

func (ClickEvent) TableName() string {
	return "click_events"
}
