package analytics

import (
	"testing"
	"time"

	"shortlink-insight/internal/model"

	"github.com/stretchr/testify/assert"
)

func eventAt(ts time.Time, ip string) model.ClickEvent {
	return model.ClickEvent{Timestamp: ts, IP: ip}
}

func TestClicksByDate(t *testing.T) {
	now := time.Date(2026, 8, 27, 15, 0, 0, 0, time.UTC)
	events := []model.ClickEvent{
		eventAt(now, "1.1.1.1"),
		eventAt(now.Add(-2 * time.Hour), "2.2.2.2"),
		eventAt(now.AddDate(0, 0, -3), "1.1.1.1"),
		// 窗口之外的事件不应被计入
		eventAt(now.AddDate(0, 0, -10), "3.3.3.3"),
	}

	buckets := ClicksByDate(events, now, DefaultWindowDays)

	assert.Len(t, buckets, 7, "无论输入多少事件都应返回 7 个桶")
	assert.Equal(t, "2026-08-21", buckets[0].Date, "最旧的日期应排在最前")
	assert.Equal(t, "2026-08-27", buckets[6].Date, "最后一个桶应是今天")
	assert.Equal(t, 2, buckets[6].Count)
	assert.Equal(t, 1, buckets[3].Count, "三天前的事件应落入对应的桶")

	// 日期严格按天递增
	for i := 1; i < len(buckets); i++ {
		prev, _ := time.Parse(DateLayout, buckets[i-1].Date)
		cur, _ := time.Parse(DateLayout, buckets[i].Date)
		assert.Equal(t, 24*time.Hour, cur.Sub(prev), "相邻桶的日期应相差一天")
	}

	total := 0
	for _, b := range buckets {
		assert.GreaterOrEqual(t, b.Count, 0)
		total += b.Count
	}
	assert.Equal(t, 3, total, "窗口内的事件总数应为 3")
}

func TestClicksByDateEmpty(t *testing.T) {
	now := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)

	buckets := ClicksByDate(nil, now, DefaultWindowDays)

	assert.Len(t, buckets, 7, "没有事件时也应返回 7 个桶")
	for _, b := range buckets {
		assert.Zero(t, b.Count, "没有事件时每个桶的计数都应为 0")
	}
}

func TestGroupByField(t *testing.T) {
	now := time.Now()
	events := []model.ClickEvent{
		{Timestamp: now, IP: "1.1.1.1", OS: "Windows"},
		{Timestamp: now, IP: "1.1.1.1", OS: "Windows"},
		{Timestamp: now, IP: "2.2.2.2", OS: "Windows"},
		{Timestamp: now, IP: "3.3.3.3", OS: "macOS"},
		// OS 为空应归入 Unknown
		{Timestamp: now, IP: "4.4.4.4"},
	}

	stats := GroupByField(events, func(e model.ClickEvent) string { return e.OS })

	assert.Len(t, stats, 3)

	byName := make(map[string]FieldStat)
	sum := 0
	for _, s := range stats {
		byName[s.Name] = s
		sum += s.UniqueClicks
	}
	assert.Equal(t, len(events), sum, "各分组的点击数之和应等于输入事件数")

	assert.Equal(t, 3, byName["Windows"].UniqueClicks)
	assert.Equal(t, 2, byName["Windows"].UniqueUsers, "Windows 下只有两个不同 IP")
	assert.Equal(t, 1, byName["macOS"].UniqueClicks)
	assert.Equal(t, 1, byName[Unknown].UniqueClicks, "空值应归入 Unknown")
}

func TestUniqueUsers(t *testing.T) {
	now := time.Now()
	events := []model.ClickEvent{
		eventAt(now, "1.2.3.4"),
		eventAt(now, "1.2.3.4"),
		eventAt(now, "5.6.7.8"),
	}

	assert.Equal(t, 2, UniqueUsers(events))
	assert.Zero(t, UniqueUsers(nil))
}
