// Package analytics 提供对点击事件的纯内存聚合。
// 这里的函数无状态、无 I/O，所有统计查询都由这几个原语组合出来。
package analytics

import (
	"sort"
	"time"

	"shortlink-insight/internal/model"
)

const (
	// DateLayout 按日聚合使用的日期格式，等价于 ISO 时间戳的日期前缀
	DateLayout = "2006-01-02"
	// DefaultWindowDays 按日统计的默认窗口（含今天）
	DefaultWindowDays = 7
	// Unknown 无法识别的 os/device/browser 统一记为该值
	Unknown = "Unknown"
)

// DateCount 某一天的点击数
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// FieldStat 某个字段取值下的点击统计
type FieldStat struct {
	Name         string `json:"name"`
	UniqueClicks int    `json:"uniqueClicks"`
	UniqueUsers  int    `json:"uniqueUsers"`
}

// ClicksByDate 统计以 now 所在日期为末尾的最近 days 天的按日点击数，
// 最旧的日期在前，没有点击的日期也会出现且计数为 0。
// 日期比较按时间戳自身时区的日历日，不做时区换算。
func ClicksByDate(events []model.ClickEvent, now time.Time, days int) []DateCount {
	counts := make(map[string]int, days)
	for _, e := range events {
		counts[e.Timestamp.Format(DateLayout)]++
	}

	buckets := make([]DateCount, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format(DateLayout)
		buckets = append(buckets, DateCount{Date: date, Count: counts[date]})
	}
	return buckets
}

// GroupByField 按 field 选出的取值对事件分组，空值归入 Unknown。
// 每组统计总点击数和去重后的访问 IP 数，结果按取值排序以保证输出稳定。
func GroupByField(events []model.ClickEvent, field func(model.ClickEvent) string) []FieldStat {
	type group struct {
		clicks int
		users  map[string]struct{}
	}
	groups := make(map[string]*group)
	for _, e := range events {
		name := field(e)
		if name == "" {
			name = Unknown
		}
		g := groups[name]
		if g == nil {
			g = &group{users: make(map[string]struct{})}
			groups[name] = g
		}
		g.clicks++
		g.users[e.IP] = struct{}{}
	}

	stats := make([]FieldStat, 0, len(groups))
	for name, g := range groups {
		stats = append(stats, FieldStat{Name: name, UniqueClicks: g.clicks, UniqueUsers: len(g.users)})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })
	return stats
}

// UniqueUsers 统计去重后的访问 IP 数
func UniqueUsers(events []model.ClickEvent) int {
	ips := make(map[string]struct{}, len(events))
	for _, e := range events {
		ips[e.IP] = struct{}{}
	}
	return len(ips)
}
