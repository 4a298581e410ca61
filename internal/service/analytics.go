package service

import (
	"context"
	"errors"
	"time"

	"shortlink-insight/internal/analytics"
	"shortlink-insight/internal/model"
	"shortlink-insight/internal/store"
)

// OverallReport 全量统计
type OverallReport struct {
	TotalURLs       int                   `json:"totalUrls"`
	TotalClicks     int                   `json:"totalClicks"`
	UniqueUsers     int                   `json:"uniqueUsers"`
	ClicksByDate    []analytics.DateCount `json:"clicksByDate"`
	OSBreakdown     []analytics.FieldStat `json:"osType"`
	DeviceBreakdown []analytics.FieldStat `json:"deviceType"`
}

// AliasReport 单条短链接的统计
type AliasReport struct {
	TotalClicks     int                   `json:"totalClicks"`
	UniqueUsers     int                   `json:"uniqueUsers"`
	ClicksByDate    []analytics.DateCount `json:"clicksByDate"`
	OSBreakdown     []analytics.FieldStat `json:"osType"`
	DeviceBreakdown []analytics.FieldStat `json:"deviceType"`
}

// TopicURLStat 主题下单条短链接的统计
type TopicURLStat struct {
	Alias       string `json:"alias"`
	TotalClicks int    `json:"totalClicks"`
	UniqueUsers int    `json:"uniqueUsers"`
}

// TopicReport 主题维度的汇总统计
type TopicReport struct {
	TotalClicks  int                   `json:"totalClicks"`
	UniqueUsers  int                   `json:"uniqueUsers"`
	ClicksByDate []analytics.DateCount `json:"clicksByDate"`
	URLs         []TopicURLStat        `json:"urls"`
}

// OverallAnalytics 汇总所有短链接的统计，一条记录都没有时返回 ErrNoData
func (s *Shortener) OverallAnalytics(ctx context.Context) (*OverallReport, error) {
	records, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoData
	}

	events := poolEvents(records)
	return &OverallReport{
		TotalURLs:       len(records),
		TotalClicks:     len(events),
		UniqueUsers:     analytics.UniqueUsers(events),
		ClicksByDate:    analytics.ClicksByDate(events, time.Now(), analytics.DefaultWindowDays),
		OSBreakdown:     analytics.GroupByField(events, osOf),
		DeviceBreakdown: analytics.GroupByField(events, deviceOf),
	}, nil
}

// AliasAnalytics 返回单条短链接的统计，别名不存在时返回 ErrAliasNotFound
func (s *Shortener) AliasAnalytics(ctx context.Context, aliasKey string) (*AliasReport, error) {
	record, err := s.store.FindByAlias(ctx, aliasKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrAliasNotFound
	}
	if err != nil {
		return nil, err
	}

	events := record.Clicks
	return &AliasReport{
		TotalClicks:     len(events),
		UniqueUsers:     analytics.UniqueUsers(events),
		ClicksByDate:    analytics.ClicksByDate(events, time.Now(), analytics.DefaultWindowDays),
		OSBreakdown:     analytics.GroupByField(events, osOf),
		DeviceBreakdown: analytics.GroupByField(events, deviceOf),
	}, nil
}

// TopicAnalytics 汇总某主题下所有短链接的统计，没有匹配时返回 ErrNoData
func (s *Shortener) TopicAnalytics(ctx context.Context, topic string) (*TopicReport, error) {
	records, err := s.store.FindByTopic(ctx, topic)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoData
	}

	urls := make([]TopicURLStat, 0, len(records))
	for _, record := range records {
		urls = append(urls, TopicURLStat{
			Alias:       record.Alias,
			TotalClicks: len(record.Clicks),
			UniqueUsers: analytics.UniqueUsers(record.Clicks),
		})
	}

	events := poolEvents(records)
	return &TopicReport{
		TotalClicks:  len(events),
		UniqueUsers:  analytics.UniqueUsers(events),
		ClicksByDate: analytics.ClicksByDate(events, time.Now(), analytics.DefaultWindowDays),
		URLs:         urls,
	}, nil
}

// poolEvents 把多条记录的点击事件汇总成一个序列，
// 不去重也不重排，保证汇总结果和逐条统计一致
func poolEvents(records []model.ShortURL) []model.ClickEvent {
	total := 0
	for _, r := range records {
		total += len(r.Clicks)
	}
	events := make([]model.ClickEvent, 0, total)
	for _, r := range records {
		events = append(events, r.Clicks...)
	}
	return events
}

func osOf(e model.ClickEvent) string     { return e.OS }
func deviceOf(e model.ClickEvent) string { return e.Device }
