package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shortlink-insight/internal/cache"
	"shortlink-insight/internal/model"
	"shortlink-insight/internal/store"

	"go.uber.org/zap"
)

const (
	// maxGenerateRetries 自动生成别名时的最大重试次数
	maxGenerateRetries = 5
	// cacheTimeout 单次缓存操作的超时，超时按未命中处理
	cacheTimeout = 1 * time.Second
)

// AliasGenerator 生成候选别名，唯一性由 Shortener 对存储层校验
type AliasGenerator interface {
	Generate() (string, error)
}

// Shortener 编排创建、解析和统计三条主流程。
// 存储层是事实来源，缓存只做加速，缓存和点击记录的故障都不影响对用户可见的结果。
type Shortener struct {
	store  store.Store
	cache  cache.Cache // 可以为 nil，表示未配置缓存
	gen    AliasGenerator
	logger *zap.SugaredLogger
}

// NewShortener 创建服务实例，依赖全部显式注入
func NewShortener(st store.Store, c cache.Cache, gen AliasGenerator, logger *zap.SugaredLogger) *Shortener {
	return &Shortener{store: st, cache: c, gen: gen, logger: logger}
}

// CreateResult 创建成功后返回的别名和创建时间
type CreateResult struct {
	Alias     string
	CreatedAt time.Time
}

// Create 创建一条短链接。
// 指定 customAlias 时被占用直接失败；否则自动生成别名，
// 遇到存储层报告的冲突就换一个重新生成，重试耗尽返回 ErrAliasSpaceExhausted。
func (s *Shortener) Create(ctx context.Context, longURL, customAlias, topic string) (*CreateResult, error) {
	if strings.TrimSpace(longURL) == "" {
		return nil, ErrInvalidInput
	}

	if customAlias != "" {
		return s.createWithCustomAlias(ctx, longURL, customAlias, topic)
	}

	for i := 0; i < maxGenerateRetries; i++ {
		candidate, err := s.gen.Generate()
		if err != nil {
			return nil, fmt.Errorf("生成别名失败: %w", err)
		}

		record := &model.ShortURL{Alias: candidate, LongURL: longURL, Topic: topic}
		err = s.store.CreateIfAliasFree(ctx, record)
		if err == nil {
			s.fillCache(ctx, candidate, longURL)
			return &CreateResult{Alias: record.Alias, CreatedAt: record.CreatedAt}, nil
		}
		if errors.Is(err, store.ErrAliasConflict) {
			s.logger.Warnf("别名 %s 冲突，重新生成 (%d/%d)", candidate, i+1, maxGenerateRetries)
			continue
		}
		return nil, err
	}
	return nil, ErrAliasSpaceExhausted
}

func (s *Shortener) createWithCustomAlias(ctx context.Context, longURL, customAlias, topic string) (*CreateResult, error) {
	// 先查占用给出明确的拒绝；并发竞争漏过的由存储层唯一约束兜底
	if _, err := s.store.FindByAlias(ctx, customAlias); err == nil {
		return nil, ErrAliasTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	record := &model.ShortURL{Alias: customAlias, LongURL: longURL, Topic: topic}
	if err := s.store.CreateIfAliasFree(ctx, record); err != nil {
		if errors.Is(err, store.ErrAliasConflict) {
			return nil, ErrAliasTaken
		}
		return nil, err
	}
	s.fillCache(ctx, customAlias, longURL)
	return &CreateResult{Alias: record.Alias, CreatedAt: record.CreatedAt}, nil
}

// RequestContext 解析请求携带的客户端信息，用于生成点击事件
type RequestContext struct {
	IP        string
	UserAgent string
}

// Resolve 把别名解析成长链接：先查缓存，未命中回源存储并回填缓存，
// 然后记录一次点击。点击记录失败只记日志，不影响跳转。
func (s *Shortener) Resolve(ctx context.Context, aliasKey string, req RequestContext) (string, error) {
	longURL, hit := s.lookupCache(ctx, aliasKey)
	if !hit {
		record, err := s.store.FindByAlias(ctx, aliasKey)
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrAliasNotFound
		}
		if err != nil {
			return "", err
		}
		longURL = record.LongURL
		s.fillCache(ctx, aliasKey, longURL)
	}

	s.recordClick(ctx, aliasKey, req)
	return longURL, nil
}

// lookupCache 带超时查缓存，任何失败都按未命中处理
func (s *Shortener) lookupCache(ctx context.Context, aliasKey string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	cctx, cancel := context.WithTimeout(ctx, cacheTimeout)
	defer cancel()

	val, err := s.cache.Get(cctx, aliasKey)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warnf("缓存读取失败，按未命中处理 alias=%s: %v", aliasKey, err)
		}
		return "", false
	}
	return val, true
}

// fillCache 尽力回填缓存，失败只记日志
func (s *Shortener) fillCache(ctx context.Context, aliasKey, longURL string) {
	if s.cache == nil {
		return
	}
	cctx, cancel := context.WithTimeout(ctx, cacheTimeout)
	defer cancel()

	if err := s.cache.Set(cctx, aliasKey, longURL); err != nil {
		s.logger.Warnf("缓存写入失败 alias=%s: %v", aliasKey, err)
	}
}

// recordClick 记录一次点击事件。
// 失败会丢掉这一次统计，换取跳转始终可用。
func (s *Shortener) recordClick(ctx context.Context, aliasKey string, req RequestContext) {
	event := newClickEvent(req)
	if err := s.store.AppendClick(ctx, aliasKey, event); err != nil {
		s.logger.Errorf("记录点击事件失败 alias=%s: %v", aliasKey, err)
	}
}
