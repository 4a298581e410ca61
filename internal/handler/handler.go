package handler

import (
	"errors"
	"net/http"
	"time"

	"shortlink-insight/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ShortURLHandler 把服务层的操作和错误类别映射到 HTTP
type ShortURLHandler struct {
	shortener *service.Shortener
}

// NewShortURLHandler 创建处理器实例
func NewShortURLHandler(shortener *service.Shortener) *ShortURLHandler {
	return &ShortURLHandler{shortener: shortener}
}

// HealthCheck 健康检查
func (h *ShortURLHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
}

// CreateShortURLRequest 创建短链接的请求体，字段名沿用对外 API 约定
type CreateShortURLRequest struct {
	LongURL     string `json:"longUrl" binding:"required,url" example:"https://github.com/gin-gonic/gin"`
	CustomAlias string `json:"customAlias" binding:"omitempty,max=16" example:"mylink"`
	Topic       string `json:"topic" binding:"omitempty,max=100" example:"campaign-2026"`
}

// CreateShortURLResponse 创建成功的响应
type CreateShortURLResponse struct {
	Alias     string    `json:"alias" example:"xK9fQ2"`
	ShortURL  string    `json:"shortUrl" example:"http://localhost:8080/xK9fQ2"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateShortURL 创建短链接
func (h *ShortURLHandler) CreateShortURL(c *gin.Context) {
	var req CreateShortURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求数据: " + err.Error()})
		return
	}

	result, err := h.shortener.Create(c.Request.Context(), req.LongURL, req.CustomAlias, req.Topic)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "长链接不能为空"})
		case errors.Is(err, service.ErrAliasTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "自定义别名已被占用"})
		case errors.Is(err, service.ErrAliasSpaceExhausted):
			zap.S().Errorf("别名生成重试耗尽: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "短码生成失败，请稍后重试"})
		default:
			zap.S().Errorf("创建短链接失败: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		}
		return
	}

	c.JSON(http.StatusCreated, CreateShortURLResponse{
		Alias:     result.Alias,
		ShortURL:  "http://" + c.Request.Host + "/" + result.Alias,
		CreatedAt: result.CreatedAt,
	})
}

// Redirect 解析别名并跳转到原始链接
func (h *ShortURLHandler) Redirect(c *gin.Context) {
	aliasKey := c.Param("alias")

	longURL, err := h.shortener.Resolve(c.Request.Context(), aliasKey, service.RequestContext{
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	})
	if err != nil {
		if errors.Is(err, service.ErrAliasNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "短链接不存在"})
			return
		}
		zap.S().Errorf("解析短链接失败 alias=%s: %v", aliasKey, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}

	c.Redirect(http.StatusFound, longURL)
}

// OverallAnalytics 全量统计
func (h *ShortURLHandler) OverallAnalytics(c *gin.Context) {
	report, err := h.shortener.OverallAnalytics(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoData) {
			c.JSON(http.StatusNotFound, gin.H{"error": "暂无数据"})
			return
		}
		zap.S().Errorf("查询全量统计失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// AliasAnalytics 单条短链接的统计
func (h *ShortURLHandler) AliasAnalytics(c *gin.Context) {
	aliasKey := c.Param("alias")

	report, err := h.shortener.AliasAnalytics(c.Request.Context(), aliasKey)
	if err != nil {
		if errors.Is(err, service.ErrAliasNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "短链接不存在"})
			return
		}
		zap.S().Errorf("查询短链接统计失败 alias=%s: %v", aliasKey, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// TopicAnalytics 主题维度的汇总统计
func (h *ShortURLHandler) TopicAnalytics(c *gin.Context) {
	topic := c.Param("topic")

	report, err := h.shortener.TopicAnalytics(c.Request.Context(), topic)
	if err != nil {
		if errors.Is(err, service.ErrNoData) {
			c.JSON(http.StatusNotFound, gin.H{"error": "该主题下没有短链接"})
			return
		}
		zap.S().Errorf("查询主题统计失败 topic=%s: %v", topic, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}
	c.JSON(http.StatusOK, report)
}
