package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"shortlink-insight/internal/alias"
	"shortlink-insight/internal/cache"
	"shortlink-insight/internal/model"
	"shortlink-insight/internal/service"
	"shortlink-insight/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36"

var dbSeq int64

// setupTest 为集成测试初始化一个干净的环境，返回配置好的路由和清理函数
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handlertest%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "无法连接到内存数据库")
	require.NoError(t, db.AutoMigrate(&model.ShortURL{}, &model.ClickEvent{}), "数据库迁移失败")

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	shortener := service.NewShortener(store.NewGormStore(db), cache.NewMemory(), alias.NewGenerator(), zap.NewNop().Sugar())
	h := NewShortURLHandler(shortener)

	router := gin.New()
	router.GET("/health", h.HealthCheck)
	router.GET("/:alias", h.Redirect)
	router.POST("/api/shorten", h.CreateShortURL)
	router.GET("/api/analytics/overall", h.OverallAnalytics)
	router.GET("/api/analytics/topic/:topic", h.TopicAnalytics)
	router.GET("/api/analytics/:alias", h.AliasAnalytics)
	return router
}

func doCreate(t *testing.T, router *gin.Engine, body CreateShortURLRequest) *httptest.ResponseRecorder {
	t.Helper()
	bodyBytes, err := json.Marshal(body)
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodPost, "/api/shorten", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doRedirect(t *testing.T, router *gin.Engine, aliasKey, clientIP string) *httptest.ResponseRecorder {
	t.Helper()
	req, _ := http.NewRequest(http.MethodGet, "/"+aliasKey, nil)
	req.Header.Set("User-Agent", testUA)
	req.RemoteAddr = clientIP + ":4321"

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateAndRedirect(t *testing.T) {
	router := setupTest(t)

	originalURL := "https://www.example.com/very/long/path/that/needs/shortening"
	w := doCreate(t, router, CreateShortURLRequest{LongURL: originalURL})
	assert.Equal(t, http.StatusCreated, w.Code, "创建短链接时状态码应为 201")

	var createResp CreateShortURLResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResp))
	assert.Len(t, createResp.Alias, 6, "自动生成的别名应为 6 位")
	assert.True(t, len(createResp.ShortURL) > 6, "响应中应包含完整短链接")
	assert.False(t, createResp.CreatedAt.IsZero())

	w = doRedirect(t, router, createResp.Alias, "1.2.3.4")
	assert.Equal(t, http.StatusFound, w.Code, "访问别名时状态码应为 302")
	assert.Equal(t, originalURL, w.Header().Get("Location"), "重定向地址应与原始链接一致")
}

func TestCreateRejectsInvalidBody(t *testing.T) {
	router := setupTest(t)

	w := doCreate(t, router, CreateShortURLRequest{LongURL: "not-a-url"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCustomAliasConflict(t *testing.T) {
	router := setupTest(t)

	w := doCreate(t, router, CreateShortURLRequest{LongURL: "https://example.com", CustomAlias: "mylink"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doCreate(t, router, CreateShortURLRequest{LongURL: "https://other.example", CustomAlias: "mylink"})
	assert.Equal(t, http.StatusConflict, w.Code, "占用的自定义别名应返回 409")
}

func TestRedirectUnknownAlias(t *testing.T) {
	router := setupTest(t)

	w := doRedirect(t, router, "zzzzzz", "1.2.3.4")
	assert.Equal(t, http.StatusNotFound, w.Code, "不存在的别名应返回 404")
}

func TestAliasAnalyticsEndpoint(t *testing.T) {
	router := setupTest(t)

	w := doCreate(t, router, CreateShortURLRequest{LongURL: "https://example.com", CustomAlias: "stats1"})
	require.Equal(t, http.StatusCreated, w.Code)

	// 两个不同客户端各访问一次
	require.Equal(t, http.StatusFound, doRedirect(t, router, "stats1", "1.2.3.4").Code)
	require.Equal(t, http.StatusFound, doRedirect(t, router, "stats1", "5.6.7.8").Code)

	req, _ := http.NewRequest(http.MethodGet, "/api/analytics/stats1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var report struct {
		TotalClicks  int `json:"totalClicks"`
		UniqueUsers  int `json:"uniqueUsers"`
		ClicksByDate []struct {
			Date  string `json:"date"`
			Count int    `json:"count"`
		} `json:"clicksByDate"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 2, report.TotalClicks)
	assert.Equal(t, 2, report.UniqueUsers, "两个不同 IP 应计为两个用户")
	assert.Len(t, report.ClicksByDate, 7)
}

func TestTopicAnalyticsNoData(t *testing.T) {
	router := setupTest(t)

	req, _ := http.NewRequest(http.MethodGet, "/api/analytics/topic/nothing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code, "没有匹配主题时应返回 404")
}

func TestOverallAnalyticsNoData(t *testing.T) {
	router := setupTest(t)

	req, _ := http.NewRequest(http.MethodGet, "/api/analytics/overall", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
