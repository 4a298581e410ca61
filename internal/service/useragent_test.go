package service

import (
	"testing"

	"shortlink-insight/internal/analytics"

	"github.com/stretchr/testify/assert"
)

func TestNewClickEventFromDesktopUA(t *testing.T) {
	event := newClickEvent(RequestContext{IP: "1.2.3.4", UserAgent: chromeUA})

	assert.Equal(t, "1.2.3.4", event.IP)
	assert.Equal(t, "Windows", event.OS)
	assert.Equal(t, "Desktop", event.Device)
	assert.Contains(t, event.Browser, "Chrome")
	assert.False(t, event.Timestamp.IsZero())
}

func TestNewClickEventFromMobileUA(t *testing.T) {
	const iphoneUA = "Mozilla/5.0 (iPhone; CPU iPhone OS 18_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/18.0 Mobile/15E148 Safari/604.1"

	event := newClickEvent(RequestContext{IP: "5.6.7.8", UserAgent: iphoneUA})

	assert.Equal(t, "Mobile", event.Device)
	assert.Equal(t, "iOS", event.OS)
}

func TestNewClickEventFromEmptyUA(t *testing.T) {
	event := newClickEvent(RequestContext{IP: "9.9.9.9", UserAgent: ""})

	assert.Equal(t, analytics.Unknown, event.OS, "无法识别的 UA 应记为 Unknown")
	assert.Equal(t, analytics.Unknown, event.Device)
	assert.Equal(t, analytics.Unknown, event.Browser)
}
