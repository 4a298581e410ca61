package service

import (
	"time"

	"shortlink-insight/internal/analytics"
	"shortlink-insight/internal/model"

	"github.com/mileusna/useragent"
)

// newClickEvent 从请求上下文推导点击事件，
// 无法识别的 os/device/browser 统一记为 Unknown
func newClickEvent(req RequestContext) *model.ClickEvent {
	ua := useragent.Parse(req.UserAgent)

	osName := ua.OS
	if osName == "" {
		osName = analytics.Unknown
	}

	device := analytics.Unknown
	switch {
	case ua.Mobile:
		device = "Mobile"
	case ua.Tablet:
		device = "Tablet"
	case ua.Bot:
		device = "Bot"
	case ua.Desktop:
		device = "Desktop"
	}

	browser := ua.Name
	if browser == "" {
		browser = analytics.Unknown
	} else if ua.Version != "" {
		browser = browser + " " + ua.Version
	}

	return &model.ClickEvent{
		Timestamp: time.Now(),
		IP:        req.IP,
		OS:        osName,
		Device:    device,
		Browser:   browser,
	}
}
