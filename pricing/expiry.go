package pricing

import (
	"fmt"
	"strings"
	"time"
)

// 剩余时间的可读文案
const (
	ReadableUnknown = "未知"
	ReadableExpired = "已過期"
)

// 价签上 OCR 出来的日期五花八门，逐个格式尝试。
// dateOnly 的格式缺少时分秒，按当天结束（23:59:59）处理，
// 按零点算会把当天还新鲜的商品直接判成过期。
var expiryLayouts = []struct {
	layout   string
	dateOnly bool
}{
	{"2006-01-02 15:04:05", false},
	{"2006-01-02 15:04", false},
	{"2006-01-02", true},
	{"2006.01.02", true},
	{"2006/01/02", true},
}

// ParseExpiry 把原始有效期字串解析为营运时区下的时间点。
// 字串不带时区信息时视为本地时间；带时区（RFC3339）则转换过来。
// 解析失败返回 ok=false，调用方按"未知/已过期"降级，绝不报错。
func ParseExpiry(raw string, loc *time.Location) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	for _, f := range expiryLayouts {
		t, err := time.ParseInLocation(f.layout, s, loc)
		if err != nil {
			continue
		}
		if f.dateOnly {
			t = time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, loc)
		}
		return t, true
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), true
	}

	return time.Time{}, false
}

// RemainingHours 计算剩余保存小时数，已过期或解析失败一律钳到 0。
func RemainingHours(expiry time.Time, ok bool, now time.Time) float64 {
	if !ok {
		return 0
	}
	h := expiry.Sub(now).Hours()
	if h < 0 {
		return 0
	}
	return h
}

// ReadableRemaining 渲染 "X天X小時X分X秒" 的倒数文案
func ReadableRemaining(expiry time.Time, ok bool, now time.Time) string {
	if !ok {
		return ReadableUnknown
	}
	d := expiry.Sub(now)
	if d <= 0 {
		return ReadableExpired
	}

	total := int64(d.Seconds())
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%d天%d小時%d分%d秒", days, hours, minutes, seconds)
}
