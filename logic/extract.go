package logic

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Julie983186/DynamicPricing/pricing"
)

// 价签字段抽取的正则，规则在行动端实测过：
// 原价只认带"元"的数字，折扣价认 $ 开头的数字取最低。
var (
	datePattern        = regexp.MustCompile(`(\d{4})[.\-/](\d{1,2})[.\-/](\d{1,2})`)
	listedPricePattern = regexp.MustCompile(`(\d+)\s*元`)
	promoPricePattern  = regexp.MustCompile(`\$\s*(\d+)`)
)

// TagInfo 从一张价签的 OCR 文本行里抽出来的字段
type TagInfo struct {
	Name       string
	ExpireDate string // 标准化为 YYYY-MM-DD，抓不到为空
	Price      float64
	ProPrice   float64
}

// ExtractTagInfo 从 OCR 文本行抽取商品字段。
// 抽不到的字段留零值，由上层按默认值降级，不报错。
func ExtractTagInfo(lines []string) TagInfo {
	var info TagInfo
	fullText := strings.Join(lines, "\n")

	// 商品名称：第一行含大类关键字的文本
	for _, line := range lines {
		if pricing.HasCategoryKeyword(line) {
			info.Name = strings.TrimSpace(line)
			break
		}
	}

	// 有效日期：全文第一个日期样式，统一成 YYYY-MM-DD
	if m := datePattern.FindStringSubmatch(fullText); m != nil {
		year, month, day := m[1], m[2], m[3]
		if len(month) == 1 {
			month = "0" + month
		}
		if len(day) == 1 {
			day = "0" + day
		}
		info.ExpireDate = year + "-" + month + "-" + day
	}

	// 原价：所有"N元"里取最后一个（价签版面上原价通常排最后）
	for _, line := range lines {
		for _, m := range listedPricePattern.FindAllStringSubmatch(line, -1) {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				info.Price = v
			}
		}
	}

	// 折扣价：所有"$N"里取最低
	for _, line := range lines {
		for _, m := range promoPricePattern.FindAllStringSubmatch(line, -1) {
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			if info.ProPrice == 0 || v < info.ProPrice {
				info.ProPrice = v
			}
		}
	}

	return info
}
