package pricing

import "strings"

// 商品大类（封闭枚举，与模型训练时的 one-hot 列一致）
const (
	CategoryMeat       = "肉類"
	CategorySeafood    = "魚類"
	CategoryProduce    = "蔬果類"
	CategoryBakery     = "麵包甜點類"
	CategoryBean       = "豆製品類"
	CategoryReadyToEat = "熟食/其他"
	CategoryOther      = "其他"
)

type categoryRule struct {
	label    string
	keywords []string
}

// 顺序即优先级，先命中先赢。
// 新增大类时只改这张表，不动解析逻辑。
var categoryTable = []categoryRule{
	{CategoryMeat, []string{
		"雞", "豬", "牛", "羊", "肉", "鴨", "翅", "腿", "排骨", "里肌", "培根", "火腿",
	}},
	{CategorySeafood, []string{
		"魚", "蝦", "蟹", "螺", "白管", "貝", "海鮮", "海帶", "魷", "鮭", "鯖", "蛤", "牡蠣",
	}},
	{CategoryProduce, []string{
		"菜", "瓜", "果", "蔬", "菇", "蘋果", "香蕉", "橘子", "葡萄", "山藥", "洋蔥",
		"芭樂", "蔥", "櫻桃", "秋葵", "梨", "柑", "柚",
	}},
	{CategoryBakery, []string{
		"吐司", "麵包", "蛋糕", "可頌", "甜甜圈", "佛卡夏", "貝果", "鬆餅", "德國結",
		"蛋塔", "法式", "餅乾", "泡芙",
	}},
	{CategoryBean, []string{
		"豆腐", "豆乾", "豆皮", "豆漿", "百頁", "豆花", "油豆腐",
	}},
	{CategoryReadyToEat, []string{
		"便當", "壽司", "沙拉", "熟食", "滷味", "飯糰", "關東煮", "涼麵", "炸物",
	}},
}

// ResolveCategory 按关键字把商品名称归到唯一的大类。
// 空名称或没命中一律归 "其他"，永远有结果。
func ResolveCategory(name string) string {
	if name == "" {
		return CategoryOther
	}
	for _, rule := range categoryTable {
		for _, kw := range rule.keywords {
			if strings.Contains(name, kw) {
				return rule.label
			}
		}
	}
	return CategoryOther
}

// HasCategoryKeyword 判断一行文本是否含任一大类关键字（OCR 抓商品名用）
func HasCategoryKeyword(line string) bool {
	return ResolveCategory(line) != CategoryOther
}
