package pricing

import "testing"

func TestResolveCategory(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"雞三節翅", CategoryMeat},
		{"鮭魚切片", CategorySeafood},
		{"有機秋葵", CategoryProduce},
		{"法式可頌", CategoryBakery},
		{"板豆腐", CategoryBean},
		{"鮪魚飯糰", CategorySeafood}, // 先命中魚類，顺序优先
		{"日式涼麵", CategoryReadyToEat},
		{"礦泉水", CategoryOther},
		{"", CategoryOther},
	}
	for _, c := range cases {
		if got := ResolveCategory(c.name); got != c.want {
			t.Errorf("ResolveCategory(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

// 纯函数：同输入永远同输出
func TestResolveCategoryIdempotent(t *testing.T) {
	for i := 0; i < 10; i++ {
		if got := ResolveCategory("雞三節翅"); got != CategoryMeat {
			t.Fatalf("第 %d 次解析结果不稳定: %q", i, got)
		}
	}
}

func TestHasCategoryKeyword(t *testing.T) {
	if !HasCategoryKeyword("特價 鮭魚 200元") {
		t.Error("含关键字的行应命中")
	}
	if HasCategoryKeyword("2025.10.18") {
		t.Error("纯日期行不应命中")
	}
}
