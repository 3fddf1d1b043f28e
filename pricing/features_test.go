package pricing

import (
	"reflect"
	"testing"
)

var testColumns = []string{
	"剩餘保存期限_小時", "原價", "當下溫度", "貨架上庫存量",
	"商品大類_肉類", "商品大類_魚類", "商品大類_蔬果類", "商品大類_其他",
	"人流量_少", "人流量_一般", "人流量_多",
	"天氣_晴天", "天氣_陰天", "天氣_雨天",
	"停車狀況_少", "停車狀況_一般", "停車狀況_多",
}

func fixedBuilder(t *testing.T) *FeatureBuilder {
	t.Helper()
	b, err := NewFeatureBuilder(testColumns, FixedContextProvider{Ctx: DefaultContext()})
	if err != nil {
		t.Fatalf("构建 FeatureBuilder 失败: %v", err)
	}
	return b
}

func TestBuildMatchesDeclaredSchema(t *testing.T) {
	b := fixedBuilder(t)

	rows := []FeatureRow{
		{RemainingHours: 13.5, ListedPrice: 120, Category: CategoryMeat, Ctx: DefaultContext()},
	}
	matrix, err := b.Build(rows)
	if err != nil {
		t.Fatalf("Build 失败: %v", err)
	}
	if len(matrix) != 1 || len(matrix[0]) != len(testColumns) {
		t.Fatalf("矩阵维度错误: %dx%d", len(matrix), len(matrix[0]))
	}

	vec := matrix[0]
	if vec[0] != 13.5 || vec[1] != 120 || vec[2] != 25 || vec[3] != 10 {
		t.Fatalf("数值特征错误: %v", vec[:4])
	}
	// 肉類 one-hot 命中，其余大类为 0
	if vec[4] != 1 || vec[5] != 0 || vec[6] != 0 || vec[7] != 0 {
		t.Fatalf("大类 one-hot 错误: %v", vec[4:8])
	}
	// 默认环境: 人流量一般 / 晴天 / 停车一般
	if vec[9] != 1 || vec[11] != 1 || vec[15] != 1 {
		t.Fatalf("环境 one-hot 错误: %v", vec[8:])
	}
}

// 批次里没出现的大类也必须有列，补 0
func TestBuildUnseenCategoryColumnZero(t *testing.T) {
	b := fixedBuilder(t)
	rows := []FeatureRow{
		{RemainingHours: 1, ListedPrice: 50, Category: CategoryBakery, Ctx: DefaultContext()},
	}
	matrix, err := b.Build(rows)
	if err != nil {
		t.Fatalf("Build 失败: %v", err)
	}
	// 麵包甜點類不在声明列里，声明的四个大类全为 0
	for i := 4; i <= 7; i++ {
		if matrix[0][i] != 0 {
			t.Fatalf("未声明大类不应命中任何 one-hot: %v", matrix[0][4:8])
		}
	}
}

// 固定环境信号下，同一批输入两次构建结果必须一致
func TestBuildDeterministic(t *testing.T) {
	b := fixedBuilder(t)
	rows := []FeatureRow{
		{RemainingHours: 6, ListedPrice: 200, Category: CategorySeafood, Ctx: DefaultContext()},
		{RemainingHours: 48, ListedPrice: 35, Category: CategoryOther, Ctx: DefaultContext()},
	}

	first, err := b.Build(rows)
	if err != nil {
		t.Fatalf("第一次 Build 失败: %v", err)
	}
	second, err := b.Build(rows)
	if err != nil {
		t.Fatalf("第二次 Build 失败: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("同输入两次构建的特征矩阵不一致")
	}
}

// 空批次也要能构建（返回空矩阵，不报错）
func TestBuildEmptyBatch(t *testing.T) {
	b := fixedBuilder(t)
	matrix, err := b.Build(nil)
	if err != nil {
		t.Fatalf("空批次 Build 失败: %v", err)
	}
	if len(matrix) != 0 {
		t.Fatalf("空批次应返回空矩阵，得到 %d 行", len(matrix))
	}
}

// 模型声明了造不出来的列，构建期就要炸
func TestNewFeatureBuilderUnknownColumn(t *testing.T) {
	cols := append([]string{}, testColumns...)
	cols = append(cols, "店長心情_好")
	if _, err := NewFeatureBuilder(cols, FixedContextProvider{Ctx: DefaultContext()}); err == nil {
		t.Fatal("未知特征列应报错")
	}
}

// 列名里的空白要被归一掉
func TestColumnWhitespaceNormalized(t *testing.T) {
	b, err := NewFeatureBuilder([]string{"原價", "商品大類_ 肉類"}, FixedContextProvider{Ctx: DefaultContext()})
	if err != nil {
		t.Fatalf("带空白的列名应能构建: %v", err)
	}
	matrix, err := b.Build([]FeatureRow{{ListedPrice: 10, Category: CategoryMeat, Ctx: DefaultContext()}})
	if err != nil {
		t.Fatalf("Build 失败: %v", err)
	}
	if matrix[0][1] != 1 {
		t.Fatalf("归一后的列应命中 one-hot: %v", matrix[0])
	}
}
