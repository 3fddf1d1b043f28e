package pricing

import (
	"fmt"
	"strings"
)

// 数值特征列名（与训练时 pandas 生成的列名一致）
const (
	colRemainingHours = "剩餘保存期限_小時"
	colListedPrice    = "原價"
	colTemperature    = "當下溫度"
	colShelfStock     = "貨架上庫存量"
)

// one-hot 列前缀
const (
	prefixCategory    = "商品大類_"
	prefixFootTraffic = "人流量_"
	prefixWeather     = "天氣_"
	prefixParking     = "停車狀況_"
)

// FeatureRow 一笔已算好派生字段的输入
type FeatureRow struct {
	RemainingHours float64
	ListedPrice    float64
	Category       string
	Ctx            StoreContext
}

// FeatureBuilder 把记录批次拼成模型要求的特征矩阵。
// 列集合必须与模型声明的输入列完全一致、顺序一致，
// 批次里没出现的取值补 0 列。
type FeatureBuilder struct {
	columns  []string
	provider ContextProvider
}

// NewFeatureBuilder 构建时就校验声明列都认得，
// 认不得的列属于配置错误，启动期就该炸出来。
func NewFeatureBuilder(declaredColumns []string, provider ContextProvider) (*FeatureBuilder, error) {
	cols := make([]string, len(declaredColumns))
	for i, c := range declaredColumns {
		// 去掉生成列名里的空白，不同平台渲染出的列名才对得上
		cols[i] = stripWhitespace(c)
		if err := checkColumn(cols[i]); err != nil {
			return nil, err
		}
	}
	return &FeatureBuilder{columns: cols, provider: provider}, nil
}

// Columns 返回矩阵的列顺序（即模型声明顺序）
func (b *FeatureBuilder) Columns() []string {
	return b.columns
}

// Build 产出 len(rows) x len(columns) 的特征矩阵
func (b *FeatureBuilder) Build(rows []FeatureRow) ([][]float64, error) {
	matrix := make([][]float64, len(rows))
	for i, row := range rows {
		vec := make([]float64, len(b.columns))
		for j, col := range b.columns {
			v, err := featureValue(col, row)
			if err != nil {
				return nil, err
			}
			vec[j] = v
		}
		matrix[i] = vec
	}
	return matrix, nil
}

// SampleContext 给一笔记录取环境信号
func (b *FeatureBuilder) SampleContext() StoreContext {
	return b.provider.Sample()
}

func featureValue(col string, row FeatureRow) (float64, error) {
	switch col {
	case colRemainingHours:
		return row.RemainingHours, nil
	case colListedPrice:
		return row.ListedPrice, nil
	case colTemperature:
		return row.Ctx.Temperature, nil
	case colShelfStock:
		return row.Ctx.ShelfStock, nil
	}

	switch {
	case strings.HasPrefix(col, prefixCategory):
		return oneHot(col, prefixCategory, row.Category), nil
	case strings.HasPrefix(col, prefixFootTraffic):
		return oneHot(col, prefixFootTraffic, row.Ctx.FootTraffic), nil
	case strings.HasPrefix(col, prefixWeather):
		return oneHot(col, prefixWeather, row.Ctx.Weather), nil
	case strings.HasPrefix(col, prefixParking):
		return oneHot(col, prefixParking, row.Ctx.Parking), nil
	}

	// 模型声明了我们根本造不出来的列，悄悄塞 0 会让整批预测失真，
	// 必须整批报错。
	return 0, fmt.Errorf("特征列不匹配: 无法生成模型要求的列 %q", col)
}

func checkColumn(col string) error {
	_, err := featureValue(col, FeatureRow{})
	return err
}

func oneHot(col, prefix, value string) float64 {
	if strings.TrimPrefix(col, prefix) == stripWhitespace(value) {
		return 1
	}
	return 0
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
