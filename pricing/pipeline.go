package pricing

import (
	"context"
	"log"
	"math"
	"time"
)

// 合理性判定结果
const (
	Justified    = "合理"
	NotJustified = "不合理"
)

// Record 进入管线的一笔原始记录
type Record struct {
	ID            string
	Name          string
	ListedPrice   float64
	ObservedPrice float64
	Expiry        string // 原始有效期字串，允许为空
	Category      string // 已知大类可以直接带，空则按名称解析
}

// Evaluation 每笔输入必有一笔输出，可恢复的问题都在行内降级
type Evaluation struct {
	ID                string  `json:"ProductID"`
	Name              string  `json:"ProName"`
	Category          string  `json:"ProductType"`
	ObservedPrice     float64 `json:"ProPrice"`
	RemainingHours    float64 `json:"RemainingHours"`
	RemainingReadable string  `json:"RemainingReadable"`
	PredictedDiscount float64 `json:"AiDiscount"`
	PredictedPrice    float64 `json:"AiPrice"`
	Justification     string  `json:"Reason"`
}

// Sink 预测结果的落库出口，每笔独立重试
type Sink interface {
	Write(id string, predictedPrice float64, justification string) error
}

// Pipeline 折扣估价管线：时间归一 → 分类 → 特征 → 推理 → 合理性判定
type Pipeline struct {
	model     *LoadedModel
	builder   *FeatureBuilder
	loc       *time.Location
	tolerance float64
	now       func() time.Time
}

// NewPipeline 在构建期就把模型列和特征构建器对齐，
// 列不匹配属于致命配置错误，直接返回。
func NewPipeline(model *LoadedModel, provider ContextProvider, loc *time.Location, tolerance float64) (*Pipeline, error) {
	builder, err := NewFeatureBuilder(model.FeatureColumns(), provider)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		model:     model,
		builder:   builder,
		loc:       loc,
		tolerance: tolerance,
		now:       time.Now,
	}, nil
}

// ModelSource 当前生效的模型来源（real / fallback）
func (p *Pipeline) ModelSource() string {
	return p.model.Source
}

// WithNow 替换时钟，测试用
func (p *Pipeline) WithNow(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

// Evaluate 对一批记录跑完整管线。
// 每笔输入都有输出；只有特征列不匹配才会整批失败。
// sink 不为空时逐笔写回，单笔失败只记日志不影响其余。
func (p *Pipeline) Evaluate(ctx context.Context, records []Record, sink Sink) ([]Evaluation, error) {
	if p.model.Source == SourceFallback {
		log.Printf("⚠️ 正在使用随机 Fallback 模型估价，结果不可用于真实定价")
	}

	now := p.now().In(p.loc)
	rows := make([]FeatureRow, len(records))
	evals := make([]Evaluation, len(records))

	for i, r := range records {
		name := r.Name
		if name == "" {
			name = "未知商品"
		}
		category := r.Category
		if category == "" {
			category = ResolveCategory(name)
		}

		expiry, ok := ParseExpiry(r.Expiry, p.loc)
		remaining := RemainingHours(expiry, ok, now)

		rows[i] = FeatureRow{
			RemainingHours: remaining,
			ListedPrice:    r.ListedPrice,
			Category:       category,
			Ctx:            p.builder.SampleContext(),
		}
		evals[i] = Evaluation{
			ID:                r.ID,
			Name:              name,
			Category:          category,
			ObservedPrice:     r.ObservedPrice,
			RemainingHours:    remaining,
			RemainingReadable: ReadableRemaining(expiry, ok, now),
		}
	}

	matrix, err := p.builder.Build(rows)
	if err != nil {
		return nil, err
	}

	predictions := p.model.Predict(matrix)
	for i := range evals {
		discount := math.Round(predictions[i]*100) / 100
		price := math.Round(records[i].ListedPrice * (1 - discount))

		evals[i].PredictedDiscount = discount
		evals[i].PredictedPrice = price
		evals[i].Justification = p.justify(price, records[i].ObservedPrice)
	}

	if sink == nil {
		return evals, nil
	}

	// 写库前检查取消信号；推理本身不中断
	if err := ctx.Err(); err != nil {
		return evals, err
	}

	for _, e := range evals {
		if err := sink.Write(e.ID, e.PredictedPrice, e.Justification); err != nil {
			log.Printf("❌ 更新 AiPrice 失败 [%s]: %v", e.ID, err)
		}
	}
	return evals, nil
}

// justify 人工折扣价与模型预测价的合理性判定：
// 误差在容忍范围内，或预测价不低于人工价，都算合理。
func (p *Pipeline) justify(predicted, observed float64) string {
	if math.Abs(predicted-observed) <= p.tolerance || predicted >= observed {
		return Justified
	}
	return NotJustified
}
