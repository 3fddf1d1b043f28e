package pricing

import (
	"context"
	"errors"
	"testing"
	"time"
)

// stubModel 按行返回预设折扣，管线测试不需要真森林
type stubModel struct {
	discounts []float64
}

func (m *stubModel) FeatureColumns() []string {
	return []string{"剩餘保存期限_小時", "原價"}
}

func (m *stubModel) Predict(matrix [][]float64) []float64 {
	out := make([]float64, len(matrix))
	copy(out, m.discounts)
	return out
}

// memorySink 记录写回，fail 里的 id 模拟落库失败
type memorySink struct {
	written map[string]float64
	fail    map[string]bool
}

func newMemorySink() *memorySink {
	return &memorySink{written: map[string]float64{}, fail: map[string]bool{}}
}

func (s *memorySink) Write(id string, price float64, justification string) error {
	if s.fail[id] {
		return errors.New("连接中断")
	}
	s.written[id] = price
	return nil
}

func testPipeline(t *testing.T, discounts ...float64) *Pipeline {
	t.Helper()
	loc := taipei(t)
	model := &LoadedModel{DiscountModel: &stubModel{discounts: discounts}, Source: SourceReal}
	p, err := NewPipeline(model, FixedContextProvider{Ctx: DefaultContext()}, loc, 1)
	if err != nil {
		t.Fatalf("构建管线失败: %v", err)
	}
	return p.WithNow(func() time.Time {
		return time.Date(2025, 10, 18, 10, 0, 0, 0, loc)
	})
}

func TestEvaluateNotJustified(t *testing.T) {
	p := testPipeline(t, 0.30)
	evals, err := p.Evaluate(context.Background(), []Record{
		{ID: "1", Name: "雞三節翅", ListedPrice: 120, ObservedPrice: 90, Expiry: "2025-10-18 20:00"},
	}, nil)
	if err != nil {
		t.Fatalf("Evaluate 失败: %v", err)
	}

	e := evals[0]
	if e.PredictedPrice != 84 {
		t.Fatalf("预测价应为 84，得到 %v", e.PredictedPrice)
	}
	// 84 < 90 且价差 6 超出容忍 1
	if e.Justification != NotJustified {
		t.Fatalf("应判不合理，得到 %q", e.Justification)
	}
	if e.Category != CategoryMeat {
		t.Fatalf("分类错误: %q", e.Category)
	}
}

func TestEvaluateJustifiedWithinTolerance(t *testing.T) {
	p := testPipeline(t, 0.25)
	evals, err := p.Evaluate(context.Background(), []Record{
		{ID: "1", Name: "雞三節翅", ListedPrice: 120, ObservedPrice: 90, Expiry: "2025-10-18 20:00"},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	// 120 × 0.75 = 90，与人工价完全相等
	if evals[0].PredictedPrice != 90 || evals[0].Justification != Justified {
		t.Fatalf("预测 %v 应判合理，得到 %q", evals[0].PredictedPrice, evals[0].Justification)
	}
}

func TestEvaluateJustifiedWhenPredictedHigher(t *testing.T) {
	p := testPipeline(t, 0.20)
	evals, err := p.Evaluate(context.Background(), []Record{
		{ID: "1", Name: "雞三節翅", ListedPrice: 120, ObservedPrice: 90, Expiry: "2025-10-18 20:00"},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	// 预测 96 ≥ 人工 90，不管容忍带多窄都算合理
	if evals[0].PredictedPrice != 96 || evals[0].Justification != Justified {
		t.Fatalf("预测 %v 应判合理，得到 %q", evals[0].PredictedPrice, evals[0].Justification)
	}
}

// 缺名称、坏日期都只降级，每笔输入必有一笔输出
func TestEvaluateDegradesPerRecord(t *testing.T) {
	p := testPipeline(t, 0.1, 0.2)
	evals, err := p.Evaluate(context.Background(), []Record{
		{ID: "1", ListedPrice: 50, Expiry: "看不清楚"},
		{ID: "2", Name: "鮭魚", ListedPrice: 200, Expiry: ""},
	}, nil)
	if err != nil {
		t.Fatalf("可恢复问题不应让整批失败: %v", err)
	}
	if len(evals) != 2 {
		t.Fatalf("输入 2 笔应输出 2 笔，得到 %d", len(evals))
	}
	if evals[0].Name != "未知商品" || evals[0].Category != CategoryOther {
		t.Fatalf("缺名称应降级为未知商品/其他: %+v", evals[0])
	}
	if evals[0].RemainingHours != 0 || evals[0].RemainingReadable != "未知" {
		t.Fatalf("坏日期应降级为 0 小时/未知: %+v", evals[0])
	}
	if evals[1].Category != CategorySeafood {
		t.Fatalf("带名称的记录应正常分类: %+v", evals[1])
	}
}

// 单笔写回失败不拖垮整批
func TestEvaluateSinkFailureIsolated(t *testing.T) {
	p := testPipeline(t, 0.1, 0.2, 0.3)
	sink := newMemorySink()
	sink.fail["2"] = true

	records := []Record{
		{ID: "1", Name: "雞腿", ListedPrice: 100, Expiry: "2025-10-19"},
		{ID: "2", Name: "鮭魚", ListedPrice: 200, Expiry: "2025-10-19"},
		{ID: "3", Name: "吐司", ListedPrice: 60, Expiry: "2025-10-19"},
	}
	evals, err := p.Evaluate(context.Background(), records, sink)
	if err != nil {
		t.Fatalf("写回失败不应升级为批次错误: %v", err)
	}
	if len(evals) != 3 {
		t.Fatalf("应输出 3 笔，得到 %d", len(evals))
	}
	if _, ok := sink.written["1"]; !ok {
		t.Error("第 1 笔应已写回")
	}
	if _, ok := sink.written["3"]; !ok {
		t.Error("第 3 笔应已写回")
	}
	if _, ok := sink.written["2"]; ok {
		t.Error("第 2 笔写回应失败")
	}
}

// 取消信号要在写库前生效
func TestEvaluateCancelledBeforeWriteback(t *testing.T) {
	p := testPipeline(t, 0.1)
	sink := newMemorySink()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	evals, err := p.Evaluate(ctx, []Record{
		{ID: "1", Name: "雞腿", ListedPrice: 100, Expiry: "2025-10-19"},
	}, sink)
	if err == nil {
		t.Fatal("已取消的 ctx 应返回错误")
	}
	if len(evals) != 1 {
		t.Fatalf("推理结果仍应返回，得到 %d 笔", len(evals))
	}
	if len(sink.written) != 0 {
		t.Fatal("取消后不应再写库")
	}
}

// 空批次直接返回空结果
func TestEvaluateEmptyBatch(t *testing.T) {
	p := testPipeline(t)
	evals, err := p.Evaluate(context.Background(), nil, newMemorySink())
	if err != nil {
		t.Fatalf("空批次不应报错: %v", err)
	}
	if len(evals) != 0 {
		t.Fatalf("空批次应返回空结果，得到 %d", len(evals))
	}
}
