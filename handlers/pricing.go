package handlers

import (
	"time"

	"github.com/Julie983186/DynamicPricing/metrics"
	"github.com/Julie983186/DynamicPricing/pricing"
	"github.com/Julie983186/DynamicPricing/repositories"

	"github.com/gin-gonic/gin"
)

type PricingHandler struct {
	Repo     repositories.ProductRepository
	Pipeline *pricing.Pipeline
	Sink     pricing.Sink
}

func NewPricingHandler(repo repositories.ProductRepository, pipeline *pricing.Pipeline, sink pricing.Sink) *PricingHandler {
	return &PricingHandler{Repo: repo, Pipeline: pipeline, Sink: sink}
}

// PredictReq 临时估价请求，不需要先入库
type PredictReq struct {
	ProductID   string  `json:"ProductID"`
	ProName     string  `json:"ProName"`
	Price       float64 `json:"Price"`
	ProPrice    float64 `json:"ProPrice"`
	ExpireDate  string  `json:"ExpireDate"`
	ProductType string  `json:"ProductType"`
}

// PredictPriceCheck 把库里全部商品跑一遍管线，预测价和合理性写回数据库
func (h *PricingHandler) PredictPriceCheck(c *gin.Context) {
	products, err := h.Repo.FindAll()
	if err != nil {
		c.JSON(500, gin.H{"error": "查询商品失败: " + err.Error()})
		return
	}

	records := make([]pricing.Record, len(products))
	for i, p := range products {
		expiry := ""
		if p.ExpireDate != nil {
			// 带时区序列化，避免 UTC 表示被当成本地时间重解
			expiry = p.ExpireDate.Format(time.RFC3339)
		}
		records[i] = pricing.Record{
			ID:            p.ID.String(),
			Name:          p.Name,
			ListedPrice:   p.Price,
			ObservedPrice: p.ProPrice,
			Expiry:        expiry,
			Category:      p.ProductType,
		}
	}

	results, err := h.Pipeline.Evaluate(c.Request.Context(), records, h.Sink)
	if err != nil {
		// 只有特征列不匹配这类配置错误才会走到这里
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	metrics.RecordPrediction(h.Pipeline.ModelSource(), len(results))

	c.JSON(200, gin.H{
		"model_source": h.Pipeline.ModelSource(),
		"raw_data":     products,
		"ai_result":    results,
	})
}

// Predict 对一批临时记录估价，不落库
func (h *PricingHandler) Predict(c *gin.Context) {
	var reqs []PredictReq
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(400, gin.H{"error": "无效的数据格式"})
		return
	}

	records := make([]pricing.Record, len(reqs))
	for i, r := range reqs {
		records[i] = pricing.Record{
			ID:            r.ProductID,
			Name:          r.ProName,
			ListedPrice:   r.Price,
			ObservedPrice: r.ProPrice,
			Expiry:        r.ExpireDate,
			Category:      r.ProductType,
		}
	}

	results, err := h.Pipeline.Evaluate(c.Request.Context(), records, nil)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	metrics.RecordPrediction(h.Pipeline.ModelSource(), len(results))

	c.JSON(200, gin.H{
		"model_source": h.Pipeline.ModelSource(),
		"ai_result":    results,
	})
}
