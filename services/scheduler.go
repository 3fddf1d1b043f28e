package services

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/Julie983186/DynamicPricing/metrics"
	"github.com/Julie983186/DynamicPricing/pricing"
	"github.com/Julie983186/DynamicPricing/repositories"
)

// RepricingScheduler 后台重新估价引擎：
// 有效期一小时一小时地逼近，折扣也要跟着变，
// 周期性把未过期商品重跑一遍管线，结果落库并推给在线客户端。
type RepricingScheduler struct {
	productRepo repositories.ProductRepository
	pipeline    *pricing.Pipeline
	sink        pricing.Sink
	hub         *Hub
	interval    time.Duration
	IsRunning   int32 // 使用原子操作标记

	notify chan struct{} // 用于通知立即重估（比如刚扫进新商品）
}

func NewRepricingScheduler(repo repositories.ProductRepository, pipeline *pricing.Pipeline, sink pricing.Sink, hub *Hub, interval time.Duration) *RepricingScheduler {
	return &RepricingScheduler{
		productRepo: repo,
		pipeline:    pipeline,
		sink:        sink,
		hub:         hub,
		interval:    interval,
		notify:      make(chan struct{}, 1), // 缓冲大小设置为1即可
	}
}

func (s *RepricingScheduler) Start(ctx context.Context) {
	if !atomic.CompareAndSwapInt32(&s.IsRunning, 0, 1) {
		return
	}

	go func() {
		// 增加异常恢复，防止协程挂掉
		defer func() {
			if r := recover(); r != nil {
				log.Printf("❌ 估价引擎崩溃重燃: %v", r)
				atomic.StoreInt32(&s.IsRunning, 0)
				s.Start(ctx)
			}
		}()

		log.Printf("🚀 重新估价引擎启动 (周期 %s)", s.interval)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Println("🔔 收到 ctx.Done 信号，估价引擎退出")
				return
			case <-ticker.C:
			case <-s.notify:
				log.Println("🔔 收到唤醒信号，立即重估")
			}

			s.runOnce(ctx)

			// 处理完一轮，清空多余信号
			select {
			case <-s.notify:
			default:
			}
		}
	}()
}

// Trigger 唤醒调度器马上跑一轮（扫描入库后调用）
func (s *RepricingScheduler) Trigger() {
	select {
	case s.notify <- struct{}{}:
	default:
		// 已有任务在排队
	}
}

func (s *RepricingScheduler) runOnce(ctx context.Context) {
	products, err := s.productRepo.FindUnexpired()
	if err != nil {
		log.Printf("❌ 查询待估价商品失败: %v", err)
		return
	}
	if len(products) == 0 {
		return
	}

	records := make([]pricing.Record, len(products))
	for i, p := range products {
		expiry := ""
		if p.ExpireDate != nil {
			// 带时区序列化：驱动回来的时间点常用 UTC 表示，
			// 裸字串会被当成营运时区的本地时间重解，时间点就漂了
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

	evals, err := s.pipeline.Evaluate(ctx, records, s.sink)
	if err != nil {
		log.Printf("❌ 重新估价失败: %v", err)
		return
	}
	metrics.RecordPrediction(s.pipeline.ModelSource(), len(evals))

	log.Printf("📡 本轮重估 %d 件商品，正在广播价格更新...", len(evals))
	s.hub.BroadcastPriceUpdate(evals)
}
