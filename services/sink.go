package services

import (
	"github.com/Julie983186/DynamicPricing/metrics"
	"github.com/Julie983186/DynamicPricing/repositories"
)

// RepoSink 把管线的写回出口接到商品仓库
type RepoSink struct {
	Repo repositories.ProductRepository
}

func (s RepoSink) Write(id string, predictedPrice float64, justification string) error {
	if err := s.Repo.UpdatePrediction(id, predictedPrice, justification); err != nil {
		metrics.WritebackFailuresTotal.Inc()
		return err
	}
	return nil
}
