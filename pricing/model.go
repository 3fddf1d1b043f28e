package pricing

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
)

// 模型来源标记：操作端靠这个分辨预测值是真模型还是随机兜底
const (
	SourceReal     = "real"
	SourceFallback = "fallback"
)

// DiscountModel 冻结回归模型的推理契约
type DiscountModel interface {
	// Predict 每行返回一个折扣估计值
	Predict(matrix [][]float64) []float64
	// FeatureColumns 模型声明的输入列（训练时的列顺序）
	FeatureColumns() []string
}

// LoadedModel 带来源标记的模型。兜底模型输出的是随机折扣，
// 静默上线等于直接卖随机价，来源必须一路透传到日志和接口。
type LoadedModel struct {
	DiscountModel
	Source string
}

// treeNode 回归树节点，feature 为 -1 表示叶子
type treeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

// forestArtifact 训练端导出的 JSON 模型文件
type forestArtifact struct {
	FeatureColumns []string     `json:"feature_columns"`
	Trees          [][]treeNode `json:"trees"`
}

// ForestModel 随机森林回归的推理实现：各棵树输出取平均
type ForestModel struct {
	columns []string
	trees   [][]treeNode
}

func (m *ForestModel) FeatureColumns() []string {
	return m.columns
}

func (m *ForestModel) Predict(matrix [][]float64) []float64 {
	out := make([]float64, len(matrix))
	for i, row := range matrix {
		sum := 0.0
		for _, tree := range m.trees {
			sum += evalTree(tree, row)
		}
		out[i] = sum / float64(len(m.trees))
	}
	return out
}

func evalTree(tree []treeNode, row []float64) float64 {
	i := 0
	for tree[i].Feature >= 0 {
		if row[tree[i].Feature] <= tree[i].Threshold {
			i = tree[i].Left
		} else {
			i = tree[i].Right
		}
	}
	return tree[i].Value
}

// 模型文件加载不到时兜底模型用的列清单
var fallbackColumns = []string{
	colRemainingHours, colListedPrice,
	"人流量_少", "人流量_一般", "人流量_多",
	"天氣_晴天", "天氣_陰天", "天氣_雨天",
	"停車狀況_少", "停車狀況_一般", "停車狀況_多",
	"商品大類_肉類", "商品大類_魚類", "商品大類_蔬果類", "商品大類_其他",
}

// FallbackModel 返回 [0, 0.5) 的伪随机折扣，
// 只为让周边服务在没有模型文件时仍可联调。
type FallbackModel struct {
	columns []string
}

func NewFallbackModel() *FallbackModel {
	return &FallbackModel{columns: fallbackColumns}
}

func (m *FallbackModel) FeatureColumns() []string {
	return m.columns
}

func (m *FallbackModel) Predict(matrix [][]float64) []float64 {
	out := make([]float64, len(matrix))
	for i := range out {
		out[i] = rand.Float64() * 0.5
	}
	return out
}

// LoadModel 读取冻结模型文件。失败不中断启动，
// 降级为随机兜底模型并在日志里明确标出来。
func LoadModel(path string) *LoadedModel {
	artifact, err := readArtifact(path)
	if err != nil {
		log.Printf("⚠️ 无法载入模型，改用随机 Fallback: %v", err)
		return &LoadedModel{DiscountModel: NewFallbackModel(), Source: SourceFallback}
	}

	log.Printf("✅ 已载入真实模型 (%d 棵树, %d 个特征)", len(artifact.Trees), len(artifact.FeatureColumns))
	return &LoadedModel{
		DiscountModel: &ForestModel{columns: artifact.FeatureColumns, trees: artifact.Trees},
		Source:        SourceReal,
	}
}

func readArtifact(path string) (*forestArtifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var artifact forestArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("模型文件解析失败: %w", err)
	}
	if len(artifact.Trees) == 0 || len(artifact.FeatureColumns) == 0 {
		return nil, fmt.Errorf("模型文件内容不完整: %s", path)
	}
	for ti, tree := range artifact.Trees {
		if len(tree) == 0 {
			return nil, fmt.Errorf("模型文件损坏: 第 %d 棵树没有节点", ti)
		}
		for ni, n := range tree {
			if n.Feature < 0 {
				continue // 叶子
			}
			// 子节点必须排在父节点之后（sklearn 导出的数组性质），
			// 顺带挡掉循环引用；越界索引推理时会直接越界崩溃，
			// 必须在载入期就拒绝
			if n.Feature >= len(artifact.FeatureColumns) ||
				n.Left <= ni || n.Left >= len(tree) ||
				n.Right <= ni || n.Right >= len(tree) {
				return nil, fmt.Errorf("模型文件损坏: 第 %d 棵树第 %d 个节点索引非法", ti, ni)
			}
		}
	}
	return &artifact, nil
}
