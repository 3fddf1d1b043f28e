package pricing

import (
	"os"
	"path/filepath"
	"testing"
)

// 两棵桩树：第一棵按剩余小时分叉，第二棵固定输出 0.2
const testArtifact = `{
  "feature_columns": ["剩餘保存期限_小時", "原價"],
  "trees": [
    [
      {"feature": 0, "threshold": 24, "left": 1, "right": 2, "value": 0},
      {"feature": -1, "threshold": 0, "left": -1, "right": -1, "value": 0.4},
      {"feature": -1, "threshold": 0, "left": -1, "right": -1, "value": 0.1}
    ],
    [
      {"feature": -1, "threshold": 0, "left": -1, "right": -1, "value": 0.2}
    ]
  ]
}`

func writeTestArtifact(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "random_forest_model.json")
	if err := os.WriteFile(path, []byte(testArtifact), 0o644); err != nil {
		t.Fatalf("写入模型文件失败: %v", err)
	}
	return path
}

func TestLoadModelReal(t *testing.T) {
	model := LoadModel(writeTestArtifact(t))
	if model.Source != SourceReal {
		t.Fatalf("来源应为 real，得到 %q", model.Source)
	}
	if got := model.FeatureColumns(); len(got) != 2 {
		t.Fatalf("特征列数量错误: %v", got)
	}

	// 剩余 6 小时 → 第一棵树走左叶 0.4，均值 (0.4+0.2)/2 = 0.3
	preds := model.Predict([][]float64{{6, 120}})
	if preds[0] != 0.3 {
		t.Fatalf("森林均值错误: %v", preds[0])
	}

	// 剩余 48 小时 → 第一棵树走右叶 0.1，均值 0.15
	preds = model.Predict([][]float64{{48, 120}})
	if preds[0] != 0.15 {
		t.Fatalf("森林均值错误: %v", preds[0])
	}
}

// 模型文件缺失要降级为随机兜底，并明确标记来源
func TestLoadModelFallback(t *testing.T) {
	model := LoadModel(filepath.Join(t.TempDir(), "不存在.json"))
	if model.Source != SourceFallback {
		t.Fatalf("来源应为 fallback，得到 %q", model.Source)
	}

	preds := model.Predict(make([][]float64, 100))
	for _, p := range preds {
		if p < 0 || p >= 0.5 {
			t.Fatalf("兜底折扣应落在 [0, 0.5)，得到 %v", p)
		}
	}
}

// 节点索引越界或引用循环的模型要在载入期就降级，不能等推理时才崩
func TestLoadModelInvalidTreeIndices(t *testing.T) {
	cases := map[string]string{
		"左子树越界": `{"feature_columns":["原價"],"trees":[[
			{"feature":0,"threshold":1,"left":5,"right":0,"value":0}]]}`,
		"特征索引越界": `{"feature_columns":["原價"],"trees":[[
			{"feature":3,"threshold":1,"left":1,"right":2,"value":0},
			{"feature":-1,"threshold":0,"left":-1,"right":-1,"value":0.1},
			{"feature":-1,"threshold":0,"left":-1,"right":-1,"value":0.2}]]}`,
		"子节点指回自己": `{"feature_columns":["原價"],"trees":[[
			{"feature":0,"threshold":1,"left":0,"right":1,"value":0},
			{"feature":-1,"threshold":0,"left":-1,"right":-1,"value":0.1}]]}`,
	}
	for name, artifact := range cases {
		path := filepath.Join(t.TempDir(), "bad_tree.json")
		if err := os.WriteFile(path, []byte(artifact), 0o644); err != nil {
			t.Fatal(err)
		}
		if model := LoadModel(path); model.Source != SourceFallback {
			t.Errorf("%s: 应降级为 fallback，得到 %q", name, model.Source)
		}
	}
}

// 内容不完整的文件同样降级
func TestLoadModelCorruptArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte(`{"trees": []}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if model := LoadModel(path); model.Source != SourceFallback {
		t.Fatalf("空模型文件应降级为 fallback，得到 %q", model.Source)
	}
}
