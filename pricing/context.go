package pricing

import "math/rand"

// StoreContext 环境信号：人流、天气、停车、温度、货架库存。
// 目前门店没有真实遥测，这里只是模型特征的占位来源。
type StoreContext struct {
	FootTraffic string  `json:"foot_traffic"` // 少 / 一般 / 多
	Weather     string  `json:"weather"`      // 晴天 / 陰天 / 雨天
	Parking     string  `json:"parking"`      // 少 / 一般 / 多
	Temperature float64 `json:"temperature"`
	ShelfStock  float64 `json:"shelf_stock"`
}

// ContextProvider 环境信号来源。接真实遥测时换实现即可，特征构建不用动。
type ContextProvider interface {
	Sample() StoreContext
}

// DefaultContext 训练资料里最常见的组合
func DefaultContext() StoreContext {
	return StoreContext{
		FootTraffic: "一般",
		Weather:     "晴天",
		Parking:     "一般",
		Temperature: 25,
		ShelfStock:  10,
	}
}

// FixedContextProvider 固定返回同一组信号，测试和生产默认都用它
type FixedContextProvider struct {
	Ctx StoreContext
}

func (p FixedContextProvider) Sample() StoreContext {
	return p.Ctx
}

var (
	trafficLevels = []string{"少", "一般", "多"}
	weatherKinds  = []string{"晴天", "陰天", "雨天"}
	parkingLevels = []string{"少", "一般", "多"}
)

// RandomContextProvider 在枚举域内随机取样，演示环境用
type RandomContextProvider struct{}

func (p RandomContextProvider) Sample() StoreContext {
	return StoreContext{
		FootTraffic: trafficLevels[rand.Intn(len(trafficLevels))],
		Weather:     weatherKinds[rand.Intn(len(weatherKinds))],
		Parking:     parkingLevels[rand.Intn(len(parkingLevels))],
		Temperature: 15 + rand.Float64()*15,
		ShelfStock:  float64(1 + rand.Intn(30)),
	}
}
