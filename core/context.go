package core

import "github.com/AbdulMuhamid/QuickShop/pkg/utils"

// RecommendContext 承载一次推荐请求的用户/场景信息，贯穿整个 Pipeline 透传。
// 请求级结构：请求之间不共享，可被并发请求各自持有。
type RecommendContext struct {
	UserID    string
	SessionID string
	Scene     string // trending / hybrid / personalized 等

	// Limit 是本次请求的结果上限，也是混合排序位置衰减的基数
	Limit int

	// Labels 是用户级标签，可驱动 Pipeline 行为（新用户、价格敏感等）
	Labels map[string]utils.Label

	// Params 是请求级上下文参数（device_type、query 等）
	Params map[string]any
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
