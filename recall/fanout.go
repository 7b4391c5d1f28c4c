package recall

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/AbdulMuhamid/QuickShop/core"
	"github.com/AbdulMuhamid/QuickShop/pipeline"
	"github.com/AbdulMuhamid/QuickShop/pkg/utils"
)

// Fanout 是一个 Recall Node：并发执行多个召回源，并合并结果。
// 协同路径与内容路径没有数据依赖，并发纯属延迟优化；
// 单个源失败/超时只丢掉该源的贡献，不影响其他源（该路径静默降级）。
type Fanout struct {
	Sources []Source

	// Timeout 每个召回源的超时时间，0 表示不限制
	Timeout time.Duration

	// Merge 合并策略，nil 时使用 FirstMerge（按 ID 去重保留先出现的）
	Merge MergeStrategy
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	// 每个源写自己的槽位，保持源序，天然无竞争
	results := make([][]*core.Item, len(n.Sources))
	eg, egCtx := errgroup.WithContext(ctx)

	for i, src := range n.Sources {
		slot, s := i, src
		eg.Go(func() error {
			recallCtx := egCtx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(egCtx, n.Timeout)
				defer cancel()
			}

			items, err := s.Recall(recallCtx, rctx)
			if err != nil {
				// 超时或错误时该源贡献为空，不中断其他召回源
				return nil
			}

			// 记录召回来源 label，方便 explain / 观测
			for _, it := range items {
				it.PutLabel("recall_source", utils.Label{Value: s.Name(), Source: "recall"})
			}
			results[slot] = items
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	merge := n.Merge
	if merge == nil {
		merge = &FirstMerge{}
	}
	return merge.Merge(results), nil
}
