// Package quickshop 是电商推荐引擎。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → ReRank → PostProcess）
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测
// - 三条召回路径：协同过滤（邻居行为）、内容画像（类目/品牌/价位）、热门兜底
// - engine 包是对外入口，core 定义领域模型与访问器接口，store 提供内存/Redis 实现
package quickshop

import "github.com/AbdulMuhamid/QuickShop/pipeline"

// 轻量 facade：便于直接 import 根包使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
