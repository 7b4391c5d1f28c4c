// Package config 提供配置驱动的 Pipeline 组装：
// YAML/JSON 里声明节点列表，工厂按类型构建并串成 Pipeline。
// 需要访问器的节点（召回、过滤、补全）由 NewFactory 注入依赖，
// 纯参数节点也可以通过 Register 全局扩展。
package config

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/AbdulMuhamid/QuickShop/pipeline"
)

// NodeBuilder 与 pipeline.NodeBuilder 一致：根据 config 构建 Node。
type NodeBuilder = pipeline.NodeBuilder

var (
	extraBuilders   = make(map[string]NodeBuilder)
	extraBuildersMu sync.RWMutex
)

// Register 注册一种自定义 Node 的构建逻辑，NewFactory 会把它并入内置类型。
// 同名注册覆盖内置类型。建议在组件的 init 中调用。
func Register(typeName string, builder NodeBuilder) {
	if typeName == "" || builder == nil {
		return
	}
	extraBuildersMu.Lock()
	defer extraBuildersMu.Unlock()
	extraBuilders[typeName] = builder
}

// SupportedTypes 返回内置加已注册的 Node 类型列表（排序），用于错误提示与校验。
func SupportedTypes() []string {
	set := make(map[string]struct{}, len(builtinTypes))
	for _, t := range builtinTypes {
		set[t] = struct{}{}
	}
	extraBuildersMu.RLock()
	for t := range extraBuilders {
		set[t] = struct{}{}
	}
	extraBuildersMu.RUnlock()

	types := make([]string, 0, len(set))
	for t := range set {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// ValidatePipelineConfig 校验配置里的 node 类型均可构建；
// 有未支持类型时返回包含已支持列表的错误。
func ValidatePipelineConfig(cfg *pipeline.Config) error {
	if cfg == nil {
		return nil
	}
	supported := make(map[string]struct{})
	for _, t := range SupportedTypes() {
		supported[t] = struct{}{}
	}
	for _, nc := range cfg.Pipeline.Nodes {
		if _, ok := supported[nc.Type]; !ok {
			return fmt.Errorf("unsupported node type %q, supported: %s",
				nc.Type, strings.Join(SupportedTypes(), ", "))
		}
	}
	return nil
}
