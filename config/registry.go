package config

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rushteam/hybridrec/pipeline"
)

// 配置驱动装配时，入口处需 import _ "github.com/rushteam/hybridrec/config/builders"
// 触发内置 Node（filter、rerank.sort、rerank.topn）的 init 注册。
// rank.hybrid 不走注册表：它依赖请求期训练出的信号，只能由 service 运行时装配。

// NodeBuilder 即 pipeline.NodeBuilder。
type NodeBuilder = pipeline.NodeBuilder

var (
	registryMu sync.RWMutex
	registry   = make(map[string]NodeBuilder)
)

// Register 登记一种 Node 类型的构建逻辑，通常在各组件的 init 中调用。
// 空类型名或 nil 构建器被忽略。
func Register(typeName string, builder NodeBuilder) {
	if typeName == "" || builder == nil {
		return
	}
	registryMu.Lock()
	registry[typeName] = builder
	registryMu.Unlock()
}

// SupportedTypes 返回已注册的 Node 类型（字典序），用于错误提示。
func SupportedTypes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	types := make([]string, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// DefaultFactory 用当前注册表的快照构建 NodeFactory。
// 返回后的注册不影响已创建的 factory。
func DefaultFactory() *pipeline.NodeFactory {
	registryMu.RLock()
	defer registryMu.RUnlock()

	f := pipeline.NewNodeFactory()
	for typeName, builder := range registry {
		f.Register(typeName, builder)
	}
	return f
}

// ValidatePipelineConfig 预检链路定义里的 Node 类型是否都已注册，
// 让配置错误在装配前暴露，而不是等到 Build 失败。
func ValidatePipelineConfig(cfg *pipeline.Config) error {
	if cfg == nil {
		return nil
	}

	registryMu.RLock()
	defer registryMu.RUnlock()
	for _, nc := range cfg.Pipeline.Nodes {
		if nc.Type == "" {
			continue
		}
		if _, ok := registry[nc.Type]; !ok {
			supported := make([]string, 0, len(registry))
			for t := range registry {
				supported = append(supported, t)
			}
			sort.Strings(supported)
			return fmt.Errorf("unsupported node type %q (supported: %v)", nc.Type, supported)
		}
	}
	return nil
}
