// Package utils 提供推荐链路共用的 Label 原语。
package utils

// Label 是链路内的解释信息载体：引擎用它透传 reasoning、dominant_factor、
// recall_source、filtered 等标签，从召回一路携带到最终输出。
// Value 是标签内容，Source 标记写入它的链路阶段。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // recall / rank / filter / rerank / rule ...
}

// MergeLabel 合并同名 Label：Value 用 '|' 累积，Source 用 ',' 累积，
// 历史不丢弃，后写的追加在尾部。任一侧 Value 为空则直接取另一侧。
func MergeLabel(existing Label, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}

	merged := Label{Value: existing.Value + "|" + incoming.Value}
	switch {
	case existing.Source == "":
		merged.Source = incoming.Source
	case incoming.Source == "":
		merged.Source = existing.Source
	default:
		merged.Source = existing.Source + "," + incoming.Source
	}
	return merged
}
