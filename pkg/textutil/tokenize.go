// Package textutil 提供内容向量化用到的文本工具：分词与英文停用词。
package textutil

import (
	"strings"
	"unicode"
)

// Tokenize 将文本切分为小写词元。
// 规则：连续的字母/数字为一个词元，长度至少为 2，停用词被剔除。
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	out := make([]string, 0, len(fields))
	for _, tok := range fields {
		if len(tok) < 2 {
			continue
		}
		if IsStopWord(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// IsStopWord 判断词元是否为英文停用词。
func IsStopWord(tok string) bool {
	_, ok := englishStopWords[tok]
	return ok
}
