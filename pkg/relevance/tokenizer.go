// Package relevance 实现了基于 TF-IDF 与余弦相似度的候选文档排序引擎。
//
// 引擎是纯计算：每次排序请求构建自己的 Corpus，用完即丢弃，不持有任何跨请求状态，
// 因此可以被并发调用而无需加锁。
package relevance

import (
	"strings"
	"unicode"
)

// TermCounts 记录一段文本中每个词项出现的次数。
type TermCounts map[string]int

// Tokenize 将文本切分为词项。
// 任何既不是字母也不是数字的字符都作为分隔符，词项统一转为小写，
// 这样候选文档与查询之间的词项匹配不区分大小写。
// 不做词干提取，也不过滤停用词（"the"、"to" 等照常计数）。
func Tokenize(text string) []string {
	if text == "" {
		return []string{}
	}
	return strings.FieldsFunc(strings.ToLower(text), isSeparator)
}

// CountTerms 统计文本中每个词项的出现次数。空文本返回空 map。
func CountTerms(text string) TermCounts {
	counts := make(TermCounts)
	for _, term := range Tokenize(text) {
		counts[term]++
	}
	return counts
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsNumber(r)
}
