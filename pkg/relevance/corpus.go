package relevance

import "sort"

// Document 是参与排序的一篇文档：一个标识符和用于打分的原始文本。
type Document struct {
	ID   string
	Text string
}

// Corpus 保存一次排序请求中所有文档（候选文档 + 查询）的词频与文档频率。
//
// 查询被当作最后一篇文档加入语料，这样查询与候选文档的 IDF 基于同一份统计。
// 只在候选文档上计算 IDF 会改变排序结果。
type Corpus struct {
	documents []Document
	counts    []TermCounts
	df        map[string]int
}

// NewCorpus 用有序的候选文档和查询字符串构建语料。
// 查询总是最后一篇文档，其下标为 QueryIndex()。
func NewCorpus(docs []Document, query string) *Corpus {
	all := make([]Document, 0, len(docs)+1)
	all = append(all, docs...)
	all = append(all, Document{ID: queryDocumentID, Text: query})

	c := &Corpus{
		documents: all,
		counts:    make([]TermCounts, len(all)),
		df:        make(map[string]int),
	}
	for i, doc := range all {
		counts := CountTerms(doc.Text)
		c.counts[i] = counts
		// counts 的键本身就是去重后的词项，每篇文档对 df 至多贡献 1
		for term := range counts {
			c.df[term]++
		}
	}
	return c
}

const queryDocumentID = "__query__"

// N 返回语料中的文档总数（候选文档数 + 1）。
func (c *Corpus) N() int {
	return len(c.documents)
}

// QueryIndex 返回查询文档在语料中的下标。
func (c *Corpus) QueryIndex() int {
	return len(c.documents) - 1
}

// Documents 返回候选文档（不包含查询文档）。
func (c *Corpus) Documents() []Document {
	return c.documents[:c.QueryIndex()]
}

// Counts 返回第 i 篇文档的词项计数。
func (c *Corpus) Counts(i int) TermCounts {
	return c.counts[i]
}

// DocumentFrequency 返回包含 term 的文档数，不在词表中的词项返回 0。
func (c *Corpus) DocumentFrequency(term string) int {
	return c.df[term]
}

// Vocabulary 返回按字典序排列的词表。
func (c *Corpus) Vocabulary() []string {
	terms := make([]string, 0, len(c.df))
	for term := range c.df {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// Vector 返回第 i 篇文档的 TF-IDF 向量。
func (c *Corpus) Vector(i int) Vector {
	return Vectorize(c.counts[i], c.df, c.N())
}
