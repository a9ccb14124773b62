package relevance

import (
	"math"
	"sort"
)

// Scored 是一个打过分的候选文档。
// Index 是该文档在候选列表中的原始位置，Similarity 为未取整的余弦相似度。
type Scored struct {
	Index      int
	Document   Document
	Similarity float64
}

// Cosine 计算两个向量的余弦相似度。任一向量范数为 0 时返回 0。
func Cosine(a, b Vector) float64 {
	normA, normB := a.Norm(), b.Norm()
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := a.Dot(b) / (normA * normB)
	switch {
	case math.IsNaN(sim):
		return 0
	case sim > 1:
		// 浮点误差可能让相同方向的向量略大于 1
		return 1
	}
	return sim
}

// Rank 按与查询的相关度对候选文档排序。
//
// 相似度 <= 0 的候选文档被过滤掉；结果按相似度降序排列，
// 相似度相同的文档保持原始候选顺序。
func Rank(docs []Document, query string) []Scored {
	corpus := NewCorpus(docs, query)
	queryVec := corpus.Vector(corpus.QueryIndex())

	results := make([]Scored, 0, len(docs))
	for i, doc := range corpus.Documents() {
		sim := Cosine(corpus.Vector(i), queryVec)
		if sim <= 0 {
			continue
		}
		results = append(results, Scored{Index: i, Document: doc, Similarity: sim})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	return results
}

// Round 将分数四舍五入到 places 位小数，只用于输出。
func Round(score float64, places int) float64 {
	if places < 0 {
		return score
	}
	p := math.Pow(10, float64(places))
	return math.Round(score*p) / p
}
