package relevance

import "math"

// Vector 是稀疏的 TF-IDF 向量，未出现的词项权重隐式为 0。
type Vector map[string]float64

// Vectorize 按 count * log(n / df) 计算每个词项的权重。
// tf 使用原始出现次数，不按文档长度归一化。df == n 的词项 idf 为 0，
// 这是预期行为：出现在所有文档中的词项不具备区分度。
func Vectorize(counts TermCounts, df map[string]int, n int) Vector {
	vec := make(Vector, len(counts))
	for term, count := range counts {
		if count <= 0 {
			continue
		}
		freq, ok := df[term]
		if !ok || freq <= 0 {
			continue
		}
		vec[term] = float64(count) * math.Log(float64(n)/float64(freq))
	}
	return vec
}

// Dot 计算两个稀疏向量的点积。
func (v Vector) Dot(other Vector) float64 {
	small, large := v, other
	if len(large) < len(small) {
		small, large = large, small
	}
	var sum float64
	for term, w := range small {
		if ow, ok := large[term]; ok {
			sum += w * ow
		}
	}
	return sum
}

// Norm 返回向量的 L2 范数。
func (v Vector) Norm() float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}
