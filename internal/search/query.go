package search

import (
	"math"
	"sort"
)

// BM25+ parameters, the same defaults the client-side index uses.
const (
	bm25K = 1.2
	bm25B = 0.7
	bm25D = 0.5
)

// Result is a single ranked search hit.
type Result struct {
	ID     string         `json:"id"`
	Score  float64        `json:"score"`
	Terms  []string       `json:"terms"`
	Stored map[string]any `json:"stored"`
}

// Search ranks documents matching any query term exactly. At most limit
// results are returned; limit <= 0 means no limit.
func (ix *Index) Search(query string, limit int) []Result {
	scores := make(map[int]float64)
	matched := make(map[int][]string)
	n := float64(len(ix.docIDs))

	seen := make(map[string]bool)
	for _, term := range Tokenize(query) {
		if seen[term] {
			continue
		}
		seen[term] = true

		byField, ok := ix.terms[term]
		if !ok {
			continue
		}
		for fieldID, docs := range byField {
			df := float64(len(docs))
			idf := math.Log(1 + (n-df+0.5)/(df+0.5))
			avg := ix.avgLength[fieldID]
			for short, tf := range docs {
				length := float64(ix.fieldLength[short][fieldID])
				norm := 1.0
				if avg > 0 {
					norm = 1 - bm25B + bm25B*length/avg
				}
				f := float64(tf)
				scores[short] += idf * (bm25D + f*(bm25K+1)/(f+bm25K*norm))
			}
		}
		for short := range docsWithTerm(byField) {
			matched[short] = append(matched[short], term)
		}
	}

	results := make([]Result, 0, len(scores))
	for short, score := range scores {
		results = append(results, Result{
			ID:     ix.docIDs[short],
			Score:  score,
			Terms:  matched[short],
			Stored: ix.stored[short],
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func docsWithTerm(byField map[int]map[int]int) map[int]struct{} {
	docs := make(map[int]struct{})
	for _, m := range byField {
		for short := range m {
			docs[short] = struct{}{}
		}
	}
	return docs
}
