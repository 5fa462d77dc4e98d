package analysis

import (
	"sort"

	"github.com/KimDantic/Worklog/worklog"
)

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// TopWords counts tokens across table and returns the k most frequent.
// Ties keep the order in which words first appeared.
func TopWords(table worklog.Table, k int) []WordCount {
	if k <= 0 {
		return []WordCount{}
	}

	counts := make([]WordCount, 0, 64)
	index := make(map[string]int, 64)
	for _, record := range table.Records {
		for _, token := range record.Tokens {
			if i, ok := index[token]; ok {
				counts[i].Count++
				continue
			}
			index[token] = len(counts)
			counts = append(counts, WordCount{Word: token, Count: 1})
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > k {
		counts = counts[:k]
	}
	return counts
}
