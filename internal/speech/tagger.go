package speech

import (
	"sort"
	"strings"
	"sync"
)

// Tagger assigns category tags to segments by case-insensitive substring
// matching against a keyword dictionary. It is safe for concurrent use;
// AddKeywords may run alongside Tag.
type Tagger struct {
	mu        sync.RWMutex
	dict      KeywordDict
	minScore  float64
	lowercase [][]string
}

// NewTagger copies dict; later changes to dict do not affect the Tagger.
func NewTagger(dict KeywordDict, minScoreThreshold float64) *Tagger {
	t := &Tagger{dict: dict.Clone(), minScore: minScoreThreshold}
	t.rebuild()
	return t
}

// NewDefaultTagger tags with DefaultKeywordDict and no threshold.
func NewDefaultTagger() *Tagger {
	return NewTagger(DefaultKeywordDict(), 0)
}

func (t *Tagger) rebuild() {
	t.lowercase = make([][]string, len(t.dict))
	for i, c := range t.dict {
		kws := make([]string, len(c.Keywords))
		for j, kw := range c.Keywords {
			kws[j] = strings.ToLower(kw)
		}
		t.lowercase[i] = kws
	}
}

// Categories returns the category names in dictionary order.
func (t *Tagger) Categories() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.dict.Names()
}

// Dict returns a copy of the current dictionary.
func (t *Tagger) Dict() KeywordDict {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.dict.Clone()
}

// Scores returns, for each category with at least one keyword present in
// text, the fraction of its keywords that matched.
func (t *Tagger) Scores(text string) map[string]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.scores(strings.ToLower(text))
}

func (t *Tagger) scores(lower string) map[string]float64 {
	scores := map[string]float64{}
	for i, c := range t.dict {
		matched := 0
		for _, kw := range t.lowercase[i] {
			if strings.Contains(lower, kw) {
				matched++
			}
		}
		if matched > 0 {
			scores[c.Name] = float64(matched) / float64(len(t.lowercase[i]))
		}
	}
	return scores
}

// tagsFrom keeps categories scoring above the threshold, ordered by
// descending score with dictionary order breaking ties.
func (t *Tagger) tagsFrom(scores map[string]float64) []string {
	tags := []string{}
	for _, c := range t.dict {
		if s, ok := scores[c.Name]; ok && s > t.minScore {
			tags = append(tags, c.Name)
		}
	}
	sort.SliceStable(tags, func(i, j int) bool {
		return scores[tags[i]] > scores[tags[j]]
	})
	return tags
}

// TagText returns the tags and scores for a single text.
func (t *Tagger) TagText(text string) ([]string, map[string]float64) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	scores := t.scores(strings.ToLower(text))
	return t.tagsFrom(scores), scores
}

// MatchedKeywords returns the sorted, deduplicated dictionary keywords
// found in text, lower-cased.
func (t *Tagger) MatchedKeywords(text string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	lower := strings.ToLower(text)
	seen := map[string]struct{}{}
	for _, kws := range t.lowercase {
		for _, kw := range kws {
			if kw != "" && strings.Contains(lower, kw) {
				seen[kw] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for kw := range seen {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}

// Tag annotates each segment, preserving input order.
func (t *Tagger) Tag(segments []Segment) []TaggedSegment {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]TaggedSegment, 0, len(segments))
	for _, seg := range segments {
		scores := t.scores(strings.ToLower(seg.Text))
		out = append(out, seg.WithTags(t.tagsFrom(scores), scores))
	}
	return out
}

// AddKeywords appends keywords to category, creating it at the end of the
// dictionary if needed. Duplicates and blank keywords are dropped.
func (t *Tagger) AddKeywords(category string, keywords ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := -1
	for i, c := range t.dict {
		if c.Name == category {
			idx = i
			break
		}
	}
	if idx < 0 {
		t.dict = append(t.dict, Category{Name: category})
		idx = len(t.dict) - 1
	}

	seen := make(map[string]struct{}, len(t.dict[idx].Keywords)+len(keywords))
	merged := make([]string, 0, len(t.dict[idx].Keywords)+len(keywords))
	for _, kw := range append(append([]string(nil), t.dict[idx].Keywords...), keywords...) {
		if strings.TrimSpace(kw) == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		merged = append(merged, kw)
	}
	t.dict[idx].Keywords = merged
	t.rebuild()
}
