package logcat

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"time"
)

// DefaultTopN is how many top tags a summary ranks unless told otherwise.
const DefaultTopN = 10

// fatal/ANR heuristics counted independently of the level scale
var reFatalPattern = regexp.MustCompile(`(?i)FATAL EXCEPTION|ANR in|java\.lang\.`)

// TagCount ranks one tag in the summary.
type TagCount struct {
	Tag    string `json:"tag"`
	Count  int64  `json:"count"`
	Errors int64  `json:"errors"` // Error + Fatal lines
}

// Summary is the aggregate view over one analyzed log stream. Counts by
// level and tag cover well-formed lines only; unstructured lines are counted
// once in Unstructured and contribute to TotalLines.
type Summary struct {
	File         string           `json:"file,omitempty"`
	AnalyzedAt   time.Time        `json:"analyzed_at"`
	TotalLines   int64            `json:"lines"`
	Unstructured int64            `json:"unstructured"`
	Levels       map[string]int64 `json:"levels"`
	Tags         map[string]int64 `json:"tags"`
	TopTags      []TagCount       `json:"top_tags"`
	FatalsOrANRs int64            `json:"fatals_or_anrs"`
}

// tagAccum tracks per-tag counts plus first-seen order for tie-breaking.
type tagAccum struct {
	total     int64
	errors    int64
	firstSeen int64
}

// Analyze reads lines from r and builds a Summary ranking the topN tags.
// Individual malformed lines never fail the analysis; only a read error does.
func Analyze(r io.Reader, topN int) (*Summary, error) {
	if topN <= 0 {
		topN = DefaultTopN
	}

	s := &Summary{
		AnalyzedAt: time.Now(),
		Levels:     make(map[string]int64),
		Tags:       make(map[string]int64),
	}
	tags := make(map[string]*tagAccum)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		s.TotalLines++

		if reFatalPattern.MatchString(line) {
			s.FatalsOrANRs++
		}

		entry, ok := ParseLine(line)
		if !ok {
			s.Unstructured++
			continue
		}

		s.Levels[entry.LevelName]++
		s.Tags[entry.Tag]++

		acc := tags[entry.Tag]
		if acc == nil {
			acc = &tagAccum{firstSeen: s.TotalLines}
			tags[entry.Tag] = acc
		}
		acc.total++
		if entry.Level >= LevelError {
			acc.errors++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log stream: %w", err)
	}

	s.TopTags = rankTags(tags, topN)
	return s, nil
}

// rankTags orders tags by Error+Fatal count descending, first-seen order on
// ties, and keeps the top n.
func rankTags(tags map[string]*tagAccum, n int) []TagCount {
	type ranked struct {
		tag string
		acc *tagAccum
	}
	all := make([]ranked, 0, len(tags))
	for tag, acc := range tags {
		all = append(all, ranked{tag, acc})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].acc.errors != all[j].acc.errors {
			return all[i].acc.errors > all[j].acc.errors
		}
		return all[i].acc.firstSeen < all[j].acc.firstSeen
	})

	if len(all) > n {
		all = all[:n]
	}
	out := make([]TagCount, len(all))
	for i, r := range all {
		out[i] = TagCount{Tag: r.tag, Count: r.acc.total, Errors: r.acc.errors}
	}
	return out
}

// AnalyzeFile opens path (transparently decompressing .zst and .gz captures)
// and analyzes it.
func AnalyzeFile(path string, topN int) (*Summary, error) {
	r, err := OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	s, err := Analyze(r, topN)
	if err != nil {
		return nil, err
	}
	s.File = path
	return s, nil
}
