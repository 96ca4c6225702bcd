package search

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/poiesic/prodir/core"
)

// Scoring weights for the full filter-aware scorer.
const (
	tokenWeight     = 15
	nameBonus       = 10
	processBonus    = 8
	materialBonus   = 8
	filterWeight    = 10
	certWeight      = 15
	filterPenalty   = 20
	certBonus       = 5
	confidenceBonus = 5
	maxScore        = 100
)

// Scoring weights for the simplified fallback scorer.
const (
	simpleTokenWeight  = 20
	simpleNameBonus    = 10
	simpleCertPerEntry = 5
)

// Filter categories the scorer evaluates against company capabilities.
const (
	FilterMaterials      = "materials"
	FilterProcesses      = "processes"
	FilterCertifications = "certifications"
)

// Tokenize splits a query into lowercase whitespace-separated tokens,
// discarding tokens of length <= 1.
func Tokenize(query string) []string {
	words := strings.Fields(strings.ToLower(query))
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) > 1 {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// surrogateText builds the lowercase concatenation of a company's searchable
// string fields.
func surrogateText(company *core.Company) string {
	fields := make([]string, 0, 16)
	fields = append(fields, company.Name, company.Description)
	if company.Address != nil {
		fields = append(fields, company.Address.City, company.Address.Region)
	}
	if company.Industry != nil {
		fields = append(fields, company.Industry.PrimaryIndustry)
		fields = append(fields, company.Industry.SubIndustries...)
	}
	if company.Capabilities != nil {
		fields = append(fields, company.Capabilities.Processes...)
		fields = append(fields, company.Capabilities.Materials...)
	}
	fields = append(fields, company.Certifications...)

	nonEmpty := fields[:0]
	for _, f := range fields {
		if f != "" {
			nonEmpty = append(nonEmpty, f)
		}
	}
	return strings.ToLower(strings.Join(nonEmpty, " "))
}

// anyContains reports whether any of the lowercased values contains the token
// as a substring.
func anyContains(values []string, token string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), token) {
			return true
		}
	}
	return false
}

// countFilterMatches counts how many of the selected values substring-match at
// least one of the company's normalized values. Both sides are compared in
// normalized form (lowercase, whitespace as underscores) and with the
// underscore substitution reversed, which absorbs either encoding of the
// selected value.
func countFilterMatches(companyValues, selected []string) int {
	normalized := make([]string, len(companyValues))
	for i, v := range companyValues {
		normalized[i] = core.NormalizeValue(v)
	}

	matches := 0
	for _, sel := range selected {
		spaced := core.DenormalizeValue(sel)
		for _, v := range normalized {
			if strings.Contains(v, sel) || strings.Contains(v, spaced) {
				matches++
				break
			}
		}
	}
	return matches
}

// Score computes the filter-aware relevance of a company for the given query
// tokens and filter selections. The result is clamped to [0, 100].
//
// Companies that fail a selected materials or processes filter are penalized
// rather than excluded, so over-narrow filters rank them low instead of
// producing an empty result set.
func Score(company *core.Company, queryWords []string, filters map[string]core.FilterSelection) int {
	score := 0
	text := surrogateText(company)
	nameLower := strings.ToLower(company.Name)

	var processes, materials []string
	if company.Capabilities != nil {
		processes = company.Capabilities.Processes
		materials = company.Capabilities.Materials
	}

	for _, word := range queryWords {
		if !strings.Contains(text, word) {
			continue
		}
		score += tokenWeight
		if strings.Contains(nameLower, word) {
			score += nameBonus
		}
		if anyContains(processes, word) {
			score += processBonus
		}
		if anyContains(materials, word) {
			score += materialBonus
		}
	}

	if sel, ok := filters[FilterMaterials]; ok && len(sel.Values) > 0 {
		if matches := countFilterMatches(materials, sel.Values); matches > 0 {
			score += matches * filterWeight
		} else {
			score -= filterPenalty
		}
	}

	if sel, ok := filters[FilterProcesses]; ok && len(sel.Values) > 0 {
		if matches := countFilterMatches(processes, sel.Values); matches > 0 {
			score += matches * filterWeight
		} else {
			score -= filterPenalty
		}
	}

	// Certifications reward matches but never penalize: a missing certificate
	// is not evidence the company cannot do the work.
	if sel, ok := filters[FilterCertifications]; ok && len(sel.Values) > 0 {
		if matches := countFilterMatches(company.Certifications, sel.Values); matches > 0 {
			score += matches * certWeight
		}
	}

	// Flat bonuses refine ranking among matches; a company that matched
	// nothing stays at zero.
	if score > 0 {
		if len(company.Certifications) > 0 {
			score += certBonus
		}
		if company.Source != nil && company.Source.Confidence > 0.8 {
			score += confidenceBonus
		}
	}

	if score < 0 {
		return 0
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

// SimpleScore is the simplified two-factor variant used by the fallback search
// path: token presence plus name bonus plus a per-certification bonus, without
// filter evaluation. The result is capped at 100.
func SimpleScore(company *core.Company, query string) int {
	score := 0
	nameLower := strings.ToLower(company.Name)

	var processes, materials []string
	if company.Capabilities != nil {
		processes = company.Capabilities.Processes
		materials = company.Capabilities.Materials
	}
	fields := append([]string{company.Name, company.Description}, processes...)
	fields = append(fields, materials...)
	text := strings.ToLower(strings.Join(fields, " "))

	for _, word := range strings.Fields(strings.ToLower(query)) {
		if strings.Contains(text, word) {
			score += simpleTokenWeight
			if strings.Contains(nameLower, word) {
				score += simpleNameBonus
			}
		}
	}

	score += len(company.Certifications) * simpleCertPerEntry

	if score > maxScore {
		return maxScore
	}
	return score
}

// Rank scores every company against the request and returns those with a
// positive score, ordered by score descending. Ties keep catalog order.
func Rank(companies []*core.Company, req core.SearchRequest) []*core.SearchResult {
	queryWords := Tokenize(req.Query)

	results := make([]*core.SearchResult, 0, len(companies))
	for _, company := range companies {
		score := Score(company, queryWords, req.Filters)
		if score > 0 {
			results = append(results, &core.SearchResult{Company: company, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// UniqueValues extracts the sorted distinct values of a dotted field path
// across the corpus. Array-valued fields contribute each element; scalar
// fields contribute their string form. Unknown paths yield no values.
func UniqueValues(companies []*core.Company, fieldPath string) []string {
	seen := make(map[string]bool)
	parts := strings.Split(fieldPath, ".")

	for _, company := range companies {
		// The path walks the record's JSON shape, which is also how field
		// paths are written in filter seed documents.
		raw, err := json.Marshal(company)
		if err != nil {
			continue
		}
		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			continue
		}
		collectValues(nestedValue(doc, parts), seen)
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

func nestedValue(doc any, parts []string) any {
	current := doc
	for _, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[part]
		if !ok {
			return nil
		}
	}
	return current
}

func collectValues(v any, seen map[string]bool) {
	switch val := v.(type) {
	case nil:
	case []any:
		for _, item := range val {
			if s, ok := item.(string); ok && s != "" {
				seen[s] = true
			}
		}
	case string:
		if val != "" {
			seen[val] = true
		}
	}
}
