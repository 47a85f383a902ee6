package domain

import (
	"bytes"
	"encoding/json"
	"regexp"
	"slices"
	"strings"
)

// BucketKey names a changelog bucket in the generated output.
type BucketKey string

// Built-in buckets.
const (
	BucketNewFeatures  BucketKey = "newFeatures"
	BucketImprovements BucketKey = "improvements"
	BucketBugFixes     BucketKey = "bugFixes"
	BucketImages       BucketKey = "images"
)

// TagRule maps a line prefix tag to the bucket its values are collected into.
// A PR description line "CHANGELOG-BUG-FIX: Fixed crash" matches the rule
// {Tag: "CHANGELOG-BUG-FIX", Bucket: BucketBugFixes}.
type TagRule struct {
	Tag        string    `toml:"tag" json:"tag" yaml:"tag"`
	Bucket     BucketKey `toml:"bucket" json:"bucket" yaml:"bucket"`
	Deprecated bool      `toml:"deprecated,omitempty" json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// DefaultTagRules returns the tag registry of the current PR template.
// CHANGELOG-NEW and CHANGELOG-FIXES are no longer in the template but older
// PRs still use them.
func DefaultTagRules() []TagRule {
	return []TagRule{
		{Tag: "CHANGELOG-NEW-FEATURE", Bucket: BucketNewFeatures},
		{Tag: "CHANGELOG-IMPROVEMENT", Bucket: BucketImprovements},
		{Tag: "CHANGELOG-BUG-FIX", Bucket: BucketBugFixes},
		{Tag: "CHANGELOG-IMAGE", Bucket: BucketImages},
		{Tag: "CHANGELOG-NEW", Bucket: BucketNewFeatures, Deprecated: true},
		{Tag: "CHANGELOG-FIXES", Bucket: BucketBugFixes, Deprecated: true},
	}
}

// DefaultSingleValueBuckets returns the buckets collapsed to their last value.
// Clients can only display one image per release.
func DefaultSingleValueBuckets() []BucketKey {
	return []BucketKey{BucketImages}
}

// templateText matches unfilled PR template placeholders such as "{{describe your feature}}".
var templateText = regexp.MustCompile(`{{.*}}`)

// Changelog holds the extracted entries per bucket.
// A bucket with no entries is absent (Get returns nil), never an empty slice,
// so consumers can tell "no entries" apart from "not collected".
type Changelog struct {
	buckets map[BucketKey][]string
	keys    []BucketKey
}

// NewChangelog creates a changelog whose buckets are all absent.
func NewChangelog(keys ...BucketKey) *Changelog {
	return &Changelog{
		buckets: make(map[BucketKey][]string, len(keys)),
		keys:    slices.Clone(keys),
	}
}

// Keys returns the bucket keys in output order.
func (c *Changelog) Keys() []BucketKey {
	return slices.Clone(c.keys)
}

// Get returns the entries of a bucket, or nil when the bucket is absent.
func (c *Changelog) Get(key BucketKey) []string {
	return c.buckets[key]
}

// IsEmpty reports whether every bucket is absent.
func (c *Changelog) IsEmpty() bool {
	for _, k := range c.keys {
		if len(c.buckets[k]) > 0 {
			return false
		}
	}
	return true
}

// set stores values for key; an empty list leaves the bucket absent.
func (c *Changelog) set(key BucketKey, values []string) {
	if len(values) == 0 {
		delete(c.buckets, key)
		return
	}
	c.buckets[key] = values
}

// MarshalJSON encodes the changelog as an object with one member per bucket,
// in bucket order. Absent buckets are encoded as null.
func (c *Changelog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(k))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.buckets[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Extractor parses PR descriptions into a Changelog using an ordered tag registry.
type Extractor struct {
	single map[BucketKey]bool
	rules  []TagRule
	keys   []BucketKey
}

// NewExtractor creates an Extractor for rules. Buckets listed in singleValue
// keep only the last value found across all descriptions.
func NewExtractor(rules []TagRule, singleValue []BucketKey) *Extractor {
	e := &Extractor{
		rules:  slices.Clone(rules),
		single: make(map[BucketKey]bool, len(singleValue)),
	}
	for _, r := range rules {
		if !slices.Contains(e.keys, r.Bucket) {
			e.keys = append(e.keys, r.Bucket)
		}
	}
	for _, k := range singleValue {
		e.single[k] = true
	}
	return e
}

// DefaultExtractor returns an Extractor for the default tag registry.
func DefaultExtractor() *Extractor {
	return NewExtractor(DefaultTagRules(), DefaultSingleValueBuckets())
}

// Rules returns the tag registry in match order.
func (e *Extractor) Rules() []TagRule {
	return slices.Clone(e.rules)
}

// Buckets returns the distinct buckets of the registry in first-seen order.
func (e *Extractor) Buckets() []BucketKey {
	return slices.Clone(e.keys)
}

// IsSingleValue reports whether key is collapsed to its last value.
func (e *Extractor) IsSingleValue(key BucketKey) bool {
	return e.single[key]
}

// Empty returns a changelog with every bucket of the registry absent.
func (e *Extractor) Empty() *Changelog {
	return NewChangelog(e.keys...)
}

// Extract builds a changelog from PR descriptions.
//
// Descriptions are processed in order; within a description each rule is
// applied in registry order and matches are kept in line order. Values are
// not deduplicated.
func (e *Extractor) Extract(descriptions []string) *Changelog {
	collected := make(map[BucketKey][]string, len(e.keys))
	for _, desc := range descriptions {
		lines := splitLines(desc)
		for _, rule := range e.rules {
			collected[rule.Bucket] = append(collected[rule.Bucket], matchTag(lines, rule.Tag)...)
		}
	}

	cl := e.Empty()
	for _, k := range e.keys {
		values := collected[k]
		if e.single[k] && len(values) > 1 {
			values = values[len(values)-1:]
		}
		cl.set(k, values)
	}
	return cl
}

// matchTag returns the trimmed values of every line that starts with "tag:".
// Empty values and unfilled template text are skipped.
func matchTag(lines []string, tag string) []string {
	prefix := tag + ":"
	var out []string
	for _, line := range lines {
		rest, ok := strings.CutPrefix(line, prefix)
		if !ok {
			continue
		}
		value := strings.TrimSpace(rest)
		if value == "" || templateText.MatchString(value) {
			continue
		}
		out = append(out, value)
	}
	return out
}

func splitLines(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
	})
}
