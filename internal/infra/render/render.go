// Package render writes changelogs in the supported output formats.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/release-changelog/internal/domain"
)

// Headings for the built-in buckets in text output.
var headings = map[domain.BucketKey]string{
	domain.BucketNewFeatures:  "New Features",
	domain.BucketImprovements: "Improvements",
	domain.BucketBugFixes:     "Bug Fixes",
	domain.BucketImages:       "Images",
}

// Changelog writes cl to w in format (json, yaml or text).
func Changelog(w io.Writer, cl *domain.Changelog, format string) error {
	switch format {
	case "", domain.FormatJSON:
		return JSON(w, cl)
	case domain.FormatYAML:
		return YAML(w, cl)
	case domain.FormatText:
		return Text(w, cl)
	}
	return fmt.Errorf("%w: %q", domain.ErrUnknownFormat, format)
}

// JSON writes cl as an indented JSON object. Absent buckets are null.
func JSON(w io.Writer, cl *domain.Changelog) error {
	data, err := json.MarshalIndent(cl, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// YAML writes cl as a YAML mapping in bucket order. Absent buckets are null.
func YAML(w io.Writer, cl *domain.Changelog) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range cl.Keys() {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(key)},
			bucketNode(cl.Get(key)),
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return err
	}
	return enc.Close()
}

func bucketNode(values []string) *yaml.Node {
	if values == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, v := range values {
		seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v})
	}
	return seq
}

// Text writes cl as a human readable list grouped by bucket.
// Styling is applied only when w is a terminal.
func Text(w io.Writer, cl *domain.Changelog) error {
	r := lipgloss.NewRenderer(w)
	headingStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("#89B4FA"))
	bulletStyle := r.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	mutedStyle := r.NewStyle().Faint(true)

	if cl.IsEmpty() {
		_, err := fmt.Fprintln(w, mutedStyle.Render("No changelog entries."))
		return err
	}

	first := true
	for _, key := range cl.Keys() {
		values := cl.Get(key)
		if values == nil {
			continue
		}
		if !first {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		first = false

		if _, err := fmt.Fprintln(w, headingStyle.Render(Heading(key))); err != nil {
			return err
		}
		for _, v := range values {
			if _, err := fmt.Fprintf(w, "  %s %s\n", bulletStyle.Render("•"), v); err != nil {
				return err
			}
		}
	}
	return nil
}

// Heading returns the display name of a bucket.
func Heading(key domain.BucketKey) string {
	if h, ok := headings[key]; ok {
		return h
	}
	return string(key)
}
