package rule

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid marks a rule file that is not a usable Sigma rule.
var ErrInvalid = errors.New("invalid rule")

// Rule holds the parts of a Sigma rule s2s reads itself. Conversion of the
// detection logic is left to the sigma CLI.
type Rule struct {
	Title       string         `yaml:"title" json:"title"`
	ID          string         `yaml:"id" json:"id,omitempty"`
	Status      string         `yaml:"status" json:"status,omitempty"`
	Description string         `yaml:"description" json:"description,omitempty"`
	Author      string         `yaml:"author" json:"author,omitempty"`
	Level       string         `yaml:"level" json:"level,omitempty"`
	Tags        []string       `yaml:"tags" json:"tags,omitempty"`
	Logsource   Logsource      `yaml:"logsource" json:"logsource"`
	Detection   map[string]any `yaml:"detection" json:"detection"`
}

type Logsource struct {
	Category   string `yaml:"category" json:"category,omitempty"`
	Product    string `yaml:"product" json:"product,omitempty"`
	Service    string `yaml:"service" json:"service,omitempty"`
	Definition string `yaml:"definition" json:"definition,omitempty"`
}

// Load reads path, decodes it and checks it against the rule schema.
func Load(path string) (Rule, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Rule{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	r, err := Parse(b)
	if err != nil {
		return Rule{}, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Parse decodes a single-document rule and validates it.
func Parse(b []byte) (Rule, error) {
	var doc map[string]any
	dec := yaml.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&doc); err != nil {
		return Rule{}, fmt.Errorf("%w: yaml: %v", ErrInvalid, err)
	}
	for {
		var extra any
		err := dec.Decode(&extra)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Rule{}, fmt.Errorf("%w: yaml: %v", ErrInvalid, err)
		}
		// A trailing "---" yields an empty document. Anything else is a rule
		// collection, and one saved search cannot hold more than one query.
		if extra != nil {
			return Rule{}, fmt.Errorf("%w: multi-document rule files are not supported", ErrInvalid)
		}
	}
	if doc == nil {
		return Rule{}, fmt.Errorf("%w: empty document", ErrInvalid)
	}
	if err := Validate(doc); err != nil {
		return Rule{}, err
	}
	var r Rule
	if err := yaml.Unmarshal(b, &r); err != nil {
		return Rule{}, fmt.Errorf("%w: yaml: %v", ErrInvalid, err)
	}
	return r, nil
}

// Summary is a one-line description used for the saved search.
func (r Rule) Summary() string {
	var b strings.Builder
	b.WriteString("Generated by s2s from Sigma rule ")
	fmt.Fprintf(&b, "%q", r.Title)
	if r.ID != "" {
		b.WriteString(" (" + r.ID + ")")
	}
	if r.Level != "" {
		b.WriteString(", level " + r.Level)
	}
	if r.Description != "" {
		b.WriteString(": " + strings.TrimSpace(r.Description))
	}
	return b.String()
}
