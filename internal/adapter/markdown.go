// Package adapter translates between ctxkeep's store and markdown context
// files: documents with optional YAML frontmatter whose "##" sections each
// become one entry. Import is idempotent because the store deduplicates on
// content.
package adapter

import (
	"bufio"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/raphaelgruber/ctxkeep-go/internal/models"
)

// Doc is a parsed context file.
type Doc struct {
	// Agent, Topics, and Kind come from frontmatter and apply to every
	// section unless a heading overrides the kind.
	Agent  string
	Topics []string
	Kind   models.Kind

	// Preamble is body text before the first section heading.
	Preamble string

	Sections []Section
}

// Section is one "##" heading and its content.
type Section struct {
	Heading string
	Content string
}

// frontmatter is the YAML schema at the top of a context file.
type frontmatter struct {
	Agent  string   `yaml:"agent"`
	Topics []string `yaml:"topics"`
	Kind   string   `yaml:"kind"`
}

// headingKinds maps conventional section titles to entry kinds.
var headingKinds = map[string]models.Kind{
	"decisions":   models.KindDecision,
	"conventions": models.KindConvention,
}

// Parse reads a context file into a Doc. A missing or malformed frontmatter
// block is not an error: the whole input is treated as body.
func Parse(content string) (*Doc, error) {
	doc := &Doc{
		Agent: "imported",
		Kind:  models.KindArtifact,
	}

	body := content
	if strings.HasPrefix(content, "---\n") {
		if end := strings.Index(content[4:], "\n---"); end >= 0 {
			var fm frontmatter
			if err := yaml.Unmarshal([]byte(content[4:4+end]), &fm); err == nil {
				if fm.Agent != "" {
					doc.Agent = fm.Agent
				}
				doc.Topics = fm.Topics
				if k := models.Kind(fm.Kind); k.Valid() {
					doc.Kind = k
				}
			}
			body = strings.TrimPrefix(content[4+end+4:], "\n")
		}
	}

	var (
		current  *Section
		builder  strings.Builder
		preamble strings.Builder
	)
	flush := func() {
		if current != nil {
			current.Content = strings.TrimSpace(builder.String())
			doc.Sections = append(doc.Sections, *current)
			builder.Reset()
		}
	}

	scanner := bufio.NewScanner(strings.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if heading, ok := strings.CutPrefix(line, "## "); ok {
			flush()
			current = &Section{Heading: strings.TrimSpace(heading)}
			continue
		}
		if current != nil {
			builder.WriteString(line)
			builder.WriteString("\n")
		} else {
			preamble.WriteString(line)
			preamble.WriteString("\n")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan context file: %w", err)
	}
	flush()

	doc.Preamble = strings.TrimSpace(preamble.String())
	return doc, nil
}

// sectionKind resolves the kind for one section: a conventional heading wins
// over the document default.
func (d *Doc) sectionKind(heading string) models.Kind {
	if k, ok := headingKinds[strings.ToLower(strings.TrimSpace(heading))]; ok {
		return k
	}
	return d.Kind
}

// sectionTopics combines document topics with the section title tag.
func (d *Doc) sectionTopics(heading string) []string {
	topics := make([]string, 0, len(d.Topics)+1)
	topics = append(topics, d.Topics...)
	if tag := topicTag(heading); tag != "" && !contains(topics, tag) {
		topics = append(topics, tag)
	}
	return topics
}

// topicTag turns a section heading into a topic tag: lowercase, spaces to
// hyphens.
func topicTag(heading string) string {
	return strings.ToLower(strings.Join(strings.Fields(heading), "-"))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
