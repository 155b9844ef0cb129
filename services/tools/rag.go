package tools

import (
	"context"
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

//go:embed knowledge/*.yaml
var knowledgeFS embed.FS

const defaultKnowledgeFile = "knowledge/careers.yaml"

// Retriever fetches relevant context from a knowledge base.
type Retriever interface {
	Retrieve(ctx context.Context, query string, opts RetrievalOptions) ([]Document, error)
}

// RetrievalOptions configures retrieval behavior.
type RetrievalOptions struct {
	TopK      int
	Threshold float64
	Filters   map[string]string
}

// Document represents a knowledge base entry.
type Document struct {
	ID       string            `yaml:"id"`
	Title    string            `yaml:"title"`
	Content  string            `yaml:"content"`
	Tags     []string          `yaml:"tags"`
	Metadata map[string]string `yaml:"metadata"`
	Score    float64           `yaml:"-"`
}

// KnowledgeBase is an in-memory keyword-scored document store.
type KnowledgeBase struct {
	docs  []Document
	terms [][]string
}

type knowledgeFile struct {
	Documents []Document `yaml:"documents"`
}

// LoadKnowledgeBase reads a YAML knowledge base from path, or the embedded
// default when path is empty.
func LoadKnowledgeBase(path string) (*KnowledgeBase, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = knowledgeFS.ReadFile(defaultKnowledgeFile)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge base: %w", err)
	}
	return ParseKnowledgeBase(data)
}

// ParseKnowledgeBase builds a knowledge base from YAML.
func ParseKnowledgeBase(data []byte) (*KnowledgeBase, error) {
	var f knowledgeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge base: %w", err)
	}
	return NewKnowledgeBase(f.Documents)
}

// NewKnowledgeBase indexes docs. Every document needs an ID and content.
func NewKnowledgeBase(docs []Document) (*KnowledgeBase, error) {
	kb := &KnowledgeBase{
		docs:  make([]Document, 0, len(docs)),
		terms: make([][]string, 0, len(docs)),
	}
	seen := make(map[string]bool, len(docs))
	for i, d := range docs {
		if d.ID == "" || strings.TrimSpace(d.Content) == "" {
			return nil, fmt.Errorf("knowledge base document %d: id and content are required", i)
		}
		if seen[d.ID] {
			return nil, fmt.Errorf("knowledge base document %q: duplicate id", d.ID)
		}
		seen[d.ID] = true

		kb.docs = append(kb.docs, d)
		text := d.Title + " " + d.Content + " " + strings.Join(d.Tags, " ")
		kb.terms = append(kb.terms, tokenize(text))
	}
	return kb, nil
}

// Len returns the number of documents.
func (kb *KnowledgeBase) Len() int { return len(kb.docs) }

// Retrieve implements Retriever. Score is the fraction of distinct query
// terms that appear in the document; ties keep file order.
func (kb *KnowledgeBase) Retrieve(ctx context.Context, query string, opts RetrievalOptions) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	queryTerms := uniq(tokenize(query))
	if len(queryTerms) == 0 {
		return nil, ErrEmptyInput
	}
	topK := opts.TopK
	if topK <= 0 {
		topK = 3
	}

	var hits []Document
	for i, d := range kb.docs {
		if !matchesFilters(d, opts.Filters) {
			continue
		}
		docTerms := make(map[string]bool, len(kb.terms[i]))
		for _, term := range kb.terms[i] {
			docTerms[term] = true
		}
		matched := 0
		for _, term := range queryTerms {
			if docTerms[term] {
				matched++
			}
		}
		score := float64(matched) / float64(len(queryTerms))
		if matched == 0 || score < opts.Threshold {
			continue
		}
		d.Score = score
		hits = append(hits, d)
	}

	sort.SliceStable(hits, func(a, b int) bool { return hits[a].Score > hits[b].Score })
	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

func matchesFilters(d Document, filters map[string]string) bool {
	for k, v := range filters {
		if !strings.EqualFold(d.Metadata[k], v) {
			return false
		}
	}
	return true
}

var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "for": true, "from": true, "how": true,
	"in": true, "is": true, "of": true, "on": true, "or": true, "the": true, "to": true,
	"what": true, "with": true, "i": true, "my": true, "me": true, "do": true, "need": true,
}

func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})
	out := fields[:0]
	for _, f := range fields {
		if !stopWords[f] {
			out = append(out, f)
		}
	}
	return out
}

func uniq(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// RAGTool exposes a Retriever as an agent tool.
type RAGTool struct {
	retriever Retriever
	topK      int
}

// NewRAGTool creates a knowledge base search tool.
func NewRAGTool(r Retriever) *RAGTool {
	return &RAGTool{retriever: r, topK: 3}
}

// Name implements Tool.
func (t *RAGTool) Name() string { return "knowledge_base" }

// Description implements Tool.
func (t *RAGTool) Description() string {
	return "Look up curated notes on career paths, role skill requirements and learning resources. Input: a topic or role"
}

// Invoke implements Tool.
func (t *RAGTool) Invoke(ctx context.Context, input string) (string, error) {
	docs, err := t.retriever.Retrieve(ctx, input, RetrievalOptions{TopK: t.topK})
	if err != nil {
		return "", err
	}
	if len(docs) == 0 {
		return "No matching knowledge base entries.", nil
	}

	var b strings.Builder
	for i, d := range docs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%s] %s\n%s", d.ID, d.Title, strings.TrimSpace(d.Content))
	}
	return b.String(), nil
}
