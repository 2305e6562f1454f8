// Package archive mirrors published posts to markdown files on disk so
// the content survives outside the database.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"personal-site/internal/domain/entity"
)

// MarkdownMirror writes one markdown file per post under
// <baseDir>/content/posts/<slug>.md with a YAML frontmatter header.
type MarkdownMirror struct {
	baseDir string
}

func NewMarkdownMirror(baseDir string) *MarkdownMirror {
	return &MarkdownMirror{baseDir: baseDir}
}

type frontmatter struct {
	Title       string `yaml:"title"`
	Slug        string `yaml:"slug"`
	PublishedAt string `yaml:"published_at,omitempty"`
	UpdatedAt   string `yaml:"updated_at"`
}

// WritePost renders the post to its mirror file, replacing any previous
// version. The caller decides whether a failure matters.
func (m *MarkdownMirror) WritePost(_ context.Context, post *entity.Post) error {
	fm := frontmatter{
		Title:     post.Title,
		Slug:      post.Slug,
		UpdatedAt: post.UpdatedAt.Format(time.RFC3339),
	}
	if post.PublishedAt != nil {
		fm.PublishedAt = post.PublishedAt.Format(time.RFC3339)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return fmt.Errorf("encode frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode frontmatter: %w", err)
	}
	buf.WriteString("---\n\n")
	buf.WriteString(post.Content)
	if post.Content != "" && post.Content[len(post.Content)-1] != '\n' {
		buf.WriteByte('\n')
	}

	dir := filepath.Join(m.baseDir, "content", "posts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create mirror dir: %w", err)
	}

	path := filepath.Join(dir, post.Slug+".md")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write mirror file: %w", err)
	}
	return nil
}

// RemovePost deletes the mirror file for a slug. Missing files are fine.
func (m *MarkdownMirror) RemovePost(_ context.Context, slug string) error {
	path := filepath.Join(m.baseDir, "content", "posts", slug+".md")
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove mirror file: %w", err)
	}
	return nil
}
