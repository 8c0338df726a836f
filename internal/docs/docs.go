// Package docs serves the user-facing documentation pages as markdown (for
// MCP resources) and HTML (for the web server).
package docs

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

// ErrPageNotFound is returned for an unknown slug.
var ErrPageNotFound = errors.New("page not found")

//go:embed pages/*.md
var pagesFS embed.FS

// Page is one documentation page.
type Page struct {
	Slug        string
	Title       string
	Description string
	Markdown    string
}

type frontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

var (
	pages    = mustLoad(pagesFS)
	renderer = goldmark.New(goldmark.WithExtensions(extension.GFM))
)

// All returns every page, index first and the rest by slug.
func All() []Page {
	return slices.Clone(pages)
}

// Get returns the page with the given slug.
func Get(slug string) (Page, error) {
	for _, p := range pages {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Page{}, fmt.Errorf("%w: %s", ErrPageNotFound, slug)
}

// HTML renders a page body to HTML.
func (p Page) HTML() ([]byte, error) {
	var buf bytes.Buffer
	if err := renderer.Convert([]byte(p.Markdown), &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", p.Slug, err)
	}
	return buf.Bytes(), nil
}

func mustLoad(fsys fs.FS) []Page {
	loaded, err := load(fsys)
	if err != nil {
		panic(err)
	}
	return loaded
}

func load(fsys fs.FS) ([]Page, error) {
	names, err := fs.Glob(fsys, "pages/*.md")
	if err != nil {
		return nil, err
	}
	out := make([]Page, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		p, err := parse(strings.TrimSuffix(path.Base(name), ".md"), string(data))
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Page) int {
		switch {
		case a.Slug == "index":
			return -1
		case b.Slug == "index":
			return 1
		default:
			return strings.Compare(a.Slug, b.Slug)
		}
	})
	return out, nil
}

// parse splits a "---" delimited YAML header from the markdown body.
func parse(slug, raw string) (Page, error) {
	p := Page{Slug: slug, Title: slug, Markdown: raw}
	rest, ok := strings.CutPrefix(raw, "---\n")
	if !ok {
		return p, nil
	}
	header, body, ok := strings.Cut(rest, "\n---\n")
	if !ok {
		return Page{}, fmt.Errorf("page %s: unterminated front matter", slug)
	}
	var fm frontMatter
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return Page{}, fmt.Errorf("page %s: %w", slug, err)
	}
	if fm.Title != "" {
		p.Title = fm.Title
	}
	p.Description = fm.Description
	p.Markdown = strings.TrimLeft(body, "\n")
	return p, nil
}
