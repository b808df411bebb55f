package cms

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultContentDir = "content"
	studioFile        = "studio.yaml"
	aboutFile         = "about.md"
)

// FileProvider reads studio.yaml and an optional about.md from a directory.
type FileProvider struct {
	dir string
}

// NewFileProvider builds a provider rooted at dir (default "content").
func NewFileProvider(dir string) *FileProvider {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = defaultContentDir
	}
	return &FileProvider{dir: dir}
}

// Dir returns the configured directory.
func (p *FileProvider) Dir() string { return p.dir }

type aboutFrontMatter struct {
	Tagline string `yaml:"tagline"`
	Intro   string `yaml:"intro"`
}

// LoadContent implements Provider.
func (p *FileProvider) LoadContent(ctx context.Context) (Content, error) {
	if err := ctx.Err(); err != nil {
		return Content{}, err
	}
	path := filepath.Join(p.dir, studioFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Content{}, ErrNotFound
		}
		return Content{}, fmt.Errorf("cms: read %s: %w", path, err)
	}
	var c Content
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Content{}, fmt.Errorf("cms: parse %s: %w", path, err)
	}

	aboutPath := filepath.Join(p.dir, aboutFile)
	if data, err := os.ReadFile(aboutPath); err == nil {
		fm, body := splitFrontMatter(string(data))
		front := aboutFrontMatter{}
		if strings.TrimSpace(fm) != "" {
			if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
				return Content{}, fmt.Errorf("cms: parse front matter %s: %w", aboutPath, err)
			}
		}
		if strings.TrimSpace(body) != "" {
			c.Studio.About = body
		}
		c.Studio.Tagline = firstNonEmpty(front.Tagline, c.Studio.Tagline)
		c.Studio.Intro = firstNonEmpty(front.Intro, c.Studio.Intro)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Content{}, fmt.Errorf("cms: read %s: %w", aboutPath, err)
	}

	c.Source = "file:" + p.dir
	return c, nil
}
