package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Post is a blog summary on the home page. Excerpt is Markdown.
type Post struct {
	Date     string `yaml:"date" json:"date"`
	Title    string `yaml:"title" json:"title"`
	Excerpt  string `yaml:"excerpt" json:"excerpt"`
	ReadMore string `yaml:"read_more" json:"read_more"`
}

// ExcerptHTML renders the Markdown excerpt. On a conversion error the escaped
// plain text is returned.
func (p Post) ExcerptHTML() template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(p.Excerpt), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(p.Excerpt))
	}
	return template.HTML(buf.String())
}

// Strategy is one row of the comparison table. Values are preformatted percentages.
type Strategy struct {
	Name   string `yaml:"name" json:"name"`
	YTD    string `yaml:"ytd" json:"ytd"`
	OneD   string `yaml:"1d" json:"1d"`
	OneW   string `yaml:"1w" json:"1w"`
	OneM   string `yaml:"1m" json:"1m"`
	ThreeM string `yaml:"3m" json:"3m"`
	SixM   string `yaml:"6m" json:"6m"`
	OneY   string `yaml:"1y" json:"1y"`
	ThreeY string `yaml:"3y" json:"3y"`
	SI     string `yaml:"si" json:"si"`
	DD     string `yaml:"dd" json:"dd"`
	MaxDD  string `yaml:"maxdd" json:"maxdd"`
}

// Columns lists the table headers in display order.
var Columns = []string{"Name", "YTD", "1D", "1W", "1M", "3M", "6M", "1Y", "3Y", "SI", "DD", "MaxDD"}

// Cells returns the row values in Columns order.
func (s Strategy) Cells() []string {
	return []string{s.Name, s.YTD, s.OneD, s.OneW, s.OneM, s.ThreeM, s.SixM, s.OneY, s.ThreeY, s.SI, s.DD, s.MaxDD}
}

// Content is the presentation data of the site.
type Content struct {
	Posts      []Post     `yaml:"posts" json:"posts"`
	Comparison []Strategy `yaml:"comparison" json:"comparison"`
}

// Default returns the embedded content.
func Default() (*Content, error) { return Parse(defaultYAML) }

// Load reads content from path, or the embedded default when path is empty.
func Load(path string) (*Content, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content %s: %w", path, err)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("parse content %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a content YAML document.
func Parse(b []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	for i, s := range c.Comparison {
		if strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("comparison row %d has no name", i+1)
		}
	}
	return &c, nil
}

// ValueClass classifies a percentage string for styling.
func ValueClass(v string) string {
	switch {
	case strings.HasPrefix(v, "-"):
		return "negative"
	case v == "0.0%" || v == "0%":
		return "neutral"
	default:
		return "positive"
	}
}

// RowClass highlights the house strategy.
func RowClass(name string) string {
	if name == "Focused" {
		return "focused-row"
	}
	return ""
}
