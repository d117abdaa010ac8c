// Package render turns an analyzed document into an interactive HTML report.
package render

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/swtk/internal/logging"
	"github.com/tsawler/swtk/model"
)

//go:embed assets/default.css assets/default.js
var assets embed.FS

// DefaultMathJax is the MathJax bundle loaded when math rendering is on.
const DefaultMathJax = "https://cdn.jsdelivr.net/npm/mathjax@3/es5/tex-mml-chtml.js"

// DefaultTitle is used when neither the options nor the document name one.
const DefaultTitle = "Scientific Writing Toolkit"

// fallbackColors are assigned in turn to styles that carry no color.
var fallbackColors = []string{"fcc", "cfc", "ccf", "cff", "fcf", "ffc"}

// Resources names the stylesheet, script and MathJax bundle of the page.
// Empty paths select the embedded defaults.
type Resources struct {
	Stylesheet string
	Script     string
	MathJax    string
}

// Options controls page assembly.
type Options struct {
	Resources Resources

	// External links the stylesheet and script by absolute path instead of
	// inlining them. Embedded defaults are always inlined.
	External bool

	Math model.MathMode

	// StyleOverrides replaces the color of the named styles.
	StyleOverrides map[string]model.Color

	// Title is the page title. Defaults to the document title.
	Title string
}

// Renderer writes HTML reports.
type Renderer struct {
	opts Options
}

// New creates a renderer.
func New(opts Options) *Renderer {
	if opts.Resources.MathJax == "" {
		opts.Resources.MathJax = DefaultMathJax
	}
	return &Renderer{opts: opts}
}

// Render writes the complete report page for doc to w.
func (r *Renderer) Render(w io.Writer, doc *model.Document) error {
	page, err := r.Page(doc)
	if err != nil {
		return err
	}
	if err := html.Render(w, page); err != nil {
		return fmt.Errorf("writing HTML: %w", err)
	}
	logging.Debug("rendered report", "blocks", doc.BlockCount(), "reports", len(doc.Reports()))
	return nil
}

// Page builds the page as an HTML node tree rooted at a document node.
func (r *Renderer) Page(doc *model.Document) (*html.Node, error) {
	head, err := r.head(doc)
	if err != nil {
		return nil, err
	}

	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	page := model.Element(atom.Html)
	root.AppendChild(page)
	page.AppendChild(head)

	body := model.Element(atom.Body)
	body.AppendChild(toolbar())
	body.AppendChild(r.content(doc))
	if reports := doc.Reports(); len(reports) > 0 {
		body.AppendChild(reportList(reports))
	}
	page.AppendChild(body)
	return root, nil
}

func (r *Renderer) head(doc *model.Document) (*html.Node, error) {
	head := model.Element(atom.Head)
	head.AppendChild(model.Element(atom.Meta, "charset", "utf-8"))

	title := model.Element(atom.Title)
	title.AppendChild(model.TextNode(r.title(doc)))
	head.AppendChild(title)

	css, err := r.resource(r.opts.Resources.Stylesheet, "assets/default.css", atom.Style)
	if err != nil {
		return nil, err
	}
	head.AppendChild(css)

	js, err := r.resource(r.opts.Resources.Script, "assets/default.js", atom.Script)
	if err != nil {
		return nil, err
	}
	head.AppendChild(js)

	if rules := r.dynamicCSS(doc.Reports()); rules != "" {
		head.AppendChild(rawElement(atom.Style, rules))
	}

	if r.opts.Math != model.MathOff {
		head.AppendChild(model.Element(atom.Script,
			"id", "MathJax-script", "async", "async", "src", r.opts.Resources.MathJax))
	}
	return head, nil
}

func (r *Renderer) title(doc *model.Document) string {
	switch {
	case r.opts.Title != "":
		return r.opts.Title
	case doc.Metadata.Title != "":
		return doc.Metadata.Title
	default:
		return DefaultTitle
	}
}

// resource returns a style or script element for path, falling back to
// the embedded asset when path is empty.
func (r *Renderer) resource(path, embedded string, a atom.Atom) (*html.Node, error) {
	if path == "" {
		data, err := assets.ReadFile(embedded)
		if err != nil {
			return nil, fmt.Errorf("reading embedded %s: %w", embedded, err)
		}
		return rawElement(a, string(data)), nil
	}

	if r.opts.External {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", path, err)
		}
		if a == atom.Style {
			return model.Element(atom.Link, "rel", "stylesheet", "type", "text/css", "href", abs), nil
		}
		return model.Element(atom.Script, "src", abs), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return rawElement(a, string(data)), nil
}

func rawElement(a atom.Atom, text string) *html.Node {
	n := model.Element(a)
	n.AppendChild(model.TextNode(text))
	return n
}

// dynamicCSS collects the rules of every report style in report order.
// Styles without their own color take the next fallback color.
func (r *Renderer) dynamicCSS(reports []*model.Report) string {
	var rules []string
	next := -1
	for _, rep := range reports {
		for _, s := range rep.Styles {
			if c, ok := r.opts.StyleOverrides[s.Name]; ok {
				s = s.WithColor(c)
			}
			if s.Defined() {
				rules = append(rules, s.CSS())
				continue
			}
			next = (next + 1) % len(fallbackColors)
			rules = append(rules, fmt.Sprintf(".%s { background-color: #%s; }", s.Name, fallbackColors[next]))
		}
	}
	return strings.Join(rules, "\n")
}

func (r *Renderer) content(doc *model.Document) *html.Node {
	wrapper := div("textWrapper", "")
	content := div("content", "")
	wrapper.AppendChild(content)

	if doc.Metadata.Title != "" {
		content.AppendChild(div("title", doc.Metadata.Title))
	}
	if doc.Metadata.Author != "" {
		content.AppendChild(div("author", doc.Metadata.Author))
	}

	opts := model.RenderOptions{Math: r.opts.Math}
	for _, b := range doc.Blocks() {
		content.AppendChild(b.Node(opts))
	}
	return wrapper
}
