package render

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/swtk/internal/logging"
	"github.com/tsawler/swtk/model"
)

// div creates a div with an optional class and text.
func div(class, text string) *html.Node {
	n := model.Element(atom.Div, "class", class)
	if text != "" {
		n.AppendChild(model.TextNode(text))
	}
	return n
}

func button(class, id, text string) *html.Node {
	n := model.Element(atom.Div, "class", class, "id", id)
	n.AppendChild(model.TextNode(text))
	return n
}

// toolbar builds the fixed header. Items float right, so they are listed
// right to left.
func toolbar() *html.Node {
	header := div("header", DefaultTitle+" ")
	header.AppendChild(model.Element(atom.Div, "id", "tooltip"))
	for _, n := range []*html.Node{
		button("button", "expand-button", "details"),
		button("button", "clear-highlights", "highlights"),
		div("label", "Toggle: "),
		div("separator", ""),
		button("button blue", "verb-report", "verb report"),
		button("button blue", "frequent-phrases", "frequent phrases"),
		button("button blue", "clutter", "clutter"),
		div("label", "Reports: "),
		div("separator", ""),
		button("button green", "general-guidelines", "getting started"),
		div("label", "Help: "),
	} {
		header.AppendChild(n)
	}
	return header
}

func reportList(reports []*model.Report) *html.Node {
	list := div("globalReports", "")
	for _, r := range reports {
		list.AppendChild(reportItem(r))
	}
	list.AppendChild(div("about", "report generated with the scientific writing toolkit"))
	return list
}

// reportItem builds the widget of one report: a title row with the toggle
// or label, the help and details buttons and the summary, followed by the
// collapsed help and details panels.
func reportItem(r *model.Report) *html.Node {
	item := model.Element(atom.Div, "class", "reportItem", "id", r.ID())

	title := div("reportTitle", "")
	if len(r.Styles) > 0 {
		title.AppendChild(toggle(strings.Join(r.StyleNames(), " "), r.Label))
	} else {
		title.AppendChild(div("reportLabel", r.Label))
	}
	if r.Help != "" {
		title.AppendChild(div("button helpButton", "help"))
	}
	if r.Details != nil {
		title.AppendChild(div("button detailsButton", "details"))
	}
	if r.Summary != "" {
		title.AppendChild(div("reportSummary", r.Summary))
	}
	title.AppendChild(model.Element(atom.Div, "style", "clear: both;"))
	item.AppendChild(title)

	if r.Help != "" {
		help := div("reportHelp", "")
		for _, n := range helpNodes(r.Help) {
			help.AppendChild(n)
		}
		item.AppendChild(help)
	}
	if r.Details != nil {
		details := div("reportDetails", "")
		ul := model.Element(atom.Ul)
		for _, d := range r.Details {
			li := model.Element(atom.Li)
			if d.Class != "" {
				li.AppendChild(toggle(d.Class, d.Text))
			} else {
				li.AppendChild(model.TextNode(d.Text))
			}
			ul.AppendChild(li)
		}
		details.AppendChild(ul)
		item.AppendChild(details)
	}
	return item
}

func toggle(css, text string) *html.Node {
	n := model.Element(atom.Div, "class", "toggleButton", "data-css", css)
	n.AppendChild(model.TextNode(text))
	return n
}

// helpNodes parses help HTML as a fragment of a div. Active content is
// removed. Unparseable help is shown as text.
func helpNodes(help string) []*html.Node {
	nodes, err := html.ParseFragment(strings.NewReader(help), model.Element(atom.Div))
	if err != nil {
		logging.Warn("help text is not valid HTML", "error", err)
		return []*html.Node{model.TextNode(help)}
	}
	kept := nodes[:0]
	for _, n := range nodes {
		if n.Type == html.ElementNode && shouldSkipElement(n.Data) {
			continue
		}
		stripActive(n)
		kept = append(kept, n)
	}
	return kept
}
