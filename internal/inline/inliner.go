package inline

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/inliner"

	"github.com/backmassage/xslmail/internal/engine"
)

// reXMLDecl matches a leading XML declaration, which the HTML parser would
// turn into a comment.
var reXMLDecl = regexp.MustCompile(`^\s*<\?xml\b[^>]*\?>\s*`)

// Inliner implements engine.StyleInliner.
type Inliner struct{}

// New returns an Inliner.
func New() *Inliner { return &Inliner{} }

// InlineStyles inlines the document's stylesheets according to opts.
func (i *Inliner) InlineStyles(ctx context.Context, markup string, opts engine.InlineOptions) (res engine.Result, err error) {
	if err := ctx.Err(); err != nil {
		return engine.Result{}, err
	}

	var ignore cascadia.Selector
	if opts.IgnoreSelector != "" {
		ignore, err = cascadia.Compile(opts.IgnoreSelector)
		if err != nil {
			return engine.Result{}, fmt.Errorf("invalid ignore selector %q: %w", opts.IgnoreSelector, err)
		}
	}

	decl := reXMLDecl.FindString(markup)
	doc, err := parse(markup[len(decl):])
	if err != nil {
		return engine.Result{}, err
	}

	kept := detachIgnored(doc, ignore)
	terminateDeclarations(doc)

	warnings, err := collectWarnings(doc)
	if err != nil {
		return engine.Result{}, err
	}

	prepared, err := doc.Html()
	if err != nil {
		return engine.Result{}, fmt.Errorf("render document: %w", err)
	}

	// douceur panics on documents it cannot attach rules to.
	defer func() {
		if r := recover(); r != nil {
			res, err = engine.Result{}, fmt.Errorf("css inliner: %v", r)
		}
	}()
	inlined, err := inliner.Inline(prepared)
	if err != nil {
		return engine.Result{}, fmt.Errorf("css inliner: %w", err)
	}

	out, err := finish(inlined, kept, opts)
	if err != nil {
		return engine.Result{}, err
	}
	return engine.Result{Markup: decl + out, Warnings: warnings}, nil
}

func parse(markup string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}
	return doc, nil
}

// detachIgnored removes the <style> elements matched by sel and returns
// their markup in document order.
func detachIgnored(doc *goquery.Document, sel cascadia.Selector) []string {
	if sel == nil {
		return nil
	}
	var kept []string
	doc.Find("style").FilterMatcher(sel).Each(func(_ int, s *goquery.Selection) {
		if h, err := goquery.OuterHtml(s); err == nil {
			kept = append(kept, h)
		}
		s.Remove()
	})
	return kept
}

// terminateDeclarations ends every non-empty style attribute with ';'.
// douceur drops the value of an unterminated last declaration when it
// merges stylesheet rules into the attribute.
func terminateDeclarations(doc *goquery.Document) {
	doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		v := strings.TrimSpace(s.AttrOr("style", ""))
		if v != "" && !strings.HasSuffix(v, ";") {
			s.SetAttr("style", v+";")
		}
	})
}

// finish applies the post-inlining options to the inliner's output and
// restores the ignored style elements at the end of <head>.
func finish(inlined string, kept []string, opts engine.InlineOptions) (string, error) {
	doc, err := parse(inlined)
	if err != nil {
		return "", err
	}

	if opts.RemoveStyleElements {
		doc.Find("style").Remove()
	}
	if opts.StripIDAndClass {
		doc.Find("[id], [class]").RemoveAttr("id").RemoveAttr("class")
	}
	if opts.RemoveComments {
		for _, n := range doc.Nodes {
			removeComments(n)
		}
	}
	if len(kept) > 0 {
		doc.Find("head").First().AppendHtml(strings.Join(kept, ""))
	}

	out, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return out, nil
}
