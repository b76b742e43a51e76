package inline

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/inliner"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
)

// collectWarnings parses every remaining <style> element and describes each
// rule the inliner will leave in a stylesheet. A stylesheet that does not
// parse is an error.
func collectWarnings(doc *goquery.Document) ([]string, error) {
	var warnings []string
	var parseErr error
	doc.Find("style").EachWithBreak(func(i int, s *goquery.Selection) bool {
		sheet, err := parser.Parse(s.Text())
		if err != nil {
			parseErr = fmt.Errorf("stylesheet %d: %w", i+1, err)
			return false
		}
		for _, rule := range sheet.Rules {
			warnings = append(warnings, describeRule(rule)...)
		}
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return warnings, nil
}

func describeRule(rule *css.Rule) []string {
	if rule.Kind != css.QualifiedRule {
		return []string{fmt.Sprintf("%s rule cannot be inlined", rule.Name)}
	}
	var out []string
	for _, sel := range rule.Selectors {
		if !inliner.Inlinable(sel) {
			out = append(out, fmt.Sprintf("selector %q cannot be inlined", sel))
		}
	}
	return out
}

// removeComments deletes every comment node below n.
func removeComments(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.CommentNode {
			n.RemoveChild(c)
		} else {
			removeComments(c)
		}
		c = next
	}
}
