// Package inline moves <style> rules into style attributes so the markup
// renders in mail clients that ignore stylesheets. CSS parsing and inlining
// are done by douceur on top of a goquery document.
//
// Style elements matching the ignore selector are taken out of the document
// before inlining and put back into <head> afterwards, untouched. Rules that
// cannot be expressed as a style attribute (pseudo-classes, pseudo-elements,
// at-rules) are reported as warnings.
package inline
