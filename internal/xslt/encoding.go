package xslt

import (
	"bytes"
	"regexp"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// metaUTF8 is inserted into <head> when the markup declares no charset.
const metaUTF8 = `<meta http-equiv="Content-Type" content="text/html; charset=utf-8">`

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}

	reXMLDecl         = regexp.MustCompile(`^\s*<\?xml\b[^>]*\?>`)
	reXMLDeclEncoding = regexp.MustCompile(`(?i)(\bencoding\s*=\s*)(["'])([^"']*)(["'])`)
	reXMLDeclClose    = regexp.MustCompile(`\s*\?>$`)
	reMetaCharset     = regexp.MustCompile(`(?i)(<meta\b[^>]*?\bcharset\s*=\s*["']?)([A-Za-z0-9._:-]+)`)
	reHeadOpen        = regexp.MustCompile(`(?i)<head\b[^>]*>`)
	reHTMLOpen        = regexp.MustCompile(`(?i)<html\b[^>]*>`)
	reLeadingDoctype  = regexp.MustCompile(`(?i)^\s*<!DOCTYPE\b[^>]*>`)
)

// ToUTF8 converts raw transform output to UTF-8. The encoding is taken, in
// order, from a byte order mark, from the NUL pattern of BOM-less UTF-16,
// from the XML declaration or meta charset, and finally from HTML sniffing.
// A UTF-8 byte order mark is removed.
func ToUTF8(data []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8), bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		return decode(data, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	case bytes.HasPrefix(data, []byte{'<', 0}):
		return decode(data, unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder())
	case bytes.HasPrefix(data, []byte{0, '<'}):
		return decode(data, unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder())
	}

	if label := declaredEncoding(data); label != "" {
		enc, name := charset.Lookup(label)
		// A UTF-16 label on data without NUL bytes is stale; sniff instead.
		if enc != nil && name != "utf-16le" && name != "utf-16be" {
			return decode(data, enc.NewDecoder())
		}
	}
	if utf8.Valid(data) {
		return data, nil
	}
	enc, _, _ := charset.DetermineEncoding(data, "text/html")
	return decode(data, enc.NewDecoder())
}

func decode(data []byte, t transform.Transformer) ([]byte, error) {
	out, _, err := transform.Bytes(t, data)
	return out, err
}

// declaredEncoding returns the encoding label declared in the first
// kilobyte of data, or "".
func declaredEncoding(data []byte) string {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	if decl := reXMLDecl.Find(head); decl != nil {
		if m := reXMLDeclEncoding.FindSubmatch(decl); m != nil {
			return string(m[3])
		}
	}
	if m := reMetaCharset.FindSubmatch(head); m != nil {
		return string(m[2])
	}
	return ""
}

// DeclareUTF8 rewrites every encoding declaration in markup to UTF-8: the
// XML declaration and any meta charset. Markup without a meta charset gets
// one at the start of <head>. Without a <head> and without an XML
// declaration it goes into a new <head> after <html> or, for a fragment,
// ahead of the content (after any doctype), where HTML parsers place it in
// the implied head.
func DeclareUTF8(markup string) string {
	declared := false
	if decl := reXMLDecl.FindString(markup); decl != "" {
		var fixed string
		if reXMLDeclEncoding.MatchString(decl) {
			fixed = reXMLDeclEncoding.ReplaceAllString(decl, `${1}${2}utf-8${4}`)
		} else {
			fixed = reXMLDeclClose.ReplaceAllString(decl, ` encoding="utf-8"?>`)
		}
		markup = fixed + markup[len(decl):]
		declared = true
	}

	if reMetaCharset.MatchString(markup) {
		return reMetaCharset.ReplaceAllString(markup, "${1}utf-8")
	}
	if loc := reHeadOpen.FindStringIndex(markup); loc != nil {
		return markup[:loc[1]] + metaUTF8 + markup[loc[1]:]
	}
	if declared {
		return markup
	}
	if loc := reHTMLOpen.FindStringIndex(markup); loc != nil {
		return markup[:loc[1]] + "<head>" + metaUTF8 + "</head>" + markup[loc[1]:]
	}
	at := len(reLeadingDoctype.FindString(markup))
	return markup[:at] + metaUTF8 + markup[at:]
}
