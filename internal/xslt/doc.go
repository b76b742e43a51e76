// Package xslt merges a master stylesheet with a customization document by
// running xsltproc (libxslt). The transform result is captured as raw bytes
// and normalized to UTF-8 with a UTF-8 declaration, whatever output encoding
// the stylesheet asked for.
package xslt
