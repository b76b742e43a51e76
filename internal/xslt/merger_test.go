package xslt

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMaster = `<?xml version="1.0" encoding="utf-8"?>
<xsl:stylesheet version="1.0" xmlns:xsl="http://www.w3.org/1999/XSL/Transform">
  <xsl:output method="xml" encoding="UTF-16" indent="no"/>
  <xsl:template match="/">
    <html><head><title><xsl:value-of select="/data/subject"/></title></head>
    <body><p><xsl:value-of select="/data/greeting"/></p></body></html>
  </xsl:template>
</xsl:stylesheet>`

const testTemplate = `<?xml version="1.0" encoding="utf-8"?>
<data><subject>Grüße</subject><greeting>Hello, world ©</greeting></data>`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestArgs(t *testing.T) {
	assert.Equal(t, []string{"--nonet", "m.xslt", "t.xml"}, Args("m.xslt", "t.xml"))
}

func TestExitError(t *testing.T) {
	err := &ExitError{Code: 4, Stderr: "\ncompilation error: file Master.xslt line 3\nmore\n"}
	assert.Equal(t, "xsltproc exited with status 4 (failed to parse the stylesheet): compilation error: file Master.xslt line 3", err.Error())

	err = &ExitError{Code: 99}
	assert.Equal(t, "xsltproc exited with status 99 (unknown failure)", err.Error())
}

func TestMerge_MissingMaster(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeFile(t, dir, "Hello.xml", testTemplate)

	_, err := New("").Merge(context.Background(), filepath.Join(dir, "Master.xslt"), tmpl)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestMerge_Integration(t *testing.T) {
	if _, err := exec.LookPath(DefaultExecutable); err != nil {
		t.Skip("xsltproc not on PATH")
	}
	dir := t.TempDir()
	master := writeFile(t, dir, "Master.xslt", testMaster)
	tmpl := writeFile(t, dir, "Hello.xml", testTemplate)

	out, err := New("").Merge(context.Background(), master, tmpl)
	require.NoError(t, err)
	assert.Contains(t, out, "Hello, world ©")
	assert.Contains(t, out, "Grüße")
	assert.Contains(t, out, `encoding="utf-8"`)
	assert.Contains(t, strings.ToLower(out), "charset=utf-8")
	assert.NotContains(t, out, "\x00")
}

func TestMerge_Integration_BadStylesheet(t *testing.T) {
	if _, err := exec.LookPath(DefaultExecutable); err != nil {
		t.Skip("xsltproc not on PATH")
	}
	dir := t.TempDir()
	master := writeFile(t, dir, "Master.xslt", "<xsl:stylesheet")
	tmpl := writeFile(t, dir, "Hello.xml", testTemplate)

	_, err := New("").Merge(context.Background(), master, tmpl)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.NotZero(t, exitErr.Code)
}
