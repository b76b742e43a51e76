package naming

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/xslmail/internal/config"
)

func testLayout() Layout {
	return Layout{
		MasterFolder:   "Input",
		MasterBaseName: "Master",
		MasterExt:      ".xslt",
		TemplateExt:    ".xml",
		OutputFolder:   "Output",
		OutputExt:      ".html",
		TempFolder:     "Temp",
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		templateID string
		file       string
		suffix     string
		master     string
		output     string
	}{
		{"neutral", "Hello", "Hello.xml", "", "Master.xslt", "Hello.html"},
		{"us english", "Hello", "Hello-en_us.xml", "-en_us", "Master-en_us.xslt", "Hello-en_us.html"},
		{"underscore suffix", "Hello", "Hello_fr.xml", "_fr", "Master_fr.xslt", "Hello_fr.html"},
		{"suffix is not validated", "Hello", "Hello.backup.xml", ".backup", "Master.backup.xslt", "Hello.backup.html"},
		{"upper-case extension", "Hello", "Hello-de.XML", "-de", "Master-de.xslt", "Hello-de.html"},
		{"id is a prefix of another word", "Welcome", "WelcomeBack.xml", "Back", "MasterBack.xslt", "WelcomeBack.html"},
	}
	l := testLayout()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join("Input", tt.templateID, tt.file)
			u, ok := l.Resolve(tt.templateID, path)
			require.True(t, ok)
			assert.Equal(t, tt.templateID, u.TemplateID)
			assert.Equal(t, tt.suffix, u.Suffix)
			assert.Equal(t, path, u.TemplatePath)
			assert.Equal(t, filepath.Join("Input", tt.master), u.MasterPath)
			assert.Equal(t, filepath.Join("Output", tt.templateID, tt.output), u.OutputPath)
		})
	}
}

func TestResolve_PrefixIsCaseSensitive(t *testing.T) {
	_, ok := testLayout().Resolve("Hello", filepath.Join("Input", "Hello", "hello-en_us.xml"))
	assert.False(t, ok)
}

func TestResolve_OtherExtension(t *testing.T) {
	l := testLayout()
	l.TemplateExt = ".data.xml"
	u, ok := l.Resolve("Hello", "Hello-en.data.xml")
	require.True(t, ok)
	assert.Equal(t, "-en", u.Suffix)
	assert.Equal(t, "Hello-en", u.FileBase())

	u, ok = l.Resolve("Hello", "Hello-en.txt")
	require.True(t, ok)
	assert.Equal(t, "-en", u.Suffix)
}

func TestResolve_IsPure(t *testing.T) {
	l := testLayout()
	a, _ := l.Resolve("Hello", "Input/Hello/Hello-en_us.xml")
	b, _ := l.Resolve("Hello", "Input/Hello/Hello-en_us.xml")
	assert.Equal(t, a, b)
}

func TestUnit_TempPath(t *testing.T) {
	u, ok := testLayout().Resolve("Hello", filepath.Join("Input", "Hello", "Hello-en_us.xml"))
	require.True(t, ok)
	assert.Equal(t, filepath.Join("Temp", "Hello", "Hello-en_us.0.html"), u.TempPath(0))
	assert.Equal(t, filepath.Join("Temp", "Hello", "Hello-en_us.1.html"), u.TempPath(1))
}

func TestLayoutFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.InputFolder = "src"
	cfg.Finalize()
	l := LayoutFromConfig(&cfg)
	assert.Equal(t, Layout{
		MasterFolder:   "src",
		MasterBaseName: "Master",
		MasterExt:      ".xslt",
		TemplateExt:    ".xml",
		OutputFolder:   "Output",
		OutputExt:      ".html",
		TempFolder:     "Temp",
	}, l)
}
