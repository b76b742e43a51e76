package naming

import (
	"path/filepath"
	"strings"

	"github.com/backmassage/xslmail/internal/config"
)

// Layout is the naming part of the configuration: where masters, outputs and
// intermediates live and which extensions they carry.
type Layout struct {
	MasterFolder   string
	MasterBaseName string
	MasterExt      string
	TemplateExt    string
	OutputFolder   string
	OutputExt      string
	TempFolder     string
}

// LayoutFromConfig extracts the naming layout from a finalized Config.
func LayoutFromConfig(cfg *config.Config) Layout {
	return Layout{
		MasterFolder:   cfg.MasterFolder,
		MasterBaseName: cfg.MasterFileBaseName,
		MasterExt:      cfg.MasterFileExtension,
		TemplateExt:    cfg.TemplateFileExtension,
		OutputFolder:   cfg.OutputFolder,
		OutputExt:      cfg.OutputFileExtension,
		TempFolder:     cfg.TempFolder,
	}
}

// Unit is one customization file resolved against its master and output
// locations. It is a value; nothing in it changes once resolved.
type Unit struct {
	TemplateID   string
	Suffix       string // Language suffix; empty selects the language-neutral master.
	TemplatePath string
	MasterPath   string
	OutputPath   string

	fileBase string
	tempDir  string
	tempExt  string
}

// FileBase returns the customization file name without its extension.
func (u Unit) FileBase() string { return u.fileBase }

// TempPath returns the intermediate file path for checkpoint index.
func (u Unit) TempPath(index int) string {
	return TempPath(u.tempDir, u.fileBase, index, u.tempExt)
}

// Resolve maps templatePath, a customization file of folder templateID, to
// its Unit. The suffix is whatever follows templateID in the file name; the
// prefix must match byte for byte. ok is false when the file name does not
// start with templateID exactly.
func (l Layout) Resolve(templateID, templatePath string) (Unit, bool) {
	base := trimExt(filepath.Base(templatePath), l.TemplateExt)
	suffix, ok := strings.CutPrefix(base, templateID)
	if !ok {
		return Unit{}, false
	}
	return Unit{
		TemplateID:   templateID,
		Suffix:       suffix,
		TemplatePath: templatePath,
		MasterPath:   MasterPath(l.MasterFolder, l.MasterBaseName, suffix, l.MasterExt),
		OutputPath:   OutputPath(l.OutputFolder, templateID, base, l.OutputExt),
		fileBase:     base,
		tempDir:      filepath.Join(l.TempFolder, templateID),
		tempExt:      l.OutputExt,
	}, true
}

// trimExt removes ext from name when name ends with it (ignoring case),
// otherwise the last dot-extension.
func trimExt(name, ext string) string {
	if ext != "" && len(name) >= len(ext) && strings.EqualFold(name[len(name)-len(ext):], ext) {
		return name[:len(name)-len(ext)]
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}
