package naming

import (
	"path/filepath"
	"strconv"
)

// MasterPath returns the master file for a language suffix:
//
//	<masterFolder>/<baseName><suffix><ext>
func MasterPath(masterFolder, baseName, suffix, ext string) string {
	return filepath.Join(masterFolder, baseName+suffix+ext)
}

// OutputPath returns the generated file for a customization file base name:
//
//	<outputFolder>/<templateID>/<fileBase><ext>
func OutputPath(outputFolder, templateID, fileBase, ext string) string {
	return filepath.Join(outputFolder, templateID, fileBase+ext)
}

// TempPath returns the intermediate file written at checkpoint index:
//
//	<dir>/<fileBase>.<index><ext>
func TempPath(dir, fileBase string, index int, ext string) string {
	return filepath.Join(dir, fileBase+"."+strconv.Itoa(index)+ext)
}
