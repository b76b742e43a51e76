package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Sentinel errors for the input root.
var (
	ErrRootFolderMissing = errors.New("input folder does not exist")
	ErrRootFolderEmpty   = errors.New("input folder has no subfolders")
)

// ListTemplateFolders returns the immediate subdirectories of root, sorted
// by name, leaving out those whose name matches ignore. A root with no
// subdirectories at all is ErrRootFolderEmpty; one whose subdirectories are
// all ignored yields an empty list and no error.
func ListTemplateFolders(root string, ignore *regexp.Regexp) ([]string, error) {
	fi, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRootFolderMissing, root)
		}
		return nil, fmt.Errorf("read input folder %s: %w", root, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a folder", ErrRootFolderMissing, root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read input folder %s: %w", root, err)
	}

	var dirs, folders []string
	for _, e := range entries {
		path := filepath.Join(root, e.Name())
		if isDir(e, path) {
			dirs = append(dirs, path)
		}
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRootFolderEmpty, root)
	}
	for _, path := range dirs {
		name := filepath.Base(path)
		if name == "" || (ignore != nil && ignore.MatchString(name)) {
			continue
		}
		folders = append(folders, path)
	}
	return folders, nil
}

// ListCandidateFiles returns the files directly in dir whose name starts
// with templateID and ends with ext, sorted by name. Both parts match
// without regard to case, like a file-system wildcard on a case-insensitive
// volume; the resolver decides whether the prefix is exact.
func ListCandidateFiles(dir, templateID, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read template folder %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if !hasPrefixFold(name, templateID) || !hasSuffixFold(name, ext) {
			continue
		}
		if len(name) < len(templateID)+len(ext) {
			continue
		}
		path := filepath.Join(dir, name)
		if isRegular(e, path) {
			files = append(files, path)
		}
	}
	return files, nil
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}

// isDir reports whether e is a directory, following symlinks.
func isDir(e fs.DirEntry, path string) bool {
	if e.Type()&fs.ModeSymlink != 0 {
		fi, err := os.Stat(path)
		return err == nil && fi.IsDir()
	}
	return e.IsDir()
}

// isRegular reports whether e is a regular file, following symlinks.
func isRegular(e fs.DirEntry, path string) bool {
	if e.Type()&fs.ModeSymlink != 0 {
		fi, err := os.Stat(path)
		return err == nil && fi.Mode().IsRegular()
	}
	return e.Type().IsRegular()
}
