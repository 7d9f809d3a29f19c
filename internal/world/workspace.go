// Package world enumerates workspace files and loads them into source units
// for the context engine.
package world

import (
	"os"
	"path/filepath"
	"strings"
)

// Workspace yields raw file paths and byte content. It is the only boundary
// between the assembly pipeline and the file system, so tests can substitute
// an in-memory implementation.
type Workspace interface {
	// FindFiles enumerates files matching the extension allow-list, skipping
	// the named directories, bounded to maxResults paths.
	FindFiles(extensions, excludeDirs []string, maxResults int) ([]string, error)

	// ReadFile loads one file's content.
	ReadFile(path string) ([]byte, error)

	// Root returns the workspace root, empty when none is defined.
	Root() string
}

// FSWorkspace walks a project root on the local filesystem.
type FSWorkspace struct {
	root string
}

func NewFSWorkspace(root string) *FSWorkspace {
	return &FSWorkspace{root: root}
}

func (w *FSWorkspace) Root() string { return w.root }

func (w *FSWorkspace) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// hiddenDirAllowlist controls which dot-directories are descended into.
var hiddenDirAllowlist = map[string]bool{
	".github":   true,
	".vscode":   true,
	".config":   true,
	".git":      false,
	".ctxforge": false,
}

func (w *FSWorkspace) FindFiles(extensions, excludeDirs []string, maxResults int) ([]string, error) {
	if w.root == "" {
		return nil, nil
	}

	extSet := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		extSet[strings.ToLower(ext)] = true
	}
	excludeSet := make(map[string]bool, len(excludeDirs))
	for _, dir := range excludeDirs {
		excludeSet[dir] = true
	}

	var paths []string
	err := filepath.Walk(w.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			name := info.Name()
			if name != "." && strings.HasPrefix(name, ".") && path != w.root {
				if allow, exists := hiddenDirAllowlist[name]; exists {
					if !allow {
						return filepath.SkipDir
					}
					return nil
				}
				return filepath.SkipDir
			}
			if excludeSet[name] && path != w.root {
				return filepath.SkipDir
			}
			return nil
		}

		if len(paths) >= maxResults {
			return filepath.SkipAll
		}
		if len(extSet) > 0 && !extSet[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return paths, err
	}
	return paths, nil
}

// DetectLanguage determines the display language from a file extension or a
// well-known basename. Used for scan statistics, not for summarizer dispatch.
func DetectLanguage(path string) string {
	langMap := map[string]string{
		".go":   "go",
		".py":   "python",
		".js":   "javascript",
		".jsx":  "javascript",
		".ts":   "typescript",
		".tsx":  "typescript",
		".rs":   "rust",
		".java": "java",
		".kt":   "kotlin",
		".rb":   "ruby",
		".c":    "c",
		".cpp":  "cpp",
		".h":    "c",
		".cs":   "csharp",
		".sh":   "shell",
		".yaml": "yaml",
		".yml":  "yaml",
		".json": "json",
		".html": "html",
		".css":  "css",
		".md":   "markdown",
		".sql":  "sql",
		".toml": "toml",
	}

	switch filepath.Base(path) {
	case "Dockerfile", "dockerfile":
		return "dockerfile"
	case "Makefile", "makefile":
		return "makefile"
	case "go.mod", "go.sum":
		return "go_mod"
	case "package.json":
		return "npm"
	case "Cargo.toml":
		return "cargo"
	}

	if lang, ok := langMap[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return "unknown"
}
