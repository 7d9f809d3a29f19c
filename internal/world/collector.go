package world

import (
	"path/filepath"

	"ctxforge/internal/logging"
	"ctxforge/internal/summary"
	"ctxforge/internal/types"
)

// Collector loads workspace files into source units, routing each through
// the structural summarizer. Files are processed one at a time in
// enumeration order; an unreadable file is logged and skipped, never
// aborting the batch.
type Collector struct {
	ws Workspace
}

func NewCollector(ws Workspace) *Collector {
	return &Collector{ws: ws}
}

// Collect rebuilds the full source unit set. It returns an empty slice when
// no workspace root is defined.
func (c *Collector) Collect(extensions, excludeDirs []string, maxFiles, maxFileChars int) []types.SourceUnit {
	timer := logging.StartTimer(logging.CategoryWorld, "Collector.Collect")
	defer timer.Stop()

	if c.ws.Root() == "" {
		return nil
	}

	paths, err := c.ws.FindFiles(extensions, excludeDirs, maxFiles)
	if err != nil {
		logging.Get(logging.CategoryWorld).Error("workspace enumeration failed: %v", err)
		if len(paths) == 0 {
			return nil
		}
	}

	units := make([]types.SourceUnit, 0, len(paths))
	for _, path := range paths {
		data, err := c.ws.ReadFile(path)
		if err != nil {
			logging.Get(logging.CategoryWorld).Warn("skipping unreadable file %s: %v", path, err)
			continue
		}

		lang := summary.DetectLanguage(path)
		content := summary.Summarize(string(data), lang, maxFileChars)
		// One more unconditional cap regardless of summarizer output
		content = summary.Truncate(content, maxFileChars)

		units = append(units, types.SourceUnit{
			Path:    path,
			Name:    filepath.Base(path),
			Content: content,
			Kind:    types.KindSource,
		})
	}

	logging.WorldDebug("collected %d source units from %d paths", len(units), len(paths))
	return units
}

// ScanStats summarizes a workspace enumeration pass.
type ScanStats struct {
	FileCount int
	Languages map[string]int // language -> count
}

// Scan enumerates the workspace without loading content, reporting per
// language file counts.
func (c *Collector) Scan(extensions, excludeDirs []string, maxFiles int) (*ScanStats, error) {
	paths, err := c.ws.FindFiles(extensions, excludeDirs, maxFiles)
	if err != nil {
		return nil, err
	}

	stats := &ScanStats{Languages: make(map[string]int)}
	for _, path := range paths {
		stats.FileCount++
		stats.Languages[DetectLanguage(path)]++
	}
	return stats, nil
}
