package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdstrike/internal/fileutil"
)

// ErrInvalidExtension is returned when a file argument is not Markdown.
var ErrInvalidExtension = errors.New("file must have a Markdown extension (.md, .markdown, .mdown, .mkd)")

// discoverFiles expands paths into the Markdown files to process.
// Files named explicitly must have a Markdown extension. Directories are
// walked recursively, skipping hidden files and directories.
func discoverFiles(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if !fileutil.IsMarkdownFile(root) {
				return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(root))
			}
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if path != root && fileutil.IsHidden(path) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}
			if fileutil.IsMarkdownFile(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// htmlOutputPath returns the HTML path for a Markdown file. With an empty
// outputDir the file is written next to its source.
func htmlOutputPath(inputPath, outputDir string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath)) + ".html"
	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base)
	}
	return filepath.Join(outputDir, base)
}
