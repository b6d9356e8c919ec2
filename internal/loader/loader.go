// Package loader reads a Bantam program from disk.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Ext is the extension of Bantam source files.
const Ext = ".btm"

// Source is one file of a program.
type Source struct {
	Path string
	Text string
}

// Load reads the program at path. A file is a whole program by itself; a
// directory's .btm files, in name order, together form one program.
func Load(path string) ([]Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot load %s: %w", path, err)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = sourceFiles(path)
		if err != nil {
			return nil, err
		}
	}

	sources := make([]Source, 0, len(files))
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("cannot read file %s: %w", file, err)
		}
		sources = append(sources, Source{Path: file, Text: string(content)})
	}
	return sources, nil
}

func sourceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), Ext) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files in %s", Ext, dir)
	}
	sort.Strings(files)
	return files, nil
}
