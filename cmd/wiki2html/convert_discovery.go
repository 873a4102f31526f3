package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	wiki2html "github.com/alnah/go-wiki2html"
	"github.com/alnah/go-wiki2html/internal/fileutil"
)

// outputExtension is the extension of generated files.
const outputExtension = ".html"

// inputExtensions are the extensions accepted as wiki source.
var inputExtensions = []string{".wiki", ".namu", ".txt"}

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .wiki, .namu or .txt extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds all wiki files to convert. Hidden files and
// directories are skipped when walking a directory.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateWikiExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "")
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if path != inputPath && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !fileutil.HasExtension(path, inputExtensions...) {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the HTML output path for a wiki file.
// Directory inputs keep their relative layout under outputDir.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	name := fileutil.ReplaceExtension(filepath.Base(inputPath), outputExtension)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), name)
	}

	if baseInputDir == "" && fileutil.HasExtension(outputDir, outputExtension) {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), name)
		}
	}

	return filepath.Join(outputDir, name)
}

// validateWikiExtension checks that the file has a wiki source extension.
func validateWikiExtension(path string) error {
	if !fileutil.HasExtension(path, inputExtensions...) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > wiki2html.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, wiki2html.MaxPoolSize)
	}
	return nil
}
