package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"

	wiki2html "github.com/alnah/go-wiki2html"
	"github.com/alnah/go-wiki2html/internal/fileutil"
	"github.com/alnah/go-wiki2html/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// conversionParams groups parameters shared across batch/file conversion.
// Every field is read-only once the batch starts.
type conversionParams struct {
	options      []wiki2html.Option
	logger       *slog.Logger
	maxInputSize int64
	sanitizer    *bluemonday.Policy // nil = sanitization disabled
	page         *pageRenderer      // nil = fragment output
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Redirect   string // redirect target when the page is a redirect
	Err        error
	Duration   time.Duration
}

// convertBatch processes files concurrently with up to workers goroutines
// (0 = auto). Results keep the order of files.
func convertBatch(ctx context.Context, files []FileToConvert, params *conversionParams, workers int) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(wiki2html.ResolvePoolSize(workers), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       err,
					}
					continue
				}
				results[idx] = convertFile(files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	src, err := fileutil.ReadLimited(f.InputPath, params.maxInputSize)
	if err != nil {
		return fail(fmt.Errorf("%w: %w%s", ErrReadInput, err, sizeHint(err, params.maxInputSize)))
	}

	logger := params.logger.With("file", f.InputPath)
	opts := append(slices.Clip(params.options), wiki2html.WithLogger(logger))
	compiled, err := wiki2html.NewCompiler(opts...).CompileBytes(src)
	if err != nil {
		return fail(fmt.Errorf("compiling: %w%s", err, hintFor(err)))
	}
	if compiled.IsRedirect() {
		result.Redirect = compiled.Redirect
		logger.Debug("redirect page", "target", compiled.Redirect)
	}

	out := compiled.HTML
	if params.sanitizer != nil {
		out = params.sanitizer.Sanitize(out)
	}
	if params.page != nil {
		out, err = params.page.Render(params.page.pageTitle(compiled, f.InputPath), out)
		if err != nil {
			return fail(err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory()))
	}
	if err := fileutil.WriteFileAtomic(f.OutputPath, []byte(out), filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}

	result.Duration = time.Since(start)
	return result
}

// sizeHint returns the input size hint for oversized files.
func sizeHint(err error, limit int64) string {
	if errors.Is(err, fileutil.ErrFileTooLarge) {
		return hints.ForInputTooLarge(int(limit))
	}
	return ""
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResultsWithWriter outputs conversion results using the provided writers.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		switch {
		case verbose && r.Redirect != "":
			fmt.Fprintf(env.Stdout, "%s -> %s (%v, redirect to %s)\n",
				r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond), r.Redirect)
		case verbose:
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		default:
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
