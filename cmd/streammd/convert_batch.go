package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	streammd "github.com/alnah/go-streammd"
)

// htmlConverter is the conversion surface the CLI needs.
type htmlConverter interface {
	Convert(ctx context.Context, input streammd.Input) (*streammd.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ htmlConverter = (*streammd.Converter)(nil)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// convertBatch processes files with at most workers goroutines sharing conv.
// Results keep the order of files.
func convertBatch(ctx context.Context, conv htmlConverter, files []FileToConvert, params *conversionParams, workers int) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(max(workers, 1), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
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
func convertFile(ctx context.Context, conv htmlConverter, f FileToConvert, params *conversionParams) ConversionResult {
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

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}

	convResult, err := conv.Convert(ctx, streammd.Input{
		Markdown:   string(content),
		Standalone: params.standalone,
		CSS:        params.css,
		Title:      documentTitle(params.title, string(content), f.InputPath),
	})
	if err != nil {
		return fail(fmt.Errorf("%s: %w", f.InputPath, err))
	}

	if err := writeOutput(f.OutputPath, convResult.HTML); err != nil {
		return fail(err)
	}

	result.Duration = time.Since(start)
	return result
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
