package extract

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DarkEnough/resume-ranker/internal/types"
)

// LoadOptions bounds a directory load.
type LoadOptions struct {
	// MaxResumes caps how many files are taken, in name order. 0 means 30.
	MaxResumes int
	// MaxFileSizeMB skips files over this size. 0 means 5.
	MaxFileSizeMB int
}

// Skipped records one file excluded from the candidate pool and why.
type Skipped struct {
	File   string
	Reason string
}

var supportedExts = map[string]bool{
	".pdf": true, ".docx": true, ".txt": true, ".md": true, ".text": true,
}

// LoadDir extracts every supported résumé file in dir concurrently. Files
// that are oversized, unsupported, or fail extraction are excluded from the
// pool and reported in the skipped list; only filesystem-level failures
// abort the load. Results keep the directory's name order so ranking ties
// stay deterministic.
func LoadDir(ctx context.Context, dir string, opts LoadOptions, logger *zap.Logger) ([]types.Resume, []Skipped, error) {
	if opts.MaxResumes <= 0 {
		opts.MaxResumes = 30
	}
	if opts.MaxFileSizeMB <= 0 {
		opts.MaxFileSizeMB = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}

	var files []string
	var skipped []Skipped
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !supportedExts[strings.ToLower(filepath.Ext(name))] {
			skipped = append(skipped, Skipped{File: name, Reason: "unsupported file format"})
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, nil, err
		}
		if info.Size() > int64(opts.MaxFileSizeMB)*1024*1024 {
			skipped = append(skipped, Skipped{File: name, Reason: "file exceeds size limit"})
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	if len(files) > opts.MaxResumes {
		for _, name := range files[opts.MaxResumes:] {
			skipped = append(skipped, Skipped{File: name, Reason: "résumé limit reached"})
		}
		files = files[:opts.MaxResumes]
	}

	texts := make([]string, len(files))
	failures := make([]error, len(files))

	g, gCtx := errgroup.WithContext(ctx)
	for i, name := range files {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			text, err := FromFile(filepath.Join(dir, name))
			if err != nil {
				// Recovered locally: the file drops out of the pool.
				failures[i] = err
				return nil
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	resumes := make([]types.Resume, 0, len(files))
	for i, name := range files {
		if failures[i] != nil {
			logger.Warn("excluding résumé after extraction failure",
				zap.String("file", name), zap.Error(failures[i]))
			skipped = append(skipped, Skipped{File: name, Reason: failures[i].Error()})
			continue
		}
		if texts[i] == "" {
			skipped = append(skipped, Skipped{File: name, Reason: "empty after extraction"})
			continue
		}
		resumes = append(resumes, types.Resume{ID: name, Text: texts[i]})
	}

	return resumes, skipped, nil
}
