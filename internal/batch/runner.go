package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gametechlab/hhts/internal/imaging"
	"github.com/gametechlab/hhts/internal/output"
	"github.com/gametechlab/hhts/internal/segment"
)

// Options configures one batch run.
type Options struct {
	InputDir string // directory of source images (required)
	CSVDir   string // label-grid output root; empty disables CSV output
	VisDir   string // contour-overlay output root; empty disables overlays
	Prefix   string // prepended to every output file name
	Targets  []int  // requested superpixel counts, written in this order
	Workers  int    // parallel images; values below 1 mean 1
	Config   segment.Config
}

// Stats summarizes a finished batch run.
type Stats struct {
	Processed int     // images segmented and written
	Skipped   int     // images that failed to decode or segment
	AvgCPU    float64 // average CPU seconds per processed image
	AvgWall   float64 // average wall seconds per processed image
}

// Runner executes batch runs. It holds no per-image state; everything an
// image needs lives in its worker.
type Runner struct {
	opts Options
	log  zerolog.Logger
}

// New returns a Runner for the given options, logging through log.
func New(opts Options, log zerolog.Logger) *Runner {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Runner{opts: opts, log: log}
}

// Run validates the configuration, prepares the output directories, and
// processes every image in the input directory. Per-image failures are
// logged and counted in Stats.Skipped; only configuration and setup errors
// abort the run. When CSV output is enabled, the run's average times are
// appended to the cumulative runtime log.
func (r *Runner) Run() (*Stats, error) {
	if err := r.opts.Config.Validate(); err != nil {
		return nil, err
	}
	if len(r.opts.Targets) == 0 {
		return nil, fmt.Errorf("%w: no target superpixel count requested", segment.ErrInvalidConfig)
	}
	if err := r.prepareDirs(); err != nil {
		return nil, err
	}

	paths, err := imaging.ListImages(r.opts.InputDir)
	if err != nil {
		return nil, err
	}
	r.log.Info().
		Int("images", len(paths)).
		Ints("targets", r.opts.Targets).
		Int("workers", r.opts.Workers).
		Msg("starting batch")

	type outcome struct {
		ok   bool
		cpu  time.Duration
		wall time.Duration
	}

	jobs := make(chan string)
	outcomes := make(chan outcome, len(paths))
	var wg sync.WaitGroup
	for i := 0; i < r.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				cpu, wall, err := r.processImage(path)
				if err != nil {
					r.log.Warn().Err(err).Str("image", path).Msg("skipping image")
					outcomes <- outcome{}
					continue
				}
				outcomes <- outcome{ok: true, cpu: cpu, wall: wall}
			}
		}()
	}
	for _, path := range paths {
		jobs <- path
	}
	close(jobs)
	wg.Wait()
	close(outcomes)

	stats := &Stats{}
	var totalCPU, totalWall float64
	for o := range outcomes {
		if !o.ok {
			stats.Skipped++
			continue
		}
		stats.Processed++
		totalCPU += o.cpu.Seconds()
		totalWall += o.wall.Seconds()
	}
	if stats.Processed > 0 {
		stats.AvgCPU = totalCPU / float64(stats.Processed)
		stats.AvgWall = totalWall / float64(stats.Processed)
	}

	if r.opts.CSVDir != "" && stats.Processed > 0 {
		logPath := filepath.Join(r.opts.CSVDir, r.opts.Prefix+"runtime.txt")
		if err := output.AppendRuntime(logPath, stats.AvgCPU, stats.AvgWall); err != nil {
			return stats, err
		}
	}

	r.log.Info().
		Int("processed", stats.Processed).
		Int("skipped", stats.Skipped).
		Float64("avg_cpu_s", stats.AvgCPU).
		Float64("avg_wall_s", stats.AvgWall).
		Msg("batch finished")
	return stats, nil
}

// processImage runs the full pipeline for one file and writes its outputs.
// The returned durations cover the segmentation itself, not the I/O.
func (r *Runner) processImage(path string) (cpu, wall time.Duration, err error) {
	img, err := imaging.Open(path)
	if err != nil {
		return 0, 0, err
	}

	cpuStart := processCPUTime()
	wallStart := time.Now()
	res, err := segment.Segment(img, r.opts.Targets, r.opts.Config)
	if err != nil {
		return 0, 0, fmt.Errorf("segmenting %s: %w", path, err)
	}
	wall = time.Since(wallStart)
	cpu = processCPUTime() - cpuStart

	stem := imaging.Stem(path)
	for i, m := range res.Labels {
		target := strconv.Itoa(r.opts.Targets[i])
		r.log.Debug().
			Str("image", stem).
			Int("target", r.opts.Targets[i]).
			Int("regions", m.Regions()).
			Int("repaired", res.Repairs[i]).
			Msg("label map ready")

		if r.opts.CSVDir != "" {
			csvPath := filepath.Join(r.opts.CSVDir, target, r.opts.Prefix+stem+".csv")
			if err := output.WriteLabelCSV(csvPath, m); err != nil {
				return 0, 0, err
			}
		}
		if r.opts.VisDir != "" {
			visPath := filepath.Join(r.opts.VisDir, target, r.opts.Prefix+stem+".png")
			if err := output.SaveContours(visPath, img, m); err != nil {
				return 0, 0, err
			}
		}
	}
	return cpu, wall, nil
}

// prepareDirs creates the per-target output subdirectories, mirroring the
// layout consumers expect: <dir>/<targetCount>/<prefix><stem>.<ext>.
func (r *Runner) prepareDirs() error {
	for _, dir := range []string{r.opts.CSVDir, r.opts.VisDir} {
		if dir == "" {
			continue
		}
		for _, target := range r.opts.Targets {
			sub := filepath.Join(dir, strconv.Itoa(target))
			if err := os.MkdirAll(sub, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory %s: %w", sub, err)
			}
		}
	}
	return nil
}
