package build

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/lessonbuilder/internal/config"
	"git.home.luguber.info/inful/lessonbuilder/internal/logfields"
	"git.home.luguber.info/inful/lessonbuilder/internal/metrics"
	"git.home.luguber.info/inful/lessonbuilder/internal/render"
	"git.home.luguber.info/inful/lessonbuilder/internal/site"
)

// BuildService is the canonical interface for executing lesson builds.
type BuildService interface {
	Run(ctx context.Context, req BuildRequest) (*BuildResult, error)
}

// BuildRequest contains all inputs required to execute a build.
type BuildRequest struct {
	// Config is the loaded configuration for this build.
	Config *config.Config

	// Input overrides Config.Input when non-empty.
	Input string

	// OutputDir overrides Config.Output.Directory when non-empty.
	OutputDir string
}

// BuildStatus represents the outcome of a build execution.
type BuildStatus string

const (
	BuildStatusSuccess   BuildStatus = "success"
	BuildStatusWarning   BuildStatus = "warning"
	BuildStatusFailed    BuildStatus = "failed"
	BuildStatusCancelled BuildStatus = "cancelled"
)

// IsSuccess returns true if the build produced its outputs.
func (s BuildStatus) IsSuccess() bool {
	return s == BuildStatusSuccess || s == BuildStatusWarning
}

// BuildResult contains the outcome of a build execution.
type BuildResult struct {
	Status     BuildStatus
	Report     *BuildReport
	OutputPath string
	Duration   time.Duration
}

// DefaultBuildService runs the staged pipeline.
type DefaultBuildService struct {
	recorder metrics.Recorder
	logger   *slog.Logger
	now      func() time.Time
	stages   []StageDef
}

// NewBuildService creates a service with a no-op recorder and the default logger.
func NewBuildService() *DefaultBuildService {
	return &DefaultBuildService{
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		now:      time.Now,
		stages:   defaultStages(),
	}
}

// WithRecorder sets the metrics recorder.
func (s *DefaultBuildService) WithRecorder(r metrics.Recorder) *DefaultBuildService {
	if r != nil {
		s.recorder = r
	}
	return s
}

// WithLogger sets the logger.
func (s *DefaultBuildService) WithLogger(l *slog.Logger) *DefaultBuildService {
	if l != nil {
		s.logger = l
	}
	return s
}

// WithClock overrides the clock used for report timestamps and the index build date.
func (s *DefaultBuildService) WithClock(now func() time.Time) *DefaultBuildService {
	if now != nil {
		s.now = now
	}
	return s
}

// Run executes load, compile, write and verify. The returned error is the
// first fatal or cancellation StageError; warnings only affect the status.
func (s *DefaultBuildService) Run(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	cfg := req.Config
	if cfg == nil {
		var err error
		if cfg, err = config.LoadOrDefault(""); err != nil {
			return nil, err
		}
	}
	input := cfg.ResolveInput(req.Input)
	outDir := cfg.ResolveOutputDir(req.OutputDir)
	start := s.now()

	report := newBuildReport(input, start)
	logger := s.logger.With(logfields.BuildID(report.BuildID))
	bs := &BuildState{
		Config:    cfg,
		Input:     input,
		OutputDir: outDir,
		Env:       EnvFromConfig(cfg, start),
		Report:    report,
		Timings:   make(map[StageName]time.Duration),
		recorder:  s.recorder,
		logger:    logger,
	}

	runErr := runStages(ctx, bs, s.stages)
	end := s.now()
	report.finish(end)

	s.recorder.ObserveBuildDuration(end.Sub(start))
	s.recorder.IncBuildOutcome(string(report.Outcome))

	if cfg.Output.ReportEnabled() {
		if err := report.Persist(outDir); err != nil {
			logger.Warn("Failed to persist build report", logfields.Error(err))
		}
	}

	result := &BuildResult{
		Status:     statusFor(report.Outcome),
		Report:     report,
		OutputPath: outDir,
		Duration:   end.Sub(start),
	}
	logger.Info("Build finished", logfields.Outcome(string(report.Outcome)), logfields.Count(report.Pages), logfields.DurationMS(float64(result.Duration.Microseconds())/1000))
	return result, runErr
}

// EnvFromConfig maps the site and build configuration onto the compile environment.
func EnvFromConfig(cfg *config.Config, builtAt time.Time) site.Env {
	links := make([]site.HeadLink, 0, len(cfg.Site.HeadLinks))
	for _, l := range cfg.Site.HeadLinks {
		links = append(links, site.HeadLink{Type: l.Type, Href: l.Href})
	}
	return site.Env{
		Renderer: render.New(render.Options{
			MarkdownText: cfg.Build.MarkdownText,
			Labels:       render.LabelsFor(cfg.Site.Lang),
		}),
		SiteTitle:      cfg.Site.Title,
		Subtitle:       cfg.Site.Subtitle,
		Footer:         cfg.Site.Footer,
		HeadLinks:      links,
		Stylesheet:     cfg.Site.Stylesheet,
		Script:         cfg.Site.Script,
		PagesDir:       cfg.Output.PagesDir,
		IndexFile:      cfg.Output.IndexFile,
		BuiltAt:        builtAt,
		StrictSequence: cfg.Build.StrictSequence,
	}
}

func statusFor(o BuildOutcome) BuildStatus {
	switch o {
	case OutcomeSuccess:
		return BuildStatusSuccess
	case OutcomeWarning:
		return BuildStatusWarning
	case OutcomeCanceled:
		return BuildStatusCancelled
	default:
		return BuildStatusFailed
	}
}
