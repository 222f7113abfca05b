package driver

import (
	"context"
	"errors"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"pws/internal/config"
	"pws/internal/discovery"
	"pws/internal/domain"
	"pws/internal/execution"
	"pws/internal/prompt"
	"pws/internal/selection"
	"pws/internal/ui"
)

// Operator questions, asked in this order
const (
	QuestionEnvironment = "Select environment (qa, stage, production):"
	QuestionFiles       = `Enter "all" to run all files, or select files by number separated by commas:`
	QuestionTag         = `Enter a tag (e.g., @smoke) to run specific tests with tags, or "none" to ignore tags:`
)

// Notifier sends the report after a run
type Notifier interface {
	SendReport(ctx context.Context, run *domain.RunRecord) error
}

// Recorder keeps finished runs for the history command
type Recorder interface {
	Save(record domain.RunRecord) error
}

// Driver walks one run through environment, files, tag, execution and report
type Driver struct {
	prompter  prompt.Prompter
	resolver  *selection.Resolver
	scanner   *discovery.Scanner
	extractor *discovery.TagExtractor
	executor  execution.Executor
	notifier  Notifier
	recorder  Recorder
	formatter *ui.Formatter

	testDir string
	envDir  string

	trace []State
	now   func() time.Time
}

// New creates a new Driver. recorder may be nil.
func New(cfg *config.Config, p prompt.Prompter, executor execution.Executor, notifier Notifier, recorder Recorder) *Driver {
	return &Driver{
		prompter:  p,
		resolver:  selection.NewResolver(cfg.Environments),
		scanner:   discovery.NewScanner(cfg.SpecSuffix),
		extractor: discovery.NewTagExtractor(),
		executor:  executor,
		notifier:  notifier,
		recorder:  recorder,
		formatter: ui.NewFormatter(),
		testDir:   cfg.GetTestPath(),
		envDir:    cfg.GetEnvPath(),
		now:       time.Now,
	}
}

// Trace returns the states visited by the last Run
func (d *Driver) Trace() []State {
	return append([]State(nil), d.trace...)
}

// Run executes one session. The report is sent exactly once on every path except a
// precondition failure, which is returned as the error with no report sent.
// Input and execution failures are printed and yield Success=false.
func (d *Driver) Run(ctx context.Context) (result domain.RunResult, err error) {
	d.trace = nil
	d.enter(StateIdle)

	record := &domain.RunRecord{
		ID:        uuid.NewString(),
		StartedAt: d.now(),
	}

	defer func() {
		if r := recover(); r != nil {
			color.Red("❌ Error: %v", r)
			result, err = domain.RunResult{Success: false}, nil
		}

		var pre *domain.PreconditionError
		if errors.As(err, &pre) {
			return
		}

		d.notify(ctx, record)
		d.enter(StateDone)
	}()

	return d.run(ctx, record)
}

func (d *Driver) run(ctx context.Context, record *domain.RunRecord) (domain.RunResult, error) {
	answer, err := d.prompter.Ask(QuestionEnvironment)
	if err != nil {
		return d.fail(err)
	}
	env, err := d.resolver.Environment(answer)
	if err != nil {
		return d.fail(err)
	}

	profile, err := config.LoadProfile(d.envDir, env)
	if err != nil {
		return d.fail(&domain.PreconditionError{Msg: "environment file not found", Err: err})
	}
	color.Cyan("\n🔧 Loading environment variables from: %s", profile.Path)
	record.Environment = env
	d.enter(StateEnvSelected)

	files, err := d.scanner.Scan(d.testDir)
	if err != nil {
		return d.fail(err)
	}
	d.formatter.PrintFiles(files)

	answer, err = d.prompter.Ask(QuestionFiles)
	if err != nil {
		return d.fail(err)
	}
	sel, err := d.resolver.Files(answer, files)
	if err != nil {
		return d.fail(err)
	}
	record.Files = sel.Files
	record.All = sel.All
	d.enter(StateFilesSelected)

	tags, err := d.extractor.Extract(d.testDir, files)
	if err != nil {
		return d.fail(err)
	}
	d.formatter.PrintTags(tags.List())

	answer, err = d.prompter.Ask(QuestionTag)
	if err != nil {
		return d.fail(err)
	}
	sel.Tags, err = d.resolver.Tag(answer, tags)
	if err != nil {
		return d.fail(err)
	}
	record.Tags = sel.Tags
	d.enter(StateTagSelected)

	record.Command = d.executor.Command(sel).String()
	result := d.executor.Execute(ctx, sel, profile)
	d.enter(StateExecuted)

	record.Success = result.Success
	record.Duration = d.now().Sub(record.StartedAt)
	d.save(*record)
	d.formatter.PrintRunSummary(*record)

	return result, nil
}

// fail prints err and ends the run as a failure. Precondition failures are passed on.
func (d *Driver) fail(err error) (domain.RunResult, error) {
	color.Red("❌ Error: %v", err)

	var pre *domain.PreconditionError
	if errors.As(err, &pre) {
		return domain.RunResult{Success: false}, err
	}
	return domain.RunResult{Success: false}, nil
}

func (d *Driver) notify(ctx context.Context, record *domain.RunRecord) {
	err := ui.Spin("📧 Sending test report...", func() error {
		return d.notifier.SendReport(ctx, record)
	})
	if err != nil {
		color.Red("❌ Failed to send email report: %v", err)
	}
	d.enter(StateReported)
}

func (d *Driver) save(record domain.RunRecord) {
	if d.recorder == nil {
		return
	}
	if err := d.recorder.Save(record); err != nil {
		color.Yellow("⚠️ Failed to record run %s: %v", record.ID, err)
	}
}

func (d *Driver) enter(s State) {
	d.trace = append(d.trace, s)
}

