package recipe

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
)

// Subfolder of the work root that receives the extracted upstream source.
// Deterministic so the build phase can locate exactly what acquisition
// produced without re-deriving it.
const sourceSubfolder = "src"

// Executes the configure, compile, and install steps of an external build
// system against a source tree.
//
// The lifecycle does not implement the build system; it only invokes the
// driver with the correct arguments. Exactly three operations keep the
// concrete driver swappable and mockable.
type Driver interface {
	Configure(ctx context.Context, sourceRoot string, definitions map[string]string) error
	Build(ctx context.Context) error
	Install(ctx context.Context, prefix string) error
}

// Acquires an upstream source archive and materializes its build tree
// directly under dest. digest is the expected hex SHA-256 of the archive,
// or empty to skip verification.
type SourceGetter interface {
	Get(ctx context.Context, url, dest, digest string) error
}

// Filesystem location where acquired upstream source is materialized.
//
// Root directly contains the build tree: any single enclosing directory the
// upstream archive carried has been stripped during extraction.
type SourceLayout struct {
	Root string
}

// Collaborators and locations for one build invocation.
type Config struct {
	Driver   Driver       // Build-system driver to delegate to.
	Getter   SourceGetter // Transport for source acquisition.
	WorkRoot string       // Directory owning the source subfolder.
	Staging  string       // Orchestrator-designated install prefix.
}

// Phase of a lifecycle invocation. Transitions are strictly linear.
type phase int

const (
	phaseCreated phase = iota
	phaseSourceFetched
	phaseBuilt
	phasePackaged
	phaseDescribed
)

var phaseNames = map[phase]string{
	phaseCreated:       "created",
	phaseSourceFetched: "source-fetched",
	phaseBuilt:         "built",
	phasePackaged:      "packaged",
	phaseDescribed:     "described",
}

// Carries the state of one build invocation through its four phases.
//
// A lifecycle is a fresh, isolated value per invocation; nothing is shared
// across invocations. It is not safe for concurrent use, and concurrent
// invocations targeting the same directories must be serialized by the
// caller.
type Lifecycle struct {
	desc   Descriptor
	cfg    Config
	phase  phase
	layout *SourceLayout
	opts   *Options
}

// Creates a lifecycle for one build invocation of the described package.
func New(desc Descriptor, cfg Config) (*Lifecycle, error) {
	if err := desc.validate(); err != nil {
		return nil, err
	}
	if cfg.Driver == nil {
		return nil, fmt.Errorf("%w: driver is required", ErrDescriptor)
	}
	if cfg.Getter == nil {
		return nil, fmt.Errorf("%w: source getter is required", ErrDescriptor)
	}

	return &Lifecycle{desc: desc, cfg: cfg}, nil
}

// Returns the descriptor this lifecycle was created with.
func (l *Lifecycle) Descriptor() Descriptor {
	return l.desc
}

// Acquires the upstream source archive and extracts it into the designated
// source subfolder.
//
// The tag-qualified download URL is derived from the descriptor via
// [SourceURL]. Any single enclosing root directory in the archive is
// stripped so the subfolder directly contains the build tree. Failures are
// reported as [ErrAcquisition] and are not retried here; retry policy
// belongs to the transport.
func (l *Lifecycle) FetchSource(ctx context.Context) (*SourceLayout, error) {
	if err := l.advance(phaseCreated); err != nil {
		return nil, err
	}

	url := SourceURL(l.desc)
	dest := filepath.Join(l.cfg.WorkRoot, sourceSubfolder)

	slog.Info("fetching source", "package", l.desc.Name, "url", url)

	if err := l.cfg.Getter.Get(ctx, url, dest, l.desc.SHA256); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAcquisition, err)
	}

	l.layout = &SourceLayout{Root: dest}
	l.phase = phaseSourceFetched
	return l.layout, nil
}

// Configures and compiles the acquired source through the build-system
// driver.
//
// Every option present in opts is applied as a build definition before the
// compile step runs, and the set is frozen so nothing can silently override
// it afterwards. The returned value is the configuration that was actually
// applied. A configure failure is [ErrConfiguration]; a compile failure is
// [ErrCompilation]. Both abort the invocation; there is no partial-success
// state.
func (l *Lifecycle) Build(ctx context.Context, opts *Options) (*Options, error) {
	if err := l.advance(phaseSourceFetched); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = NewOptions()
	}

	slog.Info("configuring", "package", l.desc.Name, "source", l.layout.Root, "options", opts.Len())

	defs := opts.Definitions()
	opts.freeze()

	if err := l.cfg.Driver.Configure(ctx, l.layout.Root, defs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	slog.Info("compiling", "package", l.desc.Name)

	if err := l.cfg.Driver.Build(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompilation, err)
	}

	l.opts = opts
	l.phase = phaseBuilt
	return opts, nil
}

// Installs the compiled outputs into the staging location through the
// build-system driver.
//
// The staging location is owned by the orchestrator; this phase only places
// files there. An install failure is [ErrInstallation]: fatal, not retried.
func (l *Lifecycle) Package(ctx context.Context) error {
	if err := l.advance(phaseBuilt); err != nil {
		return err
	}

	slog.Info("installing", "package", l.desc.Name, "staging", l.cfg.Staging)

	if err := l.cfg.Driver.Install(ctx, l.cfg.Staging); err != nil {
		return fmt.Errorf("%w: %w", ErrInstallation, err)
	}

	l.phase = phasePackaged
	return nil
}

// Collects the installed library artifacts from the staging location.
//
// Only valid after [Lifecycle.Package] has completed: artifacts do not exist
// before installation. May be called repeatedly; the scan is re-run against
// the staging location each time. To describe a staging location from a
// prior invocation, use the package-level [Describe] instead.
func (l *Lifecycle) DescribeArtifacts() (ArtifactSet, error) {
	if l.phase != phasePackaged && l.phase != phaseDescribed {
		return nil, fmt.Errorf("%w: describe requires phase %q, lifecycle is %q",
			ErrOutOfOrder, phaseNames[phasePackaged], phaseNames[l.phase])
	}

	set, err := Describe(l.cfg.Staging)
	if err != nil {
		return nil, err
	}

	l.phase = phaseDescribed
	return set, nil
}

// Checks that the lifecycle is in the expected phase for a transition.
func (l *Lifecycle) advance(want phase) error {
	if l.phase != want {
		return fmt.Errorf("%w: expected phase %q, lifecycle is %q",
			ErrOutOfOrder, phaseNames[want], phaseNames[l.phase])
	}
	return nil
}
