package runtime

import (
	"context"
	"fmt"
	"io"

	"dendrify.dev/dendrify/internal/config"
	"dendrify.dev/dendrify/internal/engine"
	"dendrify.dev/dendrify/internal/git"
	"dendrify.dev/dendrify/internal/output"
)

// Context provides access to the repository, transformer and output for commands
type Context struct {
	Repo        *git.Repository
	Store       *git.Store
	Transformer *engine.Transformer
	Splog       *output.Splog
	Settings    *config.Settings
	RepoRoot    string
}

// Overrides carries command-line values that win over the config file
type Overrides struct {
	Quiet   *bool
	Rooted  *bool
	LogFile *string
}

// NewContext creates a context for repo, logging to w
func NewContext(repo *git.Repository, settings *config.Settings, w io.Writer) (*Context, error) {
	splog, err := output.NewSplogWithConfig(w, settings.LogFile)
	if err != nil {
		return nil, err
	}
	splog.SetQuiet(settings.Quiet)

	store := git.NewStore(repo)
	return &Context{
		Repo:        repo,
		Store:       store,
		Transformer: engine.NewTransformer(store, splog, engine.Options{Rooted: settings.Rooted}),
		Splog:       splog,
		Settings:    settings,
		RepoRoot:    repo.GetRepoRoot(),
	}, nil
}

// Open discovers the repository containing dir, loads its configuration,
// applies overrides and builds the context
func Open(dir string, overrides Overrides, w io.Writer) (*Context, error) {
	repo, err := git.DiscoverRepository(dir)
	if err != nil {
		return nil, err
	}

	settings, err := config.Load(repo.GetRepoRoot())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if overrides.Quiet != nil {
		settings.Quiet = *overrides.Quiet
	}
	if overrides.Rooted != nil {
		settings.Rooted = *overrides.Rooted
	}
	if overrides.LogFile != nil {
		settings.LogFile = *overrides.LogFile
	}

	return NewContext(repo, settings, w)
}

// Close releases the log file
func (c *Context) Close() error {
	return c.Splog.Close()
}

type contextKey struct{}

// WithContext stores c in ctx
func WithContext(ctx context.Context, c *Context) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// GetContext returns the Context stored in ctx
func GetContext(ctx context.Context) (*Context, error) {
	if ctx != nil {
		if c, ok := ctx.Value(contextKey{}).(*Context); ok && c != nil {
			return c, nil
		}
	}
	return nil, fmt.Errorf("runtime context not initialized")
}
