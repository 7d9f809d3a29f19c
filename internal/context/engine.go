package context

import (
	"sync"

	"github.com/google/uuid"

	"ctxforge/internal/config"
	"ctxforge/internal/logging"
	"ctxforge/internal/prompt"
	"ctxforge/internal/types"
	"ctxforge/internal/world"
)

// Engine is the consumer-facing surface of the context assembly pipeline.
// One engine serves one session: the source collection is rebuilt wholesale
// on each refresh, the reference collection persists until cleared.
//
// All dependencies are constructor-injected; there is no ambient global
// lookup. Budget parameters are snapshotted at the start of each top-level
// operation so a config change mid-operation cannot alter in-flight behavior.
type Engine struct {
	mu        sync.RWMutex
	sessionID string

	cfg       *config.Config
	collector *world.Collector
	refs      *ReferenceStore
	counter   *prompt.TokenCounter

	sources    []types.SourceUnit
	refreshing bool
}

// NewEngine creates an engine over the given workspace. A nil config means
// defaults.
func NewEngine(ws world.Workspace, cfg *config.Config) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Engine{
		sessionID: uuid.NewString(),
		cfg:       cfg,
		collector: world.NewCollector(ws),
		refs:      NewReferenceStore(ws.ReadFile),
		counter:   prompt.NewTokenCounter(),
	}
}

// SessionID identifies this engine instance in logs.
func (e *Engine) SessionID() string { return e.sessionID }

// snapshotContext copies the budget parameters for one operation.
func (e *Engine) snapshotContext() config.ContextConfig {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cfg.Context
}

// InitProjectContext rebuilds the source collection from the workspace.
// Refreshes are serialized by an in-flight guard: a refresh that arrives
// while another is running returns immediately without touching state, so a
// reader never observes a half-rebuilt source list.
func (e *Engine) InitProjectContext() {
	e.mu.Lock()
	if e.refreshing {
		e.mu.Unlock()
		logging.ContextDebug("refresh already in flight, skipping")
		return
	}
	e.refreshing = true
	cc := e.cfg.Context
	e.mu.Unlock()

	units := e.collector.Collect(cc.IncludeExtensions, cc.ExcludeDirs, cc.MaxContextFiles, cc.MaxFileContentLength)

	e.mu.Lock()
	e.sources = units
	e.refreshing = false
	e.mu.Unlock()

	logging.Get(logging.CategoryContext).Info("project context refreshed: %d source files", len(units))
}

// GenerateFullPrompt assembles the bounded prompt for a user message. This
// is the only entry point the rest of the system calls per chat turn.
func (e *Engine) GenerateFullPrompt(userMessage string) string {
	timer := logging.StartTimer(logging.CategoryContext, "Engine.GenerateFullPrompt")
	defer timer.Stop()

	cc := e.snapshotContext()

	e.mu.RLock()
	units := make([]types.SourceUnit, 0, len(e.sources)+e.refs.Len())
	units = append(units, e.sources...)
	e.mu.RUnlock()
	units = append(units, e.refs.List()...)

	ranked := prompt.Rank(units)
	included, skipped := prompt.Pack(ranked, cc.MaxPromptLength,
		prompt.PreambleLength(), prompt.UserSectionLength(userMessage))

	return prompt.Assemble(included, skipped, userMessage, cc.MaxPromptLength)
}

// AddReferenceFile reads and stores a user-curated file. Returns false when
// the file cannot be read.
func (e *Engine) AddReferenceFile(path string) bool {
	return e.refs.Add(path)
}

// RemoveReferenceFile drops a reference file. Returns false when not present.
func (e *Engine) RemoveReferenceFile(path string) bool {
	return e.refs.Remove(path)
}

// ClearReferenceFiles drops all reference files.
func (e *Engine) ClearReferenceFiles() {
	e.refs.Clear()
}

// GetContextStats reports pre-packing totals over the current state. The
// totals are independent of what a later packing pass would include.
func (e *Engine) GetContextStats() types.ContextStats {
	e.mu.RLock()
	sources := make([]types.SourceUnit, len(e.sources))
	copy(sources, e.sources)
	e.mu.RUnlock()
	refs := e.refs.List()

	stats := types.ContextStats{
		SourceFiles:    len(sources),
		ReferenceFiles: len(refs),
	}
	for _, u := range sources {
		stats.TotalSize += len(u.Content)
	}
	for _, u := range refs {
		stats.TotalSize += len(u.Content)
	}
	stats.EstimatedTokens = e.counter.CountUnits(sources) + e.counter.CountUnits(refs)
	return stats
}

// OnConfigChange swaps the configuration. The new budgets take effect at the
// next top-level operation; in-flight operations keep their snapshot.
func (e *Engine) OnConfigChange(cfg *config.Config) {
	if cfg == nil {
		return
	}
	e.mu.Lock()
	e.cfg = cfg
	e.mu.Unlock()
	logging.Get(logging.CategoryContext).Info("engine config updated")
}

// WatchConfig wires a config file watcher to this engine. The returned stop
// function must be called to release the watcher.
func (e *Engine) WatchConfig(workspace string) (stop func(), err error) {
	w, err := config.Watch(workspace, e.OnConfigChange)
	if err != nil {
		return nil, err
	}
	return func() { _ = w.Close() }, nil
}
