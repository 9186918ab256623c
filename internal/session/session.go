// Package session composes the reasoning core's per-arena components — a
// term store, a type-inference engine, a proof-step pool, and a set
// lattice — into a single "reasoning session": an arena of terms and
// proofs owned together and freed in bulk, never shared across sessions.
package session

import (
	"github.com/orizon-lang/holcore/internal/canon"
	"github.com/orizon-lang/holcore/internal/hol"
	"github.com/orizon-lang/holcore/internal/lattice"
	"github.com/orizon-lang/holcore/internal/proof"
	"github.com/orizon-lang/holcore/internal/term"
)

// Config bundles the sub-component configs a Session wires together.
type Config struct {
	HOL     hol.Config
	Canon   canon.Config
	Lattice lattice.Config
}

// Option mutates a Config being built by New; each Option configures one
// sub-component so callers only need to name what they're changing.
type Option func(*Config)

// WithHOLConfig overrides the type-inference engine's config.
func WithHOLConfig(cfg hol.Config) Option {
	return func(c *Config) { c.HOL = cfg }
}

// WithCanonConfig overrides the canonicalizer's config.
func WithCanonConfig(cfg canon.Config) Option {
	return func(c *Config) { c.Canon = cfg }
}

// WithLatticeConfig overrides the set lattice's config.
func WithLatticeConfig(cfg lattice.Config) Option {
	return func(c *Config) { c.Lattice = cfg }
}

// WithObserver attaches a lattice.Observer to the session's set lattice.
func WithObserver(o lattice.Observer) Option {
	return func(c *Config) { c.Lattice.Observer = o }
}

// Session owns one reasoning arena: a term store, a persistent
// type-inference engine (so a symbol's type, once fixed, is checked
// consistently across every term built in this session — not just within
// one canonicalization pass), a set lattice, and the set of proof roots
// this session has adopted and is responsible for releasing.
type Session struct {
	Store   *term.Store
	Engine  *hol.Engine
	Lattice *lattice.Graph

	cfg    Config
	proofs map[*proof.Step]struct{}
}

// New creates a fresh, empty session.
func New(opts ...Option) *Session {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}

	store := term.NewStore()

	return &Session{
		Store:   store,
		Engine:  hol.NewEngine(cfg.HOL),
		Lattice: lattice.NewGraph(store, cfg.Lattice),
		cfg:     cfg,
		proofs:  make(map[*proof.Step]struct{}),
	}
}

// TypeOf infers t's type against this session's persistent symbol
// environment, so a constant or parameter typed in one call is held to the
// same scheme in every later one.
func (s *Session) TypeOf(t term.Term) (hol.Type, error) {
	return s.Engine.Infer(t)
}

// Canonicalize reduces t to its canonical form under this session's config.
// It runs its own, transient type-inference pass (canon.Canonicalize's
// contract), independent of s.Engine's persistent symbol environment.
func (s *Session) Canonicalize(t term.Term) (term.Term, error) {
	return canon.Canonicalize(s.Store, t, s.cfg.Canon)
}

// NewChecker returns a proof.Checker bound to this session's store and
// canonicalization config.
func (s *Session) NewChecker() *proof.Checker {
	return proof.NewChecker(s.Store, proof.CheckerConfig{
		CanonicalizeConclusions: true,
		Canon:                   s.cfg.Canon,
	})
}

// Adopt retains root and registers it with this session, so Close releases
// it along with every other adopted proof.
func (s *Session) Adopt(root *proof.Step) {
	root.Retain()
	s.proofs[root] = struct{}{}
}

// Forget releases an adopted proof early, before the session as a whole
// closes.
func (s *Session) Forget(root *proof.Step) {
	if _, ok := s.proofs[root]; !ok {
		return
	}
	delete(s.proofs, root)
	root.Release()
}

// Close releases every proof this session still owns. The term store and
// set lattice are plain in-memory arenas with no external resources; they
// need no explicit teardown and are reclaimed once the Session itself is
// unreferenced.
func (s *Session) Close() {
	for root := range s.proofs {
		root.Release()
	}
	s.proofs = nil
}
