package docstate

import (
	"fmt"
	"sync"
	"time"
)

// RuleContext carries inputs needed when evaluating a constraint expression
// against a document snapshot.
type RuleContext struct {
	Document any
	Key      string
	Now      *time.Time
	Args     map[string]any
	Metadata map[string]any
}

func (ctx RuleContext) withDefaultNow() RuleContext {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx RuleContext) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

func (ctx RuleContext) withDefaultMaps() RuleContext {
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

func (ctx RuleContext) withDefaults() RuleContext {
	return ctx.withDefaultNow().withDefaultMaps()
}

func (ctx RuleContext) keyLabel() string {
	if ctx.Key != "" {
		return ctx.Key
	}
	return "unknown"
}

// Evaluator executes constraint expressions against a rule context.
type Evaluator interface {
	Evaluate(ctx RuleContext, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx RuleContext) (any, error)
}

// CompileOption configures evaluator compile behaviour.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct{}

type compileOptionFunc func(*compileConfig)

func (f compileOptionFunc) applyCompileOption(cfg *compileConfig) {
	if f != nil {
		f(cfg)
	}
}

// ProgramCache stores compiled expression programs keyed by expression strings.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// NewProgramCache returns a ProgramCache safe for concurrent use.
func NewProgramCache() ProgramCache {
	return &programCache{}
}

type programCache struct {
	entries sync.Map
}

func (c *programCache) Get(key string) (any, bool) {
	return c.entries.Load(key)
}

func (c *programCache) Set(key string, value any) {
	c.entries.Store(key, value)
}

func documentAsMap(value any) map[string]any {
	if value == nil {
		return map[string]any{}
	}
	if m, ok := value.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func engineName(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	switch fmt.Sprintf("%T", e) {
	case "*docstate.exprEvaluator":
		return "expr"
	case "*docstate.celEvaluator":
		return "cel"
	case "*docstate.jsEvaluator":
		return "js"
	default:
		return "custom"
	}
}
