package docstate

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-docstate/internal/hydrate"
)

// normalizeRaw re-encodes value into generic JSON shapes (map[string]any,
// []any, primitives) so shape checks behave the same whether the input came
// from storage bytes or from an already-typed document.
func normalizeRaw(raw any) (any, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("docstate: normalize value: %w", err)
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("docstate: normalize value: %w", err)
	}
	return generic, nil
}

func lookupPath(document map[string]any, path string) (any, bool) {
	segments := strings.Split(path, ".")
	var current any = document
	for _, segment := range segments {
		asMap, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = asMap[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// StructSchema validates object-shaped documents: the raw value must decode
// as a JSON object, required paths must be present, and the result must
// decode into T.
type StructSchema[T any] struct {
	required []string
	strict   bool
}

// StructSchemaOption configures a StructSchema.
type StructSchemaOption[T any] func(*StructSchema[T])

// StructRequired marks dot-separated paths that must be present.
func StructRequired[T any](paths ...string) StructSchemaOption[T] {
	return func(s *StructSchema[T]) {
		s.required = append(s.required, paths...)
	}
}

// StructStrict rejects documents carrying fields T does not declare.
func StructStrict[T any]() StructSchemaOption[T] {
	return func(s *StructSchema[T]) {
		s.strict = true
	}
}

// NewStructSchema constructs a schema for an object-shaped document.
func NewStructSchema[T any](opts ...StructSchemaOption[T]) *StructSchema[T] {
	s := &StructSchema[T]{}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Parse implements Schema.
func (s *StructSchema[T]) Parse(raw any) (T, error) {
	var zero T

	generic, err := normalizeRaw(raw)
	if err != nil {
		return zero, FieldErrors{{Field: "$", Constraint: "shape", Message: err.Error()}}
	}
	document, ok := generic.(map[string]any)
	if !ok {
		return zero, FieldErrors{{Field: "$", Constraint: "object", Message: "document must be an object"}}
	}

	var fieldErrs FieldErrors
	for _, path := range s.required {
		if _, found := lookupPath(document, path); !found {
			fieldErrs = append(fieldErrs, FieldError{Field: path, Constraint: "required", Message: "missing required field"})
		}
	}
	if len(fieldErrs) > 0 {
		return zero, fieldErrs
	}

	decoderOpts := []hydrate.DecoderOption[T]{}
	if s.strict {
		decoderOpts = append(decoderOpts, hydrate.WithStrictFields[T]())
	}
	value, err := hydrate.NewDecoder(decoderOpts...).Decode(hydrate.Context{}, document)
	if err != nil {
		return zero, FieldErrors{{Field: "$", Constraint: "shape", Message: err.Error()}}
	}
	return value, nil
}

// SliceSchema validates list-shaped documents: the raw value must decode as a
// JSON array whose elements carry the required fields.
type SliceSchema[E any] struct {
	elemRequired []string
}

// NewSliceSchema constructs a schema for a list document. elemRequired names
// fields every element must carry.
func NewSliceSchema[E any](elemRequired ...string) *SliceSchema[E] {
	return &SliceSchema[E]{elemRequired: elemRequired}
}

// Parse implements Schema.
func (s *SliceSchema[E]) Parse(raw any) ([]E, error) {
	generic, err := normalizeRaw(raw)
	if err != nil {
		return nil, FieldErrors{{Field: "$", Constraint: "shape", Message: err.Error()}}
	}
	items, ok := generic.([]any)
	if !ok {
		return nil, FieldErrors{{Field: "$", Constraint: "array", Message: "document must be an array"}}
	}

	var fieldErrs FieldErrors
	for i, item := range items {
		element, ok := item.(map[string]any)
		if !ok {
			fieldErrs = append(fieldErrs, FieldError{
				Field:      fmt.Sprintf("[%d]", i),
				Constraint: "object",
				Message:    "element must be an object",
			})
			continue
		}
		for _, field := range s.elemRequired {
			if _, found := lookupPath(element, field); !found {
				fieldErrs = append(fieldErrs, FieldError{
					Field:      fmt.Sprintf("[%d].%s", i, field),
					Constraint: "required",
					Message:    "missing required field",
				})
			}
		}
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	value, err := hydrate.NewDecoder[[]E]().DecodeAny(hydrate.Context{}, items)
	if err != nil {
		return nil, FieldErrors{{Field: "$", Constraint: "shape", Message: err.Error()}}
	}
	return value, nil
}

// Rule is one constraint over a document snapshot. Expr must evaluate to true
// for the document to be valid; a failure contributes one FieldError naming
// Field.
type Rule struct {
	Field   string
	Expr    string
	Message string
}

// RuleSchema layers constraint expressions on top of a base schema. The base
// schema owns shape checking and decoding; rules run against the decoded
// document snapshot using a pluggable engine (expr by default).
type RuleSchema[T any] struct {
	base      Schema[T]
	rules     []Rule
	evaluator Evaluator
	registry  *FunctionRegistry
	cache     ProgramCache
	logger    RuleLogger
	key       string
}

// RuleSchemaOption configures a RuleSchema.
type RuleSchemaOption[T any] func(*RuleSchema[T])

// RuleWithEvaluator overrides the constraint engine.
func RuleWithEvaluator[T any](evaluator Evaluator) RuleSchemaOption[T] {
	return func(s *RuleSchema[T]) {
		s.evaluator = evaluator
	}
}

// RuleWithFunctionRegistry exposes custom functions to the engine.
func RuleWithFunctionRegistry[T any](registry *FunctionRegistry) RuleSchemaOption[T] {
	return func(s *RuleSchema[T]) {
		if registry == nil {
			return
		}
		s.registry = registry.Clone()
	}
}

// RuleWithProgramCache reuses compiled constraint programs across parses.
func RuleWithProgramCache[T any](cache ProgramCache) RuleSchemaOption[T] {
	return func(s *RuleSchema[T]) {
		s.cache = cache
	}
}

// RuleWithLogger records constraint evaluations.
func RuleWithLogger[T any](logger RuleLogger) RuleSchemaOption[T] {
	return func(s *RuleSchema[T]) {
		if logger == nil {
			s.logger = noopRuleLogger{}
			return
		}
		s.logger = logger
	}
}

// RuleWithKey labels engine errors with the storage key under validation.
func RuleWithKey[T any](key string) RuleSchemaOption[T] {
	return func(s *RuleSchema[T]) {
		s.key = key
	}
}

// NewRuleSchema constructs a constraint-backed schema over base.
func NewRuleSchema[T any](base Schema[T], rules []Rule, opts ...RuleSchemaOption[T]) *RuleSchema[T] {
	s := &RuleSchema[T]{
		base:   base,
		rules:  rules,
		logger: noopRuleLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Parse implements Schema.
func (s *RuleSchema[T]) Parse(raw any) (T, error) {
	var zero T
	if s.base == nil {
		return zero, ErrNilSchema
	}
	value, err := s.base.Parse(raw)
	if err != nil {
		return zero, err
	}
	if len(s.rules) == 0 {
		return value, nil
	}

	snapshot, err := normalizeRaw(value)
	if err != nil {
		return zero, FieldErrors{{Field: "$", Constraint: "shape", Message: err.Error()}}
	}

	evaluator := s.resolveEvaluator()
	engine := engineName(evaluator)
	ctx := RuleContext{Document: snapshot, Key: s.key}

	var fieldErrs FieldErrors
	for _, rule := range s.rules {
		start := time.Now()
		result, evalErr := evaluator.Evaluate(ctx, rule.Expr)
		s.logger.LogRule(RuleLogEvent{
			Engine:   engine,
			Expr:     rule.Expr,
			Key:      s.key,
			Duration: time.Since(start),
			Err:      evalErr,
		})
		if evalErr != nil {
			fieldErrs = append(fieldErrs, FieldError{
				Field:      rule.Field,
				Constraint: rule.Expr,
				Message:    evalErr.Error(),
			})
			continue
		}
		passed, ok := result.(bool)
		if !ok {
			fieldErrs = append(fieldErrs, FieldError{
				Field:      rule.Field,
				Constraint: rule.Expr,
				Message:    "rule must evaluate to a boolean",
			})
			continue
		}
		if !passed {
			message := rule.Message
			if message == "" {
				message = fmt.Sprintf("failed constraint %q", rule.Expr)
			}
			fieldErrs = append(fieldErrs, FieldError{
				Field:      rule.Field,
				Constraint: rule.Expr,
				Message:    message,
			})
		}
	}
	if len(fieldErrs) > 0 {
		return zero, fieldErrs
	}
	return value, nil
}

func (s *RuleSchema[T]) resolveEvaluator() Evaluator {
	if s.evaluator != nil {
		return s.evaluator
	}
	var exprOpts []ExprEvaluatorOption
	if s.cache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(s.cache))
	}
	if s.registry != nil {
		exprOpts = append(exprOpts, ExprWithFunctionRegistry(s.registry))
	}
	s.evaluator = NewExprEvaluator(exprOpts...)
	return s.evaluator
}
