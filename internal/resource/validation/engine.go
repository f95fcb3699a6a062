package validation

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// UniquenessChecker answers whether a column value already exists. The
// datastore-backed implementation lives in infrastructure; tests use fakes.
type UniquenessChecker interface {
	Exists(ctx context.Context, table, column, value string) (bool, error)
	ExistsWithin(ctx context.Context, table, column, value, scopeColumn, scopeValue string) (bool, error)
}

// Result is the outcome of validating one attribute map against one rule set.
// A violated rule contributes one message; several violated rules on the same
// field contribute several.
type Result struct {
	FieldErrors map[string][]string
}

func (r Result) Valid() bool {
	return len(r.FieldErrors) == 0
}

// Fields returns the failed field names in sorted order, for deterministic
// error documents.
func (r Result) Fields() []string {
	fields := make([]string, 0, len(r.FieldErrors))
	for f := range r.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Engine evaluates rule sets. Format rules delegate to go-playground
// validator; uniqueness rules go through the checker.
type Engine struct {
	checker  UniquenessChecker
	validate *validator.Validate
}

func NewEngine(checker UniquenessChecker) *Engine {
	return &Engine{
		checker:  checker,
		validate: validator.New(),
	}
}

// Validate applies rules to attrs. Malformed rule expressions are skipped;
// only a failing uniqueness lookup produces an error, which the caller treats
// as a server fault rather than a validation outcome.
func (e *Engine) Validate(ctx context.Context, attrs map[string]string, rules RuleSet) (Result, error) {
	result := Result{FieldErrors: make(map[string][]string)}

	fields := make([]string, 0, len(rules))
	for field := range rules {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		value, present := attrs[field]
		for _, rule := range rules[field] {
			name := ruleName(rule)

			if name == "required" {
				if !present || strings.TrimSpace(value) == "" {
					result.add(field, fmt.Sprintf("The %s field is required.", label(field)))
				}
				continue
			}

			// Every other rule applies only to submitted, non-empty values.
			if !present || value == "" {
				continue
			}

			switch name {
			case "max":
				params := ruleParams(rule)
				if len(params) != 1 {
					continue
				}
				limit, err := strconv.Atoi(params[0])
				if err != nil {
					continue
				}
				if utf8.RuneCountInString(value) > limit {
					result.add(field, fmt.Sprintf("The %s may not be greater than %d characters.", label(field), limit))
				}

			case "email":
				if e.validate.Var(value, "email") != nil {
					result.add(field, fmt.Sprintf("The %s must be a valid email address.", label(field)))
				}

			case "boolean":
				switch strings.ToLower(value) {
				case "0", "1", "true", "false":
				default:
					result.add(field, fmt.Sprintf("The %s field must be true or false.", label(field)))
				}

			case "confirmed":
				if attrs[field+"_confirmation"] != value {
					result.add(field, fmt.Sprintf("The %s confirmation does not match.", label(field)))
				}

			case "unique":
				params := ruleParams(rule)
				if len(params) != 2 {
					continue
				}
				exists, err := e.checker.Exists(ctx, params[0], params[1], value)
				if err != nil {
					return Result{}, fmt.Errorf("uniqueness check for %s failed: %w", field, err)
				}
				if exists {
					result.add(field, fmt.Sprintf("The %s has already been taken.", label(field)))
				}

			case "uniquepair":
				params := ruleParams(rule)
				if len(params) != 3 {
					continue
				}
				exists, err := e.checker.ExistsWithin(ctx, params[0], params[1], value, params[2], attrs[params[2]])
				if err != nil {
					return Result{}, fmt.Errorf("uniqueness check for %s failed: %w", field, err)
				}
				if exists {
					result.add(field, fmt.Sprintf("The %s has already been taken.", label(field)))
				}
			}
		}
	}

	return result, nil
}

// ValidateStruct validates a tagged struct, for request DTOs outside the
// generic attribute path.
func (e *Engine) ValidateStruct(s interface{}) error {
	return e.validate.Struct(s)
}

func (r *Result) add(field, message string) {
	r.FieldErrors[field] = append(r.FieldErrors[field], message)
}

// label renders a field name the way messages read it: snake_case becomes
// spaced words.
func label(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}
