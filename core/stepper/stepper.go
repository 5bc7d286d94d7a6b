// Package stepper implements a generic multi-step form controller: each
// step validates its own subset of fields against configured rules before
// the form may advance, and collected values survive navigation in both
// directions.
package stepper

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Values is the aggregated field-value map collected across steps,
// keyed by field path.
type Values map[string]interface{}

// Rules maps field paths to validation tags, e.g. "email": "required,email".
type Rules map[string]interface{}

type (
	// Step is pure configuration; the engine hard-codes nothing per step.
	Step struct {
		Name  string
		Rules Rules
		// ConditionalRules activates extra field requirements based on the
		// values entered so far (e.g. a group selector that becomes
		// required only for certain class values). May be nil.
		ConditionalRules func(Values) Rules
	}

	// SubmitFunc receives the full value map when Next is invoked on the
	// final step.
	SubmitFunc func(Values) error

	Engine struct {
		steps      []Step
		validate   *validator.Validate
		translator ut.Translator
		submit     SubmitFunc

		current int // 1-based
		values  Values
		errs    map[string]string
	}
)

var errNoSteps = errors.New("stepper: at least one step is required")

func New(validate *validator.Validate, translator ut.Translator, submit SubmitFunc, steps ...Step) (*Engine, error) {
	if len(steps) == 0 {
		return nil, errNoSteps
	}
	return &Engine{
		steps:      steps,
		validate:   validate,
		translator: translator,
		submit:     submit,
		current:    1,
		values:     make(Values),
		errs:       make(map[string]string),
	}, nil
}

// Current returns the 1-based index of the active step.
func (e *Engine) Current() int { return e.current }

// StepCount returns N.
func (e *Engine) StepCount() int { return len(e.steps) }

// Set records a field value. Values persist across step changes.
func (e *Engine) Set(field string, val interface{}) {
	e.values[field] = val
}

// SetAll merges the given values into the collected map.
func (e *Engine) SetAll(vals Values) {
	for field, val := range vals {
		e.values[field] = val
	}
}

// Values returns a copy of the collected field values.
func (e *Engine) Values() Values {
	out := make(Values, len(e.values))
	for field, val := range e.values {
		out[field] = val
	}
	return out
}

// Errors returns the per-field messages from the last failed validation.
func (e *Engine) Errors() map[string]string {
	return e.errs
}

// Valid reports whether the last navigation attempt validated cleanly.
func (e *Engine) Valid() bool { return len(e.errs) == 0 }

// Next validates the active step; on failure the index is unchanged and
// Errors carries the per-field messages. On success the engine advances,
// or — when already on the final step — submits the aggregated values.
// The returned bool reports whether submission happened.
func (e *Engine) Next() (bool, error) {
	step := e.steps[e.current-1]

	rules := make(Rules, len(step.Rules))
	for field, rule := range step.Rules {
		rules[field] = rule
	}
	if step.ConditionalRules != nil {
		for field, rule := range step.ConditionalRules(e.values) {
			rules[field] = rule
		}
	}

	data := make(map[string]interface{}, len(rules))
	for field := range rules {
		data[field] = e.values[field]
	}

	e.errs = make(map[string]string)
	for field, err := range e.validate.ValidateMap(data, rules) {
		e.errs[field] = e.fieldMessage(err)
	}
	if len(e.errs) > 0 {
		return false, nil
	}

	if e.current == len(e.steps) {
		if err := e.submit(e.Values()); err != nil {
			return false, errors.Wrapf(err, "submitting %q", step.Name)
		}
		return true, nil
	}
	e.current++
	return false, nil
}

// Previous moves back one step. Always allowed, never validates and never
// drops entered values; only error state resets.
func (e *Engine) Previous() {
	e.errs = make(map[string]string)
	if e.current > 1 {
		e.current--
	}
}

func (e *Engine) fieldMessage(err interface{}) string {
	vErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(vErrs) == 0 {
		if cast, ok := err.(error); ok {
			return cast.Error()
		}
		return "invalid value"
	}
	if e.translator != nil {
		return vErrs[0].Translate(e.translator)
	}
	return vErrs[0].Error()
}
