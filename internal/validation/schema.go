package validation

import (
	validation "github.com/jellydator/validation"
)

// Mode selects which variant of a Schema is applied.
type Mode int

const (
	// ModeCreate enforces required fields.
	ModeCreate Mode = iota
	// ModeUpdate treats every field as optional while keeping its rules.
	ModeUpdate
)

// FieldSpec declares the rules of a single input field.
type FieldSpec struct {
	// Required marks the field as mandatory in create mode.
	Required bool
	// AllowZero marks fields whose zero value (0, false, empty list) is meaningful,
	// so presence is checked with a nil check instead of a blank check.
	AllowZero bool
	// RequiredMessage overrides the default "Required" message.
	RequiredMessage string
	// Rules run against the value when it is present.
	Rules []validation.Rule
	// CreateRules run after Rules in create mode only.
	CreateRules []validation.Rule
}

// Schema is a declarative, per-entity set of field rules compiled once at startup.
type Schema map[string]FieldSpec

// Fields derives the rule list of every field for the given mode.
// Fields are expected to be pointers so that absent input stays nil.
func (s Schema) Fields(mode Mode) map[string][]validation.Rule {
	out := make(map[string][]validation.Rule, len(s))
	for name, spec := range s {
		out[name] = spec.rules(mode)
	}
	return out
}

func (f FieldSpec) rules(mode Mode) []validation.Rule {
	rules := make([]validation.Rule, 0, len(f.Rules)+len(f.CreateRules)+1)

	switch {
	case mode == ModeCreate && f.Required && f.AllowZero:
		rules = append(rules, presenceRule{message: f.requiredMessage()})
	case mode == ModeCreate && f.Required:
		rules = append(rules, validation.Required.Error(f.requiredMessage()))
	case !f.AllowZero:
		// optional text fields may be omitted but not sent empty
		rules = append(rules, validation.NilOrNotEmpty)
	}

	rules = append(rules, f.Rules...)
	if mode == ModeCreate {
		rules = append(rules, f.CreateRules...)
	}
	return rules
}

func (f FieldSpec) requiredMessage() string {
	if f.RequiredMessage == "" {
		return "Required"
	}
	return f.RequiredMessage
}

// presenceRule fails only when the value is absent.
type presenceRule struct {
	message string
}

// Validate implements validation.Rule.
func (r presenceRule) Validate(value interface{}) error {
	if _, isNil := validation.Indirect(value); isNil {
		return validation.NewError("validation_required", r.message)
	}
	return nil
}
