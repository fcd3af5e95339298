package chart

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/aretw0/gambit/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Resolution error codes, reported alongside the validation codes.
const (
	ErrCodeUnknownGuard  = "UNKNOWN_GUARD"
	ErrCodeUnknownAction = "UNKNOWN_ACTION"
)

// document is the serialized shape of a chart. Guards and actions are referenced by name.
type document struct {
	Initial     string          `mapstructure:"initial"`
	Events      []string        `mapstructure:"events"`
	Extended    map[string]any  `mapstructure:"extended"`
	States      []StateNode     `mapstructure:"states"`
	Transitions []transitionDoc `mapstructure:"transitions"`
}

type transitionDoc struct {
	From   string     `mapstructure:"from"`
	Event  string     `mapstructure:"event"`
	To     string     `mapstructure:"to"`
	Action string     `mapstructure:"action"`
	Guards []guardDoc `mapstructure:"guards"`
}

type guardDoc struct {
	When   string `mapstructure:"when"`
	To     string `mapstructure:"to"`
	Action string `mapstructure:"action"`
}

// ParseYAML is LoadYAML over a byte slice.
func ParseYAML[D any](data []byte, reg *Registry[D]) (*Definition[D], error) {
	return LoadYAML(bytes.NewReader(data), reg)
}

// LoadYAML reads a chart document and resolves its guard and action names through reg.
// Unknown keys, unknown names and structural problems are all reported as definition errors.
func LoadYAML[D any](r io.Reader, reg *Registry[D]) (*Definition[D], error) {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse chart: empty document")
		}
		return nil, fmt.Errorf("failed to parse chart: %w", err)
	}
	return FromMap(raw, reg)
}

// FromMap builds a definition from an already decoded document.
func FromMap[D any](raw map[string]any, reg *Registry[D]) (*Definition[D], error) {
	if reg == nil {
		reg = NewRegistry[D]()
	}

	var doc document
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &doc,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chart decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid chart document: %w", err)
	}

	def := &Definition[D]{
		Initial:         doc.Initial,
		InitialExtended: domain.ExtendedState(doc.Extended),
		States:          doc.States,
		Events:          doc.Events,
	}

	issues := &ValidationError{}
	for i, td := range doc.Transitions {
		path := []string{"transitions", strconv.Itoa(i)}
		tr := Transition[D]{From: td.From, Event: td.Event, To: td.To, ActionName: td.Action}
		if td.To != "" || len(td.Guards) == 0 {
			tr.Action = resolveAction(issues, reg, td.Action, path)
		}
		for j, gd := range td.Guards {
			gpath := append(slices.Clone(path), "guards", strconv.Itoa(j))
			pred, err := reg.Guard(gd.When)
			if err != nil {
				issues.add(ErrCodeUnknownGuard, err.Error(), gpath...)
			}
			tr.Guards = append(tr.Guards, Guard[D]{
				Label:      gd.When,
				Predicate:  pred,
				To:         gd.To,
				Action:     resolveAction(issues, reg, gd.Action, gpath),
				ActionName: gd.Action,
			})
		}
		def.Transitions = append(def.Transitions, tr)
	}

	if len(issues.Issues) > 0 {
		return nil, issues
	}
	if err := Validate(def); err != nil {
		return nil, err
	}
	return def, nil
}

func resolveAction[D any](issues *ValidationError, reg *Registry[D], name string, path []string) Action[D] {
	a, err := reg.Action(name)
	if err != nil {
		issues.add(ErrCodeUnknownAction, err.Error(), path...)
		return nil
	}
	return a
}
