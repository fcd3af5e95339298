package chart

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/gambit/pkg/domain"
)

// Validation error codes
const (
	ErrCodeNilDefinition       = "NIL_DEFINITION"
	ErrCodeNoStates            = "NO_STATES"
	ErrCodeEmptyName           = "EMPTY_NAME"
	ErrCodeDuplicateState      = "DUPLICATE_STATE"
	ErrCodeMissingInitial      = "MISSING_INITIAL"
	ErrCodeInitialNotFound     = "INITIAL_NOT_FOUND"
	ErrCodeInitialNotLeaf      = "INITIAL_NOT_LEAF"
	ErrCodeReservedEvent       = "RESERVED_EVENT"
	ErrCodeUnknownEvent        = "UNKNOWN_EVENT"
	ErrCodeUnknownSource       = "UNKNOWN_SOURCE"
	ErrCodeInvalidTarget       = "INVALID_TARGET"
	ErrCodeDuplicateTransition = "DUPLICATE_TRANSITION"
	ErrCodeAmbiguous           = "AMBIGUOUS_TRANSITION"
	ErrCodeEmptyGuards         = "EMPTY_GUARDS"
	ErrCodeMissingGuard        = "MISSING_GUARD"
	ErrCodeCompoundMissingInit = "COMPOUND_MISSING_INIT"
	ErrCodeCompoundInvalidInit = "COMPOUND_INVALID_INIT"
	ErrCodeLeafInit            = "LEAF_INIT"
)

// ValidationIssue represents a single validation problem
type ValidationIssue struct {
	Code    string   // e.g., "INVALID_TARGET"
	Message string   // Human-readable description
	Path    []string // e.g., ["transitions", "3", "guards", "1"]
}

// String returns a human-readable representation of the issue
func (v ValidationIssue) String() string {
	if len(v.Path) > 0 {
		return fmt.Sprintf("[%s] %s (at %s)", v.Code, v.Message, strings.Join(v.Path, "."))
	}
	return fmt.Sprintf("[%s] %s", v.Code, v.Message)
}

// ValidationError contains all validation issues found in a definition.
type ValidationError struct {
	Issues []ValidationIssue
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "invalid chart"
	}
	if len(e.Issues) == 1 {
		return "invalid chart: " + e.Issues[0].String()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "invalid chart: %d issues:\n", len(e.Issues))
	for i, issue := range e.Issues {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, issue.String())
	}
	return b.String()
}

// Has reports whether an issue with the given code was found.
func (e *ValidationError) Has(code string) bool {
	return slices.ContainsFunc(e.Issues, func(i ValidationIssue) bool { return i.Code == code })
}

func (e *ValidationError) add(code, message string, path ...string) {
	e.Issues = append(e.Issues, ValidationIssue{Code: code, Message: message, Path: path})
}

// Validate checks the definition and returns a *ValidationError listing every issue,
// or nil when the chart is sound.
func Validate[D any](def *Definition[D]) error {
	errs := &ValidationError{}
	if def == nil {
		errs.add(ErrCodeNilDefinition, "definition is nil")
		return errs
	}

	t := indexTree(def.States)

	if len(def.States) == 0 {
		errs.add(ErrCodeNoStates, "at least one state is required")
	}
	if t.emptyNames > 0 {
		errs.add(ErrCodeEmptyName, fmt.Sprintf("%d state(s) have an empty name", t.emptyNames), "states")
	}
	for _, name := range t.duplicates {
		errs.add(ErrCodeDuplicateState, fmt.Sprintf("state '%s' is declared more than once", name), "states", name)
	}

	switch {
	case def.Initial == "":
		errs.add(ErrCodeMissingInitial, "initial state is required")
	case !t.has(def.Initial):
		errs.add(ErrCodeInitialNotFound, fmt.Sprintf("initial state '%s' not found in states", def.Initial))
	case t.isCompound(def.Initial):
		errs.add(ErrCodeInitialNotLeaf, fmt.Sprintf("initial state '%s' must be a leaf state", def.Initial))
	}

	events := make(map[string]bool, len(def.Events))
	for _, ev := range def.Events {
		if ev == domain.EventInit {
			errs.add(ErrCodeReservedEvent, fmt.Sprintf("event '%s' is reserved for entry resolution", ev), "events")
		}
		events[ev] = true
	}

	seen := make(map[[2]string]int)
	inits := make(map[string]bool)
	for i, tr := range def.Transitions {
		path := []string{"transitions", strconv.Itoa(i)}
		validateTransition(errs, t, events, tr, path)

		k := [2]string{tr.From, tr.Event}
		if first, dup := seen[k]; dup {
			errs.add(ErrCodeDuplicateTransition,
				fmt.Sprintf("state '%s' already defines event '%s' at transitions.%d", tr.From, tr.Event, first), path...)
		} else {
			seen[k] = i
		}
		if tr.Event == domain.EventInit {
			inits[tr.From] = true
		}
	}

	for _, name := range t.order {
		if t.isCompound(name) && !inits[name] {
			errs.add(ErrCodeCompoundMissingInit,
				fmt.Sprintf("compound state '%s' must declare its initial child with an '%s' transition", name, domain.EventInit),
				"states", name)
		}
	}

	if len(errs.Issues) > 0 {
		return errs
	}
	return nil
}

func validateTransition[D any](errs *ValidationError, t *tree, events map[string]bool, tr Transition[D], path []string) {
	if !t.has(tr.From) {
		errs.add(ErrCodeUnknownSource, fmt.Sprintf("source state '%s' is not declared", tr.From), path...)
	}
	if tr.Event != domain.EventInit && !events[tr.Event] {
		errs.add(ErrCodeUnknownEvent, fmt.Sprintf("event '%s' is not declared", tr.Event), path...)
	}

	switch {
	case tr.Guarded() && tr.To != "":
		errs.add(ErrCodeAmbiguous, "transition declares both a target and guards", path...)
	case !tr.Guarded() && tr.To == "":
		errs.add(ErrCodeEmptyGuards, "transition declares neither a target nor guards", path...)
	}

	if !tr.Guarded() && tr.To != "" && !t.has(tr.To) {
		errs.add(ErrCodeInvalidTarget, fmt.Sprintf("target state '%s' is not declared", tr.To), path...)
	}
	for j, g := range tr.Guards {
		gpath := append(slices.Clone(path), "guards", strconv.Itoa(j))
		if g.Predicate == nil {
			errs.add(ErrCodeMissingGuard, "guard has no predicate", gpath...)
		}
		if !t.has(g.To) {
			errs.add(ErrCodeInvalidTarget, fmt.Sprintf("target state '%s' is not declared", g.To), gpath...)
		}
	}

	if tr.Event != domain.EventInit || !t.has(tr.From) {
		return
	}
	if !t.isCompound(tr.From) {
		errs.add(ErrCodeLeafInit, fmt.Sprintf("leaf state '%s' cannot declare an '%s' transition", tr.From, domain.EventInit), path...)
		return
	}
	if tr.Guarded() {
		errs.add(ErrCodeCompoundInvalidInit, "initial child transitions cannot be guarded", path...)
		return
	}
	if tr.To != "" && t.parent[tr.To] != tr.From {
		errs.add(ErrCodeCompoundInvalidInit,
			fmt.Sprintf("initial state '%s' must be a child of compound state '%s'", tr.To, tr.From), path...)
	}
}

// tree indexes the state hierarchy by name.
type tree struct {
	order      []string // depth-first declaration order
	parent     map[string]string
	children   map[string][]string
	duplicates []string
	emptyNames int
}

func indexTree(roots []StateNode) *tree {
	t := &tree{
		parent:   make(map[string]string),
		children: make(map[string][]string),
	}
	var walk func(parent string, nodes []StateNode)
	walk = func(parent string, nodes []StateNode) {
		for _, n := range nodes {
			if n.Name == "" {
				t.emptyNames++
				continue
			}
			if _, dup := t.parent[n.Name]; dup {
				t.duplicates = append(t.duplicates, n.Name)
				continue
			}
			t.parent[n.Name] = parent
			t.order = append(t.order, n.Name)
			if parent != "" {
				t.children[parent] = append(t.children[parent], n.Name)
			}
			walk(n.Name, n.Children)
		}
	}
	walk("", roots)
	return t
}

func (t *tree) has(name string) bool {
	_, ok := t.parent[name]
	return ok
}

func (t *tree) isCompound(name string) bool {
	return len(t.children[name]) > 0
}
