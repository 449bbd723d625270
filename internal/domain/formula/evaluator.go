package formula

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/record"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/schema"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/shared"
)

// Evaluator computes formula fields from the non-formula values of a
// record. It is stateless and safe for concurrent use.
type Evaluator struct{}

// NewEvaluator creates a new formula evaluator
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// EvaluateAll parses every formula definition among the applicable ones,
// orders them by dependency and computes each in turn. Formulas may
// reference other formula fields as long as the references are acyclic.
// Computed results overwrite any caller-supplied value under the same
// name. The input mapping is not mutated.
func (e *Evaluator) EvaluateAll(fields record.FieldValues, applicable []schema.FieldDefinition) (record.FieldValues, error) {
	exprs := make(map[string]*Expression)
	for _, def := range applicable {
		if def.Type != schema.FieldTypeFormula {
			continue
		}
		expr, err := Parse(def.Expression)
		if err != nil {
			return nil, err
		}
		exprs[def.Name] = expr
	}

	out := fields.Clone()
	if len(exprs) == 0 {
		return out, nil
	}

	order, err := dependencyOrder(exprs)
	if err != nil {
		return nil, err
	}

	computed := make(map[string]decimal.Decimal)
	for _, name := range order {
		resolve := resolver(name, out, computed)
		result, err := exprs[name].Evaluate(resolve)
		if err != nil {
			return nil, err
		}
		computed[name] = result
		out[name] = record.NumberValue(result)
	}
	return out, nil
}

// resolver looks identifiers up against already-computed formula results
// first, then the record's own values. A missing identifier fails with
// UNRESOLVED_FIELD rather than silently reading as zero; a present but
// non-numeric one fails with TYPE_ERROR.
func resolver(formulaName string, fields record.FieldValues, computed map[string]decimal.Decimal) Resolver {
	return func(name string) (decimal.Decimal, error) {
		if v, ok := computed[name]; ok {
			return v, nil
		}
		value, ok := fields[name]
		if !ok {
			return decimal.Zero, shared.NewFieldError(shared.ErrCodeUnresolvedField,
				fmt.Sprintf("Formula %q references field %q which has no value", formulaName, name), name)
		}
		num, ok := value.Number()
		if !ok {
			return decimal.Zero, shared.NewFieldError(shared.ErrCodeType,
				fmt.Sprintf("Formula %q references field %q which is not numeric", formulaName, name), name)
		}
		return num, nil
	}
}

// dependencyOrder topologically sorts the formula fields by their
// references to one another. References to non-formula fields do not
// participate in the ordering. A cycle fails with CYCLIC_FORMULA naming
// a field on the cycle.
func dependencyOrder(exprs map[string]*Expression) ([]string, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(exprs))
	order := make([]string, 0, len(exprs))

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			return shared.NewFieldError(shared.ErrCodeCyclicFormula,
				fmt.Sprintf("Formula field %q is part of a reference cycle", name), name)
		}
		state[name] = visiting
		for _, dep := range exprs[name].Identifiers() {
			if _, isFormula := exprs[dep]; isFormula {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		state[name] = done
		order = append(order, name)
		return nil
	}

	// Iterate names deterministically so error attribution is stable.
	for _, def := range sortedNames(exprs) {
		if err := visit(def); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func sortedNames(exprs map[string]*Expression) []string {
	names := make([]string, 0, len(exprs))
	for name := range exprs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
