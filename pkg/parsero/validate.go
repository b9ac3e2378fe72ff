package parsero

import "errors"

// validateSteps enforces the static step-list invariants: name uniqueness
// and, when branching exists, chain completeness. Both violations are
// reported together.
func validateSteps(steps []Procedure) error {
	var errs []error

	if dupes := duplicateNames(steps); len(dupes) > 0 {
		errs = append(errs, &DuplicateNameError{Names: dupes})
	}

	if broken := incompleteChain(steps); len(broken) > 0 {
		errs = append(errs, &ChainError{Steps: broken})
	}

	return errors.Join(errs...)
}

// duplicateNames returns every name shared by two or more procedures,
// in first-occurrence order, regardless of the Action/Check mix.
func duplicateNames(steps []Procedure) []string {
	counts := make(map[string]int, len(steps))
	for _, p := range steps {
		counts[p.name]++
	}

	var dupes []string
	seen := make(map[string]bool)
	for _, p := range steps {
		if counts[p.name] > 1 && !seen[p.name] {
			dupes = append(dupes, p.name)
			seen[p.name] = true
		}
	}
	return dupes
}

// incompleteChain returns the Actions without an explicit next step when the
// list contains at least one Check. A Check can jump anywhere, so list order
// stops being a reliable continuation once one exists.
func incompleteChain(steps []Procedure) []string {
	hasCheck := false
	for _, p := range steps {
		if p.kind == KindCheck {
			hasCheck = true
			break
		}
	}
	if !hasCheck {
		return nil
	}

	var broken []string
	for _, p := range steps {
		if p.kind == KindAction && p.next == "" {
			broken = append(broken, p.name)
		}
	}
	return broken
}
