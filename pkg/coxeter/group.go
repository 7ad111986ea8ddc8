package coxeter

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFinite is returned for diagrams whose symmetry group is infinite
var ErrNotFinite = errors.New("symmetry group is not finite")

// Classify names the finite Coxeter group of a diagram, e.g. "H3" for
// x3o5o. Marks of 2 split the diagram into components, which are joined
// with " × ". Rational marks classify like their numerator.
func Classify(d *Diagram) (string, error) {
	var names []string
	start := 0
	for i := 0; i <= len(d.Marks); i++ {
		if i < len(d.Marks) && d.Marks[i].P != 2 {
			continue
		}
		name, err := classifyComponent(d.Marks[start:i])
		if err != nil {
			return "", fmt.Errorf("%s: %w", d, err)
		}
		names = append(names, name)
		start = i + 1
	}
	return strings.Join(names, " × "), nil
}

// classifyComponent names a connected chain given its marks, none of
// which is 2
func classifyComponent(marks []Mark) (string, error) {
	rank := len(marks) + 1
	p := make([]int, len(marks))
	threes := 0
	for i, m := range marks {
		p[i] = m.P
		if m.P == 3 {
			threes++
		}
	}

	switch {
	case threes == len(p):
		return fmt.Sprintf("A%d", rank), nil
	case rank == 2:
		return fmt.Sprintf("I2(%d)", p[0]), nil
	case threes == len(p)-1 && (p[0] == 4 || p[len(p)-1] == 4):
		return fmt.Sprintf("B%d", rank), nil
	case rank == 3 && threes == 1 && (p[0] == 5 || p[1] == 5):
		return "H3", nil
	case rank == 4 && threes == 2 && (p[0] == 5 || p[2] == 5):
		return "H4", nil
	case rank == 4 && p[0] == 3 && p[1] == 4 && p[2] == 3:
		return "F4", nil
	}
	return "", ErrNotFinite
}
