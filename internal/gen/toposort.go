package gen

import (
	"errors"
	"fmt"
	"strings"
)

// errCycle is wrapped by topoSort when embeds form a cycle.
var errCycle = errors.New("embed cycle")

// topoSort orders the structs named in names so that every struct follows
// the ones it embeds. deps(i) yields the indices embedded by i.
//
// Structs are visited in index order and their parents in declaration
// order, so unrelated structs keep their relative position.
func topoSort(names []string, deps func(i int) []int) ([]int, error) {
	const (
		unvisited = iota
		visiting
		done
	)

	state := make([]int, len(names))
	order := make([]int, 0, len(names))

	var path []int

	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("%w: %s", errCycle, cyclePath(names, path, i))
		}

		state[i] = visiting
		path = append(path, i)

		for _, d := range deps(i) {
			if d < 0 || d >= len(names) {
				return fmt.Errorf("%s embeds unknown struct index %d", names[i], d)
			}

			if err := visit(d); err != nil {
				return err
			}
		}

		path = path[:len(path)-1]
		state[i] = done
		order = append(order, i)

		return nil
	}

	for i := range names {
		if err := visit(i); err != nil {
			return nil, err
		}
	}

	if len(order) == 0 {
		return nil, nil
	}

	return order, nil
}

// cyclePath renders the part of path starting at the repeated index, e.g. "A -> B -> A".
func cyclePath(names []string, path []int, repeated int) string {
	start := 0

	for k, i := range path {
		if i == repeated {
			start = k

			break
		}
	}

	parts := make([]string, 0, len(path)-start+1)
	for _, i := range path[start:] {
		parts = append(parts, names[i])
	}

	return strings.Join(append(parts, names[repeated]), " -> ")
}
