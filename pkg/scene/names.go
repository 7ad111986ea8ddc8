package scene

import "fmt"

// nameTable stores values under unique names. A clash is resolved the way
// the host application does it: "Name", "Name.001", "Name.002", ...
type nameTable[T any] struct {
	byName map[string]T
	order  []string
}

func newNameTable[T any]() *nameTable[T] {
	return &nameTable[T]{byName: make(map[string]T)}
}

func (t *nameTable[T]) add(name string, v T) string {
	unique := name
	for i := 1; ; i++ {
		if _, taken := t.byName[unique]; !taken {
			break
		}
		unique = fmt.Sprintf("%s.%03d", name, i)
	}
	t.byName[unique] = v
	t.order = append(t.order, unique)
	return unique
}

func (t *nameTable[T]) values() []T {
	out := make([]T, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.byName[name])
	}
	return out
}
