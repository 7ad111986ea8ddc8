// Package coxeter builds uniform polyhedra from linear Coxeter-Dynkin
// diagrams written in Bowers' inline notation, e.g. "x4o3o" for the cube.
//
// A diagram alternates node letters and edge marks. A node letter gives the
// length of the edge generated by that mirror: o (unringed) is 0, x is 1,
// q is √2, f is the golden ratio, and so on. A mark p or p/q between two
// nodes sets the angle between their mirrors to π·q/p.
package coxeter

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

var (
	// ErrSyntax is returned for input that is not a linear diagram
	ErrSyntax = errors.New("invalid diagram")
	// ErrUnsupported is returned for diagrams that parse but cannot be built
	ErrUnsupported = errors.New("unsupported diagram")
)

// nodeLengths maps node letters to edge lengths. x(m) is 2cos(π/m).
var nodeLengths = map[rune]float64{
	'o': 0,
	'x': 1,
	'q': math.Sqrt2,
	'f': (1 + math.Sqrt(5)) / 2,
	'v': (math.Sqrt(5) - 1) / 2,
	'h': math.Sqrt(3),
	'k': math.Sqrt(2 + math.Sqrt2),
	'u': 2,
	'F': (3 + math.Sqrt(5)) / 2,
}

// Node is one mirror of a diagram
type Node struct {
	Symbol rune
	Length float64
}

// Ringed reports whether the seed point lies off the node's mirror
func (n Node) Ringed() bool {
	return n.Length != 0
}

// Mark is the label p/q of an edge. Q is 1 for integer marks.
type Mark struct {
	P, Q int
}

// Angle returns the dihedral angle between the two mirrors
func (m Mark) Angle() float64 {
	return math.Pi * float64(m.Q) / float64(m.P)
}

// Rational reports whether the mark has a denominator other than 1
func (m Mark) Rational() bool {
	return m.Q != 1
}

func (m Mark) String() string {
	if m.Rational() {
		return fmt.Sprintf("%d/%d", m.P, m.Q)
	}
	return strconv.Itoa(m.P)
}

// Diagram is a linear Coxeter-Dynkin diagram. Marks[i] joins Nodes[i] and
// Nodes[i+1]; nodes further apart are at right angles.
type Diagram struct {
	Nodes []Node
	Marks []Mark
}

// Rank is the number of mirrors
func (d *Diagram) Rank() int {
	return len(d.Nodes)
}

func (d *Diagram) String() string {
	var sb strings.Builder
	for i, n := range d.Nodes {
		if i > 0 {
			sb.WriteString(d.Marks[i-1].String())
		}
		sb.WriteRune(n.Symbol)
	}
	return sb.String()
}

// Reversed returns the same diagram read from the other end
func (d *Diagram) Reversed() *Diagram {
	r := &Diagram{
		Nodes: make([]Node, len(d.Nodes)),
		Marks: make([]Mark, len(d.Marks)),
	}
	for i, n := range d.Nodes {
		r.Nodes[len(d.Nodes)-1-i] = n
	}
	for i, m := range d.Marks {
		r.Marks[len(d.Marks)-1-i] = m
	}
	return r
}

// Parse reads a linear diagram such as "x3o5o" or "x5/2o5o". Surrounding
// whitespace is ignored. Branched diagrams ("x3o3o *b3o") are rejected
// with ErrUnsupported.
func Parse(s string) (*Diagram, error) {
	input := []rune(strings.TrimSpace(s))
	if len(input) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrSyntax)
	}

	p := parser{input: input}
	d := &Diagram{}

	node, err := p.node()
	if err != nil {
		return nil, err
	}
	d.Nodes = append(d.Nodes, node)

	for !p.done() {
		if p.peek() == '*' || unicode.IsSpace(p.peek()) {
			return nil, fmt.Errorf("%w: branched diagram %q", ErrUnsupported, s)
		}
		mark, err := p.mark()
		if err != nil {
			return nil, err
		}
		node, err := p.node()
		if err != nil {
			return nil, err
		}
		d.Marks = append(d.Marks, mark)
		d.Nodes = append(d.Nodes, node)
	}
	return d, nil
}

// MustParse is like Parse but panics on error
func MustParse(s string) *Diagram {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

type parser struct {
	input []rune
	pos   int
}

func (p *parser) done() bool {
	return p.pos >= len(p.input)
}

func (p *parser) peek() rune {
	return p.input[p.pos]
}

func (p *parser) node() (Node, error) {
	if p.done() {
		return Node{}, fmt.Errorf("%w: expected node at end of input", ErrSyntax)
	}
	c := p.input[p.pos]
	length, ok := nodeLengths[c]
	if !ok {
		return Node{}, fmt.Errorf("%w: unknown node %q at position %d", ErrSyntax, c, p.pos)
	}
	p.pos++
	return Node{Symbol: c, Length: length}, nil
}

func (p *parser) number() (int, error) {
	start := p.pos
	for !p.done() && unicode.IsDigit(p.peek()) {
		p.pos++
	}
	if start == p.pos {
		if p.done() {
			return 0, fmt.Errorf("%w: expected mark at end of input", ErrSyntax)
		}
		return 0, fmt.Errorf("%w: expected mark at position %d, found %q", ErrSyntax, start, p.peek())
	}
	n, err := strconv.Atoi(string(p.input[start:p.pos]))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return n, nil
}

func (p *parser) mark() (Mark, error) {
	start := p.pos
	num, err := p.number()
	if err != nil {
		return Mark{}, err
	}
	den := 1
	if !p.done() && p.peek() == '/' {
		p.pos++
		if den, err = p.number(); err != nil {
			return Mark{}, err
		}
	}
	if num < 2 || den < 1 || den >= num {
		return Mark{}, fmt.Errorf("%w: mark %s at position %d", ErrSyntax, string(p.input[start:p.pos]), start)
	}
	return Mark{P: num, Q: den}, nil
}
