package internal

import (
	"sort"

	"github.com/zephyrtronium/contains"
)

// Labels maps each label to the index of its mark.
type Labels map[Label]int

// Link builds the label table of a program. If two marks define the same
// label, the error is a *RuntimeError with kind DuplicateLabel at the second
// mark, and no table is returned.
func Link(p Program) (Labels, error) {
	labels := make(Labels)
	for i, c := range p {
		if c.Op != Mark {
			continue
		}
		if _, ok := labels[c.Label]; ok {
			return nil, &RuntimeError{Kind: DuplicateLabel, IP: i, Cmd: c}
		}
		labels[c.Label] = i
	}
	return labels, nil
}

// Resolve returns the instruction index of each command's label target, or -1
// for commands with no label or with an undefined one. Marks resolve to
// themselves.
func (l Labels) Resolve(p Program) []int {
	targets := make([]int, len(p))
	for i, c := range p {
		targets[i] = -1
		if !c.Op.HasLabel() {
			continue
		}
		if t, ok := l[c.Label]; ok {
			targets[i] = t
		}
	}
	return targets
}

// An Analysis describes the static control flow of a program.
type Analysis struct {
	// Labels is the program's label table.
	Labels Labels
	// Reachable reports for each instruction whether any path from the first
	// instruction reaches it.
	Reachable []bool
	// Undefined lists, in order, the reachable instructions that refer to
	// labels with no mark.
	Undefined []int
}

// Analyze links p and finds its reachable instructions. Every return is
// assumed able to reach the return site of every reachable call.
func Analyze(p Program) (*Analysis, error) {
	labels, err := Link(p)
	if err != nil {
		return nil, err
	}
	a := Analysis{
		Labels:    labels,
		Reachable: make([]bool, len(p)),
	}
	if len(p) == 0 {
		return &a, nil
	}
	seen := contains.Set{}
	work := []int{0}
	seen.Add(0)
	visit := func(i int) {
		if i < len(p) && seen.Add(uintptr(i)) {
			work = append(work, i)
		}
	}
	var sites []int
	returns := false
	for len(work) > 0 {
		i := work[len(work)-1]
		work = work[:len(work)-1]
		a.Reachable[i] = true
		c := p[i]
		if c.Op.HasLabel() && c.Op != Mark {
			t, ok := labels[c.Label]
			if !ok {
				// Executing this instruction fails, so nothing follows it.
				a.Undefined = append(a.Undefined, i)
				continue
			}
			visit(t)
		}
		switch c.Op {
		case Exit, Jump:
			// no fallthrough
		case Return:
			if !returns {
				returns = true
				for _, s := range sites {
					visit(s)
				}
			}
		case Call:
			sites = append(sites, i+1)
			if returns {
				visit(i + 1)
			}
		default:
			visit(i + 1)
		}
	}
	sort.Ints(a.Undefined)
	return &a, nil
}

// Unreachable returns the indices of instructions that are never executed.
func (a *Analysis) Unreachable() []int {
	var r []int
	for i, ok := range a.Reachable {
		if !ok {
			r = append(r, i)
		}
	}
	return r
}
