package physics

import (
	"fmt"
	"strings"
)

// PairVisit selects how the pairwise pass walks ball pairs
type PairVisit uint8

const (
	// PairVisitOnce resolves each unordered pair (i < j) once per tick
	PairVisitOnce PairVisit = iota
	// PairVisitTwice scans every other ball from each ball, so each pair is offered twice per tick
	PairVisitTwice
)

func (v PairVisit) String() string {
	switch v {
	case PairVisitOnce:
		return "once"
	case PairVisitTwice:
		return "twice"
	}
	return fmt.Sprintf("PairVisit(%d)", uint8(v))
}

// ParsePairVisit maps "once" / "twice" to a PairVisit
func ParsePairVisit(s string) (PairVisit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "once":
		return PairVisitOnce, nil
	case "twice":
		return PairVisitTwice, nil
	}
	return PairVisitOnce, fmt.Errorf("unknown pair visit mode %q", s)
}

// StepParams tunes one simulation tick
type StepParams struct {
	Restitution float64
	PairVisit   PairVisit
}

// PairHit records one resolved pair contact, ids in resolution order
type PairHit struct {
	A, B int
}

// Contacts summarizes what a tick touched, for host feedback only
type Contacts struct {
	Walls []int // Ball ids that reflected off a wall
	Pairs []PairHit
}

// Reset empties the record while keeping capacity
func (c *Contacts) Reset() {
	c.Walls = c.Walls[:0]
	c.Pairs = c.Pairs[:0]
}

// Empty reports whether nothing collided
func (c *Contacts) Empty() bool {
	return len(c.Walls) == 0 && len(c.Pairs) == 0
}

// Step advances balls by one tick: integrate all, wall-resolve all, then pairwise-resolve
// balls must be in canonical order (ascending id); contacts is reset and filled, may be nil
//
// Pair resolution is sequential and order dependent. Chains of three or more
// touching balls are not fully separated in one tick: a later pair correction
// can push a ball back into a neighbour that was already resolved. With
// PairVisitTwice such a neighbour is offered again in the same tick, which
// both re-separates it and re-exchanges velocities along the new normal.
func Step(balls []Ball, arena Arena, p StepParams, contacts *Contacts) {
	if contacts != nil {
		contacts.Reset()
	}

	for i := range balls {
		Integrate(&balls[i])
	}

	for i := range balls {
		if ResolveWall(&balls[i], arena, p.Restitution) && contacts != nil {
			contacts.Walls = append(contacts.Walls, balls[i].ID)
		}
	}

	switch p.PairVisit {
	case PairVisitTwice:
		for i := range balls {
			for j := range balls {
				if i == j {
					continue
				}
				resolveRecorded(&balls[i], &balls[j], contacts)
			}
		}
	default:
		for i := 0; i < len(balls); i++ {
			for j := i + 1; j < len(balls); j++ {
				resolveRecorded(&balls[i], &balls[j], contacts)
			}
		}
	}
}

func resolveRecorded(a, b *Ball, contacts *Contacts) {
	if ResolvePair(a, b) && contacts != nil {
		contacts.Pairs = append(contacts.Pairs, PairHit{A: a.ID, B: b.ID})
	}
}
