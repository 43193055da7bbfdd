package cellgrid

import (
	"fmt"

	"golang.org/x/exp/maps"

	"github.com/kalexmills/cellgrid/formula"
	"github.com/kalexmills/cellgrid/internal/sheeterr"
)

// Sheet owns a sparse mapping of positions to cells plus the reverse
// dependency index used for cycle detection and push-based invalidation.
// Sheet is single-threaded and non-suspending: every method runs to
// completion synchronously on the calling goroutine, and a Cell obtained
// from GetCell is valid only until the next call to SetCell or ClearCell.
type Sheet struct {
	// cells maps each occupied position to its Cell. A position is present
	// here because it holds real content, because SetCell stored empty text
	// there, or because it was auto-vivified as an Empty cell to give a
	// formula reference a home.
	cells map[formula.Position]*Cell

	// refersTo maps a formula cell's position to the set of positions its
	// current formula directly references. This is the forward edge set;
	// it lives here (not inside Cell) so cells carry no back-references.
	refersTo map[formula.Position]map[formula.Position]struct{}

	// deps is the reverse dependency index: deps[r] is the set of
	// positions whose formulas directly reference r.
	deps map[formula.Position]map[formula.Position]struct{}
}

// NewSheet creates an empty Sheet.
func NewSheet() *Sheet {
	return &Sheet{
		cells:    make(map[formula.Position]*Cell),
		refersTo: make(map[formula.Position]map[formula.Position]struct{}),
		deps:     make(map[formula.Position]map[formula.Position]struct{}),
	}
}

// SetCell replaces the contents of pos with text. The edit is
// transactional: the candidate cell is built and reference-checked for
// cycles before anything is committed, so a rejected edit leaves the sheet
// entirely unchanged (position, invariant P5). Returns ErrInvalidPosition
// for an out-of-grid pos, a formula parse error for malformed formula text,
// or ErrCircularDependency if committing would close a cycle.
func (s *Sheet) SetCell(pos Position, text string) error {
	if !pos.IsValid() {
		return fmt.Errorf("%w: %s", sheeterr.ErrInvalidPosition, pos)
	}

	candidate := &Cell{}
	if err := candidate.set(text); err != nil {
		return err
	}
	refs := candidate.ReferencedCells()

	if err := s.checkCycle(pos, refs); err != nil {
		return err
	}

	prev := s.cells[pos]
	s.updateDeps(pos, referencesOf(prev), refs)
	s.cells[pos] = candidate

	for _, r := range refs {
		if _, ok := s.cells[r]; !ok {
			s.cells[r] = newEmptyCell() // auto-vivify: give the reference a home before its target is written
		}
	}

	s.invalidateDependents(pos)
	return nil
}

// referencesOf returns cell's referenced positions, or nil for a nil cell
// (the "this position had nothing before" case).
func referencesOf(cell *Cell) []Position {
	if cell == nil {
		return nil
	}
	return cell.ReferencedCells()
}

// checkCycle runs a depth-first search over the prospective graph: edges
// from refs (the candidate's own direct references) and, transitively,
// every already-committed cell's refersTo edges. If pos is reachable from
// any r in refs, committing the candidate would close a cycle.
func (s *Sheet) checkCycle(pos Position, refs []Position) error {
	visited := make(map[Position]bool)
	var visit func(cur Position) bool
	visit = func(cur Position) bool {
		if cur == pos {
			return true
		}
		if visited[cur] {
			return false
		}
		visited[cur] = true
		for next := range s.refersTo[cur] {
			if visit(next) {
				return true
			}
		}
		return false
	}
	for _, r := range refs {
		if visit(r) {
			return fmt.Errorf("%w: %s", sheeterr.ErrCircularDependency, pos)
		}
	}
	return nil
}

// updateDeps reconciles the forward (refersTo) and reverse (deps) edge sets
// for pos, given its previous and new reference lists.
func (s *Sheet) updateDeps(pos Position, prevRefs, newRefs []Position) {
	prevSet := toSet(prevRefs)
	newSet := toSet(newRefs)

	for r := range prevSet {
		if _, stillReferenced := newSet[r]; !stillReferenced {
			delete(s.deps[r], pos)
		}
	}
	for r := range newSet {
		if _, alreadyReferenced := prevSet[r]; !alreadyReferenced {
			if s.deps[r] == nil {
				s.deps[r] = make(map[Position]struct{})
			}
			s.deps[r][pos] = struct{}{}
		}
	}

	// Reset pos's own forward edge set in place (mirroring the teacher's
	// refresh()'s use of maps.Clear before repopulating) rather than
	// swapping in a new map, then repopulate it from newSet.
	if s.refersTo[pos] == nil {
		s.refersTo[pos] = make(map[Position]struct{}, len(newSet))
	} else {
		maps.Clear(s.refersTo[pos])
	}
	for r := range newSet {
		s.refersTo[pos][r] = struct{}{}
	}
	if len(newSet) == 0 {
		delete(s.refersTo, pos)
	}
}

func toSet(refs []Position) map[Position]struct{} {
	set := make(map[Position]struct{}, len(refs))
	for _, r := range refs {
		set[r] = struct{}{}
	}
	return set
}

// invalidateDependents performs a BFS over deps in reverse from pos,
// marking every transitively dependent cell's memo stale in one pass.
// Traversal stops down a branch as soon as it finds an already-stale memo,
// since that cell's own dependents must already have been invalidated when
// it was last marked stale.
func (s *Sheet) invalidateDependents(pos Position) {
	queue := []Position{pos}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for dependent := range s.deps[cur] {
			cell := s.cells[dependent]
			if cell == nil || !cell.memo.fresh {
				continue
			}
			cell.invalidate()
			queue = append(queue, dependent)
		}
	}
}

// GetCell returns the cell at pos, or nil if pos holds no cell. Returns
// ErrInvalidPosition for an out-of-grid pos. The returned Cell is valid
// only until the next SetCell or ClearCell call.
func (s *Sheet) GetCell(pos Position) (*Cell, error) {
	if !pos.IsValid() {
		return nil, fmt.Errorf("%w: %s", sheeterr.ErrInvalidPosition, pos)
	}
	return s.cells[pos], nil
}

// ClearCell removes the cell at pos entirely (no Empty residue) and
// invalidates every cell that transitively depended on it; their next read
// sees an absent cell, which evaluates as 0.0. Auto-vivified Empty cells
// elsewhere are left untouched — they persist until explicitly cleared.
// Returns ErrInvalidPosition for an out-of-grid pos.
func (s *Sheet) ClearCell(pos Position) error {
	if !pos.IsValid() {
		return fmt.Errorf("%w: %s", sheeterr.ErrInvalidPosition, pos)
	}
	prev := s.cells[pos]
	if prev == nil {
		return nil
	}
	s.updateDeps(pos, referencesOf(prev), nil)
	delete(s.cells, pos)
	s.invalidateDependents(pos)
	return nil
}

// GetPrintableSize returns 1 + max row and 1 + max col over non-Empty cell
// positions, or (0,0) if the sheet holds no non-Empty cells. Auto-vivified
// Empty cells never contribute.
func (s *Sheet) GetPrintableSize() Size {
	positions := make([]Position, 0, len(s.cells))
	for _, pos := range maps.Keys(s.cells) {
		if cell := s.cells[pos]; !cell.isEmpty() {
			positions = append(positions, pos)
		}
	}
	return formula.PrintableSizeFrom(positions)
}

// ValueAt implements formula.Sheet so the evaluator can resolve a reference
// without the formula package importing this one.
func (s *Sheet) ValueAt(pos formula.Position) (formula.Value, bool) {
	cell, ok := s.cells[pos]
	if !ok {
		return formula.Value{}, false
	}
	return cell.GetValue(s), true
}
