package stride

import "github.com/llir/llvm/ir"

// Slot is the storage backing one let-declared name in one block. Bound is
// cleared whenever the block is entered and set by the let, which is how
// the generated code tells a declared name from one that is merely in
// scope textually.
type Slot struct {
	Name   string
	Bound  *ir.InstAlloca
	IsBool *ir.InstAlloca
	Num    *ir.InstAlloca
}

// SymbolTable is the compile time mirror of an Environment: one table per
// block, linked to the enclosing block's table.
type SymbolTable struct {
	parent  *SymbolTable
	entries map[string]*Slot
	names   []string
}

func NewSymbolTable(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{
		parent:  parent,
		entries: make(map[string]*Slot),
	}
}

func (t *SymbolTable) Parent() *SymbolTable {
	return t.parent
}

func (t *SymbolTable) Add(name string, slot *Slot) {
	if _, ok := t.entries[name]; !ok {
		t.names = append(t.names, name)
	}

	t.entries[name] = slot
}

// Get returns the slot for name declared in this block only.
func (t *SymbolTable) Get(name string) *Slot {
	return t.entries[name]
}

// Slots returns this block's slots in declaration order.
func (t *SymbolTable) Slots() []*Slot {
	slots := make([]*Slot, len(t.names))
	for i, name := range t.names {
		slots[i] = t.entries[name]
	}

	return slots
}

// Candidates returns every slot that name could refer to at run time,
// innermost block first.
func (t *SymbolTable) Candidates(name string) []*Slot {
	var slots []*Slot
	for table := t; table != nil; table = table.parent {
		if slot, ok := table.entries[name]; ok {
			slots = append(slots, slot)
		}
	}

	return slots
}

// Declarations lists the names a block declares directly, in order and
// without duplicates. Nested blocks get their own frames and are not
// included.
func Declarations(stmts []Stmt) []string {
	seen := make(map[string]bool)

	var names []string
	for _, stmt := range stmts {
		let, ok := stmt.(*LetStmt)
		if !ok || seen[let.Name] {
			continue
		}

		seen[let.Name] = true
		names = append(names, let.Name)
	}

	return names
}
