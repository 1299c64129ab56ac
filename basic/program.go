package basic

import (
	"fmt"
	"strings"

	"github.com/danswartzendruber/avl"
)

//
// The program text is kept in an AVL tree keyed by line number, so
// that inserting, replacing and deleting lines in any order is cheap
// and an in-order walk yields the lines in ascending order.  The
// wrappers below keep the avl interface out of everything else
//

// Line is one numbered source line.
type Line struct {
	Number int
	Text   string
}

func (l Line) String() string {
	return fmt.Sprintf("%d %s", l.Number, l.Text)
}

type lineNode struct {
	avl    avl.AvlNode
	number int
	text   string
}

// Program is the editable, line-numbered source of a BASIC program.
type Program struct {
	root     *avl.AvlNode
	count    int
	modified bool
}

func NewProgram() *Program {
	return &Program{}
}

func cmpLineKey(key any, node any) int {
	return cmpInts(key.(int), node.(*lineNode).number)
}

func cmpLineNodes(node1, node2 any) int {
	return cmpInts(node1.(*lineNode).number, node2.(*lineNode).number)
}

func cmpInts(a, b int) int {

	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}

	return 0
}

func (p *Program) lookup(number int) *lineNode {

	n := avl.AvlTreeLookup(p.root, number, cmpLineKey)
	if n != nil {
		return n.(*lineNode)
	}

	return nil
}

func (p *Program) first() *lineNode {

	n := avl.AvlTreeFirstInOrder(p.root)
	if n != nil {
		return n.(*lineNode)
	}

	return nil
}

func (p *Program) last() *lineNode {

	n := avl.AvlTreeLastInOrder(p.root)
	if n != nil {
		return n.(*lineNode)
	}

	return nil
}

func (p *Program) nextNode(node *lineNode) *lineNode {

	n := avl.AvlTreeNextInOrder(&node.avl)
	if n != nil {
		return n.(*lineNode)
	}

	return nil
}

// Set inserts or replaces a line.  Empty (or all blank) text deletes
// the line instead, the same as typing a bare line number.
func (p *Program) Set(number int, text string) error {

	if number <= 0 {
		return runtimeErrorf(ErrIllegalLineNumber, "%d", number)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		p.Delete(number)
		return nil
	}

	if old := p.lookup(number); old != nil {
		old.text = text
		p.modified = true
		return nil
	}

	node := &lineNode{number: number, text: text}

	dup := avl.AvlTreeInsert(&p.root, &node.avl, node, cmpLineNodes)
	basicAssert(dup == nil, fmt.Sprintf("line %d already in tree", number))

	p.count++
	p.modified = true

	return nil
}

// Delete removes a line, reporting whether it existed.
func (p *Program) Delete(number int) bool {

	node := p.lookup(number)
	if node == nil {
		return false
	}

	avl.AvlTreeRemove(&p.root, &node.avl)

	p.count--
	p.modified = true

	return true
}

func (p *Program) Lookup(number int) (string, bool) {

	if node := p.lookup(number); node != nil {
		return node.text, true
	}

	return "", false
}

func (p *Program) Len() int {
	return p.count
}

// Bounds returns the lowest and highest line numbers, or 0, 0 for an
// empty program.
func (p *Program) Bounds() (int, int) {

	f, l := p.first(), p.last()
	if f == nil {
		return 0, 0
	}

	return f.number, l.number
}

// Each walks the lines in ascending order until fn returns false.
func (p *Program) Each(fn func(Line) bool) {

	for n := p.first(); n != nil; n = p.nextNode(n) {
		if !fn(Line{Number: n.number, Text: n.text}) {
			return
		}
	}
}

// Lines returns a snapshot of the program in line order.
func (p *Program) Lines() []Line {

	lines := make([]Line, 0, p.count)

	p.Each(func(l Line) bool {
		lines = append(lines, l)
		return true
	})

	return lines
}

// Range returns the lines numbered from..to inclusive.
func (p *Program) Range(from, to int) []Line {

	var lines []Line

	p.Each(func(l Line) bool {
		if l.Number > to {
			return false
		}
		if l.Number >= from {
			lines = append(lines, l)
		}
		return true
	})

	return lines
}

func (p *Program) Clear() {

	p.root = nil
	p.count = 0
	p.modified = false
}

// Modified reports whether the program changed since it was last
// loaded or saved.
func (p *Program) Modified() bool {
	return p.modified
}

func (p *Program) ClearModified() {
	p.modified = false
}
