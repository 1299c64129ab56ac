package basic

import (
	"errors"
	"reflect"
	"testing"
)

func TestProgramEditing(t *testing.T) {

	p := NewProgram()

	for _, n := range []int{30, 10, 20, 50, 40} {
		if err := p.Set(n, "REM line"); err != nil {
			t.Fatal(err)
		}
	}

	if p.Len() != 5 {
		t.Fatalf("Len() = %d", p.Len())
	}

	var order []int
	p.Each(func(l Line) bool {
		order = append(order, l.Number)
		return true
	})

	if !reflect.DeepEqual(order, []int{10, 20, 30, 40, 50}) {
		t.Errorf("Each order = %v", order)
	}

	p.Set(20, "PRINT 2")
	if text, ok := p.Lookup(20); !ok || text != "PRINT 2" {
		t.Errorf("Lookup(20) = %q, %v", text, ok)
	}

	p.Set(30, "  ")
	if _, ok := p.Lookup(30); ok {
		t.Error("empty text did not delete line 30")
	}

	if !p.Delete(50) || p.Delete(50) {
		t.Error("Delete(50) should succeed once")
	}

	if lo, hi := p.Bounds(); lo != 10 || hi != 40 {
		t.Errorf("Bounds() = %d, %d", lo, hi)
	}

	if p.Len() != 3 {
		t.Errorf("Len() = %d after deletes", p.Len())
	}
}

func TestProgramRange(t *testing.T) {

	p := NewProgram()
	for _, n := range []int{10, 20, 30, 40} {
		p.Set(n, "END")
	}

	var got []int
	for _, l := range p.Range(15, 30) {
		got = append(got, l.Number)
	}

	if !reflect.DeepEqual(got, []int{20, 30}) {
		t.Errorf("Range(15, 30) = %v", got)
	}
}

func TestProgramRejectsBadLineNumbers(t *testing.T) {

	p := NewProgram()

	for _, n := range []int{0, -5} {
		if err := p.Set(n, "END"); !errors.Is(err, ErrIllegalLineNumber) {
			t.Errorf("Set(%d): got %v", n, err)
		}
	}
}

func TestProgramModified(t *testing.T) {

	p := NewProgram()
	if p.Modified() {
		t.Error("new program is modified")
	}

	p.Set(10, "END")
	if !p.Modified() {
		t.Error("Set did not mark the program modified")
	}

	p.ClearModified()
	p.Clear()

	if p.Modified() || p.Len() != 0 {
		t.Error("Clear left state behind")
	}

	if lo, hi := p.Bounds(); lo != 0 || hi != 0 {
		t.Errorf("Bounds() of empty program = %d, %d", lo, hi)
	}
}

func TestEmptyProgramTree(t *testing.T) {

	for _, p := range []*Program{NewProgram(), {}} {
		if p.Len() != 0 || len(p.Lines()) != 0 || p.Delete(10) {
			t.Fatal("fresh program is not empty")
		}
		if _, ok := p.Lookup(10); ok {
			t.Error("Lookup found a line in an empty program")
		}

		p.Set(20, "END")
		p.Set(10, "PRINT 1")
		p.Clear()
		p.Set(30, "STOP")

		if lines := p.Lines(); len(lines) != 1 || lines[0].Number != 30 {
			t.Errorf("after Clear: %v", lines)
		}
	}
}
