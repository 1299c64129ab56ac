package basic

import (
	"errors"
	"reflect"
	"testing"
)

func TestStoreScalars(t *testing.T) {

	s := NewStore()

	if v := s.Get("X"); v != Number(0) {
		t.Errorf("unset X = %v, want 0", v)
	}

	s.Set("X", Number(3))
	s.Set("A$", String("hi"))

	if v := s.Get("X"); v != Number(3) {
		t.Errorf("X = %v", v)
	}

	if got := s.Scalars(); !reflect.DeepEqual(got, []string{"A$", "X"}) {
		t.Errorf("Scalars() = %v", got)
	}

	s.Clear()

	if len(s.Scalars()) != 0 {
		t.Error("Clear left scalars behind")
	}
}

func TestArrayRoundTrip(t *testing.T) {

	s := NewStore()

	if err := s.Dim("A", []int{3, 3}); err != nil {
		t.Fatal(err)
	}

	if err := s.SetElem("A", []int{2, 3}, Number(7)); err != nil {
		t.Fatal(err)
	}

	v, err := s.Elem("A", []int{2, 3})
	if err != nil || v != Number(7) {
		t.Errorf("A(2,3) = %v, %v; want 7", v, err)
	}

	// Neighbouring cells are untouched

	for _, idx := range [][]int{{3, 2}, {2, 2}, {1, 3}} {
		if v, _ := s.Elem("A", idx); v != Number(0) {
			t.Errorf("A%v = %v, want 0", idx, v)
		}
	}
}

func TestArrayErrors(t *testing.T) {

	s := NewStore()
	s.Dim("A", []int{3, 3})

	tests := []struct {
		name string
		idx  []int
		want error
	}{
		{"A", []int{4, 1}, ErrSubscriptRange},
		{"A", []int{0, 1}, ErrSubscriptRange},
		{"A", []int{1}, ErrSubscriptRange},
		{"A", []int{1, 1, 1}, ErrSubscriptRange},
		{"B", []int{1}, ErrUndimensioned},
	}

	for _, tt := range tests {
		if _, err := s.Elem(tt.name, tt.idx); !errors.Is(err, tt.want) {
			t.Errorf("%s%v: got %v, want %v", tt.name, tt.idx, err, tt.want)
		}
	}
}

func TestDimErrors(t *testing.T) {

	s := NewStore()

	for _, dims := range [][]int{{0}, {3, -1}, {1 << 13, 1 << 13, 1 << 13}} {
		if err := s.Dim("A", dims); !errors.Is(err, ErrBadDimension) {
			t.Errorf("DIM A%v: got %v", dims, err)
		}
	}
}

func TestRedimReplaces(t *testing.T) {

	s := NewStore()
	s.Dim("A", []int{2})
	s.SetElem("A", []int{1}, Number(5))
	s.Dim("A", []int{4})

	if v, _ := s.Elem("A", []int{1}); v != Number(0) {
		t.Errorf("A(1) = %v after re-DIM, want 0", v)
	}

	if got := s.Array("A").Dims(); !reflect.DeepEqual(got, []int{4}) {
		t.Errorf("Dims() = %v", got)
	}
}

func TestStringArrayCoerces(t *testing.T) {

	s := NewStore()
	s.Dim("N$", []int{2})
	s.Dim("N", []int{2})

	s.SetElem("N$", []int{1}, Number(12))
	s.SetElem("N", []int{1}, String("2.5"))

	if v, _ := s.Elem("N$", []int{1}); v != String("12") {
		t.Errorf("N$(1) = %v", v)
	}

	if v, _ := s.Elem("N$", []int{2}); v != String("") {
		t.Errorf("N$(2) = %v, want empty string", v)
	}

	if v, _ := s.Elem("N", []int{1}); v != Number(2.5) {
		t.Errorf("N(1) = %v", v)
	}

	if got := s.Arrays(); !reflect.DeepEqual(got, []string{"N", "N$"}) {
		t.Errorf("Arrays() = %v", got)
	}
}

func TestToIndexFloors(t *testing.T) {

	tests := []struct {
		v    Value
		want int
	}{
		{Number(2.9), 2},
		{Number(-0.5), -1},
		{String("3"), 3},
	}

	for _, tt := range tests {
		if got, err := toIndex(tt.v); err != nil || got != tt.want {
			t.Errorf("toIndex(%v) = %d, %v; want %d", tt.v, got, err, tt.want)
		}
	}
}
