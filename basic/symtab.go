package basic

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

//
// Scalars and arrays live in separate tables, so A and A(1) are
// different variables.  Arrays only come into existence through DIM;
// there is no implicit dimensioning
//

const maxArrayElements = 1 << 24

// Store holds a program's variables.  It outlives a single run: the
// interactive session keeps values around until NEW or LOAD.
type Store struct {
	scalars map[string]Value
	arrays  map[string]*Array
}

func NewStore() *Store {

	s := &Store{}
	s.Clear()

	return s
}

func (s *Store) Clear() {

	s.scalars = make(map[string]Value)
	s.arrays = make(map[string]*Array)
}

// Get reads a scalar; unset names read as the number 0.
func (s *Store) Get(name string) Value {
	return s.scalars[name]
}

func (s *Store) Set(name string, v Value) {
	s.scalars[name] = v
}

// Scalars returns the names of all set scalar variables, sorted.
func (s *Store) Scalars() []string {
	return sortedKeys(s.scalars)
}

// Arrays returns the names of all dimensioned arrays, sorted.
func (s *Store) Arrays() []string {
	return sortedKeys(s.arrays)
}

// Array returns the named array, or nil if it was never dimensioned.
func (s *Store) Array(name string) *Array {
	return s.arrays[name]
}

// Dim (re)creates an array.  A name ending in '$' holds strings,
// anything else numbers.
func (s *Store) Dim(name string, dims []int) error {

	a, err := newArray(name, dims)
	if err != nil {
		return err
	}

	s.arrays[name] = a

	return nil
}

func (s *Store) Elem(name string, idx []int) (Value, error) {

	a, err := s.lookupArray(name)
	if err != nil {
		return Value{}, err
	}

	return a.Get(idx)
}

func (s *Store) SetElem(name string, idx []int, v Value) error {

	a, err := s.lookupArray(name)
	if err != nil {
		return err
	}

	return a.Set(idx, v)
}

func (s *Store) lookupArray(name string) (*Array, error) {

	a := s.arrays[name]
	if a == nil {
		return nil, runtimeErrorf(ErrUndimensioned, "%s", name)
	}

	return a, nil
}

// Array is a fixed-shape, 1-based, row-major array backed by a flat
// buffer.  Exactly one of nums and strs is allocated.
type Array struct {
	Name   string
	dims   []int
	stride []int
	nums   []float64
	strs   []string
}

func newArray(name string, dims []int) (*Array, error) {

	basicAssert(len(dims) > 0, "DIM with no dimensions")

	a := &Array{
		Name:   name,
		dims:   append([]int(nil), dims...),
		stride: make([]int, len(dims)),
	}

	total := 1
	for _, d := range dims {
		if d <= 0 {
			return nil, runtimeErrorf(ErrBadDimension, "%s(%s)", name, joinInts(dims))
		}
		if total > maxArrayElements/d {
			return nil, runtimeErrorf(ErrBadDimension, "%s(%s) is too large", name, joinInts(dims))
		}
		total *= d
	}

	//
	// Row-major: the last subscript varies fastest
	//

	step := 1
	for i := len(dims) - 1; i >= 0; i-- {
		a.stride[i] = step
		step *= dims[i]
	}

	if a.IsString() {
		a.strs = make([]string, total)
	} else {
		a.nums = make([]float64, total)
	}

	return a, nil
}

func (a *Array) IsString() bool {
	return strings.HasSuffix(a.Name, "$")
}

// Dims returns a copy of the dimension sizes.
func (a *Array) Dims() []int {
	return append([]int(nil), a.dims...)
}

func (a *Array) Len() int {

	if a.IsString() {
		return len(a.strs)
	}

	return len(a.nums)
}

func (a *Array) offset(idx []int) (int, error) {

	if len(idx) != len(a.dims) {
		return 0, runtimeErrorf(ErrSubscriptRange, "%s has %d %s, got %d",
			a.Name, len(a.dims), pluralize("dimension", len(a.dims)), len(idx))
	}

	off := 0
	for i, v := range idx {
		if v < 1 || v > a.dims[i] {
			return 0, runtimeErrorf(ErrSubscriptRange, "%s(%s), bounds are 1..%d",
				a.Name, joinInts(idx), a.dims[i])
		}
		off += (v - 1) * a.stride[i]
	}

	return off, nil
}

func (a *Array) Get(idx []int) (Value, error) {

	off, err := a.offset(idx)
	if err != nil {
		return Value{}, err
	}

	if a.IsString() {
		return String(a.strs[off]), nil
	}

	return Number(a.nums[off]), nil
}

// Set stores v, coercing it to the array's element type.
func (a *Array) Set(idx []int, v Value) error {

	off, err := a.offset(idx)
	if err != nil {
		return err
	}

	if a.IsString() {
		a.strs[off] = v.AsString()
	} else {
		a.nums[off] = v.AsNumber()
	}

	return nil
}

// toIndex floors a subscript value to an int.
func toIndex(v Value) (int, error) {

	f := math.Floor(v.AsNumber())
	if math.IsNaN(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, runtimeErrorf(ErrSubscriptRange, "%s", v.AsString())
	}

	return int(f), nil
}

func sortedKeys[V any](m map[string]V) []string {

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

func joinInts(n []int) string {

	parts := make([]string, len(n))
	for i, v := range n {
		parts[i] = fmt.Sprint(v)
	}

	return strings.Join(parts, ",")
}

func pluralize(s string, n int) string {

	if n == 1 {
		return s
	}

	return s + "s"
}
