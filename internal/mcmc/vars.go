package mcmc

import (
	"math"
	"sort"
)

// Vars is a named collection of numeric arrays. Positions and momenta are
// both Vars with the same structure; the names and shapes are supplied by
// the caller's target distribution.
type Vars map[string][]float64

func (v Vars) Clone() Vars {
	c := make(Vars, len(v))
	for name, vals := range v {
		cv := make([]float64, len(vals))
		copy(cv, vals)
		c[name] = cv
	}
	return c
}

// Names returns the variable names in sorted order. All structure-dependent
// operations (flattening, momentum sampling) iterate in this order so that
// results are deterministic.
func (v Vars) Names() []string {
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dim returns the total number of scalar entries.
func (v Vars) Dim() int {
	n := 0
	for _, vals := range v {
		n += len(vals)
	}
	return n
}

// AddScaled returns v + a*o element-wise. Entries missing from o are
// copied unchanged.
func (v Vars) AddScaled(o Vars, a float64) Vars {
	result := make(Vars, len(v))
	for name, vals := range v {
		rv := make([]float64, len(vals))
		ov := o[name]
		for i := range vals {
			if i < len(ov) {
				rv[i] = vals[i] + a*ov[i]
			} else {
				rv[i] = vals[i]
			}
		}
		result[name] = rv
	}
	return result
}

func (v Vars) Scale(a float64) Vars {
	result := make(Vars, len(v))
	for name, vals := range v {
		rv := make([]float64, len(vals))
		for i := range vals {
			rv[i] = a * vals[i]
		}
		result[name] = rv
	}
	return result
}

// Negate returns -v. Used to flip momentum before the acceptance step.
func (v Vars) Negate() Vars {
	return v.Scale(-1)
}

func (v Vars) IsFinite() bool {
	for _, vals := range v {
		for _, x := range vals {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return false
			}
		}
	}
	return true
}

// Equal reports bitwise equality of structure and values. NaN entries are
// never equal, matching float64 comparison semantics.
func (v Vars) Equal(o Vars) bool {
	if len(v) != len(o) {
		return false
	}
	for name, vals := range v {
		ov, ok := o[name]
		if !ok || len(ov) != len(vals) {
			return false
		}
		for i := range vals {
			if vals[i] != ov[i] {
				return false
			}
		}
	}
	return true
}

// WithinTol reports whether every entry of v is within tol of the
// corresponding entry of o.
func (v Vars) WithinTol(o Vars, tol float64) bool {
	if len(v) != len(o) {
		return false
	}
	for name, vals := range v {
		ov, ok := o[name]
		if !ok || len(ov) != len(vals) {
			return false
		}
		for i := range vals {
			if math.Abs(vals[i]-ov[i]) > tol {
				return false
			}
		}
	}
	return true
}

// Flatten concatenates all arrays in sorted name order.
func (v Vars) Flatten() []float64 {
	flat := make([]float64, 0, v.Dim())
	for _, name := range v.Names() {
		flat = append(flat, v[name]...)
	}
	return flat
}

// Unflatten builds Vars with the same structure as v from a flat vector
// laid out in sorted name order.
func (v Vars) Unflatten(flat []float64) Vars {
	result := make(Vars, len(v))
	i := 0
	for _, name := range v.Names() {
		n := len(v[name])
		rv := make([]float64, n)
		copy(rv, flat[i:i+n])
		result[name] = rv
		i += n
	}
	return result
}
