package df

import (
	"fmt"
	"math"
)

// Vector holds the data of a column. The underlying slice is []float64 for DTfloat and
// []string for DTstring.
type Vector struct {
	dt DataTypes

	data any
}

func NewVector(data any, dt DataTypes) (*Vector, error) {
	switch x := data.(type) {
	case []float64:
		if dt != DTfloat {
			return nil, fmt.Errorf("cannot make vector of type %s from []float64", dt)
		}

		return &Vector{dt: dt, data: x}, nil
	case []string:
		if dt != DTstring {
			return nil, fmt.Errorf("cannot make vector of type %s from []string", dt)
		}

		return &Vector{dt: dt, data: x}, nil
	default:
		return nil, fmt.Errorf("unsupported data type %T in NewVector", data)
	}
}

func MakeVector(dt DataTypes, n int) *Vector {
	switch dt {
	case DTfloat:
		return &Vector{dt: dt, data: make([]float64, n)}
	case DTstring:
		return &Vector{dt: dt, data: make([]string, n)}
	default:
		panic(fmt.Errorf("cannot make Vector with data type %s", dt))
	}
}

func (v *Vector) VectorType() DataTypes {
	return v.dt
}

func (v *Vector) SetFloat(val float64, indx int) {
	if v.VectorType() != DTfloat {
		panic(fmt.Errorf("vector isn't DTfloat"))
	}

	if indx < 0 || indx >= v.Len() {
		panic(fmt.Errorf("index out of range"))
	}

	v.data.([]float64)[indx] = val
}

func (v *Vector) SetString(val string, indx int) {
	if v.VectorType() != DTstring {
		panic(fmt.Errorf("vector isn't DTstring"))
	}

	if indx < 0 || indx >= v.Len() {
		panic(fmt.Errorf("index out of range"))
	}

	v.data.([]string)[indx] = val
}

// AsFloat returns the underlying []float64. The slice is shared, callers must not modify it.
func (v *Vector) AsFloat() ([]float64, error) {
	if v.VectorType() != DTfloat {
		return nil, fmt.Errorf("vector is %s, not %s", v.VectorType(), DTfloat)
	}

	return v.data.([]float64), nil
}

// AsString returns the underlying []string. The slice is shared, callers must not modify it.
func (v *Vector) AsString() ([]string, error) {
	if v.VectorType() != DTstring {
		return nil, fmt.Errorf("vector is %s, not %s", v.VectorType(), DTstring)
	}

	return v.data.([]string), nil
}

func (v *Vector) Element(indx int) any {
	if indx < 0 || indx >= v.Len() {
		panic(fmt.Errorf("index out of range"))
	}

	switch v.dt {
	case DTfloat:
		return v.data.([]float64)[indx]
	case DTstring:
		return v.data.([]string)[indx]
	default:
		panic(fmt.Errorf("error in Element"))
	}
}

// Missing reports whether element indx is absent: NaN for floats, "" for strings.
func (v *Vector) Missing(indx int) bool {
	switch x := v.Element(indx).(type) {
	case float64:
		return math.IsNaN(x)
	case string:
		return x == ""
	default:
		return true
	}
}

func (v *Vector) Len() int {
	switch v.dt {
	case DTfloat:
		return len(v.data.([]float64))
	case DTstring:
		return len(v.data.([]string))
	default:
		panic(fmt.Errorf("unknown type in Len"))
	}
}

func (v *Vector) Copy() *Vector {
	switch v.dt {
	case DTfloat:
		x := make([]float64, v.Len())
		copy(x, v.data.([]float64))
		return &Vector{dt: v.dt, data: x}
	case DTstring:
		x := make([]string, v.Len())
		copy(x, v.data.([]string))
		return &Vector{dt: v.dt, data: x}
	default:
		panic(fmt.Errorf("unsupported data type in Copy"))
	}
}

// Subset returns a new Vector with the elements at rows, in that order. Rows may repeat.
func (v *Vector) Subset(rows []int) (*Vector, error) {
	n := v.Len()
	for _, r := range rows {
		if r < 0 || r >= n {
			return nil, fmt.Errorf("row %d out of range in Subset", r)
		}
	}

	switch v.dt {
	case DTfloat:
		src := v.data.([]float64)
		x := make([]float64, len(rows))
		for ind, r := range rows {
			x[ind] = src[r]
		}

		return &Vector{dt: v.dt, data: x}, nil
	case DTstring:
		src := v.data.([]string)
		x := make([]string, len(rows))
		for ind, r := range rows {
			x[ind] = src[r]
		}

		return &Vector{dt: v.dt, data: x}, nil
	default:
		return nil, fmt.Errorf("unsupported data type in Subset")
	}
}

// AsAny returns the underlying slice.
func (v *Vector) AsAny() any {
	return v.data
}
