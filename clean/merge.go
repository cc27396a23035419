package clean

import (
	"fmt"

	d "github.com/invertedv/incomereg"
	"k8s.io/klog/v2"
)

// Merge inner-joins education and unemployment on EduKey = UnempKey. Rows whose key is in only
// one table are dropped; disjoint tables give a table with zero rows. Repeated keys give every
// pairing. Row order follows education, then unemployment within a key.
func Merge(education, unemployment *d.DF) (*d.DF, error) {
	return Join(education, unemployment, EduKey, UnempKey)
}

// Join is Merge with explicit key columns. When the key names match, only the left key is kept.
// Any other name present in both tables gets the suffixes _x and _y, key columns included.
func Join(left, right *d.DF, leftKey, rightKey string) (*d.DF, error) {
	var lk, rk *d.Col
	if lk = left.Column(leftKey); lk == nil {
		return nil, fmt.Errorf("%w: left table has no key column %q", d.ErrJoin, leftKey)
	}

	if rk = right.Column(rightKey); rk == nil {
		return nil, fmt.Errorf("%w: right table has no key column %q", d.ErrJoin, rightKey)
	}

	lKeys, e := lk.AsString()
	if e != nil {
		return nil, fmt.Errorf("%w: %v", d.ErrJoin, e)
	}

	rKeys, e := rk.AsString()
	if e != nil {
		return nil, fmt.Errorf("%w: %v", d.ErrJoin, e)
	}

	index := make(map[string][]int)
	for ind, k := range rKeys {
		if k == "" {
			continue
		}

		index[k] = append(index[k], ind)
	}

	lRows, rRows := []int{}, []int{}
	for ind, k := range lKeys {
		for _, r := range index[k] {
			lRows = append(lRows, ind)
			rRows = append(rRows, r)
		}
	}

	// the right key is dropped only when it is the shared key
	shared := leftKey == rightKey
	rightOut := func(name string) bool {
		return right.Column(name) != nil && !(shared && name == rightKey)
	}

	var cols []*d.Col
	for _, c := range left.Columns() {
		var sub *d.Col
		if sub, e = c.Subset(lRows); e != nil {
			return nil, e
		}

		if rightOut(c.Name()) {
			if e = sub.Rename(c.Name() + "_x"); e != nil {
				return nil, e
			}
		}

		cols = append(cols, sub)
	}

	for _, c := range right.Columns() {
		if !rightOut(c.Name()) {
			continue
		}

		var sub *d.Col
		if sub, e = c.Subset(rRows); e != nil {
			return nil, e
		}

		if left.Column(c.Name()) != nil {
			if e = sub.Rename(c.Name() + "_y"); e != nil {
				return nil, e
			}
		}

		cols = append(cols, sub)
	}

	var out *d.DF
	if out, e = d.NewDF(cols...); e != nil {
		return nil, fmt.Errorf("%w: %v", d.ErrJoin, e)
	}

	klog.V(1).InfoS("joined tables", "left", left.RowCount(), "right", right.RowCount(), "joined", out.RowCount())

	return out, nil
}
