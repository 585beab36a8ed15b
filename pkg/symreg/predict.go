package symreg

import "github.com/wayneeseguin/symreg/internal/data"

// Predict compiles the current tree and evaluates it row-wise against
// x, using the tree's current ParValues. This is the supplemented
// prediction entry point from the original source's predict(); it does
// not fit or mutate the tree.
func (t *Tree) Predict(x data.Columns) ([]float64, error) {
	printed := t.Pretty()
	compiled, err := t.Eval(printed, t.Variables, t.Parameters)
	if err != nil {
		return nil, err
	}

	n := x.Len()
	out := make([]float64, n)
	row := make(map[string]float64, len(t.Variables)+len(t.Parameters))
	for p, v := range t.ParValues {
		row[p] = v
	}
	for i := 0; i < n; i++ {
		for _, v := range t.Variables {
			col, ok := x.Column(v)
			if ok {
				row[v] = col[i]
			}
		}
		yhat, err := compiled.Eval(row)
		if err != nil {
			return nil, err
		}
		out[i] = yhat
	}
	return out, nil
}
