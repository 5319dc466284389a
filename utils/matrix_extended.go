package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

type Matrix struct {
	M        *mat.Dense
	DataP    []float64
	readOnly bool
	name     string
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{
		M:     m,
		DataP: m.RawMatrix().Data,
		name:  "unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int)          { return m.M.Dims() }
func (m Matrix) At(i, j int) float64       { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix             { return m.M.T() }
func (m Matrix) RawMatrix() blas64.General { return m.M.RawMatrix() }

// Chainable methods (extended)
func (m *Matrix) SetReadOnly(name ...string) Matrix {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m Matrix) IsReadOnly() bool { return m.readOnly }

func (m Matrix) Set(i, j int, val float64) Matrix { // Changes receiver
	var (
		nr, nc = m.Dims()
	)
	i, j = lim(i, nr), lim(j, nc)
	m.checkWritable()
	m.M.Set(i, j, val)
	return m
}

func (m Matrix) SetRow(i int, data []float64) Matrix { // Changes receiver
	var (
		nr, _ = m.Dims()
	)
	i = lim(i, nr)
	m.checkWritable()
	m.M.SetRow(i, data)
	return m
}

// AssignBlock copies A into the receiver with A's (0,0) landing on (i0,j0).
func (m Matrix) AssignBlock(i0, j0 int, A Matrix) Matrix { // Changes receiver
	var (
		nr, nc   = m.Dims()
		nrA, ncA = A.Dims()
	)
	if i0+nrA > nr || j0+ncA > nc {
		panic(fmt.Errorf("block of %dx%d at (%d,%d) does not fit in %dx%d", nrA, ncA, i0, j0, nr, nc))
	}
	m.checkWritable()
	for i := 0; i < nrA; i++ {
		copy(m.DataP[(i+i0)*nc+j0:(i+i0)*nc+j0+ncA], A.DataP[i*ncA:(i+1)*ncA])
	}
	return m
}

func (m Matrix) Row(i int) Vector {
	var (
		nr, nc = m.Dims()
		vData  = make([]float64, nc)
	)
	i = lim(i, nr)
	copy(vData, m.DataP[i*nc:(i+1)*nc])
	return NewVector(nc, vData)
}

// SumRows returns one entry per row, the sum across that row's columns.
func (m Matrix) SumRows() (V Vector) {
	var (
		nr, nc = m.Dims()
		vData  = make([]float64, nr)
	)
	for i := 0; i < nr; i++ {
		var sum float64
		for _, val := range m.DataP[i*nc : (i+1)*nc] {
			sum += val
		}
		vData[i] = sum
	}
	return NewVector(nr, vData)
}

func (m Matrix) MulVec(v Vector) (R Vector) { // Does not change receiver
	var (
		nr, nc = m.Dims()
	)
	if v.Len() != nc {
		panic(fmt.Errorf("dimension mismatch: matrix has %d columns, vector has length %d", nc, v.Len()))
	}
	R = NewVector(nr)
	R.V.MulVec(m.M, v.V)
	return
}

func (m Matrix) Min() (min float64) {
	min = m.DataP[0]
	for _, val := range m.DataP {
		if val < min {
			min = val
		}
	}
	return
}

func (m Matrix) Max() (max float64) {
	max = m.DataP[0]
	for _, val := range m.DataP {
		if val > max {
			max = val
		}
	}
	return
}

// LUSolve solves m x = b with a dense LU factorization. An error is returned
// when the factorization is singular, when the condition number estimate
// exceeds condLimit, or when the solution is not finite.
func (m Matrix) LUSolve(b Vector, condLimit float64) (x Vector, cond float64, err error) {
	var (
		nr, nc = m.Dims()
		lu     mat.LU
	)
	if nr != nc {
		err = fmt.Errorf("unable to solve, matrix is %dx%d, not square", nr, nc)
		return
	}
	if b.Len() != nr {
		err = fmt.Errorf("unable to solve, rhs has length %d, want %d", b.Len(), nr)
		return
	}
	lu.Factorize(m.M)
	cond = lu.Cond()
	if math.IsInf(cond, 1) || math.IsNaN(cond) {
		err = fmt.Errorf("unable to solve, matrix is singular")
		return
	}
	if condLimit > 0 && cond > condLimit {
		err = fmt.Errorf("unable to solve, condition number %8.3e exceeds limit %8.3e", cond, condLimit)
		return
	}
	x = NewVector(nr)
	if err = lu.SolveVecTo(x.V, false, b.V); err != nil {
		err = fmt.Errorf("unable to solve: %w", err)
		return
	}
	if ind := FirstNonFinite(x.DataP); ind >= 0 {
		err = fmt.Errorf("unable to solve, non-finite solution at index %d", ind)
	}
	return
}

func (m Matrix) checkWritable() {
	if m.IsReadOnly() {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

func lim(i, imax int) int {
	if i < 0 {
		return imax + i // Support indexing from end, -1 is imax
	}
	return i
}
