// Package solver wraps the dense linear-algebra solves the dynamics
// realizer needs: the KKT system coupling generalized accelerations with
// constraint multipliers, and least-norm corrections for assembly
// projection.
package solver

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrSingular indicates a solve hit a (numerically) singular matrix.
var ErrSingular = errors.New("solver: singular matrix")

// SolveKKT solves
//
//	[M G^T] [udot  ]   [f]
//	[G  0 ] [lambda] = [b]
//
// where M is n x n symmetric positive definite and G is m x n (m may be
// zero). Returns udot and lambda.
func SolveKKT(m *mat.Dense, g *mat.Dense, f, b []float64) (udot, lambda []float64, err error) {
	n, _ := m.Dims()
	nc := 0
	if g != nil {
		nc, _ = g.Dims()
	}
	k := mat.NewDense(n+nc, n+nc, nil)
	rhs := mat.NewVecDense(n+nc, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			k.Set(i, j, m.At(i, j))
		}
		rhs.SetVec(i, f[i])
	}
	for i := 0; i < nc; i++ {
		for j := 0; j < n; j++ {
			k.Set(n+i, j, g.At(i, j))
			k.Set(j, n+i, g.At(i, j))
		}
		rhs.SetVec(n+i, b[i])
	}
	var sol mat.VecDense
	if err := sol.SolveVec(k, rhs); err != nil {
		return nil, nil, ErrSingular
	}
	udot = make([]float64, n)
	lambda = make([]float64, nc)
	for i := 0; i < n; i++ {
		udot[i] = sol.AtVec(i)
	}
	for i := 0; i < nc; i++ {
		lambda[i] = sol.AtVec(n + i)
	}
	return udot, lambda, nil
}

// LeastNorm returns z = G^T (G G^T)^-1 e, the minimum-norm solution of
// G z = e. G is m x n with m <= n and full row rank.
func LeastNorm(g *mat.Dense, e []float64) ([]float64, error) {
	m, n := g.Dims()
	gram := mat.NewDense(m, m, nil)
	gram.Mul(g, g.T())
	var y mat.VecDense
	if err := y.SolveVec(gram, mat.NewVecDense(m, e)); err != nil {
		return nil, ErrSingular
	}
	var z mat.VecDense
	z.MulVec(g.T(), &y)
	out := make([]float64, n)
	for i := range out {
		out[i] = z.AtVec(i)
	}
	return out, nil
}
