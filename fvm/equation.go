// Package fvm assembles implicit finite volume equations in LDU form and
// solves them iteratively. An Equation accumulates matrix and source
// contributions from discrete operators, then Solve overwrites the unknown
// field with the converged solution.
package fvm

import (
	"fmt"
	"math"

	"github.com/james-bowman/sparse"

	"github.com/openfvm/reactingfv/field"
	"github.com/openfvm/reactingfv/mesh"
)

type Equation struct {
	m *mesh.Mesh

	Diag   []float64 // one per cell
	Lower  []float64 // coefficient of the owner in the neighbour's row
	Upper  []float64 // coefficient of the neighbour in the owner's row
	Source []float64 // right hand side, one per cell

	Tolerance float64
	MaxIter   int
}

func New(m *mesh.Mesh) (e *Equation) {
	e = &Equation{
		m:         m,
		Diag:      make([]float64, m.NCells),
		Lower:     make([]float64, m.NInternalFaces()),
		Upper:     make([]float64, m.NInternalFaces()),
		Source:    make([]float64, m.NCells),
		Tolerance: 1e-9,
		MaxIter:   1000,
	}
	return
}

// DdtCorrection adds the correction-form unsteady term: the implicit rate of
// change minus its explicit evaluation at the current value of phi. The net
// contribution leaves phi unchanged when no other operator is added.
func (e *Equation) DdtCorrection(rho *field.Scalar, phi []float64, dt float64) *Equation {
	for c := 0; c < e.m.NCells; c++ {
		coeff := rho.Cells[c] * e.m.Vol[c] / dt
		e.Diag[c] += coeff
		e.Source[c] += coeff * phi[c]
	}
	return e
}

// SubLaplacian subtracts an implicit laplacian(gamma, phi) from the left
// hand side. Zero gradient patches contribute nothing; fixed value patches
// contribute through the owner diagonal and the source.
func (e *Equation) SubLaplacian(gamma *field.Scalar, phi *field.Scalar) *Equation {
	m := e.m
	for i, own := range m.Owner {
		nei := m.Neigh[i]
		gf := m.W[i]*gamma.Cells[own] + (1-m.W[i])*gamma.Cells[nei]
		coeff := gf * m.MagSf[i] / m.Delta[i]
		e.Lower[i] -= coeff
		e.Upper[i] -= coeff
		e.Diag[own] += coeff
		e.Diag[nei] += coeff
	}
	for _, p := range phi.Patches {
		if p.Kind != field.FixedValue {
			continue
		}
		for i, f := range p.Faces {
			coeff := gamma.BFaces[f] * m.BMagSf[f] / m.BDelta[f]
			e.Diag[p.Owners[i]] += coeff
			e.Source[p.Owners[i]] += coeff * p.Value
		}
	}
	return e
}

// AddSu adds an explicit volumetric source (per unit volume).
func (e *Equation) AddSu(cells []float64) *Equation {
	for c, v := range cells {
		e.Source[c] += v * e.m.Vol[c]
	}
	return e
}

// SubSu subtracts an explicit volumetric source.
func (e *Equation) SubSu(cells []float64) *Equation {
	for c, v := range cells {
		e.Source[c] -= v * e.m.Vol[c]
	}
	return e
}

// Solve runs Gauss-Seidel sweeps on the assembled system until the scaled
// residual drops below Tolerance, overwriting phi's cells with the solution
// and re-evaluating its boundary values. A solve that fails to converge is
// reported, never masked.
func (e *Equation) Solve(phi *field.Scalar) (iters int, err error) {
	var (
		m = e.m
		n = m.NCells
		x = phi.Cells
	)
	dok := sparse.NewDOK(n, n)
	for c := 0; c < n; c++ {
		dok.Set(c, c, e.Diag[c])
	}
	for i, own := range m.Owner {
		nei := m.Neigh[i]
		if e.Upper[i] != 0 {
			dok.Set(own, nei, e.Upper[i])
		}
		if e.Lower[i] != 0 {
			dok.Set(nei, own, e.Lower[i])
		}
	}
	var (
		csr    = dok.ToCSR()
		raw    = csr.RawMatrix()
		indptr = raw.Indptr
		ind    = raw.Ind
		data   = raw.Data
	)
	bNorm := 0.0
	for c := 0; c < n; c++ {
		bNorm += math.Abs(e.Source[c])
	}
	bNorm += 1e-300

	for iters = 0; iters < e.MaxIter; iters++ {
		res := 0.0
		for c := 0; c < n; c++ {
			sum := e.Source[c]
			var diag float64
			for k := indptr[c]; k < indptr[c+1]; k++ {
				j := ind[k]
				if j == c {
					diag = data[k]
					continue
				}
				sum -= data[k] * x[j]
			}
			res += math.Abs(sum - diag*x[c])
			x[c] = sum / diag
		}
		if res/bNorm < e.Tolerance {
			phi.CorrectBoundaryConditions()
			return iters + 1, nil
		}
	}
	return iters, fmt.Errorf("%s: solve not converged after %d iterations", phi.Name, e.MaxIter)
}
