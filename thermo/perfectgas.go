package thermo

import (
	"fmt"
	"math"

	"github.com/openfvm/reactingfv/field"
	"github.com/openfvm/reactingfv/mesh"
)

// perfectGas is a multi-species thermally perfect gas mixture with constant
// per-species cp. Mixture properties are mass-fraction weighted.
type perfectGas struct {
	m   *mesh.Mesh
	cfg Config

	rho *field.Scalar
	t   *field.Scalar
	e   *field.Scalar
	y   []*field.Scalar

	names []string
}

func newPerfectGas(m *mesh.Mesh, cfg Config) Model {
	if len(cfg.Species) == 0 {
		panic(fmt.Errorf("perfectGas: no species configured"))
	}
	g := &perfectGas{
		m:   m,
		cfg: cfg,
		rho: m.NewCellScalar("thermo:rho"),
		t:   m.NewCellScalar("T"),
		e:   m.NewCellScalar("e"),
	}
	for _, s := range cfg.Species {
		if s.W <= 0 || s.Cp <= 0 {
			panic(fmt.Errorf("perfectGas: species %s needs positive W and Cp", s.Name))
		}
		g.y = append(g.y, m.NewCellScalar(s.Name))
		g.names = append(g.names, s.Name)
	}
	return g
}

func (g *perfectGas) Rho() *field.Scalar     { return g.rho }
func (g *perfectGas) T() *field.Scalar       { return g.t }
func (g *perfectGas) E() *field.Scalar       { return g.e }
func (g *perfectGas) Y() []*field.Scalar     { return g.y }
func (g *perfectGas) Species() []string      { return g.names }
func (g *perfectGas) ActiveSpecies(int) bool { return true }

// mixture gas constant and cv at one location, from the species fractions
func (g *perfectGas) rcvAt(vals func(*field.Scalar) float64) (r, cv float64) {
	var cp float64
	for i, s := range g.cfg.Species {
		yi := vals(g.y[i])
		r += yi * RUniversal / s.W
		cp += yi * s.Cp
	}
	cv = cp - r
	return
}

func (g *perfectGas) Correct() {
	for c := range g.t.Cells {
		_, cv := g.rcvAt(func(s *field.Scalar) float64 { return s.Cells[c] })
		g.t.Cells[c] = g.e.Cells[c] / cv
	}
	for f := range g.t.BFaces {
		_, cv := g.rcvAt(func(s *field.Scalar) float64 { return s.BFaces[f] })
		g.t.BFaces[f] = g.e.BFaces[f] / cv
	}
}

// Psi is the compressibility, rho = psi*p.
func (g *perfectGas) Psi() (psi *field.Scalar) {
	psi = g.m.NewCellScalar("psi")
	for c := range psi.Cells {
		r, _ := g.rcvAt(func(s *field.Scalar) float64 { return s.Cells[c] })
		psi.Cells[c] = 1 / (r * g.t.Cells[c])
	}
	for f := range psi.BFaces {
		r, _ := g.rcvAt(func(s *field.Scalar) float64 { return s.BFaces[f] })
		psi.BFaces[f] = 1 / (r * g.t.BFaces[f])
	}
	return
}

func (g *perfectGas) Cp() (cp *field.Scalar) {
	cp = g.m.NewCellScalar("Cp")
	for c := range cp.Cells {
		for i, s := range g.cfg.Species {
			cp.Cells[c] += g.y[i].Cells[c] * s.Cp
		}
	}
	for f := range cp.BFaces {
		for i, s := range g.cfg.Species {
			cp.BFaces[f] += g.y[i].BFaces[f] * s.Cp
		}
	}
	return
}

func (g *perfectGas) Cv() (cv *field.Scalar) {
	cv = g.m.NewCellScalar("Cv")
	for c := range cv.Cells {
		_, v := g.rcvAt(func(s *field.Scalar) float64 { return s.Cells[c] })
		cv.Cells[c] = v
	}
	for f := range cv.BFaces {
		_, v := g.rcvAt(func(s *field.Scalar) float64 { return s.BFaces[f] })
		cv.BFaces[f] = v
	}
	return
}

// Mu evaluates the Sutherland law from the current temperature.
func (g *perfectGas) Mu() (mu *field.Scalar) {
	mu = g.m.NewCellScalar("mu")
	suth := func(t float64) float64 {
		return g.cfg.As * t * math.Sqrt(t) / (t + g.cfg.Ts)
	}
	for c := range mu.Cells {
		mu.Cells[c] = suth(g.t.Cells[c])
	}
	for f := range mu.BFaces {
		mu.BFaces[f] = suth(g.t.BFaces[f])
	}
	return
}

func (g *perfectGas) Alpha() (alpha *field.Scalar) {
	alpha = g.Mu()
	alpha.Name = "alpha"
	alpha.Scale(1 / g.cfg.Pr)
	return
}

func (g *perfectGas) Validate(app, energy string) {
	if energy != "e" {
		panic(fmt.Errorf("%s: thermo model carries internal energy e, caller requires %s", app, energy))
	}
}
