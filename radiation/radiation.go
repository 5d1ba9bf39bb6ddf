// Package radiation provides the optional radiation collaborator. When no
// radiation configuration is present the caller substitutes the no-op model.
package radiation

import (
	"fmt"
	"math"

	"github.com/openfvm/reactingfv/field"
	"github.com/openfvm/reactingfv/mesh"
)

// StefanBoltzmann in W/(m2 K4).
const StefanBoltzmann = 5.670374419e-8

type Model interface {
	// Correct refreshes the radiative source from the current temperature.
	Correct()
	// Sh is the volumetric source applied to the energy equation.
	Sh() *field.Scalar
}

type Config struct {
	Absorptivity float64 // 1/m
	TAmbient     float64 // K
}

// New selects a model by tag; "none" is the substitute used when no
// radiation configuration exists.
func New(tag string, m *mesh.Mesh, T *field.Scalar, cfg Config) Model {
	switch tag {
	case "", "none":
		return &none{sh: m.NewCellScalar("radSh")}
	case "grayLoss":
		return &grayLoss{m: m, t: T, cfg: cfg, sh: m.NewCellScalar("radSh")}
	default:
		panic(fmt.Errorf("unknown radiation model %s", tag))
	}
}

type none struct {
	sh *field.Scalar
}

func (n *none) Correct()          {}
func (n *none) Sh() *field.Scalar { return n.sh }

// grayLoss is an optically thin gray emission/absorption balance against an
// ambient temperature.
type grayLoss struct {
	m   *mesh.Mesh
	t   *field.Scalar
	cfg Config
	sh  *field.Scalar
}

func (g *grayLoss) Correct() {
	t4a := math.Pow(g.cfg.TAmbient, 4)
	for c := range g.sh.Cells {
		g.sh.Cells[c] = -4 * g.cfg.Absorptivity * StefanBoltzmann *
			(math.Pow(g.t.Cells[c], 4) - t4a)
	}
	g.sh.CorrectBoundaryConditions()
}

func (g *grayLoss) Sh() *field.Scalar { return g.sh }
