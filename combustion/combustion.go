// Package combustion provides the chemistry collaborator: a correction step
// that advances the chemical state, a heat release field, and per-species
// net production rates for the species transport equations.
package combustion

import (
	"fmt"

	"github.com/openfvm/reactingfv/field"
	"github.com/openfvm/reactingfv/mesh"
	"github.com/openfvm/reactingfv/thermo"
)

type Model interface {
	// Correct advances the chemical state from the current composition,
	// density and temperature.
	Correct()
	// Qdot is the volumetric heat release rate.
	Qdot() *field.Scalar
	// R is the net production rate of species i, per unit volume.
	R(i int) *field.Scalar
}

type Config struct {
	Fuel           string
	Oxidiser       string
	Product        string
	A              float64 // pre-exponential factor
	Ta             float64 // activation temperature
	StoichRatio    float64 // kg oxidiser per kg fuel
	HeatOfReaction float64 // J per kg fuel
}

type constructor func(m *mesh.Mesh, rho *field.Scalar, th thermo.Model, cfg Config) Model

var models = map[string]constructor{
	"arrhenius": newArrhenius,
}

// New builds the combustion model named by tag; empty or "none" means
// chemistry absent and returns nil.
func New(tag string, m *mesh.Mesh, rho *field.Scalar, th thermo.Model, cfg Config) Model {
	if tag == "" || tag == "none" {
		return nil
	}
	ctor, ok := models[tag]
	if !ok {
		panic(fmt.Errorf("unknown combustion model %s", tag))
	}
	return ctor(m, rho, th, cfg)
}
