// Package thermo provides the equation of state closure: given density,
// internal energy and species composition it supplies pressure, temperature,
// compressibility and transport coefficients.
package thermo

import (
	"fmt"

	"github.com/openfvm/reactingfv/field"
	"github.com/openfvm/reactingfv/mesh"
)

// RUniversal is the universal gas constant in J/(kmol K).
const RUniversal = 8314.46261815324

type SpeciesSpec struct {
	Name string
	W    float64 // molar mass, kg/kmol
	Cp   float64 // constant pressure specific heat, J/(kg K)
	Hf   float64 // heat of formation, J/kg
}

type Config struct {
	Species []SpeciesSpec
	// Sutherland viscosity coefficients and Prandtl number, mixture wide
	As, Ts float64
	Pr     float64
}

// Model is the closure contract consumed by the integration system. The
// owned fields (rho, T, e, Y) are long-lived shared references; computed
// quantities (psi, cp, cv, mu, alpha) are built fresh on request.
type Model interface {
	Rho() *field.Scalar
	T() *field.Scalar
	E() *field.Scalar
	Y() []*field.Scalar
	Species() []string
	ActiveSpecies(i int) bool

	// Correct recomputes temperature from density, internal energy and
	// composition, on cells and boundary faces.
	Correct()

	Psi() *field.Scalar
	Cp() *field.Scalar
	Cv() *field.Scalar
	Mu() *field.Scalar
	Alpha() *field.Scalar

	// Validate aborts when the model cannot supply the energy variable the
	// caller integrates.
	Validate(app, energy string)
}

type constructor func(m *mesh.Mesh, cfg Config) Model

var models = map[string]constructor{
	"perfectGas": newPerfectGas,
}

func New(tag string, m *mesh.Mesh, cfg Config) Model {
	ctor, ok := models[tag]
	if !ok {
		panic(fmt.Errorf("unknown thermo model %s", tag))
	}
	return ctor(m, cfg)
}

// SpeciesIndex resolves a species name against a model's table; a missing
// name is a configuration error.
func SpeciesIndex(th Model, name string) int {
	for i, s := range th.Species() {
		if s == name {
			return i
		}
	}
	panic(fmt.Errorf("species %s not in thermo table %v", name, th.Species()))
}
