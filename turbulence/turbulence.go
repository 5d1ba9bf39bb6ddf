// Package turbulence provides the turbulence closure consumed by the
// integration system: effective transport coefficients, the explicit part of
// the turbulent stress divergence, and a correction step that refreshes the
// model's internal state.
package turbulence

import (
	"fmt"

	"github.com/openfvm/reactingfv/field"
	"github.com/openfvm/reactingfv/mesh"
	"github.com/openfvm/reactingfv/thermo"
)

type Model interface {
	// EffectiveViscosity is the laminar plus turbulent dynamic viscosity.
	EffectiveViscosity() *field.Scalar
	// EffectiveThermalDiffusivity is the laminar plus turbulent thermal
	// diffusivity on the energy variable.
	EffectiveThermalDiffusivity() *field.Scalar
	// MomentumStressDivergence returns the explicit remainder of the stress
	// divergence, div(muEff*dev2(grad(U)^T)); the isotropic part is handled
	// implicitly by the caller through EffectiveViscosity.
	MomentumStressDivergence(U *field.Vector) []field.Vec3
	// Correct refreshes the eddy viscosity from the current flow state.
	Correct()
}

type Config struct {
	Cs  float64 // Smagorinsky coefficient
	Prt float64 // turbulent Prandtl number
}

type constructor func(m *mesh.Mesh, rho *field.Scalar, U *field.Vector, th thermo.Model, cfg Config) Model

var models = map[string]constructor{
	"smagorinsky": newSmagorinsky,
}

// New builds the turbulence model named by tag; an empty or "none" tag
// returns nil, which the integration system treats as turbulence absent.
func New(tag string, m *mesh.Mesh, rho *field.Scalar, U *field.Vector, th thermo.Model, cfg Config) Model {
	if tag == "" || tag == "none" {
		return nil
	}
	ctor, ok := models[tag]
	if !ok {
		panic(fmt.Errorf("unknown turbulence model %s", tag))
	}
	return ctor(m, rho, U, th, cfg)
}
