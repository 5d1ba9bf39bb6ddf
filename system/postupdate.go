package system

import (
	"github.com/openfvm/reactingfv/field"
	"github.com/openfvm/reactingfv/fvm"
)

// PostUpdate assembles and solves the implicit diffusion, turbulence and
// reaction corrections. Without a turbulence collaborator the system is pure
// explicit advection and this is a no-op.
func (s *ReactingSystem) PostUpdate(dt float64) error {
	if s.turb == nil {
		return nil
	}

	s.Decode()

	var (
		muEff  = s.turb.EffectiveViscosity()
		tauDiv = s.turb.MomentumStressDivergence(s.u)
		sd     = s.m.SolutionD()
	)

	// momentum: (ddt - explicit ddt) + stress divergence, solved per
	// component along solved directions
	for d := 0; d < 3; d++ {
		if sd[d] < 0 {
			continue
		}
		ud := s.u.Component(d)
		eqn := fvm.New(s.m)
		eqn.DdtCorrection(s.rho, ud.Cells, dt)
		eqn.SubLaplacian(muEff, ud)
		src := make([]float64, s.m.NCells)
		for c := range src {
			src[c] = tauDiv[c][d]
		}
		eqn.AddSu(src)
		if _, err := eqn.Solve(ud); err != nil {
			return err
		}
		s.u.SetComponent(d, ud)
	}
	s.u.CorrectBoundaryConditions()
	for c := range s.rhoU.Cells {
		s.rhoU.Cells[c] = s.u.Cells[c].Scale(s.rho.Cells[c])
	}
	for f := range s.rhoU.BFaces {
		s.rhoU.BFaces[f] = s.u.BFaces[f].Scale(s.rho.BFaces[f])
	}

	eEqn := fvm.New(s.m)
	eEqn.DdtCorrection(s.rho, s.e.Cells, dt)
	eEqn.SubLaplacian(s.turb.EffectiveThermalDiffusivity(), s.e)

	if s.reaction != nil {
		s.reaction.Correct()
		eEqn.AddSu(s.reaction.Qdot().Cells)
		copy(s.qdot.Cells, s.reaction.Qdot().Cells)
		copy(s.qdot.BFaces, s.reaction.Qdot().BFaces)

		if err := s.correctSpecies(dt, muEff); err != nil {
			return err
		}
	}

	s.rad.Correct()
	eEqn.AddSu(s.rad.Sh().Cells)

	if _, err := eEqn.Solve(s.e); err != nil {
		return err
	}
	// total energy picks up the viscous contribution through the corrected
	// velocity
	for c := range s.rhoE.Cells {
		s.rhoE.Cells[c] = s.rho.Cells[c] * (s.e.Cells[c] + 0.5*s.u.Cells[c].MagSqr())
	}
	for f := range s.rhoE.BFaces {
		s.rhoE.BFaces[f] = s.rho.BFaces[f] * (s.e.BFaces[f] + 0.5*s.u.BFaces[f].MagSqr())
	}

	s.thermo.Correct()
	s.correctPressure()

	s.turb.Correct()
	return nil
}

// correctSpecies solves the implicit species transport with turbulent
// diffusion and the chemical production rate, then restores the inert
// residual.
func (s *ReactingSystem) correctSpecies(dt float64, muEff *field.Scalar) error {
	var (
		ys    = s.thermo.Y()
		yt    = s.m.NewCellScalar("Yt")
		inert = ys[s.inertIndex]
	)
	for i, yi := range ys {
		if i == s.inertIndex || !s.thermo.ActiveSpecies(i) {
			continue
		}
		yiEqn := fvm.New(s.m)
		yiEqn.DdtCorrection(s.rho, yi.Cells, dt)
		yiEqn.SubLaplacian(muEff, yi)
		yiEqn.AddSu(s.reaction.R(i).Cells)
		if _, err := yiEqn.Solve(yi); err != nil {
			return err
		}
		yi.Max(0)
		yt.Add(yi)
	}
	for c := range inert.Cells {
		inert.Cells[c] = 1 - yt.Cells[c]
	}
	for f := range inert.BFaces {
		inert.BFaces[f] = 1 - yt.BFaces[f]
	}
	inert.Max(0)
	return nil
}
