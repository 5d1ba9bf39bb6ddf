package system

import "github.com/openfvm/reactingfv/field"

// Solve performs the explicit flux-divergence sub-step: snapshot and blend
// the old state, form the flux and gravity deltas, blend them, and update
// the conserved fields. The sub-stage index is the current ledger length.
func (s *ReactingSystem) Solve(dt float64) {
	var (
		stage = len(s.rhoOldList)
		aw    = s.sch.OldCoeffs(stage)
		bw    = s.sch.DeltaCoeffs(stage)
	)

	rhoOld := s.rho.Copy()
	rhoUOld := s.rhoU.Copy()
	rhoEOld := s.rhoE.Copy()
	storeAndBlend(rhoOld, &s.rhoOldList, aw)
	storeAndBlend(rhoUOld, &s.rhoUOldList, aw)
	storeAndBlend(rhoEOld, &s.rhoEOldList, aw)

	deltaRho := s.m.NewCellScalar("deltaRho")
	copy(deltaRho.Cells, s.m.Div(s.rhoPhi))

	deltaRhoU := s.m.NewCellVector("deltaRhoU")
	divRhoU := s.m.DivVector(s.rhoUPhi)
	for c := range deltaRhoU.Cells {
		deltaRhoU.Cells[c] = divRhoU[c].Sub(s.g.Scale(s.rho.Cells[c]))
	}

	deltaRhoE := s.m.NewCellScalar("deltaRhoE")
	divRhoE := s.m.Div(s.rhoEPhi)
	for c := range deltaRhoE.Cells {
		deltaRhoE.Cells[c] = divRhoE[c] - s.rhoU.Cells[c].Dot(s.g)
	}

	storeAndBlend(deltaRho, &s.deltaRhoList, bw)
	storeAndBlend(deltaRhoU, &s.deltaRhoUList, bw)
	storeAndBlend(deltaRhoE, &s.deltaRhoEList, bw)

	for c := range s.rho.Cells {
		s.rho.Cells[c] = rhoOld.Cells[c] - dt*deltaRho.Cells[c]
	}
	// density boundary conditions refresh before the species update, which
	// divides by the new density
	s.rho.CorrectBoundaryConditions()

	// momentum only along solved mesh directions
	sd := s.m.SolutionD()
	mask := field.Vec3{(sd[0] + 1) / 2, (sd[1] + 1) / 2, (sd[2] + 1) / 2}
	for c := range s.rhoU.Cells {
		s.rhoU.Cells[c] = rhoUOld.Cells[c].Sub(deltaRhoU.Cells[c].Scale(dt)).CmptMultiply(mask)
	}
	for c := range s.rhoE.Cells {
		s.rhoE.Cells[c] = rhoEOld.Cells[c] - dt*deltaRhoE.Cells[c]
	}

	if s.reaction != nil {
		s.solveSpecies(dt, aw, bw, rhoOld)
	}
}

// solveSpecies applies the same store-old/delta/update discipline to every
// non-inert active species. The inert fraction is recomputed as the residual
// after each species so the fractions sum to one at every point of the loop.
func (s *ReactingSystem) solveSpecies(dt float64, aw, bw []float64, rhoOld *field.Scalar) {
	var (
		ys    = s.thermo.Y()
		yt    = s.m.NewCellScalar("Yt")
		inert = ys[s.inertIndex]
	)
	for i, yi := range ys {
		if i != s.inertIndex && s.thermo.ActiveSpecies(i) {
			yOld := yi.Copy()
			storeAndBlend(yOld, &s.ysOldLists[i], aw)

			faceY := s.flux.Interpolate(yi, "Yi")
			fluxY := s.m.NewFaceScalar("rhoPhiY")
			for f := range fluxY.Internal {
				fluxY.Internal[f] = faceY.Internal[f] * s.rhoPhi.Internal[f]
			}
			for f := range fluxY.Boundary {
				fluxY.Boundary[f] = faceY.Boundary[f] * s.rhoPhi.Boundary[f]
			}
			deltaRhoY := s.m.NewCellScalar("deltaRhoY" + yi.Name)
			copy(deltaRhoY.Cells, s.m.Div(fluxY))
			storeAndBlend(deltaRhoY, &s.deltaRhoYs[i], bw)

			for c := range yi.Cells {
				yi.Cells[c] = (yOld.Cells[c]*rhoOld.Cells[c] - dt*deltaRhoY.Cells[c]) / s.rho.Cells[c]
			}
			yi.CorrectBoundaryConditions()
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
	}
}
