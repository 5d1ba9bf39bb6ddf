// Package integrator drives the outer time step: it owns the multi-stage
// scheme weight tables and calls the system's extension points in scheme
// order (flux refresh, explicit sub-steps, implicit correction, ledger
// clear).
package integrator

import (
	"fmt"

	"github.com/openfvm/reactingfv/system"
)

// Scheme is a strong-stability-preserving multi-stage scheme expressed as
// per-stage blending weights: a-coefficients weight the stored old states,
// b-coefficients the stored deltas.
type Scheme struct {
	name string
	a, b [][]float64
}

var schemes = map[string]*Scheme{
	"Euler": {
		name: "Euler",
		a:    [][]float64{{1}},
		b:    [][]float64{{1}},
	},
	"RK2SSP": {
		name: "RK2SSP",
		a:    [][]float64{{1}, {0.5, 0.5}},
		b:    [][]float64{{1}, {0, 0.5}},
	},
	"RK3SSP": {
		name: "RK3SSP",
		a:    [][]float64{{1}, {0.75, 0.25}, {1.0 / 3.0, 0, 2.0 / 3.0}},
		b:    [][]float64{{1}, {0, 0.25}, {0, 0, 2.0 / 3.0}},
	},
}

func NewScheme(tag string) (s *Scheme) {
	s, ok := schemes[tag]
	if !ok {
		panic(fmt.Errorf("unknown time integration scheme %s", tag))
	}
	return
}

func (s *Scheme) Name() string { return s.name }
func (s *Scheme) NStages() int { return len(s.a) }

func (s *Scheme) OldCoeffs(stage int) []float64 {
	if stage >= len(s.a) {
		panic(fmt.Errorf("%s: stage %d beyond the %d-stage coefficient table", s.name, stage, len(s.a)))
	}
	return s.a[stage]
}

func (s *Scheme) DeltaCoeffs(stage int) []float64 {
	if stage >= len(s.b) {
		panic(fmt.Errorf("%s: stage %d beyond the %d-stage coefficient table", s.name, stage, len(s.b)))
	}
	return s.b[stage]
}

var _ system.StageScheme = (*Scheme)(nil)

// Driver advances a system to a final time with a fixed time step.
type Driver struct {
	Sys       *system.ReactingSystem
	Scheme    *Scheme
	Dt        float64
	FinalTime float64
	MaxSteps  int
	Verbose   bool

	Time  float64
	Steps int
}

// Step runs one outer time step: one flux refresh and explicit sub-step per
// stage, the implicit correction, then the ledger clear.
func (d *Driver) Step() error {
	for i := 0; i < d.Scheme.NStages(); i++ {
		d.Sys.Update()
		d.Sys.Solve(d.Dt)
	}
	if err := d.Sys.PostUpdate(d.Dt); err != nil {
		return err
	}
	d.Sys.ClearODEFields()
	d.Time += d.Dt
	d.Steps++
	return nil
}

func (d *Driver) Run() error {
	if d.Verbose {
		fmt.Printf("Solving until finaltime = %8.5f with %s, dt = %8.5g\n",
			d.FinalTime, d.Scheme.Name(), d.Dt)
		fmt.Printf("    iter    time    min_rho    max_p      max_Mach\n")
	}
	for d.Time < d.FinalTime && (d.MaxSteps == 0 || d.Steps < d.MaxSteps) {
		if err := d.Step(); err != nil {
			return err
		}
		if d.Verbose {
			d.PrintUpdate()
		}
	}
	return nil
}

// PrintUpdate writes a one line summary of the current state.
func (d *Driver) PrintUpdate() {
	var (
		rho  = d.Sys.Rho()
		p    = d.Sys.P()
		mach = d.Sys.MachNo()
	)
	minRho, maxP, maxM := rho.Cells[0], p.Cells[0], 0.0
	for c := range rho.Cells {
		if rho.Cells[c] < minRho {
			minRho = rho.Cells[c]
		}
		if p.Cells[c] > maxP {
			maxP = p.Cells[c]
		}
		if mach.Cells[c] > maxM {
			maxM = mach.Cells[c]
		}
	}
	fmt.Printf("%8d%8.5f%11.4e%11.4e%11.4e\n", d.Steps, d.Time, minRho, maxP, maxM)
}
