/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/openfvm/reactingfv/combustion"
	"github.com/openfvm/reactingfv/config"
	"github.com/openfvm/reactingfv/field"
	"github.com/openfvm/reactingfv/integrator"
	"github.com/openfvm/reactingfv/mesh"
	"github.com/openfvm/reactingfv/radiation"
	"github.com/openfvm/reactingfv/storage"
	"github.com/openfvm/reactingfv/system"
	"github.com/openfvm/reactingfv/thermo"
	"github.com/openfvm/reactingfv/turbulence"
)

type runFlags struct {
	InputFile string
	Profile   bool
	Verbose   bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a shock tube case from a YAML input file",
	Long:  `Run a shock tube case from a YAML input file`,
	Run: func(cmd *cobra.Command, args []string) {
		var rf runFlags
		rf.InputFile, _ = cmd.Flags().GetString("input")
		rf.Profile, _ = cmd.Flags().GetBool("profile")
		rf.Verbose, _ = cmd.Flags().GetBool("verbose")
		if rf.Profile {
			defer profile.Start(profile.CPUProfile).Stop()
		}
		if err := runCase(rf); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("input", "I", "input.yaml", "YAML input file")
	runCmd.Flags().Bool("profile", false, "write a CPU profile")
	runCmd.Flags().BoolP("verbose", "v", true, "print a status line per step")
}

func runCase(rf runFlags) error {
	data, err := os.ReadFile(expandPath(rf.InputFile))
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	var ip config.Parameters
	if err := ip.Parse(data); err != nil {
		return fmt.Errorf("parse input: %w", err)
	}
	if rf.Verbose {
		ip.Print()
	}

	m := mesh.NewLineMesh(ip.NCells, ip.Length, 1)
	th, sys := buildSystem(m, &ip)
	initializeShockTube(m, th, &ip)
	sys.Encode()

	var store *storage.FieldStore
	if ip.SnapshotDB != "" {
		if store, err = storage.Open(expandPath(ip.SnapshotDB)); err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
	}

	d := &integrator.Driver{
		Sys:       sys,
		Scheme:    integrator.NewScheme(ip.Integrator),
		Dt:        ip.DeltaT,
		FinalTime: ip.FinalTime,
		MaxSteps:  ip.MaxSteps,
		Verbose:   rf.Verbose,
	}
	if rf.Verbose {
		fmt.Printf("Solving until finaltime = %8.5f with %s, dt = %8.5g\n",
			d.FinalTime, d.Scheme.Name(), d.Dt)
		fmt.Printf("    iter    time    min_rho    max_p      max_Mach\n")
	}
	for d.Time < d.FinalTime && (d.MaxSteps == 0 || d.Steps < d.MaxSteps) {
		if err := d.Step(); err != nil {
			return err
		}
		if rf.Verbose {
			d.PrintUpdate()
		}
		if store != nil && ip.SnapshotEvery > 0 && d.Steps%ip.SnapshotEvery == 0 {
			if err := writeSnapshot(store, sys, d.Steps); err != nil {
				return err
			}
		}
	}
	return nil
}

func buildSystem(m *mesh.Mesh, ip *config.Parameters) (thermo.Model, *system.ReactingSystem) {
	specs := make([]thermo.SpeciesSpec, len(ip.Species))
	for i, s := range ip.Species {
		specs[i] = thermo.SpeciesSpec{Name: s.Name, W: s.W, Cp: s.Cp, Hf: s.Hf}
	}
	th := thermo.New(ip.Thermo, m, thermo.Config{
		Species: specs,
		As:      ip.As,
		Ts:      ip.Ts,
		Pr:      ip.Pr,
	})

	sysCfg := system.Config{
		FluxScheme:  ip.FluxScheme,
		Gravity:     field.Vec3(ip.Gravity),
		InertSpecie: ip.InertSpecie,
		Radiation:   ip.Radiation,
		RadiationModel: radiation.Config{
			Absorptivity: ip.Absorptivity,
			TAmbient:     ip.TAmbient,
		},
	}

	sys := system.New(m, th, integrator.NewScheme(ip.Integrator), sysCfg)

	sys.AttachTurbulence(turbulence.New(ip.Turbulence, m, sys.Rho(), sys.U(), th,
		turbulence.Config{Cs: ip.Cs, Prt: ip.Prt}))
	sys.AttachCombustion(combustion.New(ip.Combustion, m, sys.Rho(), th,
		combustion.Config{
			Fuel:           ip.Fuel,
			Oxidiser:       ip.Oxidiser,
			Product:        ip.Product,
			A:              ip.PreExponential,
			Ta:             ip.Ta,
			StoichRatio:    ip.StoichRatio,
			HeatOfReaction: ip.HeatOfReaction,
		}))
	return th, sys
}

// initializeShockTube sets a two-state Riemann initial condition: uniform
// composition, (PLeft, TLeft) in the left half of the tube and
// (PRight, TRight) in the right, fluid at rest.
func initializeShockTube(m *mesh.Mesh, th thermo.Model, ip *config.Parameters) {
	y := th.Y()
	for i, name := range th.Species() {
		y[i].SetAll(ip.InitialY[name])
	}
	var (
		rho = th.Rho()
		e   = th.E()
		cv  = th.Cv()
	)
	for c := range e.Cells {
		t := ip.TLeft
		if m.Centres[c][0] > 0.5*ip.Length {
			t = ip.TRight
		}
		e.Cells[c] = cv.Cells[c] * t
	}
	e.CorrectBoundaryConditions()
	th.Correct()
	psi := th.Psi()
	for c := range rho.Cells {
		p := ip.PLeft
		if m.Centres[c][0] > 0.5*ip.Length {
			p = ip.PRight
		}
		rho.Cells[c] = psi.Cells[c] * p
	}
	rho.CorrectBoundaryConditions()
}

func writeSnapshot(store *storage.FieldStore, sys *system.ReactingSystem, tindex int) error {
	if err := store.WriteScalar(tindex, sys.Rho()); err != nil {
		return err
	}
	if err := store.WriteVector(tindex, sys.U()); err != nil {
		return err
	}
	if err := store.WriteScalar(tindex, sys.P()); err != nil {
		return err
	}
	if err := store.WriteScalar(tindex, sys.T()); err != nil {
		return err
	}
	if err := store.WriteScalar(tindex, sys.MachNo()); err != nil {
		return err
	}
	return store.WriteScalar(tindex, sys.Qdot())
}
