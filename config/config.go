// Package config holds the YAML input parameters for a run.
package config

import (
	"fmt"

	"github.com/ghodss/yaml"
)

type SpeciesParameters struct {
	Name string  `yaml:"Name"`
	W    float64 `yaml:"W"`  // molar mass, kg/kmol
	Cp   float64 `yaml:"Cp"` // J/(kg K)
	Hf   float64 `yaml:"Hf"` // J/kg
}

// Parameters obtained from the YAML input file
type Parameters struct {
	Title     string  `yaml:"Title"`
	DeltaT    float64 `yaml:"DeltaT"`
	FinalTime float64 `yaml:"FinalTime"`
	MaxSteps  int     `yaml:"MaxSteps"`

	Integrator string `yaml:"Integrator"` // Euler, RK2SSP, RK3SSP
	FluxScheme string `yaml:"FluxScheme"` // rusanov, hllc
	Thermo     string `yaml:"Thermo"`     // perfectGas
	Turbulence string `yaml:"Turbulence"` // none, smagorinsky
	Combustion string `yaml:"Combustion"` // none, arrhenius
	Radiation  string `yaml:"Radiation"`  // absent, none or grayLoss

	Gravity [3]float64 `yaml:"Gravity"`

	Species     []SpeciesParameters `yaml:"Species"`
	InertSpecie string              `yaml:"InertSpecie"`
	InitialY    map[string]float64  `yaml:"InitialY"`

	// Sutherland viscosity and Prandtl numbers
	As  float64 `yaml:"As"`
	Ts  float64 `yaml:"Ts"`
	Pr  float64 `yaml:"Pr"`
	Cs  float64 `yaml:"Cs"`
	Prt float64 `yaml:"Prt"`

	// single step reaction
	Fuel           string  `yaml:"Fuel"`
	Oxidiser       string  `yaml:"Oxidiser"`
	Product        string  `yaml:"Product"`
	PreExponential float64 `yaml:"PreExponential"`
	Ta             float64 `yaml:"Ta"`
	StoichRatio    float64 `yaml:"StoichRatio"`
	HeatOfReaction float64 `yaml:"HeatOfReaction"`

	// radiation
	Absorptivity float64 `yaml:"Absorptivity"`
	TAmbient     float64 `yaml:"TAmbient"`

	// shock tube case
	NCells int     `yaml:"NCells"`
	Length float64 `yaml:"Length"`
	PLeft  float64 `yaml:"PLeft"`
	PRight float64 `yaml:"PRight"`
	TLeft  float64 `yaml:"TLeft"`
	TRight float64 `yaml:"TRight"`

	SnapshotDB    string `yaml:"SnapshotDB"`
	SnapshotEvery int    `yaml:"SnapshotEvery"`
}

func (p *Parameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, p)
}

func (p *Parameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", p.Title)
	fmt.Printf("%8.5g\t\t= DeltaT\n", p.DeltaT)
	fmt.Printf("%8.5f\t\t= FinalTime\n", p.FinalTime)
	fmt.Printf("[%s]\t\t= Integrator\n", p.Integrator)
	fmt.Printf("[%s]\t\t= Flux Scheme\n", p.FluxScheme)
	fmt.Printf("[%s]\t= Turbulence\n", p.Turbulence)
	fmt.Printf("[%s]\t= Combustion\n", p.Combustion)
	fmt.Printf("[%d]\t\t\t= Cells\n", p.NCells)
	for _, s := range p.Species {
		fmt.Printf("Species[%s] = W %g Cp %g Hf %g\n", s.Name, s.W, s.Cp, s.Hf)
	}
}
