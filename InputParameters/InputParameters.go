package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type Parameters struct {
	Title          string     `yaml:"Title"`
	Nx             int        `yaml:"Nx"`
	Ny             int        `yaml:"Ny"`
	Nz             int        `yaml:"Nz"` // 0 selects a 2D run
	GhostCellWidth int        `yaml:"GhostCellWidth"`
	DX             [3]float64 `yaml:"DX"` // natural (x,y,z) order
	SpatialScheme  string     `yaml:"SpatialScheme"`
	TimeOrder      int        `yaml:"TimeOrder"`
	CFL            float64    `yaml:"CFL"`
	FinalTime      float64    `yaml:"FinalTime"`
	NormalVelocity float64    `yaml:"NormalVelocity"`
	CurvatureCoeff float64    `yaml:"CurvatureCoeff"`
	Advection      [3]float64 `yaml:"Advection"` // natural (x,y,z) order
	SphereRadius   float64    `yaml:"SphereRadius"`
	NarrowBand     bool       `yaml:"NarrowBand"`
	InnerBandWidth float64    `yaml:"InnerBandWidth"`
	OuterBandWidth float64    `yaml:"OuterBandWidth"`
	MarkFB         *uint8     `yaml:"MarkFB"` // highest band tier updated; omit for 1 (inner+outer)
	ParallelDegree int        `yaml:"ParallelDegree"`
	LogFrequency   int        `yaml:"LogFrequency"`
}

func (ip *Parameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *Parameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d x %d x %d]\t= Grid cells (Nz=0 is 2D)\n", ip.Nx, ip.Ny, ip.Nz)
	fmt.Printf("[%d]\t\t\t= Ghostcell width\n", ip.GhostCellWidth)
	fmt.Printf("[%s]\t\t= Spatial scheme\n", ip.SpatialScheme)
	fmt.Printf("[%d]\t\t\t= TVD Runge-Kutta order\n", ip.TimeOrder)
	fmt.Printf("%8.5f\t\t= CFL\n", ip.CFL)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	fmt.Printf("%8.5f\t\t= NormalVelocity\n", ip.NormalVelocity)
	fmt.Printf("%8.5f\t\t= CurvatureCoeff\n", ip.CurvatureCoeff)
	fmt.Printf("%v\t= Advection velocity (x,y,z)\n", ip.Advection)
	fmt.Printf("[%v]\t\t= NarrowBand\n", ip.NarrowBand)
	if ip.NarrowBand {
		fmt.Printf("%8.5f\t\t= InnerBandWidth\n", ip.InnerBandWidth)
		fmt.Printf("%8.5f\t\t= OuterBandWidth\n", ip.OuterBandWidth)
		fmt.Printf("[%d]\t\t\t= MarkFB\n", *ip.MarkFB)
	}
	fmt.Printf("[%d]\t\t\t= ParallelDegree\n", ip.ParallelDegree)
}

// Defaults fills unset values with a runnable configuration.
func (ip *Parameters) Defaults() {
	if ip.Nx == 0 {
		ip.Nx = 64
	}
	if ip.Ny == 0 {
		ip.Ny = ip.Nx
	}
	if ip.GhostCellWidth == 0 {
		ip.GhostCellWidth = 3
	}
	if ip.DX == ([3]float64{}) {
		h := 2.0 / float64(ip.Nx)
		ip.DX = [3]float64{h, h, h}
	}
	if len(ip.SpatialScheme) == 0 {
		ip.SpatialScheme = "ENO2"
	}
	if ip.TimeOrder == 0 {
		ip.TimeOrder = 2
	}
	if ip.CFL == 0 {
		ip.CFL = 0.5
	}
	if ip.SphereRadius == 0 {
		ip.SphereRadius = 0.5
	}
	if ip.NarrowBand {
		h := ip.DX[0]
		if ip.InnerBandWidth == 0 {
			ip.InnerBandWidth = 3 * h
		}
		if ip.OuterBandWidth == 0 {
			ip.OuterBandWidth = 6 * h
		}
	}
	// nil means unset; an explicit 0 restricts updates to the inner tier
	if ip.MarkFB == nil {
		outer := uint8(1)
		ip.MarkFB = &outer
	}
	if ip.ParallelDegree == 0 {
		ip.ParallelDegree = 1
	}
	if ip.LogFrequency == 0 {
		ip.LogFrequency = 10
	}
}
