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
	"io/ioutil"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/levelset/InputParameters"
	"github.com/notargets/levelset/model_problems"
)

// evolveCmd represents the evolve command
var evolveCmd = &cobra.Command{
	Use:   "evolve",
	Short: "Evolve a spherical interface under the configured velocity terms",
	Long:  `Evolve a spherical interface under the configured velocity terms`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("evolve called")
		icFile, err := cmd.Flags().GetString("inputConditionsFile")
		if err != nil {
			panic(err)
		}
		prof, _ := cmd.Flags().GetBool("profile")
		if prof {
			defer profile.Start().Stop()
		}
		ip := processEvolveInput(icFile)
		ip.Defaults()
		ip.Print()
		c, err := model_problems.NewSphereFlow(ip)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		if err = c.Run(); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func processEvolveInput(icFile string) (ip *InputParameters.Parameters) {
	var (
		err error
	)
	if len(icFile) == 0 {
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Shrinking Sphere"
Nx: 64
Ny: 64
Nz: 64
GhostCellWidth: 3
SpatialScheme: WENO5 # Can be ENO1, ENO2, ENO3, WENO5
TimeOrder: 3
CFL: 0.5
FinalTime: 0.25
NormalVelocity: -1.
SphereRadius: 0.5
NarrowBand: true
InnerBandWidth: 0.1
OuterBandWidth: 0.2
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var data []byte
	if data, err = ioutil.ReadFile(icFile); err != nil {
		panic(err)
	}
	ip = &InputParameters.Parameters{}
	if err = ip.Parse(data); err != nil {
		panic(err)
	}
	return
}

func init() {
	rootCmd.AddCommand(evolveCmd)
	evolveCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- CFL\n\t- SpatialScheme\n\t- NarrowBand")
	evolveCmd.Flags().BoolP("profile", "p", false, "generate a runtime profile of the solver")
}
