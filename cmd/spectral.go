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
	"math"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/sbpwave/fourier"
	"github.com/notargets/sbpwave/utils"
)

// SpectralCmd represents the spectral command
var SpectralCmd = &cobra.Command{
	Use:   "spectral",
	Short: "Fourier spectral operator diagnostics and benchmark",
	Long: `
Checks the periodic Fourier derivative against the analytic derivative of a
resolved mode, then times the base operator against the viscosity regularized
composition,

sbpwave spectral `,
	Run: func(cmd *cobra.Command, args []string) {
		ms := &ModelSpectral{}
		fmt.Println("spectral called")
		ms.N, _ = cmd.Flags().GetInt("n")
		ms.DerivOrder, _ = cmd.Flags().GetInt("derivOrder")
		ms.Kind, _ = cmd.Flags().GetString("viscosity")
		ms.Strength, _ = cmd.Flags().GetFloat64("strength")
		ms.SOrder, _ = cmd.Flags().GetInt("sOrder")
		ms.Iterations, _ = cmd.Flags().GetInt("iterations")
		ms.Profile, _ = cmd.Flags().GetBool("profile")
		ms.Counters, _ = cmd.Flags().GetBool("counters")
		if err := RunSpectral(ms); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(SpectralCmd)
	SpectralCmd.Flags().IntP("n", "n", 128, "number of periodic grid nodes")
	SpectralCmd.Flags().Int("derivOrder", 1, "derivative order of the base operator: 1 or 2")
	SpectralCmd.Flags().String("viscosity", "tadmor", "spectral viscosity kind: tadmor, madaytadmor, tadmorwaagan, tadmorwaagan-c or super")
	SpectralCmd.Flags().Float64("strength", 0, "viscosity strength eps, 0 selects 1/N")
	SpectralCmd.Flags().Int("sOrder", 1, "dissipation order s for the super viscosity kind")
	SpectralCmd.Flags().Int("iterations", 100000, "operator applications per timing pass")
	SpectralCmd.Flags().Bool("profile", false, "write a CPU profile of the timing passes")
	SpectralCmd.Flags().Bool("counters", false, "report hardware counters for the timing passes (linux)")
}

type ModelSpectral struct {
	N, DerivOrder int
	Kind          string
	Strength      float64
	SOrder        int
	Iterations    int
	Profile       bool
	Counters      bool
}

func RunSpectral(ms *ModelSpectral) (err error) {
	kind, err := fourier.ParseViscosityKind(ms.Kind)
	if err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}
	if ms.Iterations < 1 {
		return fmt.Errorf("setup failed: iterations must be positive, got %d", ms.Iterations)
	}
	d, err := fourier.NewDerivative(ms.N, 0, 2*math.Pi, ms.DerivOrder)
	if err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}
	v, err := fourier.NewSpectralViscosity(kind, ms.N, 0, 2*math.Pi, ms.Strength, ms.SOrder)
	if err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}
	comp, err := fourier.Compose(d, v)
	if err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}
	var (
		x  = d.Grid()
		u  = utils.NewVector(ms.N)
		du = utils.NewVector(ms.N)
	)
	// Resolved mode diagnostic: the operator must reproduce the analytic
	// derivative of sin(3x) to roundoff
	for i, xi := range x.DataP() {
		u.DataP()[i] = math.Sin(3 * xi)
	}
	d.Apply(u, du)
	var errMax float64
	for i, xi := range x.DataP() {
		var exact float64
		switch ms.DerivOrder {
		case 1:
			exact = 3 * math.Cos(3*xi)
		case 2:
			exact = -9 * math.Sin(3*xi)
		}
		errMax = math.Max(errMax, math.Abs(du.AtVec(i)-exact))
	}
	fmt.Printf("N = %d, derivOrder = %d, viscosity = %v\n", ms.N, ms.DerivOrder, kind)
	fmt.Printf("max error on sin(3x) = %8.2e\n", errMax)

	if ms.Profile {
		defer profile.Start(profile.CPUProfile).Stop()
	}
	stop := startCounters(ms.Counters)
	base := timeApplies(ms.Iterations, u, du, d.Apply)
	regularized := timeApplies(ms.Iterations, u, du, comp.Apply)
	stop()
	fmt.Printf("base operator        = %8d ns/op\n", base.Nanoseconds()/int64(ms.Iterations))
	fmt.Printf("regularized operator = %8d ns/op\n", regularized.Nanoseconds()/int64(ms.Iterations))
	fmt.Printf("overhead factor      = %8.2f\n", float64(regularized)/float64(base))
	return
}

func timeApplies(iterations int, u, du utils.Vector, apply func(u, du utils.Vector)) (elapsed time.Duration) {
	start := time.Now()
	for i := 0; i < iterations; i++ {
		apply(u, du)
	}
	return time.Since(start)
}
