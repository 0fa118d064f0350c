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
	"time"

	"github.com/spf13/cobra"

	"github.com/notargets/sbpwave/model_problems/Wave1D"
	"github.com/notargets/sbpwave/sbp"
)

// OneDCmd represents the 1D command
var OneDCmd = &cobra.Command{
	Use:   "1D",
	Short: "One dimensional wave equation solution",
	Long: `
Solves the 1D scalar wave equation with SBP finite difference operators and
per edge boundary condition kinds,

sbpwave 1D `,
	Run: func(cmd *cobra.Command, args []string) {
		m1d := &Model1D{}
		fmt.Println("1D called")
		m1d.N, _ = cmd.Flags().GetInt("n")
		m1d.Order, _ = cmd.Flags().GetInt("order")
		m1d.CFL, _ = cmd.Flags().GetFloat64("CFL")
		m1d.FinalTime, _ = cmd.Flags().GetFloat64("finalTime")
		m1d.XMin, _ = cmd.Flags().GetFloat64("xMin")
		m1d.XMax, _ = cmd.Flags().GetFloat64("xMax")
		m1d.BCLeft, _ = cmd.Flags().GetString("bcLeft")
		m1d.BCRight, _ = cmd.Flags().GetString("bcRight")
		m1d.InitType, _ = cmd.Flags().GetString("initType")
		m1d.Adaptive, _ = cmd.Flags().GetBool("adaptive")
		m1d.Graph, _ = cmd.Flags().GetBool("graph")
		delay, _ := cmd.Flags().GetInt("delay")
		m1d.Delay = time.Duration(delay)
		m1d.ParamFile, _ = cmd.Flags().GetString("input")
		if err := Run1D(m1d); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(OneDCmd)
	OneDCmd.Flags().IntP("n", "n", 201, "number of grid nodes")
	OneDCmd.Flags().IntP("order", "o", 4, "interior accuracy order: 2, 4 or 6")
	OneDCmd.Flags().IntP("delay", "d", 0, "milliseconds of delay for plotting")
	OneDCmd.Flags().Float64("CFL", 0.25, "CFL - increase for speedup, decrease for stability")
	OneDCmd.Flags().Float64("finalTime", 8, "FinalTime - the target end time for the sim")
	OneDCmd.Flags().Float64("xMin", -1, "left domain bound")
	OneDCmd.Flags().Float64("xMax", 1, "right domain bound")
	OneDCmd.Flags().String("bcLeft", "neumann", "left boundary kind: neumann, dirichlet or absorbing")
	OneDCmd.Flags().String("bcRight", "dirichlet", "right boundary kind: neumann, dirichlet or absorbing")
	OneDCmd.Flags().String("initType", "gauss", "initial condition: gauss or sin")
	OneDCmd.Flags().Bool("adaptive", false, "use the adaptive RKF45 integrator instead of fixed-step Verlet")
	OneDCmd.Flags().BoolP("graph", "g", false, "display a graph while computing solution")
	OneDCmd.Flags().StringP("input", "i", "", "YAML input file overriding the flags")
}

type Model1D struct {
	N, Order        int
	Delay           time.Duration
	CFL, FinalTime  float64
	XMin, XMax      float64
	BCLeft, BCRight string
	InitType        string
	Adaptive, Graph bool
	ParamFile       string
}

func Run1D(m1d *Model1D) (err error) {
	if m1d.ParamFile != "" {
		var data []byte
		if data, err = ioutil.ReadFile(m1d.ParamFile); err != nil {
			return fmt.Errorf("setup failed: unable to read input file: %w", err)
		}
		ip := &InputParameters{}
		if err = ip.Parse(data); err != nil {
			return fmt.Errorf("setup failed: unable to parse input file: %w", err)
		}
		ip.Print()
		applyInput1D(m1d, ip)
	}
	left, err := sbp.ParseBCKind(m1d.BCLeft)
	if err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}
	right, err := sbp.ParseBCKind(m1d.BCRight)
	if err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}
	init, err := Wave1D.ParseInitType(m1d.InitType)
	if err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}
	c, err := Wave1D.NewWave1D(m1d.CFL, m1d.FinalTime, m1d.N, m1d.Order,
		m1d.XMin, m1d.XMax, left, right, init)
	if err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}
	c.Adaptive = m1d.Adaptive
	c.Run(m1d.Graph, m1d.Delay*time.Millisecond)
	return
}

func applyInput1D(m1d *Model1D, ip *InputParameters) {
	if ip.N != 0 {
		m1d.N = ip.N
	}
	if ip.Order != 0 {
		m1d.Order = ip.Order
	}
	if ip.CFL != 0 {
		m1d.CFL = ip.CFL
	}
	if ip.FinalTime != 0 {
		m1d.FinalTime = ip.FinalTime
	}
	if ip.XMax != ip.XMin {
		m1d.XMin, m1d.XMax = ip.XMin, ip.XMax
	}
	if name, ok := ip.BCs["left"]; ok {
		m1d.BCLeft = name
	}
	if name, ok := ip.BCs["right"]; ok {
		m1d.BCRight = name
	}
	if ip.InitType != "" {
		m1d.InitType = ip.InitType
	}
	m1d.Adaptive = m1d.Adaptive || ip.Adaptive
}
