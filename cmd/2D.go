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

	"github.com/notargets/sbpwave/model_problems/Wave2D"
	"github.com/notargets/sbpwave/sbp"
)

// TwoDCmd represents the 2D command
var TwoDCmd = &cobra.Command{
	Use:   "2D",
	Short: "Two dimensional wave equation solution",
	Long: `
Solves the 2D scalar wave equation on a tensor product of 1D SBP operators
with per edge boundary condition kinds,

sbpwave 2D `,
	Run: func(cmd *cobra.Command, args []string) {
		m2d := &Model2D{}
		fmt.Println("2D called")
		m2d.NX, _ = cmd.Flags().GetInt("nx")
		m2d.NY, _ = cmd.Flags().GetInt("ny")
		m2d.Order, _ = cmd.Flags().GetInt("order")
		m2d.CFL, _ = cmd.Flags().GetFloat64("CFL")
		m2d.FinalTime, _ = cmd.Flags().GetFloat64("finalTime")
		m2d.XMin, _ = cmd.Flags().GetFloat64("xMin")
		m2d.XMax, _ = cmd.Flags().GetFloat64("xMax")
		m2d.YMin, _ = cmd.Flags().GetFloat64("yMin")
		m2d.YMax, _ = cmd.Flags().GetFloat64("yMax")
		m2d.BCLeft, _ = cmd.Flags().GetString("bcLeft")
		m2d.BCRight, _ = cmd.Flags().GetString("bcRight")
		m2d.BCBottom, _ = cmd.Flags().GetString("bcBottom")
		m2d.BCTop, _ = cmd.Flags().GetString("bcTop")
		m2d.Graph, _ = cmd.Flags().GetBool("graph")
		delay, _ := cmd.Flags().GetInt("delay")
		m2d.Delay = time.Duration(delay)
		m2d.ParamFile, _ = cmd.Flags().GetString("input")
		if err := Run2D(m2d); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(TwoDCmd)
	TwoDCmd.Flags().Int("nx", 101, "number of grid nodes in x")
	TwoDCmd.Flags().Int("ny", 101, "number of grid nodes in y")
	TwoDCmd.Flags().IntP("order", "o", 4, "interior accuracy order: 2, 4 or 6")
	TwoDCmd.Flags().IntP("delay", "d", 0, "milliseconds of delay for plotting")
	TwoDCmd.Flags().Float64("CFL", 0.2, "CFL - increase for speedup, decrease for stability")
	TwoDCmd.Flags().Float64("finalTime", 4, "FinalTime - the target end time for the sim")
	TwoDCmd.Flags().Float64("xMin", -1, "left domain bound")
	TwoDCmd.Flags().Float64("xMax", 1, "right domain bound")
	TwoDCmd.Flags().Float64("yMin", -1, "bottom domain bound")
	TwoDCmd.Flags().Float64("yMax", 1, "top domain bound")
	TwoDCmd.Flags().String("bcLeft", "neumann", "left boundary kind: neumann or dirichlet")
	TwoDCmd.Flags().String("bcRight", "neumann", "right boundary kind: neumann or dirichlet")
	TwoDCmd.Flags().String("bcBottom", "neumann", "bottom boundary kind: neumann or dirichlet")
	TwoDCmd.Flags().String("bcTop", "neumann", "top boundary kind: neumann or dirichlet")
	TwoDCmd.Flags().BoolP("graph", "g", false, "display a graph while computing solution")
	TwoDCmd.Flags().StringP("input", "i", "", "YAML input file overriding the flags")
}

type Model2D struct {
	NX, NY, Order  int
	Delay          time.Duration
	CFL, FinalTime float64
	XMin, XMax     float64
	YMin, YMax     float64
	BCLeft, BCRight,
	BCBottom, BCTop string
	Graph     bool
	ParamFile string
}

func Run2D(m2d *Model2D) (err error) {
	if m2d.ParamFile != "" {
		var data []byte
		if data, err = ioutil.ReadFile(m2d.ParamFile); err != nil {
			return fmt.Errorf("setup failed: unable to read input file: %w", err)
		}
		ip := &InputParameters{}
		if err = ip.Parse(data); err != nil {
			return fmt.Errorf("setup failed: unable to parse input file: %w", err)
		}
		ip.Print()
		applyInput2D(m2d, ip)
	}
	var kinds [4]sbp.BCKind
	for i, name := range []string{m2d.BCLeft, m2d.BCRight, m2d.BCBottom, m2d.BCTop} {
		if kinds[i], err = sbp.ParseBCKind(name); err != nil {
			return fmt.Errorf("setup failed: %w", err)
		}
	}
	c, err := Wave2D.NewWave2D(m2d.CFL, m2d.FinalTime, m2d.NX, m2d.NY, m2d.Order,
		m2d.XMin, m2d.XMax, m2d.YMin, m2d.YMax,
		kinds[0], kinds[1], kinds[2], kinds[3])
	if err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}
	c.Run(m2d.Graph, m2d.Delay*time.Millisecond)
	return
}

func applyInput2D(m2d *Model2D, ip *InputParameters) {
	if ip.N != 0 {
		m2d.NX = ip.N
	}
	if ip.NY != 0 {
		m2d.NY = ip.NY
	}
	if ip.Order != 0 {
		m2d.Order = ip.Order
	}
	if ip.CFL != 0 {
		m2d.CFL = ip.CFL
	}
	if ip.FinalTime != 0 {
		m2d.FinalTime = ip.FinalTime
	}
	if ip.XMax != ip.XMin {
		m2d.XMin, m2d.XMax = ip.XMin, ip.XMax
	}
	if ip.YMax != ip.YMin {
		m2d.YMin, m2d.YMax = ip.YMin, ip.YMax
	}
	if name, ok := ip.BCs["left"]; ok {
		m2d.BCLeft = name
	}
	if name, ok := ip.BCs["right"]; ok {
		m2d.BCRight = name
	}
	if name, ok := ip.BCs["bottom"]; ok {
		m2d.BCBottom = name
	}
	if name, ok := ip.BCs["top"]; ok {
		m2d.BCTop = name
	}
}
