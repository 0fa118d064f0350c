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
	"sort"

	"github.com/ghodss/yaml"

	"github.com/notargets/sbpwave/sbp"
)

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title      string            `yaml:"Title"`
	CFL        float64           `yaml:"CFL"`
	FinalTime  float64           `yaml:"FinalTime"`
	Order      int               `yaml:"Order"`
	N          int               `yaml:"N"`
	NY         int               `yaml:"NY"`
	XMin       float64           `yaml:"XMin"`
	XMax       float64           `yaml:"XMax"`
	YMin       float64           `yaml:"YMin"`
	YMax       float64           `yaml:"YMax"`
	InitType   string            `yaml:"InitType"`
	Adaptive   bool              `yaml:"Adaptive"`
	BCs        map[string]string `yaml:"BCs"` // Key is the edge name: left, right, bottom, top
}

func (ip *InputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// BC resolves the BC kind for an edge, defaulting to HomogeneousNeumann when
// the edge is absent from the input file.
func (ip *InputParameters) BC(edge string) (bc sbp.BCKind, err error) {
	name, ok := ip.BCs[edge]
	if !ok {
		bc = sbp.HomogeneousNeumann
		return
	}
	return sbp.ParseBCKind(name)
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%8.5f\t\t= CFL\n", ip.CFL)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	fmt.Printf("[%d]\t\t\t\t= Order\n", ip.Order)
	fmt.Printf("[%d]\t\t\t= N\n", ip.N)
	keys := make([]string, len(ip.BCs))
	i := 0
	for k := range ip.BCs {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("BCs[%s] = %v\n", key, ip.BCs[key])
	}
}
