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

	perf "github.com/hodgesds/perf-utils"
)

// startCounters begins hardware counter collection for the calling process
// and returns a function that stops collection and prints the counts.
// Collection requires perf_event_open access; failures are reported and
// skipped rather than aborting the benchmark.
func startCounters(enabled bool) (stop func()) {
	stop = func() {}
	if !enabled {
		return
	}
	hw, err := perf.NewHardwareProfiler(os.Getpid(), -1, perf.AllHardwareProfilers)
	if err != nil && !hw.HasProfilers() {
		fmt.Printf("hardware counters unavailable: %v\n", err)
		return
	}
	if err = hw.Start(); err != nil {
		fmt.Printf("hardware counters unavailable: %v\n", err)
		return
	}
	return func() {
		p := &perf.HardwareProfile{}
		if err := hw.Profile(p); err != nil {
			fmt.Printf("hardware counter read failed: %v\n", err)
		} else {
			if p.CPUCycles != nil {
				fmt.Printf("cpu cycles           = %8d\n", *p.CPUCycles)
			}
			if p.Instructions != nil {
				fmt.Printf("instructions         = %8d\n", *p.Instructions)
			}
			if p.CacheRefs != nil {
				fmt.Printf("cache refs           = %8d\n", *p.CacheRefs)
			}
			if p.CacheMisses != nil {
				fmt.Printf("cache misses         = %8d\n", *p.CacheMisses)
			}
		}
		_ = hw.Stop()
		_ = hw.Close()
	}
}
