// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yuanzhongqiao/Kratos/ana"
	"github.com/yuanzhongqiao/Kratos/ele"
	"github.com/yuanzhongqiao/Kratos/fem"
	"github.com/yuanzhongqiao/Kratos/inp"
	"github.com/yuanzhongqiao/Kratos/out"
)

// flags
var (
	cfgFile  string
	element  string
	workers  int
	logLevel string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "shells",
	Short: "Corotational shell patch test",
	Long: `Solves the patch test of corotational shell elements with the
Newton-Raphson method.

Element kinds:
  thin-tri    thin (Kirchhoff) triangle
  thick-tri   thick (Reissner-Mindlin) triangle
  thin-quad   thin (Kirchhoff) quadrilateral
  thick-quad  thick (Reissner-Mindlin) quadrilateral`,
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Solve the patch test and print results",
	RunE:  run,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available element kinds",
	Run: func(cmd *cobra.Command, args []string) {
		for _, kind := range ele.Kinds() {
			io.Pf("%v\n", kind)
		}
	},
}

var refCmd = &cobra.Command{
	Use:   "ref",
	Short: "Print the reference results and section rigidities",
	RunE: func(cmd *cobra.Command, args []string) error {
		sim, err := loadSim(cmd)
		if err != nil {
			return err
		}
		kinds := ana.PatchRefKinds()
		if cmd.Flags().Changed("element") {
			kinds = []string{sim.Patch.Element}
		}
		for _, kind := range kinds {
			ref, err := ana.GetPatchRef(kind)
			if err != nil {
				return err
			}
			io.PfYel("%s\n", kind)
			io.Pf("%v\n\n", ref)
		}
		E, nu := sim.Mat.Prms.Find("E"), sim.Mat.Prms.Find("nu")
		if E == nil || nu == nil {
			return chk.Err("material parameters E and nu are required")
		}
		var sec ana.ShellSection
		sec.Init(E.V, nu.V, sim.Mat.Thick, 5.0/6.0)
		io.Pf("%v\n", sec.String())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "configuration (.ini) file")
	rootCmd.PersistentFlags().StringVar(&element, "element", "thin-tri", "element kind")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level; e.g. debug, info, warning")
	runCmd.Flags().IntVar(&workers, "workers", 1, "number of goroutines evaluating elements")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", true, "show messages")
	rootCmd.AddCommand(runCmd, listCmd, refCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadSim reads the configuration file (if any) and applies flags
func loadSim(cmd *cobra.Command) (sim *inp.Simulation, err error) {
	sim = inp.NewSimulation()
	if cfgFile != "" {
		sim, err = inp.ReadSim(cfgFile)
		if err != nil {
			return
		}
	}
	if cmd.Flags().Changed("element") {
		sim.Patch.Element = element
	}
	if cmd.Flags().Changed("workers") {
		sim.Solver.Workers = workers
	}
	if cmd.Flags().Changed("log-level") {
		sim.Log.Level = logLevel
	}
	level, err := log.ParseLevel(sim.Log.Level)
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)
	err = sim.PostProcess()
	return
}

// run solves the patch test
func run(cmd *cobra.Command, args []string) (err error) {

	// input
	sim, err := loadSim(cmd)
	if err != nil {
		return
	}
	if verbose {
		io.PfWhite("\n%s -- %s elements\n", sim.Desc, sim.Patch.Element)
		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"configuration file", "config", cfgFile,
			"element kind", "element", sim.Patch.Element,
			"number of workers", "workers", sim.Solver.Workers,
			"log level", "log-level", sim.Log.Level,
		))
	}

	// run simulation
	analysis, err := fem.NewMain(sim, verbose)
	if err != nil {
		return
	}
	err = analysis.Run()
	if err != nil && !errors.Is(err, fem.ErrMaxIterations) {
		return
	}

	// results
	res, e := out.Collect(analysis.Model, analysis.Strategy.Sol)
	if e != nil {
		return e
	}
	io.Pf("\n%v\n", res.NodalTable(fem.DISPLACEMENT, fem.ROTATION, fem.REACTION))
	io.Pf("%v\n", res.IpTable("sxx_top", "syy_top", "sxy_top", "sxx_bot", "syy_bot", "sxy_bot", "svm"))
	if ref, e := ana.GetPatchRef(sim.Patch.Element); e == nil {
		l, e := res.Compare(ref, sim.Patch.Loaded[0], 1)
		if e != nil {
			return e
		}
		io.Pf("%v\n", l)
	}
	return
}
