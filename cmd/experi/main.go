/*
 * main.go, part of godefect.
 *
 * Copyright 2020 Malcolm Fraser <mfraser{at}physDOTusydDOTeduDOTau>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Command experi previews the expansion of an experiment specification. It
//prints every expanded command in the deterministic order the external
//runner would consider them, without executing anything:
//
//	experi experiment.yml
//	experi --list-runs experiment.yml
//	experi --verbose experiment.yml
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/mfraser/godefect/experi"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "experi: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	listRuns := flag.Bool("list-runs", false, "print the variable assignment of each run instead of the commands")
	verbose := flag.Bool("verbose", false, "print the requires/creates paths of each command")
	flag.Parse()

	if flag.NArg() != 1 {
		return fmt.Errorf("usage: experi [flags] <experiment.yml>")
	}
	spec, err := experi.ReadFile(flag.Arg(0))
	if err != nil {
		return err
	}
	if *listRuns {
		runs, err := spec.Runs()
		if err != nil {
			return err
		}
		for i, r := range runs {
			fmt.Printf("run %d: %s\n", i, formatRun(r))
		}
		return nil
	}
	instances, err := spec.Expand()
	if err != nil {
		return err
	}
	for _, inst := range instances {
		if *verbose {
			fmt.Printf("%s\n    requires: %s\n    creates:  %s\n", inst.Cmd, inst.Requires, inst.Creates)
		} else {
			fmt.Println(inst.Cmd)
		}
	}
	warnCollisions(instances)
	return nil
}

func formatRun(r experi.Run) string {
	names := make([]string, 0, len(r))
	for n := range r {
		names = append(names, n)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, fmt.Sprintf("%s=%s", n, r[n]))
	}
	return strings.Join(parts, " ")
}

//warnCollisions reports output paths targeted by more than one distinct
//command. Two runs writing the same file usually means the variables are
//not granular enough, and the runner would otherwise skip or clobber the
//second one silently.
func warnCollisions(instances []experi.Instance) {
	creators := make(map[string]string)
	for _, inst := range instances {
		if inst.Creates == "" {
			continue
		}
		if prev, ok := creators[inst.Creates]; ok && prev != inst.Cmd {
			fmt.Fprintf(os.Stderr, "warning: %s is created by more than one command\n", inst.Creates)
			continue
		}
		creators[inst.Creates] = inst.Cmd
	}
}
