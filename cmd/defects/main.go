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

//Command defects carves a line defect into an equilibrated crystal
//configuration. It reads the first frame of the input trajectory, removes
//molecules according to the flags and writes the resulting configuration as
//a single-frame trajectory:
//
//	defects crystal.gsd defect.gsd --cell-dimensions 30,42 --cell-molecules 2 --direction V --remove 8
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	defect "github.com/mfraser/godefect"
	"github.com/mfraser/godefect/traj/gsd"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "defects: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cells := flag.IntSlice("cell-dimensions", nil, "number of unit cells along x and y, comma separated")
	molsPerCell := flag.Int("cell-molecules", 0, "number of molecules within each unit cell")
	direction := flag.String("direction", "", "direction of the defect, H or V")
	remove := flag.Int("remove", 0, "number of molecules to remove")
	layers := flag.Int("layers", 1, "number of layers to remove (vertical defects only)")
	flag.Parse()

	if flag.NArg() != 2 {
		return fmt.Errorf("usage: defects [flags] <infile> <outfile>")
	}
	if len(*cells) != 2 {
		return fmt.Errorf("--cell-dimensions needs exactly two values, got %d", len(*cells))
	}
	if *molsPerCell <= 0 {
		return fmt.Errorf("--cell-molecules must be positive")
	}
	infile, outfile := flag.Arg(0), flag.Arg(1)

	snap, err := gsd.ReadFirst(infile)
	if err != nil {
		return err
	}
	opts := defect.Options{
		Cells:       [2]int{(*cells)[0], (*cells)[1]},
		MolsPerCell: *molsPerCell,
		Direction:   *direction,
		Remove:      *remove,
		Layers:      *layers,
	}
	out, err := defect.Create(snap, opts)
	if err != nil {
		return err
	}
	return gsd.WriteOne(outfile, out)
}
