/*
 * defects.go, part of godefect.
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

package defect

import (
	"fmt"
	"log"
)

//Options selects which defect to carve into a crystal. Cells holds the
//number of unit cells along x and y, MolsPerCell the number of molecules in
//each unit cell. Direction is "H" for a horizontal defect or "V" for a
//vertical one; Layers (1 or 2) only applies to vertical defects.
type Options struct {
	Cells       [2]int
	MolsPerCell int
	Direction   string
	Remove      int
	Layers      int
}

//Create carves the defect described by opts into snap and returns the
//resulting snapshot. snap is not modified.
func Create(snap *Snapshot, opts Options) (*Snapshot, error) {
	switch opts.Direction {
	case "H":
		return RemoveHorizontal(snap, opts.Remove, opts.Cells, opts.MolsPerCell)
	case "V":
		switch opts.Layers {
		case 1:
			return RemoveVertical(snap, opts.Remove, opts.Cells, opts.MolsPerCell)
		case 2:
			return RemoveVerticalCell(snap, opts.Remove, opts.Cells, opts.MolsPerCell)
		default:
			return nil, fmt.Errorf("godefect: vertical defects support 1 or 2 layers, not %d", opts.Layers)
		}
	}
	return nil, fmt.Errorf("godefect: unknown defect direction %q", opts.Direction)
}

//RemoveMolecule returns a new snapshot with every particle of the molecule
//with body index removed. Body indexes above index shift down by one so they
//stay contiguous, which means molecule indexes change with every call.
func RemoveMolecule(snap *Snapshot, index int) (*Snapshot, error) {
	n := snap.Len()
	mask := make([]bool, n)
	removed := 0
	for i, b := range snap.Body {
		mask[i] = b != index
		if b == index {
			removed++
		}
	}
	if removed == 0 {
		return nil, fmt.Errorf("godefect: index %d does not match a molecule in the snapshot", index)
	}
	N := snap.keep(mask)
	for i, b := range N.Body {
		if b > index {
			N.Body[i] = b - 1
		}
	}
	return N, nil
}

//CentralMolecule returns the index of the molecule closest to the center of
//the configuration. It uses the crystal lattice dimensions to find the unit
//cell halfway along each axis, then multiplies by the number of molecules in
//each unit cell.
func CentralMolecule(cells [2]int, molsPerCell int) int {
	x, y := cells[0], cells[1]
	return (x/2*y + y/2) * molsPerCell
}

//RemoveVertical removes nmols molecules along a vertical line centered on
//the middle of the configuration. More important than removing the exact
//number of molecules, or removing them from the exact center, is consistency:
//the same layer of the crystal lattice is removed regardless of how many
//molecules go.
func RemoveVertical(snap *Snapshot, nmols int, cells [2]int, molsPerCell int) (*Snapshot, error) {
	if nmols < 0 {
		return nil, fmt.Errorf("godefect: can't remove a negative number of molecules")
	}
	if nmols == 0 {
		return snap, nil
	}
	center := CentralMolecule(cells, molsPerCell)
	var err error
	//Molecule indexes shift with every removal, so removing at successive
	//indexes takes every second molecule of the original numbering, which
	//is exactly one layer of the lattice.
	for index := center - nmols; index < center; index++ {
		snap, err = RemoveMolecule(snap, index)
		if err != nil {
			return nil, err
		}
	}
	return snap, nil
}

//RemoveHorizontal removes nmols molecules along a horizontal line centered
//on the middle of the configuration. The minimum number of molecules removed
//is 4, with larger removals being multiples of 4, so that the carved line
//stays centered in the simulation cell.
func RemoveHorizontal(snap *Snapshot, nmols int, cells [2]int, molsPerCell int) (*Snapshot, error) {
	if nmols < 0 {
		return nil, fmt.Errorf("godefect: can't remove a negative number of molecules")
	}
	if nmols == 0 {
		return snap, nil
	}
	center := CentralMolecule(cells, molsPerCell)
	y := cells[1]
	extent := nmols / 4 * 2
	if extent < 2 {
		extent = 2
	}
	counter := 0
	var err error
	count := 0
	for column := -extent; column < extent; column += 2 {
		//Adjust center by column, then by the number already removed.
		index := center + column*y - count*2
		snap, err = RemoveMolecule(snap, index)
		if err != nil {
			return nil, err
		}
		snap, err = RemoveMolecule(snap, index+2)
		if err != nil {
			return nil, err
		}
		counter += 2
		count++
	}
	log.Printf("godefect: molecules removed: %d", counter)
	return snap, nil
}

//RemoveVerticalCell removes ncells whole unit cells in the vertical
//direction. Unlike RemoveVertical, both molecules of each unit cell go, so
//the remaining layers can come together to form a proper crystal structure.
func RemoveVerticalCell(snap *Snapshot, ncells int, cells [2]int, molsPerCell int) (*Snapshot, error) {
	if ncells < 0 {
		return nil, fmt.Errorf("godefect: can't remove a negative number of cells")
	}
	if ncells == 0 {
		return snap, nil
	}
	center := CentralMolecule(cells, molsPerCell)
	index := center - ncells/2*2
	counter := 0
	var err error
	for i := 0; i < ncells; i++ {
		if i == 0 {
			snap, err = RemoveMolecule(snap, index-2)
		} else {
			snap, err = RemoveMolecule(snap, index-1)
		}
		if err != nil {
			return nil, err
		}
		snap, err = RemoveMolecule(snap, index)
		if err != nil {
			return nil, err
		}
		counter += 2
	}
	log.Printf("godefect: molecules removed: %d", counter)
	return snap, nil
}
