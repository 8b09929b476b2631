/*
 * defects_test.go, part of godefect.
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
	"testing"
)

var testCells = [2]int{6, 6}

const testMolsPerCell = 2

func testLattice(Te *testing.T) *Snapshot {
	snap, err := Lattice(testCells, testMolsPerCell, 1.0)
	if err != nil {
		Te.Fatal(err)
	}
	return snap
}

func TestLattice(Te *testing.T) {
	snap := testLattice(Te)
	if snap.Len() != 72 {
		Te.Errorf("6x6 cells with 2 molecules each should hold 72 particles, got %d", snap.Len())
	}
	if snap.NMolecules() != 72 {
		Te.Errorf("expected 72 molecules, got %d", snap.NMolecules())
	}
	if err := snap.Validate(); err != nil {
		Te.Error(err)
	}
	fmt.Println("lattice center of geometry:", snap.CenterOfGeometry())
}

func TestCentralMolecule(Te *testing.T) {
	//the unit cell halfway along each axis, times molecules per cell
	if got := CentralMolecule(testCells, testMolsPerCell); got != 42 {
		Te.Errorf("central molecule of a 6x6 lattice: got %d, want 42", got)
	}
	if got := CentralMolecule([2]int{30, 42}, 2); got != (15*42+21)*2 {
		Te.Errorf("central molecule of a 30x42 lattice: got %d", got)
	}
}

func TestRemoveMolecule(Te *testing.T) {
	snap := testLattice(Te)
	out, err := RemoveMolecule(snap, 5)
	if err != nil {
		Te.Fatal(err)
	}
	if out.NMolecules() != 71 {
		Te.Errorf("expected 71 molecules after removal, got %d", out.NMolecules())
	}
	if err := out.Validate(); err != nil {
		Te.Error("body indexes no longer contiguous:", err)
	}
	//the original must not change
	if snap.NMolecules() != 72 {
		Te.Error("removal modified its input snapshot")
	}
	if _, err := RemoveMolecule(snap, 100); err == nil {
		Te.Error("expected an error for a molecule index out of range")
	}
}

//A molecule is all particles sharing a body index, not just one particle.
func TestRemoveMoleculeRigid(Te *testing.T) {
	snap := NewSnapshot(6, []string{"A"})
	copy(snap.Body, []int{0, 0, 1, 1, 2, 2})
	snap.Inertia.SetRow(4, []float64{1, 2, 3})
	snap.AngMom.SetRow(5, []float64{0, 1, 0, 0})
	out, err := RemoveMolecule(snap, 1)
	if err != nil {
		Te.Fatal(err)
	}
	if out.Len() != 4 {
		Te.Errorf("expected 4 particles left, got %d", out.Len())
	}
	want := []int{0, 0, 1, 1}
	for i, b := range out.Body {
		if b != want[i] {
			Te.Fatalf("bodies after removal: got %v, want %v", out.Body, want)
		}
	}
	//the surviving particles keep their dynamics state
	if out.Inertia.At(2, 1) != 2 || out.AngMom.At(3, 1) != 1 {
		Te.Error("moments of inertia or angular momenta lost on removal")
	}
}

func TestRemoveVertical(Te *testing.T) {
	snap := testLattice(Te)
	for _, n := range []int{2, 4, 8} {
		out, err := RemoveVertical(snap, n, testCells, testMolsPerCell)
		if err != nil {
			Te.Fatal(err)
		}
		if got := snap.NMolecules() - out.NMolecules(); got != n {
			Te.Errorf("vertical defect of %d: removed %d molecules", n, got)
		}
		if err := out.Validate(); err != nil {
			Te.Error(err)
		}
	}
	if out, err := RemoveVertical(snap, 0, testCells, testMolsPerCell); err != nil || out.NMolecules() != 72 {
		Te.Error("removing zero molecules should be a no-op")
	}
	if _, err := RemoveVertical(snap, -1, testCells, testMolsPerCell); err == nil {
		Te.Error("expected an error for a negative removal count")
	}
}

func TestRemoveHorizontal(Te *testing.T) {
	snap := testLattice(Te)
	//the minimum number of molecules removed is 4
	for n, want := range map[int]int{1: 4, 4: 4, 8: 8} {
		out, err := RemoveHorizontal(snap, n, testCells, testMolsPerCell)
		if err != nil {
			Te.Fatal(err)
		}
		if got := snap.NMolecules() - out.NMolecules(); got != want {
			Te.Errorf("horizontal defect of %d: removed %d molecules, want %d", n, got, want)
		}
		if err := out.Validate(); err != nil {
			Te.Error(err)
		}
	}
	if _, err := RemoveHorizontal(snap, -1, testCells, testMolsPerCell); err == nil {
		Te.Error("expected an error for a negative removal count")
	}
}

func TestRemoveVerticalCell(Te *testing.T) {
	snap := testLattice(Te)
	out, err := RemoveVerticalCell(snap, 2, testCells, testMolsPerCell)
	if err != nil {
		Te.Fatal(err)
	}
	//both molecules of every removed unit cell go
	if got := snap.NMolecules() - out.NMolecules(); got != 4 {
		Te.Errorf("removing 2 unit cells took %d molecules, want 4", got)
	}
	if err := out.Validate(); err != nil {
		Te.Error(err)
	}
}

func TestCreate(Te *testing.T) {
	snap := testLattice(Te)
	opts := Options{Cells: testCells, MolsPerCell: testMolsPerCell, Direction: "V", Remove: 4, Layers: 1}
	out, err := Create(snap, opts)
	if err != nil {
		Te.Fatal(err)
	}
	if out.NMolecules() != 68 {
		Te.Errorf("expected 68 molecules, got %d", out.NMolecules())
	}
	opts.Layers = 3
	if _, err := Create(snap, opts); err == nil {
		Te.Error("vertical defects with 3 layers should be rejected")
	}
	opts.Direction = "D"
	if _, err := Create(snap, opts); err == nil {
		Te.Error("unknown direction should be rejected")
	}
}
