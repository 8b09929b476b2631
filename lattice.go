/*
 * lattice.go, part of godefect.
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

import "fmt"

//Lattice builds an ideal rectangular crystal with cells[0] x cells[1] unit
//cells, molsPerCell molecules per unit cell and lattice constant a. Each
//molecule is a single particle of type "A" and unit mass; molecules within a
//unit cell are staggered by half a lattice constant. Molecule indexes follow
//the column-major convention CentralMolecule expects: the molecule k of cell
//(i, j) has index (i*cells[1]+j)*molsPerCell + k.
//
//The result is mainly useful as a starting configuration and as a test
//fixture; a real crystal comes equilibrated out of the simulation engine.
func Lattice(cells [2]int, molsPerCell int, a float64) (*Snapshot, error) {
	x, y := cells[0], cells[1]
	if x <= 0 || y <= 0 || molsPerCell <= 0 {
		return nil, fmt.Errorf("godefect: lattice dimensions must be positive, got %dx%d cells, %d molecules", x, y, molsPerCell)
	}
	n := x * y * molsPerCell
	S := NewSnapshot(n, []string{"A"})
	S.Box = [9]float64{float64(x) * a, 0, 0, 0, float64(y) * a, 0, 0, 0, 1}
	for i := 0; i < x; i++ {
		for j := 0; j < y; j++ {
			for k := 0; k < molsPerCell; k++ {
				mol := (i*y+j)*molsPerCell + k
				off := float64(k) * a / float64(molsPerCell)
				S.Pos.SetRow(mol, []float64{float64(i)*a + off, float64(j)*a + off, 0})
				S.Body[mol] = mol
			}
		}
	}
	return S, nil
}
