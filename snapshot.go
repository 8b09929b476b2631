/*
 * snapshot.go, part of godefect.
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

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

/*Note: some functions here panic instead of returning errors. They are
 * "fundamental" functions, in the sense that if something goes wrong in them
 * the program is way-most likely wrong anyway, and should crash.*/

//Snapshot is an in-memory representation of all particles in a configuration
//at one timestep. Particles belonging to the same rigid molecule share a Body
//index. Body indexes are kept contiguous from zero, an invariant the removal
//functions in this package rely on.
type Snapshot struct {
	Box     [9]float64 //box vectors, row major, as the trajectory format stores them
	Types   []string   //particle type names, indexed by TypeID
	Pos     *mat.Dense //N x 3 positions
	Ori     *mat.Dense //N x 4 orientation quaternions
	Vel     *mat.Dense //N x 3 velocities
	AngMom  *mat.Dense //N x 4 angular momentum quaternions
	Inertia *mat.Dense //N x 3 principal moments of inertia
	Body    []int      //molecule index of each particle
	TypeID  []int
	Mass    []float64
	Image   [][3]int //periodic image flags
}

//NewSnapshot returns a Snapshot with all per-particle fields allocated for n
//particles and the given type names. Orientations are initialized to the
//identity quaternion.
func NewSnapshot(n int, types []string) *Snapshot {
	S := new(Snapshot)
	S.Types = append([]string{}, types...)
	S.Pos = mat.NewDense(n, 3, nil)
	S.Ori = mat.NewDense(n, 4, nil)
	S.Vel = mat.NewDense(n, 3, nil)
	S.AngMom = mat.NewDense(n, 4, nil)
	S.Inertia = mat.NewDense(n, 3, nil)
	S.Body = make([]int, n)
	S.TypeID = make([]int, n)
	S.Mass = make([]float64, n)
	S.Image = make([][3]int, n)
	for i := 0; i < n; i++ {
		S.Ori.Set(i, 0, 1) //identity quaternion
		S.Mass[i] = 1
	}
	return S
}

//Len returns the number of particles in the snapshot.
func (S *Snapshot) Len() int {
	if S == nil || S.Pos == nil {
		return 0
	}
	r, _ := S.Pos.Dims()
	return r
}

//NMolecules returns the number of molecules (rigid bodies) in the snapshot.
//It relies on body indexes being contiguous from zero.
func (S *Snapshot) NMolecules() int {
	max := -1
	for _, b := range S.Body {
		if b > max {
			max = b
		}
	}
	return max + 1
}

//Copy returns a deep copy of the snapshot.
func (S *Snapshot) Copy() *Snapshot {
	if S == nil {
		panic("Attempted to copy a nil snapshot")
	}
	N := new(Snapshot)
	N.Box = S.Box
	N.Types = append([]string{}, S.Types...)
	N.Pos = mat.DenseCopyOf(S.Pos)
	N.Ori = mat.DenseCopyOf(S.Ori)
	N.Vel = mat.DenseCopyOf(S.Vel)
	N.AngMom = mat.DenseCopyOf(S.AngMom)
	N.Inertia = mat.DenseCopyOf(S.Inertia)
	N.Body = append([]int{}, S.Body...)
	N.TypeID = append([]int{}, S.TypeID...)
	N.Mass = append([]float64{}, S.Mass...)
	N.Image = append([][3]int{}, S.Image...)
	return N
}

//Validate checks that every per-particle field has one entry per particle,
//that type ids point into Types and that body indexes are contiguous from
//zero. It returns an error describing the first inconsistency found.
func (S *Snapshot) Validate() error {
	n := S.Len()
	or, oc := S.Ori.Dims()
	if or != n || oc != 4 {
		return fmt.Errorf("godefect: orientations are %dx%d, want %dx4", or, oc, n)
	}
	vr, vc := S.Vel.Dims()
	if vr != n || vc != 3 {
		return fmt.Errorf("godefect: velocities are %dx%d, want %dx3", vr, vc, n)
	}
	ar, ac := S.AngMom.Dims()
	if ar != n || ac != 4 {
		return fmt.Errorf("godefect: angular momenta are %dx%d, want %dx4", ar, ac, n)
	}
	ir, ic := S.Inertia.Dims()
	if ir != n || ic != 3 {
		return fmt.Errorf("godefect: moments of inertia are %dx%d, want %dx3", ir, ic, n)
	}
	if len(S.Body) != n || len(S.TypeID) != n || len(S.Mass) != n || len(S.Image) != n {
		return fmt.Errorf("godefect: per-particle slices don't match %d particles", n)
	}
	seen := make([]bool, n)
	for i, b := range S.Body {
		if b < 0 || b >= n {
			return fmt.Errorf("godefect: particle %d has body %d out of range", i, b)
		}
		seen[b] = true
	}
	for b := 0; b < S.NMolecules(); b++ {
		if !seen[b] {
			return fmt.Errorf("godefect: body indexes not contiguous, %d missing", b)
		}
	}
	for i, t := range S.TypeID {
		if t < 0 || t >= len(S.Types) {
			return fmt.Errorf("godefect: particle %d has type id %d out of range", i, t)
		}
	}
	return nil
}

//CenterOfGeometry returns the geometric center of all particles, as x, y, z.
func (S *Snapshot) CenterOfGeometry() [3]float64 {
	var c [3]float64
	n := S.Len()
	if n == 0 {
		return c
	}
	for j := 0; j < 3; j++ {
		col := mat.Col(nil, j, S.Pos)
		c[j] = floats.Sum(col) / float64(n)
	}
	return c
}

//keep returns a new snapshot containing only the particles for which
//mask[i] is true. Body indexes are NOT touched, the caller must recompact
//them if molecules were dropped.
func (S *Snapshot) keep(mask []bool) *Snapshot {
	if len(mask) != S.Len() {
		panic("mask length does not match the number of particles")
	}
	n := 0
	for _, m := range mask {
		if m {
			n++
		}
	}
	N := NewSnapshot(n, S.Types)
	N.Box = S.Box
	k := 0
	for i, m := range mask {
		if !m {
			continue
		}
		N.Pos.SetRow(k, S.Pos.RawRowView(i))
		N.Ori.SetRow(k, S.Ori.RawRowView(i))
		N.Vel.SetRow(k, S.Vel.RawRowView(i))
		N.AngMom.SetRow(k, S.AngMom.RawRowView(i))
		N.Inertia.SetRow(k, S.Inertia.RawRowView(i))
		N.Body[k] = S.Body[i]
		N.TypeID[k] = S.TypeID[i]
		N.Mass[k] = S.Mass[i]
		N.Image[k] = S.Image[i]
		k++
	}
	return N
}
