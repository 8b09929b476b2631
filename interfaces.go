/*
 * interfaces.go, part of godefect.
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

// Traj is the interface for any trajectory object a snapshot can be read
// from. The concrete implementations live under traj/.
type Traj interface {

	//Is the trajectory ready to be read?
	Readable() bool

	//Next reads the next frame of the trajectory and returns it as a
	//Snapshot, or an error implementing LastFrameError once the file
	//is exhausted.
	Next() (*Snapshot, error)

	//Returns the number of particles per frame.
	Len() int
}

// Error is the interface for errors that the packages in this library
// implement. The Decorate method allows to add and retrieve info from the
// error without changing its type or wrapping it around something else.
// Each call returns the decoration slice resulting from the current call;
// passed an empty string, it just returns the current value.
type Error interface {
	Error() string
	Decorate(string) []string
}

// TrajError is the interface for errors in trajectories.
type TrajError interface {
	error
	Critical() bool
	FileName() string
	Format() string
}

// LastFrameError has a useless method to distinguish the harmless
// end-of-trajectory condition from real errors, so it can be filtered
// in a type switch that looks for this interface.
type LastFrameError interface {
	TrajError
	NormalLastFrameTermination() //does nothing, just to separate this interface from other TrajError's
}
