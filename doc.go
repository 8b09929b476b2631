/*
 * doc.go, part of godefect.
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

//Package defect provides in-memory particle snapshots and functions to carve
//line and edge defects into equilibrated molecular crystals, by removing
//whole molecules from a configuration. The simulations themselves are run by
//an external molecular-dynamics engine; this library only prepares the
//configurations the engine consumes and analyses the ones it produces.
//
//Subpackages handle the declarative experiment format (experi), trajectory
//I/O (traj/gsd) and figure generation (figures).
package defect
