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

/*
Package experi parses and expands declarative experiment specifications.

An experiment file describes an ordered pipeline of shell-command jobs plus
the variables their command templates range over:

	jobs:
	  - command:
	      cmd: mdrun --temperature {temperature} -o {outfile}
	      creates: "{outfile}"
	  - command:
	      cmd: analyse {outfile} -o report-{temperature}.json
	      requires: "{outfile}"
	      creates: report-{temperature}.json
	variables:
	  outfile: dump.gsd
	  temperature: [0.20, 1.30, 1.40]

A variable bound to a sequence is an independent sweep axis; a plain scalar
is an axis of size one. The reserved key "zip" introduces a group of
variables whose sequences advance in lock-step instead of being
cross-multiplied:

	variables:
	  zip:
	    temperature: [0.20, 1.30, 1.40]
	    steps: [1000, 500, 100]

Expansion is a pure transformation: the cross product of all axes gives the
Runs, and substituting each Run into each job's templates gives the concrete
Instances. Nothing here executes commands or touches files; running the
expanded jobs, skipping the ones whose output already exists, is the
business of an external runner.
*/
package experi
