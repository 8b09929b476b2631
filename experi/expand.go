/*
 * expand.go, part of godefect.
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

package experi

import "regexp"

// Run is one concrete assignment of a value to every declared variable.
type Run map[string]string

// Instance is a Job with all placeholders substituted for one Run: a
// concrete shell command plus the concrete paths it requires and creates.
// The expander never executes it; that is the external runner's job, which
// also decides to skip it when Creates already exists on disk.
type Instance struct {
	Cmd      string
	Requires string
	Creates  string
	Run      Run
}

// Runs computes the cross product of every axis of the specification: each
// independent variable contributes as many choices as it has values (a
// scalar contributes one), each zip group contributes a single axis whose
// length is its members' common sequence length. The order is deterministic,
// nested in declaration order with the first-declared axis as the outermost
// loop, so repeated invocation yields the same sequence.
func (S *Spec) Runs() ([]Run, error) {
	lengths := make([]int, len(S.axes))
	for i := range S.axes {
		n, err := S.axes[i].steps()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return []Run{}, nil //an empty sweep axis leaves nothing to run
		}
		lengths[i] = n
	}
	var runs []Run
	idx := make([]int, len(S.axes))
	for {
		r := make(Run, len(S.axes))
		for ai := range S.axes {
			ax := &S.axes[ai]
			for ni, name := range ax.names {
				r[name] = ax.seqs[ni][idx[ai]]
			}
		}
		runs = append(runs, r)
		//odometer increment, last-declared axis fastest
		k := len(idx) - 1
		for ; k >= 0; k-- {
			idx[k]++
			if idx[k] < lengths[k] {
				break
			}
			idx[k] = 0
		}
		if k < 0 {
			return runs, nil
		}
	}
}

var placeholder = regexp.MustCompile(`\{[^{}]+\}`)

// Substitute replaces every {name} placeholder in template with the value
// bound in run, verbatim: a value written 0.20 in the specification stays
// the text "0.20". A template without placeholders comes back unchanged. A
// placeholder with no binding fails with *MissingVariableError.
func Substitute(template string, run Run) (string, error) {
	var missing *MissingVariableError
	out := placeholder.ReplaceAllStringFunc(template, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := run[name]
		if !ok {
			if missing == nil {
				missing = &MissingVariableError{Name: name, Template: template}
			}
			return m
		}
		return v
	})
	if missing != nil {
		return "", missing
	}
	return out, nil
}

// ExpandJobs substitutes every job's templates for every run, jobs in
// declared order within each run. It is a pure function of its inputs: no
// file is touched and no command is executed.
func ExpandJobs(jobs []Job, runs []Run) ([]Instance, error) {
	instances := make([]Instance, 0, len(jobs)*len(runs))
	for _, run := range runs {
		for _, job := range jobs {
			inst := Instance{Run: run}
			var err error
			if inst.Cmd, err = Substitute(job.Command.Cmd, run); err != nil {
				return nil, err
			}
			if job.Command.Requires != "" {
				if inst.Requires, err = Substitute(job.Command.Requires, run); err != nil {
					return nil, err
				}
			}
			if job.Command.Creates != "" {
				if inst.Creates, err = Substitute(job.Command.Creates, run); err != nil {
					return nil, err
				}
			}
			instances = append(instances, inst)
		}
	}
	return instances, nil
}

// Expand produces the full ordered list of expanded job instances for the
// specification. Any failure aborts the whole expansion; there is no
// partial result.
func (S *Spec) Expand() ([]Instance, error) {
	runs, err := S.Runs()
	if err != nil {
		return nil, err
	}
	return ExpandJobs(S.Jobs, runs)
}
