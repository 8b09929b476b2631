/*
 * experi.go, part of godefect.
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

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Command holds the three templates of a pipeline stage: the shell command
// to run, the file it needs before running and the file it leaves behind.
// Requires is empty for the first stage of a pipeline.
type Command struct {
	Cmd      string `yaml:"cmd"`
	Requires string `yaml:"requires"`
	Creates  string `yaml:"creates"`
}

// Job is one stage of the experiment pipeline.
type Job struct {
	Command Command `yaml:"command"`
}

// Spec is a parsed experiment specification: the ordered job pipeline and
// the variable axes its templates range over, in declaration order.
type Spec struct {
	Jobs []Job
	axes []axis
}

//axis is one combinatorial dimension of the sweep. A plain variable is an
//axis with a single name; a zip group is an axis carrying every member name,
//all advancing on the same index. Values are kept as the scalar text from
//the document, so 0.20 substitutes as "0.20" and not some renormalization
//of it.
type axis struct {
	names []string
	seqs  [][]string
}

//steps returns the length of the axis, checking the zip invariant that all
//member sequences share it.
func (a *axis) steps() (int, error) {
	n := len(a.seqs[0])
	for i, s := range a.seqs {
		if len(s) != n {
			return 0, configErrorf("zip group members %q (%d values) and %q (%d values) must have the same length",
				a.names[0], n, a.names[i], len(s))
		}
	}
	return n, nil
}

// ReadFile parses the experiment specification in the named file.
func ReadFile(name string) (*Spec, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read parses an experiment specification from r. Structural problems are
// reported as *ConfigError.
func Read(r io.Reader) (*Spec, error) {
	S := new(Spec)
	if err := yaml.NewDecoder(r).Decode(S); err != nil {
		if _, ok := err.(*ConfigError); ok {
			return nil, err
		}
		return nil, configErrorf("malformed specification: %v", err)
	}
	return S, nil
}

// UnmarshalYAML decodes the two top-level fields of an experiment document,
// keeping the variables in declaration order. The declaration order decides
// the nesting of the expansion loops, so it has to survive parsing; that is
// the whole reason this is hand-rolled over yaml.Node instead of decoding
// into a map.
func (S *Spec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return configErrorf("expected a mapping at the top level, got %s", kindName(node.Kind))
	}
	for i := 0; i < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "jobs":
			if err := val.Decode(&S.Jobs); err != nil {
				return configErrorf("malformed jobs list: %v", err)
			}
		case "variables":
			if err := S.parseVariables(val); err != nil {
				return err
			}
		default:
			return configErrorf("unknown top-level key %q (line %d)", key.Value, key.Line)
		}
	}
	for i, j := range S.Jobs {
		if j.Command.Cmd == "" {
			return configErrorf("job %d has no cmd", i)
		}
	}
	return nil
}

func (S *Spec) parseVariables(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return configErrorf("variables must be a mapping, got %s (line %d)", kindName(node.Kind), node.Line)
	}
	for i := 0; i < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if key.Value == "zip" {
			if err := S.parseZip(val); err != nil {
				return err
			}
			continue
		}
		seq, err := scalarSeq(key.Value, val)
		if err != nil {
			return err
		}
		if err := S.addAxis(axis{names: []string{key.Value}, seqs: [][]string{seq}}); err != nil {
			return err
		}
	}
	return nil
}

//parseZip reads one zip group: a mapping of member name to sequence, all of
//which advance in lock-step. The equal-length invariant is checked at
//expansion time, in axis.steps.
func (S *Spec) parseZip(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return configErrorf("zip must be a mapping of variable to sequence, got %s (line %d)", kindName(node.Kind), node.Line)
	}
	var ax axis
	for i := 0; i < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if val.Kind != yaml.SequenceNode {
			return configErrorf("zip member %q must be a sequence (line %d)", key.Value, val.Line)
		}
		seq, err := scalarSeq(key.Value, val)
		if err != nil {
			return err
		}
		ax.names = append(ax.names, key.Value)
		ax.seqs = append(ax.seqs, seq)
	}
	if len(ax.names) == 0 {
		return configErrorf("empty zip group (line %d)", node.Line)
	}
	return S.addAxis(ax)
}

func (S *Spec) addAxis(ax axis) error {
	for _, name := range ax.names {
		for _, prev := range S.axes {
			for _, pn := range prev.names {
				if pn == name {
					return configErrorf("variable %q declared twice", name)
				}
			}
		}
	}
	S.axes = append(S.axes, ax)
	return nil
}

//scalarSeq turns a variable's value node into its sweep sequence: a scalar
//becomes a one-element sequence, a sequence of scalars is taken verbatim.
func scalarSeq(name string, node *yaml.Node) ([]string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return []string{node.Value}, nil
	case yaml.SequenceNode:
		seq := make([]string, 0, len(node.Content))
		for _, c := range node.Content {
			if c.Kind != yaml.ScalarNode {
				return nil, configErrorf("variable %q holds a nested %s, only scalars can be swept (line %d)", name, kindName(c.Kind), c.Line)
			}
			seq = append(seq, c.Value)
		}
		return seq, nil
	}
	return nil, configErrorf("variable %q must be a scalar or a sequence, got %s (line %d)", name, kindName(node.Kind), node.Line)
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown node"
}
