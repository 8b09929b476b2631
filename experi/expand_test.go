/*
 * expand_test.go, part of godefect.
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
	"fmt"
	"strings"
	"testing"
)

func mustRead(Te *testing.T, doc string) *Spec {
	S, err := Read(strings.NewReader(doc))
	if err != nil {
		Te.Fatal(err)
	}
	return S
}

//A variable set of only scalars is a single run.
func TestScalarsSingleRun(Te *testing.T) {
	S := mustRead(Te, `
jobs:
  - command:
      cmd: echo {a} {b}
      creates: out.txt
variables:
  a: 1
  b: hello
`)
	runs, err := S.Runs()
	if err != nil {
		Te.Fatal(err)
	}
	if len(runs) != 1 {
		Te.Errorf("scalars should give one run, got %d", len(runs))
	}
	if runs[0]["a"] != "1" || runs[0]["b"] != "hello" {
		Te.Errorf("wrong bindings: %v", runs[0])
	}
}

//Independent sweeps multiply, nested in declaration order with the
//first-declared axis outermost.
func TestCrossProduct(Te *testing.T) {
	S := mustRead(Te, `
jobs:
  - command:
      cmd: echo {x} {y}
      creates: "{x}-{y}"
variables:
  x: [a, b]
  y: [1, 2, 3]
`)
	runs, err := S.Runs()
	if err != nil {
		Te.Fatal(err)
	}
	if len(runs) != 6 {
		Te.Fatalf("expected 2x3=6 runs, got %d", len(runs))
	}
	want := []string{"a1", "a2", "a3", "b1", "b2", "b3"}
	for i, r := range runs {
		if got := r["x"] + r["y"]; got != want[i] {
			Te.Errorf("run %d: got %s, want %s", i, got, want[i])
		}
	}
	//and again, to make sure the order is reproducible
	runs2, _ := S.Runs()
	for i := range runs {
		if runs[i]["x"] != runs2[i]["x"] || runs[i]["y"] != runs2[i]["y"] {
			Te.Errorf("run %d differs between invocations", i)
		}
	}
}

//Zip groups advance in lock-step: index i of every member is used together,
//never mismatched indexes.
func TestZipLockstep(Te *testing.T) {
	S := mustRead(Te, `
jobs:
  - command:
      cmd: run -t {temperature} -n {steps} {label}
      creates: "{label}"
variables:
  label: [one, two]
  zip:
    temperature: [0.20, 1.30, 1.40]
    steps: [1000, 500, 100]
`)
	runs, err := S.Runs()
	if err != nil {
		Te.Fatal(err)
	}
	if len(runs) != 6 {
		Te.Fatalf("expected 2x3=6 runs, got %d", len(runs))
	}
	pairs := map[string]string{"0.20": "1000", "1.30": "500", "1.40": "100"}
	perLabel := map[string]int{}
	for _, r := range runs {
		if pairs[r["temperature"]] != r["steps"] {
			Te.Errorf("mismatched zip indexes: temperature=%s steps=%s", r["temperature"], r["steps"])
		}
		perLabel[r["label"]]++
	}
	for label, n := range perLabel {
		if n != 3 {
			Te.Errorf("label %s: got %d runs, want 3 (one per zip step)", label, n)
		}
	}
}

func TestZipMismatch(Te *testing.T) {
	S := mustRead(Te, `
jobs:
  - command:
      cmd: echo {a}
      creates: out
variables:
  zip:
    a: [1, 2, 3]
    b: [1, 2]
`)
	_, err := S.Runs()
	if err == nil {
		Te.Fatal("expected an error for unequal zip member lengths")
	}
	if _, ok := err.(*ConfigError); !ok {
		Te.Errorf("expected *ConfigError, got %T: %v", err, err)
	}
	fmt.Println("zip mismatch reported as:", err)
}

func TestSubstitute(Te *testing.T) {
	run := Run{"temperature": "0.20", "steps": "1000"}
	got, err := Substitute("sdrun -t {temperature} -n {steps}", run)
	if err != nil {
		Te.Fatal(err)
	}
	if got != "sdrun -t 0.20 -n 1000" {
		Te.Errorf("values must substitute verbatim, got %q", got)
	}
	//no placeholders: the template comes back unchanged
	plain := "make report"
	if got, err = Substitute(plain, run); err != nil || got != plain {
		Te.Errorf("substitution on a plain string changed it: %q, %v", got, err)
	}
	//and it is idempotent on its own output
	again, err := Substitute(got, run)
	if err != nil || again != got {
		Te.Errorf("substitution is not idempotent: %q -> %q", got, again)
	}
}

func TestSubstituteMissing(Te *testing.T) {
	_, err := Substitute("echo {missing}", Run{"present": "1"})
	if err == nil {
		Te.Fatal("expected an error for an unbound placeholder")
	}
	mv, ok := err.(*MissingVariableError)
	if !ok {
		Te.Fatalf("expected *MissingVariableError, got %T: %v", err, err)
	}
	if mv.Name != "missing" {
		Te.Errorf("wrong variable reported: %q", mv.Name)
	}
}

func TestExpandMissingVariableAborts(Te *testing.T) {
	S := mustRead(Te, `
jobs:
  - command:
      cmd: echo {a}
      creates: "{a}.out"
  - command:
      cmd: echo {undeclared}
      requires: "{a}.out"
      creates: final
variables:
  a: [1, 2]
`)
	_, err := S.Expand()
	if err == nil {
		Te.Fatal("expected the whole expansion to abort")
	}
	if _, ok := err.(*MissingVariableError); !ok {
		Te.Errorf("expected *MissingVariableError, got %T: %v", err, err)
	}
}

func TestMalformed(Te *testing.T) {
	bad := []string{
		"jobs: 3",
		"nonsense: {}",
		"variables:\n  a: {nested: mapping}",
		"jobs:\n  - command:\n      creates: no-cmd-here",
		"variables:\n  a: 1\n  a: 2",
	}
	for _, doc := range bad {
		if _, err := Read(strings.NewReader(doc)); err == nil {
			Te.Errorf("document %q should not parse", doc)
		} else if _, ok := err.(*ConfigError); !ok {
			Te.Errorf("document %q: expected *ConfigError, got %T", doc, err)
		}
	}
}

//The experiment file of the defect study: 2 directions x 6 removal counts x
//3 zip steps x 1 layer = 36 runs, with 3 jobs each.
func TestExperimentFile(Te *testing.T) {
	S, err := ReadFile("../test/experiment.yml")
	if err != nil {
		Te.Fatal(err)
	}
	runs, err := S.Runs()
	if err != nil {
		Te.Fatal(err)
	}
	if len(runs) != 36 {
		Te.Fatalf("expected 36 runs, got %d", len(runs))
	}
	instances, err := S.Expand()
	if err != nil {
		Te.Fatal(err)
	}
	if len(instances) != 108 {
		Te.Fatalf("expected 108 expanded jobs, got %d", len(instances))
	}
	fmt.Println("first command of the sweep:", instances[0].Cmd)
	//the dependency chain must hold within every run: each stage requires
	//exactly the file the previous stage creates
	for i := 0; i < len(instances); i += 3 {
		if instances[i].Requires != "" {
			Te.Errorf("first job of a pipeline should require nothing, got %q", instances[i].Requires)
		}
		if instances[i+1].Requires != instances[i].Creates {
			Te.Errorf("broken chain: %q -> %q", instances[i].Creates, instances[i+1].Requires)
		}
		if instances[i+2].Requires != instances[i+1].Creates {
			Te.Errorf("broken chain: %q -> %q", instances[i+1].Creates, instances[i+2].Requires)
		}
	}
	//temperatures substitute as written in the file, not renormalized
	if !strings.Contains(instances[1].Cmd, "--temperature 0.20") {
		Te.Errorf("temperature not substituted verbatim: %q", instances[1].Cmd)
	}
}
