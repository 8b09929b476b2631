/*
 * errors.go, part of godefect.
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

import "fmt"

//Both error types here are fatal to expansion: there is no partial-success
//mode, and no recovery beyond fixing the specification file.

// ConfigError reports a malformed experiment specification: a structural
// problem in the document, or zip-group member sequences of unequal length.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string {
	return "experi: " + e.msg
}

func configErrorf(format string, args ...interface{}) *ConfigError {
	return &ConfigError{msg: fmt.Sprintf(format, args...)}
}

// MissingVariableError reports a template placeholder with no binding in the
// run it is being substituted against.
type MissingVariableError struct {
	Name     string //the unbound placeholder
	Template string //the template referencing it
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("experi: template %q references undeclared variable %q", e.Template, e.Name)
}
