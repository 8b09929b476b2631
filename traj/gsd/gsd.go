/*
 * gsd.go, part of godefect.
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

//Package gsd reads and writes snapshot trajectories in a compact binary
//format: little-endian records, z-standard compressed, every frame carrying
//the full particle state (positions, orientations, velocities, angular
//momenta, moments of inertia, bodies, types, masses, images) plus the box. The particle count is fixed for the
//whole file.
package gsd

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	defect "github.com/mfraser/godefect"
)

const magic uint32 = 0x47534431 //"GSD1"

//Write!

// Writer appends snapshot frames to a trajectory file.
type Writer struct {
	f         *os.File
	h         io.WriteCloser
	natoms    int
	types     []string
	filename  string
	writeable bool
}

// NewWriter creates the named trajectory file for natoms particles with the
// given type names, and writes the file header.
func NewWriter(name string, natoms int, types []string) (*Writer, error) {
	W := new(Writer)
	var err error
	W.f, err = os.Create(name)
	if err != nil {
		return nil, err
	}
	W.h, err = zstd.NewWriter(W.f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		W.f.Close()
		return nil, Error{"can't set up compression: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	W.natoms = natoms
	W.types = append([]string{}, types...)
	W.filename = name
	head := []uint32{magic, 1, uint32(natoms), uint32(len(types))}
	if err := binary.Write(W.h, binary.LittleEndian, head); err != nil {
		W.h.Close()
		W.f.Close()
		return nil, Error{"can't write header: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	for _, t := range types {
		if err := writeString(W.h, t); err != nil {
			W.h.Close()
			W.f.Close()
			return nil, Error{"can't write header: " + err.Error(), name, []string{"NewWriter"}, true}
		}
	}
	W.writeable = true
	return W, nil
}

// Len returns the number of particles per frame.
func (W *Writer) Len() int {
	return W.natoms
}

// WNext appends one frame with the contents of snap, which must have the
// particle count the writer was created with.
func (W *Writer) WNext(snap *defect.Snapshot) error {
	if !W.writeable {
		return Error{TrajUnIniWrite, W.filename, []string{"WNext"}, true}
	}
	if snap == nil {
		return Error{NilSnapshot, W.filename, []string{"WNext"}, true}
	}
	if snap.Len() != W.natoms {
		return Error{fmt.Sprintf("%d particles given, but %d expected", snap.Len(), W.natoms), W.filename, []string{"WNext"}, true}
	}
	le := binary.LittleEndian
	if err := binary.Write(W.h, le, snap.Box[:]); err != nil {
		return Error{err.Error(), W.filename, []string{"WNext"}, true}
	}
	n := W.natoms
	for _, m := range []struct {
		cols int
		src  func(i int) []float64
	}{
		{3, snap.Pos.RawRowView},
		{4, snap.Ori.RawRowView},
		{3, snap.Vel.RawRowView},
		{4, snap.AngMom.RawRowView},
		{3, snap.Inertia.RawRowView},
	} {
		buf := make([]float64, 0, n*m.cols)
		for i := 0; i < n; i++ {
			buf = append(buf, m.src(i)...)
		}
		if err := binary.Write(W.h, le, buf); err != nil {
			return Error{err.Error(), W.filename, []string{"WNext"}, true}
		}
	}
	ints := make([]int32, 0, n*5)
	for _, b := range snap.Body {
		ints = append(ints, int32(b))
	}
	for _, t := range snap.TypeID {
		ints = append(ints, int32(t))
	}
	for _, im := range snap.Image {
		ints = append(ints, int32(im[0]), int32(im[1]), int32(im[2]))
	}
	if err := binary.Write(W.h, le, ints); err != nil {
		return Error{err.Error(), W.filename, []string{"WNext"}, true}
	}
	if err := binary.Write(W.h, le, snap.Mass); err != nil {
		return Error{err.Error(), W.filename, []string{"WNext"}, true}
	}
	return nil
}

// Close flushes and closes the trajectory. The writer can not be used after
// this call.
func (W *Writer) Close() {
	if W == nil {
		return
	}
	if W.writeable {
		W.h.Close()
		W.f.Close()
	}
	W.writeable = false
}

//Read!

// Reader reads snapshot frames from a trajectory file.
type Reader struct {
	f        *os.File
	h        io.ReadCloser
	natoms   int
	types    []string
	filename string
	readable bool
}

// New opens the named trajectory for reading and parses its header.
func New(name string) (*Reader, error) {
	R := new(Reader)
	R.natoms = -1 //just so we know if things don't work
	R.filename = name
	var err error
	R.f, err = os.Open(name)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(R.f)
	if err != nil {
		R.f.Close()
		return nil, Error{"can't set up decompression: " + err.Error(), name, []string{"New"}, true}
	}
	R.h = zstdql{dec.Close, dec}
	head := make([]uint32, 4)
	if err := binary.Read(R.h, binary.LittleEndian, head); err != nil {
		return nil, Error{"can't read header: " + err.Error(), name, []string{"New"}, true}
	}
	if head[0] != magic {
		return nil, Error{WrongFormat, name, []string{"New"}, true}
	}
	R.natoms = int(head[2])
	for i := uint32(0); i < head[3]; i++ {
		t, err := readString(R.h)
		if err != nil {
			return nil, Error{"can't read header: " + err.Error(), name, []string{"New"}, true}
		}
		R.types = append(R.types, t)
	}
	R.readable = true
	return R, nil
}

// Readable returns true if the object is ready to be read from. It doesn't
// guarantee that there is something left to read.
func (R *Reader) Readable() bool {
	return R.readable
}

// Len returns the number of particles per frame.
func (R *Reader) Len() int {
	return R.natoms
}

// Next reads the next frame of the trajectory into a fresh snapshot. After
// the last frame it returns an error implementing defect.LastFrameError.
func (R *Reader) Next() (*defect.Snapshot, error) {
	if !R.readable {
		return nil, Error{TrajUnIniRead, R.filename, []string{"Next"}, true}
	}
	le := binary.LittleEndian
	snap := defect.NewSnapshot(R.natoms, R.types)
	if err := binary.Read(R.h, le, snap.Box[:]); err != nil {
		if err == io.EOF {
			R.readable = false
			return nil, newlastFrameError(R.filename, "Next")
		}
		return nil, Error{err.Error(), R.filename, []string{"Next"}, true}
	}
	n := R.natoms
	for _, m := range []struct {
		cols int
		set  func(i int, row []float64)
	}{
		{3, snap.Pos.SetRow},
		{4, snap.Ori.SetRow},
		{3, snap.Vel.SetRow},
		{4, snap.AngMom.SetRow},
		{3, snap.Inertia.SetRow},
	} {
		buf := make([]float64, n*m.cols)
		if err := binary.Read(R.h, le, buf); err != nil {
			return nil, Error{"truncated frame: " + err.Error(), R.filename, []string{"Next"}, true}
		}
		for i := 0; i < n; i++ {
			m.set(i, buf[i*m.cols:(i+1)*m.cols])
		}
	}
	ints := make([]int32, n*5)
	if err := binary.Read(R.h, le, ints); err != nil {
		return nil, Error{"truncated frame: " + err.Error(), R.filename, []string{"Next"}, true}
	}
	for i := 0; i < n; i++ {
		snap.Body[i] = int(ints[i])
		snap.TypeID[i] = int(ints[n+i])
		im := ints[2*n+3*i : 2*n+3*i+3]
		snap.Image[i] = [3]int{int(im[0]), int(im[1]), int(im[2])}
	}
	if err := binary.Read(R.h, le, snap.Mass); err != nil {
		return nil, Error{"truncated frame: " + err.Error(), R.filename, []string{"Next"}, true}
	}
	return snap, nil
}

// Close closes the trajectory. The reader can not be used after this call.
func (R *Reader) Close() {
	if R == nil {
		return
	}
	if R.readable {
		R.h.Close()
		R.f.Close()
	}
	R.readable = false
}

// ReadFirst opens the named trajectory, reads its first frame and closes it
// again. It is the common case for defect carving, where the input is a
// single equilibrated configuration.
func ReadFirst(name string) (*defect.Snapshot, error) {
	R, err := New(name)
	if err != nil {
		return nil, err
	}
	defer R.Close()
	snap, err := R.Next()
	if err != nil {
		return nil, errDecorate(err, "ReadFirst")
	}
	return snap, nil
}

// WriteOne writes snap as the only frame of the named trajectory file.
func WriteOne(name string, snap *defect.Snapshot) error {
	if snap == nil {
		return Error{NilSnapshot, name, []string{"WriteOne"}, true}
	}
	W, err := NewWriter(name, snap.Len(), snap.Types)
	if err != nil {
		return err
	}
	defer W.Close()
	if err := W.WNext(snap); err != nil {
		return errDecorate(err, "WriteOne")
	}
	return nil
}

//This will cause an additional indirection, but each call takes enough time
//to make the delay irrelevant. Also, why couldn't *zstd.Decoder implement
//io.ReadCloser? :-(
type zstdql struct {
	closeql func()
	*zstd.Decoder
}

// Close closes the object. It can not be used after this call.
func (z zstdql) Close() error {
	z.closeql()
	return nil
}

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := w.Write([]byte(s))
	return err
}

func readString(r io.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}
