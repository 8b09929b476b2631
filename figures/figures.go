/*
 * figures.go, part of godefect.
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

//Package figures turns snapshots into configuration figures, with a
//consistent theme across all the visualisations of an experiment. Charts
//are only written to disk on an explicit Save or SaveGrid call.
package figures

import (
	"fmt"
	"image/color"
	"os"

	defect "github.com/mfraser/godefect"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

//The 4:6 aspect ratio used for every figure, in inches.
const (
	Width  = 6 * vg.Inch
	Height = 4 * vg.Inch
)

// Theme applies the house style to a plot: large axis and legend fonts and
// no grid, which is distracting in a configuration figure.
func Theme(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(22)
	p.X.Label.TextStyle.Font.Size = vg.Points(20)
	p.Y.Label.TextStyle.Font.Size = vg.Points(20)
	p.X.Tick.Label.Font.Size = vg.Points(16)
	p.Y.Tick.Label.Font.Size = vg.Points(16)
	p.Legend.TextStyle.Font.Size = vg.Points(16)
	p.BackgroundColor = color.White
}

// StyleSnapshot strips everything which isn't helpful in defining a
// configuration, like the axes and their ticks.
func StyleSnapshot(p *plot.Plot) {
	p.HideAxes()
}

// Snapshot draws the particles of snap in the xy plane, one glyph per
// particle, colored by particle type.
func Snapshot(snap *defect.Snapshot) (*plot.Plot, error) {
	if snap == nil {
		return nil, fmt.Errorf("figures: given a nil snapshot")
	}
	p := plot.New()
	Theme(p)
	//One scatter per type so each gets its own color.
	for t := range snap.Types {
		var pts plotter.XYs
		for i := 0; i < snap.Len(); i++ {
			if snap.TypeID[i] != t {
				continue
			}
			pts = append(pts, plotter.XY{X: snap.Pos.At(i, 0), Y: snap.Pos.At(i, 1)})
		}
		if len(pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(3)
		s.GlyphStyle.Color = plotutil.Color(t)
		p.Add(s)
	}
	StyleSnapshot(p)
	return p, nil
}

// SnapshotGrid draws every snapshot with Snapshot and arranges the figures
// in a grid with cols columns, filled row by row.
func SnapshotGrid(snaps []*defect.Snapshot, cols int) ([][]*plot.Plot, error) {
	if cols < 1 {
		cols = 1
	}
	rows := (len(snaps) + cols - 1) / cols
	grid := make([][]*plot.Plot, rows)
	for r := range grid {
		grid[r] = make([]*plot.Plot, cols)
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(snaps) {
				break
			}
			p, err := Snapshot(snaps[i])
			if err != nil {
				return nil, err
			}
			grid[r][c] = p
		}
	}
	return grid, nil
}

// HLine draws a horizontal grey rule across the plot at y=value.
func HLine(p *plot.Plot, value float64) error {
	pts := plotter.XYs{{X: p.X.Min, Y: value}, {X: p.X.Max, Y: value}}
	return addRule(p, pts)
}

// VLine draws a vertical grey rule across the plot at x=value.
func VLine(p *plot.Plot, value float64) error {
	pts := plotter.XYs{{X: value, Y: p.Y.Min}, {X: value, Y: p.Y.Max}}
	return addRule(p, pts)
}

func addRule(p *plot.Plot, pts plotter.XYs) error {
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	l.Color = color.Gray{Y: 128}
	p.Add(l)
	return nil
}

// Save exports a single figure to the named file at the standard size. The
// format follows the file extension, as in plot.Plot.Save.
func Save(p *plot.Plot, filename string) error {
	return p.Save(Width, Height, filename)
}

// SaveGrid exports a grid of figures, as produced by SnapshotGrid, to a PNG
// file. Every cell gets the standard figure size scaled down by the number
// of rows, as the grids are meant for side-by-side comparison rather than
// detail.
func SaveGrid(grid [][]*plot.Plot, filename string) error {
	rows := len(grid)
	if rows == 0 {
		return fmt.Errorf("figures: empty grid")
	}
	cols := len(grid[0])
	scale := vg.Length(1) / vg.Length(rows)
	img := vgimg.New(Width*vg.Length(cols)*scale, Height*vg.Length(rows)*scale)
	dc := draw.New(img)
	t := draw.Tiles{Rows: rows, Cols: cols, PadX: vg.Millimeter, PadY: vg.Millimeter}
	canvases := plot.Align(grid, t, dc)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if grid[r][c] != nil {
				grid[r][c].Draw(canvases[r][c])
			}
		}
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return err
	}
	return nil
}
