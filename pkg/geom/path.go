// Package geom holds the vector primitives the QR engine emits.
//
// A [Path] is an ordered list of absolute drawing commands that maps 1:1 onto
// SVG path data. A [Polygon] is a set of closed point rings used by the
// organic module styles, which build their outline by merging many simple
// shapes through a [Unioner].
package geom

import (
	"strconv"
	"strings"
)

// Point is a 2D coordinate in canvas pixels.
type Point struct{ X, Y float64 }

// Rect is an axis aligned rectangle.
type Rect struct{ X, Y, W, H float64 }

// Intersects reports whether r and o overlap with positive area.
// Touching edges do not count.
func (r Rect) Intersects(o Rect) bool {
	return r.X+r.W > o.X && r.X < o.X+o.W && r.Y+r.H > o.Y && r.Y < o.Y+o.H
}

// Op identifies a path command.
type Op byte

// Path operations. The byte values are the SVG command letters.
const (
	OpMove  Op = 'M'
	OpLine  Op = 'L'
	OpHLine Op = 'H'
	OpVLine Op = 'V'
	OpArc   Op = 'A'
	OpClose Op = 'Z'
)

// Command is one path command with absolute coordinates.
//
// Field use by op:
//   - Move, Line: X, Y
//   - HLine: X
//   - VLine: Y
//   - Arc: R (circular, rx = ry), Sweep, X, Y
//   - Close: none
type Command struct {
	Op    Op
	X, Y  float64
	R     float64
	Sweep bool
}

// Path is a sequence of drawing commands.
type Path struct {
	cmds []Command
}

// Commands returns the commands in order. The slice must not be modified.
func (p *Path) Commands() []Command { return p.cmds }

// Len returns the number of commands.
func (p *Path) Len() int { return len(p.cmds) }

// Empty reports whether the path draws nothing.
func (p *Path) Empty() bool { return len(p.cmds) == 0 }

// MoveTo starts a new subpath.
func (p *Path) MoveTo(x, y float64) {
	p.cmds = append(p.cmds, Command{Op: OpMove, X: x, Y: y})
}

// LineTo draws a straight segment.
func (p *Path) LineTo(x, y float64) {
	p.cmds = append(p.cmds, Command{Op: OpLine, X: x, Y: y})
}

// HLineTo draws a horizontal segment to x.
func (p *Path) HLineTo(x float64) {
	p.cmds = append(p.cmds, Command{Op: OpHLine, X: x})
}

// VLineTo draws a vertical segment to y.
func (p *Path) VLineTo(y float64) {
	p.cmds = append(p.cmds, Command{Op: OpVLine, Y: y})
}

// ArcTo draws a circular arc of radius r ending at (x, y).
// A zero radius is a degenerate arc and draws nothing: every caller ends the
// arc at the point it starts from when r is 0.
func (p *Path) ArcTo(r float64, sweep bool, x, y float64) {
	if r <= 0 {
		return
	}
	p.cmds = append(p.cmds, Command{Op: OpArc, R: r, Sweep: sweep, X: x, Y: y})
}

// Close ends the current subpath.
func (p *Path) Close() {
	p.cmds = append(p.cmds, Command{Op: OpClose})
}

// Append adds all of o's commands to p.
func (p *Path) Append(o Path) {
	p.cmds = append(p.cmds, o.cmds...)
}

// Bounds returns the bounding box of every explicit coordinate in the path.
// Arc extremes are covered because the engine only draws quarter arcs that
// stay inside the box spanned by their endpoints.
func (p *Path) Bounds() Rect {
	if len(p.cmds) == 0 {
		return Rect{}
	}
	var cur Point
	minX, minY := 0.0, 0.0
	maxX, maxY := 0.0, 0.0
	first := true
	add := func(pt Point) {
		if first {
			minX, maxX, minY, maxY = pt.X, pt.X, pt.Y, pt.Y
			first = false
			return
		}
		minX, maxX = min(minX, pt.X), max(maxX, pt.X)
		minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
	}
	for _, c := range p.cmds {
		switch c.Op {
		case OpMove, OpLine, OpArc:
			cur = Point{c.X, c.Y}
		case OpHLine:
			cur.X = c.X
		case OpVLine:
			cur.Y = c.Y
		default:
			continue
		}
		add(cur)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Data formats the path as SVG path data with the given number of decimals.
func (p *Path) Data(precision int) string {
	var b strings.Builder
	for i, c := range p.cmds {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(byte(c.Op))
		switch c.Op {
		case OpMove, OpLine:
			b.WriteString(FormatFloat(c.X, precision))
			b.WriteByte(',')
			b.WriteString(FormatFloat(c.Y, precision))
		case OpHLine:
			b.WriteString(FormatFloat(c.X, precision))
		case OpVLine:
			b.WriteString(FormatFloat(c.Y, precision))
		case OpArc:
			r := FormatFloat(c.R, precision)
			b.WriteString(r)
			b.WriteByte(',')
			b.WriteString(r)
			b.WriteString(" 0 0 ")
			if c.Sweep {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
			b.WriteByte(' ')
			b.WriteString(FormatFloat(c.X, precision))
			b.WriteByte(',')
			b.WriteString(FormatFloat(c.Y, precision))
		}
	}
	return b.String()
}

// FormatFloat renders v with at most precision decimals and no trailing zeros.
func FormatFloat(v float64, precision int) string {
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if strings.IndexByte(s, '.') >= 0 {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}
