package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/Faultbox/tinymesh/pkg/math"
)

// OBJ format errors.
var (
	ErrMalformedRecord = errors.New("malformed OBJ record")
)

// maxOBJLine bounds a single OBJ line.
const maxOBJLine = 1 << 20

// OBJFace is a triangle with 0-based position and normal indices.
type OBJFace struct {
	V          [3]int
	N          [3]int
	HasNormals bool // False when a corner carried no normal index
}

// OBJ represents the subset of a Wavefront OBJ file used for meshes:
// positions, normals and triangles, plus optional per-vertex colors.
type OBJ struct {
	Name     string
	Vertices []math.Vec3
	Normals  []math.Vec3
	Colors   [][3]float64 // Empty, or one RGB triple per vertex
	Faces    []OBJFace
}

// HasColors reports whether every vertex carries a color.
func (o *OBJ) HasColors() bool {
	return len(o.Colors) > 0 && len(o.Colors) == len(o.Vertices)
}

// ParseOBJ reads an OBJ document. Lines that cannot be interpreted are
// skipped and reported together, each wrapping ErrMalformedRecord, while
// the records that could be read are returned. Polygons with more than
// three corners are split as fans. Unsupported keywords are ignored.
//
// Face indices are resolved against the vertices and normals read before
// the face, so faces listed ahead of their vertices are reported as
// malformed and dropped.
//
// A nil *OBJ is returned only when the reader itself fails.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	obj := &OBJ{}
	var (
		errs      error
		colors    [][3]float64
		allColors = true
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxOBJLine)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				errs = multierr.Append(errs, malformed(lineNo, "vertex", err))
				continue
			}
			obj.Vertices = append(obj.Vertices, math.V3(v[0], v[1], v[2]))

			// Optional "v x y z r g b" colors.
			c, err := parseFloats(fields[4:], 3)
			if err != nil {
				allColors = false
				continue
			}
			colors = append(colors, [3]float64{c[0], c[1], c[2]})

		case "vn":
			n, err := parseFloats(fields[1:], 3)
			if err != nil {
				errs = multierr.Append(errs, malformed(lineNo, "normal", err))
				continue
			}
			obj.Normals = append(obj.Normals, math.V3(n[0], n[1], n[2]))

		case "f":
			faces, err := parseFace(fields[1:], len(obj.Vertices), len(obj.Normals))
			if err != nil {
				errs = multierr.Append(errs, malformed(lineNo, "face", err))
				continue
			}
			obj.Faces = append(obj.Faces, faces...)

		case "g", "o":
			if obj.Name == "" && len(fields) > 1 {
				obj.Name = strings.Join(fields[1:], " ")
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	if allColors && len(colors) == len(obj.Vertices) {
		obj.Colors = colors
	}

	return obj, errs
}

// ParseOBJFile reads an OBJ file. Files ending in .zst are decompressed.
// On open failure the returned *OBJ is nil.
func ParseOBJFile(path string) (*OBJ, error) {
	r, err := openFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening OBJ file: %w", err)
	}
	defer r.Close()

	obj, err := ParseOBJ(r)
	if obj == nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return obj, err
}

// WriteOBJ writes obj as text: an optional group line, the vertices (with
// their colors when every vertex has one), the normals and one face line
// per triangle with 1-based v//n corners.
func WriteOBJ(w io.Writer, obj *OBJ) error {
	bw := bufio.NewWriter(w)
	line := make([]byte, 0, 128)

	if obj.Name != "" {
		fmt.Fprintf(bw, "g %s\n", obj.Name)
	}

	colors := obj.HasColors()
	for i, v := range obj.Vertices {
		line = appendVec(append(line[:0], 'v'), v.X, v.Y, v.Z)
		if colors {
			c := obj.Colors[i]
			line = appendVec(line, c[0], c[1], c[2])
		}
		bw.Write(append(line, '\n'))
	}

	for _, n := range obj.Normals {
		line = appendVec(append(line[:0], "vn"...), n.X, n.Y, n.Z)
		bw.Write(append(line, '\n'))
	}

	for _, f := range obj.Faces {
		line = append(line[:0], 'f')
		for k := range 3 {
			line = append(line, ' ')
			line = strconv.AppendInt(line, int64(f.V[k]+1), 10)
			if f.HasNormals {
				line = append(line, "//"...)
				line = strconv.AppendInt(line, int64(f.N[k]+1), 10)
			}
		}
		bw.Write(append(line, '\n'))
	}

	// bufio.Writer keeps the first write error until Flush.
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing OBJ: %w", err)
	}
	return nil
}

// WriteOBJFile writes obj to path. Files ending in .zst are compressed.
func WriteOBJFile(path string, obj *OBJ) error {
	w, err := createFile(path)
	if err != nil {
		return fmt.Errorf("creating OBJ file: %w", err)
	}
	if err := WriteOBJ(w, obj); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing OBJ file: %w", err)
	}
	return nil
}

func malformed(line int, what string, err error) error {
	return fmt.Errorf("%w: line %d: %s: %v", ErrMalformedRecord, line, what, err)
}

// parseFloats parses the first n fields as floats.
func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d numbers, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := range n {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", fields[i])
		}
		out[i] = f
	}
	return out, nil
}

// parseFace parses the corners of an "f" line and fans them into triangles.
// nv and nn are the vertex and normal counts read so far, used to resolve
// relative (negative) indices and to check ranges.
func parseFace(corners []string, nv, nn int) ([]OBJFace, error) {
	if len(corners) < 3 {
		return nil, fmt.Errorf("expected at least 3 corners, got %d", len(corners))
	}

	vs := make([]int, len(corners))
	ns := make([]int, len(corners))
	withNormals := true
	for i, c := range corners {
		parts := strings.Split(c, "/")

		v, err := resolveIndex(parts[0], nv)
		if err != nil {
			return nil, fmt.Errorf("corner %q: vertex %w", c, err)
		}
		vs[i] = v

		if len(parts) < 3 || parts[2] == "" {
			withNormals = false
			continue
		}
		n, err := resolveIndex(parts[2], nn)
		if err != nil {
			return nil, fmt.Errorf("corner %q: normal %w", c, err)
		}
		ns[i] = n
	}

	faces := make([]OBJFace, 0, len(corners)-2)
	for i := 1; i+1 < len(corners); i++ {
		f := OBJFace{
			V:          [3]int{vs[0], vs[i], vs[i+1]},
			HasNormals: withNormals,
		}
		if withNormals {
			f.N = [3]int{ns[0], ns[i], ns[i+1]}
		}
		faces = append(faces, f)
	}
	return faces, nil
}

// resolveIndex converts a 1-based or negative relative OBJ index into a
// 0-based index into a list of count elements.
func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("index %q is not an integer", s)
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += count
	default:
		return 0, errors.New("index 0 is not allowed")
	}
	if i < 0 || i >= count {
		return 0, fmt.Errorf("index %s out of range (%d defined)", s, count)
	}
	return i, nil
}

func appendVec(buf []byte, x, y, z float64) []byte {
	for _, f := range [3]float64{x, y, z} {
		buf = append(buf, ' ')
		buf = strconv.AppendFloat(buf, f, 'g', -1, 64)
	}
	return buf
}
