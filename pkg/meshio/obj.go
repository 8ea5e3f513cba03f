// Package meshio reads and writes meshes: a Wavefront OBJ subset for
// interchange and a zstd-compressed binary snapshot for fast round trips.
package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/liberty293/Cardinal3D/pkg/core"
	"github.com/liberty293/Cardinal3D/pkg/halfedge"
)

// ReadOBJ parses the v/f subset of a Wavefront OBJ stream and stitches the
// polygons into a half-edge mesh. Normals, texture coordinates, materials
// and grouping directives are skipped.
func ReadOBJ(r io.Reader) (*halfedge.Mesh, error) {
	var positions []core.Vec3
	var polygons [][]int

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj: line %d: vertex needs 3 coordinates", lineNo)
			}
			var coords [3]float64
			for i := 0; i < 3; i++ {
				val, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("obj: line %d: %w", lineNo, err)
				}
				coords[i] = val
			}
			positions = append(positions, core.NewVec3(coords[0], coords[1], coords[2]))

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj: line %d: face needs at least 3 vertices", lineNo)
			}
			poly := make([]int, 0, len(fields)-1)
			for _, spec := range fields[1:] {
				// v, v/vt, v//vn and v/vt/vn all start with the vertex index.
				idxStr := spec
				if slash := strings.IndexByte(spec, '/'); slash >= 0 {
					idxStr = spec[:slash]
				}
				idx, err := strconv.Atoi(idxStr)
				if err != nil {
					return nil, fmt.Errorf("obj: line %d: %w", lineNo, err)
				}
				if idx < 0 {
					idx = len(positions) + idx + 1
				}
				if idx < 1 || idx > len(positions) {
					return nil, fmt.Errorf("obj: line %d: vertex index %d out of range", lineNo, idx)
				}
				poly = append(poly, idx-1)
			}
			polygons = append(polygons, poly)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("obj: %w", err)
	}

	return halfedge.FromPolygons(positions, polygons)
}

// WriteOBJ writes the mesh's interior faces as a Wavefront OBJ stream
func WriteOBJ(w io.Writer, m *halfedge.Mesh) error {
	bw := bufio.NewWriter(w)
	positions, polygons := m.Polygons()

	for _, p := range positions {
		if _, err := fmt.Fprintf(bw, "v %g %g %g\n", p.X, p.Y, p.Z); err != nil {
			return err
		}
	}
	for _, poly := range polygons {
		parts := make([]string, len(poly))
		for i, idx := range poly {
			parts[i] = strconv.Itoa(idx + 1)
		}
		if _, err := fmt.Fprintf(bw, "f %s\n", strings.Join(parts, " ")); err != nil {
			return err
		}
	}
	return bw.Flush()
}
