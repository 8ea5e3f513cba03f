package meshio

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/liberty293/Cardinal3D/pkg/core"
	"github.com/liberty293/Cardinal3D/pkg/halfedge"
)

// Snapshot layout, inside the zstd frame: magic, version, vertex count,
// positions, polygon count, then each polygon as a side count followed by
// its vertex indices. Everything is little-endian.
const (
	snapshotMagic   uint32 = 0x4333444d // "C3DM"
	snapshotVersion uint32 = 1
)

// WriteSnapshot serialises the mesh's polygons into a zstd-compressed
// binary snapshot.
func WriteSnapshot(w io.Writer, m *halfedge.Mesh) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	positions, polygons := m.Polygons()

	write := func(v any) error {
		return binary.Write(enc, binary.LittleEndian, v)
	}
	if err := write(snapshotMagic); err != nil {
		return err
	}
	if err := write(snapshotVersion); err != nil {
		return err
	}

	if err := write(uint32(len(positions))); err != nil {
		return err
	}
	for _, p := range positions {
		if err := write([3]float64{p.X, p.Y, p.Z}); err != nil {
			return err
		}
	}

	if err := write(uint32(len(polygons))); err != nil {
		return err
	}
	for _, poly := range polygons {
		if err := write(uint32(len(poly))); err != nil {
			return err
		}
		for _, idx := range poly {
			if err := write(uint32(idx)); err != nil {
				return err
			}
		}
	}

	return enc.Close()
}

// ReadSnapshot rebuilds a half-edge mesh from a snapshot stream
func ReadSnapshot(r io.Reader) (*halfedge.Mesh, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	defer dec.Close()

	read := func(v any) error {
		return binary.Read(dec, binary.LittleEndian, v)
	}

	var magic, version uint32
	if err := read(&magic); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	if magic != snapshotMagic {
		return nil, fmt.Errorf("snapshot: bad magic %08x", magic)
	}
	if err := read(&version); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	if version != snapshotVersion {
		return nil, fmt.Errorf("snapshot: unsupported version %d", version)
	}

	var nVerts uint32
	if err := read(&nVerts); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	positions := make([]core.Vec3, nVerts)
	for i := range positions {
		var coords [3]float64
		if err := read(&coords); err != nil {
			return nil, fmt.Errorf("snapshot: %w", err)
		}
		positions[i] = core.NewVec3(coords[0], coords[1], coords[2])
	}

	var nPolys uint32
	if err := read(&nPolys); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	polygons := make([][]int, nPolys)
	for i := range polygons {
		var sides uint32
		if err := read(&sides); err != nil {
			return nil, fmt.Errorf("snapshot: %w", err)
		}
		poly := make([]int, sides)
		for j := range poly {
			var idx uint32
			if err := read(&idx); err != nil {
				return nil, fmt.Errorf("snapshot: %w", err)
			}
			poly[j] = int(idx)
		}
		polygons[i] = poly
	}

	return halfedge.FromPolygons(positions, polygons)
}
