package main

import (
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/liberty293/Cardinal3D/pkg/halfedge"
	"github.com/liberty293/Cardinal3D/pkg/meshio"
	"github.com/liberty293/Cardinal3D/pkg/renderer"
	"github.com/liberty293/Cardinal3D/pkg/scene"
)

func main() {
	app := cli.NewApp()
	app.Name = "cardinal3d"
	app.Usage = "half-edge mesh editing and path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
	}
	app.Before = func(c *cli.Context) error {
		level := slog.LevelInfo
		if c.GlobalBool("v") {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:      "render",
			Usage:     "path-trace the builtin scene to a PNG",
			ArgsUsage: "output.png",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "width", Value: 400, Usage: "image width"},
				cli.IntFlag{Name: "height", Value: 300, Usage: "image height"},
				cli.IntFlag{Name: "spp", Value: 32, Usage: "samples per pixel"},
				cli.IntFlag{Name: "depth", Value: 16, Usage: "maximum path depth"},
				cli.Int64Flag{Name: "seed", Value: 42, Usage: "random seed"},
			},
			Action: renderScene,
		},
		{
			Name:      "info",
			Usage:     "print mesh statistics and run the validator",
			ArgsUsage: "mesh.obj",
			Action:    meshInfo,
		},
		{
			Name:      "simplify",
			Usage:     "quadric-error simplification (triangulates first if needed)",
			ArgsUsage: "input.obj output.obj",
			Action:    simplifyMesh,
		},
		{
			Name:      "subdivide",
			Usage:     "quad subdivision, one round per --rounds",
			ArgsUsage: "input.obj output.obj",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "scheme", Value: "catmullclark", Usage: "linear or catmullclark"},
				cli.IntFlag{Name: "rounds", Value: 1, Usage: "number of subdivision rounds"},
			},
			Action: subdivideMesh,
		},
		{
			Name:      "triangulate",
			Usage:     "split all faces into triangles",
			ArgsUsage: "input.obj output.obj",
			Action:    triangulateMesh,
		},
		{
			Name:      "convert",
			Usage:     "convert between OBJ and compressed snapshot by extension",
			ArgsUsage: "input.{obj|c3d} output.{obj|c3d}",
			Action:    convertMesh,
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func renderScene(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("render: expected one output path")
	}
	out := c.Args().Get(0)

	width := c.Int("width")
	height := c.Int("height")
	sc, camera := scene.NewDefaultScene(float64(width) / float64(height))

	img := renderer.Render(sc, camera, renderer.Config{
		Width:           width,
		Height:          height,
		SamplesPerPixel: c.Int("spp"),
		MaxDepth:        c.Int("depth"),
		Seed:            c.Int64("seed"),
		Background:      sc.Background,
	})

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return err
	}
	slog.Info("wrote image", "path", out)
	return nil
}

func meshInfo(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("info: expected one mesh path")
	}
	m, err := loadMesh(c.Args().Get(0))
	if err != nil {
		return err
	}

	stats := m.CollectStats()
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Element", "Count"})
	table.Append([]string{"vertices", strconv.Itoa(stats.Vertices)})
	table.Append([]string{"edges", strconv.Itoa(stats.Edges)})
	table.Append([]string{"halfedges", strconv.Itoa(stats.Halfedges)})
	table.Append([]string{"faces", strconv.Itoa(stats.Faces)})
	table.Append([]string{"boundary loops", strconv.Itoa(stats.Boundaries)})
	table.Append([]string{"face degree", fmt.Sprintf("%d-%d", stats.MinDegree, stats.MaxDegree)})
	table.Render()

	if err := m.Validate(); err != nil {
		return fmt.Errorf("mesh is invalid: %w", err)
	}
	fmt.Println("validator: ok")
	return nil
}

func simplifyMesh(c *cli.Context) error {
	m, out, err := loadInOut(c, "simplify")
	if err != nil {
		return err
	}

	before := m.NFaces()
	if !m.Simplify() {
		slog.Info("mesh has non-triangular faces, triangulating first")
		m.Triangulate()
		m.Collect()
		if !m.Simplify() {
			return fmt.Errorf("simplify: no collapsible edges")
		}
	}
	m.Collect()
	if err := m.Validate(); err != nil {
		return fmt.Errorf("simplify left an invalid mesh: %w", err)
	}
	slog.Info("simplified", "faces_before", before, "faces_after", m.NFaces())

	return saveMesh(out, m)
}

func subdivideMesh(c *cli.Context) error {
	m, out, err := loadInOut(c, "subdivide")
	if err != nil {
		return err
	}

	scheme := halfedge.CatmullClark
	switch strings.ToLower(c.String("scheme")) {
	case "linear":
		scheme = halfedge.Linear
	case "catmullclark", "catmull-clark":
		scheme = halfedge.CatmullClark
	default:
		return fmt.Errorf("subdivide: unknown scheme %q", c.String("scheme"))
	}
	if scheme == halfedge.CatmullClark && m.NBoundaries() > 0 {
		return fmt.Errorf("subdivide: catmull-clark requires a mesh without boundary")
	}

	for i := 0; i < c.Int("rounds"); i++ {
		if err := m.Subdivide(scheme); err != nil {
			return err
		}
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("subdivision left an invalid mesh: %w", err)
	}
	return saveMesh(out, m)
}

func triangulateMesh(c *cli.Context) error {
	m, out, err := loadInOut(c, "triangulate")
	if err != nil {
		return err
	}
	m.Triangulate()
	m.Collect()
	if err := m.Validate(); err != nil {
		return fmt.Errorf("triangulation left an invalid mesh: %w", err)
	}
	return saveMesh(out, m)
}

func convertMesh(c *cli.Context) error {
	m, out, err := loadInOut(c, "convert")
	if err != nil {
		return err
	}
	return saveMesh(out, m)
}

func loadInOut(c *cli.Context, cmd string) (*halfedge.Mesh, string, error) {
	if c.NArg() != 2 {
		return nil, "", fmt.Errorf("%s: expected input and output paths", cmd)
	}
	m, err := loadMesh(c.Args().Get(0))
	if err != nil {
		return nil, "", err
	}
	return m, c.Args().Get(1), nil
}

func loadMesh(path string) (*halfedge.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".c3d") {
		return meshio.ReadSnapshot(f)
	}
	return meshio.ReadOBJ(f)
}

func saveMesh(path string, m *halfedge.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".c3d") {
		return meshio.WriteSnapshot(f, m)
	}
	return meshio.WriteOBJ(f, m)
}
