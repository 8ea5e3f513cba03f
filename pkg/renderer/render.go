package renderer

import (
	"image"
	"image/color"
	"log/slog"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/liberty293/Cardinal3D/pkg/bsdf"
	"github.com/liberty293/Cardinal3D/pkg/core"
)

// Surface is what the renderer needs from a scene: ray intersection over
// every object and a material table to resolve the BSDF stamped on a hit.
type Surface interface {
	Hit(ray *core.Ray) core.Trace
	Material(idx int) bsdf.BSDF
}

// Config controls the render loop
type Config struct {
	Width           int
	Height          int
	SamplesPerPixel int
	MaxDepth        int
	Seed            int64
	Background      core.Vec3
}

// Render path-traces the scene into an image. Rows are distributed over
// worker goroutines; every worker owns its rays and random source, so the
// shared BVH is read concurrently without synchronisation.
func Render(scene Surface, camera *Camera, cfg Config) *image.RGBA {
	start := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))

	rows := make(chan int)
	var wg sync.WaitGroup
	workers := runtime.NumCPU()
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(cfg.Seed + int64(worker)))
			for y := range rows {
				renderRow(scene, camera, cfg, y, rng, img)
			}
		}(w)
	}
	for y := 0; y < cfg.Height; y++ {
		rows <- y
	}
	close(rows)
	wg.Wait()

	slog.Info("render finished",
		"size", cfg.Width*cfg.Height,
		"spp", cfg.SamplesPerPixel,
		"elapsed", time.Since(start))
	return img
}

func renderRow(scene Surface, camera *Camera, cfg Config, y int, rng *rand.Rand, img *image.RGBA) {
	for x := 0; x < cfg.Width; x++ {
		var sum core.Vec3
		for s := 0; s < cfg.SamplesPerPixel; s++ {
			u := (float64(x) + rng.Float64()) / float64(cfg.Width)
			v := (float64(y) + rng.Float64()) / float64(cfg.Height)
			sum = sum.Add(tracePath(scene, camera.GenerateRay(u, v), cfg, rng))
		}
		writePixel(img, x, cfg.Height-1-y, sum.Multiply(1.0/float64(cfg.SamplesPerPixel)))
	}
}

// tracePath follows one camera path through the scene, accumulating emitted
// radiance and attenuating throughput at each bounce per the BSDF sampling
// conventions: continuous models contribute attenuation*cos/pdf, discrete
// ones contribute attenuation directly.
func tracePath(scene Surface, ray core.Ray, cfg Config, rng *rand.Rand) core.Vec3 {
	var radiance core.Vec3
	throughput := core.NewVec3(1, 1, 1)

	for depth := 0; depth < cfg.MaxDepth; depth++ {
		trace := scene.Hit(&ray)
		if !trace.Hit {
			radiance = radiance.Add(throughput.MultiplyVec(cfg.Background))
			break
		}

		material := scene.Material(trace.Material)
		frame := core.NewFrame(trace.Normal)
		outDir := frame.ToLocal(ray.Direction.Negate().Normalize())

		sample := material.Sample(outDir, rng)
		radiance = radiance.Add(throughput.MultiplyVec(sample.Emissive))

		if sample.Attenuation.IsZero() || sample.PDF <= 0 {
			break
		}
		if material.Discrete() {
			throughput = throughput.MultiplyVec(sample.Attenuation)
		} else {
			cos := math.Abs(sample.Direction.Y)
			throughput = throughput.MultiplyVec(sample.Attenuation.Multiply(cos / sample.PDF))
		}

		ray = core.NewRay(trace.Position, frame.ToWorld(sample.Direction).Normalize())
	}

	return radiance
}

func writePixel(img *image.RGBA, x, y int, c core.Vec3) {
	c = c.GammaCorrect(2.2).Clamp(0, 1)
	img.SetRGBA(x, y, color.RGBA{
		R: uint8(255 * c.X),
		G: uint8(255 * c.Y),
		B: uint8(255 * c.Z),
		A: 255,
	})
}
