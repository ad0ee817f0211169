// Command msaastat records a demo scene with the MSAA path renderer and
// prints what the frame would submit: ops, draws, render passes and
// destination copies. It runs on the noop HAL backend, so it needs no GPU
// and is useful for checking batching and blend selection.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
	"golang.org/x/image/font/gofont/goregular"

	msaapath "github.com/gogpu/msaapath"
	"github.com/gogpu/msaapath/backend/native"
	"github.com/gogpu/msaapath/caps"
	"github.com/gogpu/msaapath/render"
	"github.com/gogpu/msaapath/stencil"
	"github.com/gogpu/msaapath/text"
)

func main() {
	var (
		width   = flag.Int("width", 800, "target width")
		height  = flag.Int("height", 600, "target height")
		mode    = flag.String("mode", "SrcOver", "blend mode of the text draw")
		message = flag.String("text", "Stencil, then cover", "text to draw")
		size    = flag.Float64("size", 48, "text size in pixels")
		profile = flag.String("profile", "", "YAML capability profile")
		verbose = flag.Bool("v", false, "log pipeline diagnostics")
	)
	flag.Parse()

	if *verbose {
		l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		msaapath.SetLogger(l)
		native.SetLogger(l)
		text.SetLogger(l)
	}

	blend, ok := parseBlendMode(*mode)
	if !ok {
		log.Fatalf("unknown blend mode %q", *mode)
	}
	c, err := loadCaps(*profile)
	if err != nil {
		log.Fatal(err)
	}

	device, queue, cleanup, err := openNoopDevice()
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	target, err := native.NewTarget(device, queue, *width, *height, native.WithCaps(c))
	if err != nil {
		log.Fatal(err)
	}
	defer target.Release()

	face, err := text.NewFace(goregular.TTF, *size)
	if err != nil {
		log.Fatal(err)
	}
	r := render.New()
	target.Clear()

	drawScene(r, target)
	p, err := face.Path(*message, 40, float64(*height)-60, text.DirectionLTR)
	if err != nil {
		log.Fatal(err)
	}
	if !r.DrawPath(fillArgs(target, p, msaapath.RGBA(0.1, 0.1, 0.1, 1), blend)) {
		log.Printf("text path not handled by the MSAA renderer")
	}

	ops := target.OpCount()
	if err := target.Flush(); err != nil {
		log.Fatal(err)
	}
	st := target.Stats()
	hits, misses := target.Cache().Stats()
	fmt.Printf("caps:      %v\n", c)
	fmt.Printf("recorded:  %d ops\n", ops)
	fmt.Printf("submitted: %d ops, %d draws, %d passes, %d dst copies, %d dropped\n",
		st.Ops, st.Draws, st.Passes, st.DstCopy, st.Dropped)
	fmt.Printf("pipelines: %d (%d shaders), %d hits, %d misses\n",
		target.Cache().Size(), target.Cache().ShaderCount(), hits, misses)
}

func parseBlendMode(name string) (msaapath.BlendMode, bool) {
	for m := msaapath.BlendModeClear; m <= msaapath.BlendModeLast; m++ {
		if m.String() == name {
			return m, true
		}
	}
	return 0, false
}

func loadCaps(path string) (caps.Caps, error) {
	if path == "" {
		return caps.New(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return caps.Caps{}, err
	}
	defer f.Close()
	p, err := caps.LoadProfile(f)
	if err != nil {
		return caps.Caps{}, err
	}
	// The native backend blends advanced modes in the shader.
	p.AdvancedBlend = false
	return p.Caps()
}

func openNoopDevice() (hal.Device, hal.Queue, func(), error) {
	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, nil, nil, fmt.Errorf("no adapters")
	}
	dev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, nil, nil, fmt.Errorf("open adapter: %w", err)
	}
	return dev.Device, dev.Queue, func() {
		dev.Device.Destroy()
		instance.Destroy()
	}, nil
}

func fillArgs(dc render.DrawContext, p *msaapath.Path, c msaapath.Color, mode msaapath.BlendMode) render.DrawPathArgs {
	return render.DrawPathArgs{
		Context: dc,
		Paint:   render.Paint{Color: c, Mode: mode},
		Stencil: stencil.Unused,
		View:    msaapath.Identity(),
		Shape:   msaapath.FillShape(p),
		AA:      render.AAMSAA,
	}
}

func drawScene(r *render.Renderer, dc render.DrawContext) {
	// Convex shapes take the single-pass fan path.
	circle := msaapath.NewPath()
	circle.Circle(150, 150, 60)
	r.DrawPath(fillArgs(dc, circle, msaapath.RGBA(1, 0.3, 0.3, 0.8), msaapath.BlendModeSrcOver))

	rounded := msaapath.NewPath()
	rounded.RoundedRectangle(350, 100, 120, 80, 15)
	r.DrawPath(fillArgs(dc, rounded, msaapath.RGBA(1, 0.8, 0, 1), msaapath.BlendModeMultiply))

	// A star needs stencil then cover.
	star := msaapath.NewPath()
	for i := 0; i < 10; i++ {
		rad := 60.0
		if i%2 == 1 {
			rad = 30
		}
		a := float64(i)*math.Pi/5 - math.Pi/2
		x, y := 600+rad*math.Cos(a), 150+rad*math.Sin(a)
		if i == 0 {
			star.MoveTo(x, y)
		} else {
			star.LineTo(x, y)
		}
	}
	star.Close()
	r.DrawPath(fillArgs(dc, star, msaapath.RGBA(0.2, 0.4, 1, 1), msaapath.BlendModeSrcOver))

	// Strokes are expanded to fills first.
	wave := msaapath.NewPath()
	wave.MoveTo(150, 350)
	wave.CubicTo(200, 300, 250, 400, 300, 350)
	wave.CubicTo(350, 320, 400, 380, 450, 350)
	args := fillArgs(dc, wave, msaapath.RGBA(1, 0.5, 0, 1), msaapath.BlendModeScreen)
	args.Shape = msaapath.NewShape(wave, msaapath.StrokeStyle(6))
	r.DrawPath(args)
}
