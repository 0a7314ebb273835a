package main

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/wmppaul/bow-wow/pkg/buoyancy"
	"github.com/wmppaul/bow-wow/pkg/hull"
	"github.com/wmppaul/bow-wow/pkg/kernel"
	"github.com/wmppaul/bow-wow/pkg/kernel/sdfx"
	"github.com/wmppaul/bow-wow/pkg/section"
	"github.com/wmppaul/bow-wow/pkg/stl"
	"github.com/wmppaul/bow-wow/pkg/store"
)

// rebuildDelay batches slider drags into one regeneration. The core
// itself never rate-limits; the binding is the caller responsible for
// debouncing.
const rebuildDelay = 60 * time.Millisecond

// App is the Wails backend. It exposes methods to the frontend via
// bindings and owns the only mutable state in the program: the current
// parameter record and the last build result.
type App struct {
	ctx    context.Context
	kernel kernel.Kernel

	mu        sync.Mutex
	params    hull.Params
	lastBuild RebuildResult

	debounced func(func())
}

// RebuildResult is the full regeneration output sent to the frontend.
type RebuildResult struct {
	Hull       *kernel.Mesh    `json:"hull"`
	MotorMount *kernel.Mesh    `json:"motorMount"`
	Hydro      buoyancy.Result `json:"hydro"`
	Warnings   []string        `json:"warnings"`
}

// NewApp creates a new App with the sdfx kernel and default parameters.
func NewApp() *App {
	return &App{
		kernel:    sdfx.New(),
		params:    hull.DefaultParams(),
		debounced: debounce.New(rebuildDelay),
	}
}

// startup is called by Wails on app startup. The context is saved so
// rebuilds can emit events to the frontend.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// Parameters returns the current parameter record.
func (a *App) Parameters() hull.Params {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.params
}

// SetParameters stores a new parameter record and schedules a debounced
// rebuild. The rebuilt meshes arrive on the "hull:rebuilt" event; a
// stale in-flight rebuild is simply superseded by the next one.
// Returned warnings describe what clamping will change, if anything.
func (a *App) SetParameters(p hull.Params) []string {
	errs, warns := hull.Validate(p)

	a.mu.Lock()
	a.params = p
	a.mu.Unlock()

	a.debounced(func() {
		res := a.Rebuild()
		if a.ctx != nil {
			runtime.EventsEmit(a.ctx, "hull:rebuilt", res)
		}
	})

	messages := make([]string, 0, len(errs)+len(warns))
	for _, e := range errs {
		messages = append(messages, e.Error()+" (will be clamped)")
	}
	for _, w := range warns {
		messages = append(messages, w.Field+": "+w.Message)
	}
	return messages
}

// Rebuild regenerates the hull shell, the motor mount and the
// hydrostatics synchronously and caches the result for export.
func (a *App) Rebuild() RebuildResult {
	a.mu.Lock()
	p := a.params
	a.mu.Unlock()

	res := RebuildResult{
		Hull:  hull.BuildShell(p),
		Hydro: buoyancy.Solve(p),
	}

	mount, err := hull.BuildMotorMount(a.kernel, p)
	if err != nil {
		log.Printf("motor mount build failed: %v", err)
		res.Warnings = append(res.Warnings, "motor mount: "+err.Error())
	} else {
		res.MotorMount = mount
	}

	if res.Hydro.WouldSink {
		res.Warnings = append(res.Warnings, "this configuration would sink")
	}

	a.mu.Lock()
	a.lastBuild = res
	a.mu.Unlock()
	return res
}

// CrossSection cuts the last built hull with the given plane and
// returns the triangulated cap, or null when the plane misses the hull.
func (a *App) CrossSection(nx, ny, nz, offset float64) *kernel.Mesh {
	a.mu.Lock()
	mesh := a.lastBuild.Hull
	a.mu.Unlock()

	if mesh == nil {
		mesh = hull.BuildShell(a.Parameters())
	}
	n := hull.Vec3{X: nx, Y: ny, Z: nz}
	if n.Length() == 0 {
		return nil
	}
	return section.Extract(mesh, section.Plane{Normal: n, Offset: offset})
}

// ExportSTL writes the current hull shell to a binary STL file.
func (a *App) ExportSTL(path string) error {
	a.mu.Lock()
	mesh := a.lastBuild.Hull
	a.mu.Unlock()

	if mesh == nil {
		mesh = hull.BuildShell(a.Parameters())
	}
	if err := stl.Save(path, mesh); err != nil {
		log.Printf("export failed: %v", err)
		return err
	}
	return nil
}

// SaveDesign persists the current parameter record.
func (a *App) SaveDesign(path string) error {
	return store.Save(path, a.Parameters())
}

// LoadDesign loads a parameter record, merged over defaults, makes it
// current and returns it so the frontend can refresh its controls.
func (a *App) LoadDesign(path string) (hull.Params, error) {
	p, err := store.Load(path)
	if err != nil {
		return p, err
	}
	a.mu.Lock()
	a.params = p
	a.mu.Unlock()
	return p, nil
}
