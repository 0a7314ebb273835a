package hull

import (
	"fmt"

	"github.com/wmppaul/bow-wow/pkg/kernel"
)

// BuildMotorMount produces the accessory motor-mount mesh: a shaft
// housing cylinder with a rectangular neck rising to the hull bottom. It
// is built through the geometry kernel rather than the shell mesher and
// shares the hull's longitudinal-centering convention, sitting just
// forward of the transom on the centerline.
func BuildMotorMount(k kernel.Kernel, params Params) (*kernel.Mesh, error) {
	p := params.Clamped()

	shaftRadius := p.MountShaftDiameter/2 + p.WallThickness
	housingLength := p.MountHeight

	// Housing: cylinder along Z (the kernel's cylinder axis), lying under
	// the keel pointing aft-forward like the prop shaft.
	housing := k.Cylinder(housingLength, shaftRadius, 32)

	// Neck: rectangular riser joining the housing to the hull bottom.
	neckHeight := p.MountHeight
	neck := k.Box(p.MountNeckWidth, neckHeight, housingLength)
	neck = k.Translate(neck, 0, neckHeight/2, 0)

	mount := k.Union(housing, neck)

	// Place under the stern quarter, re-centered like the hull: the hull
	// spans [-length/2, length/2], the mount sits a quarter length aft.
	mount = k.Translate(mount, 0, -shaftRadius, -p.Length/4)

	mesh, err := k.ToMesh(mount)
	if err != nil {
		return nil, fmt.Errorf("motor mount: %w", err)
	}
	mesh.PartName = "motor-mount"
	return mesh, nil
}
