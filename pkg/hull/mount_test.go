package hull_test

import (
	"testing"

	"github.com/wmppaul/bow-wow/pkg/hull"
	"github.com/wmppaul/bow-wow/pkg/kernel/sdfx"
)

func TestBuildMotorMount(t *testing.T) {
	k := sdfx.New()
	p := hull.DefaultParams()

	m, err := hull.BuildMotorMount(k, p)
	if err != nil {
		t.Fatalf("BuildMotorMount: %v", err)
	}
	if m.IsEmpty() {
		t.Fatal("mount mesh is empty")
	}
	if m.PartName != "motor-mount" {
		t.Errorf("part name %q, want motor-mount", m.PartName)
	}

	// The mount straddles the shaft line on the centerline, aft of midships.
	min, max := m.BoundingBox()
	if min[0] >= 0 || max[0] <= 0 {
		t.Errorf("mount x span [%v, %v] does not straddle the centerline", min[0], max[0])
	}
	if min[2] > -p.Length/4 || max[2] < -p.Length/4 {
		t.Errorf("mount z span [%v, %v] does not cover z=%v", min[2], max[2], -p.Length/4)
	}

	// Wide enough for the shaft plus a wall on each side.
	wantWidth := p.MountShaftDiameter + 2*p.WallThickness
	if got := max[0] - min[0]; got < wantWidth*0.9 {
		t.Errorf("mount width %v, want at least %v", got, wantWidth)
	}
}

func TestBuildMotorMountScalesWithShaft(t *testing.T) {
	k := sdfx.New()

	small := hull.DefaultParams()
	small.MountShaftDiameter = 2
	big := hull.DefaultParams()
	big.MountShaftDiameter = 8

	ms, err := hull.BuildMotorMount(k, small)
	if err != nil {
		t.Fatal(err)
	}
	mb, err := hull.BuildMotorMount(k, big)
	if err != nil {
		t.Fatal(err)
	}

	sMin, sMax := ms.BoundingBox()
	bMin, bMax := mb.BoundingBox()
	if bMax[0]-bMin[0] <= sMax[0]-sMin[0] {
		t.Errorf("larger shaft did not widen the mount: %v vs %v",
			bMax[0]-bMin[0], sMax[0]-sMin[0])
	}
}
