package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wmppaul/bow-wow/pkg/hull"
)

func TestRebuildProducesFullResult(t *testing.T) {
	a := NewApp()

	res := a.Rebuild()
	if res.Hull == nil || res.Hull.IsEmpty() {
		t.Fatal("rebuild produced no hull mesh")
	}
	if res.MotorMount == nil || res.MotorMount.IsEmpty() {
		t.Fatal("rebuild produced no motor mount")
	}
	if res.Hydro.Waterline <= 0 {
		t.Errorf("waterline %v, want positive", res.Hydro.Waterline)
	}
	if res.Hydro.WouldSink {
		t.Error("default hull reported sinking")
	}
}

func TestSetParametersReportsClamping(t *testing.T) {
	a := NewApp()

	p := hull.DefaultParams()
	p.WallThickness = 100 // thicker than the hull itself

	msgs := a.SetParameters(p)
	if len(msgs) == 0 {
		t.Fatal("no messages for an impossible wall thickness")
	}
	found := false
	for _, m := range msgs {
		if strings.Contains(m, "wallThickness") {
			found = true
		}
	}
	if !found {
		t.Errorf("no wallThickness message in %v", msgs)
	}
	// The record is stored as given; clamping happens at build time.
	if got := a.Parameters(); got != p {
		t.Errorf("stored params %+v, want %+v", got, p)
	}
}

func TestCrossSectionBeforeAnyRebuild(t *testing.T) {
	a := NewApp()

	// No rebuild yet: the binding builds the shell on demand.
	s := a.CrossSection(0, 0, 1, 0)
	if s == nil || s.IsEmpty() {
		t.Fatal("no midships section from a fresh app")
	}
	if a.CrossSection(0, 0, 0, 0) != nil {
		t.Error("zero-length plane normal should give nil")
	}
	if a.CrossSection(0, 0, 1, 1e6) != nil {
		t.Error("plane far outside the hull should give nil")
	}
}

func TestExportSTLWritesFile(t *testing.T) {
	a := NewApp()
	a.Rebuild()

	path := filepath.Join(t.TempDir(), "hull.stl")
	if err := a.ExportSTL(path); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() <= 84 {
		t.Errorf("exported STL is %d bytes, want a real mesh", info.Size())
	}
}

func TestSaveLoadDesignThroughBinding(t *testing.T) {
	a := NewApp()

	p := hull.DefaultParams()
	p.Length = 220
	p.BowStyle = hull.BowRaked
	a.SetParameters(p)

	path := filepath.Join(t.TempDir(), "design.json")
	if err := a.SaveDesign(path); err != nil {
		t.Fatal(err)
	}

	b := NewApp()
	loaded, err := b.LoadDesign(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded != p {
		t.Errorf("loaded %+v, want %+v", loaded, p)
	}
	if b.Parameters() != p {
		t.Error("loaded design did not become current")
	}
}
