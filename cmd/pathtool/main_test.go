package main

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/diwan-tower/internal/engine/building"
	"github.com/Faultbox/diwan-tower/internal/engine/camera"
)

func TestSampleTable(t *testing.T) {
	var buf bytes.Buffer
	if err := cmdSample([]string{"-n", "4"}, &buf); err != nil {
		t.Fatalf("sample: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want header + 5 rows:\n%s", len(lines), buf.String())
	}
	last := lines[len(lines)-1]
	if !strings.HasPrefix(last, "1.000") || !strings.Contains(last, "43.2,42.0,52.8") {
		t.Errorf("last row = %q", last)
	}
}

func TestSampleRejectsBadInput(t *testing.T) {
	var buf bytes.Buffer
	if err := cmdSample([]string{"-n", "0"}, &buf); err == nil {
		t.Error("expected error for -n 0")
	}
	if err := cmdSample([]string{"-floors", "0"}, &buf); err == nil {
		t.Error("expected error for zero floors")
	}
	if err := cmdSample([]string{"-core", "abc"}, &buf); err == nil {
		t.Error("expected error for non-numeric core size")
	}
}

func TestExportRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	path := camera.NewPath(building.DefaultParameters())
	if err := exportPath(&buf, path); err != nil {
		t.Fatalf("export: %v", err)
	}

	var doc pathDoc
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("decoding export: %v\n%s", err, buf.String())
	}
	if len(doc.Stages) != camera.StageCount {
		t.Fatalf("stages = %d", len(doc.Stages))
	}
	final := doc.Stages[3]
	if final.Section != "contact" || final.EaseName != "power2.out" || final.To != 1 {
		t.Errorf("final stage = %+v", final)
	}
	for _, st := range doc.Stages {
		if _, ok := camera.EaseByName(st.EaseName); !ok {
			t.Errorf("stage %q exports unknown ease %q", st.Name, st.EaseName)
		}
	}
	if final.End.SolidOpacity != 1 || final.End.WireOpacity != 0 {
		t.Errorf("final opacities = %+v", final.End)
	}
	if doc.Start.WireOpacity != 0.35 {
		t.Errorf("start wire opacity = %v", doc.Start.WireOpacity)
	}
}

func TestStats(t *testing.T) {
	var buf bytes.Buffer
	if err := cmdStats([]string{"-floors", "10", "-particles", "5"}, &buf); err != nil {
		t.Fatalf("stats: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Floors:       10", "160 (16 per floor)", "Particles:    5"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
