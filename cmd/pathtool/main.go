// pathtool is a CLI utility for inspecting the tower's camera path and geometry.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/diwan-tower/internal/engine/building"
	"github.com/Faultbox/diwan-tower/internal/engine/camera"
	"github.com/Faultbox/diwan-tower/internal/engine/material"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "sample", "s":
		err = cmdSample(args, os.Stdout)
	case "export", "x":
		err = cmdExport(args, os.Stdout)
	case "stats":
		err = cmdStats(args, os.Stdout)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`pathtool - Diwan Tower camera path utility

Usage:
  pathtool <command> [options]

Commands:
  sample [-n steps]        Print camera pose and opacities across scroll progress
  export [-o file]         Write the stage keyframes as YAML
  stats                    Print instance counts for the building

Building options (all commands):
  -floors, -floor-height, -footprint, -core, -columns

Examples:
  pathtool sample -n 8
  pathtool export -o path.yaml
  pathtool stats -floors 40`)
}

// buildingFlags registers the building parameters on fs.
func buildingFlags(fs *flag.FlagSet) *building.Parameters {
	p := building.DefaultParameters()
	fs.IntVar(&p.Floors, "floors", p.Floors, "Number of floors")
	fs.Func("floor-height", "Floor height", float32Flag(&p.FloorHeight))
	fs.Func("footprint", "Footprint size", float32Flag(&p.FootprintSize))
	fs.Func("core", "Core size", float32Flag(&p.CoreSize))
	fs.IntVar(&p.ColumnsPerSide, "columns", p.ColumnsPerSide, "Columns per side")
	return &p
}

func float32Flag(dst *float32) func(string) error {
	return func(s string) error {
		var v float32
		if _, err := fmt.Sscanf(s, "%g", &v); err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		*dst = v
		return nil
	}
}

func cmdSample(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("sample", flag.ContinueOnError)
	steps := fs.Int("n", 20, "Number of intervals between progress 0 and 1")
	params := buildingFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := params.Validate(); err != nil {
		return err
	}
	if *steps < 1 {
		return fmt.Errorf("-n must be at least 1")
	}
	return writeSamples(out, camera.NewPath(*params), *steps)
}

func writeSamples(out io.Writer, path *camera.Path, steps int) error {
	if _, err := fmt.Fprintf(out, "%-8s %-5s %-22s %-22s %-6s %-6s\n",
		"progress", "stage", "position", "target", "solid", "wire"); err != nil {
		return err
	}
	for i := 0; i <= steps; i++ {
		p := float64(i) / float64(steps)
		pose := path.Evaluate(p)
		_, err := fmt.Fprintf(out, "%-8.3f %-5d %-22s %-22s %-6.3f %-6.3f\n",
			p, pose.Stage+1,
			fmt.Sprintf("%.1f,%.1f,%.1f", pose.Position.X, pose.Position.Y, pose.Position.Z),
			fmt.Sprintf("%.1f,%.1f,%.1f", pose.Target.X, pose.Target.Y, pose.Target.Z),
			pose.SolidOpacity, pose.WireOpacity)
		if err != nil {
			return err
		}
	}
	return nil
}

// pathDoc is the YAML form of a camera path.
type pathDoc struct {
	Start  camera.Keyframe `yaml:"start"`
	Stages []stageDoc      `yaml:"stages"`
}

type stageDoc struct {
	camera.Stage `yaml:",inline"`
	From         float64 `yaml:"from"`
	To           float64 `yaml:"to"`
}

func cmdExport(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	output := fs.String("o", "", "Output file (default stdout)")
	params := buildingFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := params.Validate(); err != nil {
		return err
	}

	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return exportPath(out, camera.NewPath(*params))
}

func exportPath(out io.Writer, path *camera.Path) error {
	doc := pathDoc{Start: path.Start}
	for i, s := range path.Stages {
		doc.Stages = append(doc.Stages, stageDoc{
			Stage: s,
			From:  float64(i) / camera.StageCount,
			To:    float64(i+1) / camera.StageCount,
		})
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding path: %w", err)
	}
	return enc.Close()
}

func cmdStats(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	particles := fs.Int("particles", 600, "Particle count")
	params := buildingFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	bp, err := building.Build(*params, building.Options{ParticleCount: *particles})
	if err != nil {
		return err
	}
	return writeStats(out, bp)
}

func writeStats(out io.Writer, bp *building.Blueprint) error {
	s := bp.Stats()
	rows := []struct {
		label string
		value any
	}{
		{"Floors", s.Floors},
		{"Height", bp.Params.TotalHeight()},
		{"Slabs", s.Slabs},
		{"Columns", fmt.Sprintf("%d (%d per floor)", s.Columns, s.ColumnsPerFloor)},
		{"Glow lines", s.GlowLines},
		{"Particles", s.Particles},
		{"Grid lines", s.GridLines},
		{"Draw batches", s.DrawBatches},
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(out, "%-13s %v\n", r.label+":", r.value); err != nil {
			return err
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Batches:")
	for _, b := range bp.Batches {
		fmt.Fprintf(out, "  %-8s %-6s %4d instances  size %.2fx%.2fx%.2f\n",
			b.Name, b.Material, len(b.Instances), b.Size.X, b.Size.Y, b.Size.Z)
	}
	_, err := fmt.Fprintf(out, "Solid opacity starts at %.2f, wire at %.2f\n",
		material.InitialSolidOpacity, material.InitialWireOpacity)
	return err
}
