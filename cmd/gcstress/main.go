// Command gcstress drives a collector with a synthetic allocation
// workload and prints the resulting collector statistics.
//
// The tuning and workload come from a YAML profile:
//
//	initial_capacity: 1024
//	min_capacity: 17
//	sweep_factor: 0.5
//	allocations: 100000
//	region_size: 64
//	root_every: 50
//	mmap: false
//
// Usage:
//
//	gcstress -profile stress.yaml
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/inhies/go-bytesize"
	"gopkg.in/yaml.v2"

	"github.com/joshuapare/gckit/gc"
	"github.com/joshuapare/gckit/gc/mem"
)

type profile struct {
	InitialCapacity int     `yaml:"initial_capacity"`
	MinCapacity     int     `yaml:"min_capacity"`
	DownsizeFactor  float64 `yaml:"downsize_factor"`
	UpsizeFactor    float64 `yaml:"upsize_factor"`
	SweepFactor     float64 `yaml:"sweep_factor"`

	Allocations int  `yaml:"allocations"`
	RegionSize  int  `yaml:"region_size"`
	RootEvery   int  `yaml:"root_every"`
	Mmap        bool `yaml:"mmap"`
}

var defaultProfile = profile{
	Allocations: 100000,
	RegionSize:  64,
	RootEvery:   0,
}

func main() {
	profilePath := flag.String("profile", "", "YAML tuning profile (defaults apply if empty)")
	flag.Parse()

	p := defaultProfile
	if *profilePath != "" {
		raw, err := os.ReadFile(*profilePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "gcstress: read profile: %v\n", err)
			os.Exit(1)
		}
		if err := yaml.UnmarshalStrict(raw, &p); err != nil {
			fmt.Fprintf(os.Stderr, "gcstress: parse profile: %v\n", err)
			os.Exit(1)
		}
	}
	if p.Allocations <= 0 || p.RegionSize <= 0 {
		fmt.Fprintln(os.Stderr, "gcstress: allocations and region_size must be positive")
		os.Exit(1)
	}

	cfg := &gc.Config{
		InitialCapacity: p.InitialCapacity,
		MinCapacity:     p.MinCapacity,
		DownsizeFactor:  p.DownsizeFactor,
		UpsizeFactor:    p.UpsizeFactor,
		SweepFactor:     p.SweepFactor,
	}
	if p.Mmap {
		heap, err := mem.NewMmapHeap()
		if err != nil {
			fmt.Fprintf(os.Stderr, "gcstress: mmap heap unavailable: %v\n", err)
			os.Exit(1)
		}
		cfg.Heap = heap
	}

	c := gc.StartTuned(gc.Here(), cfg)
	run(c, p)
}

// run lives in its own frame below the base sentinel so the workload's
// stack references are inside the scanned span.
//
//go:noinline
func run(c *gc.Collector, p profile) {
	var roots []uintptr
	for i := 0; i < p.Allocations; i++ {
		r, err := c.Alloc(p.RegionSize)
		if err != nil {
			fmt.Fprintf(os.Stderr, "gcstress: allocation %d: %v\n", i, err)
			os.Exit(1)
		}
		if p.RootEvery > 0 && i%p.RootEvery == 0 {
			c.MakeRoot(r.Addr())
			roots = append(roots, r.Addr())
		}
	}

	freed := c.Run()
	stats := c.Stats()

	fmt.Printf("allocated %d regions of %s (%s total)\n",
		p.Allocations,
		bytesize.New(float64(p.RegionSize)),
		bytesize.New(float64(p.Allocations)*float64(p.RegionSize)))
	fmt.Printf("final cycle reclaimed %s\n", bytesize.New(float64(freed)))
	fmt.Printf("rooted %d regions, %d still live\n", len(roots), stats.Live)
	fmt.Printf("%s\n", stats)

	for _, addr := range roots {
		c.Free(addr)
	}
	c.Stop()
}
