package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"sort"
	"sync"
	"time"

	"erode/internal/sims/erosion"
)

type paramSet struct {
	evaporation float32
	inertia     float32
	capacity    float32
	deposition  float32
	erosion     float32
	variant     erosion.Variant
}

func (p paramSet) String() string {
	return fmt.Sprintf("evap=%.3f inertia=%.2f capacity=%.0f deposit=%.2f erode=%.3f variant=%s",
		p.evaporation, p.inertia, p.capacity, p.deposition, p.erosion, p.variant)
}

type scenarioResult struct {
	params paramSet
	run    erosion.RunResult
	err    error
}

// carved is the terrain moved by droplets per spawned droplet.
func (r scenarioResult) carved() float64 {
	if r.run.Stats.Spawned == 0 {
		return 0
	}
	return r.run.Stats.Eroded / float64(r.run.Stats.Spawned)
}

func main() {
	steps := flag.Int("steps", 600, "ticks to simulate per scenario")
	size := flag.Int("size", 128, "grid side length")
	seed := flag.Int64("seed", 1337, "terrain seed shared by every scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	top := flag.Int("top", 5, "results to print")
	flag.Parse()

	base := erosion.DefaultConfig()
	base.Size = *size
	base.Seed = *seed
	base.SourceAttempts = base.SourceAttempts * (*size) * (*size) / (512 * 512)

	var sets []paramSet
	for _, evap := range []float32{0.02, 0.05, 0.1} {
		for _, inertia := range []float32{0.05, 0.1, 0.3} {
			for _, capacity := range []float32{200, 800, 2000} {
				for _, dep := range []float32{0.05, 0.1, 0.3} {
					for _, ero := range []float32{0.005, 0.01, 0.05} {
						for _, variant := range []erosion.Variant{erosion.VariantWeighted, erosion.VariantConstant} {
							sets = append(sets, paramSet{
								evaporation: evap,
								inertia:     inertia,
								capacity:    capacity,
								deposition:  dep,
								erosion:     ero,
								variant:     variant,
							})
						}
					}
				}
			}
		}
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %d steps, %dx%d grid)\n", len(sets), *workers, *steps, *size, *size)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(base, params, *steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		if res.err != nil {
			log.Printf("skip %s: %v", res.params, res.err)
			continue
		}
		all = append(all, res)
	}
	if len(all) == 0 {
		log.Fatal("no scenario completed")
	}

	sort.Slice(all, func(i, j int) bool { return all[i].carved() > all[j].carved() })
	elapsed := time.Since(start)

	fmt.Printf("\nTop %d results (elapsed %s):\n", *top, elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < *top; i++ {
		res := all[i]
		fmt.Printf("%2d) carved=%.5f eroded=%.3f deposited=%.3f land=%.3f h[%.3f,%.3f] live=%d peak=%d expired=%d guarded=%d params=%s\n",
			i+1, res.carved(), res.run.Stats.Eroded, res.run.Stats.Deposited, res.run.LandFraction,
			res.run.MinHeight, res.run.MaxHeight, res.run.Live, res.run.Stats.PeakDroplets,
			res.run.Stats.Expired, res.run.Stats.Guarded, res.params)
	}
}

func runScenario(base erosion.Config, params paramSet, steps int) scenarioResult {
	cfg := base
	cfg.Params.Evaporation = params.evaporation
	cfg.Params.Inertia = params.inertia
	cfg.Params.Capacity = params.capacity
	cfg.Params.Deposition = params.deposition
	cfg.Params.Erosion = params.erosion
	cfg.Params.Variant = params.variant

	run, err := erosion.RunScenario(cfg, steps)
	return scenarioResult{params: params, run: run, err: err}
}
