package main

import (
	"flag"
	"log"
	"time"

	"github.com/xlab/closer"

	"voxelmesh/internal/config"
	"voxelmesh/internal/profiling"
	"voxelmesh/internal/spatial"
	"voxelmesh/internal/worldgen"
)

func main() {
	configPath := flag.String("config", "", "YAML settings file (optional, overrides defaults)")
	ticks := flag.Int("ticks", 0, "stop after this many ticks (0 = run until interrupted)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Printf("settings: %v, continuing with defaults", err)
		} else {
			cfg = loaded
		}
	}

	pipeline := worldgen.NewPipeline(cfg)
	closer.Bind(pipeline.Close)

	go run(pipeline, cfg, *ticks)
	closer.Hold()
}

func run(p *worldgen.Pipeline, cfg config.Config, maxTicks int) {
	log.Printf("spawning %d chunks (radius %d, seed %#x)",
		cube(cfg.WorldRadius), cfg.WorldRadius, cfg.Seed)
	p.SpawnCube(cfg.WorldRadius)

	start := time.Now()
	if n, ok := p.Settle(10 * cube(cfg.WorldRadius)); ok {
		log.Printf("world derived in %d ticks (%v): %d chunks, %d quads",
			n, time.Since(start).Round(time.Millisecond), p.Volumes().Len(), p.Mesher().QuadCount())
	} else {
		log.Printf("world still deriving after %v, continuing", time.Since(start).Round(time.Millisecond))
	}

	// Steady state: keep ticking so external spawns/despawns would be
	// picked up, and report pass timings once a second.
	ticker := time.NewTicker(time.Second / time.Duration(cfg.TickRateHz))
	defer ticker.Stop()
	report := time.NewTicker(time.Second)
	defer report.Stop()

	// Exercise incremental rederivation: cycle the chunk above the center
	// in and out of the world.
	churn := time.NewTicker(5 * time.Second)
	defer churn.Stop()
	churnPos := spatial.ChunkCoord{Y: cfg.WorldRadius}
	churnPresent := true

	n := 0
	for range ticker.C {
		p.Tick()
		n++
		select {
		case <-report.C:
			log.Printf("tick %d: %d quads installed; slowest passes: %s",
				n, p.Mesher().QuadCount(), profiling.TopN(3))
		case <-churn.C:
			if churnPresent {
				p.DespawnChunk(churnPos)
			} else {
				p.SpawnChunk(churnPos)
			}
			churnPresent = !churnPresent
		default:
		}
		if maxTicks > 0 && n >= maxTicks {
			break
		}
	}
	closer.Close()
}

func cube(r int) int {
	s := 2*r + 1
	return s * s * s
}
