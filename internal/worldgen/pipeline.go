package worldgen

import (
	"time"

	"voxelmesh/internal/block"
	"voxelmesh/internal/chunk"
	"voxelmesh/internal/config"
	"voxelmesh/internal/engine"
	"voxelmesh/internal/mesh"
	"voxelmesh/internal/spatial"
)

// Pipeline wires the whole chunk derivation chain: spatial index, terrain
// stages, block-volume neighborhood tracking, and background meshing.
// All state mutation happens on the goroutine calling Tick; only the mesh
// computation itself runs on the worker pool.
type Pipeline struct {
	cfg       config.Config
	world     *engine.World
	schedule  *engine.Schedule
	gen       *Generator
	positions *engine.Store[spatial.ChunkCoord]
	index     *chunk.Index
	heights   *engine.Store[HeightField]
	volumes   *engine.Store[block.Volume]
	tracker   *chunk.Tracker[block.Volume]
	mesher    *mesh.Mesher
}

// NewPipeline builds a pipeline from settings. Pass order is fixed:
// terrain stages feed the tracker, the tracker feeds mesh scheduling,
// and polling installs finished meshes.
func NewPipeline(cfg config.Config) *Pipeline {
	w := engine.NewWorld()
	positions := engine.NewStore[spatial.ChunkCoord](w)
	p := &Pipeline{
		cfg:       cfg,
		world:     w,
		gen:       NewGenerator(cfg.Seed, cfg.NoiseLayers, cfg.NoiseScale, cfg.WorldAmplitude),
		positions: positions,
		index:     chunk.NewIndex(positions),
		heights:   engine.NewStore[HeightField](w),
		volumes:   engine.NewStore[block.Volume](w),
	}
	p.tracker = chunk.NewTracker(w, p.index, positions, p.volumes)
	p.mesher = mesh.NewMesher(w, p.tracker.Caches(), cfg.MeshWorkers, cfg.MeshQueueSize)

	p.schedule = engine.NewSchedule(w)
	p.schedule.Add("worldgen.AssignHeights", p.assignHeights)
	p.schedule.Add("worldgen.AssignVolumes", p.assignVolumes)
	p.schedule.Add("chunk.Track", p.tracker.Run)
	p.schedule.Add("mesh.Schedule", p.mesher.Schedule)
	p.schedule.Add("mesh.Poll", p.mesher.Poll)
	return p
}

// SpawnChunk creates the chunk entity at a coordinate and registers its
// position. Exactly one chunk exists per coordinate; spawning an occupied
// coordinate returns the existing entity.
func (p *Pipeline) SpawnChunk(pos spatial.ChunkCoord) engine.Entity {
	if e, ok := p.index.Entity(pos); ok {
		return e
	}
	e := p.world.Spawn()
	p.positions.Set(e, pos)
	return e
}

// DespawnChunk destroys the chunk at a coordinate, clearing its slot in
// all neighbor caches and cancelling any outstanding mesh task.
func (p *Pipeline) DespawnChunk(pos spatial.ChunkCoord) bool {
	e, ok := p.index.Entity(pos)
	if !ok {
		return false
	}
	p.world.Despawn(e)
	return true
}

// SpawnCube spawns all chunks with coordinates in [-r, r]^3.
func (p *Pipeline) SpawnCube(r int) {
	for z := -r; z <= r; z++ {
		for y := -r; y <= r; y++ {
			for x := -r; x <= r; x++ {
				p.SpawnChunk(spatial.ChunkCoord{X: x, Y: y, Z: z})
			}
		}
	}
}

// assignHeights samples the height field for chunks that have a position
// but no height field yet.
func (p *Pipeline) assignHeights() {
	p.positions.Each(func(e engine.Entity, pos spatial.ChunkCoord) {
		if p.heights.Has(e) {
			return
		}
		h := p.gen.HeightField(pos)
		p.world.Defer(func() { p.heights.Set(e, h) })
	})
}

// assignVolumes classifies the block volume for chunks whose height field
// exists but whose volume does not.
func (p *Pipeline) assignVolumes() {
	p.heights.Each(func(e engine.Entity, h HeightField) {
		if p.volumes.Has(e) {
			return
		}
		pos, ok := p.positions.Get(e)
		if !ok {
			return
		}
		v := p.gen.BlockVolume(pos, h)
		p.world.Defer(func() { p.volumes.Set(e, v) })
	})
}

// Tick runs one frame of all passes in order.
func (p *Pipeline) Tick() {
	p.schedule.Tick()
}

// Busy reports whether any derivation work is still pending.
func (p *Pipeline) Busy() bool {
	n := p.positions.Len()
	if p.heights.Len() < n || p.volumes.Len() < n {
		return true
	}
	if p.tracker.Snapshots().Len() < p.volumes.Len() {
		return true
	}
	if p.tracker.Caches().Len() < p.tracker.Snapshots().Len() {
		return true
	}
	if p.mesher.Busy() {
		return true
	}
	return p.mesher.Quads().Len() < p.tracker.Caches().Len()
}

// Settle ticks until the pipeline reports no pending work, up to
// maxTicks. Returns the number of ticks run and whether it settled.
func (p *Pipeline) Settle(maxTicks int) (int, bool) {
	for i := 1; i <= maxTicks; i++ {
		p.Tick()
		if !p.Busy() {
			return i, true
		}
		// Meshes finish on the worker pool; give them a moment before
		// the next poll instead of spinning flat out.
		time.Sleep(time.Millisecond)
	}
	return maxTicks, !p.Busy()
}

// Close shuts down background workers.
func (p *Pipeline) Close() {
	p.mesher.Close()
}

// World exposes the entity host, for collaborators driving lifecycle.
func (p *Pipeline) World() *engine.World { return p.world }

// Index exposes the spatial chunk index.
func (p *Pipeline) Index() *chunk.Index { return p.index }

// Volumes exposes the published block-volume store.
func (p *Pipeline) Volumes() *engine.Store[block.Volume] { return p.volumes }

// Tracker exposes the block-volume neighborhood tracker.
func (p *Pipeline) Tracker() *chunk.Tracker[block.Volume] { return p.tracker }

// Mesher exposes the mesh stage (quad lists and quad count).
func (p *Pipeline) Mesher() *mesh.Mesher { return p.mesher }
