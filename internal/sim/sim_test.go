package sim

import (
	"math"
	"reflect"
	"testing"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
)

const frame = 1.0 / 60

// noCollisions disables the detector so long runs stay in Playing.
var noCollisions = CollisionFunc(func(*Store) []Collision { return nil })

func vec(x, y float64) core.Vec2 {
	return core.V(x, y)
}

// driver feeds ticks with a running clock.
type driver struct {
	sim *Simulation
	now float64
}

func newDriver(t *testing.T, opts ...Option) *driver {
	t.Helper()
	return &driver{sim: New(config.Default(), 1, opts...)}
}

func (d *driver) step(dt float64, jump bool) Output {
	d.now += dt
	return d.sim.Tick(core.TickInput{DT: dt, Now: d.now, Jump: jump})
}

// start enters Playing from the main menu.
func (d *driver) start(t *testing.T) {
	t.Helper()
	d.step(frame, true)
	if d.sim.Mode() != ModePlaying {
		t.Fatalf("mode = %s after jump in menu, want playing", d.sim.Mode())
	}
}

func (d *driver) player(t *testing.T) *Entity {
	t.Helper()
	p, ok := d.sim.Store().Player()
	if !ok {
		t.Fatal("no player in store")
	}
	return p
}

func obstacles(s *Simulation) []*Entity {
	var out []*Entity
	s.Store().Each(KindObstacle, func(e *Entity) {
		out = append(out, e)
	})
	return out
}

func eventsOf[T Event](events []Event) []T {
	var out []T
	for _, e := range events {
		if v, ok := e.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func TestNewStartsInMenuWithCamera(t *testing.T) {
	s := New(config.Default(), 1)

	if s.Mode() != ModeMainMenu {
		t.Errorf("mode = %s, want main_menu", s.Mode())
	}
	if s.Store().Len() != 1 || s.Store().Count(KindCamera) != 1 {
		t.Errorf("store should hold only the camera, got %d entities", s.Store().Len())
	}
}

func TestMenuIgnoresTicksWithoutJump(t *testing.T) {
	d := newDriver(t)
	for i := 0; i < 100; i++ {
		out := d.step(frame, false)
		if len(out.Events) != 0 {
			t.Fatalf("tick %d: unexpected events %v", i, out.Events)
		}
	}
	if d.sim.Mode() != ModeMainMenu {
		t.Errorf("mode = %s, want main_menu", d.sim.Mode())
	}
}

// Start in the menu and jump: the run begins with a clean slate.
func TestScenarioStartFromMenu(t *testing.T) {
	d := newDriver(t)
	out := d.step(frame, true)

	if out.Mode != ModePlaying {
		t.Fatalf("mode = %s, want playing", out.Mode)
	}
	if d.sim.Score() != 0 {
		t.Errorf("score = %d, want 0", d.sim.Score())
	}
	if d.sim.LastSpawnTime() != 0 {
		t.Errorf("last spawn time = %v, want 0", d.sim.LastSpawnTime())
	}

	changes := eventsOf[ModeChanged](out.Events)
	if len(changes) != 1 || changes[0] != (ModeChanged{From: ModeMainMenu, To: ModePlaying}) {
		t.Errorf("mode change events = %v", changes)
	}

	cfg := config.Default()
	st := d.sim.Store()
	if st.Count(KindPlayer) != 1 {
		t.Errorf("players = %d, want 1", st.Count(KindPlayer))
	}
	if got, want := st.Count(KindDecor), cfg.Decor.Clouds.Count+cfg.Decor.Buildings.Count; got != want {
		t.Errorf("decor = %d, want %d", got, want)
	}
	if st.Count(KindObstacle) != 0 {
		t.Errorf("obstacles = %d, want 0 on the entering tick", st.Count(KindObstacle))
	}

	p := d.player(t)
	if p.Transform.Pos != vec(cfg.Player.StartX, cfg.Player.StartY) {
		t.Errorf("player at %v", p.Transform.Pos)
	}
	w, h := cfg.Player.Hitbox()
	if p.Size != vec(w, h) {
		t.Errorf("player size = %v, want %vx%v", p.Size, w, h)
	}
}

// Advance past the spawn interval with no prior spawn: exactly one pair appears.
func TestScenarioFirstSpawn(t *testing.T) {
	d := newDriver(t, WithCollisionSource(noCollisions))
	d.start(t)

	interval := config.Default().Obstacles.SpawnInterval
	d.sim.Tick(core.TickInput{DT: frame, Now: interval + 1e-6})

	obs := obstacles(d.sim)
	if len(obs) != 2 {
		t.Fatalf("obstacles = %d, want one pair", len(obs))
	}
	if obs[0].PairID != obs[1].PairID {
		t.Errorf("members have different pair IDs: %d, %d", obs[0].PairID, obs[1].PairID)
	}
	if d.sim.LastSpawnTime() != interval+1e-6 {
		t.Errorf("last spawn time = %v", d.sim.LastSpawnTime())
	}
}

func TestNoSpawnAtExactInterval(t *testing.T) {
	d := newDriver(t)
	d.start(t)

	d.sim.Tick(core.TickInput{DT: 0, Now: config.Default().Obstacles.SpawnInterval})
	if n := len(obstacles(d.sim)); n != 0 {
		t.Errorf("obstacles = %d, spawn requires strictly more than the interval", n)
	}
}

// Report a player/obstacle overlap: the run ends.
func TestScenarioFatalCollision(t *testing.T) {
	var source CollisionFunc = func(st *Store) []Collision {
		p, ok := st.Player()
		if !ok {
			return nil
		}
		var out []Collision
		st.Each(KindObstacle, func(e *Entity) {
			out = append(out, Collision{A: e.ID, B: p.ID})
		})
		return out
	}
	d := newDriver(t, WithCollisionSource(source))
	d.start(t)
	d.sim.state.Score = 4
	spawnPair(&d.sim.state, d.sim.cfg.Obstacles, 0)

	out := d.step(frame, false)

	if out.Mode != ModeGameOver {
		t.Fatalf("mode = %s, want game_over", out.Mode)
	}
	if d.sim.Score() != 0 {
		t.Errorf("score = %d, want 0", d.sim.Score())
	}
	if _, ok := d.sim.Store().Player(); ok {
		t.Error("player still in store")
	}
	if d.sim.RunScore() != 4 || d.sim.Best() != 4 {
		t.Errorf("run score = %d, best = %d, want 4 and 4", d.sim.RunScore(), d.sim.Best())
	}

	// Two overlaps, one crash.
	crashes := eventsOf[Crashed](out.Events)
	if len(crashes) != 1 {
		t.Errorf("crash events = %d, want 1", len(crashes))
	}
	changes := eventsOf[ModeChanged](out.Events)
	if len(changes) != 1 {
		t.Errorf("mode change events = %d, want 1", len(changes))
	}
}

// An obstacle past the despawn line is removed and scored.
func TestScenarioObstacleLeaves(t *testing.T) {
	d := newDriver(t, WithCollisionSource(noCollisions))
	d.start(t)

	up, low := spawnPair(&d.sim.state, d.sim.cfg.Obstacles, 0)
	for _, id := range []EntityID{up, low} {
		e, _ := d.sim.Store().Get(id)
		e.Transform.Pos.X = -801
	}

	out := d.step(frame, false)

	if n := len(obstacles(d.sim)); n != 0 {
		t.Errorf("obstacles = %d, want 0", n)
	}
	if d.sim.Score() < 1 {
		t.Errorf("score = %d, want at least 1", d.sim.Score())
	}
	if scored := eventsOf[Scored](out.Events); len(scored) != d.sim.Score() {
		t.Errorf("scored events = %d, score = %d", len(scored), d.sim.Score())
	}
}

func TestScoringModes(t *testing.T) {
	tests := []struct {
		mode config.ScoringMode
		want int
	}{
		{config.ScorePerPair, 1},
		{config.ScorePerObstacle, 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			cfg := config.Default()
			cfg.Scoring.Mode = tt.mode
			s := New(cfg, 1, WithCollisionSource(noCollisions))
			s.Tick(core.TickInput{DT: frame, Now: frame, Jump: true})

			// Members leave on separate ticks.
			up, low := spawnPair(&s.state, cfg.Obstacles, 0)
			e, _ := s.Store().Get(up)
			e.Transform.Pos.X = -801
			s.Tick(core.TickInput{DT: frame, Now: 2 * frame})
			e, _ = s.Store().Get(low)
			e.Transform.Pos.X = -801
			s.Tick(core.TickInput{DT: frame, Now: 3 * frame})

			if s.Score() != tt.want {
				t.Errorf("score = %d, want %d", s.Score(), tt.want)
			}
		})
	}
}

func TestNoPointsInCrashTick(t *testing.T) {
	var hitFirst CollisionFunc = func(st *Store) []Collision {
		p, ok := st.Player()
		if !ok {
			return nil
		}
		var out []Collision
		st.Each(KindObstacle, func(e *Entity) {
			if len(out) == 0 {
				out = append(out, Collision{A: p.ID, B: e.ID})
			}
		})
		return out
	}
	d := newDriver(t, WithCollisionSource(hitFirst))
	d.start(t)
	d.sim.state.Score = 2

	spawnPair(&d.sim.state, d.sim.cfg.Obstacles, 0)
	_, low := spawnPair(&d.sim.state, d.sim.cfg.Obstacles, 0)
	e, _ := d.sim.Store().Get(low)
	e.Transform.Pos.X = -801

	out := d.step(frame, false)

	if d.sim.Score() != 0 {
		t.Errorf("score = %d, want 0 after a crash", d.sim.Score())
	}
	if d.sim.RunScore() != 2 {
		t.Errorf("run score = %d, want 2", d.sim.RunScore())
	}
	if scored := eventsOf[Scored](out.Events); len(scored) != 0 {
		t.Errorf("scored events in crash tick: %v", scored)
	}
}

func TestStaleCollisionsIgnored(t *testing.T) {
	var decorID EntityID
	var source CollisionFunc = func(st *Store) []Collision {
		p, ok := st.Player()
		if !ok {
			return []Collision{{A: 9999, B: 1}}
		}
		return []Collision{
			{A: p.ID, B: 9999},    // dead entity
			{A: p.ID, B: decorID}, // not an obstacle
			{A: 12345, B: 54321},  // no player involved
		}
	}
	d := newDriver(t, WithCollisionSource(source))
	d.start(t)
	d.sim.Store().Each(KindDecor, func(e *Entity) {
		if decorID == 0 {
			decorID = e.ID
		}
	})

	d.step(frame, false)
	if d.sim.Mode() != ModePlaying {
		t.Errorf("mode = %s, want playing", d.sim.Mode())
	}

	// Without a player the collision system does nothing.
	d.sim.Store().Despawn(d.player(t).ID)
	out := d.step(frame, true)
	if d.sim.Mode() != ModePlaying {
		t.Errorf("mode = %s, want playing", d.sim.Mode())
	}
	if len(eventsOf[Sound](out.Events)) != 0 {
		t.Error("jump without a player should not play a sound")
	}
}

func TestRestartFromGameOver(t *testing.T) {
	crashNow := false
	var source CollisionFunc = func(st *Store) []Collision {
		p, ok := st.Player()
		if !crashNow || !ok {
			return nil
		}
		var out []Collision
		st.Each(KindObstacle, func(e *Entity) {
			out = append(out, Collision{A: p.ID, B: e.ID})
		})
		return out
	}
	d := newDriver(t, WithCollisionSource(source))
	d.start(t)
	d.sim.state.Score = 7
	spawnPair(&d.sim.state, d.sim.cfg.Obstacles, 0)
	crashNow = true
	d.step(frame, false)
	crashNow = false

	if d.sim.Mode() != ModeGameOver {
		t.Fatalf("mode = %s, want game_over", d.sim.Mode())
	}
	st := d.sim.Store()
	if st.Len() != 1 || st.Count(KindCamera) != 1 {
		t.Errorf("store after teardown holds %d entities, want only the camera", st.Len())
	}

	// Idle ticks in GameOver change nothing.
	for i := 0; i < 10; i++ {
		d.step(frame, false)
	}
	if d.sim.Mode() != ModeGameOver {
		t.Fatalf("mode = %s, want game_over", d.sim.Mode())
	}

	out := d.step(frame, true)
	if out.Mode != ModePlaying {
		t.Fatalf("mode = %s after restart, want playing", out.Mode)
	}
	if d.sim.Score() != 0 || d.sim.LastSpawnTime() != 0 || d.sim.Gravity() != 0 {
		t.Errorf("run state not reset: score=%d lastSpawn=%v gravity=%v",
			d.sim.Score(), d.sim.LastSpawnTime(), d.sim.Gravity())
	}
	if d.sim.Best() != 7 {
		t.Errorf("best = %d, want 7 kept across runs", d.sim.Best())
	}
	if st.Count(KindPlayer) != 1 || st.Count(KindObstacle) != 0 {
		t.Errorf("players=%d obstacles=%d after restart", st.Count(KindPlayer), st.Count(KindObstacle))
	}
}

func TestTransitionTable(t *testing.T) {
	modes := []Mode{ModeMainMenu, ModePlaying, ModeGameOver}
	allowed := map[[2]Mode]bool{
		{ModeMainMenu, ModePlaying}: true,
		{ModePlaying, ModeGameOver}: true,
		{ModeGameOver, ModePlaying}: true,
	}

	for _, from := range modes {
		for _, to := range modes {
			want := allowed[[2]Mode{from, to}]
			if got := from.CanTransition(to); got != want {
				t.Errorf("%s -> %s: got %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestVelocityNonIncreasingWithoutJump(t *testing.T) {
	d := newDriver(t, WithCollisionSource(noCollisions))
	d.start(t)

	dts := []float64{frame, 0, 0.05, frame, 0.001, 0, 0.1, frame}
	prev := d.player(t).Velocity.Y
	prevGravity := d.sim.Gravity()
	for i := 0; i < 200; i++ {
		d.step(dts[i%len(dts)], false)
		v := d.player(t).Velocity.Y
		if v > prev {
			t.Fatalf("tick %d: velocity rose from %v to %v", i, prev, v)
		}
		if g := d.sim.Gravity(); g > prevGravity {
			t.Fatalf("tick %d: gravity rose from %v to %v", i, prevGravity, g)
		}
		prev, prevGravity = v, d.sim.Gravity()
	}
}

func TestJumpResetsVelocity(t *testing.T) {
	d := newDriver(t, WithCollisionSource(noCollisions))
	d.start(t)
	for i := 0; i < 90; i++ {
		d.step(frame, false)
	}
	if d.player(t).Velocity.Y >= 0 {
		t.Fatal("player should be falling before the jump")
	}

	phys := config.Default().Physics
	out := d.step(frame, true)

	wantGravity := phys.JumpGravityReset - phys.GravityRate*frame
	if math.Abs(d.sim.Gravity()-wantGravity) > 1e-9 {
		t.Errorf("gravity = %v, want %v", d.sim.Gravity(), wantGravity)
	}
	if v, want := d.player(t).Velocity.Y, phys.JumpVelocity+wantGravity; math.Abs(v-want) > 1e-9 {
		t.Errorf("velocity = %v, want %v", v, want)
	}
	sounds := eventsOf[Sound](out.Events)
	if len(sounds) != 1 || sounds[0].Name != SoundJump {
		t.Errorf("sounds = %v, want one jump", sounds)
	}
}

func TestSpawnGeometry(t *testing.T) {
	cfg := config.Default()
	d := newDriver(t, WithRandom(FixedRandom{Frac: 0.75}), WithCollisionSource(noCollisions))
	d.start(t)

	d.sim.Tick(core.TickInput{DT: 0, Now: cfg.Obstacles.SpawnInterval + 0.5})

	obs := obstacles(d.sim)
	if len(obs) != 2 {
		t.Fatalf("obstacles = %d, want 2", len(obs))
	}
	g := cfg.Obstacles.GapMin + 0.75*(cfg.Obstacles.GapMax-cfg.Obstacles.GapMin)
	offset := cfg.Obstacles.Gap/2 + cfg.Obstacles.Height/2

	upper, lower := obs[0], obs[1]
	if upper.Transform.Pos != vec(cfg.Obstacles.SpawnX, g+offset) {
		t.Errorf("upper at %v, want (%v, %v)", upper.Transform.Pos, cfg.Obstacles.SpawnX, g+offset)
	}
	if lower.Transform.Pos != vec(cfg.Obstacles.SpawnX, g-offset) {
		t.Errorf("lower at %v, want (%v, %v)", lower.Transform.Pos, cfg.Obstacles.SpawnX, g-offset)
	}
	for _, e := range obs {
		if e.Velocity != vec(-cfg.Obstacles.Speed, 0) {
			t.Errorf("obstacle velocity = %v", e.Velocity)
		}
	}

	// The opening between the members is exactly the configured gap.
	opening := upper.Bounds().Min().Y - lower.Bounds().Max().Y
	if math.Abs(opening-cfg.Obstacles.Gap) > 1e-9 {
		t.Errorf("opening = %v, want %v", opening, cfg.Obstacles.Gap)
	}

	// Both members move together.
	d.sim.Tick(core.TickInput{DT: 0.1, Now: cfg.Obstacles.SpawnInterval + 0.6})
	if upper.Transform.Pos.X != lower.Transform.Pos.X {
		t.Errorf("members drifted apart: %v vs %v", upper.Transform.Pos.X, lower.Transform.Pos.X)
	}
	if want := cfg.Obstacles.SpawnX - cfg.Obstacles.Speed*0.1; math.Abs(upper.Transform.Pos.X-want) > 1e-9 {
		t.Errorf("x = %v, want %v", upper.Transform.Pos.X, want)
	}
}

func TestSpawnSpacing(t *testing.T) {
	d := newDriver(t, WithCollisionSource(noCollisions))
	d.start(t)

	interval := config.Default().Obstacles.SpawnInterval
	var spawns []float64
	last := d.sim.LastSpawnTime()
	dts := []float64{frame, 0.1, 0.033, 0, frame, 0.07}

	for i := 0; i < 3000; i++ {
		d.step(dts[i%len(dts)], i%25 == 0)
		ls := d.sim.LastSpawnTime()
		if ls < last {
			t.Fatalf("tick %d: last spawn time went back from %v to %v", i, last, ls)
		}
		if ls != last {
			spawns = append(spawns, ls)
		}
		last = ls
	}

	if len(spawns) < 2 {
		t.Fatalf("only %d spawns in a long run", len(spawns))
	}
	for i := 1; i < len(spawns); i++ {
		if gap := spawns[i] - spawns[i-1]; gap <= interval {
			t.Errorf("spawns %d and %d only %v apart", i-1, i, gap)
		}
	}
}

func TestDecorWrap(t *testing.T) {
	cfg := config.Default()
	d := newDriver(t, WithCollisionSource(noCollisions))
	d.start(t)

	var cloud, building *Entity
	d.sim.Store().Each(KindDecor, func(e *Entity) {
		switch {
		case e.Layer == LayerFar && cloud == nil:
			cloud = e
		case e.Layer == LayerNear && building == nil:
			building = e
		}
	})
	if cloud == nil || building == nil {
		t.Fatal("missing decor layers")
	}

	cloud.Transform.Pos.X = -669
	building.Transform.Pos.X = -799
	d.step(0.1, false)

	if cloud.Transform.Pos.X != cfg.Decor.Clouds.WrapTo {
		t.Errorf("cloud x = %v, want %v", cloud.Transform.Pos.X, cfg.Decor.Clouds.WrapTo)
	}
	if building.Transform.Pos.X != cfg.Decor.Buildings.WrapTo {
		t.Errorf("building x = %v, want %v", building.Transform.Pos.X, cfg.Decor.Buildings.WrapTo)
	}

	// Not yet past the threshold: plain scroll.
	cloud.Transform.Pos.X = 0
	d.step(0.1, false)
	if want := -cfg.Decor.Clouds.Speed * 0.1; math.Abs(cloud.Transform.Pos.X-want) > 1e-9 {
		t.Errorf("cloud x = %v, want %v", cloud.Transform.Pos.X, want)
	}
}

func TestDecorPlacement(t *testing.T) {
	cfg := config.Default()
	s := New(cfg, 42)
	s.Tick(core.TickInput{DT: frame, Now: frame, Jump: true})

	s.Store().Each(KindDecor, func(e *Entity) {
		var l config.Layer
		switch e.Layer {
		case LayerFar:
			l = cfg.Decor.Clouds
			if e.Shape != ShapeEllipse {
				t.Errorf("cloud %d shape = %d", e.ID, e.Shape)
			}
		case LayerNear:
			l = cfg.Decor.Buildings
			if e.Anchor != AnchorBottomLeft {
				t.Errorf("building %d not anchored bottom-left", e.ID)
			}
		default:
			t.Fatalf("decor %d without layer", e.ID)
		}
		p := e.Transform.Pos
		if p.X < l.XMin || p.X > l.XMax || p.Y < l.YMin || p.Y > l.YMax {
			t.Errorf("decor %d at %v outside its spawn range", e.ID, p)
		}
		if z := e.Transform.Depth; z < l.DepthMin || z > l.DepthMax {
			t.Errorf("decor %d depth %v outside [%v, %v]", e.ID, z, l.DepthMin, l.DepthMax)
		}
	})
}

func TestDTClamp(t *testing.T) {
	phys := config.Default().Physics
	d := newDriver(t, WithCollisionSource(noCollisions))
	d.start(t)

	d.sim.Tick(core.TickInput{DT: -1, Now: 1})
	if d.sim.Gravity() != 0 {
		t.Errorf("gravity = %v after a negative dt, want 0", d.sim.Gravity())
	}

	d.sim.Tick(core.TickInput{DT: 30, Now: 2})
	if want := -phys.GravityRate * phys.MaxDT; math.Abs(d.sim.Gravity()-want) > 1e-9 {
		t.Errorf("gravity = %v after a long dt, want %v", d.sim.Gravity(), want)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() (Snapshot, int) {
		s := New(config.Default(), 12345)
		now := 0.0
		runs := 0
		for i := 0; i < 4000; i++ {
			now += frame
			out := s.Tick(core.TickInput{DT: frame, Now: now, Jump: i%18 == 0})
			runs += len(eventsOf[Crashed](out.Events))
		}
		return s.Snapshot(), runs
	}

	snap1, runs1 := run()
	snap2, runs2 := run()

	if runs1 != runs2 {
		t.Errorf("crash counts differ: %d vs %d", runs1, runs2)
	}
	if !reflect.DeepEqual(snap1, snap2) {
		t.Error("snapshots differ for the same seed and inputs")
	}
}

func TestScoreNeverNegative(t *testing.T) {
	s := New(config.Default(), 7)
	now := 0.0
	for i := 0; i < 5000; i++ {
		now += frame
		out := s.Tick(core.TickInput{DT: frame, Now: now, Jump: i%23 == 0})
		if out.Score < 0 {
			t.Fatalf("tick %d: score %d", i, out.Score)
		}
		if out.Mode == ModePlaying && s.Store().Count(KindPlayer) > 1 {
			t.Fatalf("tick %d: %d players", i, s.Store().Count(KindPlayer))
		}
		if out.Mode != ModePlaying && s.Store().Count(KindPlayer) != 0 {
			t.Fatalf("tick %d: player alive in %s", i, out.Mode)
		}
	}
	if s.Ticks() != 5000 {
		t.Errorf("ticks = %d, want 5000", s.Ticks())
	}
}
