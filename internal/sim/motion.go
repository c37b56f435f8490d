package sim

// motionSystem integrates the player, obstacles and decor for one tick.
//
// The player's accumulator is not scaled by dt when added to velocity; it is a
// per-tick acceleration that itself grows with time. A jump zeroes it and sets
// a fixed upward velocity.
func motionSystem(st *State, t *tick) {
	dt := t.in.DT
	phys := t.cfg.Physics

	if p, ok := st.Store.Player(); ok {
		if t.in.Jump {
			st.Gravity = phys.JumpGravityReset
			p.Velocity.Y = phys.JumpVelocity
			t.emit(Sound{Name: SoundJump})
		}

		st.Gravity -= phys.GravityRate * dt
		p.Velocity.Y += st.Gravity
		p.Transform.Pos = p.Transform.Pos.Add(p.Velocity.Scale(dt))
	}

	st.Store.Each(KindObstacle, func(e *Entity) {
		e.Transform.Pos.X += e.Velocity.X * dt
	})

	clouds := t.cfg.Decor.Clouds
	buildings := t.cfg.Decor.Buildings
	st.Store.Each(KindDecor, func(e *Entity) {
		switch e.Layer {
		case LayerFar:
			scrollWrap(e, clouds.Speed*dt, clouds.WrapAt, clouds.WrapTo)
		case LayerNear:
			scrollWrap(e, buildings.Speed*dt, buildings.WrapAt, buildings.WrapTo)
		}
	})
}

// scrollWrap moves a decor entity left and re-enters it on the right once it
// passes -wrapAt.
func scrollWrap(e *Entity, dx, wrapAt, wrapTo float64) {
	e.Transform.Pos.X -= dx
	if e.Transform.Pos.X < -wrapAt {
		e.Transform.Pos.X = wrapTo
	}
}
