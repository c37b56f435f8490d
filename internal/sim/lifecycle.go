package sim

import "github.com/vovakirdan/skyhop/internal/config"

// lifecycleSystem removes obstacles past the off-screen threshold and scores them.
//
// With per-pair scoring the first member of a pair to leave scores and its
// partner does not. Obstacles without a pair always score. No points are awarded
// in a tick that already ended the run, so the score stays at zero.
func lifecycleSystem(st *State, t *tick) {
	oc := t.cfg.Obstacles
	mode := t.cfg.Scoring.Mode

	st.Store.Each(KindObstacle, func(e *Entity) {
		if e.Transform.Pos.X >= oc.DespawnX {
			return
		}
		st.Store.Despawn(e.ID)

		if !leadingMember(st, e.PairID, mode) || t.crashed {
			return
		}
		st.Score++
		t.emit(Scored{Score: st.Score, PairID: e.PairID})
	})
}

// leadingMember records that a member of pair left the screen and reports
// whether it should score.
func leadingMember(st *State, pair uint32, mode config.ScoringMode) bool {
	if mode == config.ScorePerObstacle || pair == 0 {
		return true
	}
	if st.passed[pair] {
		delete(st.passed, pair)
		return false
	}
	st.passed[pair] = true
	return true
}
