package derive

import (
	"strconv"
	"strings"

	"github.com/lozrp/sheetd/internal/domain/shared"
	"github.com/lozrp/sheetd/internal/domain/sheet"
)

// Engine recomputes derived fields against a FieldStore. All derived writes
// go through SetDerived so recomputes never re-enter themselves.
type Engine struct {
	store sheet.FieldStore
}

// NewEngine creates a derived-stats engine
func NewEngine(store sheet.FieldStore) *Engine {
	if store == nil {
		panic("derive: field store is required")
	}
	return &Engine{store: store}
}

// FieldChanged recomputes whatever derived quantity the field participates
// in. Fields with no derived dependents are a no-op.
func (e *Engine) FieldChanged(name string) {
	switch {
	case strings.HasPrefix(name, "score_"), name == sheet.FieldProfBonus:
		e.RecomputeAbilities()
		e.RecomputeSkills()
	case strings.HasPrefix(name, "prof_"):
		e.RecomputeSkills()
	default:
		for _, pool := range sheet.Pools {
			cur, maxField, temp := sheet.PoolFields(pool)
			if name == cur || name == maxField || name == temp {
				e.RecomputePool(pool)
				return
			}
		}
	}
}

// RecomputeAll recomputes every derived field
func (e *Engine) RecomputeAll() {
	e.RecomputeAbilities()
	e.RecomputeSkills()
	for _, pool := range sheet.Pools {
		e.RecomputePool(pool)
	}
}

// RecomputeAbilities overwrites every modifier field from its raw score.
// Direct edits of a modifier field do not survive a recompute.
func (e *Engine) RecomputeAbilities() {
	for _, attr := range shared.Attributes {
		mod := ModifierFromRaw(e.store.GetValue(attr.ScoreField()))
		e.store.SetDerived(attr.ModifierField(), strconv.Itoa(mod))
	}
}

// RecomputeSkills overwrites every skill total from its linked ability
// modifier, proficiency flag and the proficiency bonus
func (e *Engine) RecomputeSkills() {
	profBonus := e.store.Int(sheet.FieldProfBonus)
	for _, skill := range shared.Skills {
		mod := ModifierFromRaw(e.store.GetValue(skill.Ability().ScoreField()))
		total := SkillTotal(mod, e.store.Bool(skill.ProficiencyField()), profBonus)
		e.store.SetDerived(skill.TotalField(), FormatSigned(total))
	}
}

// RecomputePool clamps a pool's fields, updates the live ranges of its
// current/temp controls, and returns the derived state
func (e *Engine) RecomputePool(pool string) PoolState {
	cur, maxField, temp := sheet.PoolFields(pool)

	state := RecomputePool(e.store.Int(cur), e.store.Int(maxField), e.store.Int(temp))

	// Widen the controls before writing values back, or the write itself
	// would clamp against a stale max.
	e.store.SetRangeMax(cur, state.Max)
	e.store.SetRangeMax(temp, state.RingCap)
	e.store.SetDerived(cur, strconv.Itoa(state.Current))
	e.store.SetDerived(temp, strconv.Itoa(state.Temp))
	e.store.SetEnabled(temp, state.TempAllowed)

	return state
}

// Pool returns the current derived state of a pool without writing back
func (e *Engine) Pool(pool string) PoolState {
	cur, maxField, temp := sheet.PoolFields(pool)
	return RecomputePool(e.store.Int(cur), e.store.Int(maxField), e.store.Int(temp))
}

// Hearts returns the derived hearts view
func (e *Engine) Hearts() HeartsView {
	return Hearts(
		e.store.Int(sheet.FieldHP),
		e.store.Int(sheet.FieldHPMax),
		e.store.Int(sheet.FieldHPTemp),
	)
}

// ApplyStructural is pass one of the deferred-restore protocol: it writes
// every field except the pools' current/temp values, then recomputes once
// so each pool's max (and therefore ring cap) is authoritative.
func (e *Engine) ApplyStructural(data map[string]string) {
	for _, f := range e.store.ListFields() {
		if sheet.IsPoolValueField(f.Name) {
			continue
		}
		e.store.SetDerived(f.Name, data[f.Name])
	}
	e.RecomputeAll()
}

// ApplyResourceValues is pass two: it assigns the withheld current/temp
// values, which now clamp against the max established in pass one.
func (e *Engine) ApplyResourceValues(data map[string]string) {
	for _, pool := range sheet.Pools {
		cur, _, temp := sheet.PoolFields(pool)
		e.store.SetDerived(cur, data[cur])
		e.store.SetDerived(temp, data[temp])
		e.RecomputePool(pool)
	}
}

// Restore applies a full field map via the two-pass protocol. Restoring a
// pool's current before its max would silently clamp the value to the old
// max, so the order here is load-bearing.
func (e *Engine) Restore(data map[string]string) {
	e.ApplyStructural(data)
	e.ApplyResourceValues(data)
}
