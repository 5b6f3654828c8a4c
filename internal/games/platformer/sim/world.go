package sim

import (
	"math"
	"slices"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/pyjump/internal/core"
	"github.com/vovakirdan/pyjump/internal/games/platformer/level"
)

// Tags of the objects kept in the broadphase space.
const (
	tagPlatform = "platform"
	tagObstacle = "obstacle"
	tagEnemy    = "enemy"
	tagGuardian = "guardian"
	tagCoin     = "coin"
	tagPickup   = "pickup"
	tagGoal     = "goal"
	tagCursor   = "cursor"
)

const (
	cellSize = 32
	// queryMargin widens queries past resolv's cell rounding so sub-pixel
	// overlaps on a cell boundary are never missed.
	queryMargin = 2
)

// world mirrors an arena in a resolv space. It answers "which objects may
// overlap this rectangle"; exact overlap is decided on core.Rect.
// Object slices run parallel to the arena lists they mirror.
type world struct {
	space     *resolv.Space
	cursor    *resolv.Object
	platforms []*resolv.Object
	obstacles []*resolv.Object
	enemies   []*resolv.Object
	coins     []*resolv.Object
	pickups   []*resolv.Object
	guardian  *resolv.Object
	goal      *resolv.Object
}

func newWorld(a *level.Arena, coinRadius, pickupRadius float64) *world {
	w := &world{
		space:  resolv.NewSpace(int(math.Ceil(a.Width))+cellSize, int(math.Ceil(a.Height))+cellSize, cellSize, cellSize),
		cursor: resolv.NewObject(0, 0, 1, 1, tagCursor),
	}
	w.space.Add(w.cursor)

	for _, p := range a.Platforms {
		w.platforms = append(w.platforms, w.add(p, tagPlatform))
	}
	for _, o := range a.Obstacles {
		w.obstacles = append(w.obstacles, w.add(o, tagObstacle))
	}
	for _, e := range a.Enemies {
		w.enemies = append(w.enemies, w.add(e.Rect, tagEnemy))
	}
	for _, c := range a.Coins {
		w.coins = append(w.coins, w.add(core.RectAround(c, coinRadius), tagCoin))
	}
	for _, h := range a.HealthPickups {
		w.pickups = append(w.pickups, w.add(core.RectAround(h, pickupRadius), tagPickup))
	}
	w.guardian = w.add(a.Guardian.Rect, tagGuardian)
	w.goal = w.add(a.GoalRect(), tagGoal)
	return w
}

func (w *world) add(r core.Rect, tag string) *resolv.Object {
	obj := resolv.NewObject(r.X, r.Y, r.W, r.H, tag)
	obj.SetShape(resolv.NewRectangle(0, 0, r.W, r.H))
	w.space.Add(obj)
	return obj
}

// move repositions a dynamic object after its rect changed.
func move(obj *resolv.Object, r core.Rect) {
	obj.X, obj.Y = r.X, r.Y
	obj.Update()
}

// candidates returns the objects with tag sharing a cell with r.
func (w *world) candidates(r core.Rect, tag string) map[*resolv.Object]struct{} {
	w.cursor.X = r.X - queryMargin
	w.cursor.Y = r.Y - queryMargin
	w.cursor.W = r.W + 2*queryMargin
	w.cursor.H = r.H + 2*queryMargin
	w.cursor.Update()

	check := w.cursor.Check(0, 0, tag)
	if check == nil {
		return nil
	}
	out := make(map[*resolv.Object]struct{}, len(check.Objects))
	for _, obj := range check.Objects {
		out[obj] = struct{}{}
	}
	return out
}

// near returns, in list order, the indices of objs sharing a cell with r.
func (w *world) near(r core.Rect, tag string, objs []*resolv.Object) []int {
	cand := w.candidates(r, tag)
	if len(cand) == 0 {
		return nil
	}
	var out []int
	for i, obj := range objs {
		if _, ok := cand[obj]; ok {
			out = append(out, i)
		}
	}
	return out
}

// hits returns, in list order, the indices i whose rect(i) overlaps r.
func (w *world) hits(r core.Rect, tag string, objs []*resolv.Object, rect func(int) core.Rect) []int {
	var out []int
	for _, i := range w.near(r, tag, objs) {
		if rect(i).Intersects(r) {
			out = append(out, i)
		}
	}
	return out
}

// overlaps reports whether a single object overlaps r.
func (w *world) overlaps(r core.Rect, tag string, obj *resolv.Object, rect core.Rect) bool {
	_, ok := w.candidates(r, tag)[obj]
	return ok && rect.Intersects(r)
}

// removeCoin drops the i-th coin object.
func (w *world) removeCoin(i int) {
	w.space.Remove(w.coins[i])
	w.coins = slices.Delete(w.coins, i, i+1)
}

// removePickup drops the i-th health pickup object.
func (w *world) removePickup(i int) {
	w.space.Remove(w.pickups[i])
	w.pickups = slices.Delete(w.pickups, i, i+1)
}
