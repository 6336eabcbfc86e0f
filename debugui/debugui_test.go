package debugui_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/lumen/debugui"
	"github.com/plus3/lumen/ecs"
	"github.com/plus3/lumen/host/ebitenhost"
	"github.com/plus3/lumen/vmath"
)

var _ ebitenhost.Overlay = (*debugui.EbitenOverlay)(nil)

type scout struct {
	ecs.Base
	Speed  float64
	Lives  int
	Label  string
	Target *ecs.Transform
	Path   []vmath.Vec2
	Armed  bool
	hidden int
}

func TestDescribe(t *testing.T) {
	p := &scout{Speed: 1.5, Lives: 3, Label: "scout", Path: make([]vmath.Vec2, 2), hidden: 7}

	fields := debugui.Describe(p)
	require.Len(t, fields, 6, "embedded Base and unexported fields are skipped")

	assert.Equal(t, debugui.FieldValue{Name: "Speed", Kind: reflect.Float64, Value: "1.500"}, fields[0])
	assert.Equal(t, debugui.FieldValue{Name: "Lives", Kind: reflect.Int, Value: "3"}, fields[1])
	assert.Equal(t, debugui.FieldValue{Name: "Label", Kind: reflect.String, Value: "scout"}, fields[2])
	assert.Equal(t, debugui.FieldValue{Name: "Target", Kind: reflect.Struct, Value: "nil"}, fields[3])
	assert.Equal(t, debugui.FieldValue{Name: "Path", Kind: reflect.Slice, Value: "[2 items]"}, fields[4])
	assert.Equal(t, "false", fields[5].Value)
}

func TestDescribeTransform(t *testing.T) {
	scene := ecs.NewScene("inspect")
	e := scene.CreateEntity("player")
	e.Transform().Position = vmath.V(10, 20)

	fields := debugui.Describe(e.Transform())
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"Position", "Rotation", "Scale"}, names)
	assert.Equal(t, "{10 20}", fields[0].Value)
}

func TestReflectionCacheReuse(t *testing.T) {
	cache := debugui.NewReflectionCache()
	typ := reflect.TypeFor[scout]()
	first := cache.GetFields(typ)
	second := cache.GetFields(typ)
	require.Len(t, first, 6)
	assert.Same(t, &first[0], &second[0])
	assert.Empty(t, cache.GetFields(reflect.TypeFor[int]()))
}

func TestEntityBrowser(t *testing.T) {
	scene := ecs.NewScene("browse")
	player := scene.CreateEntity("player")
	player.Tag = "Player"
	scene.CreateEntity("rock")
	enemy := scene.CreateEntity("enemy")
	enemy.Tag = "Enemy"
	ecs.AddBehavior(enemy, &scout{})

	browser := debugui.NewEntityBrowser(10)
	browser.Refresh(scene)
	all := browser.Filtered()
	require.Len(t, all, 3)
	assert.Equal(t, "player", all[0].Name)
	assert.Equal(t, 2, all[2].Behaviors)

	browser.SetFilter("ENEMY")
	filtered := browser.Filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, enemy.Id(), filtered[0].ID)

	browser.SetFilter("")
	browser.Select(enemy.Id())
	enemy.Destroy()
	scene.Update(ecs.NewUpdateFrame(scene, 0.016))
	browser.Refresh(scene)
	assert.True(t, browser.Selected().IsZero(), "selection clears when the entity is reclaimed")
	assert.Len(t, browser.Filtered(), 2)
}

func TestPerformanceStatsHistory(t *testing.T) {
	perf := debugui.NewPerformanceStats(4)
	assert.Zero(t, perf.AverageFrameTime())

	perf.Record(0.010)
	perf.Record(0.020)
	assert.InDelta(t, 15, perf.AverageFrameTime(), 1e-4)

	for range 6 {
		perf.Record(0.016)
	}
	assert.InDelta(t, 16, perf.AverageFrameTime(), 1e-4, "old samples roll off the ring")
}
