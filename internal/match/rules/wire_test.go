package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMove_具名参数弱类型转换(t *testing.T) {
	m, err := DecodeMove(MovePlaceTile, map[string]any{
		"anchorRow":   1.0,
		"anchorCol":   "3",
		"rotation":    90.0,
		"moveCapital": true,
	})
	require.NoError(t, err)
	assert.Equal(t, PlaceTile{AnchorRow: 1, AnchorCol: 3, Rotation: Rotate90, MoveCapital: true}, m)

	m, err = DecodeMove(MoveSetPlayerColor, map[string]any{"color": "green"})
	require.NoError(t, err)
	assert.Equal(t, SetPlayerColor{Color: ColorGreen}, m)

	m, err = DecodeMove(MoveFillCultCard, map[string]any{"tokenTypes": []any{0.0, 2.0}})
	require.NoError(t, err)
	assert.Equal(t, FillCultCard{TokenTypes: []int{0, 2}}, m)
}

func TestDecodeMove_未知操作(t *testing.T) {
	_, err := DecodeMove("teleport", nil)
	assert.ErrorIs(t, err, ErrInvalidMove)

	_, err = DecodeMove(MovePerformAction, map[string]any{"actionType": "dance"})
	assert.ErrorIs(t, err, ErrInvalidMove)

	_, err = DecodeMove(MovePickCultureCard, map[string]any{"index": "first"})
	assert.ErrorIs(t, err, ErrInvalidMove)
}

func TestDecodeMove_行动具名参数(t *testing.T) {
	m, err := DecodeMove(MovePerformAction, map[string]any{
		"actionType": "activateBuildingOrWonder",
		"index":      1,
		"tech":       map[string]any{"row": 0.0, "col": 2.0},
	})
	require.NoError(t, err)
	pa, ok := m.(PerformAction)
	require.True(t, ok)
	a, ok := pa.Action.(Activate)
	require.True(t, ok)
	assert.Equal(t, 1, a.Index)
	require.NotNil(t, a.Tech)
	assert.Equal(t, TechCell{Row: 0, Col: 2}, *a.Tech)
	assert.Nil(t, a.Mirror)
}

func TestDecodeMove_行动位置参数(t *testing.T) {
	m, err := DecodeMove(MovePerformAction, map[string]any{
		"actionType": "soldier",
		"args":       []any{"worker-0-1", 2.0, 5.0, true},
	})
	require.NoError(t, err)
	assert.Equal(t, PerformAction{Action: Soldier{WorkerID: "worker-0-1", Row: 2, Col: 5, FoundCity: true}}, m)
}

func TestDecodePositionalAction_各类型(t *testing.T) {
	a, err := DecodePositionalAction(ActionActivate, []any{105.0, 2.0})
	require.NoError(t, err)
	act := a.(Activate)
	assert.True(t, act.Wonder)
	assert.Equal(t, 5, act.Index)
	assert.Equal(t, []int{2}, act.Rows)
	require.NotNil(t, act.Direction)
	assert.Equal(t, 2, *act.Direction)
	assert.Equal(t, &ActivationRef{Index: 2}, act.Reenable)

	a, err = DecodePositionalAction(ActionActivate, []any{0.0, "worker-0-2"})
	require.NoError(t, err)
	assert.Equal(t, "worker-0-2", a.(Activate).WorkerID)

	a, err = DecodePositionalAction(ActionBuildWonder, []any{"wonder-I-x", []any{[]any{0.0, 1.0}, []any{1.0, 1.0}}})
	require.NoError(t, err)
	assert.Equal(t, []TechCell{{Row: 0, Col: 1}, {Row: 1, Col: 1}}, a.(BuildWonder).FreeTechs)

	a, err = DecodePositionalAction(ActionBuildWonder, []any{"wonder-IV-y", 2.0, nil, true})
	require.NoError(t, err)
	bw := a.(BuildWonder)
	require.NotNil(t, bw.CubesToRemove)
	assert.Equal(t, 2, *bw.CubesToRemove)
	assert.True(t, bw.UseGreece)

	a, err = DecodePositionalAction(ActionDevelopTechnology, []any{1.0, 2.0, nil, nil, "1"})
	require.NoError(t, err)
	dt := a.(DevelopTechnology)
	assert.Equal(t, []TechCell{{Row: 1, Col: 2}}, dt.Techs)
	require.NotNil(t, dt.Mirror)
	assert.Equal(t, 1, *dt.Mirror)

	a, err = DecodePositionalAction(ActionStartGoldenAge, []any{"judgement-richest"})
	require.NoError(t, err)
	assert.Equal(t, StartGoldenAge{JudgementID: "judgement-richest"}, a)

	_, err = DecodePositionalAction(ActionExplorer, []any{"worker-0-0"})
	assert.ErrorIs(t, err, ErrInvalidMove)
	_, err = DecodePositionalAction(ActionCulture, []any{1, 2, 3, 4, 5, 6})
	assert.ErrorIs(t, err, ErrInvalidMove)
}

func TestDecodeMove_小数参数被拒绝而不是截断(t *testing.T) {
	_, err := DecodeMove(MovePickCultureCard, map[string]any{"index": 1.7})
	assert.ErrorIs(t, err, ErrInvalidMove)

	_, err = DecodeMove(MovePerformAction, map[string]any{
		"actionType": "soldier",
		"args":       []any{"worker-0-1", 1.7, 5.0},
	})
	assert.ErrorIs(t, err, ErrInvalidMove)

	_, err = DecodePositionalAction(ActionArtist, []any{"worker-0-0", 0.5})
	assert.ErrorIs(t, err, ErrInvalidMove)
	_, err = DecodePositionalAction(ActionDevelopTechnology, []any{[]any{[]any{0.0, 1.5}}})
	assert.ErrorIs(t, err, ErrInvalidMove)

	_, ok := asInt(1.7)
	assert.False(t, ok)
	n, ok := asInt(2.0)
	require.True(t, ok)
	assert.Equal(t, 2, n)

	m, err := DecodeMove(MovePickCultureCard, map[string]any{"index": 2.0})
	require.NoError(t, err)
	assert.Equal(t, PickCultureCard{Index: 2}, m)
}
