package rules

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"

	"github.com/go-viper/mapstructure/v2"
)

// 客户端提交的 performAction 参数键。
const (
	argActionType = "actionType"
	argPositional = "args"
)

func decodeInto(args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       rejectFractional,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(args)
}

// rejectFractional 整数字段收到带小数的数值时报错，不截断。
func rejectFractional(_, to reflect.Type, data any) (any, error) {
	f, ok := data.(float64)
	if !ok || f == math.Trunc(f) {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return nil, fmt.Errorf("%v is not an integer", f)
	}
	return data, nil
}

func decodeMove[T Move](args map[string]any) (Move, error) {
	var m T
	if err := decodeInto(args, &m); err != nil {
		return nil, invalid(err)
	}
	return m, nil
}

// DecodeMove 把线上的 (name, args) 转成具体操作，未知名称或参数类型不对都算非法操作。
func DecodeMove(name string, args map[string]any) (Move, error) {
	switch name {
	case MoveChooseCivCard:
		return decodeMove[ChooseCivCard](args)
	case MovePlaceTile:
		return decodeMove[PlaceTile](args)
	case MovePerformAction:
		typ, _ := args[argActionType].(string)
		var (
			a   Action
			err error
		)
		if pos, ok := args[argPositional].([]any); ok {
			a, err = DecodePositionalAction(ActionType(typ), pos)
		} else {
			a, err = DecodeAction(ActionType(typ), args)
		}
		if err != nil {
			return nil, err
		}
		return PerformAction{Action: a}, nil
	case MoveCollectGoldenAgeIncome:
		return CollectGoldenAgeIncome{}, nil
	case MovePickCultureCard:
		return decodeMove[PickCultureCard](args)
	case MovePlaceCultureBuilding:
		return decodeMove[PlaceCultureBuilding](args)
	case MoveFillCultCard:
		return decodeMove[FillCultCard](args)
	case MoveSpreadCultToken:
		return decodeMove[SpreadCultToken](args)
	case MoveSkipCultSpread:
		return SkipCultSpread{}, nil
	case MoveSetPlayerColor:
		return decodeMove[SetPlayerColor](args)
	case MoveAcknowledgeGloryDraw:
		return AcknowledgeGloryDraw{}, nil
	}
	return nil, invalid(reject("unknown move: " + name))
}

func decodeAction[T Action](args map[string]any) (Action, error) {
	var a T
	if err := decodeInto(args, &a); err != nil {
		return nil, invalid(err)
	}
	return a, nil
}

// DecodeAction 按具名字段解码一次行动。
func DecodeAction(typ ActionType, args map[string]any) (Action, error) {
	switch typ {
	case ActionExplorer:
		return decodeAction[Explorer](args)
	case ActionSoldier:
		return decodeAction[Soldier](args)
	case ActionBuilder:
		return decodeAction[Builder](args)
	case ActionArtist:
		return decodeAction[Artist](args)
	case ActionBuildWonder:
		return decodeAction[BuildWonder](args)
	case ActionActivate:
		return decodeAction[Activate](args)
	case ActionDevelopTechnology:
		return decodeAction[DevelopTechnology](args)
	case ActionStartGoldenAge:
		return decodeAction[StartGoldenAge](args)
	case ActionCulture:
		return decodeAction[Culture](args)
	}
	return nil, invalid(reject("unknown action: " + string(typ)))
}

// wonderIndexBase 位置参数里 >= 100 的下标指向奇迹。
const wonderIndexBase = 100

// positional 旧客户端的 argA..argE。
type positional [5]any

func (p positional) intAt(i int) (int, bool) { return asInt(p[i]) }

func (p positional) strAt(i int) string {
	switch v := p[i].(type) {
	case string:
		return v
	case nil:
		return ""
	}
	return fmt.Sprint(p[i])
}

func (p positional) boolAt(i int) bool {
	switch v := p[i].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	n, ok := asInt(p[i])
	return ok && n != 0
}

func (p positional) intPtr(i int) *int {
	if n, ok := asInt(p[i]); ok {
		return &n
	}
	return nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	case string:
		i, err := strconv.Atoi(n)
		return i, err == nil
	}
	return 0, false
}

// fractional 位置参数里出现带小数的数值，嵌套列表也算。
func fractional(v any) bool {
	switch n := v.(type) {
	case float64:
		return n != math.Trunc(n)
	case []any:
		return slices.ContainsFunc(n, fractional)
	}
	return false
}

// techPairs 解析 [[row,col],...] 或扁平的 [row,col,row,col]。
func techPairs(v any) ([]TechCell, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	var out []TechCell
	if len(list) > 0 {
		if _, nested := list[0].([]any); !nested {
			if len(list)%2 != 0 {
				return nil, false
			}
			for i := 0; i < len(list); i += 2 {
				r, ok1 := asInt(list[i])
				c, ok2 := asInt(list[i+1])
				if !ok1 || !ok2 {
					return nil, false
				}
				out = append(out, TechCell{Row: r, Col: c})
			}
			return out, true
		}
	}
	for _, item := range list {
		pair, ok := item.([]any)
		if !ok || len(pair) != 2 {
			return nil, false
		}
		r, ok1 := asInt(pair[0])
		c, ok2 := asInt(pair[1])
		if !ok1 || !ok2 {
			return nil, false
		}
		out = append(out, TechCell{Row: r, Col: c})
	}
	return out, true
}

func splitIndex(n int) ActivationRef {
	if n >= wonderIndexBase {
		return ActivationRef{Index: n - wonderIndexBase, Wonder: true}
	}
	return ActivationRef{Index: n}
}

// DecodePositionalAction 兼容旧客户端的五个位置参数，各行动类型的含义不同。
func DecodePositionalAction(typ ActionType, args []any) (Action, error) {
	if len(args) > len(positional{}) {
		return nil, invalid(reject("too many positional args"))
	}
	if slices.ContainsFunc(args, fractional) {
		return nil, invalid(reject(string(typ) + ": non-integer argument"))
	}
	var p positional
	copy(p[:], args)

	bad := func(what string) (Action, error) {
		return nil, invalid(reject(string(typ) + ": bad " + what))
	}

	switch typ {
	case ActionExplorer, ActionSoldier:
		row, ok1 := p.intAt(1)
		col, ok2 := p.intAt(2)
		if !ok1 || !ok2 {
			return bad("destination")
		}
		if typ == ActionExplorer {
			return Explorer{WorkerID: p.strAt(0), Row: row, Col: col, FoundCity: p.boolAt(3)}, nil
		}
		return Soldier{WorkerID: p.strAt(0), Row: row, Col: col, FoundCity: p.boolAt(3)}, nil

	case ActionArtist:
		return Artist{WorkerID: p.strAt(0), Masterpiece: p.intPtr(1)}, nil

	case ActionBuilder:
		return Builder{WorkerID: p.strAt(0), BuildingID: p.strAt(1)}, nil

	case ActionBuildWonder:
		a := BuildWonder{WonderID: p.strAt(0), UseGreece: p.boolAt(3)}
		if pairs, ok := techPairs(p[1]); ok {
			a.FreeTechs = pairs
		} else if r, ok := p.intAt(1); ok {
			if c, ok := p.intAt(2); ok {
				a.FreeTechs = []TechCell{{Row: r, Col: c}}
			} else {
				a.CubesToRemove = &r
			}
		}
		return a, nil

	case ActionActivate:
		n, ok := p.intAt(0)
		if !ok {
			return bad("index")
		}
		ref := splitIndex(n)
		a := Activate{Index: ref.Index, Wonder: ref.Wonder, Mirror: p.intPtr(4)}
		b, hasB := p.intAt(1)
		c, hasC := p.intAt(2)
		switch {
		case hasB && hasC:
			a.Tech = &TechCell{Row: b, Col: c}
			a.Rows = []int{b, c}
			a.ReplaceGlory = &b
			a.KeepDrawn = &c
		case hasB:
			a.Rows = []int{b}
			a.Direction = &b
			r := splitIndex(b)
			a.Reenable = &r
		default:
			a.WorkerID = p.strAt(1)
		}
		return a, nil

	case ActionDevelopTechnology:
		a := DevelopTechnology{Mirror: p.intPtr(4)}
		if pairs, ok := techPairs(p[0]); ok {
			a.Techs = pairs
		} else {
			r, ok1 := p.intAt(0)
			c, ok2 := p.intAt(1)
			if !ok1 || !ok2 {
				return bad("technology")
			}
			a.Techs = []TechCell{{Row: r, Col: c}}
		}
		return a, nil

	case ActionStartGoldenAge:
		return StartGoldenAge{JudgementID: p.strAt(0)}, nil

	case ActionCulture:
		row, ok := p.intAt(0)
		if !ok {
			return bad("row")
		}
		return Culture{Row: row}, nil
	}
	return nil, invalid(reject("unknown action: " + string(typ)))
}
