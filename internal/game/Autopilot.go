package game

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

const pilotFunction = "nextDirection"

// DefaultPilotScript chases the food along the x axis first, then y. When
// that step would reverse the snake it turns toward the food's other axis,
// or toward the roomier half of the board when the food is straight behind.
const DefaultPilotScript = `
local steps = {
	up = {Dx = 0, Dy = -1},
	down = {Dx = 0, Dy = 1},
	left = {Dx = -1, Dy = 0},
	right = {Dx = 1, Dy = 0},
}
local opposite = {up = "down", down = "up", left = "right", right = "left"}

local function toward(state, horizontalFirst)
	local h, v
	if state.foodX > state.headX then h = "right" elseif state.foodX < state.headX then h = "left" end
	if state.foodY > state.headY then v = "down" elseif state.foodY < state.headY then v = "up" end
	if horizontalFirst then return h or v end
	return v or h
end

function nextDirection(state)
	local want = toward(state, true)
	if want == nil then
		return {Dx = 0, Dy = 0}
	end
	if want == opposite[state.direction] then
		want = toward(state, false)
	end
	if want == opposite[state.direction] then
		if want == "left" or want == "right" then
			if state.headY < state.cells / 2 then want = "down" else want = "up" end
		else
			if state.headX < state.cells / 2 then want = "right" else want = "left" end
		end
	end
	return steps[want]
end
`

var ErrPilotScript = errors.New("autopilot script error")

// LuaPilot evaluates a Lua strategy once per tick. Not safe for concurrent use;
// the game loop is its only caller.
type LuaPilot struct {
	state *lua.LState
}

func NewLuaPilot(script string) (*LuaPilot, error) {
	luaState := lua.NewState()
	if err := luaState.DoString(script); err != nil {
		luaState.Close()
		return nil, fmt.Errorf("%w: could not parse lua strategy definition: %v", ErrPilotScript, err)
	}
	return newLuaPilot(luaState)
}

func NewLuaPilotFromFile(path string) (*LuaPilot, error) {
	luaState := lua.NewState()
	if err := luaState.DoFile(path); err != nil {
		luaState.Close()
		return nil, fmt.Errorf("%w: could not load %s: %v", ErrPilotScript, path, err)
	}
	return newLuaPilot(luaState)
}

func newLuaPilot(luaState *lua.LState) (*LuaPilot, error) {
	if luaState.GetGlobal(pilotFunction).Type() != lua.LTFunction {
		luaState.Close()
		return nil, fmt.Errorf("%w: script does not define %s(state)", ErrPilotScript, pilotFunction)
	}
	return &LuaPilot{state: luaState}, nil
}

// NextDirection hands the script the board in cell coordinates and converts
// the returned {Dx, Dy} table. A zero or diagonal delta means no input.
func (p *LuaPilot) NextDirection(snapshot Snapshot) (Direction, error) {
	stateTable := p.stateTable(snapshot)

	err := p.state.CallByParam(lua.P{
		Fn:      p.state.GetGlobal(pilotFunction),
		NRet:    1,
		Protect: true,
	}, stateTable)
	if err != nil {
		return DirNone, fmt.Errorf("%w: could not execute lua strategy definition: %v", ErrPilotScript, err)
	}

	luaReturn := p.state.Get(-1)
	p.state.Pop(1)

	if luaReturn == lua.LNil {
		return DirNone, nil
	}
	luaTable, ok := luaReturn.(*lua.LTable)
	if !ok {
		return DirNone, fmt.Errorf("%w: lua return value was type %s, expected table", ErrPilotScript, luaReturn.Type())
	}

	return convertLuaDirectionTable(luaTable), nil
}

func (p *LuaPilot) Close() {
	p.state.Close()
}

func (p *LuaPilot) stateTable(snapshot Snapshot) *lua.LTable {
	table := p.state.NewTable()

	headCol, headRow, _ := snapshot.HeadCell()
	foodCol, foodRow, _ := snapshot.FoodCell()

	p.state.SetField(table, "headX", lua.LNumber(headCol))
	p.state.SetField(table, "headY", lua.LNumber(headRow))
	p.state.SetField(table, "foodX", lua.LNumber(foodCol))
	p.state.SetField(table, "foodY", lua.LNumber(foodRow))
	p.state.SetField(table, "cells", lua.LNumber(snapshot.Grid.Cells))
	p.state.SetField(table, "length", lua.LNumber(len(snapshot.Body)))
	p.state.SetField(table, "score", lua.LNumber(snapshot.Score))
	p.state.SetField(table, "direction", lua.LString(snapshot.Direction.String()))

	return table
}

func convertLuaDirectionTable(luaTbl *lua.LTable) Direction {
	dx, dy := 0, 0
	luaTbl.ForEach(func(key, value lua.LValue) {
		if key.Type() != lua.LTString {
			return
		}

		switch lua.LVAsString(key) {
		case "Dy":
			dy = int(lua.LVAsNumber(value))
		case "Dx":
			dx = int(lua.LVAsNumber(value))
		}
	})
	return DirectionFromDelta(dx, dy)
}
