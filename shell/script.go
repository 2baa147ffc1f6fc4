package shell

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/cjoudrey/gluahttp"
	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"

	"github.com/domino14/rummy/solver"
	"github.com/domino14/rummy/tiles"
)

const scriptHTTPTimeout = 30 * time.Second

func getShell(L *lua.LState) *ShellController {
	ud, ok := L.GetGlobal("rummy_shell").(*lua.LUserData)
	if !ok {
		L.RaiseError("rummy_shell is not set")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		L.RaiseError("rummy_shell is not a shell")
	}
	return sc
}

// pushResponse pushes the response's message, or the error prefixed with
// ERROR:, and returns the number of values pushed.
func pushResponse(L *lua.LState, name string, r *Response, err error) int {
	if err != nil {
		log.Err(err).Msg("error-executing-" + name)
		L.Push(lua.LString("ERROR: " + err.Error()))
		return 1
	}
	if r == nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(r.message))
	return 1
}

// pushJSON pushes v as a Lua value, going through its JSON encoding.
func pushJSON(L *lua.LState, v any) int {
	data, err := json.Marshal(v)
	if err != nil {
		L.RaiseError("cannot encode result: %v", err)
	}
	lv, err := luajson.Decode(L, data)
	if err != nil {
		L.RaiseError("cannot decode result: %v", err)
	}
	L.Push(lv)
	return 1
}

func Position(L *lua.LState) int {
	sc := getShell(L)
	r, err := sc.setPosition(&shellcmd{
		cmd:  "position",
		args: strings.Fields(L.CheckString(1)),
	})
	return pushResponse(L, "position", r, err)
}

// Solve returns the solution as a table, or nil and an error message.
func Solve(L *lua.LState) int {
	sc := getShell(L)
	cmd, err := extractFields("solve " + L.OptString(1, ""))
	if err == nil {
		_, err = sc.solve(cmd)
	}
	if err != nil {
		log.Err(err).Msg("error-executing-solve")
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	return pushJSON(L, sc.lastSolution)
}

func Check(L *lua.LState) int {
	ts, err := tiles.ParseList(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
	}
	melds, err := solver.ValidArrangement(ts)
	if err != nil {
		L.ArgError(1, err.Error())
	}
	if melds == nil {
		L.Push(lua.LNil)
		return 1
	}
	return pushJSON(L, melds)
}

func Load(L *lua.LState) int {
	sc := getShell(L)
	_, err := sc.load(&shellcmd{cmd: "load", args: []string{L.CheckString(1)}})
	if err != nil {
		log.Err(err).Msg("error-executing-load")
		L.Push(lua.LNumber(0))
		return 1
	}
	L.Push(lua.LNumber(len(sc.fixtures)))
	return 1
}

func Next(L *lua.LState) int {
	sc := getShell(L)
	_, err := sc.next(&shellcmd{cmd: "next"})
	L.Push(lua.LBool(err == nil))
	return 1
}

func Exec(L *lua.LState) int {
	sc := getShell(L)
	r, err := sc.standardModeSwitch(L.CheckString(1))
	return pushResponse(L, "exec", r, err)
}

func (sc *ShellController) newScriptState() *lua.LState {
	L := lua.NewState()
	luajson.Preload(L)
	L.PreloadModule("http", gluahttp.NewHttpModule(&http.Client{Timeout: scriptHTTPTimeout}).Loader)

	lsc := L.NewUserData()
	lsc.Value = sc
	L.SetGlobal("rummy_shell", lsc)
	L.SetGlobal("rummy_position", L.NewFunction(Position))
	L.SetGlobal("rummy_solve", L.NewFunction(Solve))
	L.SetGlobal("rummy_check", L.NewFunction(Check))
	L.SetGlobal("rummy_load", L.NewFunction(Load))
	L.SetGlobal("rummy_next", L.NewFunction(Next))
	L.SetGlobal("rummy_exec", L.NewFunction(Exec))
	return L
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("need arguments for script")
	}
	L := sc.newScriptState()
	defer L.Close()

	if err := L.DoFile(cmd.args[0]); err != nil {
		log.Err(err).Str("script", cmd.args[0]).Msg("script-error")
		return nil, err
	}
	return nil, nil
}
