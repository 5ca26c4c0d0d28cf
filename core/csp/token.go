package csp

import (
	"runtime"
	"strconv"
)

// Token identifies a logical receive point in a process' run logic.
// Consecutive receives with the same token keep previously rejected
// messages deferred; a receive with a different token replays them.
type Token string

// Here returns a Token for the caller's source location.
func Here() Token { return callerToken(2) }

func callerToken(skip int) Token {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	return Token(file + ":" + strconv.Itoa(line))
}
