// Package session identifies players between games and tracks the players
// connected to a shared server.
package session

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// ID identifies a play session. Personal bests are grouped by it.
type ID string

const (
	idSuffixLen = 9
	base36      = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// NewID builds an identifier of the form "<unix-millis>-<9 base36 chars>".
func NewID(now time.Time, rng *rand.Rand) ID {
	var sb strings.Builder
	sb.Grow(24)
	sb.WriteString(strconv.FormatInt(now.UnixMilli(), 10))
	sb.WriteByte('-')
	for i := 0; i < idSuffixLen; i++ {
		sb.WriteByte(base36[rng.Intn(len(base36))])
	}
	return ID(sb.String())
}

// Valid reports whether id has the shape NewID produces.
func (id ID) Valid() bool {
	millis, suffix, ok := strings.Cut(string(id), "-")
	if !ok || millis == "" || len(suffix) != idSuffixLen {
		return false
	}
	if _, err := strconv.ParseInt(millis, 10, 64); err != nil {
		return false
	}
	for _, c := range suffix {
		if !strings.ContainsRune(base36, c) {
			return false
		}
	}
	return true
}

// String returns the identifier as a plain string.
func (id ID) String() string {
	return string(id)
}
