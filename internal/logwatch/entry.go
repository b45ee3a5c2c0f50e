package logwatch

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/osse101/RelicWatch_Go/internal/domain"
)

var (
	ErrUnparsable  = errors.New(ErrMsgUnparsable)
	ErrUnknownKind = errors.New(ErrMsgUnknownKind)
)

var (
	entryPattern  = regexp.MustCompile(`^(?:\d+\.\d+ )?([A-Za-z]+) \[([A-Za-z]+)\]: (.*)$`)
	scriptPattern = regexp.MustCompile(`^([A-Za-z]+)\.lua: (.*)$`)
	squadPattern  = regexp.MustCompile(`Num session players: (\d+)`)
)

type systemLevel struct {
	system, level string
}

var kinds = map[systemLevel]Kind{
	{"Sys", "Info"}:     KindSysInfo,
	{"Sys", "Warning"}:  KindSysWarning,
	{"Sys", "Error"}:    KindSysError,
	{"Net", "Info"}:     KindNetInfo,
	{"Net", "Error"}:    KindNetError,
	{"Phys", "Info"}:    KindPhysInfo,
	{"Phys", "Warning"}: KindPhysWarning,
	{"Phys", "Error"}:   KindPhysError,
	{"Snd", "Info"}:     KindSndInfo,
	{"Gfx", "Info"}:     KindGfxInfo,
	{"Input", "Info"}:   KindInputInfo,
	{"AI", "Info"}:      KindAIInfo,
	{"Game", "Info"}:    KindGameInfo,
	{"Game", "Warning"}: KindGameWarning,
	{"Anim", "Info"}:    KindAnimInfo,
	{"Script", "Info"}:  KindScriptInfo,
}

// Entry is one parsed game log line. Script is only set for script entries,
// in which case Text holds the script's message.
type Entry struct {
	Kind   Kind
	Script string
	Text   string
}

// Parse parses one line of the game log
func Parse(line string) (Entry, error) {
	line = strings.TrimSpace(line)
	m := entryPattern.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, ErrUnparsable
	}

	system, level, rest := strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), strings.TrimSpace(m[3])
	kind, ok := kinds[systemLevel{system, level}]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s [%s]", ErrUnknownKind, system, level)
	}

	if kind != KindScriptInfo {
		return Entry{Kind: kind, Text: rest}, nil
	}

	sm := scriptPattern.FindStringSubmatch(rest)
	if sm == nil {
		return Entry{}, ErrUnparsable
	}
	return Entry{Kind: kind, Script: strings.TrimSpace(sm[1]), Text: strings.TrimSpace(sm[2])}, nil
}

// IsRewardsReady reports whether the reward selection screen just opened
func (e Entry) IsRewardsReady() bool {
	return e.Kind == KindScriptInfo && e.Script == ScriptRewardChoice && e.Text == ContentRewardsReady
}

// IsRewardsReceived reports whether the reward selection finished
func (e Entry) IsRewardsReceived() bool {
	return e.Kind == KindScriptInfo && e.Script == ScriptRewardChoice && e.Text == ContentRewardsReceived
}

// ParseSquadSize extracts the player count of a session announcement
func ParseSquadSize(text string) (int, bool) {
	m := squadPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || !domain.ValidSquadSize(n) {
		return 0, false
	}
	return n, true
}
