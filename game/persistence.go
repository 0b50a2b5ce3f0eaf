package game

import (
	"errors"
	"io/fs"
	"log/slog"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flowtrails/config"
	"github.com/pthm-cable/flowtrails/state"
)

// loadGroups returns the saved groups when the state file decodes and
// validates, and a copy of the configured groups otherwise.
func (g *Game) loadGroups() *config.GroupSet {
	fallback := g.cfg.Groups.Clone()
	if g.sink.Path == "" {
		return fallback
	}

	fragment, err := g.sink.Read()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("reading state", "path", g.sink.Path, "error", err)
		}
		return fallback
	}

	groups, err := state.Decode(fragment)
	if err == nil {
		err = groups.Validate()
	}
	if err != nil || groups.Len() == 0 {
		slog.Warn("ignoring saved state", "path", g.sink.Path, "error", err)
		return fallback
	}

	g.fragment = strings.TrimSpace(fragment)
	slog.Info("state restored", "path", g.sink.Path, "groups", groups.Len())
	return groups
}

// syncAnimationPhase copies each group's live animation position into its
// configuration so a restored state resumes mid-animation.
func (g *Game) syncAnimationPhase() {
	for id, cfg := range g.groups.All() {
		if grp := g.sim.Group(id); grp != nil {
			a := grp.Animation()
			cfg.ColorAnimation.Index = a.Index
			cfg.ColorAnimation.Elapsed = a.Elapsed
		}
	}
}

// shareFragment encodes the current groups.
func (g *Game) shareFragment() (string, error) {
	g.syncAnimationPhase()
	return state.Encode(g.groups)
}

// persist hands the current fragment to the debouncer if it changed.
func (g *Game) persist() {
	fragment, err := g.shareFragment()
	if err != nil {
		slog.Error("encoding state", "error", err)
		return
	}
	if fragment == g.fragment {
		return
	}
	g.fragment = fragment
	g.debouncer.Trigger(fragment)
}

// onGroupsChanged applies an edited group set to the simulation.
func (g *Game) onGroupsChanged() {
	g.sim.SyncGroups(g.groups.IDs())
	g.persist()
}

// saveNow writes the state without waiting for the debounce delay.
func (g *Game) saveNow() {
	if g.sink.Path == "" {
		g.setStatus("no state file configured")
		return
	}
	g.persist()
	g.debouncer.Flush()
	g.setStatus("saved")
}

// copyShareLink puts "#<fragment>" on the clipboard.
func (g *Game) copyShareLink() {
	fragment, err := g.shareFragment()
	if err != nil {
		slog.Error("encoding state", "error", err)
		g.setStatus("copy failed")
		return
	}
	rl.SetClipboardText("#" + fragment)
	g.setStatus("link copied")
}
