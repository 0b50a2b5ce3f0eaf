package game

import (
	"log/slog"

	"github.com/pthm-cable/flowtrails/systems"
	"github.com/pthm-cable/flowtrails/telemetry"
)

// logGroups writes one debug line per group.
func logGroups(groups []systems.GroupStats) {
	for _, gs := range groups {
		speed, _, _, _ := telemetry.Distribution(gs.Speeds)
		slog.Debug("group",
			"group", gs.ID,
			"alive", gs.Alive,
			"decaying", gs.Decaying,
			"speed_mean", speed,
		)
	}
}
