package systems

import "github.com/pthm-cable/flowtrails/telemetry"

// SystemInfo describes a simulation phase for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this phase does
}

// SystemRegistry holds metadata about the phases of a tick.
// This centralizes naming so the HUD and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known phases.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds the phases in tick order.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: telemetry.PhasePopulation, Name: "Population", Description: "Spawns and despawns toward the target amount"})
	r.Register(SystemInfo{ID: telemetry.PhaseAnimation, Name: "Color", Description: "Advances the gradient animation"})
	r.Register(SystemInfo{ID: telemetry.PhaseEntities, Name: "Entities", Description: "Steers, integrates and decays entities"})
	r.Register(SystemInfo{ID: telemetry.PhaseCleanup, Name: "Cleanup", Description: "Removes finished entities"})
	r.Register(SystemInfo{ID: telemetry.PhaseDraw, Name: "Draw", Description: "Draws trails"})
	r.Register(SystemInfo{ID: telemetry.PhaseTelemetry, Name: "Telemetry", Description: "Collects window statistics"})
}

// Register adds a phase to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns phase info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a phase ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered phases.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all phase IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
