// Package scene loads the YAML manifest the demo world is populated from:
// the player spawn plus NPC and billboard definitions. Rendering data
// (meshes, textures) is deliberately absent; that belongs to the renderer's
// own assets.
package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/promenade/engine/internal/component"
	"github.com/promenade/engine/internal/core/ecs"
	"github.com/promenade/engine/internal/world"
)

// Manifest is the parsed scene file.
type Manifest struct {
	Player     PlayerSpawn    `yaml:"player"`
	NPCs       []NPCDef       `yaml:"npcs"`
	Billboards []BillboardDef `yaml:"billboards"`
}

type PlayerSpawn struct {
	X     float64 `yaml:"x"`
	Z     float64 `yaml:"z"`
	Speed float64 `yaml:"speed"`
}

type NPCDef struct {
	Name   string   `yaml:"name"`
	X      float64  `yaml:"x"`
	Z      float64  `yaml:"z"`
	Script string   `yaml:"script"`
	Radius float64  `yaml:"radius"`
	Lines  []string `yaml:"lines"`
}

type BillboardDef struct {
	Title  string  `yaml:"title"`
	Body   string  `yaml:"body"`
	X      float64 `yaml:"x"`
	Z      float64 `yaml:"z"`
	Radius float64 `yaml:"radius"`
}

// Stats summarizes what Populate built.
type Stats struct {
	NPCs       int
	Billboards int
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes a manifest from YAML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse scene manifest: %w", err)
	}
	return &m, nil
}

// Populate builds the manifest's entities through the entity manager: one
// player with transform and velocity, then every NPC and billboard.
func (m *Manifest) Populate(em *world.EntityManager) (Stats, error) {
	var stats Stats
	w := em.World()

	player := w.CreatePlayerEntity()
	pt, err := w.Factory().Create(ecs.KindTransform, m.Player.X, 0.0, m.Player.Z)
	if err != nil {
		return stats, fmt.Errorf("populate player: %w", err)
	}
	pv, err := w.Factory().Create(ecs.KindVelocity)
	if err != nil {
		return stats, fmt.Errorf("populate player: %w", err)
	}
	w.AddComponent(player.ID, pt)
	w.AddComponent(player.ID, pv)

	for _, def := range m.NPCs {
		e, err := em.SpawnNPC(def.Name, world.Point{X: def.X, Z: def.Z})
		if err != nil {
			return stats, err
		}
		if d, ok := e.Component(ecs.KindDialogue).(*component.Dialogue); ok {
			d.Script = def.Script
			d.Lines = append([]string(nil), def.Lines...)
			if def.Radius > 0 {
				d.Radius = def.Radius
			}
		}
		stats.NPCs++
	}

	for _, def := range m.Billboards {
		e, err := em.SpawnBillboard(def.Title, def.Body, world.Point{X: def.X, Z: def.Z})
		if err != nil {
			return stats, err
		}
		if b, ok := e.Component(ecs.KindBillboard).(*component.Billboard); ok {
			if def.Radius > 0 {
				b.Radius = def.Radius
			}
		}
		stats.Billboards++
	}

	return stats, nil
}
