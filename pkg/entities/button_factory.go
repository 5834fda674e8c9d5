package entities

import (
	"github.com/decker502/waterguns/pkg/components"
	"github.com/decker502/waterguns/pkg/config"
	"github.com/decker502/waterguns/pkg/ecs"
)

// NewToolbarButtonEntity 创建工具栏按钮实体
// 放置类按钮的价格和精灵名取自对应防御塔家族
func NewToolbarButtonEntity(em *ecs.EntityManager, cfg *config.GameConfig, entry config.ToolbarEntry) ecs.EntityID {
	button := &components.ButtonComponent{
		Rect:  entry.Rect,
		Kind:  entry.Kind,
		Label: entry.Label,
	}
	if family, ok := entry.Kind.Family(); ok {
		if stats, ok := cfg.TowerStats(family); ok {
			button.Cost = stats.Cost
			button.SpriteKey = stats.Sprite
		}
	}

	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, button)
	return entityID
}

// NewToolbar 按配置顺序创建全部工具栏按钮
func NewToolbar(em *ecs.EntityManager, cfg *config.GameConfig) []ecs.EntityID {
	entries := cfg.ToolbarEntries()
	ids := make([]ecs.EntityID, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, NewToolbarButtonEntity(em, cfg, entry))
	}
	return ids
}
