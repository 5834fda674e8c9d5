package entities

import (
	"github.com/decker502/waterguns/pkg/components"
	"github.com/decker502/waterguns/pkg/ecs"
)

// NewWaveSchedulerEntity 创建波次调度器实体（全局唯一）
func NewWaveSchedulerEntity(em *ecs.EntityManager) ecs.EntityID {
	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.WaveSchedulerComponent{})
	return entityID
}
