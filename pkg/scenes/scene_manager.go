package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"
)

// SceneFactory 创建一个新场景（例如开始新对局）
// 通过工厂函数避免场景管理器依赖具体的场景实现
type SceneFactory func() (Scene, error)

// SceneManager 管理当前活动的场景
// 任意时刻只有一个场景的 Update 和 Draw 会被调用
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
}

// NewSceneManager 创建场景管理器，初始没有活动场景
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo 切换活动场景
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// CurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) CurrentScene() Scene {
	return sm.currentScene
}

// Restart 用工厂函数创建新场景并切换过去
// 工厂未设置或创建失败时保持当前场景
//
// 返回：
//   - bool: 是否成功切换
func (sm *SceneManager) Restart() bool {
	if sm.sceneFactory == nil {
		log.Warn().Str("system", "SceneManager").Msg("scene factory not set")
		return false
	}

	scene, err := sm.sceneFactory()
	if err != nil {
		log.Error().Err(err).Str("system", "SceneManager").Msg("failed to create scene")
		return false
	}

	sm.SwitchTo(scene)
	log.Info().Str("system", "SceneManager").Msg("new game started")
	return true
}

// SaveOnExit 如果当前场景实现了 Saveable，调用其 SaveOnExit
func (sm *SceneManager) SaveOnExit() bool {
	if saveable, ok := sm.currentScene.(Saveable); ok {
		return saveable.SaveOnExit()
	}
	return true
}

// Update 更新当前场景，没有活动场景时什么也不做
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw 绘制当前场景，没有活动场景时什么也不做
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
