// internal/config/config.go
package config

import "image/color"

// Симуляция
const (
	MaxDeltaTime  = 0.06       // кадр длиннее обрезается
	FixedTimestep = 1.0 / 60.0 // шаг headless-прогона

	RetargetInterval      = 0.1 // как часто башни пересобирают список целей
	WaveClearPollInterval = 0.1 // как часто волна проверяет, что крипов не осталось

	ProjectileLifetime         = 3.0
	ProjectileHitEpsilon       = 0.5 // дистанция до точки прицеливания, считающаяся попаданием
	ProjectileImpactRadius     = 0.5 // радиус поиска жертвы вокруг точки прицеливания
	ProjectileFallbackDistance = 10.0

	DamageFlashDuration = 0.15 // вспышка крипа после попадания
	BeamDuration        = 0.08 // сколько виден луч мгновенного выстрела

	CreepRadius    = 0.4 // радиус столкновения снаряда с крипом
	TurretTurnRate = 5.0 // скорость доворота башни, доля за секунду
)

// Экран (cmd/game)
const (
	ScreenWidth  = 1200
	ScreenHeight = 900
	WorldScale   = 16.0 // пикселей на единицу мира

	BaseDrawRadius       = 14.0
	CreepDrawRadius      = 7.0
	TurretDrawRadius     = 10.0
	ProjectileDrawRadius = 3.0
	StrokeWidth          = 2.0
	TextOffsetY          = 4
)

var (
	BackgroundColor  = color.RGBA{20, 20, 30, 255}
	TextLightColor   = color.RGBA{240, 240, 240, 255}
	BaseColor        = color.RGBA{50, 205, 50, 255}
	SpawnColor       = color.RGBA{0, 255, 0, 255}
	CreepColor       = color.RGBA{220, 60, 60, 255}
	SlowedCreepColor = color.RGBA{90, 160, 255, 255}
	ProjectileColor  = color.RGBA{255, 215, 0, 255}
	RangeColor       = color.RGBA{255, 255, 0, 64}
	TowerStrokeColor = color.RGBA{255, 255, 255, 255}
	TowerColors      = []color.RGBA{
		{255, 50, 50, 255},  // Red
		{50, 100, 255, 255}, // Blue
		{180, 50, 230, 255}, // Purple
		{50, 255, 50, 255},  // Green
	}
)
