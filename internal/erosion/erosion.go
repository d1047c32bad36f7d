package erosion

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"terrainforge/internal/progress"
	"terrainforge/internal/raster"
)

// Config holds every tunable of the hydraulic erosion simulation, taken
// verbatim from the erosion block of the parameter document.
type Config struct {
	Droplets               int      `mapstructure:"droplets"`
	BrushRadius            int      `mapstructure:"brush_radius"`
	Inertia                float64  `mapstructure:"inertia"`
	SedimentCapacityFactor float64  `mapstructure:"sediment_capacity_factor"`
	SedimentMinCapacity    float64  `mapstructure:"sediment_min_capacity"`
	ErodeSpeed             float64  `mapstructure:"erode_speed"`
	DepositSpeed           float64  `mapstructure:"deposit_speed"`
	EvaporateSpeed         float64  `mapstructure:"evaporate_speed"`
	Gravity                float64  `mapstructure:"gravity"`
	DropletLifetime        int      `mapstructure:"droplet_lifetime"`
	InitialWaterVolume     float64  `mapstructure:"initial_water_volume"`
	InitialSpeed           float64  `mapstructure:"initial_speed"`
	SeaLevel               *float64 `mapstructure:"sea_level"`
}

// Erode drops cfg.Droplets water droplets onto heightmap at random
// starting points, each carving and depositing sediment as it rolls
// downhill under gravity. heightmap is mutated in place. Zero droplets
// leaves the heightmap bitwise unchanged.
func Erode(heightmap *raster.FloatGrid, cfg Config, seed int64, log *slog.Logger) {
	if cfg.Droplets <= 0 {
		return
	}
	// Droplets spawn in [1, W-2] x [1, H-2]; a map narrower than that has
	// no interior to erode.
	if heightmap.W < 3 || heightmap.H < 3 {
		return
	}

	br := newBrush(cfg.BrushRadius)
	area := raster.NewArea(heightmap.W, heightmap.H)
	rng := rand.New(rand.NewPCG(uint64(seed+1), uint64(seed+1)))
	prog := progress.New(log, "eroding", cfg.Droplets, progress.DefaultCadence)

	for i := 0; i < cfg.Droplets; i++ {
		prog.Tick(i)
		simulateDroplet(heightmap, br, area, cfg, rng)
	}
	prog.Done()
}

func simulateDroplet(heightmap *raster.FloatGrid, br brush, area raster.Area, cfg Config, rng *rand.Rand) {
	posX := float64(rng.IntN(heightmap.W-2) + 1)
	posY := float64(rng.IntN(heightmap.H-2) + 1)
	dirX, dirY := 0.0, 0.0
	speed := cfg.InitialSpeed
	water := cfg.InitialWaterVolume
	sediment := 0.0

	for step := 0; step < cfg.DropletLifetime; step++ {
		nodeX, nodeY := int(posX), int(posY)
		cellOffsetX := posX - float64(nodeX)
		cellOffsetY := posY - float64(nodeY)

		hag := sample(heightmap, posX, posY)

		dirX = dirX*cfg.Inertia - hag.gradientX*(1-cfg.Inertia)
		dirY = dirY*cfg.Inertia - hag.gradientY*(1-cfg.Inertia)

		length := math.Sqrt(dirX*dirX + dirY*dirY)
		if length != 0 {
			dirX /= length
			dirY /= length
		}
		posX += dirX
		posY += dirY

		if (dirX == 0 && dirY == 0) ||
			posX < 1 || posX >= float64(heightmap.W-2) ||
			posY < 1 || posY >= float64(heightmap.H-2) {
			break
		}

		newHeight := sample(heightmap, posX, posY).height
		deltaHeight := newHeight - hag.height

		if cfg.SeaLevel != nil && newHeight <= *cfg.SeaLevel {
			break
		}

		sedimentCapacity := math.Max(-deltaHeight*speed*water*cfg.SedimentCapacityFactor, cfg.SedimentMinCapacity)

		if sediment > sedimentCapacity || deltaHeight > 0 {
			var amountToDeposit float64
			if deltaHeight > 0 {
				amountToDeposit = math.Min(deltaHeight, sediment)
			} else {
				amountToDeposit = (sediment - sedimentCapacity) * cfg.DepositSpeed
			}
			sediment -= amountToDeposit
			depositAt(heightmap, nodeX, nodeY, cellOffsetX, cellOffsetY, amountToDeposit)
		} else {
			amountToErode := math.Min((sedimentCapacity-sediment)*cfg.ErodeSpeed, -deltaHeight)

			for _, p := range br.points {
				x, y := nodeX+p.dx, nodeY+p.dy
				if !area.Contains(x, y) {
					continue
				}
				weighedErodeAmount := amountToErode * p.weight
				deltaSediment := math.Min(heightmap.At(x, y), weighedErodeAmount)
				heightmap.Add(x, y, -deltaSediment)
				sediment += deltaSediment
			}
		}

		speed = math.Sqrt(math.Max(0, speed*speed+deltaHeight*cfg.Gravity))
		water *= 1 - cfg.EvaporateSpeed
	}
}
