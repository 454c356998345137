package settings

import "github.com/hubastard/bastion/engine/colors"

type standard struct {
	key, value, description string
	locked                  bool
}

func num(key string, v float64, desc string) standard {
	s, _ := format(v)
	return standard{key: key, value: s, description: desc}
}

func col(key string, v colors.Color, desc string) standard {
	return standard{key: key, value: v.Hex(), description: desc}
}

func flag(key string, v bool, desc string) standard {
	s, _ := format(v)
	return standard{key: key, value: s, description: desc}
}

func str(key, v, desc string) standard {
	return standard{key: key, value: v, description: desc}
}

var defaults = []standard{
	// state
	num("stateShipOrbitMargin", 500, "Radius of margin between maximum edge of island and first ship orbit."),
	num("stateShipMargin", 150, "Lateral distance between ships orbiting island."),
	num("stateShipSpeed", 100, "Ship speed in world units per second."),
	num("stateShipAddRate", 17, "Time between ships being added to the world."),
	num("stateMissileSpeed", 100, "Missile speed in world units per second."),
	num("stateMissileFiringRate", 8, "Wait time in between missile firings for each ship."),
	num("stateTurretTurnSpeed", 45, "Turning speed of turret in degrees per second."),
	num("stateHealthRegenerationRate", 0.125, "Portion of fortress health capacity regenerated each second."),
	num("stateMissileStrikeDepletion", 0.25, "Portion of fortress health depleted by one missile strike."),
	num("stateEMPRange", 1000, "Radius reached by a fully expanded EMP wave."),
	num("stateEMPDuration", 2, "Time in seconds for an EMP wave to expand."),

	// display
	num("logicUpdateFrequency", 120, "Number of times per second to update game logic."),
	flag("displayFPSCap", false, "Whether or not to cap the frames per second to a certain number."),
	num("displayFPS", 60, "Number of frames per second to draw."),
	flag("displayVSync", true, "Whether or not to wait for vertical retrace when swapping buffers."),
	num("displayWindowedResolutionX", 1024, "Windowed horizontal display resolution."),
	num("displayWindowedResolutionY", 768, "Windowed vertical display resolution."),
	col("colorClear", colors.Sky, "Color of empty space."),
	str("logLevel", "info", "Minimum level written to the log (verbose, info, fatal)."),
	num("logConsoleLines", 12, "Number of log lines kept for the HUD console."),

	// rendering
	num("renderingPerspectiveFOV", 30, "Field-of-view angle for perspective projection."),
	num("renderingPerspectiveBinocularsFOV", 10, "Field-of-view angle for perspective projection while using binoculars."),
	num("renderingPerspectiveNearClip", 0.5, "Near clip distance for perspective projection."),
	num("renderingPerspectiveFarClip", 9000, "Far clip distance for perspective projection."),
	num("renderingMinimumTextureUnits", 8, "Texture image units the GPU must offer."),

	// world
	col("skyTopColor", colors.Color{0.68, 0.73, 0.89, 1}, "Sky color at the top of the screen."),
	col("skyHorizonColor", colors.Color{0.62, 0.52, 0.20, 1}, "Sky color at the bottom of the screen."),
	col("waterColor", colors.Color{0.08, 0.28, 0.42, 0.85}, "Color of the sea surface."),
	num("waterWaveScale", 200, "World units covered by one repeat of the wave noise."),
	num("waterWavePeriod", 6, "Time in seconds for the wave pattern to drift one repeat."),
	num("towerSpinnerPeriod", 8, "Time in seconds for one turn of the tower radar spinner."),

	// terrain
	num("terrainDepth", 10, "How far below the water the ground extends."),
	num("terrainTextureRepeat", 50, "Number of times to repeat the ground texture over the maximum surface area."),
	num("terrainNoiseTextureDensity", 512, "Terrain mixing noise texture resolution."),
	num("terrainNoiseTextureRoughness", 0.6, "Terrain mixing noise texture roughness factor."),
	num("terrainNoiseTextureDepth", 4, "Terrain mixing noise texture color depth."),

	// HUD
	num("hudCursorSize", 50, "Height of cursor in pixels."),
	num("hudCursorThickness", 2, "Thickness of cursor in pixels."),
	col("hudCursorColor", colors.Color{0, 0, 0, 0.75}, "Color of cursor."),
	num("radarSize", 35, "Size of radar panel in percentage of screen height."),
	num("radarRefreshSpeed", 1, "Time in seconds for a full radar turn."),
	num("radarSpotSize", 6, "Size in pixels of radar missile spots."),
	num("radarCenterSpotSize", 8, "Size in pixels of radar center spot."),
	col("radarSpotColor", colors.Red, "Color of radar missile spots."),
	num("radarRadius", 1500, "Radius of radar coverage."),
	col("radarViewConeColor", colors.Color{1, 1, 1, 0.15}, "Inside color of the radar view cone."),
	col("radarViewConeBorderColor", colors.Color{1, 1, 1, 0.4}, "Border color of the radar view cone."),
	col("radarEMPColor", colors.Color{0.5, 0.75, 1, 0.5}, "Color of the EMP wave on the radar."),
	num("hudElementMargin", 36, "Space between HUD elements in pixels (must be even number)."),
	num("hudContainerBorder", 2, "Thickness in pixels of HUD container element borders."),
	num("hudContainerSoftEdge", 2, "Thickness in pixels of HUD container element border antialiased portion."),
	col("hudContainerInsideColor", colors.Color{0.15, 0.15, 0.15, 0.75}, "Background color of HUD container elements."),
	col("hudContainerHighlightColor", colors.Color{0.863, 0.863, 0.863, 0.247}, "Highlight background color of HUD container elements."),
	col("hudContainerBorderColor", colors.Color{0.918, 1.0, 0.945, 0.714}, "Border color of HUD container elements."),
	col("hudContainerOutsideColor", colors.Color{0.918, 1.0, 0.945, 0.0}, "Outside color of HUD container elements."),
	num("hudGaugePadding", 20, "Gauge panel padding in pixels."),
	num("hudGaugeWidth", 200, "Width of gauges in pixels."),
	num("hudGaugeHeight", 30, "Height of gauges in pixels."),
	col("hudGaugeBackgroundColor", colors.Color{0.3, 0.3, 0.3, 1}, "Background color of gauges."),
	col("hudGaugeColorFalloff", colors.Color{0.3, 0.3, 0.3, 0.75}, "Factor to be multiplied into gauge color for falloff at bottom."),
	col("hudGaugeHealthBarColor", colors.Color{0, 1, 0, 1}, "Color of health gauge."),
	col("hudGaugeAmmoBarColor", colors.Color{0, 1, 1, 1}, "Color of ammunition gauge."),
	col("hudGaugeShockChargingBarColor", colors.Color{1, 1, 0, 1}, "Color of shock gauge while charging."),
	col("hudGaugeShockChargedBarColor", colors.Color{1, 0, 0, 1}, "Color of shock gauge when charged."),
	col("hudGrayOutColor", colors.Color{0, 0, 0.05, 0.75}, "Color of gray screen during pause."),
	num("hudStrikeEffectTime", 0.5, "Duration in seconds of the screen flash after a missile strike."),
	num("hudMissileIndicatorSize", 24, "Size in pixels of off-screen missile indicators."),
	col("hudMissileIndicatorColor", colors.Color{1, 0, 0, 0.75}, "Color of off-screen missile indicators."),

	// font
	str("fontFile", "", "Font file to load for use by HUD and menus; empty selects the built-in Go Bold face."),
	num("fontSizeSmall", 16, "Font size for small display in points (1/72 inch)."),
	num("fontSizeMedium", 24, "Font size for standard display in points (1/72 inch)."),
	num("fontSizeLarge", 34, "Font size for enlarged display in points (1/72 inch)."),
	num("fontSizeSuper", 46, "Font size for title display in points (1/72 inch)."),
	col("fontColorLight", colors.White, "Light font color."),
	col("fontColorDark", colors.Gray, "Medium font color."),

	// island
	num("islandMaximumWidth", 1000, "Maximum island width."),
	num("islandMaximumHeight", 100, "Maximum island height."),
	num("islandTerrainBaseDensity", 32, "Island terrain tessellation density at detail level 1."),
	num("islandTerrainDetail", 4, "Island terrain detail level; each level doubles the density."),
	num("islandTerrainRoughness", 0.5, "Roughness of island terrain randomization."),
	num("islandTerrainSink", 0.5, "Island terrain generation sink to sea level factor."),
	{key: "islandSeed", value: "1", description: "Seed for island generation.", locked: false},
	{key: "preferencesVersion", value: "1", description: "Version of the preferences layout.", locked: true},
}
