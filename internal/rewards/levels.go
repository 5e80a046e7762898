package rewards

// Level represents a couple's relationship milestone tier
type Level struct {
	Name      string
	MinPoints int
	MaxPoints int
}

// Available levels in ascending order
var Levels = []Level{
	{Name: "Spark", MinPoints: 0, MaxPoints: 299},
	{Name: "Flame", MinPoints: 300, MaxPoints: 599},
	{Name: "Bonfire", MinPoints: 600, MaxPoints: 999},
	{Name: "Supernova", MinPoints: 1000, MaxPoints: 1499},
	{Name: "Constellation", MinPoints: 1500, MaxPoints: 2147483647},
}

// GetLevelByPoints returns the level for a given point total
func GetLevelByPoints(points int) Level {
	for _, level := range Levels {
		if points >= level.MinPoints && points <= level.MaxPoints {
			return level
		}
	}
	return Levels[0] // Default to Spark if points are out of range
}
