package game

// Config holds battle service options.
type Config struct {
	// Seed for the battle RNG. Used for reproducible battles.
	// A seed of 0 means a fresh random seed is drawn per battle.
	Seed int64
	// MaxRounds ends a battle as a loss once reached. 0 uses the engine default.
	MaxRounds int
}
