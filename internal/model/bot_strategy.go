package model

// Names of the built-in placement strategies
const (
	BotStrategyRandom = "random"
	BotStrategyGreedy = "greedy"
)

// BotStrategyDisplayName returns a human-readable label for a strategy,
// falling back to the name itself for strategies it doesn't know
func BotStrategyDisplayName(strategy string) string {
	switch strategy {
	case BotStrategyRandom:
		return "Random"
	case BotStrategyGreedy:
		return "Greedy"
	default:
		return strategy
	}
}

// ValidBotStrategies lists the built-in strategies in the order they are offered
func ValidBotStrategies() []string {
	return []string{BotStrategyRandom, BotStrategyGreedy}
}
