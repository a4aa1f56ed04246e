package constants

import "time"

const (
	SessionTTL        = 1 * time.Hour
	HeroCacheTTL      = 10 * time.Minute
	DefaultRetryDelay = 1 * time.Second
)

const (
	ExternalAPITimeout = 10 * time.Second
	RequestTimeout     = 30 * time.Second
	TurnTimeout        = 45 * time.Second
	ReadHeaderTimeout  = 5 * time.Second
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	DefaultPageSize = 5
	MaxPageSize     = 50
	MaxRequestBody  = 1 << 20
)

const (
	HeroCount        = 20
	DemoPlayerCount  = 8
	MinDemoMatches   = 20
	MaxDemoMatches   = 50
	FabricatedGames  = 50
	DefaultOwnerName = "Player"
	FallbackPlayer   = "DemoPlayer"
)

const (
	APIVersion = "1.0.0"
)
