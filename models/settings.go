package models

const (
	DefaultWinThreshold = 7
	DefaultMaxPlayers   = 8
	MinPlayersToStart   = 3
	HandSize            = 10
)

// Settings are the host-configurable lobby options. Packs holds catalog
// pack ids; empty means every pack.
type Settings struct {
	WinThreshold int   `json:"winThreshold"`
	MaxPlayers   int   `json:"maxPlayers"`
	Packs        []int `json:"packs"`
	Public       bool  `json:"public"`
}

// DefaultSettings returns the settings a freshly created lobby starts with.
func DefaultSettings() Settings {
	return Settings{
		WinThreshold: DefaultWinThreshold,
		MaxPlayers:   DefaultMaxPlayers,
		Public:       true,
	}
}
