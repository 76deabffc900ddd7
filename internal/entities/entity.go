package entities

import "github.com/KirkDiggler/rpg-toolkit/core"

// Compile-time check that records can act as event sources and targets
var (
	_ core.Entity = (*Character)(nil)
	_ core.Entity = (*Enemy)(nil)
)
