// Package shop sells powerups, magazines and decoy ducks for experience.
package shop

import (
	"sort"
	"strings"
	"time"

	"github.com/osse101/DuckHunt_Go/internal/domain"
)

// Kind is what an item does once bought.
type Kind string

// Item kinds
const (
	KindPowerup  Kind = "powerup"
	KindMagazine Kind = "magazine"
	KindDecoy    Kind = "decoy"
)

// Item is a shop entry.
type Item struct {
	Name     string
	Cost     int64
	Kind     Kind
	Powerup  domain.Powerup
	Duration time.Duration
	// Category forces the decoy's category; empty picks by channel weights.
	Category domain.Category
	// Delay before a decoy lands.
	Delay       time.Duration
	Description string
}

// Item names
const (
	ItemAPAmmo         = "ap_ammo"
	ItemExplosiveAmmo  = "explosive_ammo"
	ItemSilencer       = "silencer"
	ItemClover         = "clover"
	ItemMagazine       = "magazine"
	ItemDecoy          = "decoy"
	ItemMechanicalDuck = "mechanical_duck"
)

const powerupDuration = 24 * time.Hour

var catalog = map[string]Item{
	ItemAPAmmo: {
		Name: ItemAPAmmo, Cost: 15, Kind: KindPowerup,
		Powerup: domain.PowerupAPAmmo, Duration: powerupDuration,
		Description: "Armor piercing ammo, 2 damage per shot for 24h",
	},
	ItemExplosiveAmmo: {
		Name: ItemExplosiveAmmo, Cost: 25, Kind: KindPowerup,
		Powerup: domain.PowerupExplosiveAmmo, Duration: powerupDuration,
		Description: "Explosive ammo, 3 damage per shot for 24h",
	},
	ItemSilencer: {
		Name: ItemSilencer, Cost: 5, Kind: KindPowerup,
		Powerup: domain.PowerupSilencer, Duration: powerupDuration,
		Description: "Silencer, ducks are never frightened for 24h",
	},
	ItemClover: {
		Name: ItemClover, Cost: 13, Kind: KindPowerup,
		Powerup: domain.PowerupClover, Duration: powerupDuration,
		Description: "Four-leaf clover, bonus experience on every kill for 24h",
	},
	ItemMagazine: {
		Name: ItemMagazine, Cost: 3, Kind: KindMagazine,
		Description: "One extra magazine",
	},
	ItemDecoy: {
		Name: ItemDecoy, Cost: 8, Kind: KindDecoy, Delay: 10 * time.Minute,
		Description: "Attracts a duck within 10 minutes",
	},
	ItemMechanicalDuck: {
		Name: ItemMechanicalDuck, Cost: 40, Kind: KindDecoy, Delay: 90 * time.Second,
		Category:    domain.CategoryMechanical,
		Description: "Plants a mechanical duck in 90 seconds",
	},
}

// Lookup finds an item by name.
func Lookup(name string) (Item, bool) {
	it, ok := catalog[strings.ToLower(strings.TrimSpace(name))]
	return it, ok
}

// Items lists the shop, cheapest first.
func Items() []Item {
	out := make([]Item, 0, len(catalog))
	for _, it := range catalog {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cost != out[j].Cost {
			return out[i].Cost < out[j].Cost
		}
		return out[i].Name < out[j].Name
	})
	return out
}
