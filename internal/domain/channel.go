package domain

import "time"

// SecondsPerDay is the length of the UTC day the spawn budget is planned on.
const SecondsPerDay = 86400

// Channel configuration defaults
const (
	DefaultDucksPerDay       = 96
	DefaultDucksTimeToLive   = 660
	DefaultSuperDucksMinLife = 3
	DefaultSuperDucksMaxLife = 7
	DefaultBaseDuckExp       = 10
	DefaultPerLifeExp        = 7
	DefaultFrightenChance    = 5
	DefaultCloverExp         = 10
	DefaultHugPenalty        = 3
	DefaultBabyHugExp        = 5
)

// DefaultSpawnWeights are the per-category weights of a fresh channel.
var DefaultSpawnWeights = map[Category]int{
	CategoryNormal:           100,
	CategorySuper:            15,
	CategoryBaby:             7,
	CategoryProfessor:        5,
	CategoryGhost:            5,
	CategoryMotherOfAllDucks: 5,
	CategoryMechanical:       1,
	CategoryArmored:          3,
	CategoryGolden:           1,
	CategoryPlastic:          6,
	CategoryKamikaze:         6,
	CategoryNight:            100,
	CategorySleeping:         5,
}

// ChannelConfig is the durable per-channel game configuration.
// Night boundaries are seconds since UTC midnight; equal boundaries mean
// the channel has no night.
type ChannelConfig struct {
	ChannelID   string `json:"channel_id" validate:"required"`
	GuildID     string `json:"guild_id"`
	Enabled     bool   `json:"enabled"`
	UseWebhooks bool   `json:"use_webhooks"`
	UseEmojis   bool   `json:"use_emojis"`

	DucksPerDay     int `json:"ducks_per_day" validate:"gte=0,lte=5000"`
	DucksTimeToLive int `json:"ducks_time_to_live" validate:"gte=1"`
	NightStartAt    int `json:"night_start_at" validate:"gte=0,lt=86400"`
	NightEndAt      int `json:"night_end_at" validate:"gte=0,lt=86400"`

	SuperDucksMinLife int `json:"super_ducks_min_life" validate:"gte=1"`
	SuperDucksMaxLife int `json:"super_ducks_max_life" validate:"gtefield=SuperDucksMinLife"`

	BaseDuckExp    int64 `json:"base_duck_exp"`
	PerLifeExp     int64 `json:"per_life_exp"`
	FrightenChance int   `json:"frighten_chance" validate:"gte=0,lte=100"`
	CloverExp      int64 `json:"clover_exp" validate:"gte=0"`
	HugPenalty     int64 `json:"hug_penalty" validate:"gte=0"`
	BabyHugExp     int64 `json:"baby_hug_exp" validate:"gte=0"`

	SpawnWeights map[Category]int `json:"spawn_weights" validate:"dive,gte=0"`

	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultChannelConfig returns the configuration of a freshly enabled channel.
func DefaultChannelConfig(channelID, guildID string) ChannelConfig {
	weights := make(map[Category]int, len(DefaultSpawnWeights))
	for c, w := range DefaultSpawnWeights {
		weights[c] = w
	}
	return ChannelConfig{
		ChannelID:         channelID,
		GuildID:           guildID,
		Enabled:           true,
		DucksPerDay:       DefaultDucksPerDay,
		DucksTimeToLive:   DefaultDucksTimeToLive,
		SuperDucksMinLife: DefaultSuperDucksMinLife,
		SuperDucksMaxLife: DefaultSuperDucksMaxLife,
		BaseDuckExp:       DefaultBaseDuckExp,
		PerLifeExp:        DefaultPerLifeExp,
		FrightenChance:    DefaultFrightenChance,
		CloverExp:         DefaultCloverExp,
		HugPenalty:        DefaultHugPenalty,
		BabyHugExp:        DefaultBabyHugExp,
		SpawnWeights:      weights,
	}
}

// HasNight reports whether the channel has a configured night window.
func (c ChannelConfig) HasNight() bool {
	return c.NightStartAt != c.NightEndAt
}

// IsNight reports whether the given second of the UTC day falls in the
// night window. Windows may wrap around midnight.
func (c ChannelConfig) IsNight(secondOfDay int) bool {
	return inWindow(secondOfDay, c.NightStartAt, c.NightEndAt)
}

// Weight returns the spawn weight of a category, clamping negatives to zero.
func (c ChannelConfig) Weight(category Category) int {
	w := c.SpawnWeights[category]
	if w < 0 {
		return 0
	}
	return w
}

// WindowSecondsLeft counts the seconds in [secondOfDay, SecondsPerDay) that
// fall inside (night=true) or outside (night=false) the night window.
func (c ChannelConfig) WindowSecondsLeft(secondOfDay int, night bool) int {
	left := SecondsPerDay - secondOfDay
	if left <= 0 {
		return 0
	}
	nightLeft := nightSecondsLeft(secondOfDay, c.NightStartAt, c.NightEndAt)
	if night {
		return nightLeft
	}
	return left - nightLeft
}

func inWindow(s, start, end int) bool {
	switch {
	case start == end:
		return false
	case start < end:
		return s >= start && s < end
	default:
		return s >= start || s < end
	}
}

// nightSecondsLeft returns |[from, SecondsPerDay) ∩ night|.
func nightSecondsLeft(from, start, end int) int {
	switch {
	case start == end:
		return 0
	case start < end:
		return overlap(from, SecondsPerDay, start, end)
	default:
		return overlap(from, SecondsPerDay, 0, end) + overlap(from, SecondsPerDay, start, SecondsPerDay)
	}
}

func overlap(a0, a1, b0, b1 int) int {
	lo := max(a0, b0)
	hi := min(a1, b1)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// SecondOfDay returns the seconds elapsed since UTC midnight.
func SecondOfDay(t time.Time) int {
	return int(t.Unix() % SecondsPerDay)
}
