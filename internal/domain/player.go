package domain

import "time"

// Gun capacity
const (
	MaxBullets   = 6
	MaxMagazines = 2
)

// Powerup is a timed modifier active on a player.
type Powerup string

// Powerups
const (
	PowerupAPAmmo        Powerup = "ap_ammo"
	PowerupExplosiveAmmo Powerup = "explosive_ammo"
	PowerupSilencer      Powerup = "silencer"
	PowerupClover        Powerup = "clover"
)

// Player is the durable profile of one user in one channel.
type Player struct {
	ChannelID string `json:"channel_id"`
	UserID    string `json:"user_id"`

	Experience  int64 `json:"experience"`
	Bullets     int   `json:"bullets"`
	Magazines   int   `json:"magazines"`
	Confiscated bool  `json:"confiscated"`

	Powerups map[Powerup]time.Time `json:"powerups"`

	Kills map[Category]int `json:"kills"`
	Hugs  map[Category]int `json:"hugs"`

	Hurts            int `json:"hurts"`
	Resists          int `json:"resists"`
	Frightened       int `json:"frightened"`
	ShotsWithoutDuck int `json:"shots_without_duck"`
	WrongAnswers     int `json:"wrong_answers"`

	BestTimeSeconds float64 `json:"best_time_seconds"`

	// KillsToday counts natural (non-decoy) kills on the UTC day KillsTodayDay.
	KillsToday    int   `json:"kills_today"`
	KillsTodayDay int64 `json:"kills_today_day"`

	UpdatedAt time.Time `json:"updated_at"`
}

// NewPlayer returns a profile with a loaded gun and no history.
func NewPlayer(channelID, userID string) *Player {
	return &Player{
		ChannelID: channelID,
		UserID:    userID,
		Bullets:   MaxBullets,
		Magazines: MaxMagazines,
		Powerups:  make(map[Powerup]time.Time),
		Kills:     make(map[Category]int),
		Hugs:      make(map[Category]int),
	}
}

// Normalize fills nil maps so callers can write without checks.
func (p *Player) Normalize() {
	if p.Powerups == nil {
		p.Powerups = make(map[Powerup]time.Time)
	}
	if p.Kills == nil {
		p.Kills = make(map[Category]int)
	}
	if p.Hugs == nil {
		p.Hugs = make(map[Category]int)
	}
}

// HasPowerup reports whether the powerup is active at now.
func (p *Player) HasPowerup(pw Powerup, now time.Time) bool {
	until, ok := p.Powerups[pw]
	return ok && now.Before(until)
}

// GrantPowerup activates a powerup for d, extending an active one.
// Returns the new expiry.
func (p *Player) GrantPowerup(pw Powerup, now time.Time, d time.Duration) time.Time {
	p.Normalize()
	start := now
	if until, ok := p.Powerups[pw]; ok && until.After(now) {
		start = until
	}
	p.Powerups[pw] = start.Add(d)
	return p.Powerups[pw]
}

// RecordKill updates kill counters and returns the kills-today count after
// this kill. Decoy kills are not counted towards the daily total.
func (p *Player) RecordKill(c Category, decoy bool, day int64, alive time.Duration) int {
	p.Normalize()
	p.Kills[c]++
	if secs := alive.Seconds(); p.BestTimeSeconds == 0 || secs < p.BestTimeSeconds {
		p.BestTimeSeconds = secs
	}
	if p.KillsTodayDay != day {
		p.KillsTodayDay = day
		p.KillsToday = 0
	}
	if !decoy {
		p.KillsToday++
	}
	return p.KillsToday
}

// TotalKills sums kills over every category.
func (p *Player) TotalKills() int {
	total := 0
	for _, n := range p.Kills {
		total += n
	}
	return total
}

// Clone returns a deep copy.
func (p *Player) Clone() *Player {
	c := *p
	c.Powerups = make(map[Powerup]time.Time, len(p.Powerups))
	for k, v := range p.Powerups {
		c.Powerups[k] = v
	}
	c.Kills = make(map[Category]int, len(p.Kills))
	for k, v := range p.Kills {
		c.Kills[k] = v
	}
	c.Hugs = make(map[Category]int, len(p.Hugs))
	for k, v := range p.Hugs {
		c.Hugs[k] = v
	}
	return &c
}

// DayNumber returns the UTC day index of t, used to stamp daily counters.
func DayNumber(t time.Time) int64 {
	return t.Unix() / SecondsPerDay
}
