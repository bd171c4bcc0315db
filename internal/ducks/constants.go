package ducks

// Gameplay constants
const (
	// ArmorResistChance is the percent chance an armored duck absorbs one
	// point of incoming damage.
	ArmorResistChance = 90

	// NoDuckPenalty is the experience lost when shooting an empty channel.
	NoDuckPenalty = 2

	// QuizOperandMax bounds the professor duck's arithmetic operands.
	QuizOperandMax = 50

	DamageDefault   = 1
	DamageAPAmmo    = 2
	DamageExplosive = 3
)

// Log messages
const (
	LogMsgDuckSpawned         = "Duck spawned"
	LogMsgDuckLeft            = "Duck left"
	LogMsgDuckResolved        = "Duck resolved"
	LogMsgAnnounceFailed      = "Failed to announce duck"
	LogMsgReplyFailed         = "Failed to send hunter reply"
	LogMsgChildSpawnFailed    = "Failed to spawn duckling"
	LogMsgKamikazeCleared     = "Kamikaze duck cleared channel"
	LogMsgDuckAlreadyResolved = "Duck already resolved before lock acquired"
)

// Error messages
const (
	ErrMsgDuplicateDuck = "duck already registered"
)
