package football

// Phase is a referee state.
type Phase string

// Referee phases in the order they are entered.
const (
	PhaseInit            Phase = "init"
	PhaseSpawningLow     Phase = "spawning_low"
	PhaseSpawningMid     Phase = "spawning_mid"
	PhaseSpawningOffense Phase = "spawning_offense"
	PhaseSpawningHi      Phase = "spawning_hi"
	PhaseSpawningFans    Phase = "spawning_fans"
	PhaseMeasuring       Phase = "measuring"
	PhaseScoring         Phase = "scoring"
	PhaseDone            Phase = "done"
)

// Phases returns every phase in order.
func Phases() []Phase {
	return []Phase{
		PhaseInit,
		PhaseSpawningLow,
		PhaseSpawningMid,
		PhaseSpawningOffense,
		PhaseSpawningHi,
		PhaseSpawningFans,
		PhaseMeasuring,
		PhaseScoring,
		PhaseDone,
	}
}
