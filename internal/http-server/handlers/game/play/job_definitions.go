package play

type RoundPlayedAtJob struct {
	roundID int64
	rounds  RoundSaver
}

func (j *RoundPlayedAtJob) Execute() {
	// mark the round as played once settlement is done
	_ = j.rounds.UpdatePlayedAt(j.roundID)
}
