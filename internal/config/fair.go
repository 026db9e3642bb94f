package config

type FairConfig struct {
	RTP                 float64
	BustStart           float64
	BustExponent        float64
	BustMax             float64
	MinPayoutMultiplier float64
	MaxPayoutMultiplier float64
	MaxBet              float64
	MaxClientSeedLen    int
}

var FairGameConfig = FairConfig{
	RTP:                 0.80,
	BustStart:           2.0,
	BustExponent:        0.5,
	BustMax:             1000.0,
	MinPayoutMultiplier: 1.01,
	MaxPayoutMultiplier: 1000.0,
	MaxBet:              10000.0,
	MaxClientSeedLen:    256,
}
