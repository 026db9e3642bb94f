package config

type Game string

const (
	Coin Game = "coin"
	Bust Game = "bust"
)
