package config

type BalanceType string

const (
	Income  BalanceType = "income"
	Outcome BalanceType = "outcome"
)
