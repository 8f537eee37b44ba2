package config

import (
	"fmt"
	"time"
	// embedded zoneinfo so timezone lookups work in slim containers
	_ "time/tzdata"

	"github.com/shopspring/decimal"
)

const (
	defaultSavingsRate = 0.2
	defaultTimezone    = "Asia/Jakarta"
)

type AppConfig struct {
	SavingsRateValue float64      `yaml:"savings-rate"`
	TimezoneName     string       `yaml:"timezone"`
	Advice           AdviceConfig `yaml:"advice"`
}

func (s *AppConfig) setDefaults() {
	s.SavingsRateValue = defaultSavingsRate
	s.TimezoneName = defaultTimezone
	s.Advice.setDefaults()
}

func (s *AppConfig) validate() error {
	if s.SavingsRateValue < 0 || s.SavingsRateValue > 1 {
		return fmt.Errorf("savings-rate %v is out of [0, 1]", s.SavingsRateValue)
	}
	if _, err := time.LoadLocation(s.TimezoneName); err != nil {
		return fmt.Errorf("unknown timezone %s", s.TimezoneName)
	}
	return nil
}

func (s *AppConfig) SavingsRate() decimal.Decimal {
	return decimal.NewFromFloat(s.SavingsRateValue)
}

func (s *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(s.TimezoneName)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (s *AppConfig) AdviceThresholds() *AdviceConfig {
	return &s.Advice
}

type AdviceConfig struct {
	ExpenseRatioValue       float64 `yaml:"expense-ratio"`
	MinSavingsRateValue     float64 `yaml:"min-savings-rate"`
	FoodRatioValue          float64 `yaml:"food-ratio"`
	EntertainmentRatioValue float64 `yaml:"entertainment-ratio"`
}

func (a *AdviceConfig) setDefaults() {
	a.ExpenseRatioValue = 0.8
	a.MinSavingsRateValue = 20
	a.FoodRatioValue = 0.3
	a.EntertainmentRatioValue = 0.2
}

func (a *AdviceConfig) ExpenseRatio() decimal.Decimal {
	return decimal.NewFromFloat(a.ExpenseRatioValue)
}

func (a *AdviceConfig) MinSavingsRate() decimal.Decimal {
	return decimal.NewFromFloat(a.MinSavingsRateValue)
}

func (a *AdviceConfig) FoodRatio() decimal.Decimal {
	return decimal.NewFromFloat(a.FoodRatioValue)
}

func (a *AdviceConfig) EntertainmentRatio() decimal.Decimal {
	return decimal.NewFromFloat(a.EntertainmentRatioValue)
}
