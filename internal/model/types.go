// Package model defines shared data structures.
package model

import "time"

// Weight and height bounds accepted by the forms.
const (
	MinWeightKg = 30.0
	MaxWeightKg = 300.0
	MinHeightM  = 1.0
	MaxHeightM  = 2.5
)

// Config defines client settings after flags and config file are merged.
type Config struct {
	BaseURL         string
	Timeout         time.Duration
	RefreshInterval time.Duration
	LogFile         string
	LogLevel        string
	Open            string
}

// ProgressSnapshot is the server's point-in-time progress summary.
// Every field is optional on the wire.
type ProgressSnapshot struct {
	CurrentWeight   *float64      `json:"peso_atual,omitempty"`
	WeightLost      *float64      `json:"peso_perdido,omitempty"`
	WeightRemaining *float64      `json:"peso_restante,omitempty"`
	PercentComplete *float64      `json:"percentual_completo,omitempty"`
	GoalReached     *bool         `json:"meta_atingida,omitempty"`
	TimeEstimate    *TimeEstimate `json:"estimativa_tempo,omitempty"`
}

// TimeEstimate projects when the goal weight will be reached.
type TimeEstimate struct {
	Days          float64 `json:"dias"`
	Weeks         float64 `json:"semanas"`
	Months        float64 `json:"meses"`
	EstimatedDate string  `json:"data_estimada"`
}

// WeightEntry is a single weigh-in owned by the server.
type WeightEntry struct {
	Date      string  `json:"data"`
	Weight    float64 `json:"peso"`
	Timestamp string  `json:"timestamp,omitempty"`
}

// Profile is the user profile accepted by the save-profile endpoint.
// Height is in centimetres, the unit the server feeds into its TMB formula.
type Profile struct {
	Name          string  `json:"nome" validate:"required"`
	Age           int     `json:"idade" validate:"required,gte=10,lte=120"`
	Sex           string  `json:"sexo" validate:"required,oneof=M F m f"`
	Height        float64 `json:"altura" validate:"required,gte=100,lte=250"`
	InitialWeight float64 `json:"peso_inicial" validate:"required,gte=30,lte=300"`
	GoalWeight    float64 `json:"peso_meta" validate:"required,gte=30,lte=300"`
	ActivityLevel string  `json:"nivel_atividade" validate:"required,oneof=sedentario leve moderado intenso muito_intenso"`
	Objective     string  `json:"objetivo" validate:"required,oneof=lento moderado rapido"`
}

// WeightInput is the payload of the add-weight endpoint.
type WeightInput struct {
	Weight float64 `json:"peso" validate:"required,gte=30,lte=300"`
	Date   string  `json:"data,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// BMIInput is the payload of the IMC calculator endpoint.
type BMIInput struct {
	Weight float64 `json:"peso" validate:"required,gte=30,lte=300"`
	Height float64 `json:"altura" validate:"required,gte=1,lte=2.5"`
}

// EnergyInput is the payload of the TMB and deficit calculators.
// Height is in centimetres here.
type EnergyInput struct {
	Weight        float64 `json:"peso" validate:"required,gte=30,lte=300"`
	Height        float64 `json:"altura" validate:"required,gte=100,lte=250"`
	Age           int     `json:"idade" validate:"required,gte=10,lte=120"`
	Sex           string  `json:"sexo" validate:"required,oneof=M F m f"`
	ActivityLevel string  `json:"nivel_atividade,omitempty" validate:"omitempty,oneof=sedentario leve moderado intenso muito_intenso"`
	Objective     string  `json:"objetivo,omitempty" validate:"omitempty,oneof=lento moderado rapido"`
}

// IdealWeightInput is the payload of the ideal weight calculator.
type IdealWeightInput struct {
	Height float64 `json:"altura" validate:"required,gte=1,lte=2.5"`
	Sex    string  `json:"sexo" validate:"required,oneof=M F m f"`
}

// BMIResult is returned by the IMC calculator.
type BMIResult struct {
	BMI            float64 `json:"imc"`
	Classification string  `json:"classificacao"`
	Description    string  `json:"descricao"`
}

// EnergyResult is returned by the TMB calculator.
type EnergyResult struct {
	BMR  float64 `json:"tmb"`
	TDEE float64 `json:"tdee"`
}

// DeficitResult is returned by the deficit calculator.
type DeficitResult struct {
	TDEE         float64 `json:"tdee"`
	DeficitPct   float64 `json:"deficit_percentual"`
	DeficitKcal  float64 `json:"deficit_calorias"`
	DailyKcal    float64 `json:"calorias_diarias"`
	WeeklyLossKg float64 `json:"perda_semanal_kg"`
}

// IdealWeightResult is returned by the ideal weight calculator.
type IdealWeightResult struct {
	Devine   float64 `json:"devine"`
	Robinson float64 `json:"robinson"`
	Miller   float64 `json:"miller"`
	BMIIdeal float64 `json:"imc_ideal"`
	Average  float64 `json:"media"`
}

// Ack is the acknowledgement returned by write endpoints.
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HistorySummary condenses a weight history for display.
type HistorySummary struct {
	Entries int
	First   float64
	Latest  float64
	Min     float64
	Max     float64
	Change  float64
}
