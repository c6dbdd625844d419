package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/fitlife/internal/display"
	"github.com/verte-zerg/fitlife/internal/format"
	"github.com/verte-zerg/fitlife/internal/model"
	"github.com/verte-zerg/fitlife/internal/validate"
)

var (
	energyWeight    float64
	energyHeightCm  float64
	energyAge       int
	energySex       string
	energyActivity  string
	energyObjective string

	idealHeight float64
	idealSex    string

	profile model.Profile
)

func newEnergyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "energy",
		Short: "Calculate TMB, TDEE and the daily calorie deficit",
		Args:  cobra.NoArgs,
		RunE:  runEnergyCmd,
	}
	cmd.Flags().Float64Var(&energyWeight, "weight", 0, "weight in kg")
	cmd.Flags().Float64Var(&energyHeightCm, "height", 0, "height in cm")
	cmd.Flags().IntVar(&energyAge, "age", 0, "age in years")
	cmd.Flags().StringVar(&energySex, "sex", "", "sex (M or F)")
	cmd.Flags().StringVar(&energyActivity, "activity", "sedentario", "activity level (sedentario, leve, moderado, intenso, muito_intenso)")
	cmd.Flags().StringVar(&energyObjective, "objective", "", "weight loss pace for the deficit (lento, moderado, rapido)")
	return cmd
}

func runEnergyCmd(cmd *cobra.Command, _ []string) error {
	if err := requireFlags(cmd, "weight", "height", "age", "sex"); err != nil {
		return err
	}
	h, err := newHeadless(cmd)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	in := model.EnergyInput{
		Weight:        energyWeight,
		Height:        energyHeightCm,
		Age:           energyAge,
		Sex:           strings.ToUpper(strings.TrimSpace(energySex)),
		ActivityLevel: strings.TrimSpace(energyActivity),
		Objective:     strings.TrimSpace(energyObjective),
	}
	energy, err := h.client.CalculateTMB(ctx, in)
	if err != nil {
		return fmt.Errorf("failed to calculate TMB: %w", err)
	}
	lines := []string{
		fmt.Sprintf("TMB:  %s kcal", format.Number(energy.BMR, 0)),
		fmt.Sprintf("TDEE: %s kcal", format.Number(energy.TDEE, 0)),
	}
	label := "TMB TDEE"
	if in.Objective != "" {
		deficit, err := h.client.CalculateDeficit(ctx, in)
		if err != nil {
			return fmt.Errorf("failed to calculate deficit: %w", err)
		}
		lines = append(lines,
			fmt.Sprintf("Déficit: %s kcal (%s%%)", format.Number(deficit.DeficitKcal, 0), format.Number(deficit.DeficitPct, 0)),
			fmt.Sprintf("Calorias diárias: %s kcal", format.Number(deficit.DailyKcal, 0)),
			fmt.Sprintf("Perda semanal: %s kg", format.Number(deficit.WeeklyLossKg, 2)),
		)
		label += " Déficit"
	}
	lines = append(lines, tooltipLines(label)...)
	return writeLines(cmd.OutOrStdout(), lines)
}

func newIdealWeightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ideal-weight",
		Short: "Estimate the ideal weight for a height",
		Args:  cobra.NoArgs,
		RunE:  runIdealWeightCmd,
	}
	cmd.Flags().Float64Var(&idealHeight, "height", 0, "height in m")
	cmd.Flags().StringVar(&idealSex, "sex", "", "sex (M or F)")
	return cmd
}

func runIdealWeightCmd(cmd *cobra.Command, _ []string) error {
	if err := requireFlags(cmd, "height", "sex"); err != nil {
		return err
	}
	h, err := newHeadless(cmd)
	if err != nil {
		return err
	}
	res, err := h.client.CalculateIdealWeight(commandContext(cmd), model.IdealWeightInput{
		Height: idealHeight,
		Sex:    strings.ToUpper(strings.TrimSpace(idealSex)),
	})
	if err != nil {
		return fmt.Errorf("failed to calculate ideal weight: %w", err)
	}
	return writeLines(cmd.OutOrStdout(), []string{
		fmt.Sprintf("%-10s %s kg", "Devine:", format.Number(res.Devine, 1)),
		fmt.Sprintf("%-10s %s kg", "Robinson:", format.Number(res.Robinson, 1)),
		fmt.Sprintf("%-10s %s kg", "Miller:", format.Number(res.Miller, 1)),
		fmt.Sprintf("%-10s %s kg", "IMC 21,5:", format.Number(res.BMIIdeal, 1)),
		fmt.Sprintf("%-10s %s kg", "Média:", format.Number(res.Average, 1)),
	})
}

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Save the user profile",
		Args:  cobra.NoArgs,
		RunE:  runProfileCmd,
	}
	cmd.Flags().StringVar(&profile.Name, "name", "", "name")
	cmd.Flags().IntVar(&profile.Age, "age", 0, "age in years")
	cmd.Flags().StringVar(&profile.Sex, "sex", "", "sex (M or F)")
	cmd.Flags().Float64Var(&profile.Height, "height", 0, "height in cm")
	cmd.Flags().Float64Var(&profile.InitialWeight, "initial-weight", 0, "starting weight in kg")
	cmd.Flags().Float64Var(&profile.GoalWeight, "goal-weight", 0, "goal weight in kg")
	cmd.Flags().StringVar(&profile.ActivityLevel, "activity", "sedentario", "activity level (sedentario, leve, moderado, intenso, muito_intenso)")
	cmd.Flags().StringVar(&profile.Objective, "objective", "moderado", "weight loss pace (lento, moderado, rapido)")
	return cmd
}

func runProfileCmd(cmd *cobra.Command, _ []string) error {
	if err := requireFlags(cmd, "name", "age", "sex", "height", "initial-weight", "goal-weight"); err != nil {
		return err
	}
	h, err := newHeadless(cmd)
	if err != nil {
		return err
	}
	p := profile
	p.Name = strings.TrimSpace(p.Name)
	p.Sex = strings.ToUpper(strings.TrimSpace(p.Sex))
	ack, err := h.client.SaveProfile(commandContext(cmd), p)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return printAck(cmd.OutOrStdout(), ack, "Perfil salvo.")
}

// requireFlags treats the named flags as required form fields. A flag that
// was never set reads as an empty field.
func requireFlags(cmd *cobra.Command, names ...string) error {
	fields := display.NewMemory()
	for _, name := range names {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			fields.SetField(name, f.Value.String())
		}
	}
	var missing []string
	ok := validate.ValidateRequiredFields(validate.RequiredFields(fields, names...), func(name string, valid bool) {
		if !valid {
			missing = append(missing, "--"+name)
		}
	})
	if !ok {
		return fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
	}
	return nil
}
