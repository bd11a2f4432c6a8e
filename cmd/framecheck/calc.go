package main

import (
	"encoding/json"
	"fmt"

	"github.com/framecheck/framecheck/internal/calc"
	"github.com/framecheck/framecheck/internal/cli"
	"github.com/framecheck/framecheck/internal/model"
	"github.com/spf13/cobra"
)

func calcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Run a tolerance calculator over flag-provided numbers",
		Long: `Run one characteristic's calculator directly, without a frame.

Examples:
  framecheck calc --characteristic position --feature-type hole --tolerance 0.1 \
      --diameter --condition MMC --nominal 10 --plus 0.1 --minus 0.05 --actual-size 9.98
  framecheck calc --characteristic flatness --tolerance 0.05
  framecheck calc --characteristic profile --tolerance 0.4 --distribution unilateral-outside`,
		RunE: runCalc,
	}

	cmd.Flags().String("characteristic", "", "characteristic (position, flatness, perpendicularity, profile)")
	cmd.Flags().String("feature-type", "", "feature type (hole, pin, slot, boss, surface)")
	cmd.Flags().String("unit", "mm", "measurement unit (mm, inch)")
	cmd.Flags().Float64("tolerance", 0, "stated tolerance value")
	cmd.Flags().Bool("diameter", false, "diameter zone modifier present")
	cmd.Flags().String("condition", "", "material condition (MMC, LMC, RFS)")
	cmd.Flags().Float64("nominal", 0, "nominal size")
	cmd.Flags().Float64("plus", 0, "plus size tolerance")
	cmd.Flags().Float64("minus", 0, "minus size tolerance")
	cmd.Flags().Float64("actual-size", 0, "actual measured size")
	cmd.Flags().String("distribution", "", "profile band distribution (bilateral, unilateral-outside, unilateral-inside)")
	cmd.Flags().StringP("output", "o", "pretty", "output format (pretty, json)")
	_ = cmd.MarkFlagRequired("characteristic")
	_ = cmd.MarkFlagRequired("tolerance")

	return cmd
}

func runCalc(cmd *cobra.Command, _ []string) error {
	characteristic, _ := cmd.Flags().GetString("characteristic")
	featureType, _ := cmd.Flags().GetString("feature-type")
	unit, _ := cmd.Flags().GetString("unit")
	tolerance, _ := cmd.Flags().GetFloat64("tolerance")
	diameter, _ := cmd.Flags().GetBool("diameter")
	condition, _ := cmd.Flags().GetString("condition")
	distribution, _ := cmd.Flags().GetString("distribution")
	output, _ := cmd.Flags().GetString("output")

	in := calc.Input{
		Characteristic:      model.Characteristic(characteristic),
		FeatureType:         model.FeatureType(featureType),
		Unit:                model.Unit(unit),
		ToleranceValue:      tolerance,
		Diameter:            diameter,
		MaterialCondition:   model.MaterialCondition(condition),
		ProfileDistribution: calc.ProfileDistribution(distribution),
	}

	if cmd.Flags().Changed("nominal") {
		nominal, _ := cmd.Flags().GetFloat64("nominal")
		plus, _ := cmd.Flags().GetFloat64("plus")
		minus, _ := cmd.Flags().GetFloat64("minus")
		size, err := model.NewSizeDimension(nominal, plus, minus)
		if err != nil {
			return fmt.Errorf("invalid size dimension: %w", err)
		}
		in.Size = size
	}
	if cmd.Flags().Changed("actual-size") {
		actual, _ := cmd.Flags().GetFloat64("actual-size")
		in.ActualSize = &actual
	}

	result, err := calc.Calculate(in)
	if err != nil {
		return err
	}

	if output == "json" {
		data, marshalErr := json.MarshalIndent(result, "", "  ")
		if marshalErr != nil {
			return fmt.Errorf("failed to render result: %w", marshalErr)
		}
		fmt.Println(string(data))
		return nil
	}
	fmt.Print(cli.RenderCalc(result))
	return nil
}
