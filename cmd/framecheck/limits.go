package main

import (
	"encoding/json"
	"fmt"

	"github.com/framecheck/framecheck/internal/calc"
	"github.com/framecheck/framecheck/internal/model"
	"github.com/spf13/cobra"
)

func limitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "limits",
		Short: "Derive MMC/LMC boundaries for a size dimension",
		Long: `Derive the maximum and least material condition boundaries of a
toleranced size. Direction depends on the feature type: for a hole MMC is
the smallest permissible size, for a pin it is the largest.

Examples:
  framecheck limits --feature-type hole --nominal 10 --plus 0.1 --minus 0.05
  framecheck limits --feature-type pin --upper 10.1 --lower 9.95`,
		RunE: runLimits,
	}

	cmd.Flags().String("feature-type", "", "feature type (hole, pin, slot, boss)")
	cmd.Flags().Float64("nominal", 0, "nominal size")
	cmd.Flags().Float64("plus", 0, "plus size tolerance")
	cmd.Flags().Float64("minus", 0, "minus size tolerance")
	cmd.Flags().Float64("upper", 0, "explicit upper limit")
	cmd.Flags().Float64("lower", 0, "explicit lower limit")
	cmd.Flags().StringP("output", "o", "pretty", "output format (pretty, json)")
	_ = cmd.MarkFlagRequired("feature-type")

	return cmd
}

func runLimits(cmd *cobra.Command, _ []string) error {
	featureType, _ := cmd.Flags().GetString("feature-type")
	output, _ := cmd.Flags().GetString("output")

	var size *model.SizeDimension
	var err error
	if cmd.Flags().Changed("upper") || cmd.Flags().Changed("lower") {
		upper, _ := cmd.Flags().GetFloat64("upper")
		lower, _ := cmd.Flags().GetFloat64("lower")
		size, err = model.NewSizeFromLimits(upper, lower)
	} else {
		nominal, _ := cmd.Flags().GetFloat64("nominal")
		plus, _ := cmd.Flags().GetFloat64("plus")
		minus, _ := cmd.Flags().GetFloat64("minus")
		size, err = model.NewSizeDimension(nominal, plus, minus)
	}
	if err != nil {
		return fmt.Errorf("invalid size dimension: %w", err)
	}

	limits, err := calc.Limits(model.FeatureType(featureType), size)
	if err != nil {
		return err
	}

	if output == "json" {
		data, marshalErr := json.MarshalIndent(limits, "", "  ")
		if marshalErr != nil {
			return fmt.Errorf("failed to render limits: %w", marshalErr)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("MMC: %.4g\nLMC: %.4g\nupper: %.4g\nlower: %.4g\n",
		limits.MMC, limits.LMC, limits.Upper, limits.Lower)
	return nil
}
