package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"powerplan/adapters/stats/engine"
	"powerplan/app"
	"powerplan/domain/design"
	"powerplan/internal/config"
	"powerplan/ports"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "powerplan-cli",
		Short: "Two-proportion A/B test design calculator",
	}

	rootCmd.AddCommand(
		newPowerCmd(),
		newMdeCmd(),
		newSampleSizeCmd(),
		newSweepCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newService builds the design service from environment configuration
func newService() (*app.DesignService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return app.NewDesignService(engine.NewDesignEngine(), cfg.Design), nil
}

func newPowerCmd() *cobra.Command {
	var total int
	var treatmentPct, mdePct, alpha float64

	cmd := &cobra.Command{
		Use:   "power",
		Short: "Compute statistical power for a fixed design",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			report, err := svc.ComputePower(context.Background(), ports.PowerRequest{
				TotalSampleSize:  total,
				TreatmentPercent: treatmentPct,
				MDEPercent:       mdePct,
				Alpha:            alpha,
			})
			if err != nil {
				return err
			}
			if report.Degenerate {
				fmt.Println("Infeasible design: one group is empty at this split")
			}
			fmt.Printf("Power: %.4f\n", report.Power)
			fmt.Printf("Treatment: %d  Control: %d\n", report.Groups.Treatment, report.Groups.Control)
			if report.AdequatelyPowered {
				fmt.Println("Design is adequately powered (>= 0.8)")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&total, "total", 2000, "total sample size")
	cmd.Flags().Float64Var(&treatmentPct, "treatment-pct", 50, "treatment group percentage (1-99)")
	cmd.Flags().Float64Var(&mdePct, "mde-pct", 0.1, "minimum detectable effect in percentage points")
	cmd.Flags().Float64Var(&alpha, "alpha", 0, "significance level (default from config)")
	return cmd
}

func newMdeCmd() *cobra.Command {
	var total int
	var treatmentPct, power, alpha float64

	cmd := &cobra.Command{
		Use:   "mde",
		Short: "Compute the minimum detectable effect at a target power",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			report, err := svc.ComputeMDE(context.Background(), ports.MdeRequest{
				TotalSampleSize:  total,
				TreatmentPercent: treatmentPct,
				Power:            power,
				Alpha:            alpha,
			})
			if err != nil {
				return err
			}
			if report.Degenerate {
				fmt.Println("Infeasible design: one group is empty at this split")
			}
			fmt.Printf("MDE: %.2f percentage points\n", report.MDEPercent)
			fmt.Printf("Treatment: %d  Control: %d\n", report.Groups.Treatment, report.Groups.Control)
			return nil
		},
	}

	cmd.Flags().IntVar(&total, "total", 2000, "total sample size")
	cmd.Flags().Float64Var(&treatmentPct, "treatment-pct", 50, "treatment group percentage (1-99)")
	cmd.Flags().Float64Var(&power, "power", 0, "target power (default from config)")
	cmd.Flags().Float64Var(&alpha, "alpha", 0, "significance level (default from config)")
	return cmd
}

func newSampleSizeCmd() *cobra.Command {
	var treatmentPct, mdePct, power, alpha float64

	cmd := &cobra.Command{
		Use:   "sample-size",
		Short: "Compute the total sample required for a target design",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			report, err := svc.ComputeSampleSize(context.Background(), ports.SampleSizeRequest{
				MDEPercent:       mdePct,
				Power:            power,
				TreatmentPercent: treatmentPct,
				Alpha:            alpha,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Total Sample Size: %d\n", report.TotalSampleSize)
			fmt.Printf("Treatment: %d  Control: %d\n", report.Groups.Treatment, report.Groups.Control)
			return nil
		},
	}

	cmd.Flags().Float64Var(&mdePct, "mde-pct", 0.1, "minimum detectable effect in percentage points")
	cmd.Flags().Float64Var(&power, "power", 0, "target power (default from config)")
	cmd.Flags().Float64Var(&treatmentPct, "treatment-pct", 50, "treatment group percentage (1-99)")
	cmd.Flags().Float64Var(&alpha, "alpha", 0, "significance level (default from config)")
	return cmd
}

func newSweepCmd() *cobra.Command {
	var mode string
	var total int
	var mdePct, power, alpha float64

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Sweep the treatment split and report the optimal allocation",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			sweep, err := svc.SweepByAllocation(context.Background(), ports.SweepRequest{
				Mode:            design.SweepMode(mode),
				TotalSampleSize: total,
				MDEPercent:      mdePct,
				Power:           power,
				Alpha:           alpha,
			})
			if err != nil {
				return err
			}

			fmt.Printf("%-12s %-14s %-10s %-10s\n", "Treatment %", "Value", "Treatment", "Control")
			for _, p := range sweep.Points {
				fmt.Printf("%-12g %-14.4f %-10d %-10d\n",
					p.TreatmentPercent, p.Value, p.Groups.Treatment, p.Groups.Control)
			}
			fmt.Printf("\nOptimal treatment percentage: %g%% (value %.4f)\n",
				sweep.Optimal.TreatmentPercent, sweep.Optimal.Value)
			fmt.Printf("Range: min %.4f, median %.4f, max %.4f\n",
				sweep.Summary.Min, sweep.Summary.Median, sweep.Summary.Max)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "sample_size", "sweep mode: sample_size or mde")
	cmd.Flags().IntVar(&total, "total", 2000, "total sample size (mde mode)")
	cmd.Flags().Float64Var(&mdePct, "mde-pct", 0.1, "minimum detectable effect in percentage points (sample_size mode)")
	cmd.Flags().Float64Var(&power, "power", 0, "target power (default from config)")
	cmd.Flags().Float64Var(&alpha, "alpha", 0, "significance level (default from config)")
	return cmd
}
