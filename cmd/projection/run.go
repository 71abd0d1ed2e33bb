package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kaufy/projection-engine/internal/config"
	"github.com/kaufy/projection-engine/internal/domain"
	"github.com/kaufy/projection-engine/internal/logger"
	"github.com/kaufy/projection-engine/internal/repository"
	"github.com/kaufy/projection-engine/internal/service"
	"github.com/kaufy/projection-engine/pkg/format"
)

// scenario is the YAML file accepted by --scenario
type scenario struct {
	Input      domain.ProjectionInput `yaml:"input"`
	Asset      *domain.NewAsset       `yaml:"asset,omitempty"`
	Milestones []int                  `yaml:"milestones,omitempty"`
}

type runOptions struct {
	scenarioPath string
	every        int
	startYear    int

	propertyValue, debt, rent, debtService, interestRate string
	valueGrowth, rentGrowth                              string
	horizon                                              int

	assetPrice, assetRent, assetEquity, assetRate, assetAmortization string
}

func runCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Project a portfolio and print the yearly table",
		Long: `Project a starting position over the horizon and print every N-th year.

The position comes from --scenario (YAML) and/or the individual flags; flags win.
Adding --asset-price merges a prospective acquisition into the position first.
Rates are fractions: 0.035 means 3.5 %.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjection(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.scenarioPath, "scenario", "", "YAML scenario file")
	f.IntVar(&opts.every, "every", 5, "print every N-th year")
	f.IntVar(&opts.startYear, "start-year", time.Now().Year(), "calendar year of year 0")

	f.StringVar(&opts.propertyValue, "property-value", "0", "current market value")
	f.StringVar(&opts.debt, "debt", "0", "outstanding debt")
	f.StringVar(&opts.rent, "rent", "0", "annual rent")
	f.StringVar(&opts.debtService, "debt-service", "0", "annual debt service (interest + amortization)")
	f.StringVar(&opts.interestRate, "interest-rate", "0", "nominal interest rate")
	f.StringVar(&opts.valueGrowth, "value-growth", "", "yearly value growth (default from PROJECTION_VALUE_GROWTH)")
	f.StringVar(&opts.rentGrowth, "rent-growth", "", "yearly rent growth (default from PROJECTION_RENT_GROWTH)")
	f.IntVar(&opts.horizon, "horizon", 0, "horizon in years (default from PROJECTION_HORIZON_YEARS)")

	f.StringVar(&opts.assetPrice, "asset-price", "", "price of an additional asset")
	f.StringVar(&opts.assetRent, "asset-rent", "0", "monthly rent of the additional asset")
	f.StringVar(&opts.assetEquity, "asset-equity", "0", "equity put into the additional asset")
	f.StringVar(&opts.assetRate, "asset-rate", "0", "interest rate of the additional asset's loan")
	f.StringVar(&opts.assetAmortization, "asset-amortization", "0", "initial amortization rate of the additional asset's loan")

	return cmd
}

func runProjection(cmd *cobra.Command, opts *runOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logging)
	log.SetOutput(cmd.ErrOrStderr())

	sc, err := buildScenario(cmd, opts, cfg)
	if err != nil {
		return err
	}

	svc := service.NewProjectionService(repository.NewMemoryProjectionCache(), cfg, log)

	var result *domain.ProjectionResult
	if sc.Asset != nil {
		combined, err := svc.Combine(cmd.Context(), sc.Input, *sc.Asset, sc.Milestones)
		if err != nil {
			return err
		}
		result = combined.Projection
	} else {
		result, err = svc.Project(cmd.Context(), sc.Input, sc.Milestones)
		if err != nil {
			return err
		}
	}

	if result.Degenerate {
		log.WithFields(logrus.Fields{
			"debt":        result.Input.OutstandingDebt.String(),
			"debtService": result.Input.AnnualDebtService.String(),
		}).Warn("Debt service does not cover interest; the debt never amortizes")
	}

	return printResult(cmd.OutOrStdout(), result, opts.every, opts.startYear)
}

func buildScenario(cmd *cobra.Command, opts *runOptions, cfg *config.Config) (*scenario, error) {
	sc := &scenario{
		Input: domain.ProjectionInput{
			ValueGrowthRate: cfg.GetValueGrowthRate(),
			RentGrowthRate:  cfg.GetRentGrowthRate(),
			HorizonYears:    cfg.Projection.HorizonYears,
		},
	}

	if opts.scenarioPath != "" {
		raw, err := os.ReadFile(opts.scenarioPath)
		if err != nil {
			return nil, fmt.Errorf("read scenario: %w", err)
		}
		if err := yaml.Unmarshal(raw, sc); err != nil {
			return nil, fmt.Errorf("parse scenario %s: %w", opts.scenarioPath, err)
		}
	}

	flags := cmd.Flags()
	decimals := []struct {
		flag   string
		value  string
		target *decimal.Decimal
	}{
		{flag: "property-value", value: opts.propertyValue, target: &sc.Input.PropertyValue},
		{flag: "debt", value: opts.debt, target: &sc.Input.OutstandingDebt},
		{flag: "rent", value: opts.rent, target: &sc.Input.AnnualRent},
		{flag: "debt-service", value: opts.debtService, target: &sc.Input.AnnualDebtService},
		{flag: "interest-rate", value: opts.interestRate, target: &sc.Input.InterestRate},
		{flag: "value-growth", value: opts.valueGrowth, target: &sc.Input.ValueGrowthRate},
		{flag: "rent-growth", value: opts.rentGrowth, target: &sc.Input.RentGrowthRate},
	}
	for _, dec := range decimals {
		if !flags.Changed(dec.flag) {
			continue
		}
		value, err := decimal.NewFromString(dec.value)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", dec.flag, err)
		}
		*dec.target = value
	}

	if flags.Changed("horizon") {
		sc.Input.HorizonYears = opts.horizon
	}

	if flags.Changed("asset-price") {
		asset, err := assetFromFlags(opts)
		if err != nil {
			return nil, err
		}
		sc.Asset = asset
	}

	return sc, nil
}

func assetFromFlags(opts *runOptions) (*domain.NewAsset, error) {
	values := make([]decimal.Decimal, 5)
	for i, raw := range []string{opts.assetPrice, opts.assetRent, opts.assetEquity, opts.assetRate, opts.assetAmortization} {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("asset flags: %w", err)
		}
		values[i] = value
	}

	return &domain.NewAsset{
		Price:            values[0],
		MonthlyRent:      values[1],
		Equity:           values[2],
		InterestRate:     values[3],
		AmortizationRate: values[4],
	}, nil
}

func printResult(out io.Writer, result *domain.ProjectionResult, every, startYear int) error {
	if every < 1 {
		every = 1
	}

	p := format.German()
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintln(tw, "Year\tCalendar\tRent\tInterest\tAmortization\tDebt\tValue\tNet wealth\t")
	last := len(result.Snapshots) - 1
	for _, s := range result.Snapshots {
		if s.Year%every != 0 && s.Year != last {
			continue
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			s.Year,
			format.CalendarYear(startYear, s.Year),
			p.Currency(s.Rent),
			p.Currency(s.Interest),
			p.Currency(s.Amortization),
			p.Currency(s.RemainingDebt),
			p.Currency(s.PropertyValue),
			p.Currency(s.NetWealth),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	summary := result.Summary
	fmt.Fprintln(out)
	if summary.FullyRepaid {
		fmt.Fprintf(out, "Debt-free in year %d (%d)\n", summary.FullRepaymentYear, format.CalendarYear(startYear, summary.FullRepaymentYear))
	} else {
		fmt.Fprintf(out, "Not fully repaid within %d years\n", summary.HorizonYears)
	}
	fmt.Fprintf(out, "Total interest: %s\n", p.Currency(summary.TotalInterestPaid))
	fmt.Fprintf(out, "Total amortization: %s\n", p.Currency(summary.TotalAmortizationPaid))
	fmt.Fprintf(out, "Blended interest rate: %s\n", p.Percent(result.Input.InterestRate, 2))

	for _, year := range sortedYears(result.Milestones) {
		s := result.Milestones[year]
		fmt.Fprintf(out, "Year %d: debt %s, net wealth %s\n", year, p.Currency(s.RemainingDebt), p.Currency(s.NetWealth))
	}

	return nil
}

func sortedYears(milestones map[int]domain.YearlySnapshot) []int {
	years := make([]int, 0, len(milestones))
	for year := range milestones {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}
