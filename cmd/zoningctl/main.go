package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"feasibility/models"
	"feasibility/repository"
	"feasibility/services"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "zoningctl",
		Short:        "Evaluate plot feasibility against zoning rule tables",
		SilenceUsage: true,
	}
	root.AddCommand(evaluateCmd())
	root.AddCommand(reportCmd())
	root.AddCommand(rulesCmd())
	return root
}

// plotFlags are shared by evaluate and report.
type plotFlags struct {
	name       string
	typ        string
	plotArea   float64
	roadWidth  float64
	rulesFiles []string
	revision   string
}

func (p *plotFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.name, "name", "", "project name")
	cmd.Flags().StringVarP(&p.typ, "type", "t", "", "building type (Residential, Commercial, Mixed Use, Industrial, Institutional)")
	cmd.Flags().Float64VarP(&p.plotArea, "plot-area", "a", 0, "plot area in sq.ft")
	cmd.Flags().Float64VarP(&p.roadWidth, "road-width", "w", 0, "abutting road width in metres")
	cmd.Flags().StringSliceVar(&p.rulesFiles, "rules", nil, "rule files (.yaml or .xlsx); built-in tables when empty")
	cmd.Flags().StringVar(&p.revision, "revision", "", "rule revision to evaluate against")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("plot-area")
	_ = cmd.MarkFlagRequired("road-width")
}

func loadRegistry(files []string) (*services.Registry, error) {
	if len(files) == 0 {
		return services.NewRegistry(repository.DefaultRevision, repository.DefaultRuleSet())
	}
	sets := make([]models.RuleSet, 0, len(files))
	for _, path := range files {
		rs, err := repository.LoadRuleFile(path)
		if err != nil {
			return nil, fmt.Errorf("rule file %s: %w", path, err)
		}
		sets = append(sets, rs)
	}
	return services.NewRegistry("", sets...)
}

func (p *plotFlags) evaluate() (services.Report, error) {
	reg, err := loadRegistry(p.rulesFiles)
	if err != nil {
		return services.Report{}, err
	}
	ev, err := reg.Evaluator(p.revision)
	if err != nil {
		return services.Report{}, err
	}
	bt, err := models.ParseBuildingType(p.typ)
	if err != nil {
		return services.Report{}, err
	}
	res, err := ev.Evaluate(models.ProjectInput{
		ProjectName:  p.name,
		BuildingType: bt,
		PlotArea:     p.plotArea,
		RoadWidth:    p.roadWidth,
	})
	if err != nil {
		return services.Report{}, err
	}
	return services.Report{ID: uuid.New().String(), GeneratedAt: time.Now(), Result: res}, nil
}

func evaluateCmd() *cobra.Command {
	var (
		flags  plotFlags
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Print the feasibility summary for one plot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rep, err := flags.evaluate()
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(models.FeasibilityResponse{
					ReportID:    rep.ID,
					GeneratedAt: rep.GeneratedAt,
					Result:      rep.Result.Rounded(),
					Note:        models.FeasibilityNote,
				})
			}
			printSummary(cmd.OutOrStdout(), rep.Result.Rounded())
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	return cmd
}

func reportCmd() *cobra.Command {
	var (
		flags plotFlags
		out   string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the feasibility report as PDF or XLSX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rep, err := flags.evaluate()
			if err != nil {
				return err
			}
			if err := writeReport(out, rep); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (report %s)\n", out, rep.ID)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "feasibility_report.pdf", "output file (.pdf or .xlsx)")
	return cmd
}

func writeReport(path string, rep services.Report) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := services.WritePDF(f, rep); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	case ".xlsx":
		wb, err := services.NewReportWorkbook(rep)
		if err != nil {
			return err
		}
		defer wb.Close()
		return wb.SaveAs(path)
	default:
		return fmt.Errorf("unsupported report format %q (want .pdf or .xlsx)", filepath.Ext(path))
	}
}

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and export rule tables",
	}
	cmd.AddCommand(rulesExportCmd())
	return cmd
}

func rulesExportCmd() *cobra.Command {
	var (
		rulesFiles []string
		revision   string
		out        string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a rule revision as YAML or an editable workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := loadRegistry(rulesFiles)
			if err != nil {
				return err
			}
			if revision == "" {
				revision = reg.DefaultRevision()
			}
			rs, ok := reg.RuleSet(revision)
			if !ok {
				return fmt.Errorf("unknown rule revision %q", revision)
			}
			if err := exportRuleSet(out, rs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote revision %s to %s\n", rs.Revision, out)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&rulesFiles, "rules", nil, "rule files to read; built-in tables when empty")
	cmd.Flags().StringVar(&revision, "revision", "", "revision to export (default revision when empty)")
	cmd.Flags().StringVarP(&out, "out", "o", "rules.yaml", "output file (.yaml, .yml or .xlsx)")
	return cmd
}

func exportRuleSet(path string, rs models.RuleSet) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := repository.WriteYAMLRuleSet(f, rs); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	case ".xlsx":
		wb, err := repository.NewRuleWorkbook(rs)
		if err != nil {
			return err
		}
		defer wb.Close()
		return wb.SaveAs(path)
	default:
		return fmt.Errorf("unsupported rule file type %q (want .yaml, .yml or .xlsx)", filepath.Ext(path))
	}
}

func printSummary(w io.Writer, res models.FeasibilityResult) {
	fmt.Fprintln(w, "Basic Controls")
	fmt.Fprintf(w, "  Permissible FSI:               %.2f\n", res.FSI)
	fmt.Fprintf(w, "  Height Limit (m):              %.2f\n", res.HeightLimit)
	fmt.Fprintf(w, "  Estimated Floors (Zone-based): %d\n", res.FloorCount)

	fmt.Fprintln(w, "Area Statement")
	fmt.Fprintf(w, "  Total Built-up Area (sq.ft):   %.2f\n", res.Area.TotalBuiltUp)
	if s := res.Area.Split; s != nil {
		fmt.Fprintf(w, "  Typical Floor Plate (sq.ft):   %.2f\n", s.FloorPlate)
		fmt.Fprintf(w, "  Core Area (sq.ft):             %.2f\n", s.CoreArea)
		fmt.Fprintf(w, "  Sellable Area (sq.ft):         %.2f\n", s.SellableArea)
	}

	fmt.Fprintln(w, "Setbacks (m)")
	fmt.Fprintf(w, "  Front: %.2f  Side: %.2f  Rear: %.2f\n", res.Setbacks.Front, res.Setbacks.Side, res.Setbacks.Rear)

	fmt.Fprintln(w, "Parking")
	fmt.Fprintf(w, "  Parking Required (Cars):       %d\n", res.ParkingRequired)

	if res.Fire != nil {
		fmt.Fprintln(w, "Fire Classification")
		fmt.Fprintf(w, "  Building Category: %s\n", res.Fire.Category)
		fmt.Fprintf(w, "  Compliance:        %s\n", res.Fire.ComplianceNote)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, models.FeasibilityNote)
}
