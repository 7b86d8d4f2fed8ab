package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/taxdesk/internal/core/domain"
)

var reportJSON bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate AI tax reports",
}

var reportGenerateCmd = &cobra.Command{
	Use:   "generate [doc-id]",
	Short: "Generate the AI tax report for a document",
	Long: `Sends the document's extracted data to the report service and prints
the resulting tax report, comparing the old and new regimes.`,
	Args: cobra.ExactArgs(1),
	RunE: runReportGenerate,
}

func init() {
	reportGenerateCmd.Flags().BoolVar(&reportJSON, "json", false, "output the report as JSON")
	reportCmd.AddCommand(reportGenerateCmd)
	rootCmd.AddCommand(reportCmd)
}

// reportJSONOutput is the --json shape of a report.
type reportJSONOutput struct {
	DocumentID         string  `json:"documentId"`
	TotalIncome        float64 `json:"totalIncome"`
	TotalTaxOld        float64 `json:"totalTaxOld"`
	TotalTaxNew        float64 `json:"totalTaxNew"`
	TaxDueOrRefundOld  float64 `json:"taxDueOrRefundOld"`
	TaxDueOrRefundNew  float64 `json:"taxDueOrRefundNew"`
	InvestmentInsights string  `json:"investmentInsights"`
}

func runReportGenerate(cmd *cobra.Command, args []string) error {
	report, err := selectDocument(cmd, args[0])
	if err != nil {
		return err
	}

	if reportJSON {
		data, err := json.MarshalIndent(reportJSONOutput{
			DocumentID:         args[0],
			TotalIncome:        report.TotalIncome,
			TotalTaxOld:        report.TotalTaxOld,
			TotalTaxNew:        report.TotalTaxNew,
			TaxDueOrRefundOld:  report.TaxDueOrRefundOld,
			TaxDueOrRefundNew:  report.TaxDueOrRefundNew,
			InvestmentInsights: report.InvestmentInsights,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printReport(cmd, report)
	return nil
}

// selectDocument loads the documents, activates id and waits for its report.
func selectDocument(cmd *cobra.Command, id string) (*domain.AIReport, error) {
	if deskService == nil {
		return nil, fmt.Errorf("desk: %w", errNotConfigured)
	}

	if _, err := deskService.Load(cmd.Context()); err != nil {
		printNotice(cmd, domain.Notice{Kind: domain.NoticeError, Text: domain.TextLoadFailed})
		return nil, err
	}

	printNotice(cmd, domain.Notice{Kind: domain.NoticeLoading, Text: domain.TextGenerating})
	report, notice, err := deskService.Select(cmd.Context(), id)
	printNotice(cmd, notice)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// printReport writes the report panel.
func printReport(cmd *cobra.Command, r *domain.AIReport) {
	cmd.Println("AI Tax Report")
	cmd.Println("=============")

	summary := r.Summary()
	width := 0
	for _, f := range summary {
		width = max(width, len(f.Key))
	}
	for _, f := range summary {
		cmd.Printf("  %-*s  %s\n", width+1, f.Key+":", f.Value)
	}

	cmd.Println()
	regimes := r.Regimes()
	for i, reg := range regimes {
		line := fmt.Sprintf("  %-10s tax %s, %s", reg.Name, domain.FormatAmount(reg.Tax), dueOrRefund(reg.DueOrRefund))
		if reg.Tax < regimes[1-i].Tax {
			line += " (lower tax)"
		}
		cmd.Println(line)
	}

	if insights := strings.TrimSpace(r.InvestmentInsights); insights != "" {
		cmd.Println()
		cmd.Println("Investment Insights")
		cmd.Println("-------------------")
		cmd.Println(insights)
	}
}

// dueOrRefund describes a balance: positive is due, negative is a refund.
func dueOrRefund(v float64) string {
	if v < 0 {
		return "refund " + domain.FormatAmount(-v)
	}
	return "due " + domain.FormatAmount(v)
}
