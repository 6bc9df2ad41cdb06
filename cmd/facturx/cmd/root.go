package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/facturx-studio/internal/config"
	"github.com/rezonia/facturx-studio/internal/logger"
)

var (
	version = "1.0.0"

	// Global flags
	verbose       bool
	profileFlag   string
	operatorName  string
	operatorSIRET string
	operatorVAT   string
	analysisKey   string
	analysisURL   string
	analysisModel string
	validatorTool string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "facturx",
	Short: "Generate Factur-X compliant hybrid invoice PDFs",
	Long: `Factur-X Studio converts ordinary invoice PDFs into Factur-X
compliant hybrid PDFs: a PDF with an embedded CII XML invoice under
the MINIMUM or BASIC profile.

The flow per invoice:
  1. Extract fields from the PDF (regex text scan, optional AI deep scan)
  2. Build the profile XML with reconciled monetary totals
  3. Check the XML against the official schema validator
  4. Embed the XML into the PDF as factur-x.xml

Examples:
  # Scan a PDF for invoice fields
  facturx scan invoice.pdf

  # Generate a Factur-X PDF (MINIMUM profile)
  facturx generate invoice.pdf --operator-siret 80258593400018 --operator-vat FR34802585934

  # Process a directory of PDFs into a zip bundle
  facturx batch ./invoices -o batch.zip

  # Validate generated XML
  facturx validate facturx.xml`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&profileFlag, "profile", "p", "minimum", "Compliance profile (minimum, basic)")
	rootCmd.PersistentFlags().StringVar(&operatorName, "operator-name", "", "Operator (seller) name fallback (env: FACTURX_OPERATOR_NAME)")
	rootCmd.PersistentFlags().StringVar(&operatorSIRET, "operator-siret", "", "Operator SIRET stamped as seller legal id (env: FACTURX_OPERATOR_SIRET)")
	rootCmd.PersistentFlags().StringVar(&operatorVAT, "operator-vat", "", "Operator VAT id stamped as seller tax id (env: FACTURX_OPERATOR_VAT)")
	rootCmd.PersistentFlags().StringVar(&analysisKey, "analysis-api-key", "", "API key for AI deep scan (env: FACTURX_ANALYSIS_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&analysisURL, "analysis-base-url", "", "Deep scan API base URL (env: FACTURX_ANALYSIS_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&analysisModel, "analysis-model", "", "Deep scan model (env: FACTURX_ANALYSIS_MODEL)")
	rootCmd.PersistentFlags().StringVar(&validatorTool, "validator-tool", "", "Schema validator binary (env: FACTURX_VALIDATOR_TOOL)")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	cfg = config.Load()

	if operatorName == "" {
		operatorName = cfg.OperatorName
	}
	if operatorSIRET == "" {
		operatorSIRET = cfg.OperatorSIRET
	}
	if operatorVAT == "" {
		operatorVAT = cfg.OperatorVAT
	}
	if analysisKey == "" {
		analysisKey = cfg.AnalysisAPIKey
	}
	if analysisURL == "" {
		analysisURL = cfg.AnalysisBaseURL
	}
	if analysisModel == "" {
		analysisModel = cfg.AnalysisModel
	}
	if validatorTool == "" {
		validatorTool = cfg.ValidatorTool
	}

	logCfg := cfg.LoggerConfig()
	if verbose {
		logCfg.Level = "debug"
	}
	if err := logger.Setup(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "logger setup failed: %v\n", err)
	}
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
