package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/facturx-studio/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for Factur-X generation.

The API provides endpoints for:
  - POST /api/v1/generate/minimum  - Build MINIMUM profile XML from JSON fields
  - POST /api/v1/generate/basic    - Build BASIC profile XML from JSON fields
  - POST /api/v1/process/pdf       - PDF in, Factur-X PDF out
  - POST /api/v1/validate          - Run the schema validator on XML
  - POST /api/v1/scan              - Extract fields from a PDF
  - GET  /health                   - Health check

Examples:
  facturx serve
  facturx serve --address :8080 --operator-siret 80258593400018 --operator-vat FR34802585934
  facturx serve --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", ":8080", "Server listen address")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 5*time.Minute, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	srvConfig := &server.Config{
		Address:       serverAddr,
		Operator:      operatorParty(),
		AnalysisKey:   analysisKey,
		AnalysisURL:   analysisURL,
		AnalysisModel: analysisModel,
		ValidatorTool: validatorTool,
		ReadTimeout:   readTimeout,
		WriteTimeout:  writeTimeout,
		Debug:         serverDebug,
	}

	srv := server.NewServer(srvConfig)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")
		os.Exit(0)
	}()

	fmt.Printf("Starting server on %s\n", serverAddr)
	if analysisKey != "" {
		fmt.Println("AI deep scan enabled")
	} else {
		fmt.Println("AI deep scan disabled (no API key)")
	}

	return srv.Run()
}
