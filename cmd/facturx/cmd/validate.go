package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/facturx-studio/internal/model"
	"github.com/rezonia/facturx-studio/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate Factur-X XML files",
	Long: `Run the external schema validator on one or more generated XML
files. Requires facturx-xmlcheck (or --validator-tool) on PATH.

Examples:
  facturx validate facturx.xml
  facturx validate -p basic out/*.xml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	profile, err := selectedProfile()
	if err != nil {
		return err
	}

	var opts []validator.Option
	if validatorTool != "" {
		opts = append(opts, validator.WithTool(validatorTool))
	}
	check := validator.New(opts...)
	if !check.Available() {
		return fmt.Errorf("no schema validator found on PATH; install factur-x or pass --validator-tool")
	}

	failed := 0
	for _, file := range args {
		xmlData, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", file, err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err = check.Validate(ctx, profile, xmlData)
		cancel()

		if err != nil {
			failed++
			fmt.Printf("%s: FAIL\n", file)
			if verr, ok := err.(*model.ValidationError); ok && verr.Diagnostic != "" {
				fmt.Printf("  %s\n", verr.Diagnostic)
			}
			continue
		}
		fmt.Printf("%s: OK\n", file)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed validation", failed, len(args))
	}
	return nil
}
