package cmd

import (
	"fmt"

	"github.com/rezonia/facturx-studio/internal/extract"
	"github.com/rezonia/facturx-studio/internal/llm"
	"github.com/rezonia/facturx-studio/internal/model"
	"github.com/rezonia/facturx-studio/internal/processor"
	"github.com/rezonia/facturx-studio/internal/validator"
)

func selectedProfile() (model.Profile, error) {
	switch profileFlag {
	case "minimum", "":
		return model.ProfileMinimum, nil
	case "basic":
		return model.ProfileBasic, nil
	default:
		return "", fmt.Errorf("unknown profile %q (want minimum or basic)", profileFlag)
	}
}

func operatorParty() model.Party {
	return model.Party{
		Name:    operatorName,
		LegalID: operatorSIRET,
		VATID:   operatorVAT,
	}
}

func newPipeline() *processor.Pipeline {
	opts := []processor.Option{}

	if analysisKey != "" {
		client := llm.NewClient(llm.Config{
			APIKey:  analysisKey,
			BaseURL: analysisURL,
			Model:   analysisModel,
		})
		opts = append(opts, processor.WithDeepExtractor(extract.NewDeepExtractor(client)))
		printVerbose("AI deep scan enabled\n")
	}

	var validatorOpts []validator.Option
	if validatorTool != "" {
		validatorOpts = append(validatorOpts, validator.WithTool(validatorTool))
	}
	check := validator.New(validatorOpts...)
	if !check.Available() {
		printVerbose("no schema validator found, validation will be skipped\n")
	}
	opts = append(opts, processor.WithValidator(check))

	return processor.NewPipeline(opts...)
}
