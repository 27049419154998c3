// cmd/tools/extract-query/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"chatbus/internal/features"
	"chatbus/internal/models"
	"chatbus/internal/nlp"
)

type extractOutput struct {
	Language        models.Language        `json:"language"`
	MessageType     models.MessageType     `json:"messageType"`
	ExtractedData   models.StructuredQuery `json:"extractedData"`
	DefaultedFields []string               `json:"defaultedFields"`
	Recovered       bool                   `json:"recovered"`
}

type vectorOutput struct {
	ExtractedData models.StructuredQuery `json:"extractedData"`
	FeatureOrder  []string               `json:"featureOrder"`
	Features      []float64              `json:"features"`
}

func main() {
	extractCmd := flag.NewFlagSet("extract", flag.ExitOnError)
	vectorCmd := flag.NewFlagSet("vector", flag.ExitOnError)

	// Extract command flags
	promptExtract := extractCmd.String("prompt", "", "Question to analyse (e.g., \"How many passengers tomorrow at 8am?\")")
	nowExtract := extractCmd.String("now", "", "Reference time, RFC3339 or YYYY-MM-DD (defaults to the current time)")
	tzExtract := extractCmd.String("tz", "Africa/Dar_es_Salaam", "Timezone used to resolve relative dates")

	// Vector command flags
	promptVector := vectorCmd.String("prompt", "", "Question to encode")
	nowVector := vectorCmd.String("now", "", "Reference time, RFC3339 or YYYY-MM-DD")
	tzVector := vectorCmd.String("tz", "Africa/Dar_es_Salaam", "Timezone used to resolve relative dates")
	encodersPath := vectorCmd.String("encoders", "", "Path to an encoder vocabulary JSON file (defaults to the built-in labels)")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "extract":
		extractCmd.Parse(os.Args[2:])
		extractor, prompt := mustSetup(extractCmd, *promptExtract, *nowExtract, *tzExtract)

		result := extractor.Extract(prompt)
		defaulted := result.DefaultedFields
		if defaulted == nil {
			defaulted = []string{}
		}
		printJSON(extractOutput{
			Language:        nlp.DetectLanguage(prompt),
			MessageType:     nlp.ClassifyIntent(prompt),
			ExtractedData:   result.Query,
			DefaultedFields: defaulted,
			Recovered:       result.Recovered,
		})

	case "vector":
		vectorCmd.Parse(os.Args[2:])
		extractor, prompt := mustSetup(vectorCmd, *promptVector, *nowVector, *tzVector)

		vocab := features.DefaultVocabulary()
		if *encodersPath != "" {
			var err error
			vocab, err = features.LoadVocabulary(*encodersPath)
			if err != nil {
				fmt.Printf("Error loading encoders: %v\n", err)
				os.Exit(1)
			}
		}
		assembler, err := features.NewAssembler(vocab)
		if err != nil {
			fmt.Printf("Error building encoders: %v\n", err)
			os.Exit(1)
		}

		query := extractor.Extract(prompt).Query
		vector, err := assembler.Assemble(query)
		if err != nil {
			fmt.Printf("Error assembling features: %v\n", err)
			os.Exit(1)
		}
		printJSON(vectorOutput{
			ExtractedData: query,
			FeatureOrder:  features.FeatureOrder,
			Features:      vector.Slice(),
		})

	case "help":
		help()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		help()
		os.Exit(1)
	}
}

func mustSetup(cmd *flag.FlagSet, prompt, now, tz string) (*nlp.Extractor, string) {
	if strings.TrimSpace(prompt) == "" {
		fmt.Println("Error: prompt is required.")
		cmd.Usage()
		os.Exit(1)
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		fmt.Printf("Error: unknown timezone %q: %v\n", tz, err)
		os.Exit(1)
	}

	opts := []nlp.ExtractorOption{nlp.WithLocation(loc)}
	if now != "" {
		ref, err := parseReference(now, loc)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		opts = append(opts, nlp.WithClock(func() time.Time { return ref }))
	}
	return nlp.NewExtractor(opts...), prompt
}

func parseReference(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(models.DateLayout, value, loc); err == nil {
		return t.Add(12 * time.Hour), nil
	}
	return time.Time{}, fmt.Errorf("invalid reference time %q, want RFC3339 or YYYY-MM-DD", value)
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Error encoding output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

func help() {
	fmt.Println("Usage: extract-query <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  extract   Detect language, intent and query fields in a prompt")
	fmt.Println("  vector    Print the model feature vector for a prompt")
	fmt.Println("  help      Show this help message")
}
