package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/gitbro/gitbro/internal/pkg/config"
)

// providerLabels maps provider identifiers to menu labels.
var providerLabels = map[string]string{
	config.ProviderOpenAI: "OpenAI",
	config.ProviderGemini: "Google Gemini",
	config.ProviderClaude: "Anthropic Claude",
	config.ProviderOllama: "Ollama (Local)",
}

// RunInteractiveSetup runs the setup wizard. With preselected non-empty the
// provider choice is skipped and only that provider is configured.
func RunInteractiveSetup(store *config.Store, preselected string) error {
	provider := preselected

	if provider == "" {
		fmt.Println("Let's set up gitbro!")
		fmt.Println()

		statuses := store.ListProviders()
		options := make([]huh.Option[string], 0, len(config.KnownProviders))
		for _, id := range config.KnownProviders {
			label := providerLabels[id]
			if statuses[id] {
				label += " (configured)"
			}
			options = append(options, huh.NewOption(label, id))
		}

		err := huh.NewSelect[string]().
			Title("Select AI Provider").
			Options(options...).
			Value(&provider).
			Run()
		if err != nil {
			return err
		}
	}

	apiKey := store.APIKey(provider)
	model := store.Model(provider)
	temperature := strconv.FormatFloat(store.Temperature(), 'f', 1, 64)
	endpoint := store.Endpoint(provider)

	fields := []huh.Field{}

	if provider != config.ProviderOllama {
		fields = append(fields,
			huh.NewInput().
				Title("API Key").
				Description("Stored locally with owner-only file permissions").
				Value(&apiKey).
				Password(true).
				Validate(func(s string) error {
					if len(strings.TrimSpace(s)) < 5 {
						return fmt.Errorf("api key too short")
					}
					return nil
				}),
		)
	}

	fields = append(fields,
		huh.NewInput().
			Title("Model Name").
			Description(fmt.Sprintf("Default: %s", config.DefaultModel(provider))).
			Value(&model).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("model name cannot be empty")
				}
				return nil
			}),
	)

	if provider == config.ProviderOllama {
		if endpoint == "" {
			endpoint = "http://localhost:11434"
		}
		fields = append(fields,
			huh.NewInput().
				Title("Server URL").
				Description("Address of the Ollama server").
				Value(&endpoint),
		)
	}

	fields = append(fields,
		huh.NewInput().
			Title("Temperature").
			Description("Sampling temperature, 0.0 to 2.0").
			Value(&temperature).
			Validate(func(s string) error {
				if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
					return fmt.Errorf("must be a number")
				}
				return nil
			}),
	)

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return err
	}

	if err := store.SetProvider(provider); err != nil {
		return err
	}
	if provider != config.ProviderOllama {
		if err := store.SetAPIKey(provider, strings.TrimSpace(apiKey)); err != nil {
			return err
		}
	}
	if err := store.SetModel(provider, strings.TrimSpace(model)); err != nil {
		return err
	}
	if provider == config.ProviderOllama && strings.TrimSpace(endpoint) != "" {
		if err := store.SetEndpoint(provider, strings.TrimSpace(endpoint)); err != nil {
			return err
		}
	}
	t, _ := strconv.ParseFloat(strings.TrimSpace(temperature), 64)
	if err := store.SetTemperature(t); err != nil {
		return err
	}

	fmt.Printf("\nConfiguration saved to %s\n", store.Path())
	fmt.Println("Setup complete! You can now use gitbro.")
	fmt.Println()

	return nil
}
