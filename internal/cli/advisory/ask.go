package advisory

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/krishimitra/krishi/internal/cli"
	"github.com/krishimitra/krishi/internal/constants"
	"github.com/krishimitra/krishi/internal/logger"
)

type AskCmd struct {
	Question []string `arg:"" help:"Your farming question."`
	Lang     string   `short:"l" help:"Answer language (en, ml, hi, mr)."`
}

func (c *AskCmd) Validate() error {
	return validateLang(c.Lang)
}

func (c *AskCmd) Run(ctx *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Question, " "))
	if question == "" {
		return fmt.Errorf("question must not be empty")
	}

	lang := ctx.Language(c.Lang)
	logger.Debug("Asking assistant", "lang", lang, "chars", len(question))

	answer, err := ctx.Assistant().Ask(context.Background(), question, lang)
	if err != nil {
		return fmt.Errorf("unable to get an answer: %w", err)
	}
	fmt.Println(answer)
	return nil
}

type DiagnoseCmd struct {
	Image string `arg:"" type:"existingfile" help:"Photo of the affected plant (JPEG or PNG)."`
	Lang  string `short:"l" help:"Answer language (en, ml, hi, mr)."`
}

// MaxImageBytes bounds uploads to the inline-data limit of the AI API.
const MaxImageBytes = 20 << 20

func (c *DiagnoseCmd) Validate() error {
	return validateLang(c.Lang)
}

func (c *DiagnoseCmd) Run(ctx *cli.Context) error {
	data, err := os.ReadFile(c.Image)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) > MaxImageBytes {
		return fmt.Errorf("image is %d MB, limit is %d MB", len(data)>>20, MaxImageBytes>>20)
	}

	answer, err := ctx.Assistant().AnalyzeImage(context.Background(), data, ctx.Language(c.Lang))
	if err != nil {
		return fmt.Errorf("unable to analyze the image: %w", err)
	}
	fmt.Println(answer)
	return nil
}

func validateLang(lang string) error {
	if lang == "" {
		return nil
	}
	if _, ok := constants.Languages[lang]; !ok {
		return fmt.Errorf("unsupported language %q (use en, ml, hi or mr)", lang)
	}
	return nil
}
