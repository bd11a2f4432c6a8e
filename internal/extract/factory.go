package extract

import (
	"fmt"
	"strings"

	"github.com/framecheck/framecheck/internal/common"
)

// NewClient creates a raw provider client based on the provided configuration.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return newOpenAIClient(cfg)
	case "anthropic":
		return newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported extraction provider %q", common.ErrInvalidConfig, cfg.Provider)
	}
}
