// Package generate implements the generator tools: passwords, business
// names, UTM links and sitemaps.
package generate

import (
	"github.com/D-dracula/MicroTools-sub001/internal/config"
	"github.com/D-dracula/MicroTools-sub001/pkg/logger"
)

// Service holds the word tables and logger shared by the generators.
type Service struct {
	tools *config.Tools
	log   *logger.Logger
}

// New constructs a generate service.
func New(tools *config.Tools, log *logger.Logger) *Service {
	if tools == nil {
		tools = config.DefaultTools()
	}
	if log == nil {
		log = logger.NewDefault("generate")
	}
	return &Service{tools: tools, log: log}
}
