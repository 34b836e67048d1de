package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/hackforge/hackathon-service/internal/domain"
)

// StatusTemplate is the email sent when a hacker moves into a status.
type StatusTemplate struct {
	Subject string
	Body    string
}

type statusTemplateEntry struct {
	Status   string `mapstructure:"status"`
	Subject  string `mapstructure:"subject"`
	BodyFile string `mapstructure:"body_file"`
}

// LoadStatusTemplates reads the status to template mapping from a YAML file.
// Body files are resolved relative to the mapping file. Every status in
// statuses must have an entry.
func LoadStatusTemplates(path string, statuses []domain.HackerStatus) (map[domain.HackerStatus]StatusTemplate, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read status templates %s: %w", path, err)
	}

	var entries []statusTemplateEntry
	if err := v.UnmarshalKey("templates", &entries); err != nil {
		return nil, fmt.Errorf("decode status templates: %w", err)
	}

	baseDir := filepath.Dir(path)
	templates := make(map[domain.HackerStatus]StatusTemplate, len(entries))
	for _, entry := range entries {
		status := domain.HackerStatus(strings.TrimSpace(entry.Status))
		if status == "" {
			return nil, fmt.Errorf("status template without status")
		}
		bodyPath := entry.BodyFile
		if !filepath.IsAbs(bodyPath) {
			bodyPath = filepath.Join(baseDir, bodyPath)
		}
		body, err := os.ReadFile(bodyPath)
		if err != nil {
			return nil, fmt.Errorf("read template body for %s: %w", status, err)
		}
		templates[status] = StatusTemplate{Subject: entry.Subject, Body: string(body)}
	}

	var missing []string
	for _, status := range statuses {
		if _, ok := templates[status]; !ok {
			missing = append(missing, string(status))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("no status template for: %s", strings.Join(missing, ", "))
	}
	return templates, nil
}
