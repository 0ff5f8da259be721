package config

import (
	"fmt"
	"strings"
	"time"
)

// DefaultPath is the config file read when --config is not given.
const DefaultPath = "ercwiki.yml"

// Confluence defaults.
const (
	defaultTimeout     = 30 * time.Second
	defaultMaxAttempts = 1
)

// Config is the ercwiki configuration. It is loaded and validated once at
// startup and passed explicitly to each command.
type Config struct {
	Confluence ConfluenceConfig `yaml:"confluence"`
	Logging    LoggingConfig    `yaml:"logging"`
	Projects   ProjectsConfig   `yaml:"projects"`
	Scrape     ScrapeConfig     `yaml:"scrape"`
}

// ConfluenceConfig holds the wiki connection and placement settings.
type ConfluenceConfig struct {
	URL          string `env:"CONFLUENCE_URL"            yaml:"url"`
	Username     string `env:"CONFLUENCE_USERNAME"       yaml:"username"`
	APIToken     string `env:"CONFLUENCE_API_TOKEN"      yaml:"api_token"`
	SpaceKey     string `env:"CONFLUENCE_SPACE_KEY,CONFLUENCE_SPACE" yaml:"space_key"`
	ParentPageID string `env:"CONFLUENCE_PARENT_PAGE_ID" yaml:"parent_page_id"`
	// Timeout bounds each HTTP request.
	Timeout time.Duration `env:"CONFLUENCE_TIMEOUT" yaml:"timeout"`
	// MaxAttempts of 1 disables retries.
	MaxAttempts int `env:"CONFLUENCE_MAX_ATTEMPTS" yaml:"max_attempts"`
}

// SetDefaults applies default values for ConfluenceConfig.
func (c *ConfluenceConfig) SetDefaults() {
	c.URL = strings.TrimRight(c.URL, "/")
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
}

// Validate checks the settings every command needs.
func (c *ConfluenceConfig) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"CONFLUENCE_URL", c.URL},
		{"CONFLUENCE_USERNAME", c.Username},
		{"CONFLUENCE_API_TOKEN", c.APIToken},
		{"CONFLUENCE_SPACE_KEY", c.SpaceKey},
	}
	for _, r := range required {
		if err := ValidateRequired(r.field, r.value); err != nil {
			return err
		}
	}
	if err := ValidateURL("CONFLUENCE_URL", c.URL); err != nil {
		return err
	}
	if c.MaxAttempts < 1 {
		return &ValidationError{Field: "CONFLUENCE_MAX_ATTEMPTS", Message: "must be at least 1"}
	}
	return nil
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// SetDefaults applies default values for LoggingConfig.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
}

// Validate validates a LoggingConfig.
func (c *LoggingConfig) Validate() error {
	if err := ValidateLogLevel(c.Level); err != nil {
		return err
	}
	return ValidateLogFormat(c.Format)
}

// ProjectTarget is one research-project listing to mirror into the wiki.
type ProjectTarget struct {
	URL     string `yaml:"url"`
	Title   string `yaml:"title"`
	CSVFile string `yaml:"csv_file"`

	// SkipRows drops listing rows by their first cell.
	SkipRows []string `yaml:"skip_rows"`
}

// ProjectsConfig configures the projects command.
type ProjectsConfig struct {
	ParentPageID   string          `env:"PROJECTS_PARENT_PAGE_ID" yaml:"parent_page_id"`
	HyperlinksFile string          `yaml:"hyperlinks_file"`
	Targets        []ProjectTarget `yaml:"targets"`
}

// SetDefaults applies the UT Austin ERC listings when no targets are configured.
func (c *ProjectsConfig) SetDefaults() {
	if c.HyperlinksFile == "" {
		c.HyperlinksFile = "combined_hyperlinks.csv"
	}
	if len(c.Targets) == 0 {
		c.Targets = []ProjectTarget{
			{
				URL:     "https://texaserc.utexas.edu/projects/current-research-projects/",
				Title:   "UT Austin ERC - Current Research Projects",
				CSVFile: "current_research_projects.csv",
			},
			{
				URL:      "https://texaserc.utexas.edu/projects/past-research-projects/",
				Title:    "UT Austin ERC - Past Research Projects",
				CSVFile:  "past_research_projects.csv",
				SkipRows: []string{"149"},
			},
		}
	}
}

// Validate checks the projects section.
func (c *ProjectsConfig) Validate() error {
	if err := ValidateRequired("PROJECTS_PARENT_PAGE_ID", c.ParentPageID); err != nil {
		return err
	}
	for i, target := range c.Targets {
		if err := ValidateURL(fmt.Sprintf("projects.targets[%d].url", i), target.URL); err != nil {
			return err
		}
		if target.Title == "" {
			return &ValidationError{Field: fmt.Sprintf("projects.targets[%d].title", i), Message: "is required"}
		}
	}
	return nil
}

// PublicationSource is one ERC publication listing scraped into the
// publications CSV.
type PublicationSource struct {
	URL     string `yaml:"url"`
	Title   string `yaml:"title"`
	ERC     string `yaml:"erc"`
	CSVFile string `yaml:"csv_file"`
	// Type is recorded on every entry of the listing.
	Type string `yaml:"type"`
}

// ScrapeConfig configures the scrape command.
type ScrapeConfig struct {
	Output  string              `env:"SCRAPE_OUTPUT" yaml:"output"`
	Sources []PublicationSource `yaml:"sources"`
}

// SetDefaults applies the known ERC publication listings when no sources are configured.
func (c *ScrapeConfig) SetDefaults() {
	if c.Output == "" {
		c.Output = "erc_publications.csv"
	}
	if len(c.Sources) == 0 {
		c.Sources = defaultPublicationSources()
	}
	for i := range c.Sources {
		if c.Sources[i].Type == "" {
			c.Sources[i].Type = "Publication"
		}
	}
}

func defaultPublicationSources() []PublicationSource {
	return []PublicationSource{
		{
			URL:     "https://texaserc.utexas.edu/about-us/publications/policy-briefs/",
			Title:   "UT Austin ERC - Policy Briefs",
			ERC:     "UT Austin",
			CSVFile: "ut_austin_policy_briefs.csv",
			Type:    "Policy Brief",
		},
		{
			URL:     "https://texaserc.utexas.edu/about-us/publications/other-publications/",
			Title:   "UT Austin ERC - Other Publications",
			ERC:     "UT Austin",
			CSVFile: "ut_austin_other_publications.csv",
			Type:    "Publication",
		},
		{
			URL:     "https://tsp.utdallas.edu/publications/research-areas/",
			Title:   "UTD TSP - Research Areas",
			ERC:     "UT Dallas",
			CSVFile: "ut_dallas_research_areas.csv",
			Type:    "Research Publication",
		},
		{
			URL:     "https://tsp.utdallas.edu/publications/published-work/",
			Title:   "UTD TSP - Published Work",
			ERC:     "UT Dallas",
			CSVFile: "ut_dallas_published_work.csv",
			Type:    "Published Work",
		},
		{
			URL:     "https://tsp.utdallas.edu/publications/working-papers/",
			Title:   "UTD TSP - Working Papers",
			ERC:     "UT Dallas",
			CSVFile: "ut_dallas_working_papers.csv",
			Type:    "Working Paper",
		},
		{
			URL:     "https://uh.edu/education/research/institutes-centers/erc/project-policy-briefs/",
			Title:   "UH ERC - Project Policy Briefs",
			ERC:     "University of Houston",
			CSVFile: "u_houston_project_policy_briefs.csv",
			Type:    "Policy Brief",
		},
		{
			URL:     "https://uh.edu/education/research/institutes-centers/erc/reports-publications/",
			Title:   "UH ERC - Reports and Publications",
			ERC:     "University of Houston",
			CSVFile: "u_houston_reports_publications.csv",
			Type:    "Publication",
		},
	}
}

// Validate checks the scrape section.
func (c *ScrapeConfig) Validate() error {
	if err := ValidateRequired("SCRAPE_OUTPUT", c.Output); err != nil {
		return err
	}
	for i, src := range c.Sources {
		if err := ValidateURL(fmt.Sprintf("scrape.sources[%d].url", i), src.URL); err != nil {
			return err
		}
		if src.ERC == "" {
			return &ValidationError{Field: fmt.Sprintf("scrape.sources[%d].erc", i), Message: "is required"}
		}
	}
	return nil
}

// Validate validates the sections shared by every command.
func (c *Config) Validate() error {
	if err := c.Confluence.Validate(); err != nil {
		return fmt.Errorf("confluence: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

// ValidatePublisher additionally requires the publications parent page.
func (c *Config) ValidatePublisher() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := ValidateRequired("CONFLUENCE_PARENT_PAGE_ID", c.Confluence.ParentPageID); err != nil {
		return fmt.Errorf("confluence: %w", err)
	}
	return nil
}

// ValidateProjects additionally requires the projects section.
func (c *Config) ValidateProjects() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := c.Projects.Validate(); err != nil {
		return fmt.Errorf("projects: %w", err)
	}
	return nil
}

// ValidateScrape checks what the scrape command needs. Scraping never talks
// to Confluence, so the connection settings are not required.
func (c *Config) ValidateScrape() error {
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Scrape.Validate(); err != nil {
		return fmt.Errorf("scrape: %w", err)
	}
	return nil
}

func setDefaults(c *Config) {
	c.Confluence.SetDefaults()
	c.Logging.SetDefaults()
	c.Projects.SetDefaults()
	c.Scrape.SetDefaults()
}

// LoadConfig loads configuration from path (optional file) plus the environment.
// Validation is left to the caller, since each command requires different fields.
func LoadConfig(path string) (*Config, error) {
	cfg, err := LoadWithDefaults[Config](path, setDefaults)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigLoadFailed, err)
	}
	return cfg, nil
}
