// Package persona loads the persona/job descriptor that drives relevance
// ranking.
package persona

import (
	"fmt"

	"github.com/spf13/viper"
)

// Descriptor identifies the target reader and their task.
type Descriptor struct {
	Persona     string `mapstructure:"persona" json:"persona"`
	JobToBeDone string `mapstructure:"job_to_be_done" json:"job_to_be_done"`
}

// Load reads a descriptor file (JSON, or any format viper recognizes by
// extension). Both fields are required.
func Load(path string) (Descriptor, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Descriptor{}, fmt.Errorf("read persona file: %w", err)
	}

	var d Descriptor
	if err := v.Unmarshal(&d); err != nil {
		return Descriptor{}, fmt.Errorf("parse persona file: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

// Validate checks that both descriptor fields are present.
func (d Descriptor) Validate() error {
	if d.Persona == "" {
		return fmt.Errorf("persona is required")
	}
	if d.JobToBeDone == "" {
		return fmt.Errorf("job_to_be_done is required")
	}
	return nil
}
