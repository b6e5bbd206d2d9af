package config

import (
	"fmt"
	"io/ioutil"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/SwufeNinja/texas-tableclient/internal/util"
)

// Profile contains the player profile YAML content for the terminal client.
type Profile struct {
	ServerURL string   `yaml:"server-url"`
	PlayerID  string   `yaml:"player-id"`
	Name      string   `yaml:"name"`
	AIPlayers []AISeat `yaml:"ai-players"`
}

// AISeat is an AI participant the client offers to add to the table.
type AISeat struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// ReadProfile loads a profile YAML file and fills in defaults.
func ReadProfile(fileName string) (*Profile, error) {
	bytes, err := ioutil.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "Error reading profile file [%s]", fileName)
	}

	var profile Profile
	err = yaml.Unmarshal(bytes, &profile)
	if err != nil {
		return nil, errors.Wrapf(err, "Error parsing YAML file [%s]", fileName)
	}
	profile.ApplyDefaults()
	return &profile, nil
}

// DefaultProfile is the profile used when no file is given.
func DefaultProfile() *Profile {
	var profile Profile
	profile.ApplyDefaults()
	return &profile
}

// ApplyDefaults fills blank fields: server address from the environment and
// a generated guest identity.
func (p *Profile) ApplyDefaults() {
	if p.ServerURL == "" {
		p.ServerURL = util.Env.GetServerURL()
	}
	if p.PlayerID == "" {
		p.PlayerID = fmt.Sprintf("guest-%s", uuid.New().String()[:8])
	}
	if p.Name == "" {
		p.Name = p.PlayerID
	}
}
