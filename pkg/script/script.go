// Package script replays a YAML session of configurator intents, the way a
// user would click through the product page.
//
//	name: eco with logo
//	steps:
//	  - product_type: eco
//	  - upload: logo.png
//	  - background: "#ffffff"
//	  - product_type: printed
//	  - text: ACME
//	  - material: kraft
//	    expect_error: true
package script

import (
	"errors"
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/user/tapestudio/pkg/ports"
)

// Action identifies the intent of a step.
type Action string

const (
	ActionProductType Action = "product_type"
	ActionMaterial    Action = "material"
	ActionProduct     Action = "product"
	ActionText        Action = "text"
	ActionUpload      Action = "upload"
	ActionBackground  Action = "background"
)

// ErrInvalidStep is returned for steps with zero or several actions.
var ErrInvalidStep = errors.New("script: step must have exactly one action")

// Script is a named sequence of steps.
type Script struct {
	Name            string `yaml:"name"`
	ContinueOnError bool   `yaml:"continue_on_error"`
	Steps           []Step `yaml:"steps"`

	// BaseDir resolves relative upload paths. Load sets it to the script's directory.
	BaseDir string `yaml:"-"`
}

// Step is one intent. Exactly one action field is set.
type Step struct {
	ProductType string  `yaml:"product_type,omitempty"`
	Material    string  `yaml:"material,omitempty"`
	Product     string  `yaml:"product,omitempty"`
	Text        *string `yaml:"text,omitempty"`
	Upload      string  `yaml:"upload,omitempty"`
	Background  string  `yaml:"background,omitempty"`

	// ExpectError inverts the outcome: the step passes only if it fails.
	ExpectError bool `yaml:"expect_error,omitempty"`
}

// Action returns the step's action and argument.
func (s Step) Action() (Action, string, error) {
	var (
		action Action
		arg    string
		n      int
	)
	set := func(a Action, v string) {
		action, arg = a, v
		n++
	}
	if s.ProductType != "" {
		set(ActionProductType, s.ProductType)
	}
	if s.Material != "" {
		set(ActionMaterial, s.Material)
	}
	if s.Product != "" {
		set(ActionProduct, s.Product)
	}
	if s.Text != nil {
		set(ActionText, *s.Text)
	}
	if s.Upload != "" {
		set(ActionUpload, s.Upload)
	}
	if s.Background != "" {
		set(ActionBackground, s.Background)
	}
	if n != 1 {
		return "", "", ErrInvalidStep
	}
	return action, arg, nil
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	var sc Script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	for i, step := range sc.Steps {
		if _, _, err := step.Action(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &sc, nil
}

// Load reads and parses the script at path.
func Load(fs ports.FileSystem, path string) (*Script, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	sc.BaseDir = filepath.Dir(path)
	if sc.Name == "" {
		sc.Name = filepath.Base(path)
	}
	return sc, nil
}
