package agents

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed personas.yml
var personasYAML []byte

type personaFile struct {
	Personas []struct {
		Name   string `yaml:"name"`
		System string `yaml:"system"`
	} `yaml:"personas"`
}

var personas = mustParsePersonas()

func mustParsePersonas() map[string]string {
	var file personaFile
	if err := yaml.Unmarshal(personasYAML, &file); err != nil {
		panic(fmt.Sprintf("agents: embedded personas.yml is invalid: %v", err))
	}
	out := make(map[string]string, len(file.Personas))
	for _, p := range file.Personas {
		out[p.Name] = p.System
	}
	return out
}

// Persona returns the system prompt for a named agent persona. Unknown names
// return an empty string; the completion service tolerates an empty system
// message.
func Persona(name string) string {
	return personas[name]
}
