package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// errAborted signals the user interrupted a prompt (e.g. Ctrl+C).
var errAborted = errors.New("slots-cli: aborted")

// promptRender asks for a component and its render data. initial prefills the
// data prompt so -data and -interactive combine.
func promptRender(components []string, initial map[string]any) (string, map[string]any, error) {
	if len(components) == 0 {
		return "", nil, errors.New("slots-cli: no components loaded, pass -templates or -config")
	}

	var component string
	prompt := &survey.Select{
		Message:  "Component to render:",
		Options:  components,
		PageSize: 15,
	}
	if err := survey.AskOne(prompt, &component); err != nil {
		return "", nil, translateSurveyErr(err)
	}

	seed := "{}"
	if len(initial) > 0 {
		raw, err := json.Marshal(initial)
		if err == nil {
			seed = string(raw)
		}
	}

	var rawData string
	input := &survey.Input{
		Message: "Render data (JSON object):",
		Default: seed,
		Help:    "Keys become the component's arguments.",
	}
	if err := survey.AskOne(input, &rawData, survey.WithValidator(validJSONObject)); err != nil {
		return "", nil, translateSurveyErr(err)
	}

	data, err := parseData(rawData)
	if err != nil {
		return "", nil, err
	}
	return component, data, nil
}

func validJSONObject(value any) error {
	raw, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected a string, got %T", value)
	}
	if _, err := parseData(raw); err != nil {
		return fmt.Errorf("not a JSON object: %v", err)
	}
	return nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errAborted
	}
	return err
}
