package query

import (
	"fmt"

	"github.com/doeshing/ghask/internal/domain"
	"github.com/doeshing/ghask/internal/ports"
)

// Completer fills in missing required parameters through a synchronous
// conversational loop. Each prompt/answer pair is appended to the session so
// a later remote classification call has that context.
type Completer struct {
	Prompter ports.ParameterPrompter
	Renderer ports.Renderer
	Logger   ports.Logger
}

// Complete returns a parameter map guaranteed to contain every required key
// for the intent. Values may be empty strings when the user entered nothing;
// no retry is attempted. A record that already satisfies the required set is
// returned unchanged without prompting.
func (c *Completer) Complete(intent domain.Intent, params map[string]string, session *domain.Session) map[string]string {
	if params == nil {
		c.Renderer.Warn("Expected parameters as a mapping but got none. Starting from an empty set.")
		params = map[string]string{}
	}

	for _, spec := range intent.RequiredParameters() {
		if params[spec.Name] != "" {
			continue
		}

		c.Renderer.Warn("Missing required parameter: " + spec.Description)
		value, err := c.ask(spec)
		if err != nil {
			c.Logger.Warn("parameter prompt failed", map[string]interface{}{
				"parameter": spec.Name,
				"error":     err.Error(),
			})
			value = ""
		}
		params[spec.Name] = value

		session.Append(domain.RoleAssistant, fmt.Sprintf("Could you please provide the %s (%s)?", spec.Name, spec.Description))
		session.Append(domain.RoleUser, value)
	}

	return params
}

func (c *Completer) ask(spec domain.ParameterSpec) (string, error) {
	if c.Prompter == nil || !c.Prompter.Enabled() {
		return "", fmt.Errorf("no interactive prompter available for %s", spec.Name)
	}
	return c.Prompter.Ask(spec.Name, spec.Description)
}
