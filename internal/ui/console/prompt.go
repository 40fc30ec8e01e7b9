package console

import (
	survey "github.com/AlecAivazis/survey/v2"

	"github.com/gopak/sigma2splunk/internal/config"
)

// Prompter asks for Splunk credentials on the terminal.
type Prompter struct {
	opts []survey.AskOpt
}

func NewPrompter(opts ...survey.AskOpt) *Prompter { return &Prompter{opts: opts} }

var _ config.Prompter = (*Prompter)(nil)

func (p *Prompter) Username() (string, error) {
	var u string
	err := survey.AskOne(&survey.Input{Message: "Enter Splunk username:"}, &u, p.askOpts()...)
	return u, err
}

func (p *Prompter) Password() (string, error) {
	var pw string
	err := survey.AskOne(&survey.Password{Message: "Enter Splunk password:"}, &pw, p.askOpts()...)
	return pw, err
}

func (p *Prompter) askOpts() []survey.AskOpt {
	opts := make([]survey.AskOpt, 0, len(p.opts)+1)
	opts = append(opts, p.opts...)
	return append(opts, survey.WithValidator(survey.Required))
}
