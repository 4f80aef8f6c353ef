package validator

import (
	"fmt"
	"regexp"
)

// Pattern validates that a reply's text matches a regular expression. On
// success the whole matched text is returned; there is no capture-group
// extraction.
type Pattern struct {
	Expr            string
	CaseInsensitive bool

	compiled *regexp.Regexp
}

func (p *Pattern) regexp() (*regexp.Regexp, error) {
	if p.compiled != nil {
		return p.compiled, nil
	}
	expr := p.Expr
	if p.CaseInsensitive {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	p.compiled = re
	return re, nil
}

func (p *Pattern) Validate(text string) Outcome {
	re, err := p.regexp()
	if err != nil {
		return Outcome{
			OK:                false,
			ErrorMessage:      fmt.Sprintf("invalid pattern %q: %v", p.Expr, err),
			RetryPromptSuffix: fmt.Sprintf("Your response must match the pattern: %s", p.Expr),
		}
	}

	match := re.FindString(text)
	if match == "" {
		return Outcome{
			OK:                false,
			ErrorMessage:      "response did not match the required pattern",
			RetryPromptSuffix: fmt.Sprintf("Your response must match the pattern: %s", p.Expr),
		}
	}
	return Outcome{OK: true, Value: match}
}
