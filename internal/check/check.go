// Package check validates parsed values against go-playground/validator
// tags, rewriting the library's messages into ones fit for a command-line.
package check

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidTag is returned when a validation tag cannot be used.
var ErrInvalidTag = errors.New("invalid validation tag")

var tagPattern = regexp.MustCompile(`the '.*' tag`)

// Checker validates values against a single tag expression.
type Checker struct {
	validate *validator.Validate
	tag      string
}

// New returns a checker for the given tag expression (eg. "email", "min=3,max=8").
// A nil validator uses a fresh default one.
func New(v *validator.Validate, tag string) *Checker {
	if v == nil {
		v = validator.New()
	}

	return &Checker{validate: v, tag: tag}
}

// Tag returns the tag expression enforced by the checker.
func (c *Checker) Tag() string { return c.tag }

// Check validates a value. The name is used in messages
// when the validator does not report a specific tag.
func (c *Checker) Check(name string, value any) (err error) {
	// Invalid tags make the validator panic.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %q: %v", ErrInvalidTag, c.tag, r)
		}
	}()

	if verr := c.validate.Var(value, c.tag); verr != nil {
		return &invalidVarError{
			fieldName:    name,
			fieldValue:   fmt.Sprint(value),
			validatorErr: verr,
		}
	}

	return nil
}

// invalidVarError wraps an error raised by validator on a value,
// and automatically modifies the error string for more efficient ones.
type invalidVarError struct {
	fieldName    string
	fieldValue   string // This is the string representation of the value
	validatorErr error
}

// Error implements the Error interface, but replacing some identifiable
// validation errors with more efficient messages, more adapted to CLI.
func (err *invalidVarError) Error() string {
	var tagname string

	// Match the part containing the tag name
	matched := tagPattern.FindString(err.validatorErr.Error())
	if matched != "" {
		parts := strings.Split(matched, " ")
		if len(parts) > 1 {
			tagname = strings.Trim(parts[1], "'")
		}

		return fmt.Sprintf("`%s` is not a valid %s", err.fieldValue, tagname)
	}

	// Or simply replace the empty key with the field name.
	return strings.ReplaceAll(err.validatorErr.Error(), "''", fmt.Sprintf("'%s'", err.fieldName))
}

func (err *invalidVarError) Unwrap() error { return err.validatorErr }
