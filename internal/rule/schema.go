package rule

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/xeipuuv/gojsonschema"

	"github.com/gopak/sigma2splunk/internal/assets"
)

var schemaLoader = gojsonschema.NewBytesLoader(assets.RuleSchema())

// Validate checks a decoded rule document against the embedded schema and
// returns every violation at once.
func Validate(doc map[string]any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	res, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(b))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if res.Valid() {
		return nil
	}
	var merr *multierror.Error
	for _, e := range res.Errors() {
		merr = multierror.Append(merr, errors.New(e.String()))
	}
	merr.ErrorFormat = func(es []error) string {
		msgs := make([]string, 0, len(es))
		for _, e := range es {
			msgs = append(msgs, e.Error())
		}
		return "schema validation failed: " + strings.Join(msgs, "; ")
	}
	return fmt.Errorf("%w: %w", ErrInvalid, merr)
}
