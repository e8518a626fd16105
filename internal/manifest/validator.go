package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/addon.schema.json
var schemaJSON []byte

const schemaURL = "addon.schema.json"

var printer = message.NewPrinter(language.English)

// compiledSchema compiles the embedded add-on schema on first use.
var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("reading add-on schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	c.AssertFormat()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("registering add-on schema: %w", err)
	}
	schema, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling add-on schema: %w", err)
	}
	return schema, nil
})

// Report says whether a manifest is valid and, if not, why.
type Report struct {
	Valid  bool
	Issues []Issue
}

// Issue is one problem with a manifest.
type Issue struct {
	Path    string // JSON pointer to the field ("/tags/0"); empty for the whole document
	Keyword string // schema keyword that failed, or "semver"
	Message string
}

// String names the field, then the problem.
func (i Issue) String() string {
	field := i.Path
	if field == "" {
		field = "(root)"
	}
	return field + ": " + i.Message
}

// Validate checks manifest YAML against the add-on schema and requires the
// version to be semantic. The error is for input that cannot be read at all;
// an invalid manifest is reported in the Report.
func Validate(data []byte) (*Report, error) {
	schema, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	doc, err := decodeForSchema(data)
	if err != nil {
		return nil, err
	}

	var issues issueSet
	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return nil, fmt.Errorf("validating manifest: %w", err)
		}
		issues.addSchemaErrors(ve)
	}
	issues.addVersion(doc)

	return &Report{Valid: len(issues.list) == 0, Issues: issues.list}, nil
}

// ValidateFile validates the manifest at path.
func ValidateFile(path string) (*Report, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Validate(data)
}

// decodeForSchema turns manifest YAML into the JSON value model the schema
// validator works on.
func decodeForSchema(data []byte) (any, error) {
	var node any
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	buf, err := json.Marshal(jsonCompatible(node))
	if err != nil {
		return nil, fmt.Errorf("converting manifest to JSON: %w", err)
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(buf))
}

// jsonCompatible rewrites maps with non-string keys, which encoding/json
// cannot marshal.
func jsonCompatible(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, e := range v {
			v[k] = jsonCompatible(e)
		}
		return v
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, e := range v {
			m[fmt.Sprint(k)] = jsonCompatible(e)
		}
		return m
	case []any:
		for i, e := range v {
			v[i] = jsonCompatible(e)
		}
		return v
	}
	return v
}

// groupingKeywords only wrap the errors of their subschemas.
var groupingKeywords = map[string]bool{"": true, "$ref": true, "allOf": true, "anyOf": true, "oneOf": true}

// issueSet collects issues in the order found, dropping repeats.
type issueSet struct {
	list []Issue
	seen map[Issue]bool
}

func (s *issueSet) add(i Issue) {
	if s.seen == nil {
		s.seen = make(map[Issue]bool)
	}
	if s.seen[i] {
		return
	}
	s.seen[i] = true
	s.list = append(s.list, i)
}

// addSchemaErrors adds the leaves of the validation error tree. When every
// leaf is a grouping keyword the top-level error is added instead.
func (s *issueSet) addSchemaErrors(ve *jsonschema.ValidationError) {
	before := len(s.list)
	pending := []*jsonschema.ValidationError{ve}
	for len(pending) > 0 {
		e := pending[0]
		pending = pending[1:]
		if len(e.Causes) > 0 {
			pending = append(pending, e.Causes...)
			continue
		}
		keyword := failedKeyword(e)
		if groupingKeywords[keyword] {
			continue
		}
		s.add(Issue{
			Path:    pointer(e.InstanceLocation),
			Keyword: keyword,
			Message: e.ErrorKind.LocalizedString(printer),
		})
	}
	if len(s.list) == before {
		s.add(Issue{Message: ve.Error()})
	}
}

// addVersion reports a version string that is not semantic. Versions of the
// wrong type are the schema's business.
func (s *issueSet) addVersion(doc any) {
	fields, _ := doc.(map[string]any)
	v, ok := fields["version"].(string)
	if !ok || v == "" {
		return
	}
	if _, err := semver.NewVersion(v); err != nil {
		s.add(Issue{
			Path:    "/version",
			Keyword: "semver",
			Message: printer.Sprintf("%q is not a semantic version", v),
		})
	}
}

func failedKeyword(e *jsonschema.ValidationError) string {
	if e.ErrorKind == nil {
		return ""
	}
	path := e.ErrorKind.KeywordPath()
	if len(path) == 0 {
		return ""
	}
	return path[len(path)-1]
}

func pointer(location []string) string {
	if len(location) == 0 {
		return ""
	}
	return "/" + strings.Join(location, "/")
}
