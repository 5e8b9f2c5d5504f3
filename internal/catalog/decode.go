package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Document formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// Report fields by their document names rather than Go names.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// rawCourse is the wire shape of a record. Pointers distinguish a missing
// field from a zero value.
type rawCourse struct {
	Code          string   `json:"code" yaml:"code" validate:"required"`
	Name          string   `json:"name" yaml:"name" validate:"required"`
	Subject       string   `json:"subject" yaml:"subject" validate:"required"`
	Units         *float64 `json:"units" yaml:"units" validate:"required,gte=0"`
	Level         *int     `json:"level" yaml:"level" validate:"omitempty,gte=0"`
	Prerequisites []string `json:"prerequisites" yaml:"prerequisites" validate:"required"`
}

type document struct {
	Courses []rawCourse `json:"courses" yaml:"courses" validate:"required"`
}

// FormatFromPath infers the document format from a file extension.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadFile reads a catalog document from path, or from stdin when path is
// "-". An empty format is inferred from the extension.
func LoadFile(path, format string) ([]Course, error) {
	if format == "" {
		format = FormatFromPath(path)
	}

	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening catalog: %w", err)
		}
		defer f.Close()
		r = f
	}

	return Decode(r, format)
}

// Decode parses a {"courses": [...]} document and validates every record.
// Any decoding or validation failure is fatal and wraps ErrMalformedCatalog.
func Decode(r io.Reader, format string) ([]Course, error) {
	var doc document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: decoding json: %v", ErrMalformedCatalog, err)
		}
		if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: decoding json: unexpected data after the document", ErrMalformedCatalog)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		var root yaml.Node
		if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: decoding yaml: %v", ErrMalformedCatalog, err)
		}
		if err := dec.Decode(&yaml.Node{}); !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: decoding yaml: unexpected data after the document", ErrMalformedCatalog)
		}
		if err := checkYAMLStrings(&root); err != nil {
			return nil, fmt.Errorf("%w: decoding yaml: %v", ErrMalformedCatalog, err)
		}
		if root.Kind != 0 {
			if err := root.Decode(&doc); err != nil {
				return nil, fmt.Errorf("%w: decoding yaml: %v", ErrMalformedCatalog, err)
			}
		}
	default:
		return nil, fmt.Errorf("unknown catalog format: %s (supported: json, yaml)", format)
	}

	if err := validate.Struct(&doc); err != nil {
		return nil, formatValidationError(err)
	}
	return toCourses(doc.Courses)
}

var yamlStringFields = map[string]bool{"code": true, "name": true, "subject": true}

// checkYAMLStrings rejects text fields whose scalars resolve to another type,
// like `code: 110`, so YAML accepts exactly the records JSON accepts.
func checkYAMLStrings(root *yaml.Node) error {
	n := root
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	courses := mappingValue(n, "courses")
	if courses == nil || courses.Kind != yaml.SequenceNode {
		return nil
	}

	for i, c := range courses.Content {
		if c.Kind != yaml.MappingNode {
			continue
		}
		for j := 0; j+1 < len(c.Content); j += 2 {
			key, val := c.Content[j].Value, c.Content[j+1]
			switch {
			case yamlStringFields[key]:
				if err := expectString(val); err != nil {
					return fmt.Errorf("courses[%d].%s: %w", i, key, err)
				}
			case key == "prerequisites" && val.Kind == yaml.SequenceNode:
				for k, p := range val.Content {
					if err := expectString(p); err != nil {
						return fmt.Errorf("courses[%d].prerequisites[%d]: %w", i, k, err)
					}
				}
			}
		}
	}
	return nil
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

// expectString accepts string and null scalars. Nulls are left to validation.
func expectString(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return nil
	}
	if tag := n.ShortTag(); tag != "!!str" && tag != "!!null" {
		return fmt.Errorf("expected a string, got %s %q", tag, n.Value)
	}
	return nil
}

// toCourses validates each record and converts it to a Course, deriving
// the level from the code when it is absent.
func toCourses(raws []rawCourse) ([]Course, error) {
	courses := make([]Course, 0, len(raws))
	for i := range raws {
		raw := &raws[i]
		if err := validate.Struct(raw); err != nil {
			return nil, fmt.Errorf("courses[%d]: %w", i, formatValidationError(err))
		}

		c := Course{
			Code:          raw.Code,
			Name:          raw.Name,
			Subject:       raw.Subject,
			Units:         *raw.Units,
			Prerequisites: raw.Prerequisites,
		}
		if raw.Level != nil {
			c.Level = *raw.Level
		} else {
			c.Level = DeriveLevel(raw.Code)
		}
		courses = append(courses, c)
	}
	return courses, nil
}

// formatValidationError flattens validator errors into one readable error.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrMalformedCatalog, strings.Join(msgs, "; "))
}
