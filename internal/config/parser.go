package config

import (
	"errors"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	tabularerrors "github.com/alexisbeaulieu97/tabular/pkg/errors"
)

// yaml.v3 prefixes syntax and type errors with "line N:".
var yamlLinePattern = regexp.MustCompile(`line (\d+):`)

// ParseDocument reads a table document from path. See DecodeDocument.
func ParseDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, tabularerrors.NewParseError(path, 0, err)
	}
	return DecodeDocument(path, data)
}

// DecodeDocument turns YAML bytes into a validated Document.
//
// Decoding failures come back as *errors.ParseError carrying the first line
// yaml.v3 blamed. Rule failures come back as *errors.ValidationError from
// ValidateDocument. path labels the error and is never opened, so callers
// holding a document in memory can pass any name.
func DecodeDocument(path string, data []byte) (*Document, error) {
	doc, err := unmarshalDocument(data)
	if err != nil {
		return nil, tabularerrors.NewParseError(path, yamlErrorLine(err), err)
	}
	if err := ValidateDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func unmarshalDocument(data []byte) (*Document, error) {
	doc := &Document{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// yamlErrorLine returns 0 when err names no line.
func yamlErrorLine(err error) int {
	messages := []string{err.Error()}
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
		messages = typeErr.Errors
	}

	for _, message := range messages {
		match := yamlLinePattern.FindStringSubmatch(message)
		if match == nil {
			continue
		}
		if line, convErr := strconv.Atoi(match[1]); convErr == nil {
			return line
		}
	}
	return 0
}
