package internal

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Comments maps a session id to its free-text comment
type Comments map[string]string

// LoadComments reads the comments file. A missing file yields no comments.
func LoadComments(path string) (Comments, error) {
	comments := make(Comments)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return comments, nil
	}
	if err != nil {
		return nil, &StorageError{Path: path, Op: "read", Err: err}
	}
	if err := yaml.Unmarshal(data, &comments); err != nil {
		return nil, &ParseError{Source: "comments", Key: path, Err: err}
	}
	if comments == nil {
		comments = make(Comments)
	}
	return comments, nil
}

// SaveComments writes the comments file atomically
func SaveComments(path string, comments Comments) error {
	data, err := yaml.Marshal(comments)
	if err != nil {
		return fmt.Errorf("failed to marshal comments: %w", err)
	}
	return WriteFileAtomic(path, data, 0644)
}
