package main

import (
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

// expandPath expands a leading "~" in index/prefix path flags, matching
// the teacher's use of go-homedir in its own path-heavy flags.
func expandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", errors.Wrapf(err, "expanding path %q", path)
	}
	return expanded, nil
}
