// Copyright (c) 2026 Luciano Paz
// Author: Luciano Paz (https://github.com/lucianopaz)
//
// infer.go — filename helpers that map extensions to registered compression
// names and rewrite paths to carry a backend's default extension.

package compresspickle

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lucianopaz/compress-pickle/compression"
)

// InferCompression maps the extension of path to a registered compression
// name. Unknown extensions follow policy: ExtensionError fails with
// ErrUnknownExtension, while ExtensionIgnore and ExtensionWarn fall back to
// "none". Dump and Load log the warning for ExtensionWarn; here the two
// policies behave identically. A policy outside the declared constants fails
// with ErrInvalidPolicy.
func InferCompression(path string, policy ExtensionPolicy) (string, error) {
	if !policy.valid() {
		return "", fmt.Errorf("%w (%d)", ErrInvalidPolicy, policy)
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	name, err := compression.FromExtension(ext)
	if err == nil {
		return name, nil
	}
	switch policy {
	case ExtensionIgnore, ExtensionWarn:
		return "none", nil
	default:
		return "", fmt.Errorf("%w (path %q)", err, path)
	}
}

// DefaultExtensionPath rewrites path so it ends with the default extension
// of the named compression. A registered extension already on the path is
// replaced; any other suffix is kept and the default extension appended.
func DefaultExtensionPath(path, compressionName string) (string, error) {
	defExt, err := compression.DefaultExtension(compressionName)
	if err != nil {
		return "", err
	}
	if strings.HasSuffix(path, "."+defExt) {
		return path, nil
	}
	for _, ext := range registeredExtensions() {
		if strings.HasSuffix(path, "."+ext) {
			path = path[:len(path)-len(ext)-1]
			break
		}
	}
	return path + "." + defExt, nil
}

// registeredExtensions returns every known extension, longest first, so the
// suffix scan never strips a partial match.
func registeredExtensions() []string {
	m := compression.Extensions()
	exts := make([]string, 0, len(m))
	for ext := range m {
		exts = append(exts, ext)
	}
	sort.Slice(exts, func(i, j int) bool {
		if len(exts[i]) != len(exts[j]) {
			return len(exts[i]) > len(exts[j])
		}
		return exts[i] < exts[j]
	})
	return exts
}
