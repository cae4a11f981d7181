// Package save encodes documents as JSON or YAML and writes them to a file
// or a writer.
package save

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/routemap/pkg/constants"
	"github.com/agentstation/routemap/pkg/errors"
)

// Marshal encodes v. JSON is indented with two spaces, does not escape HTML
// characters at any depth and ends with a newline. YAML is converted from the JSON form
// so key order is the same in both.
func Marshal(v any, f Format) ([]byte, error) {
	if !f.IsValid() {
		return nil, errors.NewValidationError("format", f.String(), "unsupported format")
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", constants.JSONIndent)
	if err := enc.Encode(v); err != nil {
		return nil, errors.WrapParse("json", "", err)
	}
	data := unescapeHTML(buf.Bytes())
	if f == FormatJSON {
		return data, nil
	}

	out, err := yaml.JSONToYAML(data)
	if err != nil {
		return nil, errors.WrapParse("yaml", "", err)
	}
	return out, nil
}

// Save encodes v and writes it to the configured writer or path.
func Save(v any, opts ...Option) error {
	o := Defaults().Apply(opts...)
	data, err := Marshal(v, o.Format())
	if err != nil {
		return err
	}
	return Write(data, opts...)
}

// Write writes already encoded data to the configured writer or path. File
// writes create missing parent directories and replace the target
// atomically.
func Write(data []byte, opts ...Option) error {
	o := Defaults().Apply(opts...)

	if w := o.Writer(); w != nil {
		if _, err := w.Write(data); err != nil {
			return errors.WrapIO("write", "", err)
		}
		return nil
	}
	if o.Path() == "" {
		return errors.NewValidationError("path", "", "a path or a writer is required")
	}
	return writeFile(o.Path(), data)
}

func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // already renamed on success

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.WrapIO("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("write", path, err)
	}
	if err := os.Chmod(tmpName, constants.FilePermissions); err != nil {
		return errors.WrapIO("chmod", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.WrapIO("rename", path, err)
	}
	return nil
}
