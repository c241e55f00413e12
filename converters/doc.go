// Package converters moves triangles between *triangle.Triangle and
// plain-text documents:
//   - YAML (gopkg.in/yaml.v3), where an absent cell is written as null;
//   - TOML (github.com/BurntSushi/toml), where an absent cell is nan.
//
// Both formats share one schema, Document. ReadFile and WriteFile pick the
// format from the file extension (.yaml, .yml, .toml).
package converters
