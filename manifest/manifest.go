// Package manifest loads route tables from YAML and builds segment
// trees from them.
package manifest

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"gopkg.in/yaml.v2"

	segtrie "github.com/goliatone/go-segtrie"
)

const (
	TextCodeInvalidManifest = "INVALID_MANIFEST"
	TextCodeUnknownHandler  = "UNKNOWN_HANDLER"
)

// Manifest is the on-disk description of a tree.
//
//	config:
//	  path_separator: "/"
//	root: home
//	strict: true
//	routes:
//	  - pattern: /user/:id
//	    handler: user.show
type Manifest struct {
	Config segtrie.Config `yaml:"config" json:"config"`
	Root   string         `yaml:"root,omitempty" json:"root,omitempty"`
	Strict bool           `yaml:"strict,omitempty" json:"strict,omitempty"`
	Routes []RouteSpec    `yaml:"routes" json:"routes"`
}

type RouteSpec struct {
	Pattern string `yaml:"pattern" json:"pattern"`
	Handler string `yaml:"handler" json:"handler"`
}

// Resolver turns a handler name from the manifest into the value stored
// in the tree.
type Resolver interface {
	Resolve(name string) (any, bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(name string) (any, bool)

func (f ResolverFunc) Resolve(name string) (any, bool) {
	return f(name)
}

// MapResolver resolves names from a fixed table.
type MapResolver map[string]any

func (m MapResolver) Resolve(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

// NameResolver stores the handler names themselves.
var NameResolver Resolver = ResolverFunc(func(name string) (any, bool) {
	return name, true
})

func Load(r io.Reader) (*Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "read manifest").
			WithTextCode(TextCodeInvalidManifest)
	}
	return Parse(data)
}

func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "read manifest file").
			WithTextCode(TextCodeInvalidManifest).
			WithMetadata(map[string]any{"path": path})
	}
	return Parse(data)
}

// Parse decodes and validates a YAML manifest.
func Parse(data []byte) (*Manifest, error) {
	m := &Manifest{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.SetStrict(true)
	if err := dec.Decode(m); err != nil && err != io.EOF {
		return nil, newManifestError(fmt.Sprintf("decode manifest: %v", err), nil)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks the config markers and that every route names a
// handler.
func (m *Manifest) Validate() error {
	if err := m.Config.Validate(); err != nil {
		return err
	}

	var missing []string
	for i, r := range m.Routes {
		if strings.TrimSpace(r.Handler) == "" {
			missing = append(missing, fmt.Sprintf("routes[%d] %q", i, r.Pattern))
		}
	}
	if len(missing) > 0 {
		return newManifestError("routes without handler: "+strings.Join(missing, ", "), map[string]any{
			"routes": missing,
		})
	}
	return nil
}

// Build creates a tree from the manifest. Handler names are looked up
// through resolver; an unknown name fails the build. Options are applied
// after the manifest config.
func (m *Manifest) Build(resolver Resolver, opts ...segtrie.Option) (*segtrie.Tree, error) {
	if resolver == nil {
		resolver = NameResolver
	}

	var root any
	if m.Root != "" {
		h, ok := resolver.Resolve(m.Root)
		if !ok {
			return nil, newUnknownHandlerError(m.Root, "")
		}
		root = h
	}

	tree := segtrie.NewFromConfig(root, m.Config, opts...)

	for _, r := range m.Routes {
		h, ok := resolver.Resolve(r.Handler)
		if !ok {
			return nil, newUnknownHandlerError(r.Handler, r.Pattern)
		}

		if !m.Strict {
			tree.Add(r.Pattern, h)
			continue
		}

		if err := tree.AddStrict(r.Pattern, h); err != nil {
			return nil, err
		}
	}

	return tree, nil
}

// FromTree describes an existing tree. Handlers are named with name;
// routes whose handler cannot be named are skipped.
func FromTree(tree *segtrie.Tree, name func(any) (string, bool)) *Manifest {
	m := &Manifest{Config: tree.Config()}

	if h := tree.RootHandler(); h != nil {
		if n, ok := name(h); ok {
			m.Root = n
		}
	}

	for _, r := range tree.Routes() {
		n, ok := name(r.Handler)
		if !ok {
			continue
		}
		m.Routes = append(m.Routes, RouteSpec{Pattern: r.Pattern, Handler: n})
	}
	return m
}

// Encode writes m as YAML.
func (m *Manifest) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(m); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "encode manifest")
	}
	return enc.Close()
}

func newManifestError(message string, metadata map[string]any) error {
	err := goerrors.New(message, goerrors.CategoryValidation).
		WithCode(http.StatusBadRequest).
		WithTextCode(TextCodeInvalidManifest)
	if metadata != nil {
		err = err.WithMetadata(metadata)
	}
	return err
}

func newUnknownHandlerError(name, pattern string) error {
	return goerrors.New(fmt.Sprintf("unknown handler %q", name), goerrors.CategoryNotFound).
		WithCode(http.StatusNotFound).
		WithTextCode(TextCodeUnknownHandler).
		WithMetadata(map[string]any{
			"handler": name,
			"pattern": pattern,
		})
}
