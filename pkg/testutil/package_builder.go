package testutil

import (
	"github.com/arthur-debert/toolkit/pkg/types"
)

// PackageBuilder assembles a types.Package for tests.
//
//	pkg := testutil.NewPackage("shell", "bash").
//		Source("/catalog/shell/bash").
//		Link(".bashrc", "bashrc").
//		Anchor(".config/empty").
//		Build()
type PackageBuilder struct {
	pkg *types.Package
}

// NewPackage starts a default-active package with no links. Its source is
// /catalog/<namespace>/<name> until overridden.
func NewPackage(namespace, name string) *PackageBuilder {
	return &PackageBuilder{pkg: &types.Package{
		Namespace: namespace,
		Name:      name,
		Source:    "/catalog/" + namespace + "/" + name,
		Active:    true,
		Links:     make(map[string]types.LinkTarget),
	}}
}

func (b *PackageBuilder) Source(source string) *PackageBuilder {
	b.pkg.Source = source
	return b
}

func (b *PackageBuilder) Into(prefix string) *PackageBuilder {
	b.pkg.DestPrefix = prefix
	return b
}

func (b *PackageBuilder) Inactive() *PackageBuilder {
	b.pkg.Active = false
	return b
}

// Link adds a file link from dest to the source-relative target.
func (b *PackageBuilder) Link(dest, target string) *PackageBuilder {
	b.pkg.Links[dest] = types.FileLink(target)
	return b
}

// Anchor adds a directory anchor at dest.
func (b *PackageBuilder) Anchor(dest string) *PackageBuilder {
	b.pkg.Links[dest] = types.DirectoryAnchor()
	return b
}

func (b *PackageBuilder) Build() *types.Package {
	return b.pkg
}

// NewCatalog indexes packages by their full name.
func NewCatalog(pkgs ...*types.Package) types.Catalog {
	catalog := make(types.Catalog, len(pkgs))
	for _, p := range pkgs {
		catalog[p.FullName()] = p
	}
	return catalog
}
