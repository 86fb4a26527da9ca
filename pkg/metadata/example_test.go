package metadata_test

import (
	"fmt"

	"github.com/matzehuels/archdeps/pkg/metadata"
)

func ExampleDecodePackageInfo() {
	info := metadata.DecodePackageInfo(`pkgname = foo
pkgver = 1.0-1
depend = glibc>=2.39
makedepend = cmake
optdepend = python: scripting support
`)

	fmt.Println("name:", info.Name)
	fmt.Println("explicit:", info.Explicit().Sorted())
	// Output:
	// name: foo
	// explicit: [cmake glibc python]
}

func ExampleDecodeBuildInfo() {
	info := metadata.DecodeBuildInfo(`installed = glibc-2.39-1-x86_64
installed = foo-bar-1.0-1
installed = ???
`)

	for _, id := range info.Installed {
		fmt.Println(id)
	}
	fmt.Println("issues:", len(info.Issues))
	// Output:
	// glibc-2.39-1-x86_64
	// foo-bar-1.0-1-x86_64
	// issues: 1
}
