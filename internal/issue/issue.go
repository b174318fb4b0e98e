// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	DescriptorNotFoundId Id = iota + 1
	MetadataInvalidId
	LiteralVersionId
	VersionSourceInvalidId
	ToolchainNotFoundId
	BuildFailedId
	ArtifactMissingId
	AmbiguousArtifactId
	ConfigLoadFailedId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation for the failing area
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	descriptorNotFoundIssue = &Issue{
		id: DescriptorNotFoundId,
		mdMsg: `
# No pyproject.toml found!

meow reads the project name and build settings from ` + "`pyproject.toml`" + ` in the
project root, and the version from ` + "`build.zig.zon`" + `.

## Things you can try:
- Run meow from the project root, or point at it:
~~~
$ meow -C path/to/project build-wheel dist
~~~

## Minimal pyproject.toml:
~~~toml
[build-system]
requires = ["meow"]
build-backend = "meow"

[project]
name = "meow"
dynamic = ["version"]
~~~`,
		extLinks: []HttpLink{"https://packaging.python.org/en/latest/specifications/pyproject-toml/"},
	}

	metadataInvalidIssue = &Issue{
		id: MetadataInvalidId,
		mdMsg: `
# Invalid project metadata!

The ` + "`[project]`" + ` table could not be resolved.

## Things you can try:
- Make sure ` + "`project.name`" + ` is set and is a valid distribution name
- Make sure ` + "`project.dynamic`" + ` lists ` + "`\"version\"`" + `
- Inspect what meow resolves:
~~~
$ meow metadata --format yaml
~~~`,
		extLinks: []HttpLink{"https://packaging.python.org/en/latest/specifications/core-metadata/"},
	}

	literalVersionIssue = &Issue{
		id: LiteralVersionId,
		mdMsg: `
# The version must not be declared in pyproject.toml!

The version is read from ` + "`build.zig.zon`" + ` so the Zig package and the Python
package can never disagree.

## Things you can try:
- Remove ` + "`version = ...`" + ` from ` + "`[project]`" + `
- Add ` + "`\"version\"`" + ` to ` + "`project.dynamic`" + `
- Set the version in build.zig.zon:
~~~zig
.{
    .name = .meow,
    .version = "1.2.3",
}
~~~`,
	}

	versionSourceInvalidIssue = &Issue{
		id: VersionSourceInvalidId,
		mdMsg: `
# Could not read the version from build.zig.zon!

meow looks for the first ` + "`.version = \"...\"`" + ` in ` + "`build.zig.zon`" + `.

## Things you can try:
- Check that build.zig.zon exists next to pyproject.toml
- Check that the version is a plain string literal on one line`,
		extLinks: []HttpLink{"https://ziglang.org/documentation/master/#Build-System"},
	}

	toolchainNotFoundIssue = &Issue{
		id: ToolchainNotFoundId,
		mdMsg: `
# Zig toolchain not found!

The build tool is resolved relative to the project directory.

## Things you can try:
- Place the zig executable in the project root
- Point meow at it in pyproject.toml:
~~~toml
[tool.meow.build]
tool = "/usr/local/bin/zig"
~~~
- Or set it for one run:
~~~
$ MEOW_BUILD_TOOL=/usr/local/bin/zig meow build-wheel dist
~~~`,
		extLinks: []HttpLink{"https://ziglang.org/download/"},
	}

	buildFailedIssue = &Issue{
		id: BuildFailedId,
		mdMsg: `
# The Zig build failed!

The compiler output above shows what went wrong. meow exits with the
compiler's exit code.

## Things you can try:
- Run the same build by hand:
~~~
$ zig build -Doptimize=ReleaseSafe --prefix-lib-dir zig-out
~~~
- Re-run with ` + "`--verbose`" + ` to see the exact command line`,
	}

	artifactMissingIssue = &Issue{
		id: ArtifactMissingId,
		mdMsg: `
# The compiled extension was not found!

After the build, exactly one library named after the project must be in the
library prefix directory.

## Things you can try:
- Check that build.zig installs a shared library named like ` + "`project.name`" + `
- Check ` + "`build.library_suffix`" + ` with ` + "`meow config show`" + `
- Remove extra shared libraries from the install step`,
	}

	ambiguousArtifactIssue = &Issue{
		id: AmbiguousArtifactId,
		mdMsg: `
# More than one compiled library was produced!

meow will not guess which library is the extension module.

## Things you can try:
- Install only the extension module into the library prefix directory
- Link helper libraries statically`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Configuration comes from the user config file, the ` + "`[tool.meow]`" + ` table and
MEOW_* environment variables.

## Things you can try:
- Show the defaults and the resolved values:
~~~
$ meow config show
~~~
- Check TOML syntax and key names`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

meow could not read the project or write the output directory.

## Things you can try:
- Check that the output directory exists and is writable
- Check that the temporary directory ($TMPDIR) is writable`,
	}

	issues = map[Id]*Issue{
		descriptorNotFoundIssue.Id():   descriptorNotFoundIssue,
		metadataInvalidIssue.Id():      metadataInvalidIssue,
		literalVersionIssue.Id():       literalVersionIssue,
		versionSourceInvalidIssue.Id(): versionSourceInvalidIssue,
		toolchainNotFoundIssue.Id():    toolchainNotFoundIssue,
		buildFailedIssue.Id():          buildFailedIssue,
		artifactMissingIssue.Id():      artifactMissingIssue,
		ambiguousArtifactIssue.Id():    ambiguousArtifactIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		permissionDeniedIssue.Id():     permissionDeniedIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
