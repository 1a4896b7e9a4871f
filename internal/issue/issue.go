// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

const (
	FileNotFoundId Id = iota + 1
	PreconditionViolatedId
	InternalConsistencyId
	ProcessFailedId
	ProgramNotFoundId
	UnknownAlgorithmId
	ConfigLoadFailedId
	PermissionDeniedId
	DatabaseQueryFailedId
)

type Id int

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
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
		extraMd += "\n\n## See also\n"
		for _, link := range append(i.DocLinks(), i.extLinks...) {
			extraMd += "\n- <" + string(link) + ">"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	fileNotFoundIssue = &Issue{
		id: FileNotFoundId,
		mdMsg: `
# File not found!

One of the paths you passed does not exist.

## Things you can try:
- Check the path for typos
- Use an absolute path, or run from the directory you meant
- List what is there:
~~~
$ tidyfs walk .
~~~`,
	}

	preconditionViolatedIssue = &Issue{
		id: PreconditionViolatedId,
		mdMsg: `
# The tree is not in the expected state!

tidyfs stopped before touching anything else because an assumption about
the file system did not hold.

## Common causes:
- The root or destination is missing, or is a file
- An entry was removed or renamed while tidyfs was running
- The tree contains sockets, pipes or device nodes
- Two names normalize to the same destination
- The destination already contains a file with the normalized name

## Things you can try:
- Review the plan first (plan mode is the default):
~~~
$ tidyfs normpath ROOT DEST
~~~
- Exclude entries that cannot be moved:
~~~
$ tidyfs normpath --exclude '**/*.sock' ROOT DEST
~~~
- Pick a destination outside the root when applying`,
	}

	internalConsistencyIssue = &Issue{
		id: InternalConsistencyId,
		mdMsg: `
# Internal consistency check failed!

A normalized name still contained characters outside the allowed set.
This is a bug in tidyfs.

## Things you can try:
- Re-run with verbose output and keep the full error chain:
~~~
$ tidyfs --verbose normalize 'the offending name'
~~~
- Report the input that triggered it`,
	}

	processFailedIssue = &Issue{
		id: ProcessFailedId,
		mdMsg: `
# External program failed!

The program exited with a non-zero status. Its error output is shown
between the rows of ` + "`#`" + ` above.

## Things you can try:
- Run the same command by hand to reproduce it
- Check the arguments; they are passed as-is, without a shell`,
	}

	programNotFoundIssue = &Issue{
		id: ProgramNotFoundId,
		mdMsg: `
# Program not found!

The program could not be started.

## Things you can try:
- Check that it is installed and on your PATH:
~~~
$ command -v PROGRAM
~~~
- Pass an absolute path to the executable`,
	}

	unknownAlgorithmIssue = &Issue{
		id: UnknownAlgorithmId,
		mdMsg: `
# Unknown checksum algorithm!

## Supported algorithms:
- **md5** (default)
- **sha1**
- **sha256**
- **sha512**
- **xxh64** (fast, not cryptographic)

## Things you can try:
~~~
$ tidyfs sum -a sha256 FILE
~~~
- Or set it once in your config file:
~~~cue
checksum: algorithm: "sha256"
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your config.cue could not be read or does not match the schema.

## Things you can try:
- Print the effective configuration:
~~~
$ tidyfs config show
~~~
- Recreate a default file and edit from there:
~~~
$ tidyfs config init
~~~
- Point to a specific file:
~~~
$ tidyfs --config ./config.cue normpath ROOT DEST
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

You don't have permission to read or modify one of the paths.

## Things you can try:
- Inspect the permission digits:
~~~
$ tidyfs perm PATH
~~~
- Run from a directory you own
- Check the destination is writable`,
	}

	databaseQueryFailedIssue = &Issue{
		id: DatabaseQueryFailedId,
		mdMsg: `
# Database query failed!

The mysql client rejected the query or could not connect.

## Things you can try:
- Check host, database and user:
~~~
$ tidyfs query --host 127.0.0.1 --db app --user reader 'SELECT 1'
~~~
- Export the password in ` + "`TIDYFS_DATABASE_PASSWORD`" + `
- Make sure the ` + "`mysql`" + ` client is installed`,
		extLinks: []HttpLink{"https://dev.mysql.com/doc/refman/8.4/en/mysql.html"},
	}

	issues = map[Id]*Issue{
		fileNotFoundIssue.Id():         fileNotFoundIssue,
		preconditionViolatedIssue.Id(): preconditionViolatedIssue,
		internalConsistencyIssue.Id():  internalConsistencyIssue,
		processFailedIssue.Id():        processFailedIssue,
		programNotFoundIssue.Id():      programNotFoundIssue,
		unknownAlgorithmIssue.Id():     unknownAlgorithmIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		permissionDeniedIssue.Id():     permissionDeniedIssue,
		databaseQueryFailedIssue.Id():  databaseQueryFailedIssue,
	}
)

// Values returns every known issue ordered by ID.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
