// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"strings"
	"testing"
)

var allIds = []Id{
	DescriptorNotFoundId,
	MetadataInvalidId,
	LiteralVersionId,
	VersionSourceInvalidId,
	ToolchainNotFoundId,
	BuildFailedId,
	ArtifactMissingId,
	AmbiguousArtifactId,
	ConfigLoadFailedId,
	PermissionDeniedId,
}

// identityRender replaces glamour so tests see the raw markdown.
func identityRender(t *testing.T) {
	t.Helper()
	originalRender := render
	t.Cleanup(func() { render = originalRender })
	render = func(in string, stylePath string) (string, error) {
		return in, nil
	}
}

func TestId_Constants(t *testing.T) {
	seen := make(map[Id]bool)
	for _, id := range allIds {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	if DescriptorNotFoundId != 1 {
		t.Errorf("DescriptorNotFoundId = %d, want 1", DescriptorNotFoundId)
	}
}

func TestIssue_Id(t *testing.T) {
	issue := Get(ToolchainNotFoundId)
	if issue == nil {
		t.Fatal("Get(ToolchainNotFoundId) returned nil")
	}
	if issue.Id() != ToolchainNotFoundId {
		t.Errorf("issue.Id() = %d, want %d", issue.Id(), ToolchainNotFoundId)
	}
}

func TestIssue_MarkdownMsg(t *testing.T) {
	issue := Get(LiteralVersionId)
	if issue == nil {
		t.Fatal("Get(LiteralVersionId) returned nil")
	}
	if !strings.Contains(string(issue.MarkdownMsg()), "build.zig.zon") {
		t.Error("MarkdownMsg() should point at build.zig.zon")
	}
}

func TestIssue_LinksAreCloned(t *testing.T) {
	issue := Get(ToolchainNotFoundId)
	links := issue.ExtLinks()
	if len(links) == 0 {
		t.Fatal("ToolchainNotFound should link to the Zig downloads")
	}
	links[0] = "https://modified.example.com"
	if issue.ExtLinks()[0] == "https://modified.example.com" {
		t.Error("ExtLinks() should return a copy")
	}
	if len(issue.DocLinks()) != 0 {
		t.Errorf("DocLinks() = %v, want none", issue.DocLinks())
	}
}

func TestIssue_Render(t *testing.T) {
	identityRender(t)

	rendered, err := Get(BuildFailedId).Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if !strings.Contains(rendered, "zig build") {
		t.Error("Render() output should contain the manual build command")
	}
}

func TestIssue_Render_WithLinks(t *testing.T) {
	identityRender(t)

	testIssue := &Issue{
		id:       Id(9999),
		mdMsg:    "# Test Issue\n\nThis is a test.",
		docLinks: []HttpLink{"https://docs.example.com"},
		extLinks: []HttpLink{"https://external.example.com"},
	}

	rendered, err := testIssue.Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if !strings.Contains(rendered, "See also") {
		t.Error("Render() with links should contain 'See also'")
	}
	if !strings.Contains(rendered, "- <https://external.example.com>\n") {
		t.Errorf("Render() should list each link on its own line:\n%s", rendered)
	}
}

func TestIssue_Render_NoLinks(t *testing.T) {
	identityRender(t)

	testIssue := &Issue{id: Id(9998), mdMsg: "# Test Issue\n\nNo links here."}
	rendered, err := testIssue.Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if strings.Contains(rendered, "See also") {
		t.Error("Render() without links should not contain 'See also'")
	}
}

func TestIssue_Render_Glamour(t *testing.T) {
	rendered, err := Get(ConfigLoadFailedId).Render("notty")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if !strings.Contains(rendered, "meow config show") {
		t.Errorf("rendered output lost the command:\n%s", rendered)
	}
}

func TestGet_Unknown(t *testing.T) {
	if Get(Id(0)) != nil || Get(Id(9999)) != nil {
		t.Error("Get() should return nil for unknown ids")
	}
}

func TestValues(t *testing.T) {
	values := Values()
	if len(values) != len(allIds) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), len(allIds))
	}
	for i, issue := range values {
		if issue.Id() != allIds[i] {
			t.Errorf("Values()[%d] = %d, want %d", i, issue.Id(), allIds[i])
		}
	}
}

func TestAllIssuesAreRenderable(t *testing.T) {
	identityRender(t)

	for _, issue := range Values() {
		if issue.MarkdownMsg() == "" {
			t.Errorf("Issue %d has empty MarkdownMsg", issue.Id())
		}
		rendered, err := issue.Render("")
		if err != nil {
			t.Errorf("Issue %d failed to render: %v", issue.Id(), err)
		}
		if rendered == "" {
			t.Errorf("Issue %d rendered to empty string", issue.Id())
		}
	}
}
