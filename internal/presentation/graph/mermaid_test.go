package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
	rig "github.com/miriamsimone/video-generation-pipeline/pkg/graph"
)

func TestGenerateMermaid_DefaultTable(t *testing.T) {
	out := GenerateMermaid(rig.DefaultEdges(), nil)

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, `neutral(("neutral"))`, "neutral renders as the hub circle")
	assert.Contains(t, out, `speaking_ah[/"speaking_ah"/]`, "visemes render as parallelograms")
	assert.Contains(t, out, `happy_big["happy_big"]`)
	assert.Contains(t, out, "neutral --- happy_soft", "all-pose edges are solid")
	assert.Contains(t, out, "happy_soft -. center only .- happy_big")
}

func TestGenerateMermaid_DeclaresEachNodeOnce(t *testing.T) {
	out := GenerateMermaid(rig.DefaultEdges(), nil)
	assert.Equal(t, 1, strings.Count(out, `neutral(("neutral"))`))
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	out := GenerateMermaid(rig.DefaultEdges(), &GraphOverlay{Current: domain.ExprConcerned})
	assert.Contains(t, out, "class concerned current;")
}
