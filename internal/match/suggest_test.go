package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	candidates := []string{"node", "nodes", "list_node", "inode", "page", "task_struct"}

	got := Suggest("nod", candidates, 3)
	assert.Equal(t, []string{"node", "inode", "nodes"}, got)
}

func TestSuggest_CaseInsensitive(t *testing.T) {
	got := Suggest("NODE", []string{"node", "page"}, 5)
	assert.Equal(t, []string{"node"}, got)
}

func TestSuggest_SubstringMatch(t *testing.T) {
	got := Suggest("node", []string{"rb_tree_node_entry"}, 5)
	assert.Equal(t, []string{"rb_tree_node_entry"}, got)
}

func TestSuggest_NoCandidates(t *testing.T) {
	assert.Empty(t, Suggest("zzz", []string{"node", "page"}, 5))
	assert.Nil(t, Suggest("node", []string{"node"}, 0))
	assert.Nil(t, Suggest("", []string{"node"}, 3))
}

func TestSuggest_SkipsExactName(t *testing.T) {
	assert.Empty(t, Suggest("node", []string{"node"}, 3))
}

func TestSuggest_NonASCII(t *testing.T) {
	got := Suggest("Zahler", []string{"Counter", "Zeiger", "Zähler"}, 3)
	assert.Equal(t, []string{"Zähler", "Zeiger"}, got)
}
