package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "testfile")
	if err := os.WriteFile(file, []byte("hi there"), 0600); err != nil {
		t.Fatal(err)
	}
	assert.True(t, FileExists(file))
	assert.False(t, FileExists(filepath.Join(dir, "not-a-file")))
}

func TestRemoveSlackMarkup(t *testing.T) {
	assert.Equal(t, "see docs", RemoveSlackMarkup("see <https://api.slack.com/rtm|docs>"))
	assert.Equal(t, "go to https://heckel.io", RemoveSlackMarkup("go to <https://heckel.io>"))
	assert.Equal(t, "run ls -la", RemoveSlackMarkup("run `ls -la`"))
	assert.Equal(t, "hey  you", RemoveSlackMarkup("hey <@U0123ABC> you"))
	assert.Equal(t, "a < b && c > d", RemoveSlackMarkup("a &lt; b &amp;&amp; c &gt; d"))
}

func TestRemoveSlackMarkup_Mentions(t *testing.T) {
	assert.Equal(t, "join #general", RemoveSlackMarkup("join <#C024BE7LR|general>"))
	assert.Equal(t, "join #C024BE7LR", RemoveSlackMarkup("join <#C024BE7LR>"))
	assert.Equal(t, "ask @bob", RemoveSlackMarkup("ask <@U024BE7LH|bob>"))
	assert.Equal(t, "@here deploy done", RemoveSlackMarkup("<!here> deploy done"))
	assert.Equal(t, "mail phil@example.com", RemoveSlackMarkup("mail <mailto:phil@example.com>"))
	assert.Equal(t, "run make test", RemoveSlackMarkup("run ```make test```"))
}
