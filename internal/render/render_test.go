package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"mindcheck-service/internal/domain"
)

func TestModelTurnRendersMarkdown(t *testing.T) {
	r := New()
	out, err := r.Turn(domain.ChatTurn{Role: domain.RoleModel, Text: "**Breathe** slowly\n\n- walk\n- rest"})
	require.NoError(t, err)

	got := string(out)
	require.Contains(t, got, "<strong>Breathe</strong>")
	require.Contains(t, got, "<li>walk</li>")
}

func TestModelTurnIsSanitised(t *testing.T) {
	r := New()
	out, err := r.Markdown("hi <script>alert(1)</script> [x](javascript:alert(1))")
	require.NoError(t, err)
	require.NotContains(t, strings.ToLower(string(out)), "<script")
	require.NotContains(t, strings.ToLower(string(out)), "javascript:")
}

func TestUserTurnIsEscaped(t *testing.T) {
	r := New()
	out, err := r.Turn(domain.ChatTurn{Role: domain.RoleUser, Text: "<b>hi</b> & bye"})
	require.NoError(t, err)
	require.Equal(t, "<p>&lt;b&gt;hi&lt;/b&gt; &amp; bye</p>", string(out))
}

func TestErrorBubble(t *testing.T) {
	r := New()
	require.Equal(t, `<div class="chat-message error-message">Error: x &lt; y</div>`, string(r.Error("x < y")))
	require.Contains(t, string(r.Error("")), "Unknown error occurred.")
}
