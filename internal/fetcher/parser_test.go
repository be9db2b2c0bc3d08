package fetcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listPageHTML = `<!doctype html>
<html><body><table><tbody>
<tr class="ub-content us-post">
  <td class="gall_subject">Notice</td>
  <td><a href="/board/view/?id=game&no=1&page=1">pinned notice</a></td>
</tr>
<tr class="ub-content us-post">
  <td class="gall_subject">General</td>
  <td><a href="/board/view/?id=game&no=101&page=1&utm_source=feed#c42">first post</a></td>
</tr>
<tr class="ub-content us-post">
  <td class="gall_subject">General</td>
  <td><a href="https://board.example.com/board/view/?id=game&no=102&page=1">second post</a></td>
</tr>
<tr class="ub-content us-post">
  <td class="gall_subject">General</td>
  <td><a href="/board/view/?id=game&no=101&page=1">duplicate of first</a></td>
</tr>
<tr class="ub-content us-post">
  <td class="gall_subject">AD</td>
  <td><a href="/board/view/?id=game&no=999&page=1">sponsored</a></td>
</tr>
<tr class="ub-content us-post">
  <td class="gall_subject">General</td>
  <td><span>row without a view link</span></td>
</tr>
</tbody></table></body></html>`

func TestParseListPage(t *testing.T) {
	urls, err := ParseListPage([]byte(listPageHTML), "https://board.example.com/board/lists/?id=game")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://board.example.com/board/view/?id=game&no=101&page=1",
		"https://board.example.com/board/view/?id=game&no=102&page=1",
	}, urls)
}

func TestParseListPageEmpty(t *testing.T) {
	urls, err := ParseListPage([]byte("<html><body></body></html>"), "https://board.example.com/")
	require.NoError(t, err)
	assert.Empty(t, urls)
}

const postPageHTML = `<!doctype html>
<html><body>
<span class="title_subject">  Server keeps   crashing again </span>
<span class="gall_date">2026-08-29 18:04:11</span>
<span class="gall_count">Views 1,234</span>
<div class="write_div">
  Matchmaking dies after
  every update.
</div>
</body></html>`

func TestParsePostPage(t *testing.T) {
	post, err := ParsePostPage([]byte(postPageHTML), "https://board.example.com/board/view/?id=game&no=101")
	require.NoError(t, err)

	assert.Equal(t, "https://board.example.com/board/view/?id=game&no=101", post.URL)
	assert.Equal(t, "Server keeps crashing again", post.Title)
	assert.Equal(t, "Matchmaking dies after every update.", post.Body)
	assert.Equal(t, "2026-08-29 18:04:11", post.PostedAt)
	require.NotNil(t, post.Views)
	assert.Equal(t, 1234, *post.Views)
}

func TestParsePostPageFallbackBodySelector(t *testing.T) {
	html := `<html><body>
<span class="title_subject">title</span>
<div class="view_content_wrap">fallback body</div>
</body></html>`

	post, err := ParsePostPage([]byte(html), "http://x")
	require.NoError(t, err)
	assert.Equal(t, "fallback body", post.Body)
	assert.Nil(t, post.Views)
}

func TestParsePostPageMissingTitle(t *testing.T) {
	html := `<html><body><div class="write_div">body only</div></body></html>`
	_, err := ParsePostPage([]byte(html), "http://x")
	assert.ErrorIs(t, err, ErrUnparseable)
}

func TestParsePostPageMissingBody(t *testing.T) {
	html := `<html><body><span class="title_subject">title only</span></body></html>`
	_, err := ParsePostPage([]byte(html), "http://x")
	assert.ErrorIs(t, err, ErrUnparseable)
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a b c", cleanText("  a\n\tb   c  "))
	assert.Empty(t, cleanText(" \n\t "))
}

func TestParseViews(t *testing.T) {
	v := parseViews("Views 1,234")
	require.NotNil(t, v)
	assert.Equal(t, 1234, *v)

	assert.Nil(t, parseViews("no digits here"))
}
