package engine

import (
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday"
)

const markdownExtensions = blackfriday.EXTENSION_NO_INTRA_EMPHASIS |
	blackfriday.EXTENSION_TABLES |
	blackfriday.EXTENSION_AUTOLINK |
	blackfriday.EXTENSION_FENCED_CODE

var (
	markdownMu     sync.Mutex
	markdownOnce   sync.Once
	markdownPolicy *bluemonday.Policy
)

// registerMarkdownFilter installs the process-wide markdown filter. The
// sanitizer policy follows the most recent engine that set one.
func registerMarkdownFilter(policy *bluemonday.Policy) {
	markdownMu.Lock()
	if policy != nil {
		markdownPolicy = policy
	} else if markdownPolicy == nil {
		markdownPolicy = bluemonday.UGCPolicy()
	}
	markdownMu.Unlock()

	markdownOnce.Do(func() {
		if pongo2.FilterExists("markdown") {
			return
		}
		pongo2.RegisterFilter("markdown", markdownFilter)
	})
}

func markdownFilter(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	renderer := blackfriday.HtmlRenderer(blackfriday.HTML_SAFELINK|blackfriday.HTML_NOFOLLOW_LINKS, "", "")
	html := blackfriday.Markdown([]byte(in.String()), renderer, markdownExtensions)

	markdownMu.Lock()
	policy := markdownPolicy
	markdownMu.Unlock()

	return pongo2.AsSafeValue(policy.Sanitize(string(html))), nil
}
