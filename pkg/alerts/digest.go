package alerts

import (
	"encoding/json"
	"fmt"
	"html"
	"sort"
	"strings"

	"nooko-hq/tally/pkg/batch"
)

// subjectModelLimit caps how many model names appear in the subject line
// before collapsing to a "+N more" suffix.
const subjectModelLimit = 3

// Digest is a rendered unknown-model notification.
type Digest struct {
	Subject  string
	BodyHTML string
}

// BuildDigest renders the notification for a batch's unknown-model
// collection. Model names are deduplicated and sorted for the subject and
// bullet list; the raw collection is appended as a JSON excerpt.
func BuildDigest(models []batch.UnknownModel) (Digest, error) {
	names := distinctNames(models)

	subject := fmt.Sprintf("[Tally] Unknown model(s): %s", strings.Join(truncate(names, subjectModelLimit), ", "))
	if len(names) > subjectModelLimit {
		subject += fmt.Sprintf(" (+%d more)", len(names)-subjectModelLimit)
	}

	excerpt, err := json.MarshalIndent(models, "", "  ")
	if err != nil {
		return Digest{}, fmt.Errorf("failed to render unknown-model excerpt: %w", err)
	}

	var bullets strings.Builder
	for _, name := range names {
		fmt.Fprintf(&bullets, "<li><code>%s</code></li>", html.EscapeString(name))
	}

	body := "<p>Hello,</p>" +
		"<p>The <strong>AI cost engine</strong> could not compute cost for one or more usage records " +
		"because the model name was not found in the pricing table.</p>" +
		"<p><strong>Action needed:</strong> add pricing (or an alias mapping) for the model(s) below " +
		"so future records can be priced.</p>" +
		"<p><strong>Unknown model(s) detected:</strong></p>" +
		fmt.Sprintf("<ul>%s</ul>", bullets.String()) +
		"<p><strong>Details (raw payload excerpt):</strong></p>" +
		"<pre style='background:#f6f8fa;padding:12px;border-radius:6px;overflow:auto;white-space:pre;'>" +
		html.EscapeString(string(excerpt)) +
		"</pre>" +
		"<p>Thank you.</p>"

	return Digest{Subject: subject, BodyHTML: body}, nil
}

// distinctNames returns the sorted unique model names in the collection.
func distinctNames(models []batch.UnknownModel) []string {
	seen := make(map[string]struct{}, len(models))
	var names []string
	for _, m := range models {
		if m.Model == "" {
			continue
		}
		if _, dup := seen[m.Model]; dup {
			continue
		}
		seen[m.Model] = struct{}{}
		names = append(names, m.Model)
	}
	sort.Strings(names)
	return names
}

func truncate(names []string, n int) []string {
	if len(names) <= n {
		return names
	}
	return names[:n]
}

// ParseRecipients splits a comma- or semicolon-separated recipient list,
// trimming whitespace and dropping empty entries.
func ParseRecipients(raw string) []string {
	raw = strings.ReplaceAll(raw, ";", ",")
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
