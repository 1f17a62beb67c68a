package resolve

import "strings"

// priorityMailboxes are conventionally important folders worth checking
// before the rest of the hierarchy: deleted or filtered mail is the usual
// reason an exact lookup in the active mailbox failed. The [Gmail] aliases
// cover Google's namespace layout.
var priorityMailboxes = []string{
	"Trash", "Junk", "Spam",
	"Sent", "Drafts",
	"Archive",
	"[Gmail]/All Mail", "[Gmail]/Trash", "[Gmail]/Spam",
	"[Gmail]/Sent Mail", "[Gmail]/Drafts",
}

// BuildPlan orders the mailboxes to visit for one identifier: the active
// mailbox first, then any enumerated mailbox matching the priority set,
// then the remaining enumerated mailboxes in their listed order. Each name
// appears at most once. mailboxes must already be filtered to selectable
// names.
func BuildPlan(active string, mailboxes []string) []string {
	plan := make([]string, 0, len(mailboxes)+1)
	seen := make(map[string]bool, len(mailboxes)+1)
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		plan = append(plan, name)
	}

	add(active)
	for _, want := range priorityMailboxes {
		for _, mb := range mailboxes {
			if strings.EqualFold(mb, want) {
				add(mb)
			}
		}
	}
	for _, mb := range mailboxes {
		add(mb)
	}
	return plan
}
