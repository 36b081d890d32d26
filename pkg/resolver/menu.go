package resolver

// MenuItem is a typed view of a CustomMenuItems record.
type MenuItem struct {
	Title  string `json:"title"`
	URL    string `json:"url,omitempty"`
	Action string `json:"action,omitempty"`
}

// MenuItems returns the custom menu items that carry a title. Records
// without a string title are skipped; url and action are optional strings.
func (r *Resolver) MenuItems() []MenuItem {
	records := r.CustomMenuItems()
	items := make([]MenuItem, 0, len(records))
	for _, rec := range records {
		title, ok := rec["title"].(string)
		if !ok || title == "" {
			r.logger.Debug("skipping menu item without title", "key", KeyCustomMenuItems)
			continue
		}
		item := MenuItem{Title: title}
		item.URL, _ = rec["url"].(string)
		item.Action, _ = rec["action"].(string)
		items = append(items, item)
	}
	return items
}
