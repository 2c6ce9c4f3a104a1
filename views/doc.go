// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package views renders the HTML fragments of the checklist UI.

Templates live in templates/ and are embedded and parsed once at start.
Each fragment has its own render function taking an io.Writer and the
data it shows:

	views.RunbookDetail(w, views.RunbookPage{...})
	views.ItemCheckbox(w, views.Checkbox{...})

Fragments carry htmx attributes. Clicking posts to the route named in
hx-post and the response replaces the element named by hx-target, or
the element itself. Headings are contenteditable and post their text
on every input event as the name form field.

Check state maps to CSS classes: "unchecked actionable", "checked
actionable" and "disabled". Item types show as "1" (once) and "∀"
(each).
*/
package views
