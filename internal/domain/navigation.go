package domain

// Heading is one (level, title, position) tuple extracted from the rendered
// document by the UI collaborator.
type Heading struct {
	Level    int    `json:"level"`
	Title    string `json:"title"`
	Position int    `json:"position"`
}

// NavigationItem is one entry of the jump-to outline. The outline is a flat
// list; Level is carried as indentation metadata, not a tree edge.
type NavigationItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Level    int    `json:"level"` // heading depth 1..6
	Position int    `json:"position"`
}
