package site

import (
	"fmt"
	"html"
	"path"
	"sort"
	"strings"

	"github.com/cocoindex-io/examples/internal/catalog"
)

// FileTree represents a node in the sidebar of one content root.
type FileTree struct {
	Name     string
	Title    string // Display name: page title for files, formatted name for dirs.
	Path     string // Content-relative slash path.
	IsDir    bool
	Weight   int
	Children []*FileTree
}

// pageInfo is what the tree needs to know about a page.
type pageInfo struct {
	Title  string
	Weight int
}

// BuildTree constructs a FileTree from content-relative paths sharing one
// root segment. info supplies titles and weights; missing entries fall
// back to the file name.
func BuildTree(root string, paths []string, info map[string]pageInfo) *FileTree {
	tree := &FileTree{Name: root, Path: root, Title: catalog.TagLabel(root), IsDir: true}

	for _, p := range paths {
		rest := strings.TrimPrefix(p, root+"/")
		if rest == p && root != "" {
			continue
		}
		parts := strings.Split(rest, "/")
		current := tree
		for i, part := range parts {
			isLast := i == len(parts)-1
			var next *FileTree
			for _, child := range current.Children {
				if child.Name == part && child.IsDir == !isLast {
					next = child
					break
				}
			}
			if next == nil {
				next = &FileTree{Name: part, IsDir: !isLast}
				if isLast {
					next.Path = p
					if pi, ok := info[p]; ok {
						next.Title = pi.Title
						next.Weight = pi.Weight
					}
				} else {
					next.Path = path.Join(root, strings.Join(parts[:i+1], "/"))
					next.Title = catalog.TagLabel(part)
				}
				current.Children = append(current.Children, next)
			}
			current = next
		}
	}

	sortTree(tree)
	return tree
}

// sortTree orders children: index page first, then files by weight and
// name, then directories by name.
func sortTree(node *FileTree) {
	sort.SliceStable(node.Children, func(i, j int) bool {
		a, b := node.Children[i], node.Children[j]
		if isIndex(a) != isIndex(b) {
			return isIndex(a)
		}
		if a.IsDir != b.IsDir {
			return !a.IsDir
		}
		if a.Weight != b.Weight {
			return a.Weight < b.Weight
		}
		return a.Name < b.Name
	})
	for _, child := range node.Children {
		if child.IsDir {
			sortTree(child)
		}
	}
}

func isIndex(n *FileTree) bool {
	return !n.IsDir && strings.TrimSuffix(n.Name, path.Ext(n.Name)) == "index"
}

// ToHTML renders the tree as nested <ul><li> HTML. activePath is the
// content-relative path of the current page.
func (t *FileTree) ToHTML(activePath string) string {
	var b strings.Builder
	renderChildren(&b, t, activePath, computeActiveAncestors(activePath))
	return b.String()
}

// computeActiveAncestors returns the set of directory paths that are ancestors of activePath.
// For "docs/ops/deploy.md" it returns {"docs", "docs/ops"}.
func computeActiveAncestors(activePath string) map[string]bool {
	ancestors := make(map[string]bool)
	parts := strings.Split(activePath, "/")
	for i := 1; i < len(parts); i++ {
		ancestors[strings.Join(parts[:i], "/")] = true
	}
	return ancestors
}

func renderChildren(b *strings.Builder, node *FileTree, activePath string, activeAncestors map[string]bool) {
	if len(node.Children) == 0 {
		return
	}
	b.WriteString("<ul>\n")
	for _, child := range node.Children {
		if child.IsDir {
			expanded := ""
			if activeAncestors[child.Path] {
				expanded = " expanded"
			}
			fmt.Fprintf(b, `<li class="dir%s"><span class="dir-toggle">%s</span>`+"\n", expanded, html.EscapeString(child.Title))
			renderChildren(b, child, activePath, activeAncestors)
			b.WriteString("</li>\n")
			continue
		}
		label := child.Title
		if label == "" {
			label = strings.TrimSuffix(child.Name, path.Ext(child.Name))
		}
		activeClass := ""
		if child.Path == activePath {
			activeClass = ` class="active" aria-current="page"`
		}
		fmt.Fprintf(b, `<li class="file"><a href="%s"%s>%s</a></li>`+"\n",
			html.EscapeString(pageURL(child.Path)), activeClass, html.EscapeString(label))
	}
	b.WriteString("</ul>\n")
}

// pageURL is the absolute site path of a content-relative Markdown file.
func pageURL(rel string) string {
	return "/" + catalog.HTMLPath(rel)
}

// rootOf returns the first segment of a content-relative path, or "" for
// top-level files.
func rootOf(rel string) string {
	if i := strings.IndexByte(rel, '/'); i >= 0 {
		return rel[:i]
	}
	return ""
}
