// Package editor hosts the live rendering surface for an assembled document:
// an in-memory DOM whose text regions can be edited in place and whose images
// can be replaced, with serialization back to an HTML string on demand.
// Embedded scripts are inert data here, so generated content cannot touch any
// host state.
package editor

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/net/html"
)

var (
	ErrNotLoaded      = errors.New("editor: no document loaded")
	ErrUnknownRegion  = errors.New("editor: unknown region")
	ErrNotAnImage     = errors.New("editor: region is not an image")
	ErrNoPendingImage = errors.New("editor: no image selected for replacement")
	ErrBadImageType   = errors.New("editor: replacement file is not an image")
)

// editableTags are the text-bearing tag kinds eligible for in-place editing.
var editableTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p": true, "span": true, "a": true, "button": true,
	"li": true, "dt": true, "dd": true, "th": true, "td": true,
}

// blockingTags disqualify an ancestor from editing: an element containing any
// of these is a container, not a leaf text region.
var blockingTags = map[string]bool{
	"div": true, "p": true, "h1": true, "h2": true, "h3": true,
	"img": true, "svg": true,
}

// Region describes one editable spot on the surface.
type Region struct {
	ID   string `json:"id"`
	Kind string `json:"kind"` // "text" or "image"
	Tag  string `json:"tag"`
	Text string `json:"text,omitempty"` // current text, or alt for images
}

// Editor owns the rendering surface for exactly one document. The surface is
// the sole source of truth while editing; lastSynced is a cache refreshed on
// every edit-completing event and on export.
type Editor struct {
	mu          sync.Mutex
	doc         *html.Node
	root        *html.Node // the <html> element
	lastSynced  string
	pending     *html.Node // at most one image awaiting a file replacement
	regions     map[string]*html.Node
	regionOrder []string
}

func New() *Editor {
	return &Editor{regions: map[string]*html.Node{}}
}

// Load replaces the surface with a freshly parsed document, annotates its
// editable regions, and resets the serialization cache.
func (e *Editor) Load(doc string) error {
	parsed, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return fmt.Errorf("editor: parse document: %w", err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.doc = parsed
	e.root = findElement(parsed, "html")
	e.pending = nil
	e.regions = map[string]*html.Node{}
	e.regionOrder = nil
	e.annotateLocked()
	e.lastSynced = e.serializeLocked()
	return nil
}

// Loaded reports whether a document is on the surface.
func (e *Editor) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.root != nil
}

// annotateLocked walks the document in order, marking leaf text elements
// editable and images replaceable. Running it again on an already-annotated
// tree reuses the existing marks, so annotation is idempotent.
func (e *Editor) annotateLocked() {
	n := 0
	walk(e.doc, func(node *html.Node) {
		if node.Type != html.ElementNode {
			return
		}
		switch {
		case node.Data == "img":
			n++
			e.registerLocked(node, n, "data-editable-img")
		case editableTags[node.Data] && hasDirectText(node) && !hasBlockingDescendant(node):
			n++
			e.registerLocked(node, n, "data-editable")
		}
	})
}

func (e *Editor) registerLocked(node *html.Node, n int, mark string) {
	id := getAttr(node, "data-region")
	if id == "" {
		id = fmt.Sprintf("r%d", n)
		setAttr(node, mark, "true")
		setAttr(node, "data-region", id)
	}
	if _, seen := e.regions[id]; !seen {
		e.regions[id] = node
		e.regionOrder = append(e.regionOrder, id)
	}
}

// Regions lists the editable regions in document order.
func (e *Editor) Regions() []Region {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Region, 0, len(e.regionOrder))
	for _, id := range e.regionOrder {
		node := e.regions[id]
		r := Region{ID: id, Tag: node.Data}
		if node.Data == "img" {
			r.Kind = "image"
			r.Text = getAttr(node, "alt")
		} else {
			r.Kind = "text"
			r.Text = directText(node)
		}
		out = append(out, r)
	}
	return out
}

// CommitText replaces a text region's content and re-serializes the surface,
// the same commit path a focus-loss edit takes.
func (e *Editor) CommitText(regionID, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.root == nil {
		return ErrNotLoaded
	}
	node, ok := e.regions[regionID]
	if !ok {
		return ErrUnknownRegion
	}
	if node.Data == "img" {
		return ErrNotAnImage // text commits target text regions only
	}
	for node.FirstChild != nil {
		node.RemoveChild(node.FirstChild)
	}
	node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	e.lastSynced = e.serializeLocked()
	return nil
}

// SelectImage marks an image region as the pending replacement target.
// Selecting another image before a file arrives simply moves the pending mark.
func (e *Editor) SelectImage(regionID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.root == nil {
		return ErrNotLoaded
	}
	node, ok := e.regions[regionID]
	if !ok {
		return ErrUnknownRegion
	}
	if node.Data != "img" {
		return ErrNotAnImage
	}
	e.pending = node
	return nil
}

// ApplyImage completes the pending replacement: the picked file becomes a
// data URI assigned as the image source, then the surface re-serializes.
func (e *Editor) ApplyImage(data []byte, mimeType string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.root == nil {
		return ErrNotLoaded
	}
	if e.pending == nil {
		return ErrNoPendingImage
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return ErrBadImageType
	}
	uri := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
	setAttr(e.pending, "src", uri)
	e.pending = nil
	e.lastSynced = e.serializeLocked()
	return nil
}

// PendingImage returns the region id awaiting a file, or "".
func (e *Editor) PendingImage() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	for id, node := range e.regions {
		if node == e.pending {
			return id
		}
	}
	return ""
}

// ExportHTML serializes the current surface state, never a stale cache, with
// a doctype prefixed. Before any document loads it falls back to the last
// known value instead of failing.
func (e *Editor) ExportHTML() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.root == nil {
		return e.lastSynced
	}
	e.lastSynced = e.serializeLocked()
	return e.lastSynced
}

// LastSynced returns the cached serialization from the most recent
// edit-completing event.
func (e *Editor) LastSynced() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastSynced
}

func (e *Editor) serializeLocked() string {
	if e.root == nil {
		return e.lastSynced
	}
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	if err := html.Render(&sb, e.root); err != nil {
		return e.lastSynced
	}
	return sb.String()
}

// --- DOM helpers ---

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func findElement(n *html.Node, tag string) *html.Node {
	var found *html.Node
	walk(n, func(node *html.Node) {
		if found == nil && node.Type == html.ElementNode && node.Data == tag {
			found = node
		}
	})
	return found
}

func hasDirectText(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) != "" {
			return true
		}
	}
	return false
}

func directText(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(sb.String())
}

func hasBlockingDescendant(n *html.Node) bool {
	blocked := false
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, func(node *html.Node) {
			if node.Type == html.ElementNode && blockingTags[node.Data] {
				blocked = true
			}
		})
	}
	return blocked
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
