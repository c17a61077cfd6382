package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Document represents the entire HTML document.
type Document Node

// documentData holds data specific to Document nodes.
type documentData struct {
	url       string
	observers []RemovalObserver
}

// NewDocument creates a new empty HTML Document.
func NewDocument() *Document {
	node := newNode(DocumentNode, "#document", nil)
	node.documentData = &documentData{
		url: "about:blank",
	}
	doc := (*Document)(node)
	node.ownerDoc = doc
	return doc
}

// AsNode returns the underlying Node.
func (d *Document) AsNode() *Node {
	return (*Node)(d)
}

// URL returns the document's URL. It defaults to "about:blank".
func (d *Document) URL() string {
	return d.AsNode().documentData.url
}

// SetURL sets the document's URL.
func (d *Document) SetURL(url string) {
	d.AsNode().documentData.url = url
}

// DocumentElement returns the root element (usually <html>).
func (d *Document) DocumentElement() *Element {
	for child := d.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			return (*Element)(child)
		}
	}
	return nil
}

// Body returns the <body> element.
func (d *Document) Body() *Element {
	docEl := d.DocumentElement()
	if docEl == nil {
		return nil
	}
	for child := docEl.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode && (*Element)(child).LocalName() == "body" {
			return (*Element)(child)
		}
	}
	return nil
}

// CreateElement creates a new element with the given tag name.
// For error-returning version, use CreateElementWithError.
func (d *Document) CreateElement(tagName string) *Element {
	el, _ := d.CreateElementWithError(tagName)
	return el
}

// CreateElementWithError creates a new element, validating the tag name.
func (d *Document) CreateElementWithError(tagName string) (*Element, error) {
	if !isValidElementName(tagName) {
		return nil, ErrInvalidCharacter("The string contains invalid characters.")
	}
	return newElement(tagName, d), nil
}

func isValidElementName(name string) bool {
	if name == "" {
		return false
	}
	first := name[0]
	if !(first >= 'a' && first <= 'z' || first >= 'A' && first <= 'Z' || first == '_' || first == ':') {
		return false
	}
	return !strings.ContainsAny(name, " \t\n\f\r<>/\"'=")
}

// CreateTextNode creates a new Text node.
func (d *Document) CreateTextNode(data string) *Node {
	return newTextNode(data, d)
}

// CreateComment creates a new Comment node.
func (d *Document) CreateComment(data string) *Node {
	return newCommentNode(data, d)
}

// GetElementById returns the first element in tree order with the given id.
// The empty string matches nothing.
func (d *Document) GetElementById(id string) *Element {
	if id == "" {
		return nil
	}
	return findElementById(d.AsNode(), id)
}

func findElementById(node *Node, id string) *Element {
	for child := node.firstChild; child != nil; child = child.nextSibling {
		if child.nodeType != ElementNode {
			continue
		}
		el := (*Element)(child)
		if el.Id() == id {
			return el
		}
		if result := findElementById(child, id); result != nil {
			return result
		}
	}
	return nil
}

// GetElementsByTagName returns all descendant elements with the given local
// name in tree order. "*" matches every element.
func (d *Document) GetElementsByTagName(name string) []*Element {
	name = strings.ToLower(name)
	var result []*Element
	var walk func(n *Node)
	walk = func(n *Node) {
		for c := n.firstChild; c != nil; c = c.nextSibling {
			if c.nodeType != ElementNode {
				continue
			}
			el := (*Element)(c)
			if name == "*" || el.LocalName() == name {
				result = append(result, el)
			}
			walk(c)
		}
	}
	walk(d.AsNode())
	return result
}

// ParseHTML parses an HTML string and returns a Document.
func ParseHTML(htmlContent string) (*Document, error) {
	doc := NewDocument()

	// Parse using golang.org/x/net/html
	netDoc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	convertHTMLTree(netDoc, doc.AsNode(), doc)

	return doc, nil
}

// convertHTMLTree converts an html.Node tree to our DOM tree.
func convertHTMLTree(src *html.Node, parent *Node, doc *Document) {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		var node *Node

		switch c.Type {
		case html.TextNode:
			node = doc.CreateTextNode(c.Data)

		case html.ElementNode:
			el := newElement(c.Data, doc)
			for _, attr := range c.Attr {
				el.SetAttribute(attr.Key, attr.Val)
			}
			node = el.AsNode()

		case html.CommentNode:
			node = doc.CreateComment(c.Data)

		case html.DoctypeNode:
			node = newNode(DocumentTypeNode, c.Data, doc)

		case html.DocumentNode:
			convertHTMLTree(c, parent, doc)
			continue

		default:
			continue
		}

		parent.insertBeforeInternal(node, nil)
		if c.Type == html.ElementNode {
			convertHTMLTree(c, node, doc)
		}
	}
}
