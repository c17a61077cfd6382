// Package dom provides the native node tree that the script bridge exposes.
// It models the subset of the DOM Living Standard the bindings rely on.
// https://dom.spec.whatwg.org/
package dom

import (
	"strings"
)

// NodeType represents the type of a Node as defined in the DOM specification.
type NodeType uint16

const (
	// ElementNode represents an Element node.
	ElementNode NodeType = 1
	// TextNode represents a Text node.
	TextNode NodeType = 3
	// CommentNode represents a Comment node.
	CommentNode NodeType = 8
	// DocumentNode represents a Document node.
	DocumentNode NodeType = 9
	// DocumentTypeNode represents a DocumentType node.
	DocumentTypeNode NodeType = 10
)

// String returns the string representation of the NodeType.
func (nt NodeType) String() string {
	switch nt {
	case ElementNode:
		return "ELEMENT_NODE"
	case TextNode:
		return "TEXT_NODE"
	case CommentNode:
		return "COMMENT_NODE"
	case DocumentNode:
		return "DOCUMENT_NODE"
	case DocumentTypeNode:
		return "DOCUMENT_TYPE_NODE"
	default:
		return "UNKNOWN_NODE"
	}
}

// Node represents a node in the DOM tree. Document, Element and Dialog are
// views over the same struct.
type Node struct {
	nodeType NodeType
	nodeName string
	ownerDoc *Document

	parentNode  *Node
	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node

	// data holds the character data of Text and Comment nodes.
	data string

	elementData  *elementData
	documentData *documentData
}

func newNode(nodeType NodeType, nodeName string, ownerDoc *Document) *Node {
	return &Node{
		nodeType: nodeType,
		nodeName: nodeName,
		ownerDoc: ownerDoc,
	}
}

// NodeType returns the type of the node.
func (n *Node) NodeType() NodeType {
	return n.nodeType
}

// NodeName returns the name of the node.
// For HTML elements this is the uppercase tag name, for text nodes "#text",
// for comments "#comment" and for documents "#document".
func (n *Node) NodeName() string {
	return n.nodeName
}

// OwnerDocument returns the document this node belongs to.
// A document has no owner document and returns nil.
func (n *Node) OwnerDocument() *Document {
	if n.nodeType == DocumentNode {
		return nil
	}
	return n.ownerDoc
}

// ParentNode returns the parent node, or nil.
func (n *Node) ParentNode() *Node {
	return n.parentNode
}

// ParentElement returns the parent if it is an element.
func (n *Node) ParentElement() *Element {
	if n.parentNode != nil && n.parentNode.nodeType == ElementNode {
		return (*Element)(n.parentNode)
	}
	return nil
}

// FirstChild returns the first child node.
func (n *Node) FirstChild() *Node {
	return n.firstChild
}

// LastChild returns the last child node.
func (n *Node) LastChild() *Node {
	return n.lastChild
}

// NextSibling returns the next sibling node.
func (n *Node) NextSibling() *Node {
	return n.nextSibling
}

// PreviousSibling returns the previous sibling node.
func (n *Node) PreviousSibling() *Node {
	return n.prevSibling
}

// ChildNodes returns a snapshot of the children of this node.
func (n *Node) ChildNodes() []*Node {
	var children []*Node
	for c := n.firstChild; c != nil; c = c.nextSibling {
		children = append(children, c)
	}
	return children
}

// HasChildNodes returns true if this node has any children.
func (n *Node) HasChildNodes() bool {
	return n.firstChild != nil
}

// IsConnected returns true if the node's root is its owner document.
func (n *Node) IsConnected() bool {
	root := n.GetRootNode()
	return root.nodeType == DocumentNode
}

// GetRootNode returns the topmost ancestor of this node.
func (n *Node) GetRootNode() *Node {
	root := n
	for root.parentNode != nil {
		root = root.parentNode
	}
	return root
}

// Contains returns true if other is an inclusive descendant of this node.
func (n *Node) Contains(other *Node) bool {
	for node := other; node != nil; node = node.parentNode {
		if node == n {
			return true
		}
	}
	return false
}

// TextContent returns the concatenated character data of the subtree.
// Documents return an empty string.
func (n *Node) TextContent() string {
	switch n.nodeType {
	case TextNode, CommentNode:
		return n.data
	case DocumentNode, DocumentTypeNode:
		return ""
	}
	var sb strings.Builder
	n.collectTextContent(&sb)
	return sb.String()
}

func (n *Node) collectTextContent(sb *strings.Builder) {
	for c := n.firstChild; c != nil; c = c.nextSibling {
		switch c.nodeType {
		case TextNode:
			sb.WriteString(c.data)
		case ElementNode:
			c.collectTextContent(sb)
		}
	}
}

// SetTextContent replaces all children with a single text node.
// Removed children are reported to the document's removal observers.
func (n *Node) SetTextContent(value string) {
	switch n.nodeType {
	case TextNode, CommentNode:
		n.data = value
		return
	case DocumentNode, DocumentTypeNode:
		return
	}
	for n.firstChild != nil {
		n.RemoveChild(n.firstChild)
	}
	if value != "" {
		n.insertBeforeInternal(newTextNode(value, n.ownerDoc), nil)
	}
}

// AppendChild adds a child node to the end of this node's children.
// For error-returning version, use AppendChildWithError.
func (n *Node) AppendChild(child *Node) *Node {
	result, _ := n.AppendChildWithError(child)
	return result
}

// AppendChildWithError adds a child node to the end of this node's children.
// A child that is already in a tree is moved; moves are not reported as
// removals.
func (n *Node) AppendChildWithError(child *Node) (*Node, error) {
	if err := n.validatePreInsertion(child); err != nil {
		return nil, err
	}
	if child.parentNode != nil {
		child.parentNode.removeChildInternal(child)
	}
	if child.ownerDoc != n.ownerDoc && n.ownerDoc != nil {
		adoptNode(child, n.ownerDoc)
	}
	n.insertBeforeInternal(child, nil)
	return child, nil
}

func (n *Node) validatePreInsertion(child *Node) error {
	if child == nil {
		return ErrHierarchyRequest("The node to be inserted is null.")
	}
	switch n.nodeType {
	case TextNode, CommentNode, DocumentTypeNode:
		return ErrHierarchyRequest("This node type does not support children.")
	}
	if child.nodeType == DocumentNode {
		return ErrHierarchyRequest("A document cannot be inserted.")
	}
	if child.Contains(n) {
		return ErrHierarchyRequest("The new child element contains the parent.")
	}
	if n.nodeType == DocumentNode && child.nodeType == ElementNode && n.hasElementChild() {
		return ErrHierarchyRequest("Only one element on document allowed.")
	}
	return nil
}

func (n *Node) hasElementChild() bool {
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == ElementNode {
			return true
		}
	}
	return false
}

// adoptNode recursively sets the ownerDocument for a node and its descendants.
func adoptNode(node *Node, doc *Document) {
	node.ownerDoc = doc
	for child := node.firstChild; child != nil; child = child.nextSibling {
		adoptNode(child, doc)
	}
}

// RemoveChild removes a child node from this node.
// For error-returning version, use RemoveChildWithError.
func (n *Node) RemoveChild(child *Node) *Node {
	result, _ := n.RemoveChildWithError(child)
	return result
}

// RemoveChildWithError removes a child node from this node and notifies the
// owner document's removal observers.
func (n *Node) RemoveChildWithError(child *Node) (*Node, error) {
	if child == nil {
		return nil, ErrNotFound("The node to be removed is null.")
	}
	if child.parentNode != n {
		return nil, ErrNotFound("The node to be removed is not a child of this node.")
	}
	n.removeChildInternal(child)
	notifyRemoval(n, child)
	return child, nil
}

// Remove removes this node from its parent. It is a no-op for parentless nodes.
func (n *Node) Remove() {
	if n.parentNode != nil {
		n.parentNode.RemoveChild(n)
	}
}

// removeChildInternal unlinks a child without validation or notification.
func (n *Node) removeChildInternal(child *Node) {
	if child.prevSibling != nil {
		child.prevSibling.nextSibling = child.nextSibling
	} else {
		n.firstChild = child.nextSibling
	}

	if child.nextSibling != nil {
		child.nextSibling.prevSibling = child.prevSibling
	} else {
		n.lastChild = child.prevSibling
	}

	child.parentNode = nil
	child.prevSibling = nil
	child.nextSibling = nil
}

// insertBeforeInternal inserts a node before a reference child without
// validation. If refChild is nil, appends to the end.
func (n *Node) insertBeforeInternal(newChild, refChild *Node) {
	newChild.parentNode = n
	if refChild == nil {
		newChild.prevSibling = n.lastChild
		newChild.nextSibling = nil
		if n.lastChild != nil {
			n.lastChild.nextSibling = newChild
		} else {
			n.firstChild = newChild
		}
		n.lastChild = newChild
		return
	}

	newChild.nextSibling = refChild
	newChild.prevSibling = refChild.prevSibling
	if refChild.prevSibling != nil {
		refChild.prevSibling.nextSibling = newChild
	} else {
		n.firstChild = newChild
	}
	refChild.prevSibling = newChild
}

func newTextNode(data string, doc *Document) *Node {
	n := newNode(TextNode, "#text", doc)
	n.data = data
	return n
}

func newCommentNode(data string, doc *Document) *Node {
	n := newNode(CommentNode, "#comment", doc)
	n.data = data
	return n
}
