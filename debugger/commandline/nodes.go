package commandline

import (
	"fmt"
	"strings"
)

// Commands is the root of the command tree. Each entry is the first node of
// one command definition; walking a node's next/branch arrays reproduces the
// definition it was parsed from.
type Commands []*node

func (cmds Commands) String() string {
	s := strings.Builder{}
	for c := range cmds {
		s.WriteString(fmt.Sprintf("%v", cmds[c]))
		s.WriteString("\n")
	}
	return strings.TrimRight(s.String(), "\n")
}

type nodeType int

const (
	nodeUndefined nodeType = iota
	nodeRoot
	nodeRequired
	nodeOptional
)

type node struct {
	// tag is the keyword or placeholder this node matches. group nodes
	// created during parsing may have an empty tag; their content is in the
	// next array
	tag string

	// nodeRoot for nodes that are not inside any grouping. nodes created
	// while parsing a group take the group's type
	typ nodeType

	// grouped is true only for nodes that began with an explicit group
	// marker in the definition. the String() function uses this to know
	// which nodes to re-wrap in their group brackets
	grouped bool

	next   []*node
	branch []*node

	// a node at the end of a {} group points back to the group head.
	// repeatStart marks the head itself
	repeat      *node
	repeatStart bool
}

// String returns the node and its children in command-definition syntax. The
// output can be passed back through ParseCommandTemplate() to produce an
// equivalent node tree.
func (n node) String() string {
	s := strings.Builder{}
	s.WriteString(n.tag)

	for _, nx := range n.next {
		if s.Len() > 0 {
			s.WriteString(" ")
		}
		s.WriteString(nx.bracketed())
	}

	for _, b := range n.branch {
		s.WriteString("|")
		s.WriteString(b.String())
	}

	return s.String()
}

// bracketed returns the node in command-definition syntax, wrapped in the
// group markers it was defined with. Nodes that were not explicitly grouped
// are returned bare.
func (n node) bracketed() string {
	if n.grouped {
		if n.repeatStart {
			return fmt.Sprintf("{%s}", n.String())
		}
		switch n.typ {
		case nodeRequired:
			return fmt.Sprintf("[%s]", n.String())
		case nodeOptional:
			return fmt.Sprintf("(%s)", n.String())
		}
	}
	return n.String()
}

// tagVerbose describes the node's tag in the terms a user at the prompt
// thinks in, for use in validation error messages.
func (n node) tagVerbose() string {
	switch n.tag {
	case "%N":
		return "numeric argument"
	case "%P":
		return "floating point argument"
	case "%S":
		return "string argument"
	case "%F":
		return "filename argument"
	}
	return fmt.Sprintf("keyword (%s)", n.tag)
}

// branchesText lists the node's tag and the tag of every branch, for
// validation error messages where any one of them would have matched.
func (n node) branchesText() string {
	s := strings.Builder{}
	s.WriteString(n.tag)
	for _, b := range n.branch {
		s.WriteString("|")
		s.WriteString(b.tag)
	}
	return s.String()
}
