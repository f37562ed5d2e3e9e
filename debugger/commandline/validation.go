package commandline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aetherarm/arm7tdmi/errors"
)

// Validate input string against command definitions
func (cmds Commands) Validate(input string) error {
	return cmds.ValidateTokens(TokeniseInput(input))
}

// ValidateTokens is like Validate, but works on already tokenised input
func (cmds Commands) ValidateTokens(tokens *Tokens) error {
	cmd, ok := tokens.Peek()
	if !ok {
		return nil
	}
	cmd = strings.ToUpper(cmd)

	for n := range cmds {
		if cmd == cmds[n].tag {

			err := cmds[n].validate(tokens, false)
			if err != nil {
				// errors from our own catalogue are passed through untouched
				if _, ok := err.(errors.CatalogueError); ok {
					return err
				}
				return errors.New(errors.ValidationError, err, cmd)
			}

			// validation passed but there are still tokens in the queue.
			// "unrecognised argument" reads better here than "too many
			// arguments" because the leftover token may be a misspelling
			// of an optional argument rather than a genuine extra.
			if tokens.Remaining() > 0 {
				arg, _ := tokens.Get()
				return errors.New(errors.ValidationError, fmt.Sprintf("unrecognised argument (%s)", arg), cmd)
			}

			return nil
		}
	}

	return fmt.Errorf("unrecognised command (%s)", cmd)
}

func (n *node) validate(tokens *Tokens, speculative bool) error {
	// a node with an empty tag can't be matched directly; its content is in
	// the single entry of its next array. empty tags come from parsing
	// nested groups, which always produce exactly one next entry - anything
	// else is a parser bug
	if n.tag == "" {
		if n.next == nil || len(n.next) > 1 {
			return errors.New(errors.PanicError, "commandline validation", "illegal empty node")
		}

		// validate the content speculatively, holding on to any error until
		// the branches have had their chance to match

		err := n.next[0].validate(tokens, true)
		match := err == nil

		if !match {
			for bi := range n.branch {
				tokens.Unget()
				if n.branch[bi].validate(tokens, true) == nil {
					match = true
					break // for loop
				}
			}
		}

		if match {
			return nil
		}

		return err
	}

	// note the token queue before anything is consumed. a repeat loop only
	// continues if the queue has moved on since this point.
	remainder := tokens.Remainder()

	// an exhausted token queue passes validation if the current node is
	// optional and fails with a descriptive error if it is not
	tok, ok := tokens.Get()
	if !ok {
		// we treat arguments in the root-group as though they are required
		if n.typ == nodeRequired || n.typ == nodeRoot {
			s := strings.Builder{}
			if len(n.branch) > 0 {
				return fmt.Errorf("missing a required argument (%s)", n.branchesText())
			}
			s.WriteString("missing ")
			s.WriteString(n.tagVerbose())
			return fmt.Errorf(s.String())
		}

		return nil
	}

	// check the current token against the node's tag, using placeholder
	// matching if appropriate.
	//
	// match means a definite match. tentativeMatch means the token matched
	// a placeholder but a sibling branch may yet match it exactly - an
	// input word that happens to equal a branch keyword should be treated
	// as that keyword, not as a %S string.

	match := false
	tentativeMatch := false

	switch n.tag {
	case "%N":
		_, e := strconv.ParseInt(tok, 0, 32)
		match = e == nil

	case "%P":
		_, e := strconv.ParseFloat(tok, 32)
		match = e == nil

		// a "not a number" message here would be misleading more often than
		// not. with the template "WATCH (READ|WRITE) %N" the input
		// "WATCH ANY 0x80" fails on ANY not matching the optional group,
		// and reporting that 0x80 "is not a number" points at the wrong
		// word. the catch-all "unrecognised argument" below is vaguer but
		// never wrong.

	case "%S":
		tentativeMatch = true
		match = n.branch == nil

	case "%F":
		// not checking for file existence
		tentativeMatch = true
		match = n.branch == nil

	default:
		// case insensitive matching. node tags should already have been
		// converted to upper case
		match = strings.ToUpper(tok) == n.tag
	}

	// no direct match, so try the branches. any tentative match is put to
	// one side until every branch has been given the chance of an exact
	// match
	if !match && n.branch != nil {
		for bi := range n.branch {
			tokens.Unget()

			if n.branch[bi].validate(tokens, true) == nil {
				return nil
			}
		}

		// no branch matched explicitly. fall back to the tentative match
		// if there was one
		match = tentativeMatch
	}

	if !match {
		err := fmt.Errorf("unrecognised argument (%s)", tok)

		// under speculative validation a failure to match was half expected.
		// the caller decides whether the error matters
		if speculative {
			return err
		}

		// for a non-optional node a failed match is a definite error
		if n.typ != nodeOptional {
			return err
		}

		// the node is optional so we can carry on to the "next" nodes,
		// pushing the unconsumed token back onto the queue for them to
		// examine
		tokens.Unget()
	}

	// check nodes that follow on from the current node
	for ni := range n.next {
		err := n.next[ni].validate(tokens, false)
		if err != nil {
			return err
		}
	}

	// loop back to the repeat node, if there is one, but only if this pass
	// consumed something. repeating on an unchanged queue would never
	// terminate.
	if n.repeat != nil && remainder != tokens.Remainder() {
		err := n.repeat.validate(tokens, false)
		if err != nil {
			return err
		}
	}

	return nil
}
