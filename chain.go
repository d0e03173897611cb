// chain.go - lazy traversal of cause chains.
//
// A Chain stores nothing but its head. Every iteration follows Unwrap()
// error from the head to the first link without a cause, so re-iterating
// yields the same sequence. Multi-cause errors (Unwrap() []error) are
// terminal links here: the chain is singly linked by definition.
package xgxfault

import "iter"

// Chain is the ordered sequence of causally linked errors starting at a head.
type Chain struct {
	head error
}

// ChainOf returns the chain starting at err. A nil err yields an empty chain.
func ChainOf(err error) Chain {
	return Chain{head: err}
}

// Head returns the outermost link.
func (c Chain) Head() error { return c.head }

// Links yields (depth, link) pairs from the head (depth 0) to the terminal
// link. Traversal stops early at a link already visited, which only a
// misbehaving foreign error can produce.
func (c Chain) Links() iter.Seq2[int, error] {
	return func(yield func(int, error) bool) {
		var guard seenGuard
		e := c.head
		for depth := 0; e != nil && depth < maxChainDepth; depth++ {
			if !guard.mark(e) {
				return
			}
			if !yield(depth, e) {
				return
			}
			u, ok := e.(singleUnwrapper)
			if !ok {
				return
			}
			e = u.Unwrap()
		}
	}
}

// All yields every link from the head to the terminal link.
func (c Chain) All() iter.Seq[error] {
	return func(yield func(error) bool) {
		for _, e := range c.Links() {
			if !yield(e) {
				return
			}
		}
	}
}

// Len returns the number of links.
func (c Chain) Len() int {
	n := 0
	for range c.Links() {
		n++
	}
	return n
}

// Terminal returns the last link: the root cause. It returns nil for an
// empty chain.
func (c Chain) Terminal() error {
	var last error
	for e := range c.All() {
		last = e
	}
	return last
}

// Backtrace returns the chain's snapshot, if any link owns one.
func (c Chain) Backtrace() Stack {
	return BacktraceOf(c.head)
}

// Lines yields the text of every rendered level. Tagged links and links
// whose text is empty, library contexts included, are skipped.
func (c Chain) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		for e := range c.All() {
			if _, ok := e.(Tagged); ok {
				continue
			}
			msg := MessageOf(e)
			if msg == "" {
				continue
			}
			if !yield(msg) {
				return
			}
		}
	}
}
